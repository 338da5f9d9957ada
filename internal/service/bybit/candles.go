package bybit

import (
	"fmt"
	"sort"
	"strconv"

	"TrendScan/internal/domain/models"
	"TrendScan/pkg/util"
)

func parseKlineRow(row []string) (models.Candle, error) {
	if len(row) < 6 {
		return models.Candle{}, fmt.Errorf("kline row has %d fields", len(row))
	}
	start, err := util.ParseUnixMillis(row[0])
	if err != nil {
		return models.Candle{}, fmt.Errorf("kline start: %w", err)
	}

	var vals [5]float64
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(row[i+1], 64); err != nil {
			return models.Candle{}, fmt.Errorf("kline field %d: %w", i+1, err)
		}
	}

	c := models.Candle{
		Start:  start,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}
	if len(row) > 6 {
		if t, err := strconv.ParseFloat(row[6], 64); err == nil {
			c.Turnover = &t
		}
	}
	return c, nil
}

// normalizeCandles sorts ascending by start and keeps the last row seen for a
// duplicated start, so the result is strictly ascending.
func normalizeCandles(in []models.Candle) []models.Candle {
	sort.SliceStable(in, func(i, j int) bool { return in[i].Start.Before(in[j].Start) })
	out := in[:0]
	for _, c := range in {
		if n := len(out); n > 0 && out[n-1].Start.Equal(c.Start) {
			out[n-1] = c
			continue
		}
		out = append(out, c)
	}
	return out
}

func parsePrice(vals ...string) float64 {
	for _, v := range vals {
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
