package bybit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"TrendScan/internal/domain/models"
	"TrendScan/internal/domain/repository"
	"TrendScan/internal/service/ratelimit"
	xhttp "TrendScan/pkg/http"
	"TrendScan/pkg/logger"
)

const (
	requestTimeout       = 20 * time.Second
	openInterestTimeout  = 15 * time.Second
	instrumentsPageLimit = 1000
	limiterKey           = "bybit"
)

// Config holds the gateway settings.
type Config struct {
	BaseURL    string
	Category   string
	APIKey     string
	RecvWindow int
	Pacing     time.Duration // sleep after every successful call
	Retry      RetryPolicy
	MaxRPS     float64 // 0 disables the shared limiter
}

// Client implements repository.MarketData over the Bybit v5 public REST API.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	logger  *logger.Logger
	metrics repository.Metrics
}

var _ repository.MarketData = (*Client)(nil)

func New(cfg Config, l *logger.Logger, m repository.Metrics) *Client {
	c := &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(xhttp.WithTimeout(requestTimeout), xhttp.WithUserAgent("TrendScan/1.0")),
		logger:  l.With(logger.String("component", "bybit")),
		metrics: m,
	}
	c.cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxRPS > 0 {
		c.limiter = ratelimit.New()
	}
	return c
}

// ListInstruments pages through instruments-info and keeps tradable USDT contracts.
func (c *Client) ListInstruments(ctx context.Context) ([]models.Instrument, error) {
	var all []models.Instrument
	cursor := ""
	for {
		q := map[string][]string{
			"category": {c.cfg.Category},
			"limit":    {strconv.Itoa(instrumentsPageLimit)},
		}
		if cursor != "" {
			q["cursor"] = []string{cursor}
		}

		var res instrumentsResult
		if err := c.call(ctx, "instruments", pathInstruments, q, requestTimeout, &res); err != nil {
			return nil, fmt.Errorf("list instruments: %w", err)
		}
		for _, it := range res.List {
			all = append(all, models.Instrument{
				Symbol:       it.Symbol,
				BaseCoin:     it.BaseCoin,
				QuoteCoin:    it.QuoteCoin,
				SettleCoin:   it.SettleCoin,
				ContractType: it.ContractType,
				Status:       it.Status,
			})
		}

		if res.NextPageCursor == "" || res.NextPageCursor == cursor {
			break
		}
		cursor = res.NextPageCursor
	}
	return FilterInstruments(all, c.cfg.Category), nil
}

// ListTickers returns the 24h snapshot for every symbol in the category.
func (c *Client) ListTickers(ctx context.Context) (map[string]models.Ticker, error) {
	var res tickersResult
	q := map[string][]string{"category": {c.cfg.Category}}
	if err := c.call(ctx, "tickers", pathTickers, q, requestTimeout, &res); err != nil {
		return nil, fmt.Errorf("list tickers: %w", err)
	}

	out := make(map[string]models.Ticker, len(res.List))
	for _, t := range res.List {
		if t.Symbol == "" {
			continue
		}
		out[t.Symbol] = models.Ticker{
			Symbol:  t.Symbol,
			High24h: parsePrice(t.HighPrice24h, t.HighPrice),
			Low24h:  parsePrice(t.LowPrice24h, t.LowPrice),
			Last:    parsePrice(t.LastPrice),
		}
	}
	return out, nil
}

// GetCandles returns up to limit candles for symbol, ascending by start time.
func (c *Client) GetCandles(ctx context.Context, symbol string, tf repository.Timeframe, limit int) ([]models.Candle, error) {
	code := tf.IntervalCode()
	if code == "" {
		return nil, fmt.Errorf("get candles %s: unsupported timeframe %q", symbol, tf)
	}

	var res klineResult
	q := map[string][]string{
		"category": {c.cfg.Category},
		"symbol":   {symbol},
		"interval": {code},
		"limit":    {strconv.Itoa(limit)},
	}
	if err := c.call(ctx, "kline", pathKline, q, requestTimeout, &res); err != nil {
		return nil, fmt.Errorf("get candles %s %s: %w", symbol, tf, err)
	}

	candles := make([]models.Candle, 0, len(res.List))
	for _, row := range res.List {
		cd, err := parseKlineRow(row)
		if err != nil {
			c.logger.Debug("skip kline row", logger.String("symbol", symbol), logger.Error(err))
			continue
		}
		candles = append(candles, cd)
	}
	return normalizeCandles(candles), nil
}

// GetOpenInterest returns the latest hourly open interest. Failures are reported
// as unavailable. The timeframe does not change the bucket.
func (c *Client) GetOpenInterest(ctx context.Context, symbol string, _ repository.Timeframe) (float64, bool) {
	var res openInterestResult
	q := map[string][]string{
		"category":     {c.cfg.Category},
		"symbol":       {symbol},
		"intervalTime": {openInterestInterval},
		"limit":        {"1"},
	}
	if err := c.call(ctx, "open_interest", pathOpenInterest, q, openInterestTimeout, &res); err != nil {
		c.logger.Debug("open interest unavailable", logger.String("symbol", symbol), logger.Error(err))
		return 0, false
	}
	if len(res.List) == 0 {
		return 0, false
	}

	oi, err := strconv.ParseFloat(res.List[len(res.List)-1].OpenInterest, 64)
	if err != nil {
		c.logger.Debug("open interest unparsable", logger.String("symbol", symbol), logger.Error(err))
		return 0, false
	}
	return oi, true
}

// call performs one GET under the retry policy, decodes result into dest and
// paces after success.
func (c *Client) call(ctx context.Context, op, path string, query map[string][]string, timeout time.Duration, dest interface{}) error {
	err := c.cfg.Retry.Do(ctx, func(ctx context.Context) error {
		return c.once(ctx, op, path, query, timeout, dest)
	}, func(attempt int, err error) {
		c.metrics.RecordRetry(op)
		c.logger.Warn("bybit request failed, retrying",
			logger.String("op", op),
			logger.Int("attempt", attempt),
			logger.Error(err),
		)
	})
	if err != nil {
		return err
	}
	return sleepCtx(ctx, c.cfg.Pacing)
}

func (c *Client) once(ctx context.Context, op, path string, query map[string][]string, timeout time.Duration, dest interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, limiterKey, c.cfg.MaxRPS, c.cfg.MaxRPS); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var env response
	err := c.http.Do(ctx, &xhttp.Request{
		URL:    c.cfg.BaseURL + path,
		Query:  query,
		Header: c.headers(),
	}, &env)
	err = c.checkResponse(op, &env, err)
	if err == nil && dest != nil {
		// A failed attempt may have half-filled dest.
		resetDest(dest)
		if uerr := json.Unmarshal(env.Result, dest); uerr != nil {
			err = fmt.Errorf("%s: decode result: %w", op, uerr)
		}
	}

	result := "ok"
	if err != nil {
		result = "error"
		c.metrics.RecordError("bybit_" + op)
	}
	c.metrics.RecordRequest(op, result, time.Since(start).Seconds())
	return err
}

func (c *Client) checkResponse(op string, env *response, err error) error {
	var se *xhttp.StatusError
	switch {
	case errors.As(err, &se):
		return &models.ProviderError{Op: op, Status: se.Status, Message: se.Body}
	case err != nil:
		return fmt.Errorf("%s: %w", op, err)
	case env.RetCode != 0:
		return &models.ProviderError{Op: op, Status: 200, Code: env.RetCode, Message: env.RetMsg}
	}
	return nil
}

func (c *Client) headers() map[string]string {
	h := map[string]string{"Accept": "application/json"}
	if c.cfg.APIKey != "" {
		h["X-BAPI-API-KEY"] = c.cfg.APIKey
		if c.cfg.RecvWindow > 0 {
			h["X-BAPI-RECV-WINDOW"] = strconv.Itoa(c.cfg.RecvWindow)
		}
	}
	return h
}

func resetDest(dest interface{}) {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}
