package usecase

import (
	"fmt"
	"strings"
	"time"

	"TrendScan/internal/domain/models"
)

const (
	reportTimeLayout = "2006-01-02 15:04:05 MST"
	separator        = "────────────────────────────────────────────────────────"
)

// RenderReport formats a cycle record as the plain-text report.
func RenderReport(rec *models.CycleRecord, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "BYBIT MACD SCANNER (%s) — %s\n", strings.Join(rec.Timeframes, ", "), rec.Timestamp.In(loc).Format(reportTimeLayout))
	b.WriteString("Rule: every selected timeframe must share the same MACD trend (BULL or BEAR).\n")
	fmt.Fprintf(&b, "Top entries chosen by ATR %s, listed by RSI sum (descending).\n", rec.SortTimeframe)
	b.WriteString(separator + "\n\n")

	writeSection(&b, "BULL:", rec.Bull, rec.Timeframes, rec.SortTimeframe)
	writeSection(&b, "BEAR:", rec.Bear, rec.Timeframes, rec.SortTimeframe)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSection(b *strings.Builder, title string, items []models.Candidate, tfs []string, sortTF string) {
	b.WriteString(title + "\n")
	b.WriteString(separator + "\n")
	if len(items) == 0 {
		b.WriteString("(empty)\n\n")
		return
	}

	for i := range items {
		it := &items[i]
		fmt.Fprintf(b, "%02d. %s\n", i+1, it.DisplaySymbol())
		fmt.Fprintf(b, "    • ATR %s: %.2f%%\n", sortTF, it.ATRPct*100)
		fmt.Fprintf(b, "    • RSI: %s\n", rsiLine(it, tfs))
		if it.HasOpenInterest() {
			fmt.Fprintf(b, "    • OI: %.2f\n", *it.OpenInterest)
		}
		b.WriteString("\n")
	}
}

func rsiLine(c *models.Candidate, tfs []string) string {
	parts := make([]string, len(tfs))
	for i, tf := range tfs {
		if v, ok := c.RSI[tf]; ok {
			parts[i] = fmt.Sprintf("%s: %.2f", tf, v)
		} else {
			parts[i] = tf + ": -"
		}
	}
	return strings.Join(parts, " | ")
}

// Caption is the text sent along with the report document.
func Caption(tfs []string) string {
	return fmt.Sprintf("BYBIT MACD Scanner — report (%s)", strings.Join(tfs, " & "))
}
