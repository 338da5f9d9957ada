package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func required() map[string]string {
	return map[string]string{
		"TELEGRAM_BOT_TOKEN": "123:abc",
		"TELEGRAM_CHAT_ID":   "-100",
	}
}

func TestDefaults(t *testing.T) {
	c, err := LoadFrom("", envMap(required()))
	require.NoError(t, err)

	assert.Equal(t, 60, c.Scan.IntervalMinutes)
	assert.Equal(t, time.Hour, c.ScanInterval())
	assert.Equal(t, 100, c.Scan.TopN)
	assert.Equal(t, 200, c.Scan.KlinesLimit)
	assert.Equal(t, 8, c.Scan.Workers)
	assert.True(t, c.PrefilterEnabled())
	assert.Equal(t, []string{"4h", "1d", "1w"}, c.Scan.Timeframes)
	assert.Equal(t, "linear", c.Bybit.Category)
	assert.Equal(t, "https://api.bybit.com", c.Bybit.BaseURL)
	assert.Equal(t, 20000, c.Bybit.RecvWindow)
	assert.Equal(t, 250*time.Millisecond, c.PerRequestSleep())
	assert.Equal(t, 3, c.Bybit.MaxRetries)
	assert.Equal(t, 2*time.Second, c.RetryBackoff())
	assert.Equal(t, 12, c.Indicators.MACDFast)
	assert.Equal(t, 26, c.Indicators.MACDSlow)
	assert.Equal(t, 9, c.Indicators.MACDSignal)
	assert.Equal(t, 14, c.Indicators.RSIPeriod)
	assert.Equal(t, 14, c.Indicators.ATRPeriod)
	assert.Equal(t, "output", c.Output.Dir)
	assert.Equal(t, "Europe/Kyiv", c.Output.Timezone)
	assert.True(t, c.Server.Enabled)
	assert.Equal(t, 8080, c.Server.Port)
	assert.False(t, c.Redis.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "trendscan", c.ClickHouse.Database)
	assert.Empty(t, c.Warnings)
}

func TestEnvOverrides(t *testing.T) {
	env := required()
	env["TOP_N"] = "25"
	env["TIMEFRAMES"] = "1h, 4H ,1M"
	env["SORT_TF"] = "4h"
	env["USE_TICKERS_PREFILTER"] = "0"
	env["KAFKA_ENABLED"] = "true"
	env["KAFKA_BROKERS"] = "k1:9092,k2:9092"
	env["BYBIT_CATEGORY"] = "inverse"

	c, err := LoadFrom("", envMap(env))
	require.NoError(t, err)
	assert.Equal(t, 25, c.Scan.TopN)
	assert.Equal(t, []string{"1h", "4H", "1M"}, c.Scan.Timeframes)
	assert.Equal(t, "4h", c.Scan.SortTimeframe)
	assert.False(t, c.PrefilterEnabled())
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "inverse", c.Bybit.Category)
}

func TestBadIntegerKeepsDefault(t *testing.T) {
	env := required()
	env["WORKERS"] = "many"
	env["HTTP_ENABLED"] = "perhaps"

	c, err := LoadFrom("", envMap(env))
	require.NoError(t, err)
	assert.Equal(t, 8, c.Scan.Workers)
	assert.True(t, c.Server.Enabled)
	assert.Len(t, c.Warnings, 2)
}

func TestYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
scan:
  top_n: 50
  workers: 4
server:
  shutdown_timeout: 3s
telegram:
  bot_token: from-yaml
  chat_id: "42"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := LoadFrom(path, envMap(map[string]string{"WORKERS": "2"}))
	require.NoError(t, err)
	assert.Equal(t, 50, c.Scan.TopN)
	assert.Equal(t, 2, c.Scan.Workers)
	assert.Equal(t, 3*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "from-yaml", c.Telegram.BotToken)
	assert.Equal(t, 200, c.Scan.KlinesLimit)
}

func TestValidateErrors(t *testing.T) {
	env := map[string]string{
		"MACD_FAST":      "30",
		"MACD_SLOW":      "26",
		"BYBIT_CATEGORY": "option",
		"WORKERS":        "0",
	}
	_, err := LoadFrom("", envMap(env))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	msg := cfgErr.Error()
	assert.Contains(t, msg, "Telegram.BotToken is required")
	assert.Contains(t, msg, "Telegram.ChatID is required")
	assert.Contains(t, msg, "Indicators.MACDSlow must be greater than MACDFast")
	assert.Contains(t, msg, "Bybit.Category must be one of")
	assert.Contains(t, msg, "Scan.Workers")
}

func TestMissingYAMLFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"), envMap(required()))
	assert.Error(t, err)
}

func TestZeroPrefilterMultiplierIsAccepted(t *testing.T) {
	env := required()
	env["PREFILTER_MULTIPLIER"] = "0"

	c, err := LoadFrom("", envMap(env))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Scan.PrefilterMultiplier)
	assert.True(t, c.PrefilterEnabled())
}

func TestEmptyTimeframesClearsDefault(t *testing.T) {
	env := required()
	env["TIMEFRAMES"] = " "

	c, err := LoadFrom("", envMap(env))
	require.NoError(t, err)
	assert.Empty(t, c.Scan.Timeframes)
}
