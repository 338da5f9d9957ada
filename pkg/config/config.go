package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"TrendScan/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"production"`

	Scan struct {
		IntervalMinutes     int      `yaml:"interval_minutes" default:"60" validate:"gt=0"`
		TopN                int      `yaml:"top_n" default:"100" validate:"gt=0"`
		KlinesLimit         int      `yaml:"klines_limit" default:"200" validate:"gt=0,lte=1000"`
		Workers             int      `yaml:"workers" default:"8" validate:"gt=0"`
		UseTickersPrefilter int      `yaml:"use_tickers_prefilter" default:"1"`
		PrefilterMultiplier int      `yaml:"prefilter_multiplier" default:"1"`
		Timeframes          []string `yaml:"timeframes" default:"[\"4h\",\"1d\",\"1w\"]"`
		SortTimeframe       string   `yaml:"sort_tf"`
	} `yaml:"scan"`

	Bybit struct {
		BaseURL           string `yaml:"base_url" default:"https://api.bybit.com" validate:"required,url"`
		Category          string `yaml:"category" default:"linear" validate:"oneof=linear inverse spot"`
		APIKey            string `yaml:"api_key"`
		APISecret         string `yaml:"api_secret"`
		RecvWindow        int    `yaml:"recv_window" default:"20000" validate:"gt=0"`
		PerRequestSleepMS int    `yaml:"per_request_sleep_ms" default:"250" validate:"gte=0"`
		MaxRetries        int    `yaml:"max_retries" default:"3" validate:"gt=0"`
		RetryBackoffSec   int    `yaml:"retry_backoff_sec" default:"2" validate:"gte=0"`
		MaxRPS            int    `yaml:"max_rps" default:"0" validate:"gte=0"`
	} `yaml:"bybit"`

	Indicators struct {
		MACDFast   int `yaml:"macd_fast" default:"12" validate:"gt=0"`
		MACDSlow   int `yaml:"macd_slow" default:"26" validate:"gtfield=MACDFast"`
		MACDSignal int `yaml:"macd_signal" default:"9" validate:"gt=0"`
		RSIPeriod  int `yaml:"rsi_period" default:"14" validate:"gt=0"`
		ATRPeriod  int `yaml:"atr_period" default:"14" validate:"gt=0"`
	} `yaml:"indicators"`

	Telegram struct {
		BotToken string `yaml:"bot_token" validate:"required"`
		ChatID   string `yaml:"chat_id" validate:"required"`
		APIURL   string `yaml:"api_url" default:"https://api.telegram.org" validate:"required,url"`
	} `yaml:"telegram"`

	Output struct {
		Dir      string `yaml:"dir" default:"output" validate:"required"`
		Timezone string `yaml:"timezone" default:"Europe/Kyiv"`
	} `yaml:"output"`

	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`

	Server struct {
		Enabled         bool          `yaml:"enabled" default:"true"`
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" default:"0" validate:"gte=0"`
	} `yaml:"redis"`

	Kafka struct {
		Enabled     bool     `yaml:"enabled"`
		Brokers     []string `yaml:"brokers" default:"[\"localhost:9092\"]"`
		Topic       string   `yaml:"topic" default:"trendscan.cycles"`
		LogTopic    string   `yaml:"log_topic" default:"trendscan.logs"`
		Compression string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
	} `yaml:"kafka"`

	ClickHouse struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"9000"`
		Database string `yaml:"database" default:"trendscan"`
		User     string `yaml:"user" default:"default"`
		Password string `yaml:"password"`
	} `yaml:"clickhouse"`

	// Warnings collects non-fatal problems found while loading.
	Warnings []string `yaml:"-"`
}

// ConfigError is returned when the loaded configuration is unusable.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

var validate = validator.New()

// Load builds the configuration from struct defaults, the optional YAML file
// named by CONFIG_PATH, a .env file in the working directory and finally the
// process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(os.Getenv("CONFIG_PATH"), os.LookupEnv)
}

// LoadFrom is Load with an explicit YAML path and environment lookup.
func LoadFrom(path string, lookup func(string) (string, bool)) (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	c.applyEnv(lookup)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(dst *int, key string) {
		v, ok := lookup(key)
		if !ok {
			return
		}
		n, ok := util.ParseIntDefault(v, *dst)
		if !ok && strings.TrimSpace(v) != "" {
			c.warnf("%s=%q is not an integer, keeping %d", key, v, *dst)
		}
		*dst = n
	}
	flag := func(dst *bool, key string) {
		v, ok := lookup(key)
		if !ok {
			return
		}
		b, ok := util.ParseBoolDefault(v, *dst)
		if !ok && strings.TrimSpace(v) != "" {
			c.warnf("%s=%q is not a boolean, keeping %t", key, v, *dst)
		}
		*dst = b
	}
	list := func(dst *[]string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = util.SplitCSV(v)
		}
	}

	num(&c.Scan.IntervalMinutes, "SCAN_INTERVAL_MINUTES")
	num(&c.Scan.TopN, "TOP_N")
	num(&c.Scan.KlinesLimit, "KLINES_LIMIT")
	num(&c.Scan.Workers, "WORKERS")
	num(&c.Scan.UseTickersPrefilter, "USE_TICKERS_PREFILTER")
	num(&c.Scan.PrefilterMultiplier, "PREFILTER_MULTIPLIER")
	// An empty TIMEFRAMES clears the list so the 1d,1w fallback applies.
	if v, ok := lookup("TIMEFRAMES"); ok {
		c.Scan.Timeframes = util.SplitCSV(v)
	}
	str(&c.Scan.SortTimeframe, "SORT_TF")

	str(&c.Bybit.BaseURL, "BYBIT_BASE_URL")
	str(&c.Bybit.Category, "BYBIT_CATEGORY")
	str(&c.Bybit.APIKey, "BYBIT_API_KEY")
	str(&c.Bybit.APISecret, "BYBIT_API_SECRET")
	num(&c.Bybit.RecvWindow, "BYBIT_RECV_WINDOW")
	num(&c.Bybit.PerRequestSleepMS, "PER_REQUEST_SLEEP_MS")
	num(&c.Bybit.MaxRetries, "MAX_RETRIES")
	num(&c.Bybit.RetryBackoffSec, "RETRY_BACKOFF_SEC")
	num(&c.Bybit.MaxRPS, "BYBIT_MAX_RPS")

	num(&c.Indicators.MACDFast, "MACD_FAST")
	num(&c.Indicators.MACDSlow, "MACD_SLOW")
	num(&c.Indicators.MACDSignal, "MACD_SIGNAL")
	num(&c.Indicators.RSIPeriod, "RSI_PERIOD")
	num(&c.Indicators.ATRPeriod, "ATR_PERIOD")

	str(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	str(&c.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	str(&c.Telegram.APIURL, "TELEGRAM_API_URL")

	str(&c.Output.Dir, "OUTPUT_DIR")
	str(&c.Output.Timezone, "REPORT_TIMEZONE")

	str(&c.Log.Level, "LOG_LEVEL")
	str(&c.Log.Format, "LOG_FORMAT")

	flag(&c.Server.Enabled, "HTTP_ENABLED")
	num(&c.Server.Port, "HTTP_PORT")

	flag(&c.Redis.Enabled, "REDIS_ENABLED")
	str(&c.Redis.Host, "REDIS_HOST")
	num(&c.Redis.Port, "REDIS_PORT")
	str(&c.Redis.Password, "REDIS_PASSWORD")
	num(&c.Redis.DB, "REDIS_DB")

	flag(&c.Kafka.Enabled, "KAFKA_ENABLED")
	list(&c.Kafka.Brokers, "KAFKA_BROKERS")
	str(&c.Kafka.Topic, "KAFKA_TOPIC")
	str(&c.Kafka.LogTopic, "KAFKA_LOG_TOPIC")

	flag(&c.ClickHouse.Enabled, "CLICKHOUSE_ENABLED")
	str(&c.ClickHouse.Host, "CLICKHOUSE_HOST")
	num(&c.ClickHouse.Port, "CLICKHOUSE_PORT")
	str(&c.ClickHouse.Database, "CLICKHOUSE_DATABASE")
	str(&c.ClickHouse.User, "CLICKHOUSE_USER")
	str(&c.ClickHouse.Password, "CLICKHOUSE_PASSWORD")
}

func (c *Config) warnf(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the tagged constraints and returns a *ConfigError listing
// every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ConfigError{Problems: []string{err.Error()}}
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return &ConfigError{Problems: problems}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gt", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// ScanInterval is the pause between cycles.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scan.IntervalMinutes) * time.Minute
}

// PrefilterEnabled mirrors USE_TICKERS_PREFILTER: any non-zero value enables it.
func (c *Config) PrefilterEnabled() bool {
	return c.Scan.UseTickersPrefilter != 0
}

// PerRequestSleep is the pacing delay after each successful provider call.
func (c *Config) PerRequestSleep() time.Duration {
	return time.Duration(c.Bybit.PerRequestSleepMS) * time.Millisecond
}

// RetryBackoff is the fixed delay between provider retries.
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.Bybit.RetryBackoffSec) * time.Second
}
