package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Remote   Remote   `mapstructure:"remote"`
	Journal  Journal  `mapstructure:"journal"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// Remote holds the configuration for the remote trade endpoint.
type Remote struct {
	// Endpoint is the URL of the spreadsheet-backed trade service.
	Endpoint string `mapstructure:"endpoint"`
	// Proxies is an ordered list of proxy URL templates. Each template must
	// contain a "{url}" placeholder which is replaced with the query-escaped
	// endpoint URL. Proxies are tried in list order before the direct call.
	Proxies        []string `mapstructure:"proxies"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	RateLimit      float64  `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
}

// Journal holds the configuration for the journal core.
type Journal struct {
	// FeeRate is applied to gross notional on both trade legs.
	FeeRate float64 `mapstructure:"fee_rate"`
	// RefreshDelayMs is the advisory wait before the automatic re-read that
	// follows a successful remote create or delete.
	RefreshDelayMs int `mapstructure:"refresh_delay_ms"`
}

// Server holds the configuration for the HTTP API server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the local fallback store.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("remote.timeout_seconds", 10)
	viper.SetDefault("remote.rate_limit", 5) // requests per second
	viper.SetDefault("remote.rate_limit_burst", 2)
	viper.SetDefault("journal.fee_rate", 0.004026)
	viper.SetDefault("journal.refresh_delay_ms", 1500)
	viper.SetDefault("database.dsn", "journal.db")
	viper.SetDefault("server.port", 8087)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
