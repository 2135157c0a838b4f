package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Data source drivers.
const (
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DataConfig selects where the dataset is loaded from.
type DataConfig struct {
	Source     string `yaml:"source" mapstructure:"source"`
	Path       string `yaml:"path" mapstructure:"path"`
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`
	SheetIndex int    `yaml:"sheet_index" mapstructure:"sheet_index"`
}

// DatabaseConfig configures the optional Postgres store.
type DatabaseConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	Title string `yaml:"title" mapstructure:"title"`
	Unit  string `yaml:"unit" mapstructure:"unit"`
	TopN  int    `yaml:"top_n" mapstructure:"top_n"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "DASHBOARD_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("server.port", "DASHBOARD_SERVER_PORT", "PORT")

	// Defaults
	v.SetDefault("data.source", SourceXLSX)
	v.SetDefault("data.path", "kospi_asset_rank_04-24.xlsx")
	v.SetDefault("data.sheet_index", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("dashboard.title", "KOSPI Asset Ranking Dashboard")
	v.SetDefault("dashboard.unit", "억원")
	v.SetDefault("dashboard.top_n", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail later at start-up.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceXLSX:
		if c.Data.Path == "" {
			return eris.New("config: data.path is required for the xlsx source")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return eris.New("config: database.url is required for the postgres source")
		}
	default:
		return eris.Errorf("config: unknown data.source %q", c.Data.Source)
	}
	if c.Dashboard.TopN <= 0 {
		return eris.Errorf("config: dashboard.top_n must be positive, got %d", c.Dashboard.TopN)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
