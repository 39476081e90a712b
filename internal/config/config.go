package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Source      SourceConfig  `mapstructure:"source"`
	Instruments []string      `mapstructure:"instruments"`
	Engine      EngineConfig  `mapstructure:"engine"`
	Output      OutputConfig  `mapstructure:"output"`
	Logging     LoggingConfig `mapstructure:"logging"`
	Server      ServerConfig  `mapstructure:"server"`
}

type SourceConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Token         string `mapstructure:"token"`
	TimeoutSec    int    `mapstructure:"timeout_sec"`
	RatePerSecond int    `mapstructure:"rate_per_second"`
	PageSize      int    `mapstructure:"page_size"`
	MaxPages      int    `mapstructure:"max_pages"`
}

type EngineConfig struct {
	RiskFreeRate  float64 `mapstructure:"risk_free_rate"`
	ValuationDate string  `mapstructure:"valuation_date"`
	DayCount      string  `mapstructure:"day_count"`
	Calendar      string  `mapstructure:"calendar"`
	SpotTolerance float64 `mapstructure:"spot_tolerance"`
	Workers       int     `mapstructure:"workers"`
}

type OutputConfig struct {
	Directory  string `mapstructure:"directory"`
	ResultsCSV bool   `mapstructure:"results_csv"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("source.base_url", "https://push2.eastmoney.com")
	v.SetDefault("source.token", "8dec03ba335b81bf4ebdf7b29ec27d15")
	v.SetDefault("source.timeout_sec", 30)
	v.SetDefault("source.rate_per_second", 2)
	v.SetDefault("source.page_size", 50)
	v.SetDefault("source.max_pages", 5)
	v.SetDefault("instruments", DefaultInstruments)
	v.SetDefault("engine.risk_free_rate", 0.02)
	v.SetDefault("engine.valuation_date", "")
	v.SetDefault("engine.day_count", "ACT/365")
	v.SetDefault("engine.calendar", "XSHG")
	v.SetDefault("engine.spot_tolerance", 1e-6)
	v.SetDefault("engine.workers", 4)
	v.SetDefault("output.directory", "data")
	v.SetDefault("output.results_csv", false)
	v.SetDefault("logging.enabled", false)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")
	v.SetDefault("server.port", "8080")

	// Environment variable support
	v.SetEnvPrefix("SVIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Source.PageSize < 1 {
		return fmt.Errorf("page_size must be >= 1")
	}
	if c.Source.MaxPages < 1 {
		return fmt.Errorf("max_pages must be >= 1")
	}
	if c.Source.RatePerSecond < 1 {
		return fmt.Errorf("rate_per_second must be >= 1")
	}
	if math.IsNaN(c.Engine.RiskFreeRate) || math.IsInf(c.Engine.RiskFreeRate, 0) {
		return fmt.Errorf("risk_free_rate must be finite")
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}
	if _, err := c.Engine.Valuation(time.Now()); err != nil {
		return err
	}
	return nil
}

// Valuation returns the configured valuation date, or the date of fallback
// when none is set.
func (e EngineConfig) Valuation(fallback time.Time) (time.Time, error) {
	if e.ValuationDate == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, e.ValuationDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid valuation_date (use YYYY-MM-DD): %w", err)
	}
	return t, nil
}
