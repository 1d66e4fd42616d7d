package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	// Merchant API fetch
	APIBaseURL string `mapstructure:"api_base_url"`
	MerchantID string `mapstructure:"merchant_id"`
	APIToken   string `mapstructure:"api_token"`
	PageSize   int    `mapstructure:"page_size"`
	MaxRetries int    `mapstructure:"max_retries"`

	// Redis page cache for fetched orders
	RedisEnabled bool          `mapstructure:"redis_enabled"`
	RedisAddr    string        `mapstructure:"redis_addr"`
	RedisTTL     time.Duration `mapstructure:"redis_ttl"`

	// Pipeline
	Timezone        string   `mapstructure:"timezone"`
	ExcludedWeekday string   `mapstructure:"excluded_weekday"`
	WindowSize      int      `mapstructure:"window_size"`
	Categories      []string `mapstructure:"categories"`

	// Weather
	WeatherFile string `mapstructure:"weather_file"`

	// Series cache
	CacheFile         string             `mapstructure:"cache_file"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	// Sinks
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`
	PostgresEnabled bool   `mapstructure:"postgres_enabled"`
	DatabaseURL     string `mapstructure:"database_url"`

	// Dashboard
	DashboardAddr string  `mapstructure:"dashboard_addr"`
	SafetyMargin  float64 `mapstructure:"safety_margin"`

	// Synthetic order generation
	Seed            int       `mapstructure:"seed"`
	GenStartDate    time.Time `mapstructure:"gen_start_date"`
	GenDays         int       `mapstructure:"gen_days"`
	GenOrdersPerDay int       `mapstructure:"gen_orders_per_day"`
	GenOutputFile   string    `mapstructure:"gen_output_file"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("api_base_url", "https://api.clover.com")
	viper.SetDefault("page_size", 1000)
	viper.SetDefault("max_retries", 5)
	viper.SetDefault("timezone", "America/Denver")
	viper.SetDefault("excluded_weekday", "Sunday")
	viper.SetDefault("window_size", 7)
	viper.SetDefault("safety_margin", 1.10)
	viper.SetDefault("redis_ttl", "24h")
	viper.SetDefault("dashboard_addr", ":8080")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("kafka_topic", "daily_totals")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// Location resolves the configured time zone.
func (cfg *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// Excluded resolves the configured weekday name to a time.Weekday.
func (cfg *Config) Excluded() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), cfg.ExcludedWeekday) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid excluded_weekday %q", cfg.ExcludedWeekday)
}

// CategoryList returns the configured categories, defaulting to every
// weight and count category plus the temperature key.
func (cfg *Config) CategoryList() []Category {
	if len(cfg.Categories) == 0 {
		out := make([]Category, 0, len(WeightCategories)+len(CountCategories)+1)
		out = append(out, WeightCategories...)
		out = append(out, CountCategories...)
		out = append(out, CategoryHigh)
		return out
	}
	out := make([]Category, len(cfg.Categories))
	for i, c := range cfg.Categories {
		out[i] = Category(c)
	}
	return out
}
