package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Stream StreamConfig `mapstructure:"stream"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // e.g., "local", "prod"
}

type StreamConfig struct {
	Interval time.Duration `mapstructure:"interval"` // pacing between frames
	Tickers  []string      `mapstructure:"tickers"`  // symbols accepted on /stream
	PriceMin float64       `mapstructure:"price_min"`
	PriceMax float64       `mapstructure:"price_max"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"` // latest-quote cache is optional
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoadConfig reads configuration from .env file, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Load .env file into System Environment (if it exists)
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, relying on System Env Vars")
	}

	// 2. Set Defaults (12-Factor App: Dev/Prod Parity)
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.env", "local")

	v.SetDefault("stream.interval", "2s")
	v.SetDefault("stream.tickers", []string{"AAPL", "GOOG", "TSLA", "AMZN"})
	v.SetDefault("stream.price_min", 180.0)
	v.SetDefault("stream.price_max", 185.0)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// 3. Configure Viper to read Environment Variables
	// Maps dot-notation to underscores (e.g., "stream.interval" -> "STREAM_INTERVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Explicitly Bind Env Vars to Keys
	// Crucial for Viper to map flat Env Vars (APP_PORT) to nested structs (App.Port)
	bindEnv(v, "app.port", "app.env")
	bindEnv(v, "stream.interval", "stream.tickers", "stream.price_min", "stream.price_max")
	bindEnv(v, "redis.enabled", "redis.addr", "redis.password", "redis.db")

	// 5. Unmarshal into Struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %v", err)
	}

	// 6. Basic Validation
	if len(cfg.Stream.Tickers) == 0 {
		return nil, fmt.Errorf("stream tickers cannot be empty")
	}
	if cfg.Stream.Interval <= 0 {
		return nil, fmt.Errorf("stream interval must be positive")
	}
	if cfg.Stream.PriceMin >= cfg.Stream.PriceMax {
		return nil, fmt.Errorf("stream price_min must be below price_max")
	}

	return &cfg, nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
