package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string // optional; empty disables the quote cache
	QuoteTimeout        time.Duration
	QuoteCurrency       string // vs_currency for crypto quotes (e.g. "eur")
	QuoteCacheTTL       time.Duration
	RefreshSchedule     string // cron expression; empty disables the refresh job
	SnapshotRetention   int    // snapshots kept by the prune job; 0 keeps everything
	FrontendURLEndsWith string
	DevPassword         string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		dbURL = "networth.db"
	}

	quoteTimeout := viper.GetInt("QUOTE_TIMEOUT_SECONDS")
	if quoteTimeout <= 0 {
		quoteTimeout = 8
	}
	quoteCurrency := strings.ToLower(viper.GetString("QUOTE_CURRENCY"))
	if quoteCurrency == "" {
		quoteCurrency = "eur"
	}
	cacheTTL := viper.GetInt("QUOTE_CACHE_TTL_SECONDS")
	if cacheTTL <= 0 {
		cacheTTL = 60
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		QuoteTimeout:        time.Duration(quoteTimeout) * time.Second,
		QuoteCurrency:       quoteCurrency,
		QuoteCacheTTL:       time.Duration(cacheTTL) * time.Second,
		RefreshSchedule:     viper.GetString("REFRESH_SCHEDULE"),
		SnapshotRetention:   viper.GetInt("SNAPSHOT_RETENTION"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
	}, nil
}
