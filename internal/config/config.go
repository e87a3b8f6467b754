package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	APIBaseURL   string        `koanf:"api_base_url"`
	APIToken     string        `koanf:"api_token"`
	RestaurantID string        `koanf:"restaurant_id"`
	PollInterval time.Duration `koanf:"poll_interval"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	Timeout      time.Duration `koanf:"timeout"`
	LogFile      string        `koanf:"log_file"`
	Debug        bool          `koanf:"debug"`
}

func New() (Config, error) {
	cfg := Config{
		PollInterval: 5 * time.Second,
		CacheTTL:     5 * time.Minute,
		Timeout:      20 * time.Second,
		LogFile:      "./gormish-orders.log",
		Debug:        false,
	}

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
