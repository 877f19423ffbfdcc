// Package config loads runtime configuration from flags, an optional
// config file and PANOPTES_* environment variables, in that precedence.
// Fail-fast: inconsistent values abort startup.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration.
type Config struct {
	Port            string        `mapstructure:"port"`
	DefaultLocation string        `mapstructure:"default_location"`
	RedisURL        string        `mapstructure:"redis_url"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	ProxyURL        string        `mapstructure:"proxy_url"`
	SourceTimeout   time.Duration `mapstructure:"source_timeout"`
	SearchTimeout   time.Duration `mapstructure:"search_timeout"`

	Adzuna AdzunaConfig `mapstructure:"adzuna"`
	Score  ScoreConfig  `mapstructure:"score"`
	Watch  WatchConfig  `mapstructure:"watch"`
}

// AdzunaConfig carries the optional Adzuna API credentials. When either
// field is empty the source is disabled.
type AdzunaConfig struct {
	AppID   string `mapstructure:"app_id"`
	AppKey  string `mapstructure:"app_key"`
	Country string `mapstructure:"country"`
}

// ScoreConfig overrides the match scorer weights.
type ScoreConfig struct {
	KeywordWeight int `mapstructure:"keyword_weight"`
	TitleBonus    int `mapstructure:"title_bonus"`
}

// WatchConfig drives the periodic watch mode.
type WatchConfig struct {
	ProfileFile    string `mapstructure:"profile_file"`
	Location       string `mapstructure:"location"`
	RemoteOnly     bool   `mapstructure:"remote_only"`
	IntervalHours  int    `mapstructure:"interval_hours"`
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID string `mapstructure:"telegram_chat_id"`
	DiscordWebhook string `mapstructure:"discord_webhook"`
}

// Load reads configuration into a validated Config.
func Load() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("PANOPTES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// The fan-out waits for the slowest source, so the overall budget must
	// leave it room to finish.
	if cfg.SearchTimeout <= cfg.SourceTimeout {
		return nil, fmt.Errorf("search_timeout (%s) must exceed source_timeout (%s)",
			cfg.SearchTimeout, cfg.SourceTimeout)
	}
	if cfg.Watch.IntervalHours < 1 {
		return nil, fmt.Errorf("watch.interval_hours must be a positive integer, got %d",
			cfg.Watch.IntervalHours)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("default_location", "Chile")
	viper.SetDefault("redis_url", "")
	viper.SetDefault("cache_ttl", 15*time.Minute)
	viper.SetDefault("proxy_url", "")
	viper.SetDefault("source_timeout", 10*time.Second)
	viper.SetDefault("search_timeout", 15*time.Second)

	viper.SetDefault("adzuna.app_id", "")
	viper.SetDefault("adzuna.app_key", "")
	viper.SetDefault("adzuna.country", "cl")

	viper.SetDefault("score.keyword_weight", 0)
	viper.SetDefault("score.title_bonus", 0)

	viper.SetDefault("watch.profile_file", "profile.json")
	viper.SetDefault("watch.location", "")
	viper.SetDefault("watch.remote_only", false)
	viper.SetDefault("watch.interval_hours", 6)
	viper.SetDefault("watch.telegram_token", "")
	viper.SetDefault("watch.telegram_chat_id", "")
	viper.SetDefault("watch.discord_webhook", "")
}
