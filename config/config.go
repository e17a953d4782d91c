// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

// NewConfig loads configuration from environment using viper with typed defaults and validation.
func NewConfig() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, v := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, v)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "debug")
	v.SetDefault("logging.format", "json")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("http.request_timeout", 3*time.Second)
	v.SetDefault("http.body_limit", 1<<20)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db_name", "toad_db")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.migrations_dir", "db/migrations")
	v.SetDefault("postgres.migrate_timeout", 10*time.Second)
	v.SetDefault("postgres.query_timeout", 2*time.Second)
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.rate_limit", 120)
	v.SetDefault("redis.rate_window", time.Minute)
	v.SetDefault("redis.event_ttl", 72*time.Hour)

	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.issuer", "toad")

	v.SetDefault("mail.transport", MailLog)
	v.SetDefault("mail.from", "Toad <hello@toad.app>")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.workers", 2)
	v.SetDefault("mail.queue_size", 100)

	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.trial_days", 14)
	v.SetDefault("app.invitation_ttl", 7*24*time.Hour)
	v.SetDefault("app.campaign_cooldown", 7*24*time.Hour)
	v.SetDefault("app.campaign_concurrency", 4)
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"logging.format",
		"server.host",
		"server.port",
		"server.shutdown_timeout",
		"http.request_timeout",
		"http.body_limit",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.db_name",
		"postgres.ssl_mode",
		"postgres.migrations_dir",
		"postgres.migrate_timeout",
		"postgres.query_timeout",
		"postgres.max_conns",
		"postgres.min_conns",
		"redis.url",
		"redis.rate_limit",
		"redis.rate_window",
		"redis.event_ttl",
		"auth.jwt_secret",
		"auth.token_ttl",
		"auth.issuer",
		"stripe.webhook_secret",
		"stripe.price_personal",
		"stripe.price_pro",
		"stripe.price_team",
		"mail.transport",
		"mail.from",
		"mail.smtp_host",
		"mail.smtp_port",
		"mail.smtp_user",
		"mail.smtp_password",
		"mail.http_url",
		"mail.http_token",
		"mail.workers",
		"mail.queue_size",
		"app.base_url",
		"app.trial_days",
		"app.invitation_ttl",
		"app.campaign_cooldown",
		"app.campaign_concurrency",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
