package config

import (
	"testing"

	"github.com/RoyKeane94/toad/internal/entities"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Postgres: PostgresConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "toad_db", SSLMode: "disable"},
		Auth:     AuthConfig{JWTSecret: "secret"},
		Mail:     MailConfig{Transport: MailLog},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "no port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "no postgres password", mutate: func(c *Config) { c.Postgres.Password = "" }},
		{name: "no jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "smtp without host", mutate: func(c *Config) { c.Mail.Transport = MailSMTP }},
		{name: "http without url", mutate: func(c *Config) { c.Mail.Transport = MailHTTP }},
		{name: "unknown transport", mutate: func(c *Config) { c.Mail.Transport = "pigeon" }},
		{name: "smtp with host", mutate: func(c *Config) { c.Mail.Transport = MailSMTP; c.Mail.SMTPHost = "smtp.local" }, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestDSNAndAddr(t *testing.T) {
	cfg := validConfig()
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
	require.Equal(t, "host=localhost port=5432 user=u password=p dbname=toad_db sslmode=disable", cfg.Postgres.DSN())
}

func TestPricesSkipsEmpty(t *testing.T) {
	s := StripeConfig{PricePersonal: "price_p", PriceTeam: "price_t"}
	prices := s.Prices()
	require.Len(t, prices, 2)

	plan, ok := prices.Plan("price_t")
	require.True(t, ok)
	require.Equal(t, entities.PlanTeam, plan)

	_, ok = prices.Plan("")
	require.False(t, ok)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_TRIAL_DAYS", "30")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "from-env", cfg.Auth.JWTSecret)
	require.Equal(t, 30, cfg.App.TrialDays)
	require.Equal(t, MailLog, cfg.Mail.Transport)
}
