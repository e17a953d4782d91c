package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/RoyKeane94/toad/internal/entities"
)

// Mail transports.
const (
	MailSMTP = "smtp"
	MailHTTP = "http"
	MailLog  = "log"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Mail     MailConfig     `mapstructure:"mail"`
	App      AppConfig      `mapstructure:"app"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
		return errors.New("postgres credentials are required")
	}
	if c.Postgres.Host == "" {
		return errors.New("postgres.host is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	switch c.Mail.Transport {
	case MailLog:
	case MailSMTP:
		if c.Mail.SMTPHost == "" {
			return errors.New("mail.smtp_host is required for smtp transport")
		}
	case MailHTTP:
		if c.Mail.HTTPURL == "" {
			return errors.New("mail.http_url is required for http transport")
		}
	default:
		return fmt.Errorf("unknown mail.transport %q", c.Mail.Transport)
	}
	return nil
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	BodyLimit      int           `mapstructure:"body_limit"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrationsDir  string        `mapstructure:"migrations_dir"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// RedisConfig describes the redis connection and rate limiting.
type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
	EventTTL   time.Duration `mapstructure:"event_ttl"`
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

// StripeConfig holds the webhook secret and the price ids of each plan.
type StripeConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
	PricePersonal string `mapstructure:"price_personal"`
	PricePro      string `mapstructure:"price_pro"`
	PriceTeam     string `mapstructure:"price_team"`
}

// Prices maps configured price ids to plans, skipping empty ones.
func (s StripeConfig) Prices() entities.PriceMap {
	m := entities.PriceMap{}
	if s.PricePersonal != "" {
		m[s.PricePersonal] = entities.PlanPersonal
	}
	if s.PricePro != "" {
		m[s.PricePro] = entities.PlanPro
	}
	if s.PriceTeam != "" {
		m[s.PriceTeam] = entities.PlanTeam
	}
	return m
}

// MailConfig selects and configures the outbound mail transport.
type MailConfig struct {
	Transport    string `mapstructure:"transport"`
	From         string `mapstructure:"from"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	HTTPURL      string `mapstructure:"http_url"`
	HTTPToken    string `mapstructure:"http_token"`
	Workers      int    `mapstructure:"workers"`
	QueueSize    int    `mapstructure:"queue_size"`
}

// AppConfig holds product rules that operators may tune.
type AppConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	TrialDays           int           `mapstructure:"trial_days"`
	InvitationTTL       time.Duration `mapstructure:"invitation_ttl"`
	CampaignCooldown    time.Duration `mapstructure:"campaign_cooldown"`
	CampaignConcurrency int           `mapstructure:"campaign_concurrency"`
}
