package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"4002"`
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	Secret        string `env:"SECRET,required"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"120"`

	OTPRateWindowMinutes int `env:"OTP_RATE_WINDOW_MINUTES" envDefault:"10"`
	OTPRateMax           int `env:"OTP_RATE_MAX" envDefault:"3"`

	GenerativeAPIKey  string `env:"GENERATIVE_AI_API_KEY"`
	GenerativeBaseURL string `env:"GENERATIVE_AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GenerativeModel   string `env:"GENERATIVE_AI_MODEL" envDefault:"gemini-1.5-flash-8b"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

var (
	ErrSecretMissing      = errors.New("SECRET must be set")
	ErrDatabaseURLMissing = errors.New("DATABASE_URL must be set")
	ErrUnknownStoreDriver = errors.New("unknown STORE_DRIVER")
)

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rechaza configuraciones con las que el servicio no debe arrancar.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return ErrSecretMissing
	}
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return ErrDatabaseURLMissing
		}
	case StoreDriverMemory:
	default:
		return ErrUnknownStoreDriver
	}
	return nil
}

// TokenTTL devuelve la vida de los access tokens; 120h si no es positiva.
func (c *Config) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 120 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) OTPRateWindow() time.Duration {
	if c.OTPRateWindowMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.OTPRateWindowMinutes) * time.Minute
}
