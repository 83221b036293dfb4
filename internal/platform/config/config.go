package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean. Empty Redis/Postgres/Kafka settings select the in-memory
// fallbacks, which keeps local development dependency-free.
type Config struct {
	Addr string

	RedisURL    string
	PostgresDSN string

	KafkaBrokers []string
	AuditTopic   string

	SMTP SMTPConfig

	// PIISalt feeds the one-way identifier hasher used by audit and logs.
	PIISalt string

	// SandboxOTPCode is the fixed code stored for the phone channel. A real
	// SMS gateway replaces this; test and sandbox modes keep it.
	SandboxOTPCode string

	EmailOTPTTL time.Duration
	PhoneOTPTTL time.Duration

	// DispatchTimeout bounds outbound mail delivery; a timeout counts as a
	// delivery failure, never as success.
	DispatchTimeout time.Duration
}

// SMTPConfig configures the outbound mail collaborator.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// FromEnv builds a Config from environment variables with local-dev defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("SMARTFIN_ADDR", ":8080"),
		RedisURL:        os.Getenv("SMARTFIN_REDIS_URL"),
		PostgresDSN:     os.Getenv("SMARTFIN_POSTGRES_DSN"),
		AuditTopic:      envOr("SMARTFIN_AUDIT_TOPIC", "smartfinance.audit.v1"),
		PIISalt:         envOr("PII_SALT", "smartfinance_default_salt"),
		SandboxOTPCode:  envOr("SMARTFIN_SANDBOX_OTP", "654321"),
		EmailOTPTTL:     5 * time.Minute,
		PhoneOTPTTL:     2 * time.Minute,
		DispatchTimeout: 10 * time.Second,
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envOr("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	if brokers := os.Getenv("SMARTFIN_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
