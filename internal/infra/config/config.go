package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the notification engine.
type AppConfig struct {
	DatabaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	DispatchBatchSize  int
	DispatchBatchDelay time.Duration

	CronSpecSignup         string
	CronSpecOrderPlaced    string
	CronSpecOrderDelivered string
	CronSpecPlanRequest    string
	CronSpecPromoLastDay   string // runs daily, logic inside checks for last day of month

	MetricsAddr string
	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables; a missing .env
	// file is not an error.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}

	portStr := os.Getenv("SMTP_PORT")
	if portStr == "" {
		portStr = "587"
	}
	cfg.SMTPPort, err = strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")

	cfg.MailFrom = os.Getenv("MAIL_FROM")
	if cfg.MailFrom == "" {
		return nil, fmt.Errorf("MAIL_FROM is not set")
	}
	cfg.MailFromName = os.Getenv("MAIL_FROM_NAME")
	if cfg.MailFromName == "" {
		cfg.MailFromName = "Glow Skincare Shop"
	}

	batchSizeStr := os.Getenv("DISPATCH_BATCH_SIZE")
	if batchSizeStr == "" {
		batchSizeStr = "5"
	}
	cfg.DispatchBatchSize, err = strconv.Atoi(batchSizeStr)
	if err != nil || cfg.DispatchBatchSize < 1 {
		return nil, fmt.Errorf("invalid DISPATCH_BATCH_SIZE %q", batchSizeStr)
	}

	batchDelayStr := os.Getenv("DISPATCH_BATCH_DELAY")
	if batchDelayStr == "" {
		batchDelayStr = "2s"
	}
	cfg.DispatchBatchDelay, err = time.ParseDuration(batchDelayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_BATCH_DELAY: %w", err)
	}

	cfg.CronSpecSignup = envOrDefault("CRON_SPEC_SIGNUP", "* * * * *")
	cfg.CronSpecOrderPlaced = envOrDefault("CRON_SPEC_ORDER_PLACED", "* * * * *")
	cfg.CronSpecOrderDelivered = envOrDefault("CRON_SPEC_ORDER_DELIVERED", "* * * * *")
	cfg.CronSpecPlanRequest = envOrDefault("CRON_SPEC_PLAN_REQUEST", "* * * * *")
	cfg.CronSpecPromoLastDay = envOrDefault("CRON_SPEC_PROMO_LAST_DAY", "0 10 * * *")

	cfg.MetricsAddr = envOrDefault("METRICS_ADDR", ":9090")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
