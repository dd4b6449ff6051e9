package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("MAIL_FROM", "shop@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
	if cfg.DispatchBatchSize != 5 {
		t.Errorf("DispatchBatchSize = %d, want 5", cfg.DispatchBatchSize)
	}
	if cfg.DispatchBatchDelay != 2*time.Second {
		t.Errorf("DispatchBatchDelay = %v, want 2s", cfg.DispatchBatchDelay)
	}
	if cfg.CronSpecSignup != "* * * * *" {
		t.Errorf("CronSpecSignup = %q, want per-minute default", cfg.CronSpecSignup)
	}
	if cfg.CronSpecPromoLastDay != "0 10 * * *" {
		t.Errorf("CronSpecPromoLastDay = %q, want daily default", cfg.CronSpecPromoLastDay)
	}
	if cfg.LogLevel != "info" || cfg.Environment != "development" {
		t.Errorf("LogLevel/Environment = %q/%q, want info/development", cfg.LogLevel, cfg.Environment)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"missing database url", "DATABASE_URL"},
		{"missing smtp host", "SMTP_HOST"},
		{"missing mail from", "MAIL_FROM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.omit, "")
			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded without %s", tt.omit)
			}
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad smtp port", "SMTP_PORT", "not-a-port"},
		{"bad batch size", "DISPATCH_BATCH_SIZE", "zero"},
		{"zero batch size", "DISPATCH_BATCH_SIZE", "0"},
		{"bad batch delay", "DISPATCH_BATCH_DELAY", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DISPATCH_BATCH_SIZE", "10")
	t.Setenv("DISPATCH_BATCH_DELAY", "500ms")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DispatchBatchSize != 10 {
		t.Errorf("DispatchBatchSize = %d, want 10", cfg.DispatchBatchSize)
	}
	if cfg.DispatchBatchDelay != 500*time.Millisecond {
		t.Errorf("DispatchBatchDelay = %v, want 500ms", cfg.DispatchBatchDelay)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want lowercased %q", cfg.Environment, "production")
	}
}
