package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port       int           `env:"GREENBLADE_TEST_PORT" envDefault:"123"`
	HandoffTTL time.Duration `env:"GREENBLADE_TEST_TTL" envDefault:"24h"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.HandoffTTL != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %s", cfg.HandoffTTL)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("GREENBLADE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
