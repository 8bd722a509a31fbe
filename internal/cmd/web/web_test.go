package web

import (
	"encoding/base64"
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.BackendURL != "http://localhost:8000" {
		t.Fatalf("BackendURL = %q, want %q", cfg.BackendURL, "http://localhost:8000")
	}
	if cfg.DBPath != "data/web.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/web.db")
	}
	if cfg.HandoffTTL != 24*time.Hour {
		t.Fatalf("HandoffTTL = %v, want 24h", cfg.HandoffTTL)
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Fatalf("BackendTimeout = %v, want 10s", cfg.BackendTimeout)
	}
	if cfg.TrustForwardedProto {
		t.Fatal("TrustForwardedProto = true, want false")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("GREENBLADE_WEB_HTTP_ADDR", "env-addr")
	t.Setenv("GREENBLADE_WEB_BACKEND_URL", "http://env-backend")
	t.Setenv("GREENBLADE_WEB_HANDOFF_TTL", "2h")
	t.Setenv("GREENBLADE_WEB_TRUST_FORWARDED_PROTO", "true")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "127.0.0.1:9000",
		"-db-path", "/tmp/drafts.db",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("HTTPAddr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.BackendURL != "http://env-backend" {
		t.Fatalf("BackendURL = %q, want env value", cfg.BackendURL)
	}
	if cfg.DBPath != "/tmp/drafts.db" {
		t.Fatalf("DBPath = %q, want flag value", cfg.DBPath)
	}
	if cfg.HandoffTTL != 2*time.Hour {
		t.Fatalf("HandoffTTL = %v, want 2h", cfg.HandoffTTL)
	}
	if !cfg.TrustForwardedProto {
		t.Fatal("TrustForwardedProto = false, want true")
	}
}

func TestParseConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("GREENBLADE_WEB_BACKEND_TIMEOUT", "soon")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestServerConfigDecodesHandoffKey(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789abcdef0123456789abcdef")
	cfg, err := serverConfig(Config{
		HTTPAddr:            "localhost:8080",
		HandoffKey:          base64.StdEncoding.EncodeToString(key),
		TrustForwardedProto: true,
	})
	if err != nil {
		t.Fatalf("serverConfig() error = %v", err)
	}
	if string(cfg.HandoffKey) != string(key) {
		t.Fatalf("HandoffKey = %q", cfg.HandoffKey)
	}
	if !cfg.RequestSchemePolicy.TrustForwardedProto {
		t.Fatal("scheme policy not carried")
	}
}

func TestServerConfigRejectsBadHandoffKey(t *testing.T) {
	t.Parallel()

	if _, err := serverConfig(Config{HandoffKey: "not base64!"}); err == nil {
		t.Fatal("expected key decode error")
	}
}

func TestServerConfigLeavesEmptyKeyUnset(t *testing.T) {
	t.Parallel()

	cfg, err := serverConfig(Config{})
	if err != nil {
		t.Fatalf("serverConfig() error = %v", err)
	}
	if cfg.HandoffKey != nil {
		t.Fatalf("HandoffKey = %v, want nil", cfg.HandoffKey)
	}
}
