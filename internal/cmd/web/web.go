// Package web parses web command flags and starts the browser frontend.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/greenblade/lawncare/internal/platform/cmd"
	"github.com/greenblade/lawncare/internal/services/web"
	"github.com/greenblade/lawncare/internal/services/web/handoff"
	"github.com/greenblade/lawncare/internal/services/web/platform/requestmeta"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"GREENBLADE_WEB_HTTP_ADDR"             envDefault:"localhost:8080"`
	BackendURL          string        `env:"GREENBLADE_WEB_BACKEND_URL"           envDefault:"http://localhost:8000"`
	BackendTimeout      time.Duration `env:"GREENBLADE_WEB_BACKEND_TIMEOUT"       envDefault:"10s"`
	DBPath              string        `env:"GREENBLADE_WEB_DB_PATH"               envDefault:"data/web.db"`
	HandoffKey          string        `env:"GREENBLADE_WEB_HANDOFF_KEY"`
	HandoffTTL          time.Duration `env:"GREENBLADE_WEB_HANDOFF_TTL"           envDefault:"24h"`
	TrustForwardedProto bool          `env:"GREENBLADE_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "Booking backend base URL")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Quote draft SQLite path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		serverCfg, err := serverConfig(cfg)
		if err != nil {
			return err
		}
		server, err := web.NewServer(ctx, serverCfg)
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config) (web.Config, error) {
	var key []byte
	if encoded := strings.TrimSpace(cfg.HandoffKey); encoded != "" {
		decoded, err := handoff.DecodeKey(encoded)
		if err != nil {
			return web.Config{}, fmt.Errorf("decode handoff key: %w", err)
		}
		key = decoded
	}
	return web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		BackendURL:          cfg.BackendURL,
		BackendTimeout:      cfg.BackendTimeout,
		DBPath:              cfg.DBPath,
		HandoffKey:          key,
		HandoffTTL:          cfg.HandoffTTL,
		RequestSchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	}, nil
}
