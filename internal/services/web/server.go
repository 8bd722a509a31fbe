package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/greenblade/lawncare/internal/platform/timeouts"
	webapp "github.com/greenblade/lawncare/internal/services/web/app"
	"github.com/greenblade/lawncare/internal/services/web/backend"
	"github.com/greenblade/lawncare/internal/services/web/handoff"
	"github.com/greenblade/lawncare/internal/services/web/modules"
	"github.com/greenblade/lawncare/internal/services/web/platform/httpx"
	"github.com/greenblade/lawncare/internal/services/web/platform/observability"
	"github.com/greenblade/lawncare/internal/services/web/platform/requestmeta"
	"github.com/greenblade/lawncare/internal/services/web/routepath"
	webstatic "github.com/greenblade/lawncare/internal/services/web/static"
	"github.com/greenblade/lawncare/internal/services/web/storage"
	websqlite "github.com/greenblade/lawncare/internal/services/web/storage/sqlite"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr       string
	BackendURL     string
	BackendTimeout time.Duration
	DBPath         string
	// HandoffKey signs handoff tokens. A random key is generated when empty,
	// which invalidates saved quotes on restart.
	HandoffKey          []byte
	HandoffTTL          time.Duration
	RequestSchemePolicy requestmeta.SchemePolicy
	Logger              *log.Logger
}

// HandlerConfig carries the collaborators behind the root handler.
type HandlerConfig struct {
	Modules             modules.Dependencies
	RequestSchemePolicy requestmeta.SchemePolicy
	Logger              *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *websqlite.Store
	logger     *log.Logger
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	deps := cfg.Modules
	if deps.Logger == nil {
		deps.Logger = logger
	}
	h, err := webapp.BuildRootHandler(webapp.Config{
		Modules:             modules.DefaultModules(deps),
		RequestSchemePolicy: cfg.RequestSchemePolicy,
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer opens the draft store, wires the backend client and constructs
// a web server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build backend client: %w", err)
	}

	key := cfg.HandoffKey
	if len(key) == 0 {
		key, err = handoff.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("generate handoff key: %w", err)
		}
		logger.Printf("handoff key not configured; saved quotes will not survive a restart")
	}
	signer, err := handoff.NewSigner(key)
	if err != nil {
		return nil, fmt.Errorf("build handoff signer: %w", err)
	}

	store, err := websqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open draft store: %w", err)
	}
	pruneExpiredDrafts(ctx, store, logger)
	handoffs, err := handoff.NewService(handoff.Config{
		Store:        store,
		Signer:       signer,
		TTL:          cfg.HandoffTTL,
		SchemePolicy: cfg.RequestSchemePolicy,
		Logger:       logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build handoff service: %w", err)
	}

	handler, err := NewHandler(HandlerConfig{
		Modules: modules.Dependencies{
			QuoteGateway:   client,
			QuoteHandoff:   handoffs,
			BookingGateway: client,
			BookingHandoff: handoffs,
			Logger:         logger,
		},
		RequestSchemePolicy: cfg.RequestSchemePolicy,
		Logger:              logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:  store,
		logger: logger,
	}, nil
}

// pruneExpiredDrafts clears drafts left over from a previous run. Failures
// are logged; PutDraft prunes again on the next write.
func pruneExpiredDrafts(ctx context.Context, store storage.DraftStore, logger *log.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	defer cancel()
	removed, err := store.PruneExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Printf("draft prune failed err=%v", err)
		return
	}
	if removed > 0 {
		logger.Printf("draft prune removed=%d", removed)
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Printf("close draft store: %v", err)
		}
	}
}
