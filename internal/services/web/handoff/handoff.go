// Package handoff carries a saved quote from the quote screen to the booking
// screen.
//
// The quote is stored as a short-lived draft and the browser only holds a
// signed token naming the draft, so the booking backend never receives a
// quote id that the visitor could have edited.
package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/greenblade/lawncare/internal/platform/id"
	"github.com/greenblade/lawncare/internal/services/web/forms"
	"github.com/greenblade/lawncare/internal/services/web/platform/requestmeta"
	"github.com/greenblade/lawncare/internal/services/web/pricing"
	"github.com/greenblade/lawncare/internal/services/web/storage"
)

// DefaultTTL is how long a saved quote stays available for booking.
const DefaultTTL = 24 * time.Hour

// Quote is the state handed from a saved quote to the booking screen.
type Quote struct {
	Form       forms.QuoteForm `json:"form"`
	QuoteID    string          `json:"quote_id"`
	QuoteTotal float64         `json:"quote_total"`
}

// Config wires a handoff Service.
type Config struct {
	Store        storage.DraftStore
	Signer       *Signer
	TTL          time.Duration
	SchemePolicy requestmeta.SchemePolicy
	Logger       *log.Logger
}

// Service saves, loads and discards quote handoffs.
type Service struct {
	store  storage.DraftStore
	signer *Signer
	ttl    time.Duration
	policy requestmeta.SchemePolicy
	logger *log.Logger
	now    func() time.Time
	newID  func() (string, error)
}

// NewService validates cfg and builds a Service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("draft store is required")
	}
	if cfg.Signer == nil {
		return nil, errors.New("handoff signer is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		store:  cfg.Store,
		signer: cfg.Signer,
		ttl:    ttl,
		policy: cfg.SchemePolicy,
		logger: logger,
		now:    time.Now,
		newID:  id.NewID,
	}, nil
}

// Save stores quote as a draft and sets the handoff cookie.
func (s *Service) Save(ctx context.Context, w http.ResponseWriter, r *http.Request, quote Quote) error {
	if s == nil {
		return errors.New("handoff service is not configured")
	}
	if strings.TrimSpace(quote.QuoteID) == "" {
		return errors.New("quote id is required")
	}
	payload, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("encode handoff: %w", err)
	}
	draftID, err := s.newID()
	if err != nil {
		return err
	}
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	if err := s.store.PutDraft(ctx, storage.Draft{
		ID:        draftID,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return fmt.Errorf("store handoff: %w", err)
	}
	token, err := s.signer.Issue(draftID, expiresAt)
	if err != nil {
		return err
	}
	WriteCookie(w, r, token, expiresAt, s.policy)
	return nil
}

// Load returns the handed-off quote for r. A missing, forged or expired
// handoff reports false.
func (s *Service) Load(ctx context.Context, r *http.Request) (Quote, bool) {
	if s == nil {
		return Quote{}, false
	}
	draftID, ok := s.draftID(r)
	if !ok {
		return Quote{}, false
	}
	draft, err := s.store.GetDraft(ctx, draftID, s.now().UTC())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("handoff load failed draft_id=%s err=%v", draftID, err)
		}
		return Quote{}, false
	}
	var quote Quote
	if err := json.Unmarshal(draft.Payload, &quote); err != nil {
		s.logger.Printf("handoff decode failed draft_id=%s err=%v", draftID, err)
		return Quote{}, false
	}
	if quote.Form.Extras == nil {
		quote.Form.Extras = []pricing.Extra{}
	}
	return quote, true
}

// Discard deletes the draft behind r's handoff cookie and clears the cookie.
func (s *Service) Discard(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if s == nil {
		return
	}
	if _, present := ReadCookie(r); !present {
		return
	}
	if draftID, ok := s.draftID(r); ok {
		if err := s.store.DeleteDraft(ctx, draftID); err != nil {
			s.logger.Printf("handoff discard failed draft_id=%s err=%v", draftID, err)
		}
	}
	ClearCookie(w, r, s.policy)
}

func (s *Service) draftID(r *http.Request) (string, bool) {
	token, ok := ReadCookie(r)
	if !ok {
		return "", false
	}
	draftID, err := s.signer.Verify(token)
	if err != nil {
		return "", false
	}
	return draftID, true
}
