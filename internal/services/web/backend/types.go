package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/greenblade/lawncare/internal/services/web/platform/errors"
)

// ErrCreateQuote is the only error shown when saving a quote fails.
var ErrCreateQuote = apperrors.EK(apperrors.KindUpstream, "quote.error.failed", "Failed to create quote")

// ErrCreateBooking is the only error shown when creating a booking fails.
var ErrCreateBooking = apperrors.EK(apperrors.KindUpstream, "book.error.failed", "Failed to create booking")

// ID is a backend identifier. The backend may encode ids as JSON strings or
// numbers; both decode to their textual form.
type ID string

// UnmarshalJSON accepts a string, a number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id text.
func (id ID) String() string {
	return string(id)
}

// QuoteRequest is the body of POST /api/quote.
type QuoteRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Address      string   `json:"address"`
	ZipCode      string   `json:"zip_code"`
	LawnSizeSqft int      `json:"lawn_size_sqft"`
	Frequency    string   `json:"frequency"`
	Extras       []string `json:"extras"`
}

// Quote is the saved quote returned by the backend.
type Quote struct {
	ID    ID      `json:"id"`
	Total float64 `json:"total"`
}

// BookingRequest is the body of POST /api/book. Nil pointers encode as null.
type BookingRequest struct {
	QuoteID       *string  `json:"quote_id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	ZipCode       string   `json:"zip_code"`
	LawnSizeSqft  int      `json:"lawn_size_sqft"`
	Frequency     string   `json:"frequency"`
	Extras        []string `json:"extras"`
	Notes         *string  `json:"notes"`
	PreferredDate *string  `json:"preferred_date"`
	PriceTotal    float64  `json:"price_total"`
}

// Booking is the booking confirmation returned by the backend.
type Booking struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
}

// OptionalString returns nil for blank values so they encode as null.
func OptionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
