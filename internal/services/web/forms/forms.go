// Package forms parses and validates the quote and booking form records.
package forms

import (
	"math"
	"net/mail"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/greenblade/lawncare/internal/services/web/pricing"
)

// Form field names shared by templates, parsing and validation.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldZipCode       = "zip_code"
	FieldLawnSize      = "lawn_size_sqft"
	FieldFrequency     = "frequency"
	FieldExtras        = "extras"
	FieldNotes         = "notes"
	FieldPreferredDate = "preferred_date"
	FieldPriceTotal    = "price_total"
	FieldToggle        = "toggle"
)

const (
	// DefaultLawnSize is the lawn size a fresh quote starts with.
	DefaultLawnSize = 1000
	// MinLawnSize is the smallest lawn accepted on submit.
	MinLawnSize = 100
	// DateLayout is the preferred date wire format.
	DateLayout = "2006-01-02"
)

// FieldErrors maps a field name to the localization key of its error.
type FieldErrors map[string]string

// Empty reports whether no field failed validation.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Get returns the error key recorded for field.
func (e FieldErrors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// QuoteForm is the quote record entered on the quote screen.
type QuoteForm struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Address      string            `json:"address"`
	ZipCode      string            `json:"zip_code"`
	LawnSizeSqft int               `json:"lawn_size_sqft"`
	Frequency    pricing.Frequency `json:"frequency"`
	Extras       []pricing.Extra   `json:"extras"`
	lawnSizeRaw  string
}

// DefaultQuoteForm returns the form a new visitor sees.
func DefaultQuoteForm() QuoteForm {
	return QuoteForm{
		LawnSizeSqft: DefaultLawnSize,
		Frequency:    pricing.FrequencyWeekly,
		Extras:       []pricing.Extra{},
	}
}

// ParseQuoteForm reads a quote form from posted values. Parsing never fails:
// an unreadable lawn size becomes 0 and is reported by Validate.
func ParseQuoteForm(values url.Values) QuoteForm {
	form := QuoteForm{
		Name:      strings.TrimSpace(values.Get(FieldName)),
		Email:     strings.TrimSpace(values.Get(FieldEmail)),
		Address:   strings.TrimSpace(values.Get(FieldAddress)),
		ZipCode:   strings.TrimSpace(values.Get(FieldZipCode)),
		Frequency: pricing.Frequency(strings.TrimSpace(values.Get(FieldFrequency))),
		Extras:    []pricing.Extra{},
	}
	form.lawnSizeRaw = strings.TrimSpace(values.Get(FieldLawnSize))
	if size, err := strconv.Atoi(form.lawnSizeRaw); err == nil {
		form.LawnSizeSqft = size
	}
	for _, raw := range values[FieldExtras] {
		form.Extras = appendUnique(form.Extras, pricing.Extra(strings.TrimSpace(raw)))
	}
	return form
}

// LawnSizeInput returns the lawn size as the visitor typed it, falling back to
// the parsed value.
func (f QuoteForm) LawnSizeInput() string {
	if f.lawnSizeRaw != "" {
		return f.lawnSizeRaw
	}
	return strconv.Itoa(f.LawnSizeSqft)
}

// HasExtra reports whether extra is selected.
func (f QuoteForm) HasExtra(extra pricing.Extra) bool {
	return slices.Contains(f.Extras, extra)
}

// ToggleExtra removes extra when selected and appends it otherwise. Unknown
// extras are ignored and reported as false.
func (f *QuoteForm) ToggleExtra(extra pricing.Extra) bool {
	if !extra.Valid() {
		return false
	}
	if idx := slices.Index(f.Extras, extra); idx >= 0 {
		f.Extras = slices.Delete(slices.Clone(f.Extras), idx, idx+1)
		return true
	}
	f.Extras = append(slices.Clone(f.Extras), extra)
	return true
}

// Preview prices the form as currently entered.
func (f QuoteForm) Preview() pricing.Breakdown {
	return pricing.Preview(f.LawnSizeSqft, f.Frequency, f.Extras)
}

// Validate checks the fields required to save a quote.
func (f QuoteForm) Validate() FieldErrors {
	errs := FieldErrors{}
	f.validateContact(errs)
	f.validateService(errs)
	return errs
}

func (f QuoteForm) validateContact(errs FieldErrors) {
	if f.Name == "" {
		errs[FieldName] = "form.error.name_required"
	}
	switch {
	case f.Email == "":
		errs[FieldEmail] = "form.error.email_required"
	case !ValidEmail(f.Email):
		errs[FieldEmail] = "form.error.email_invalid"
	}
	if f.Address == "" {
		errs[FieldAddress] = "form.error.address_required"
	}
	if f.ZipCode == "" {
		errs[FieldZipCode] = "form.error.zip_code_required"
	}
}

func (f QuoteForm) validateService(errs FieldErrors) {
	if f.LawnSizeSqft < MinLawnSize {
		errs[FieldLawnSize] = "form.error.lawn_size_invalid"
	}
	if !f.Frequency.Valid() {
		errs[FieldFrequency] = "form.error.frequency_invalid"
	}
	for _, extra := range f.Extras {
		if !extra.Valid() {
			errs[FieldExtras] = "form.error.extras_invalid"
			break
		}
	}
}

// ValidEmail reports whether value is a bare address such as a@b.co.
func ValidEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return at > 0 && strings.Contains(value[at+1:], ".")
}

// BookingForm is the booking record: the quote fields plus contact and
// scheduling details.
type BookingForm struct {
	QuoteForm
	Phone         string
	Notes         string
	PreferredDate string
	PriceTotal    float64
	priceTotalRaw string
}

// NewBookingForm seeds a booking form from a quote and its total.
func NewBookingForm(quote QuoteForm, total float64) BookingForm {
	if quote.Extras == nil {
		quote.Extras = []pricing.Extra{}
	}
	return BookingForm{QuoteForm: quote, PriceTotal: total}
}

// ParseBookingForm reads a booking form from posted values. An empty total
// parses as 0.
func ParseBookingForm(values url.Values) BookingForm {
	form := BookingForm{
		QuoteForm:     ParseQuoteForm(values),
		Phone:         strings.TrimSpace(values.Get(FieldPhone)),
		Notes:         strings.TrimSpace(values.Get(FieldNotes)),
		PreferredDate: strings.TrimSpace(values.Get(FieldPreferredDate)),
	}
	form.priceTotalRaw = strings.TrimSpace(values.Get(FieldPriceTotal))
	if total, ok := parseTotal(form.priceTotalRaw); ok {
		form.PriceTotal = total
	}
	return form
}

// PriceTotalInput returns the total as typed, falling back to the parsed
// value with two decimals.
func (f BookingForm) PriceTotalInput() string {
	if f.priceTotalRaw != "" {
		return f.priceTotalRaw
	}
	return strconv.FormatFloat(f.PriceTotal, 'f', 2, 64)
}

// PreferredDateValue returns the parsed preferred date, if any.
func (f BookingForm) PreferredDateValue() (time.Time, bool) {
	if f.PreferredDate == "" {
		return time.Time{}, false
	}
	date, err := time.Parse(DateLayout, f.PreferredDate)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// Validate checks the fields required to create a booking.
func (f BookingForm) Validate() FieldErrors {
	errs := FieldErrors{}
	f.validateContact(errs)
	f.validateService(errs)
	if f.Phone == "" {
		errs[FieldPhone] = "form.error.phone_required"
	}
	if f.PreferredDate != "" {
		if _, ok := f.PreferredDateValue(); !ok {
			errs[FieldPreferredDate] = "form.error.preferred_date_invalid"
		}
	}
	if _, ok := parseTotal(f.priceTotalRaw); !ok {
		errs[FieldPriceTotal] = "form.error.price_total_invalid"
	}
	return errs
}

func parseTotal(raw string) (float64, bool) {
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func appendUnique(extras []pricing.Extra, extra pricing.Extra) []pricing.Extra {
	if extra == "" || slices.Contains(extras, extra) {
		return extras
	}
	return append(extras, extra)
}
