// Package web hosts the GreenBlade browser frontend: the landing page, the
// quote calculator with its live price preview, and the booking form.
//
// Pricing shown here is a preview only. Quotes and bookings are created by
// the booking backend, which owns the authoritative totals and identifiers.
package web
