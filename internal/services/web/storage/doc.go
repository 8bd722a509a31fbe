// Package storage declares persistence interfaces for web-owned UI state.
//
// Drafts are disposable handoff state between screens. The booking backend
// stays the source of truth for quotes and bookings.
package storage
