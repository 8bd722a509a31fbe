// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// BackendRequest caps one call from the web frontend to the booking backend.
const BackendRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreOpen bounds the initial ping of a local SQLite store.
const StoreOpen = 5 * time.Second
