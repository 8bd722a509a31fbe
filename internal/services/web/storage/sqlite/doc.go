// Package sqlite provides the quote draft store backed by SQLite.
package sqlite
