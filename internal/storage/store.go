// Package storage provides abstractions for the ledger's audit journal.
package storage

import (
	"context"

	"github.com/mmynk/iouledger/internal/models"
)

// Journal defines the interface for the append-only event journal.
// The journal is an audit trail: ledger state is never rebuilt from it.
// This abstraction allows swapping storage backends without changing
// the audit layer.
type Journal interface {
	// AppendEvent persists a new event.
	// The event.ID and event.CreatedAt fields are populated by the journal if unset.
	AppendEvent(ctx context.Context, event *models.Event) error

	// ListEvents returns the most recent events, newest first.
	// A limit of zero or less returns every event.
	ListEvents(ctx context.Context, limit int) ([]*models.Event, error)

	// Close releases any resources held by the journal.
	Close() error
}
