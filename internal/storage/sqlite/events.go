package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/models"
)

// AppendEvent persists a new event to the journal.
func (s *SQLiteStore) AppendEvent(ctx context.Context, event *models.Event) error {
	// Generate ID if not set
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, kind, party, lender, borrower, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, string(event.Kind), nullable(event.Party), nullable(event.Lender), nullable(event.Borrower),
		event.Amount.String(), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// ListEvents retrieves the most recent events, newest first.
func (s *SQLiteStore) ListEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, party, lender, borrower, amount, created_at
		 FROM events ORDER BY seq DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		var kind, amount string
		var party, lender, borrower sql.NullString

		if err := rows.Scan(&event.ID, &kind, &party, &lender, &borrower, &amount, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.Kind = models.EventKind(kind)
		event.Party = party.String
		event.Lender = lender.String
		event.Borrower = borrower.String
		event.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount of event %s: %w", event.ID, err)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// nullable stores empty strings as NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
