// Package audit decorates the ledger with observability: structured log
// events, Prometheus metrics and an append-only journal. The ledger itself
// stays free of I/O.
package audit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/calculator"
	"github.com/mmynk/iouledger/internal/ledger"
	"github.com/mmynk/iouledger/internal/models"
	"github.com/mmynk/iouledger/internal/storage"
)

// ErrNoJournal is returned by History when no journal is configured.
var ErrNoJournal = errors.New("journal not configured")

const (
	opAddParty  = "add_party"
	opRecordIOU = "record_iou"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithJournal appends an event to j for every successful mutation.
func WithJournal(j storage.Journal) Option {
	return func(r *Recorder) {
		r.journal = j
	}
}

// WithMetrics updates m on every operation.
func WithMetrics(m *Metrics) Option {
	return func(r *Recorder) {
		r.metrics = m
	}
}

// WithLogger sets the logger for operation events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = l
	}
}

// Recorder wraps a Ledger and reports every operation.
type Recorder struct {
	ledger  *ledger.Ledger
	journal storage.Journal
	metrics *Metrics
	logger  *slog.Logger
}

// New wraps l. Without options it only logs.
func New(l *ledger.Ledger, opts ...Option) *Recorder {
	r := &Recorder{ledger: l, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics != nil {
		r.metrics.parties.Set(float64(l.Len()))
	}
	return r
}

// AddParty registers a party.
func (r *Recorder) AddParty(ctx context.Context, name string) (models.Party, error) {
	p, err := r.ledger.AddParty(name)
	if err != nil {
		r.metrics.observe(opAddParty, result(err))
		r.logger.WarnContext(ctx, "AddParty rejected", "name", name, "error", err)
		return models.Party{}, err
	}

	r.metrics.observe(opAddParty, result(nil))
	if r.metrics != nil {
		r.metrics.parties.Set(float64(r.ledger.Len()))
	}
	r.logger.InfoContext(ctx, "Party added", "name", p.Name)
	r.append(ctx, &models.Event{Kind: models.EventAddParty, Party: p.Name})

	return p, nil
}

// RecordIOU records a loan from lender to borrower and returns both parties sorted by name.
func (r *Recorder) RecordIOU(ctx context.Context, lender, borrower string, amount decimal.Decimal) ([]models.Party, error) {
	parties, err := r.ledger.RecordIOU(lender, borrower, amount)
	if err != nil {
		r.metrics.observe(opRecordIOU, result(err))
		r.logger.WarnContext(ctx, "RecordIOU rejected",
			"lender", lender,
			"borrower", borrower,
			"amount", amount.String(),
			"error", err,
		)
		return nil, err
	}

	r.metrics.observe(opRecordIOU, result(nil))
	if r.metrics != nil {
		r.metrics.amounts.Observe(amount.InexactFloat64())
	}
	attrs := []any{"lender", lender, "borrower", borrower, "amount", amount.String()}
	for _, p := range parties {
		attrs = append(attrs, p.Name+"_balance", p.Balance.String())
	}
	r.logger.InfoContext(ctx, "IOU recorded", attrs...)
	r.append(ctx, &models.Event{
		Kind:     models.EventIOU,
		Lender:   lender,
		Borrower: borrower,
		Amount:   amount,
	})

	return parties, nil
}

// ListParties returns parties sorted by name, optionally filtered by names.
func (r *Recorder) ListParties(ctx context.Context, names []string) []models.Party {
	parties := r.ledger.ListParties(names)
	r.logger.DebugContext(ctx, "Parties listed", "requested", len(names), "returned", len(parties))
	return parties
}

// Settlements suggests transfers that would clear every balance.
func (r *Recorder) Settlements(ctx context.Context) []models.Transfer {
	transfers := calculator.Settle(r.ledger.ListParties(nil))
	r.logger.DebugContext(ctx, "Settlements computed", "transfers", len(transfers))
	return transfers
}

// History returns the most recent journal events, newest first.
func (r *Recorder) History(ctx context.Context, limit int) ([]*models.Event, error) {
	if r.journal == nil {
		return nil, ErrNoJournal
	}
	return r.journal.ListEvents(ctx, limit)
}

// append writes to the journal. Failures are logged only: the ledger has
// already applied the mutation.
func (r *Recorder) append(ctx context.Context, event *models.Event) {
	if r.journal == nil {
		return
	}
	if err := r.journal.AppendEvent(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "Failed to append journal event", "kind", event.Kind, "error", err)
	}
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ledger.ErrNotFound):
		return "not_found"
	case errors.Is(err, ledger.ErrDuplicateParty):
		return "duplicate"
	case errors.Is(err, ledger.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
