package models

import "github.com/shopspring/decimal"

// EventKind identifies the ledger operation an Event records.
type EventKind string

const (
	EventAddParty EventKind = "add_party"
	EventIOU      EventKind = "iou"
)

// Event is one entry of the audit journal.
// Events describe successful mutations only.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// Kind is the operation that produced the event.
	Kind EventKind

	// Party is the name of the party added. Set for EventAddParty.
	Party string

	// Lender and Borrower name the parties of an IOU. Set for EventIOU.
	Lender   string
	Borrower string

	// Amount is the amount lent. Zero for EventAddParty.
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the event was recorded.
	CreatedAt int64
}
