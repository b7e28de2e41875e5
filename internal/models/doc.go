// Package models defines the core domain models for the IOU ledger.
//
// # Models
//
//   - Party: a named participant with two debt maps and a derived balance
//   - Event: one entry of the audit journal (a party added or an IOU recorded)
//   - Transfer: a suggested payment that would help clear outstanding balances
//
// Parties are identified by name. Names are unique within a ledger and never
// change after the party is created.
//
// # Amounts
//
// All amounts are decimal.Decimal so that netting a debt down to exactly zero
// is exact. Conversion to float64 happens only at the wire boundary.
package models
