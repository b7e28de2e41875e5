package models

import "github.com/shopspring/decimal"

// Transfer is a suggested payment between two parties to settle debts.
type Transfer struct {
	// From is the party who pays (debtor settling up).
	From string

	// To is the party who receives the payment (creditor being paid).
	To string

	// Amount is the payment amount.
	Amount decimal.Decimal
}
