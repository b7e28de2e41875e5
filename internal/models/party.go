package models

import "github.com/shopspring/decimal"

// Party is a participant in the ledger.
type Party struct {
	// Name uniquely identifies the party. Immutable after creation.
	Name string

	// Owes maps a counterparty name to the amount this party owes them.
	// Every value is strictly positive; settled debts are removed.
	Owes map[string]decimal.Decimal

	// OwedBy maps a counterparty name to the amount they owe this party.
	// Same positivity rule as Owes.
	OwedBy map[string]decimal.Decimal

	// Balance is sum(OwedBy) - sum(Owes).
	// Positive = owed money, Negative = owes money.
	Balance decimal.Decimal
}

// NewParty returns a party with empty debt maps and a zero balance.
func NewParty(name string) Party {
	return Party{
		Name:    name,
		Owes:    make(map[string]decimal.Decimal),
		OwedBy:  make(map[string]decimal.Decimal),
		Balance: decimal.Zero,
	}
}

// Clone returns a deep copy of the party.
func (p Party) Clone() Party {
	c := Party{
		Name:    p.Name,
		Owes:    make(map[string]decimal.Decimal, len(p.Owes)),
		OwedBy:  make(map[string]decimal.Decimal, len(p.OwedBy)),
		Balance: p.Balance,
	}
	for k, v := range p.Owes {
		c.Owes[k] = v
	}
	for k, v := range p.OwedBy {
		c.OwedBy[k] = v
	}
	return c
}
