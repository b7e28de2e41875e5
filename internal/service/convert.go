package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/ledger"
	"github.com/mmynk/iouledger/internal/models"
	"github.com/mmynk/iouledger/pkg/api"
)

// toAPIUser converts a party to its wire shape.
func toAPIUser(p models.Party) api.User {
	return api.User{
		Name:    p.Name,
		Owes:    toFloatMap(p.Owes),
		OwedBy:  toFloatMap(p.OwedBy),
		Balance: p.Balance.InexactFloat64(),
	}
}

func toAPIUsers(parties []models.Party) []api.User {
	users := make([]api.User, len(parties))
	for i, p := range parties {
		users[i] = toAPIUser(p)
	}
	return users
}

func toFloatMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v.InexactFloat64()
	}
	return out
}

// fromAPIUser converts a wire user back to a party. The balance is carried
// over as-is; ledger.Restore recomputes it.
func fromAPIUser(u api.User) (models.Party, error) {
	p := models.NewParty(u.Name)
	for k, v := range u.Owes {
		amt, err := toDecimal(v)
		if err != nil {
			return models.Party{}, fmt.Errorf("%s owes %s: %w", u.Name, k, err)
		}
		p.Owes[k] = amt
	}
	for k, v := range u.OwedBy {
		amt, err := toDecimal(v)
		if err != nil {
			return models.Party{}, fmt.Errorf("%s owed by %s: %w", u.Name, k, err)
		}
		p.OwedBy[k] = amt
	}
	balance, err := toDecimal(u.Balance)
	if err != nil {
		return models.Party{}, fmt.Errorf("%s balance: %w", u.Name, err)
	}
	p.Balance = balance
	return p, nil
}

// toDecimal rejects values decimal cannot represent.
func toDecimal(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: amount %v is not a finite number", ledger.ErrInvalidInput, f)
	}
	return decimal.NewFromFloat(f), nil
}

func toAPITransactions(events []*models.Event) []api.Transaction {
	txs := make([]api.Transaction, len(events))
	for i, e := range events {
		txs[i] = api.Transaction{
			ID:        e.ID,
			Kind:      string(e.Kind),
			User:      e.Party,
			Lender:    e.Lender,
			Borrower:  e.Borrower,
			Amount:    e.Amount.InexactFloat64(),
			CreatedAt: e.CreatedAt,
		}
	}
	return txs
}

func toAPITransfers(transfers []models.Transfer) []api.Transfer {
	out := make([]api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = api.Transfer{From: t.From, To: t.To, Amount: t.Amount.InexactFloat64()}
	}
	return out
}
