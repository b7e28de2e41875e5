// Package calculator derives settlement plans from ledger balances.
package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/models"
)

// memberBalance is the outstanding amount of one debtor or creditor.
type memberBalance struct {
	name   string
	amount decimal.Decimal // always positive
}

// Settle suggests transfers that would bring every balance to zero.
//
// Algorithm:
//   - Split parties into debtors (negative balance) and creditors (positive balance)
//   - Sort both lists by outstanding amount, largest first, ties by name
//   - Greedy matching: the current debtor pays the current creditor the smaller
//     of what the debtor owes and what the creditor is owed, then whichever side
//     is fully settled moves on
//
// Parties with a zero balance take part in no transfer. The result never has
// more than len(debtors)+len(creditors)-1 transfers.
func Settle(parties []models.Party) []models.Transfer {
	var debtors, creditors []memberBalance
	for _, p := range parties {
		switch p.Balance.Sign() {
		case -1:
			debtors = append(debtors, memberBalance{name: p.Name, amount: p.Balance.Neg()})
		case 1:
			creditors = append(creditors, memberBalance{name: p.Name, amount: p.Balance})
		}
	}
	sortLargestFirst(debtors)
	sortLargestFirst(creditors)

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := decimal.Min(debtor.amount, creditor.amount)
		transfers = append(transfers, models.Transfer{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.IsZero() {
			i++
		}
		if creditor.amount.IsZero() {
			j++
		}
	}

	return transfers
}

func sortLargestFirst(balances []memberBalance) {
	sort.Slice(balances, func(a, b int) bool {
		if c := balances[a].amount.Cmp(balances[b].amount); c != 0 {
			return c > 0
		}
		return balances[a].name < balances[b].name
	})
}
