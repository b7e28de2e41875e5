package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/models"
)

// net applies a loan of amount from lender to borrower.
//
// The pair's position is collapsed to a single signed number seen from the
// lender (positive: borrower owes lender). Adding the loan to that position
// is the same as first paying down what the lender owes and carrying any
// remainder over as new debt. The borrower's maps are then written as the
// mirror of the lender's.
func net(lender, borrower *models.Party, amount decimal.Decimal) {
	l, b := lender.Name, borrower.Name

	position := lender.OwedBy[b].Sub(lender.Owes[b]).Add(amount)

	delete(lender.Owes, b)
	delete(lender.OwedBy, b)
	delete(borrower.Owes, l)
	delete(borrower.OwedBy, l)

	switch position.Sign() {
	case 1:
		lender.OwedBy[b] = position
		borrower.Owes[l] = position
	case -1:
		debt := position.Neg()
		lender.Owes[b] = debt
		borrower.OwedBy[l] = debt
	}
}

func recomputeBalance(p *models.Party) {
	p.Balance = balanceOf(p)
}

// balanceOf derives sum(OwedBy) - sum(Owes).
func balanceOf(p *models.Party) decimal.Decimal {
	total := decimal.Zero
	for _, v := range p.OwedBy {
		total = total.Add(v)
	}
	for _, v := range p.Owes {
		total = total.Sub(v)
	}
	return total
}
