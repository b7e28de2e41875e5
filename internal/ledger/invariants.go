package ledger

import (
	"fmt"
	"strings"

	"github.com/mmynk/iouledger/internal/models"
)

// Check verifies every ledger invariant over a snapshot of parties:
// unique non-empty names, strictly positive amounts, no self-debt, no party
// both owing and being owed by the same counterparty, debts mirrored on both
// sides, and balances equal to their derivation.
func Check(parties []models.Party) error {
	byName := make(map[string]*models.Party, len(parties))
	for i := range parties {
		p := &parties[i]
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: empty party name", ErrInconsistent)
		}
		if _, dup := byName[p.Name]; dup {
			return fmt.Errorf("%w: duplicate party %s", ErrInconsistent, p.Name)
		}
		byName[p.Name] = p
	}

	for _, p := range byName {
		if err := checkParty(p, byName); err != nil {
			return err
		}
		if want := balanceOf(p); !p.Balance.Equal(want) {
			return fmt.Errorf("%w: %s balance is %s, derived %s", ErrInconsistent, p.Name, p.Balance, want)
		}
	}
	return nil
}

// checkParty verifies everything but the balance, which Restore recomputes.
func checkParty(p *models.Party, byName map[string]*models.Party) error {
	for other, amt := range p.Owes {
		if other == p.Name {
			return fmt.Errorf("%w: %s owes itself", ErrInconsistent, p.Name)
		}
		if !amt.IsPositive() {
			return fmt.Errorf("%w: %s owes %s non-positive %s", ErrInconsistent, p.Name, other, amt)
		}
		if _, both := p.OwedBy[other]; both {
			return fmt.Errorf("%w: %s both owes and is owed by %s", ErrInconsistent, p.Name, other)
		}
		cp, ok := byName[other]
		if !ok {
			return fmt.Errorf("%w: %s owes unknown party %s", ErrInconsistent, p.Name, other)
		}
		if !cp.OwedBy[p.Name].Equal(amt) {
			return fmt.Errorf("%w: %s owes %s %s but %s records %s", ErrInconsistent,
				p.Name, other, amt, other, cp.OwedBy[p.Name])
		}
	}
	for other, amt := range p.OwedBy {
		if other == p.Name {
			return fmt.Errorf("%w: %s is owed by itself", ErrInconsistent, p.Name)
		}
		if !amt.IsPositive() {
			return fmt.Errorf("%w: %s owed by %s non-positive %s", ErrInconsistent, p.Name, other, amt)
		}
		cp, ok := byName[other]
		if !ok {
			return fmt.Errorf("%w: %s owed by unknown party %s", ErrInconsistent, p.Name, other)
		}
		if !cp.Owes[p.Name].Equal(amt) {
			return fmt.Errorf("%w: %s owed %s by %s but %s records %s", ErrInconsistent,
				p.Name, amt, other, other, cp.Owes[p.Name])
		}
	}
	return nil
}

// Restore builds a ledger from a snapshot. Balances in the snapshot are
// ignored and recomputed; everything else must already satisfy Check.
func Restore(parties []models.Party) (*Ledger, error) {
	snapshot := make([]models.Party, len(parties))
	for i, p := range parties {
		c := p.Clone()
		recomputeBalance(&c)
		snapshot[i] = c
	}
	if err := Check(snapshot); err != nil {
		return nil, err
	}

	l := New()
	for i := range snapshot {
		p := snapshot[i]
		l.parties[p.Name] = &p
	}
	return l, nil
}
