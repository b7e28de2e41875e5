// Package ledger tracks IOUs between named parties.
//
// The ledger is purely in-memory and performs no I/O. Observability is
// attached from the outside (see package audit).
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/models"
)

// Ledger holds the party collection and owns every mutation of it.
// It is safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	parties map[string]*models.Party
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{parties: make(map[string]*models.Party)}
}

// AddParty registers a new party with no debts and a zero balance.
func (l *Ledger) AddParty(name string) (models.Party, error) {
	if strings.TrimSpace(name) == "" {
		return models.Party{}, fmt.Errorf("%w: party name must not be empty", ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.parties[name]; exists {
		return models.Party{}, fmt.Errorf("%w: %s", ErrDuplicateParty, name)
	}

	p := models.NewParty(name)
	l.parties[name] = &p
	return p.Clone(), nil
}

// RecordIOU records that lender lent amount to borrower.
//
// The loan is netted against any debt the lender already owes the borrower
// before new debt is created in the lender's favour. Both names are resolved
// and the amount validated before anything is mutated, so a failed call leaves
// the ledger untouched.
//
// The two updated parties are returned sorted by name.
func (l *Ledger) RecordIOU(lender, borrower string, amount decimal.Decimal) ([]models.Party, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, amount)
	}
	if lender == borrower {
		return nil, fmt.Errorf("%w: %s cannot lend to themselves", ErrInvalidInput, lender)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lp, ok := l.parties[lender]
	if !ok {
		return nil, fmt.Errorf("%w: lender %s", ErrNotFound, lender)
	}
	bp, ok := l.parties[borrower]
	if !ok {
		return nil, fmt.Errorf("%w: borrower %s", ErrNotFound, borrower)
	}

	net(lp, bp, amount)
	recomputeBalance(lp)
	recomputeBalance(bp)

	return sortByName([]models.Party{lp.Clone(), bp.Clone()}), nil
}

// ListParties returns the parties sorted by name. A nil names slice returns
// every party. Otherwise only parties named in names are returned and unknown
// names are skipped, so an empty non-nil slice matches nothing.
func (l *Ledger) ListParties(names []string) []models.Party {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := []models.Party{}
	if names == nil {
		result = make([]models.Party, 0, len(l.parties))
		for _, p := range l.parties {
			result = append(result, p.Clone())
		}
		return sortByName(result)
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if p, ok := l.parties[name]; ok {
			result = append(result, p.Clone())
		}
	}
	return sortByName(result)
}

// Len returns the number of registered parties.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.parties)
}

func sortByName(parties []models.Party) []models.Party {
	sort.Slice(parties, func(i, j int) bool {
		return parties[i].Name < parties[j].Name
	})
	return parties
}
