package service

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mmynk/iouledger/internal/ledger"
	"github.com/mmynk/iouledger/internal/models"
	"github.com/mmynk/iouledger/pkg/api"
)

// LoadSeed builds a ledger from a {"users": [...]} document, the same shape
// ListUsers returns. The document must satisfy every ledger invariant.
func LoadSeed(path string) (*ledger.Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}

	var doc api.UsersResponse
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed %s: %w", path, err)
	}

	parties := make([]models.Party, 0, len(doc.Users))
	for _, u := range doc.Users {
		p, err := fromAPIUser(u)
		if err != nil {
			return nil, fmt.Errorf("invalid seed user: %w", err)
		}
		parties = append(parties, p)
	}

	l, err := ledger.Restore(parties)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %s: %w", path, err)
	}
	return l, nil
}
