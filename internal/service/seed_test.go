package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/iouledger/internal/ledger"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `{"users": [
		{"name": "adam", "owes": {}, "owed_by": {"bob": 3.5}, "balance": 3.5},
		{"name": "bob", "owes": {"adam": 3.5}, "owed_by": {}, "balance": -3.5}
	]}`)

	l, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}

	parties := l.ListParties(nil)
	if len(parties) != 2 {
		t.Fatalf("expected 2 parties, got %d", len(parties))
	}
	if parties[0].Balance.InexactFloat64() != 3.5 || parties[1].Balance.InexactFloat64() != -3.5 {
		t.Errorf("unexpected balances: %s, %s", parties[0].Balance, parties[1].Balance)
	}
}

func TestLoadSeed_Inconsistent(t *testing.T) {
	path := writeSeed(t, `{"users": [
		{"name": "adam", "owes": {}, "owed_by": {"bob": 3}, "balance": 3},
		{"name": "bob", "owes": {}, "owed_by": {}, "balance": 0}
	]}`)

	_, err := LoadSeed(path)
	if !errors.Is(err, ledger.ErrInconsistent) {
		t.Errorf("expected ErrInconsistent, got %v", err)
	}
}

func TestLoadSeed_Missing(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing seed file")
	}
}
