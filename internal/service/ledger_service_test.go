package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/audit"
	"github.com/mmynk/iouledger/internal/ledger"
	"github.com/mmynk/iouledger/internal/storage/sqlite"
	"github.com/mmynk/iouledger/pkg/api"
)

// setupTestServer creates a test server backed by a fresh ledger and an in-memory journal
func setupTestServer(t *testing.T) (*api.LedgerServiceClient, func()) {
	t.Helper()

	journal, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}

	rec := audit.New(ledger.New(),
		audit.WithJournal(journal),
		audit.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	path, handler := api.NewLedgerServiceHandler(NewLedgerService(rec))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	client := api.NewLedgerServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		journal.Close()
	}

	return client, cleanup
}

func addUsers(t *testing.T, client *api.LedgerServiceClient, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := client.AddUser(context.Background(), connect.NewRequest(&api.AddUserRequest{User: name})); err != nil {
			t.Fatalf("AddUser(%s) failed: %v", name, err)
		}
	}
}

func recordIOU(t *testing.T, client *api.LedgerServiceClient, lender, borrower string, amount float64) []api.User {
	t.Helper()
	resp, err := client.RecordIOU(context.Background(), connect.NewRequest(&api.IOURequest{
		Lender:   lender,
		Borrower: borrower,
		Amount:   decimal.NewFromFloat(amount),
	}))
	if err != nil {
		t.Fatalf("RecordIOU failed: %v", err)
	}
	if len(resp.Msg.Users) != 2 {
		t.Fatalf("expected 2 users in response, got %d", len(resp.Msg.Users))
	}
	return resp.Msg.Users
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v", want, connectErr.Code())
	}
}

func TestAddUser(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.AddUser(context.Background(), connect.NewRequest(&api.AddUserRequest{User: "alice"}))
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	if resp.Msg.Name != "alice" {
		t.Errorf("name: expected 'alice', got '%s'", resp.Msg.Name)
	}
	if resp.Msg.Owes == nil || resp.Msg.OwedBy == nil {
		t.Error("expected empty, non-nil owes and owed_by maps")
	}
	if resp.Msg.Balance != 0 {
		t.Errorf("balance: expected 0, got %v", resp.Msg.Balance)
	}
}

func TestAddUser_Errors(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	addUsers(t, client, "alice")

	_, err := client.AddUser(context.Background(), connect.NewRequest(&api.AddUserRequest{User: "alice"}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = client.AddUser(context.Background(), connect.NewRequest(&api.AddUserRequest{User: ""}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestRecordIOU_Netting(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	addUsers(t, client, "bob", "alice")

	users := recordIOU(t, client, "alice", "bob", 10)
	alice, bob := users[0], users[1]
	if alice.Name != "alice" || bob.Name != "bob" {
		t.Fatalf("expected users sorted [alice bob], got [%s %s]", alice.Name, bob.Name)
	}
	if alice.OwedBy["bob"] != 10 || alice.Balance != 10 {
		t.Errorf("alice: expected owed_by bob 10 and balance 10, got %+v", alice)
	}
	if bob.Owes["alice"] != 10 || bob.Balance != -10 {
		t.Errorf("bob: expected owes alice 10 and balance -10, got %+v", bob)
	}

	users = recordIOU(t, client, "bob", "alice", 4)
	alice, bob = users[0], users[1]
	if bob.Owes["alice"] != 6 || alice.OwedBy["bob"] != 6 {
		t.Errorf("expected remaining debt 6, got bob.owes=%v alice.owed_by=%v", bob.Owes, alice.OwedBy)
	}
	if alice.Balance != 6 || bob.Balance != -6 {
		t.Errorf("expected balances 6/-6, got %v/%v", alice.Balance, bob.Balance)
	}

	users = recordIOU(t, client, "bob", "alice", 6)
	for _, u := range users {
		if len(u.Owes) != 0 || len(u.OwedBy) != 0 || u.Balance != 0 {
			t.Errorf("%s: expected settled, got %+v", u.Name, u)
		}
	}
}

func TestRecordIOU_Errors(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	addUsers(t, client, "alice", "bob")

	tests := []struct {
		name string
		req  *api.IOURequest
		code connect.Code
	}{
		{name: "unknown borrower", req: &api.IOURequest{Lender: "alice", Borrower: "carol", Amount: decimal.NewFromInt(5)}, code: connect.CodeNotFound},
		{name: "unknown lender", req: &api.IOURequest{Lender: "carol", Borrower: "bob", Amount: decimal.NewFromInt(5)}, code: connect.CodeNotFound},
		{name: "zero amount", req: &api.IOURequest{Lender: "alice", Borrower: "bob", Amount: decimal.NewFromInt(0)}, code: connect.CodeInvalidArgument},
		{name: "negative amount", req: &api.IOURequest{Lender: "alice", Borrower: "bob", Amount: decimal.NewFromInt(-3)}, code: connect.CodeInvalidArgument},
		{name: "self loan", req: &api.IOURequest{Lender: "alice", Borrower: "alice", Amount: decimal.NewFromInt(3)}, code: connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.RecordIOU(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}

	// nothing was applied
	resp, err := client.ListUsers(context.Background(), connect.NewRequest(&api.ListUsersRequest{}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	for _, u := range resp.Msg.Users {
		if u.Balance != 0 || len(u.Owes) != 0 || len(u.OwedBy) != 0 {
			t.Errorf("%s: expected untouched, got %+v", u.Name, u)
		}
	}
}

func TestListUsers(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	addUsers(t, client, "bob", "alice", "carol")

	resp, err := client.ListUsers(context.Background(), connect.NewRequest(&api.ListUsersRequest{}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	want := []string{"alice", "bob", "carol"}
	if len(resp.Msg.Users) != len(want) {
		t.Fatalf("expected %d users, got %d", len(want), len(resp.Msg.Users))
	}
	for i, name := range want {
		if resp.Msg.Users[i].Name != name {
			t.Errorf("users[%d]: expected %s, got %s", i, name, resp.Msg.Users[i].Name)
		}
	}

	resp, err = client.ListUsers(context.Background(), connect.NewRequest(&api.ListUsersRequest{
		Users: []string{"carol", "nobody", "alice"},
	}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(resp.Msg.Users) != 2 || resp.Msg.Users[0].Name != "alice" || resp.Msg.Users[1].Name != "carol" {
		t.Errorf("expected [alice carol], got %+v", resp.Msg.Users)
	}

	resp, err = client.ListUsers(context.Background(), connect.NewRequest(&api.ListUsersRequest{
		Users: []string{},
	}))
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(resp.Msg.Users) != 0 {
		t.Errorf("expected no users for an empty filter, got %+v", resp.Msg.Users)
	}
}

func TestListTransactions(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	addUsers(t, client, "alice", "bob")
	recordIOU(t, client, "alice", "bob", 12.5)

	resp, err := client.ListTransactions(context.Background(), connect.NewRequest(&api.ListTransactionsRequest{Limit: 2}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	txs := resp.Msg.Transactions
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Kind != "iou" || txs[0].Lender != "alice" || txs[0].Borrower != "bob" || txs[0].Amount != 12.5 {
		t.Errorf("unexpected newest transaction: %+v", txs[0])
	}
	if txs[1].Kind != "add_party" || txs[1].User != "bob" {
		t.Errorf("unexpected second transaction: %+v", txs[1])
	}
}

func TestListTransactions_NoJournal(t *testing.T) {
	rec := audit.New(ledger.New(), audit.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	path, handler := api.NewLedgerServiceHandler(NewLedgerService(rec))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := api.NewLedgerServiceClient(http.DefaultClient, server.URL)
	_, err := client.ListTransactions(context.Background(), connect.NewRequest(&api.ListTransactionsRequest{}))
	assertCode(t, err, connect.CodeFailedPrecondition)
}

func TestSuggestSettlements(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	addUsers(t, client, "alice", "bob", "carol")
	recordIOU(t, client, "alice", "bob", 5)
	recordIOU(t, client, "bob", "carol", 5)

	resp, err := client.SuggestSettlements(context.Background(), connect.NewRequest(&api.SuggestSettlementsRequest{}))
	if err != nil {
		t.Fatalf("SuggestSettlements failed: %v", err)
	}
	if len(resp.Msg.Transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %+v", resp.Msg.Transfers)
	}
	tr := resp.Msg.Transfers[0]
	if tr.From != "carol" || tr.To != "alice" || tr.Amount != 5 {
		t.Errorf("expected carol -> alice 5, got %+v", tr)
	}
}
