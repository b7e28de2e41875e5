// Package service exposes the ledger over Connect RPC and a small REST adapter.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/iouledger/internal/audit"
	"github.com/mmynk/iouledger/internal/ledger"
	"github.com/mmynk/iouledger/internal/models"
	"github.com/mmynk/iouledger/pkg/api"
)

// Ledger is the set of operations the service forwards to.
// *audit.Recorder implements it.
type Ledger interface {
	AddParty(ctx context.Context, name string) (models.Party, error)
	RecordIOU(ctx context.Context, lender, borrower string, amount decimal.Decimal) ([]models.Party, error)
	ListParties(ctx context.Context, names []string) []models.Party
	History(ctx context.Context, limit int) ([]*models.Event, error)
	Settlements(ctx context.Context) []models.Transfer
}

var _ Ledger = (*audit.Recorder)(nil)

// Ensure LedgerService implements the Connect handler interface
var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	ledger Ledger
}

// NewLedgerService creates a new LedgerService forwarding to the given ledger.
func NewLedgerService(l Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// AddUser registers a new party.
func (s *LedgerService) AddUser(ctx context.Context, req *connect.Request[api.AddUserRequest]) (*connect.Response[api.User], error) {
	slog.Info("AddUser request received", "user", req.Msg.User)

	party, err := s.ledger.AddParty(ctx, req.Msg.User)
	if err != nil {
		return nil, toConnectError(err)
	}

	user := toAPIUser(party)
	return connect.NewResponse(&user), nil
}

// RecordIOU records a loan and returns the lender and borrower sorted by name.
func (s *LedgerService) RecordIOU(ctx context.Context, req *connect.Request[api.IOURequest]) (*connect.Response[api.UsersResponse], error) {
	slog.Info("RecordIOU request received",
		"lender", req.Msg.Lender,
		"borrower", req.Msg.Borrower,
		"amount", req.Msg.Amount.String(),
	)

	parties, err := s.ledger.RecordIOU(ctx, req.Msg.Lender, req.Msg.Borrower, req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UsersResponse{Users: toAPIUsers(parties)}), nil
}

// ListUsers returns every party, or only the requested ones, sorted by name.
func (s *LedgerService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.UsersResponse], error) {
	slog.Info("ListUsers request received", "filtered", req.Msg.Users != nil, "filter_count", len(req.Msg.Users))

	parties := s.ledger.ListParties(ctx, req.Msg.Users)

	slog.Info("ListUsers successful", "count", len(parties))
	return connect.NewResponse(&api.UsersResponse{Users: toAPIUsers(parties)}), nil
}

// ListTransactions returns the most recent journal events.
func (s *LedgerService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	slog.Info("ListTransactions request received", "limit", req.Msg.Limit)

	events, err := s.ledger.History(ctx, req.Msg.Limit)
	if err != nil {
		slog.Error("ListTransactions failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: toAPITransactions(events)}), nil
}

// SuggestSettlements returns transfers that would clear every balance.
func (s *LedgerService) SuggestSettlements(ctx context.Context, req *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error) {
	slog.Info("SuggestSettlements request received")

	transfers := s.ledger.Settlements(ctx)

	slog.Info("SuggestSettlements successful", "transfers_count", len(transfers))
	return connect.NewResponse(&api.SuggestSettlementsResponse{Transfers: toAPITransfers(transfers)}), nil
}

// toConnectError maps ledger errors onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrDuplicateParty):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ledger.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, audit.ErrNoJournal):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
