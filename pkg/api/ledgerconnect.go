package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "iou.v1.LedgerService"

// Procedure paths of the LedgerService.
const (
	LedgerServiceAddUserProcedure            = "/iou.v1.LedgerService/AddUser"
	LedgerServiceRecordIOUProcedure          = "/iou.v1.LedgerService/RecordIOU"
	LedgerServiceListUsersProcedure          = "/iou.v1.LedgerService/ListUsers"
	LedgerServiceListTransactionsProcedure   = "/iou.v1.LedgerService/ListTransactions"
	LedgerServiceSuggestSettlementsProcedure = "/iou.v1.LedgerService/SuggestSettlements"
)

// LedgerServiceHandler is implemented by the server.
type LedgerServiceHandler interface {
	AddUser(context.Context, *connect.Request[AddUserRequest]) (*connect.Response[User], error)
	RecordIOU(context.Context, *connect.Request[IOURequest]) (*connect.Response[UsersResponse], error)
	ListUsers(context.Context, *connect.Request[ListUsersRequest]) (*connect.Response[UsersResponse], error)
	ListTransactions(context.Context, *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error)
	SuggestSettlements(context.Context, *connect.Request[SuggestSettlementsRequest]) (*connect.Response[SuggestSettlementsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. The JSON codec is always installed.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	addUser := connect.NewUnaryHandler(LedgerServiceAddUserProcedure, svc.AddUser, opts...)
	recordIOU := connect.NewUnaryHandler(LedgerServiceRecordIOUProcedure, svc.RecordIOU, opts...)
	listUsers := connect.NewUnaryHandler(LedgerServiceListUsersProcedure, svc.ListUsers,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)
	listTransactions := connect.NewUnaryHandler(LedgerServiceListTransactionsProcedure, svc.ListTransactions,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)
	suggestSettlements := connect.NewUnaryHandler(LedgerServiceSuggestSettlementsProcedure, svc.SuggestSettlements,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceAddUserProcedure:
			addUser.ServeHTTP(w, r)
		case LedgerServiceRecordIOUProcedure:
			recordIOU.ServeHTTP(w, r)
		case LedgerServiceListUsersProcedure:
			listUsers.ServeHTTP(w, r)
		case LedgerServiceListTransactionsProcedure:
			listTransactions.ServeHTTP(w, r)
		case LedgerServiceSuggestSettlementsProcedure:
			suggestSettlements.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceClient calls a remote LedgerService.
type LedgerServiceClient struct {
	addUser            *connect.Client[AddUserRequest, User]
	recordIOU          *connect.Client[IOURequest, UsersResponse]
	listUsers          *connect.Client[ListUsersRequest, UsersResponse]
	listTransactions   *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
	suggestSettlements *connect.Client[SuggestSettlementsRequest, SuggestSettlementsResponse]
}

// NewLedgerServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8080). The JSON codec is always installed.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &LedgerServiceClient{
		addUser:            connect.NewClient[AddUserRequest, User](httpClient, baseURL+LedgerServiceAddUserProcedure, opts...),
		recordIOU:          connect.NewClient[IOURequest, UsersResponse](httpClient, baseURL+LedgerServiceRecordIOUProcedure, opts...),
		listUsers:          connect.NewClient[ListUsersRequest, UsersResponse](httpClient, baseURL+LedgerServiceListUsersProcedure, opts...),
		listTransactions:   connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](httpClient, baseURL+LedgerServiceListTransactionsProcedure, opts...),
		suggestSettlements: connect.NewClient[SuggestSettlementsRequest, SuggestSettlementsResponse](httpClient, baseURL+LedgerServiceSuggestSettlementsProcedure, opts...),
	}
}

// AddUser calls iou.v1.LedgerService.AddUser.
func (c *LedgerServiceClient) AddUser(ctx context.Context, req *connect.Request[AddUserRequest]) (*connect.Response[User], error) {
	return c.addUser.CallUnary(ctx, req)
}

// RecordIOU calls iou.v1.LedgerService.RecordIOU.
func (c *LedgerServiceClient) RecordIOU(ctx context.Context, req *connect.Request[IOURequest]) (*connect.Response[UsersResponse], error) {
	return c.recordIOU.CallUnary(ctx, req)
}

// ListUsers calls iou.v1.LedgerService.ListUsers.
func (c *LedgerServiceClient) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[UsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

// ListTransactions calls iou.v1.LedgerService.ListTransactions.
func (c *LedgerServiceClient) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

// SuggestSettlements calls iou.v1.LedgerService.SuggestSettlements.
func (c *LedgerServiceClient) SuggestSettlements(ctx context.Context, req *connect.Request[SuggestSettlementsRequest]) (*connect.Response[SuggestSettlementsResponse], error) {
	return c.suggestSettlements.CallUnary(ctx, req)
}
