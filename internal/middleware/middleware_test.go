package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/iouledger/pkg/api"
)

const echoProcedure = "/test.v1.EchoService/Echo"

// setupEchoServer serves a unary handler that fails for the user "missing".
func setupEchoServer(t *testing.T, opts ...connect.HandlerOption) (*connect.Client[api.AddUserRequest, api.User], func()) {
	t.Helper()

	opts = append(opts, connect.WithCodec(api.Codec{}))
	handler := connect.NewUnaryHandler(echoProcedure,
		func(_ context.Context, req *connect.Request[api.AddUserRequest]) (*connect.Response[api.User], error) {
			if req.Msg.User == "missing" {
				return nil, connect.NewError(connect.CodeNotFound, errors.New("no such user"))
			}
			return connect.NewResponse(&api.User{Name: req.Msg.User}), nil
		}, opts...)

	mux := http.NewServeMux()
	mux.Handle(echoProcedure, handler)
	server := httptest.NewServer(mux)

	client := connect.NewClient[api.AddUserRequest, api.User](http.DefaultClient, server.URL+echoProcedure,
		connect.WithCodec(api.Codec{}))
	return client, server.Close
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	client, cleanup := setupEchoServer(t, connect.WithInterceptors(LoggingInterceptor(logger)))
	defer cleanup()

	if _, err := client.CallUnary(context.Background(), connect.NewRequest(&api.AddUserRequest{User: "alice"})); err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if _, err := client.CallUnary(context.Background(), connect.NewRequest(&api.AddUserRequest{User: "missing"})); err == nil {
		t.Fatal("expected error")
	}

	out := buf.String()
	if !strings.Contains(out, `level=INFO msg="RPC ok" procedure=`+echoProcedure) {
		t.Errorf("missing success log:\n%s", out)
	}
	if !strings.Contains(out, `level=WARN msg="RPC error" procedure=`+echoProcedure+` code=not_found`) {
		t.Errorf("missing warning log:\n%s", out)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	client, cleanup := setupEchoServer(t, connect.WithInterceptors(MetricsInterceptor(reg)))
	defer cleanup()

	for _, user := range []string{"alice", "bob", "missing"} {
		client.CallUnary(context.Background(), connect.NewRequest(&api.AddUserRequest{User: user}))
	}

	expected := `
# HELP iou_ledger_rpc_requests_total RPCs handled, by procedure and Connect code.
# TYPE iou_ledger_rpc_requests_total counter
iou_ledger_rpc_requests_total{code="not_found",procedure="` + echoProcedure + `"} 1
iou_ledger_rpc_requests_total{code="ok",procedure="` + echoProcedure + `"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "iou_ledger_rpc_requests_total"); err != nil {
		t.Error(err)
	}
}
