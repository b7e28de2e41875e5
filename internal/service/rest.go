package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/iouledger/pkg/api"
)

// maxBodyBytes bounds REST request bodies.
const maxBodyBytes = 1 << 20

var errMissingBody = errors.New("request body required")

// NewRESTHandler serves the plain JSON routes:
//
//	GET  /users  optional body {"users": [...]} or ?users=a&users=b
//	POST /add    {"user": "alice"}
//	POST /iou    {"lender": "alice", "borrower": "bob", "amount": 10}  (or "10")
func NewRESTHandler(l Ledger) http.Handler {
	svc := NewLedgerService(l)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		var req api.ListUsersRequest
		if err := decodeBody(r, &req, false); err != nil {
			writeError(w, connect.NewError(connect.CodeInvalidArgument, err))
			return
		}
		// Users stays nil (unfiltered) unless the body or query names a filter.
		req.Users = append(req.Users, r.URL.Query()["users"]...)

		resp, err := svc.ListUsers(r.Context(), connect.NewRequest(&req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp.Msg)
	})
	mux.HandleFunc("POST /add", func(w http.ResponseWriter, r *http.Request) {
		var req api.AddUserRequest
		if err := decodeBody(r, &req, true); err != nil {
			writeError(w, connect.NewError(connect.CodeInvalidArgument, err))
			return
		}

		resp, err := svc.AddUser(r.Context(), connect.NewRequest(&req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp.Msg)
	})
	mux.HandleFunc("POST /iou", func(w http.ResponseWriter, r *http.Request) {
		var req api.IOURequest
		if err := decodeBody(r, &req, true); err != nil {
			writeError(w, connect.NewError(connect.CodeInvalidArgument, err))
			return
		}

		resp, err := svc.RecordIOU(r.Context(), connect.NewRequest(&req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp.Msg)
	})
	return mux
}

// decodeBody reads an optional or required JSON body into v.
func decodeBody(r *http.Request, v any, required bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) == 0 {
		if required {
			return errMissingBody
		}
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// writeError renders err as {"error": "..."} with an HTTP status derived from its Connect code.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		msg = connectErr.Message()
		switch connectErr.Code() {
		case connect.CodeInvalidArgument:
			status = http.StatusBadRequest
		case connect.CodeNotFound:
			status = http.StatusNotFound
		case connect.CodeAlreadyExists:
			status = http.StatusConflict
		case connect.CodeFailedPrecondition:
			status = http.StatusPreconditionFailed
		}
	}
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
