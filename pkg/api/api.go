// Package api defines the wire contract of the iou.v1.LedgerService.
//
// Messages are plain structs carried by Connect with a JSON codec. The user
// shape matches the REST adapter: {name, owes, owed_by, balance}.
package api

import "github.com/shopspring/decimal"

// User is one party as seen on the wire.
type User struct {
	Name    string             `json:"name"`
	Owes    map[string]float64 `json:"owes"`
	OwedBy  map[string]float64 `json:"owed_by"`
	Balance float64            `json:"balance"`
}

// UsersResponse wraps a list of users sorted by name.
type UsersResponse struct {
	Users []User `json:"users"`
}

// AddUserRequest registers a new party.
type AddUserRequest struct {
	User string `json:"user"`
}

// IOURequest records that Lender lent Amount to Borrower. Amount decodes from
// a JSON number or a numeric string.
type IOURequest struct {
	Lender   string          `json:"lender"`
	Borrower string          `json:"borrower"`
	Amount   decimal.Decimal `json:"amount"`
}

// ListUsersRequest filters the listing. A nil Users (key absent or null)
// returns every party; an empty list returns none.
type ListUsersRequest struct {
	Users []string `json:"users"`
}

// ListTransactionsRequest asks for the most recent journal events.
// Limit <= 0 returns all of them.
type ListTransactionsRequest struct {
	Limit int `json:"limit,omitempty"`
}

// Transaction is one journal event.
type Transaction struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	User      string  `json:"user,omitempty"`
	Lender    string  `json:"lender,omitempty"`
	Borrower  string  `json:"borrower,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

// ListTransactionsResponse lists journal events, newest first.
type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// SuggestSettlementsRequest has no fields.
type SuggestSettlementsRequest struct{}

// Transfer is a suggested payment from From to To.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// SuggestSettlementsResponse lists transfers that would clear every balance.
type SuggestSettlementsResponse struct {
	Transfers []Transfer `json:"transfers"`
}

// ErrorResponse is the body of failed REST calls.
type ErrorResponse struct {
	Error string `json:"error"`
}
