package cli

import (
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/iouledger/pkg/api"
)

func addCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Register a new party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := g.context(cmd)
			defer cancel()

			resp, err := g.client().AddUser(ctx, connect.NewRequest(&api.AddUserRequest{User: args[0]}))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Msg)
		},
	}
}

func iouCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "iou LENDER BORROWER AMOUNT",
		Short: "Record that LENDER lent AMOUNT to BORROWER",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], err)
			}
			if !amount.IsPositive() {
				return fmt.Errorf("amount must be positive, got %s", amount)
			}

			ctx, cancel := g.context(cmd)
			defer cancel()

			slog.Debug("Recording IOU", "lender", args[0], "borrower", args[1], "amount", amount.String())
			resp, err := g.client().RecordIOU(ctx, connect.NewRequest(&api.IOURequest{
				Lender:   args[0],
				Borrower: args[1],
				Amount:   amount,
			}))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Msg)
		},
	}
}

func usersCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "users [NAME...]",
		Short: "List parties, optionally only the named ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := g.context(cmd)
			defer cancel()

			// no names means no filter
			var names []string
			if len(args) > 0 {
				names = args
			}
			resp, err := g.client().ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{Users: names}))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Msg)
		},
	}
}

func historyCmd(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent journal events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := g.context(cmd)
			defer cancel()

			resp, err := g.client().ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{Limit: limit}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Msg.Transactions) == 0 {
				fmt.Fprintln(out, "(no transactions)")
				return nil
			}
			for _, tx := range resp.Msg.Transactions {
				switch tx.Kind {
				case "iou":
					fmt.Fprintf(out, "%s  iou  %s -> %s  %v\n", tx.ID, tx.Lender, tx.Borrower, tx.Amount)
				default:
					fmt.Fprintf(out, "%s  %s  %s\n", tx.ID, tx.Kind, tx.User)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of events (0 for all)")
	return cmd
}

func settleCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Suggest transfers that would clear every balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := g.context(cmd)
			defer cancel()

			resp, err := g.client().SuggestSettlements(ctx, connect.NewRequest(&api.SuggestSettlementsRequest{}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Msg.Transfers) == 0 {
				fmt.Fprintln(out, "(all settled)")
				return nil
			}
			for _, tr := range resp.Msg.Transfers {
				fmt.Fprintf(out, "%s pays %s %v\n", tr.From, tr.To, tr.Amount)
			}
			return nil
		},
	}
}
