// Package cli implements iouctl, a command-line client for the ledger service.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/mmynk/iouledger/pkg/api"
	"github.com/mmynk/iouledger/pkg/logging"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	server  string
	timeout time.Duration
	debug   bool
}

const defaultServer = "http://localhost:8080"

// clientEnv holds the environment defaults for the persistent flags.
type clientEnv struct {
	Server string `env:"IOU_SERVER" envDefault:"http://localhost:8080"`
}

func loadClientEnv() clientEnv {
	var e clientEnv
	if err := env.Parse(&e); err != nil {
		slog.Warn("Failed to parse environment, using defaults", "error", err)
		return clientEnv{Server: defaultServer}
	}
	return e
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	defaults := loadClientEnv()

	cmd := &cobra.Command{
		Use:          "iouctl",
		Short:        "Command-line client for the IOU ledger service",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := "warn"
			if g.debug {
				level = "debug"
			}
			logging.Setup(level, "text")
		},
	}

	cmd.PersistentFlags().StringVarP(&g.server, "server", "s", defaults.Server, "ledger server base URL")
	cmd.PersistentFlags().DurationVar(&g.timeout, "timeout", 10*time.Second, "per-request timeout")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging")

	cmd.AddCommand(
		addCmd(g),
		iouCmd(g),
		usersCmd(g),
		historyCmd(g),
		settleCmd(g),
	)
	return cmd
}

func (g *globals) client() *api.LedgerServiceClient {
	return api.NewLedgerServiceClient(http.DefaultClient, g.server)
}

func (g *globals) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), g.timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
