package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/example/ghnf/internal/cli"
	"github.com/example/ghnf/internal/version"
	"github.com/example/ghnf/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "ghnf",
		Short:   "ghnf - GitHub notification filter",
		Version: version.String(),
		Long: `ghnf lists, opens and bulk-unsubscribes GitHub notifications.

Configuration lives in ~/.ghnf (or $GHNF_HOME): "token" holds a personal
access token, "filters" holds title regexes, one per line, and "ignore"
holds thread ids that are never removed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.OpenCmd())
	rootCmd.AddCommand(cli.RemoveCmd())
	rootCmd.AddCommand(cli.IgnoreCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	// Developer tools
	rootCmd.AddCommand(cli.RequestCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	wire.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
