package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/ghnf/internal/ports/primary"
	"github.com/example/ghnf/internal/wire"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	var flags filterFlags
	var closed bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List unread notifications",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wire.Config()
			if err != nil {
				return err
			}
			sel, err := flags.selection(cfg, nil, true)
			if err != nil {
				return err
			}
			sel.Filters.ClosedOnly = closed

			adapter, err := wire.NotificationAdapter()
			if err != nil {
				return err
			}
			return adapter.List(NewContext(cmd), sel)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&closed, "closed", "c", false, "show only closed notifications (and commits)")
	return cmd
}

// OpenCmd returns the open command
func OpenCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "open [thread-id...]",
		Short: "Open threads, or every filtered thread, in the web browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wire.Config()
			if err != nil {
				return err
			}
			// Threads named explicitly are opened even if they are ignored
			sel, err := flags.selection(cfg, args, len(args) == 0)
			if err != nil {
				return err
			}

			adapter, err := wire.NotificationAdapter()
			if err != nil {
				return err
			}
			return adapter.Open(NewContext(cmd), sel)
		},
	}

	flags.register(cmd)
	return cmd
}

// RemoveCmd returns the remove command
func RemoveCmd() *cobra.Command {
	var flags filterFlags
	var dryRun, yes bool

	cmd := &cobra.Command{
		Use:     "remove [thread-id...]",
		Aliases: []string{"rm"},
		Short:   "Unsubscribe from closed notifications matching the filters",
		Long: `Unsubscribe from notifications and mark them as read.

Only notifications whose issue or pull request is closed, and commits, are
removed. Without thread ids a title pattern is required, from --filter or
~/.ghnf/filters. Ignored threads are always skipped. The candidates are listed and
the command waits for Enter before changing anything, unless --yes is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun && yes {
				return fmt.Errorf("--dry-run and --yes are mutually exclusive")
			}

			cfg, err := wire.Config()
			if err != nil {
				return err
			}
			sel, err := flags.removeSelection(cfg, args)
			if err != nil {
				return err
			}

			adapter, err := wire.NotificationAdapter()
			if err != nil {
				return err
			}
			return adapter.Remove(NewContext(cmd), sel, mutationMode(dryRun, yes))
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "list the threads that would be unsubscribed without changing anything")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "unsubscribe without asking for confirmation")
	return cmd
}

func mutationMode(dryRun, yes bool) primary.MutationMode {
	switch {
	case dryRun:
		return primary.ModeDry
	case yes:
		return primary.ModeExecute
	default:
		return primary.ModeConfirm
	}
}

// RequestCmd returns the request command
func RequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "request URL",
		Aliases: []string{"req"},
		Short:   "Make an authenticated GET request to URL (for developers)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.NotificationAdapter()
			if err != nil {
				return err
			}
			return adapter.Request(NewContext(cmd), args[0])
		},
	}
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently unsubscribed notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.NotificationAdapter()
			if err != nil {
				return err
			}
			return adapter.History(NewContext(cmd), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	return cmd
}
