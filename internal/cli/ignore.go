package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/ghnf/internal/config"
)

// IgnoreCmd returns the ignore command
func IgnoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Manage threads that are never removed",
	}
	cmd.AddCommand(ignoreAddCmd(), ignoreListCmd())
	return cmd
}

func ignoreAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add thread-id...",
		Short: "Add threads to the ignore list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseThreadIDs(args)
			if err != nil {
				return err
			}
			dir, err := config.Dir()
			if err != nil {
				return err
			}

			added, err := config.AddIgnored(dir, ids...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(added) == 0 {
				fmt.Fprintln(out, "All threads were already ignored")
				return nil
			}
			for _, id := range added {
				fmt.Fprintf(out, "%s Ignoring thread %d\n", color.New(color.FgGreen).Sprint("✓"), id)
			}
			return nil
		},
	}
}

func ignoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ignored threads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			ids, err := config.LoadIgnored(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No ignored threads")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}
