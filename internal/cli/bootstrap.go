// Package cli provides CLI commands for the ghnf application.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/ghnf/internal/ctxutil"
)

// NewContext returns the command's context with a fresh run ID embedded.
// Every mutation made during one invocation is recorded under the same run ID.
func NewContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxutil.WithNewRunID(ctx)
}
