package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cliadapter "github.com/example/ghnf/internal/adapters/cli"
	"github.com/example/ghnf/internal/config"
	"github.com/example/ghnf/internal/core/filter"
	"github.com/example/ghnf/internal/models"
)

var (
	errIDsWithFilters = errors.New("thread ids cannot be combined with --filter or --kind")
	errNoPattern      = errors.New("no filter pattern: pass --filter, add patterns to ~/.ghnf/filters, or name thread ids")
)

// kindValue is a pflag.Value restricting --kind to the kinds we can filter on.
type kindValue struct {
	kind *models.SubjectKind
}

func (v *kindValue) String() string {
	if v.kind == nil {
		return ""
	}
	return v.kind.String()
}

func (v *kindValue) Set(s string) error {
	k, err := filter.ParseKind(s)
	if err != nil {
		return err
	}
	v.kind = &k
	return nil
}

func (v *kindValue) Type() string {
	return "kind"
}

var _ pflag.Value = (*kindValue)(nil)

// filterFlags holds the selection flags shared by list, open and remove.
type filterFlags struct {
	pattern string
	kind    kindValue
	count   int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.pattern, "filter", "f", "", "regex to filter titles (default: patterns in ~/.ghnf/filters)")
	cmd.Flags().VarP(&f.kind, "kind", "k", fmt.Sprintf("kind of notification (%s)", strings.Join(filter.KindNames, ", ")))
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "only process this many notifications (order is not guaranteed)")
}

// selection builds what a command operates on from its flags and positional thread ids.
func (f *filterFlags) selection(cfg *config.Config, args []string, applyIgnore bool) (cliadapter.Selection, error) {
	if f.count < 0 {
		return cliadapter.Selection{}, fmt.Errorf("count must not be negative: %d", f.count)
	}

	ids, err := parseThreadIDs(args)
	if err != nil {
		return cliadapter.Selection{}, err
	}
	if len(ids) > 0 && (f.pattern != "" || f.kind.kind != nil) {
		return cliadapter.Selection{}, errIDsWithFilters
	}

	sel := cliadapter.Selection{
		IDs: ids,
		Filters: filter.Filters{
			Kind:  f.kind.kind,
			Limit: f.count,
		},
	}
	if applyIgnore {
		sel.Filters.Ignore = filter.IgnoreSet(cfg.Ignore)
	}

	if len(ids) == 0 {
		patterns := cfg.Filters
		if f.pattern != "" {
			patterns = []string{f.pattern}
		}
		sel.Filters.Regex, err = filter.CompileRegex(patterns)
		if err != nil {
			return cliadapter.Selection{}, err
		}
	}

	return sel, nil
}

// removeSelection is selection for remove, which never runs over the whole
// inbox: without thread ids a title pattern must come from --filter or the
// filters file.
func (f *filterFlags) removeSelection(cfg *config.Config, args []string) (cliadapter.Selection, error) {
	sel, err := f.selection(cfg, args, true)
	if err != nil {
		return cliadapter.Selection{}, err
	}
	if len(sel.IDs) == 0 && sel.Filters.Regex == nil {
		return cliadapter.Selection{}, errNoPattern
	}
	return sel, nil
}

// parseThreadIDs parses positional thread ids.
func parseThreadIDs(args []string) ([]models.ThreadID, error) {
	ids := make([]models.ThreadID, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed input: %s", a)
		}
		ids = append(ids, models.ThreadID(id))
	}
	return ids, nil
}
