package resolve

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/quay/vecscore"
)

// DefaultDedicatedColumns are the column labels checked first for a vector.
var DefaultDedicatedColumns = []string{"CVSS Vector", "Vector", "CVSS"}

// Options configures a [Resolver].
type Options struct {
	// Logger overrides the logger used for diagnostics. If nil,
	// [slog.Default] is used at the time of each call.
	Logger *slog.Logger `yaml:"-"`
	// DedicatedColumns are column labels, in priority order, expected to hold
	// a whole vector. Labels must match exactly, including case, unless
	// FoldDedicated is set. If empty, [DefaultDedicatedColumns] is used.
	DedicatedColumns []string `yaml:"dedicated_columns"`
	// FoldDedicated compares dedicated column labels after case folding and
	// trimming, so a column labelled "vector" counts as "Vector".
	FoldDedicated bool `yaml:"fold_dedicated"`
	// Strict disables filling in missing Base metrics: text lacking any of
	// the eight Base metrics does not resolve.
	Strict bool `yaml:"strict"`
}

// Parse checks the Options and fills in defaults.
func (o *Options) Parse() error {
	const op = `resolve: Options.Parse`
	if len(o.DedicatedColumns) == 0 {
		o.DedicatedColumns = slices.Clone(DefaultDedicatedColumns)
	}
	for i, c := range o.DedicatedColumns {
		if strings.TrimSpace(c) == "" {
			return &vecscore.Error{
				Op:      op,
				Kind:    vecscore.ErrPrecondition,
				Message: fmt.Sprintf("empty dedicated column name at position %d", i),
			}
		}
	}
	return nil
}
