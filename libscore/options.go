package libscore

import (
	"runtime"

	"github.com/quay/vecscore"
	"github.com/quay/vecscore/resolve"
)

// Placeholders reported in place of a vector.
const (
	DefaultPlaceholder = "No valid vector found"
	ErrorPlaceholder   = "Error processing row"
)

// Options are dependencies and options for constructing an instance of
// Libscore.
type Options struct {
	// Resolver configures how vectors are found in rows.
	Resolver resolve.Options `yaml:"resolver"`
	// The number of rows to score in parallel. If zero, GOMAXPROCS is used.
	Concurrency int `yaml:"concurrency"`
	// Text reported as the vector of a row with no vector. If empty,
	// DefaultPlaceholder is used.
	Placeholder string `yaml:"placeholder"`
}

// Parse checks the Options and fills in defaults.
func (o *Options) Parse() error {
	const op = `libscore: Options.Parse`
	if o.Concurrency < 0 {
		return &vecscore.Error{
			Op:      op,
			Kind:    vecscore.ErrPrecondition,
			Message: "negative concurrency",
		}
	}
	if o.Concurrency == 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	return o.Resolver.Parse()
}
