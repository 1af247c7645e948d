// Package resolve recovers CVSS v3 vectors from loosely structured rows.
//
// A row is a sequence of labelled cells, as found in a spreadsheet or CSV
// export. The vector may sit whole in a dedicated column, in some other cell,
// split between a column label and its value, or be scattered over several
// columns named after individual metrics. A [Resolver] tries each of these in
// turn and reports a canonical vector string, or [ErrNoVector].
package resolve

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/quay/vecscore"
)

// ErrNoVector is returned when no vector can be recovered from the input.
//
// It has the [vecscore.ErrUnresolvable] kind.
var ErrNoVector error = &vecscore.Error{
	Op:      "resolve",
	Kind:    vecscore.ErrUnresolvable,
	Message: "no vector found",
}

// Strategy identifies how a vector was found.
type Strategy int

// The strategies, in the order they are tried.
const (
	StrategyNone Strategy = iota
	StrategyDedicatedColumn
	StrategyCellValue
	StrategyLabelledCell
	StrategyCrossCell
	StrategyText
)

var strategyNames = [...]string{
	"none",
	"dedicated_column",
	"cell_value",
	"labelled_cell",
	"cross_cell",
	"text",
}

// String implements [fmt.Stringer].
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// Match is a resolved vector and where it came from.
type Match struct {
	// Vector is the canonical vector string.
	Vector   string
	Strategy Strategy
	// Label is the column the vector was found in, if it came from a single
	// cell.
	Label string
}

// Resolver finds vectors in rows. It is safe for concurrent use.
type Resolver struct {
	logger    *slog.Logger
	dedicated []string
	fold      bool
	strict    bool
}

// New returns a Resolver configured by "opts". A nil Options is the same as
// the zero value.
func New(opts *Options) (*Resolver, error) {
	if err := metricInit(); err != nil {
		return nil, &vecscore.Error{
			Op:    "resolve: New",
			Kind:  vecscore.ErrInternal,
			Inner: err,
		}
	}
	if opts == nil {
		opts = new(Options)
	}
	if err := opts.Parse(); err != nil {
		return nil, err
	}
	r := &Resolver{
		logger: opts.Logger,
		fold:   opts.FoldDedicated,
		strict: opts.Strict,
	}
	for _, c := range opts.DedicatedColumns {
		if r.fold {
			c = normLabel(c)
		}
		r.dedicated = append(r.dedicated, c)
	}
	return r, nil
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	r, err := New(nil)
	if err != nil {
		panic("programmer error: default options rejected: " + err.Error())
	}
	return r
})

// ResolveVector finds the vector in "row" using a lenient Resolver with
// default options.
func ResolveVector(ctx context.Context, row Row) (string, error) {
	return defaultResolver().Resolve(ctx, row)
}

func (r *Resolver) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Strict reports whether the Resolver refuses to fill in missing Base
// metrics.
func (r *Resolver) Strict() bool {
	return r.strict
}

// Resolve returns the canonical vector found in "row", or an error wrapping
// [ErrNoVector].
func (r *Resolver) Resolve(ctx context.Context, row Row) (string, error) {
	m, err := r.Match(ctx, row)
	if err != nil {
		return "", err
	}
	return m.Vector, nil
}

// Match reports the vector found in "row" and how it was found.
//
// The strategies are tried in order, and the first success wins:
//
//  1. The first non-blank dedicated column, matched by exact label.
//  2. Each cell's value on its own, then prefixed with the cell's label.
//  3. Metrics gathered from across all cells.
func (r *Resolver) Match(ctx context.Context, row Row) (Match, error) {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()

	m, ok := r.match(ctx, row)
	span.SetAttributes(strategyAttr(m.Strategy))
	resolveCall.Add(ctx, 1, metric.WithAttributes(strategyAttr(m.Strategy)))
	if !ok {
		r.log().DebugContext(ctx, "no vector found", "cells", len(row))
		return Match{}, ErrNoVector
	}
	r.log().DebugContext(ctx, "vector found",
		"vector", m.Vector,
		"strategy", m.Strategy,
		"label", m.Label)
	return m, nil
}

func (r *Resolver) match(ctx context.Context, row Row) (Match, bool) {
	if len(row) == 0 {
		return Match{}, false
	}
	if c, ok := r.dedicatedCell(row); ok {
		if v, ok := r.fromText(ctx, c.Value); ok {
			return Match{Vector: v, Strategy: StrategyDedicatedColumn, Label: c.Label}, true
		}
	}
	for _, c := range row {
		if ignorable(c.Value) {
			continue
		}
		if v, ok := r.fromText(ctx, c.Value); ok {
			return Match{Vector: v, Strategy: StrategyCellValue, Label: c.Label}, true
		}
		if v, ok := r.fromText(ctx, c.Label+":"+c.Value); ok {
			return Match{Vector: v, Strategy: StrategyLabelledCell, Label: c.Label}, true
		}
	}
	if v, ok := r.crossCell(ctx, row); ok {
		return Match{Vector: v, Strategy: StrategyCrossCell}, true
	}
	return Match{}, false
}

// DedicatedCell returns the first non-blank cell whose label is one of the
// dedicated columns, in the configured priority order.
func (r *Resolver) dedicatedCell(row Row) (Cell, bool) {
	for _, want := range r.dedicated {
		for _, c := range row {
			l := c.Label
			if r.fold {
				l = normLabel(l)
			}
			if ignorable(c.Value) || l != want {
				continue
			}
			return c, true
		}
	}
	return Cell{}, false
}

// ResolveText finds a vector in free text. The parts are joined with spaces
// and examined as a single cell.
func (r *Resolver) ResolveText(ctx context.Context, parts ...string) (string, error) {
	ctx, span := tracer.Start(ctx, "ResolveText")
	defer span.End()

	v, ok := r.fromText(ctx, strings.Join(parts, " "))
	s := StrategyText
	if !ok {
		s = StrategyNone
	}
	span.SetAttributes(strategyAttr(s))
	resolveCall.Add(ctx, 1, metric.WithAttributes(strategyAttr(s)))
	if !ok {
		return "", ErrNoVector
	}
	return v, nil
}
