// Package libscore scores whole tables of rows: it finds each row's vector,
// computes its scores, and summarizes the run.
package libscore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quay/claircore/toolkit/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/quay/vecscore"
	"github.com/quay/vecscore/cvss"
	"github.com/quay/vecscore/resolve"
)

// Libscore scores tables. It is safe for concurrent use.
type Libscore struct {
	resolver    *resolve.Resolver
	concurrency int
	placeholder string
}

// New creates a new instance of Libscore.
func New(ctx context.Context, opts *Options) (*Libscore, error) {
	const op = `libscore: New`
	if err := metricInit(); err != nil {
		return nil, &vecscore.Error{Op: op, Kind: vecscore.ErrInternal, Inner: err}
	}
	if opts == nil {
		opts = new(Options)
	}
	if err := opts.Parse(); err != nil {
		return nil, err
	}
	r, err := resolve.New(&opts.Resolver)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "libscore initialized",
		"concurrency", opts.Concurrency,
		"strict", opts.Resolver.Strict)
	return &Libscore{
		resolver:    r,
		concurrency: opts.Concurrency,
		placeholder: opts.Placeholder,
	}, nil
}

// Table is a set of named sheets.
type Table struct {
	Sheets []Sheet `json:"sheets"`
}

// Sheet is a named sequence of rows.
type Sheet struct {
	Name string        `json:"name"`
	Rows []resolve.Row `json:"rows"`
}

// Report is the outcome of scoring a Table.
type Report struct {
	Results []RowResult `json:"results"`
	Stats   Stats       `json:"stats"`
}

// RowResult is the outcome of scoring a single row.
type RowResult struct {
	Sheet string `json:"sheet"`
	// Row is the 1-based position of the row in its sheet.
	Row int `json:"row"`
	// Vector is the canonical vector, or a placeholder if there is none.
	Vector   string `json:"vector"`
	Status   Status `json:"status"`
	Strategy string `json:"strategy,omitempty"`
	// Scores and Labels are only populated for StatusValid results.
	Scores *cvss.Scores      `json:"scores,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
	// Err is the reason for a StatusInvalid or StatusError result.
	Err error `json:"-"`
}

// ComputeScores is swapped out in tests.
var computeScores = func(v *cvss.Vector) cvss.Scores {
	return v.Scores()
}

// ScoreRow scores a single row. It never fails: problems are reported in the
// result's Status and Err fields, including panics during scoring.
func (l *Libscore) ScoreRow(ctx context.Context, sheet string, n int, row resolve.Row) (res RowResult) {
	const op = `libscore: ScoreRow`
	ctx = log.With(ctx, "sheet", sheet, "row", n)
	ctx, span := tracer.Start(ctx, "ScoreRow")
	defer span.End()
	res = RowResult{Sheet: sheet, Row: n}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "recovered while scoring row", "reason", r)
			res = RowResult{
				Sheet:  sheet,
				Row:    n,
				Vector: ErrorPlaceholder,
				Status: StatusError,
				Err: &vecscore.Error{
					Op:      op,
					Kind:    vecscore.ErrInternal,
					Message: fmt.Sprint(r),
				},
			}
			span.SetStatus(codes.Error, res.Err.Error())
		}
		span.SetAttributes(statusAttr(res.Status))
		rowsCounter.WithLabelValues(res.Status.String()).Inc()
		rowCount.Add(ctx, 1, metric.WithAttributes(statusAttr(res.Status)))
	}()

	m, err := l.resolver.Match(ctx, row)
	if err != nil {
		res.Vector = l.placeholder
		res.Status = StatusInvalid
		res.Err = err
		return res
	}
	span.SetAttributes(attribute.String("vector", m.Vector))
	v, err := cvss.Parse(m.Vector)
	if err != nil {
		slog.DebugContext(ctx, "resolved vector failed to parse", "vector", m.Vector, "reason", err)
		res.Vector = l.placeholder
		res.Status = StatusInvalid
		res.Err = &vecscore.Error{Op: op, Kind: vecscore.ErrInvalid, Inner: err}
		return res
	}
	s := computeScores(&v)
	baseScoreHistogram.Observe(s.Base)
	res.Vector = m.Vector
	res.Status = StatusValid
	res.Strategy = m.Strategy.String()
	res.Scores = &s
	res.Labels = v.Describe()
	return res
}

// ScoreTable scores every non-empty row of every sheet.
//
// Results are reported in sheet order, then row order. Rows are scored
// concurrently, up to the configured limit. The only error reported is
// the Context's.
func (l *Libscore) ScoreTable(ctx context.Context, t *Table) (*Report, error) {
	ctx, span := tracer.Start(ctx, "ScoreTable")
	defer span.End()

	type job struct {
		sheet string
		n     int
		row   resolve.Row
	}
	var jobs []job
	for _, s := range t.Sheets {
		for i, r := range s.Rows {
			if r.Empty() {
				continue
			}
			jobs = append(jobs, job{sheet: s.Name, n: i + 1, row: r})
		}
	}
	span.SetAttributes(attribute.Int("rows", len(jobs)))

	res := make([]RowResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res[i] = l.ScoreRow(gctx, j.sheet, j.n, j.row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	stats := NewStats(res)
	slog.InfoContext(ctx, "table scored",
		"sheets", len(t.Sheets),
		"total", stats.Total,
		"valid", stats.Valid,
		"invalid", stats.Invalid,
		"errors", stats.Errors,
		"average", stats.AverageScore)
	return &Report{Results: res, Stats: stats}, nil
}
