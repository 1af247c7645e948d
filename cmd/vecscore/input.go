package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quay/vecscore/libscore"
	"github.com/quay/vecscore/resolve"
)

// ReadTable reads one sheet per named file, or a single sheet named "stdin"
// from "in" when there are no names.
func readTable(ctx context.Context, names []string, in io.Reader, header bool) (*libscore.Table, error) {
	var t libscore.Table
	if len(names) == 0 {
		s, err := readSheet("stdin", in, header)
		if err != nil {
			return nil, err
		}
		t.Sheets = append(t.Sheets, s)
		return &t, nil
	}
	for _, n := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(n)
		if err != nil {
			return nil, err
		}
		s, err := readSheet(sheetName(n), f, header)
		f.Close()
		if err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "read sheet", "file", n, "rows", len(s.Rows))
		t.Sheets = append(t.Sheets, s)
	}
	return &t, nil
}

func sheetName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// ReadSheet decodes CSV records into rows. Records may be ragged.
func readSheet(name string, r io.Reader, header bool) (libscore.Sheet, error) {
	s := libscore.Sheet{Name: name}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	var labels []string
	for {
		rec, err := cr.Read()
		switch {
		case errors.Is(err, io.EOF):
			return s, nil
		case err != nil:
			return s, fmt.Errorf("sheet %q: %w", name, err)
		}
		if header && labels == nil {
			labels = rec
			if len(rec) > 0 {
				rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			}
			continue
		}
		s.Rows = append(s.Rows, resolve.FromRecord(labels, rec))
	}
}
