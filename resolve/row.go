package resolve

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Cell is a single labelled value in a row.
type Cell struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row is an ordered sequence of cells.
//
// Cell order is significant: when more than one cell could supply a vector,
// earlier cells win.
type Row []Cell

// FromMap builds a Row from a label-keyed mapping, such as a decoded JSON
// object. Cells are ordered by label, and values are formatted with [Text].
func FromMap(m map[string]any) Row {
	ls := make([]string, 0, len(m))
	for l := range m {
		ls = append(ls, l)
	}
	slices.Sort(ls)
	r := make(Row, len(ls))
	for i, l := range ls {
		r[i] = Cell{Label: l, Value: Text(m[l])}
	}
	return r
}

// FromRecord builds a Row from a record and its header. When the header is
// missing an entry for a column, the column is labelled "ColN", counting from
// 1.
func FromRecord(header, record []string) Row {
	r := make(Row, len(record))
	for i, v := range record {
		l := ""
		if i < len(header) {
			l = header[i]
		}
		if strings.TrimSpace(l) == "" {
			l = "Col" + strconv.Itoa(i+1)
		}
		r[i] = Cell{Label: l, Value: v}
	}
	return r
}

// Text formats a scalar cell value as text. A nil value is the empty string.
func Text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Get returns the value of the first cell with the exact label.
func (r Row) Get(label string) (string, bool) {
	for _, c := range r {
		if c.Label == label {
			return c.Value, true
		}
	}
	return "", false
}

// Empty reports whether every cell in the row is blank.
func (r Row) Empty() bool {
	for _, c := range r {
		if strings.TrimSpace(c.Value) != "" {
			return false
		}
	}
	return true
}

var colonSpace = regexp.MustCompile(`\s*:\s*`)

// NormValue prepares cell text for matching: compatibility-normalized,
// trimmed, upper-cased, and with any space around colons removed.
func normValue(s string) string {
	s = strings.TrimSpace(norm.NFKC.String(s))
	if s == "" {
		return s
	}
	// Casers carry state and are not safe for concurrent use.
	s = cases.Upper(language.Und).String(s)
	return colonSpace.ReplaceAllLiteralString(s, ":")
}

// NormLabel prepares a column label for matching against metric names.
func normLabel(s string) string {
	return strings.TrimSpace(cases.Fold().String(norm.NFKC.String(s)))
}
