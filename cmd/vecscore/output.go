package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/gocarina/gocsv"

	"github.com/quay/vecscore/cvss"
	"github.com/quay/vecscore/libscore"
)

// A writer renders a report.
type writer interface {
	Write(*libscore.Report) error
}

func newWriter(format string, out io.Writer) (writer, error) {
	switch format {
	case "table", "":
		return tableWriter{out}, nil
	case "json":
		return jsonWriter{out}, nil
	case "csv":
		return csvWriter{out}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

type tableWriter struct{ w io.Writer }

func (t tableWriter) Write(rep *libscore.Report) error {
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHEET\tROW\tSTATUS\tBASE\tSEVERITY\tVECTOR")
	for _, r := range rep.Results {
		base, sev := "-", "-"
		if r.Scores != nil {
			base = formatScore(r.Scores.Base)
			sev = r.Scores.Severity.String()
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", r.Sheet, r.Row, r.Status, base, sev, r.Vector)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := rep.Stats
	_, err := fmt.Fprintf(t.w, "\n%d rows: %d valid, %d invalid, %d errors; average base score %s\n",
		s.Total, s.Valid, s.Invalid, s.Errors, formatScore(s.AverageScore))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(t.w, "Critical %d, High %d, Medium %d, Low %d, None %d\n",
		s.Severity[cvss.SeverityCritical], s.Severity[cvss.SeverityHigh],
		s.Severity[cvss.SeverityMedium], s.Severity[cvss.SeverityLow],
		s.Severity[cvss.SeverityNone])
	return err
}

type jsonWriter struct{ w io.Writer }

func (j jsonWriter) Write(rep *libscore.Report) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

type csvWriter struct{ w io.Writer }

func (c csvWriter) Write(rep *libscore.Report) error {
	rows := make([]exportRow, len(rep.Results))
	for i := range rep.Results {
		rows[i] = newExportRow(&rep.Results[i])
	}
	return gocsv.Marshal(&rows, c.w)
}

// ExportRow is the flattened form of a result used for CSV output.
type exportRow struct {
	Sheet                 string `csv:"Sheet"`
	Row                   int    `csv:"Row"`
	Vector                string `csv:"Vector"`
	Status                string `csv:"Status"`
	BaseScore             string `csv:"Base Score"`
	TemporalScore         string `csv:"Temporal Score"`
	EnvironmentalScore    string `csv:"Environmental Score"`
	Severity              string `csv:"Severity"`
	ConfidentialityImpact string `csv:"Confidentiality Impact"`
	IntegrityImpact       string `csv:"Integrity Impact"`
	AvailabilityImpact    string `csv:"Availability Impact"`
	AttackVector          string `csv:"Attack Vector"`
	AttackComplexity      string `csv:"Attack Complexity"`
	PrivilegesRequired    string `csv:"Privileges Required"`
	UserInteraction       string `csv:"User Interaction"`
	Scope                 string `csv:"Scope"`
	Confidentiality       string `csv:"Confidentiality"`
	Integrity             string `csv:"Integrity"`
	Availability          string `csv:"Availability"`
	ExploitCodeMaturity   string `csv:"Exploit Code Maturity"`
	RemediationLevel      string `csv:"Remediation Level"`
	ReportConfidence      string `csv:"Report Confidence"`
}

const none = "-"

func newExportRow(r *libscore.RowResult) exportRow {
	e := exportRow{
		Sheet:  r.Sheet,
		Row:    r.Row,
		Vector: r.Vector,
		Status: r.Status.String(),
	}
	label := func(m cvss.Metric) string {
		if l, ok := r.Labels[m.Name()]; ok {
			return l
		}
		return none
	}
	e.AttackVector = label(cvss.AttackVector)
	e.AttackComplexity = label(cvss.AttackComplexity)
	e.PrivilegesRequired = label(cvss.PrivilegesRequired)
	e.UserInteraction = label(cvss.UserInteraction)
	e.Scope = label(cvss.Scope)
	e.Confidentiality = label(cvss.Confidentiality)
	e.Integrity = label(cvss.Integrity)
	e.Availability = label(cvss.Availability)
	e.ExploitCodeMaturity = label(cvss.ExploitMaturity)
	e.RemediationLevel = label(cvss.RemediationLevel)
	e.ReportConfidence = label(cvss.ReportConfidence)

	s := r.Scores
	if s == nil {
		e.BaseScore, e.TemporalScore, e.EnvironmentalScore, e.Severity = none, none, none, none
		e.ConfidentialityImpact, e.IntegrityImpact, e.AvailabilityImpact = none, none, none
		return e
	}
	e.BaseScore = formatScore(s.Base)
	e.TemporalScore = formatScore(s.Temporal)
	e.EnvironmentalScore = formatScore(s.Environmental)
	e.Severity = s.Severity.String()
	e.ConfidentialityImpact = formatImpact(s.Impact.Confidentiality)
	e.IntegrityImpact = formatImpact(s.Impact.Integrity)
	e.AvailabilityImpact = formatImpact(s.Impact.Availability)
	return e
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func formatImpact(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
