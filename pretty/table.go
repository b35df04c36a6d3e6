// Package pretty renders results and run history as terminal tables using
// go-pretty.
package pretty

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/gradscout"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Column widths beyond which cell text is trimmed.
const (
	titleWidth   = 48
	urlWidth     = 60
	signalsWidth = 40
)

// Ensure TableWriter implements gradscout.RowWriter at compile time.
var _ gradscout.RowWriter = (*TableWriter)(nil)

// TableWriter renders result rows as a table.
type TableWriter struct {
	w io.Writer
}

// NewTableWriter creates a TableWriter that renders to w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: w}
}

func (tw *TableWriter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(tw.w)
	t.SetStyle(table.StyleLight)
	return t
}

// WriteRows renders the rows in rank order.
func (tw *TableWriter) WriteRows(_ context.Context, rows []*gradscout.ResultRow) error {
	t := tw.newTable()
	t.AppendHeader(table.Row{"#", "Score", "Title", "Domain", "Funding", "Deadlines", "URL"})
	for i, r := range rows {
		t.AppendRow(table.Row{i + 1, gradscout.FormatScore(r.Score), r.Title, r.Domain, r.FundingSignals, r.Deadlines, r.URL})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, WidthMax: titleWidth, WidthMaxEnforcer: text.Trim},
		{Number: 5, WidthMax: signalsWidth, WidthMaxEnforcer: text.Trim},
		{Number: 7, WidthMax: urlWidth, WidthMaxEnforcer: text.Trim},
	})
	t.AppendFooter(table.Row{"", "", "Total", len(rows)})
	t.Render()
	return nil
}

// WriteRuns renders a list of runs, most recent first.
func (tw *TableWriter) WriteRuns(runs []*gradscout.Run) {
	t := tw.newTable()
	t.AppendHeader(table.Row{"Run", "Started At", "Duration", "Queries", "Hits", "Scored", "Rows"})
	for _, r := range runs {
		duration := "Running..."
		if !r.FinishedAt.IsZero() {
			duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		t.AppendRow(table.Row{r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), duration, r.Queries, r.Hits, r.Scored, r.Rows})
	}
	t.Render()
}

// WriteStoredRows renders the rows of one run, marking rows that no
// earlier run produced.
func (tw *TableWriter) WriteStoredRows(rows []*gradscout.StoredRow) {
	t := tw.newTable()
	t.AppendHeader(table.Row{"#", "New", "Score", "Title", "Domain", "Deadlines", "URL"})
	for _, r := range rows {
		marker := ""
		if r.New {
			marker = "*"
		}
		t.AppendRow(table.Row{r.Position + 1, marker, gradscout.FormatScore(r.Score), r.Title, r.Domain, r.Deadlines, r.URL})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, WidthMax: titleWidth, WidthMaxEnforcer: text.Trim},
		{Number: 7, WidthMax: urlWidth, WidthMaxEnforcer: text.Trim},
	})
	t.Render()
}
