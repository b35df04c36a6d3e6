package gradscout

import (
	"strconv"
	"strings"
)

// SignalSeparator joins signal lists in result rows.
const SignalSeparator = "; "

// CSVHeader is the column order of exported result rows.
var CSVHeader = []string{
	"title", "url", "domain", "score", "funding_signals",
	"gre_waiver_signals", "ielts_waiver_signals", "deadlines", "snippet",
}

// JoinSignals joins signal values for display.
func JoinSignals(values []string) string {
	return strings.Join(values, SignalSeparator)
}

// FormatScore formats a score with two decimal places.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// Record returns the row's fields in CSVHeader order.
func (r *ResultRow) Record() []string {
	return []string{
		r.Title,
		r.URL,
		r.Domain,
		FormatScore(r.Score),
		r.FundingSignals,
		r.GREWaiverSignals,
		r.IELTSWaiverSignals,
		r.Deadlines,
		r.Snippet,
	}
}
