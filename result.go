package gradscout

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// ScoredCandidate is a fetched page that passed the text-length threshold
// and was scored. It is never mutated after creation.
type ScoredCandidate struct {
	Score    float64
	Signals  SignalSet
	Document Document

	// FinalURL is the page URL after redirects.
	FinalURL string

	// Domain is the registrable domain of FinalURL.
	Domain string

	OriginalURL     string
	OriginalTitle   string
	OriginalSnippet string
}

// NewScoredCandidate scores the signals using the default weights and
// builds a candidate for the hit.
func NewScoredCandidate(hit Hit, finalURL, domain string, doc Document, signals SignalSet) *ScoredCandidate {
	return DefaultWeights.NewCandidate(hit, finalURL, domain, doc, signals)
}

// NewCandidate scores the signals with w and builds a candidate for the hit.
func (w Weights) NewCandidate(hit Hit, finalURL, domain string, doc Document, signals SignalSet) *ScoredCandidate {
	return &ScoredCandidate{
		Score:           w.Score(signals),
		Signals:         signals,
		Document:        doc,
		FinalURL:        finalURL,
		Domain:          domain,
		OriginalURL:     hit.URL,
		OriginalTitle:   hit.Title,
		OriginalSnippet: hit.Snippet,
	}
}

// Key returns the deduplication key of the candidate.
func (c *ScoredCandidate) Key() string {
	return DedupKey(c.Domain, c.Document.Title)
}

// DedupKey returns the key identifying a page across URLs: its domain and
// its lower-cased, trimmed title.
func DedupKey(domain, title string) string {
	return domain + "\x00" + strings.ToLower(strings.TrimSpace(title))
}

// ResultRow is a final ranked result.
type ResultRow struct {
	Title              string  `json:"title"`
	URL                string  `json:"url"`
	Domain             string  `json:"domain"`
	Score              float64 `json:"score"`
	FundingSignals     string  `json:"funding_signals"`
	GREWaiverSignals   string  `json:"gre_waiver_signals"`
	IELTSWaiverSignals string  `json:"ielts_waiver_signals"`
	Deadlines          string  `json:"deadlines"`
	Snippet            string  `json:"snippet"`
}

// NoTitle is the title of a row whose page and hit both lack one.
const NoTitle = "(no title)"

// NewResultRow formats a candidate as a result row.
func NewResultRow(c *ScoredCandidate) *ResultRow {
	title := c.Document.Title
	if title == "" {
		title = c.OriginalTitle
	}
	if title == "" {
		title = NoTitle
	}

	return &ResultRow{
		Title:              title,
		URL:                c.FinalURL,
		Domain:             c.Domain,
		Score:              math.Round(c.Score*100) / 100,
		FundingSignals:     JoinSignals(c.Signals.Funding),
		GREWaiverSignals:   JoinSignals(c.Signals.NoGRE),
		IELTSWaiverSignals: JoinSignals(c.Signals.NoIELTS),
		Deadlines:          JoinSignals(c.Signals.Deadlines),
		Snippet:            c.OriginalSnippet,
	}
}

// Aggregate turns scored candidates into ranked result rows.
//
// Candidates scoring below minScore are dropped. Of the remaining candidates
// sharing a DedupKey, the first in slice order wins regardless of score.
// Rows are sorted by score descending, then domain ascending.
func Aggregate(candidates []*ScoredCandidate, minScore float64) []*ResultRow {
	seen := make(map[string]struct{})
	rows := make([]*ResultRow, 0, len(candidates))

	for _, c := range candidates {
		if c == nil || c.Score < minScore {
			continue
		}
		key := c.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, NewResultRow(c))
	}

	slices.SortStableFunc(rows, func(a, b *ResultRow) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Domain, b.Domain)
	})
	return rows
}
