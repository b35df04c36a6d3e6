package gradscout

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// SignalSet holds the signals detected in a page's text.
type SignalSet struct {
	// Funding lists the funding keywords found, in vocabulary order.
	Funding []string

	// NoGRE lists the "GRE not required" phrases found.
	NoGRE []string

	// NoIELTS lists the "English proficiency not required" phrases found.
	NoIELTS []string

	// Deadlines lists unique deadline dates as YYYY-MM-DD, ascending.
	Deadlines []string
}

// Empty reports whether no signal was detected.
func (s SignalSet) Empty() bool {
	return len(s.Funding) == 0 && len(s.NoGRE) == 0 && len(s.NoIELTS) == 0 && len(s.Deadlines) == 0
}

// DeadlinePattern matches a deadline date fragment in text.
// The first capture group of Expr holds the date fragment.
type DeadlinePattern struct {
	Name string
	Expr *regexp.Regexp

	// Yearless marks a pattern that captures a month and day only. Matches
	// immediately followed by a year are skipped so the dated variant of the
	// same phrase is not counted twice.
	Yearless bool
}

// Vocabulary is the fixed signal vocabulary the Detector searches for.
// Keyword lists are lower-case.
type Vocabulary struct {
	Funding   []string
	NoGRE     []string
	NoIELTS   []string
	Deadlines []DeadlinePattern
}

// DefaultVocabulary returns a fresh copy of the built-in vocabulary.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Funding: []string{
			"scholarship", "scholarships", "fellowship", "stipend", "stipends",
			"tuition waiver", "tuition waivers", "fee waiver", "funded",
			"graduate assistantship", "teaching assistantship", "research assistantship",
			"assistantship", "tuition covered", "tuition remission", "tuition reduction",
			"living allowance", "monthly allowance", "tuition support", "full funding",
		},
		NoGRE: []string{
			"no gre", "gre not required", "gre waived", "gre waiver",
		},
		NoIELTS: []string{
			"ielts waiver", "ielts not required", "english proficiency waiver",
			"medium of instruction", "moi", "waive ielts",
		},
		Deadlines: []DeadlinePattern{
			{Name: "deadline", Expr: regexp.MustCompile(`(?i)deadline[:\s-]*([a-z]{3,9}\s\d{1,2}` + yearSep + `\d{4})`)},
			{Name: "deadline-yearless", Expr: regexp.MustCompile(`(?i)deadline[:\s-]*([a-z]{3,9}\s\d{1,2})`), Yearless: true},
			{Name: "apply-by", Expr: regexp.MustCompile(`(?i)apply by[:\s-]*([a-z]{3,9}\s\d{1,2}` + yearSep + `\d{4})`)},
			{Name: "application-deadline", Expr: regexp.MustCompile(`(?i)application deadline[:\s-]*([a-z]{3,9}\s\d{1,2}` + yearSep + `\d{4})`)},
			{Name: "closing-date", Expr: regexp.MustCompile(`(?i)closing date[:\s-]*([a-z]{3,9}\s\d{1,2}` + yearSep + `\d{4})`)},
			{Name: "day-month-year", Expr: regexp.MustCompile(`(?i)(\d{1,2}\s[a-z]{3,9}\s\d{4})`)},
			{Name: "month-day-year", Expr: regexp.MustCompile(`(?i)([a-z]{3,9}\s\d{1,2},\s\d{4})`)},
		},
	}
}

// yearSep separates the day from the year in labelled deadlines:
// "March 15, 2027", "March 15,2027" or "March 15 2027".
const yearSep = `(?:,\s?|\s)`

// trailingYear matches the year a labelled pattern captures directly
// after a month-day fragment.
var trailingYear = regexp.MustCompile(`^` + yearSep + `\d{4}`)

// dayYear matches the day-year separator of a dated fragment.
var dayYear = regexp.MustCompile(`(\d{1,2})` + yearSep + `(\d{4})$`)

// DateParser parses natural-language date fragments.
type DateParser interface {
	// ParseDate parses a fragment such as "March 15, 2025" or "15 March".
	// Fragments without a year resolve to a future date.
	ParseDate(fragment string) (time.Time, error)
}

// Detector scans extracted text for funding, waiver and deadline signals.
type Detector struct {
	Vocabulary *Vocabulary
	Dates      DateParser
}

// NewDetector returns a Detector using the default vocabulary.
func NewDetector(dates DateParser) *Detector {
	return &Detector{
		Vocabulary: DefaultVocabulary(),
		Dates:      dates,
	}
}

// Detect returns the signals found in text.
func (d *Detector) Detect(text string) SignalSet {
	vocab := d.Vocabulary
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	lower := strings.ToLower(text)
	return SignalSet{
		Funding:   MatchKeywords(lower, vocab.Funding),
		NoGRE:     MatchKeywords(lower, vocab.NoGRE),
		NoIELTS:   MatchKeywords(lower, vocab.NoIELTS),
		Deadlines: d.deadlines(text, vocab.Deadlines),
	}
}

// MatchKeywords returns the keywords that occur as substrings of text,
// in keyword order. A keyword listed twice is reported once.
// Text must already be lower-case.
func MatchKeywords(text string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if !strings.Contains(text, kw) || slices.Contains(hits, kw) {
			continue
		}
		hits = append(hits, kw)
	}
	return hits
}

// deadlines applies every pattern to the whole text and returns the unique
// parsed dates in ascending order.
func (d *Detector) deadlines(text string, patterns []DeadlinePattern) []string {
	if d.Dates == nil {
		return nil
	}

	found := make(map[string]struct{})
	for _, p := range patterns {
		for _, loc := range p.Expr.FindAllStringSubmatchIndex(text, -1) {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			if p.Yearless && trailingYear.MatchString(text[loc[1]:]) {
				continue
			}
			t, err := d.Dates.ParseDate(dayYear.ReplaceAllString(text[loc[2]:loc[3]], "$1, $2"))
			if err != nil || t.IsZero() {
				continue
			}
			found[t.Format(time.DateOnly)] = struct{}{}
		}
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for iso := range found {
		out = append(out, iso)
	}
	slices.Sort(out)
	return out
}
