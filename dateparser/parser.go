// Package dateparser provides a gradscout.DateParser backed by go-dateparser.
package dateparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/gradscout"
	"github.com/markusmobius/go-dateparser"
)

// Ensure Parser implements gradscout.DateParser at compile time.
var _ gradscout.DateParser = (*Parser)(nil)

// hasYear reports whether a fragment names an explicit year.
var hasYear = regexp.MustCompile(`\b\d{4}\b`)

// Parser parses English deadline fragments, preferring future dates when
// the year is omitted.
type Parser struct {
	// Now returns the reference time. Defaults to time.Now.
	Now func() time.Time

	// Languages restricts the languages tried. Defaults to English.
	Languages []string
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{
		Now:       time.Now,
		Languages: []string{"en"},
	}
}

// ParseDate returns the calendar date named by fragment, at midnight UTC.
//
// A fragment without a year resolves to the next occurrence of its month
// and day on or after today, rolling into the following year when needed.
func (p *Parser) ParseDate(fragment string) (time.Time, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return time.Time{}, gradscout.Errorf(gradscout.EINVALID, "empty date fragment")
	}

	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if hasYear.MatchString(fragment) {
		return p.parse(fragment, today)
	}

	// Anchor yearless month-day fragments to a leap year so February 29
	// survives parsing, then move the month and day forward from today.
	t, err := p.parse(fragment+" "+strconv.Itoa(nextLeapYear(today.Year())), today)
	if err != nil {
		if t, err = p.parse(fragment, today); err != nil {
			return time.Time{}, err
		}
	}
	return rollForward(t, today), nil
}

func (p *Parser) parse(fragment string, today time.Time) (time.Time, error) {
	cfg := &dateparser.Configuration{
		CurrentTime:         today,
		Languages:           p.Languages,
		PreferredDateSource: dateparser.Future,
	}
	dt, err := dateparser.Parse(cfg, fragment)
	if err != nil {
		return time.Time{}, gradscout.Errorf(gradscout.EINVALID, "unparsable date %q: %v", fragment, err)
	}
	if dt.Time.IsZero() {
		return time.Time{}, gradscout.Errorf(gradscout.EINVALID, "unparsable date %q", fragment)
	}
	return time.Date(dt.Time.Year(), dt.Time.Month(), dt.Time.Day(), 0, 0, 0, 0, time.UTC), nil
}

// rollForward returns the first occurrence of t's month and day on or
// after today. February 29 only occurs in leap years.
func rollForward(t, today time.Time) time.Time {
	for year := today.Year(); ; year++ {
		c := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if c.Day() == t.Day() && !c.Before(today) {
			return c
		}
	}
}

func nextLeapYear(year int) int {
	for year%4 != 0 || (year%100 == 0 && year%400 != 0) {
		year++
	}
	return year
}
