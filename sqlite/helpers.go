package sqlite

import (
	"strings"
	"time"

	"github.com/fwojciec/gradscout"
)

// formatTime formats t as RFC3339 in UTC. The zero time is stored as an
// empty string so unfinished runs round-trip.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a timestamp written by formatTime. An empty value yields
// the zero time.
func parseTime(value, column string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, gradscout.Errorf(gradscout.EINTERNAL, "invalid %s %q: %v", column, value, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses for the values that are
// positive. SQLite only accepts OFFSET after a LIMIT, so an offset alone is
// paired with LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
