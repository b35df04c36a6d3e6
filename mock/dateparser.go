package mock

import (
	"time"

	"github.com/fwojciec/gradscout"
)

var _ gradscout.DateParser = (*DateParser)(nil)

// DateParser is a mock implementation of gradscout.DateParser.
type DateParser struct {
	ParseDateFn func(fragment string) (time.Time, error)
}

func (p *DateParser) ParseDate(fragment string) (time.Time, error) {
	return p.ParseDateFn(fragment)
}
