package topology

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrInvalidTime marks a downtime start/end string that cannot be parsed
// even after normalization.
var ErrInvalidTime = errors.New("invalid time")

// Operators sometimes enter a 24-hour time with a redundant meridiem, like
// "00:30 AM" or "17:00 PM". The hour already decides, so the suffix is
// stripped before parsing.
var (
	midnightAM  = regexp.MustCompile(`(?:^|\s)00:\d\d\s+AM`)
	afternoonPM = regexp.MustCompile(`(?:^|\s)(1[3-9]|2[0-3]):\d\d\s+PM`)
)

var clockLayouts = []string{"15:04:05", "15:04"}

// ParseTime normalizes and parses a free-form, human-entered time string.
// Strings without a zone are taken as UTC; date-less clock strings anchor
// on the current UTC day.
func ParseTime(s string) (time.Time, error) {
	cleaned := s
	if midnightAM.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, " AM", "")
	} else if afternoonPM.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, " PM", "")
	}
	t, err := dateparse.ParseIn(cleaned, time.UTC)
	if err != nil {
		for _, layout := range clockLayouts {
			clock, cerr := time.Parse(layout, cleaned)
			if cerr != nil {
				continue
			}
			now := time.Now().UTC()
			return time.Date(now.Year(), now.Month(), now.Day(),
				clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t, nil
}

// Bucket is a downtime's temporal classification relative to the run's
// evaluation instant.
type Bucket int

const (
	Past Bucket = iota
	Current
	Future
)

func (b Bucket) String() string {
	switch b {
	case Past:
		return "past"
	case Future:
		return "future"
	default:
		return "current"
	}
}

// Classify places the window [start, end] relative to now: strictly before
// is past, strictly after is future, everything else (boundaries included)
// is current.
func Classify(start, end, now time.Time) Bucket {
	switch {
	case end.Before(now):
		return Past
	case start.After(now):
		return Future
	default:
		return Current
	}
}
