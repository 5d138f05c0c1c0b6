package formdomain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Clock abstracts time for deadline parsing.
type Clock interface {
	Now() time.Time
}

// RealClock is the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

var compactTime = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// DeadlineParser turns admin input into a UTC deadline.
type DeadlineParser struct {
	TimezoneMap map[string]string
	clock       Clock
	parser      *when.Parser
}

// NewDeadlineParser creates a parser with the US timezone abbreviations.
func NewDeadlineParser(clock Clock) *DeadlineParser {
	if clock == nil {
		clock = RealClock{}
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DeadlineParser{
		TimezoneMap: map[string]string{
			"UTC": "UTC",
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
		},
		clock:  clock,
		parser: w,
	}
}

// location resolves an abbreviation or IANA name. Empty means UTC.
func (p *DeadlineParser) location(timezone string) (*time.Location, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return time.UTC, nil
	}
	if full, ok := p.TimezoneMap[strings.ToUpper(timezone)]; ok {
		timezone = full
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, ErrInvalidDeadline.WithMessage(fmt.Sprintf("unknown timezone %q", timezone))
	}
	return loc, nil
}

// Parse accepts an RFC3339 timestamp, a datetime-local value, a date (end of
// that day) or a natural-language phrase such as "next friday 5pm". The
// result must lie in the future. Empty input means no deadline.
func (p *DeadlineParser) Parse(input, timezone string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	loc, err := p.location(timezone)
	if err != nil {
		return nil, err
	}
	now := p.clock.Now().In(loc)

	deadline, ok := parseLayouts(input, loc)
	if !ok {
		normalized := compactTime.ReplaceAllString(strings.ToLower(input), "$1:$2 $3")
		r, err := p.parser.Parse(normalized, now)
		if err != nil || r == nil {
			return nil, ErrInvalidDeadline.WithMessage(fmt.Sprintf("could not understand deadline %q", input))
		}
		deadline = r.Time
	}

	if !deadline.After(now) {
		return nil, ErrInvalidDeadline.WithMessage(fmt.Sprintf("deadline %s is in the past", deadline.UTC().Format(time.RFC3339)))
	}
	utc := deadline.UTC().Truncate(time.Second)
	return &utc, nil
}

func parseLayouts(input string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return t.Add(24*time.Hour - time.Second), true
	}
	return time.Time{}, false
}
