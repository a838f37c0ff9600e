package date

import (
	"fmt"
	"strings"
)

// Period is the granularity used to window history.
type Period int

const (
	Yearly Period = iota
	Inception
)

func (p Period) String() string {
	switch p {
	case Yearly:
		return "ytd"
	case Inception:
		return "inception"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses the command line name of a period.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "ytd", "year", "yearly":
		return Yearly, nil
	case "inception", "all", "total":
		return Inception, nil
	default:
		return Yearly, fmt.Errorf("unknown period %s", p)
	}
}

// Range returns the window of the period ending on 'on'. For Inception the
// window starts at 'first'.
func (p Period) Range(first, on Date) Range {
	if p == Inception {
		return Since(first, on)
	}
	return YearToDate(on)
}
