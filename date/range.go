package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// YearToDate returns the range from January 1st of on's year up to on.
func YearToDate(on Date) Range { return Range{From: on.StartOfYear(), To: on} }

// Since returns the open ended range starting at from up to on.
func Since(from, on Date) Range { return Range{From: from, To: on} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Name the range, using a short form for a whole year.
func (r Range) Name() string {
	if r.From == r.From.StartOfYear() && r.To.Year() == r.From.Year() {
		return fmt.Sprintf("%d YTD", r.From.Year())
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
