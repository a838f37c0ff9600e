package networth

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// Point is the recorded net worth and account values of one day.
type Point struct {
	Date          date.Date                  `json:"date"`
	NetWorth      decimal.Decimal            `json:"netWorth"`
	AccountValues map[string]decimal.Decimal `json:"accountValues"`
}

// clone returns a deep copy of p.
func (p Point) clone() Point {
	p.AccountValues = maps.Clone(p.AccountValues)
	if p.AccountValues == nil {
		p.AccountValues = make(map[string]decimal.Decimal)
	}
	return p
}

// History is a chronological series of points, at most one per day.
//
// Points are indexed by date, and kept sorted.
type History struct {
	points []Point
	index  map[date.Date]int
}

// NewHistory returns a history from points in any order. When two points share
// a date the last one wins.
func NewHistory(points ...Point) *History {
	h := &History{}
	for _, p := range points {
		h.set(p.clone())
	}
	return h
}

// Len returns the number of points.
func (h *History) Len() int { return len(h.points) }

// Points returns a copy of the points in chronological order.
func (h *History) Points() []Point {
	res := make([]Point, len(h.points))
	for i, p := range h.points {
		res[i] = p.clone()
	}
	return res
}

// Get returns the point at 'on'.
func (h *History) Get(on date.Date) (Point, bool) {
	i, ok := h.index[on]
	if !ok {
		return Point{}, false
	}
	return h.points[i].clone(), true
}

// Clone returns a deep copy of h.
func (h *History) Clone() *History { return NewHistory(h.points...) }

// set replaces or inserts p, keeping the series sorted.
func (h *History) set(p Point) {
	if h.index == nil {
		h.index = make(map[date.Date]int)
	}
	if i, ok := h.index[p.Date]; ok {
		h.points[i] = p
		return
	}
	i, _ := slices.BinarySearchFunc(h.points, p.Date, func(q Point, on date.Date) int { return q.Date.Compare(on) })
	h.points = slices.Insert(h.points, i, p)
	h.reindex(i)
}

// reindex updates the index of points from position 'from'.
func (h *History) reindex(from int) {
	for i := from; i < len(h.points); i++ {
		h.index[h.points[i].Date] = i
	}
}

// UpsertToday records the net worth and account values of 'today', replacing
// the point of that day if there is one.
func (h *History) UpsertToday(today date.Date, netWorth decimal.Decimal, values map[string]decimal.Decimal) {
	h.set(Point{Date: today, NetWorth: netWorth, AccountValues: maps.Clone(values)}.clone())
}

// ImportedPoint is the value of one account on one day, from an external source.
type ImportedPoint struct {
	Date      date.Date
	AccountID string
	Value     decimal.Decimal
}

// MergeImported sets every imported account value, creating the missing days,
// then recomputes the net worth of every point as the sum of its account values
// plus 'realEstateNet'.
//
// Merging the same rows twice gives the same history.
func (h *History) MergeImported(rows []ImportedPoint, realEstateNet decimal.Decimal) {
	for _, r := range rows {
		p, ok := h.Get(r.Date)
		if !ok {
			p = Point{Date: r.Date, NetWorth: decimal.Zero}.clone()
		}
		p.AccountValues[r.AccountID] = r.Value
		h.set(p)
	}
	for i := range h.points {
		total := realEstateNet
		for _, v := range h.points[i].AccountValues {
			total = total.Add(v)
		}
		h.points[i].NetWorth = total
	}
}

// First returns the first point.
func (h *History) First() (Point, bool) {
	if len(h.points) == 0 {
		return Point{}, false
	}
	return h.points[0].clone(), true
}

// MarshalJSON writes the history as an array of points.
func (h *History) MarshalJSON() ([]byte, error) {
	if h == nil || h.points == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.points)
}

// UnmarshalJSON reads an array of points in any order.
func (h *History) UnmarshalJSON(data []byte) error {
	var points []Point
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	*h = *NewHistory(points...)
	return nil
}
