package networth

import (
	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// Delta is the change of a value over a window.
type Delta struct {
	Since      date.Date // date of the point the change is measured from
	Start      decimal.Decimal
	Amount     decimal.Decimal
	Percentage Percent
}

// ValueFunc extracts a value from a point, false when the point has none.
type ValueFunc func(Point) (decimal.Decimal, bool)

// WindowDelta measures the change between the first point of 'window' that
// has a value and 'current'.
//
// There is no delta (false) when no point in the window has a value, when
// the window holds a single point dated 'today' (no history yet), or when
// the starting value is zero.
func WindowDelta(h *History, window date.Range, today date.Date, current decimal.Decimal, valueAt ValueFunc) (Delta, bool) {
	var (
		inWindow int
		found    bool
		start    Point
		value    decimal.Decimal
	)
	for _, p := range h.points {
		if !window.Contains(p.Date) {
			continue
		}
		inWindow++
		if found {
			continue
		}
		if v, ok := valueAt(p); ok {
			found, start, value = true, p, v
		}
	}
	if !found {
		return Delta{}, false
	}
	if inWindow == 1 && start.Date == today {
		return Delta{}, false
	}
	if value.IsZero() {
		return Delta{}, false
	}
	amount := current.Sub(value)
	pct := amount.Div(value).Mul(decimal.NewFromInt(100))
	return Delta{
		Since:      start.Date,
		Start:      value,
		Amount:     amount,
		Percentage: Percent(pct.InexactFloat64()),
	}, true
}

// NetWorthValue reads the net worth of a point.
func NetWorthValue(p Point) (decimal.Decimal, bool) { return p.NetWorth, true }

// AccountValue returns a ValueFunc reading the value of the account 'id'.
func AccountValue(id string) ValueFunc {
	return func(p Point) (decimal.Decimal, bool) {
		v, ok := p.AccountValues[id]
		return v, ok
	}
}

// AccountsValue returns a ValueFunc summing the accounts 'ids'. A point has a
// value if it has any of them.
func AccountsValue(ids ...string) ValueFunc {
	return func(p Point) (decimal.Decimal, bool) {
		total, seen := decimal.Zero, false
		for _, id := range ids {
			if v, ok := p.AccountValues[id]; ok {
				total, seen = total.Add(v), true
			}
		}
		return total, seen
	}
}

// NetWorthYTD returns the net worth change since the beginning of the year.
func NetWorthYTD(h *History, today date.Date, current decimal.Decimal) (Delta, bool) {
	if current.IsZero() {
		return Delta{}, false
	}
	return WindowDelta(h, date.YearToDate(today), today, current, NetWorthValue)
}

// AccountYTD returns the change of the account since the beginning of the year.
func AccountYTD(h *History, today date.Date, a Account) (Delta, bool) {
	return WindowDelta(h, date.YearToDate(today), today, a.Value(), AccountValue(a.ID))
}

// InstitutionYTD returns the change of a financial institution since the
// beginning of the year. Real estate has no history.
func InstitutionYTD(h *History, today date.Date, inst Institution, accounts []Account) (Delta, bool) {
	ids, ok := institutionAccountIDs(inst, accounts)
	if !ok {
		return Delta{}, false
	}
	return WindowDelta(h, date.YearToDate(today), today, InstitutionValue(inst, accounts), AccountsValue(ids...))
}

// InstitutionTotalReturn returns the change of a financial institution since
// the first point holding any of its accounts.
func InstitutionTotalReturn(h *History, today date.Date, inst Institution, accounts []Account) (Delta, bool) {
	ids, ok := institutionAccountIDs(inst, accounts)
	if !ok || h.Len() < 2 {
		return Delta{}, false
	}
	first, _ := h.First()
	return WindowDelta(h, date.Since(first.Date, today), today, InstitutionValue(inst, accounts), AccountsValue(ids...))
}

func institutionAccountIDs(inst Institution, accounts []Account) ([]string, bool) {
	if inst.Type == RealEstate {
		return nil, false
	}
	var ids []string
	for _, a := range InstitutionAccounts(accounts, inst.ID) {
		ids = append(ids, a.ID)
	}
	return ids, len(ids) > 0
}
