package renderer

import (
	"slices"
	"strings"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
)

// Summary is the net worth report of a day.
type Summary struct {
	Date         string
	NetWorth     string
	YTD          *Change
	Institutions []InstitutionLine
	Accounts     []AccountLine
}

// Change is a formatted delta.
type Change struct {
	Label   string
	Amount  string
	Percent string
}

type InstitutionLine struct {
	Name        string
	Type        string
	Value       string
	YTD         string
	TotalReturn string
}

type AccountLine struct {
	Institution string
	Name        string
	Value       string
	YTD         string
}

func change(label string, d networth.Delta, ok bool, cur string) *Change {
	if !ok {
		return nil
	}
	return &Change{Label: label, Amount: networth.FormatSigned(d.Amount, cur), Percent: d.Percentage.SignedString()}
}

// short formats a delta for a table cell, "-" when there is none.
func short(d networth.Delta, ok bool) string {
	if !ok {
		return "-"
	}
	return d.Percentage.SignedString()
}

// NewSummary computes the summary of the book on 'today', amounts in currency 'cur'.
func NewSummary(b *networth.Book, today date.Date, cur string) *Summary {
	current := b.NetWorth()
	s := &Summary{
		Date:     today.String(),
		NetWorth: networth.FormatAmount(current, cur),
	}
	ytd, ok := networth.NetWorthYTD(b.History, today, current)
	s.YTD = change(date.YearToDate(today).Name(), ytd, ok, cur)

	institutions := slices.Clone(b.Institutions)
	slices.SortFunc(institutions, func(x, y networth.Institution) int { return strings.Compare(x.Name, y.Name) })
	for _, inst := range institutions {
		line := InstitutionLine{
			Name:        inst.Name,
			Type:        string(inst.Type),
			Value:       networth.FormatAmount(networth.InstitutionValue(inst, b.Accounts), cur),
			YTD:         "-",
			TotalReturn: "-",
		}
		if inst.Type != networth.RealEstate {
			line.YTD = short(networth.InstitutionYTD(b.History, today, inst, b.Accounts))
			line.TotalReturn = short(networth.InstitutionTotalReturn(b.History, today, inst, b.Accounts))
			for _, a := range networth.InstitutionAccounts(b.Accounts, inst.ID) {
				s.Accounts = append(s.Accounts, AccountLine{
					Institution: inst.Name,
					Name:        a.Name,
					Value:       networth.FormatAmount(a.Value(), cur),
					YTD:         short(networth.AccountYTD(b.History, today, a)),
				})
			}
		}
		s.Institutions = append(s.Institutions, line)
	}
	return s
}

// RenderSummary renders the summary to markdown.
func RenderSummary(s *Summary) string { return renderTemplate("summary.md", s) }
