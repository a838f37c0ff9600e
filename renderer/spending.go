package renderer

import "github.com/etnz/networth"

// SpendingTable is the spending matrix formatted for display.
type SpendingTable struct {
	Title string
	Rows  [][]string
	Total []string
}

// NewSpendingTable formats the spending type matrix of txs.
func NewSpendingTable(title string, txs []networth.Transaction, cur string) *SpendingTable {
	m := networth.NewSpendingMatrix(txs)
	row := func(r networth.SpendingRow) []string {
		return []string{
			r.Category,
			networth.FormatAmount(r.NonDiscretionary, cur),
			networth.FormatAmount(r.Discretionary, cur),
			networth.FormatAmount(r.OneTime, cur),
			networth.FormatAmount(r.Unclassified, cur),
			networth.FormatAmount(r.Total, cur),
		}
	}
	t := &SpendingTable{Title: title, Total: row(m.Totals)}
	for _, r := range m.Rows {
		t.Rows = append(t.Rows, row(r))
	}
	return t
}

// RenderSpending renders the table to markdown.
func RenderSpending(t *SpendingTable) string { return renderTemplate("spending.md", t) }
