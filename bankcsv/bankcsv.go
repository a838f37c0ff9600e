// Package bankcsv maps the CSV exports of banks to raw transaction rows.
package bankcsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/etnz/networth"
	"github.com/shopspring/decimal"
)

// Columns are the header names of the transaction fields in a bank export.
// Empty names are fields the bank does not provide.
type Columns struct {
	TransactionDate string
	PostDate        string
	Description     string
	Category        string
	Type            string
	Amount          string
	Memo            string
}

// Format describes the CSV export of a bank.
type Format struct {
	ID   string
	Name string
	// DataStart is the beginning of the header line, for exports that have
	// a preamble before the data.
	DataStart string
	Columns   Columns
	// process fixes a mapped row in place. It returns false to drop the row.
	process func(*networth.RawRow) bool
}

// Formats lists the supported formats, the default one first.
var Formats = []Format{
	{
		ID:   "chase_bank",
		Name: "Chase Bank (Default)",
		Columns: Columns{
			TransactionDate: "Transaction Date",
			PostDate:        "Post Date",
			Description:     "Description",
			Category:        "Category",
			Type:            "Type",
			Amount:          "Amount",
			Memo:            "Memo",
		},
	},
	{
		ID:   "amex",
		Name: "American Express",
		Columns: Columns{
			TransactionDate: "Date",
			Description:     "Description",
			Amount:          "Amount",
		},
		process: amex,
	},
	{
		ID:        "bank_of_america",
		Name:      "Bank of America",
		DataStart: "Date,Description,Amount,Running Bal.",
		Columns: Columns{
			TransactionDate: "Date",
			Description:     "Description",
			Amount:          "Amount",
		},
		process: bankOfAmerica,
	},
}

// Lookup returns the format 'id'.
func Lookup(id string) (Format, bool) {
	for _, f := range Formats {
		if f.ID == id {
			return f, true
		}
	}
	return Format{}, false
}

// IDs returns the ids of all formats.
func IDs() []string {
	ids := make([]string, len(Formats))
	for i, f := range Formats {
		ids[i] = f.ID
	}
	return ids
}

// amex exports expenses as positive amounts.
func amex(row *networth.RawRow) bool {
	if amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount)); err == nil {
		row.Amount = amount.Neg().String()
		if amount.IsPositive() {
			row.Type = networth.TypeDebit
		} else {
			row.Type = networth.TypeCredit
		}
	}
	row.PostDate = row.TransactionDate
	row.Category = networth.Uncategorized
	return true
}

// bankOfAmerica uses thousand separators, and has balance rows without amount.
func bankOfAmerica(row *networth.RawRow) bool {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(row.Amount), ",", ""))
	if err != nil {
		return false
	}
	row.Amount = amount.String()
	if amount.IsNegative() {
		row.Type = networth.TypeDebit
	} else {
		row.Type = networth.TypeCredit
	}
	row.PostDate = row.TransactionDate
	row.Category = networth.Uncategorized
	return true
}

// Parse reads the export 'r' in format 'f'.
//
// The header must contain the date, description and amount columns of the
// format; other columns are optional. Rows are not validated here, see
// networth.ParseRows.
func Parse(r io.Reader, f Format) ([]networth.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s file: %w", f.Name, err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if f.DataStart != "" {
		data, err = skipPreamble(data, f.DataStart)
		if err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("the file must have a header and at least one data row")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	idx, err := f.indices(header)
	if err != nil {
		return nil, err
	}

	var rows []networth.RawRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("skipping unreadable line", "format", f.ID, "line", line, "err", err)
			continue
		}
		if isBlank(rec) {
			continue
		}
		row := idx.row(rec)
		if f.process != nil && !f.process(&row) {
			slog.Debug("dropping line", "format", f.ID, "line", line)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("the file must have a header and at least one data row")
	}
	return rows, nil
}

// skipPreamble returns data from the line starting with 'start'.
func skipPreamble(data []byte, start string) ([]byte, error) {
	for offset := 0; offset < len(data); {
		line := data[offset:]
		end := bytes.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if strings.HasPrefix(strings.TrimSpace(string(line)), start) {
			return data[offset:], nil
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return nil, fmt.Errorf("could not find the data start %q in the file, check if the correct format is selected", start)
}

// indices are the positions of the fields in a record, -1 when missing.
type indices struct {
	transactionDate, postDate, description, category, typ, amount, memo int
}

func (f Format) indices(header []string) (indices, error) {
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	find := func(name string) int {
		if name == "" {
			return -1
		}
		name = strings.ToLower(name)
		for i, h := range header {
			if h == name {
				return i
			}
		}
		return -1
	}
	c := f.Columns
	idx := indices{
		transactionDate: find(c.TransactionDate),
		postDate:        find(c.PostDate),
		description:     find(c.Description),
		category:        find(c.Category),
		typ:             find(c.Type),
		amount:          find(c.Amount),
		memo:            find(c.Memo),
	}
	var missing []string
	for _, req := range []struct {
		name string
		i    int
	}{
		{c.TransactionDate, idx.transactionDate},
		{c.Description, idx.description},
		{c.Amount, idx.amount},
	} {
		if req.name != "" && req.i < 0 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing required CSV headers for format %q: %s", f.Name, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (idx indices) row(rec []string) networth.RawRow {
	get := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	return networth.RawRow{
		TransactionDate: get(idx.transactionDate),
		PostDate:        get(idx.postDate),
		Description:     get(idx.description),
		Category:        get(idx.category),
		Type:            get(idx.typ),
		Amount:          get(idx.amount),
		Memo:            get(idx.memo),
	}
}

func isBlank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
