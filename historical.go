package networth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/etnz/networth/date"
)

// ErrNoHistoricalData is returned when a historical file has no usable row.
var ErrNoHistoricalData = errors.New("no valid historical data points found")

// historical columns, by accepted header names in order of preference.
var (
	dateColumn        = []string{"date"}
	institutionColumn = []string{"institution name", "institution"}
	accountColumn     = []string{"account name", "account"}
	valueColumn       = []string{"value"}
)

// ParseHistorical reads account values from a CSV file with the columns
// date, institution, account and value, in any order.
//
// Accounts are matched on the exact institution and account names. Rows
// with an unknown account, an invalid date or an invalid value are skipped
// and reported as warnings.
func ParseHistorical(r io.Reader, institutions []Institution, accounts []Account) ([]ImportedPoint, []ParseWarning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("the file must have a header and at least one data row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	dateIdx := columnIndex(header, dateColumn)
	instIdx := columnIndex(header, institutionColumn)
	accIdx := columnIndex(header, accountColumn)
	valueIdx := columnIndex(header, valueColumn)
	if dateIdx < 0 || instIdx < 0 || accIdx < 0 || valueIdx < 0 {
		return nil, nil, fmt.Errorf("invalid header %q: columns for date, institution, account and value are required", strings.Join(header, ","))
	}
	width := max(dateIdx, instIdx, accIdx, valueIdx) + 1

	lookup := accountLookup(institutions, accounts)
	var (
		points   []ImportedPoint
		warnings []ParseWarning
	)
	warn := func(w ParseWarning) {
		slog.Warn("skipping historical row", "row", w.Row, "field", w.Field, "value", w.Value)
		warnings = append(warnings, w)
	}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warn(ParseWarning{Row: row, Field: "row", Err: err})
			continue
		}
		if len(rec) < width {
			warn(ParseWarning{Row: row, Field: "row", Value: strings.Join(rec, ","), Err: errors.New("missing columns")})
			continue
		}
		on, err := date.Parse(rec[dateIdx])
		if err != nil {
			warn(ParseWarning{Row: row, Field: "date", Value: rec[dateIdx], Err: err})
			continue
		}
		value, err := ParseAmount(rec[valueIdx])
		if err != nil {
			warn(ParseWarning{Row: row, Field: "value", Value: rec[valueIdx], Err: err})
			continue
		}
		ref := strings.TrimSpace(rec[instIdx]) + "|" + strings.TrimSpace(rec[accIdx])
		id, ok := lookup[ref]
		if !ok {
			warn(ParseWarning{Row: row, Field: "account", Value: ref, Err: errors.New("account not found")})
			continue
		}
		points = append(points, ImportedPoint{Date: on, AccountID: id, Value: value})
	}
	if len(points) == 0 {
		return nil, warnings, ErrNoHistoricalData
	}
	return points, warnings, nil
}

// columnIndex returns the index of the first name found in header, or -1.
func columnIndex(header []string, names []string) int {
	for _, name := range names {
		if i := slices.Index(header, name); i >= 0 {
			return i
		}
	}
	return -1
}

// accountLookup maps "institution|account" names to account ids.
func accountLookup(institutions []Institution, accounts []Account) map[string]string {
	names := make(map[string]string, len(institutions))
	for _, inst := range institutions {
		names[inst.ID] = inst.Name
	}
	lookup := make(map[string]string, len(accounts))
	for _, a := range accounts {
		if inst, ok := names[a.InstitutionID]; ok {
			lookup[inst+"|"+a.Name] = a.ID
		}
	}
	return lookup
}
