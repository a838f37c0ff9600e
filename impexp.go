package networth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/etnz/networth/store"
)

// this file contains functions to handle the bundle import/export format.
// Bundles are indented JSON objects, one per group of collections, so that
// they remain human readable and can be edited by hand.

// Bundle names a group of collections that are exported and imported together.
type Bundle string

const (
	AssetsBundle     Bundle = "assets"
	ExpensesBundle   Bundle = "expenses"
	CategoriesBundle Bundle = "categories"
)

// Bundles lists all bundles.
var Bundles = []Bundle{AssetsBundle, ExpensesBundle, CategoriesBundle}

// ParseBundle parses a bundle name.
func ParseBundle(s string) (Bundle, error) {
	b := Bundle(s)
	if !slices.Contains(Bundles, b) {
		return "", fmt.Errorf("unknown bundle %q, expected one of %v", s, Bundles)
	}
	return b, nil
}

// Collections returns the stored collections of the bundle.
func (b Bundle) Collections() []store.Collection {
	switch b {
	case AssetsBundle:
		return []store.Collection{store.Institutions, store.Accounts, store.HistoricalData}
	case ExpensesBundle:
		return []store.Collection{store.Expenses, store.Budgets, store.Categories, store.CategoryInclusion}
	case CategoriesBundle:
		return []store.Collection{store.Categories, store.CategoryInclusion}
	}
	return nil
}

// the readable version of each bundle.
type (
	jassets struct {
		Institutions   []Institution `json:"institutions"`
		Accounts       []Account     `json:"accounts"`
		HistoricalData *History      `json:"historicalData"`
	}
	jexpenses struct {
		Transactions      []Transaction `json:"transactions"`
		Budgets           []Budget      `json:"budgets"`
		CategoryStructure Hierarchy     `json:"categoryStructure"`
		CategoryInclusion Inclusion     `json:"categoryInclusion"`
	}
	jcategories struct {
		CategoryStructure Hierarchy `json:"categoryStructure"`
		CategoryInclusion Inclusion `json:"categoryInclusion"`
	}
)

// Export writes the collections of 'bundle' from 'b' to 'w'.
func Export(w io.Writer, b *Book, bundle Bundle) error {
	var v any
	switch bundle {
	case AssetsBundle:
		v = jassets{nonNil(b.Institutions), nonNil(b.Accounts), b.History}
	case ExpensesBundle:
		v = jexpenses{nonNil(b.Transactions), nonNil(b.Budgets), b.Taxonomy.Hierarchy, b.Taxonomy.Inclusion}
	case CategoriesBundle:
		v = jcategories{b.Taxonomy.Hierarchy, b.Taxonomy.Inclusion}
	default:
		return fmt.Errorf("unknown bundle %q", bundle)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("cannot write %s bundle: %w", bundle, err)
	}
	return nil
}

// shape describes the JSON kind required for each key of a bundle.
type shape map[string]byte

var shapes = map[Bundle]shape{
	AssetsBundle:     {"institutions": '[', "accounts": '[', "historicalData": '['},
	ExpensesBundle:   {"transactions": '[', "budgets": '[', "categoryStructure": '{'},
	CategoriesBundle: {"categoryStructure": '{', "categoryInclusion": '{'},
}

// check returns a FormatError if the object does not have the required keys
// with the required kind.
func (s shape) check(bundle Bundle, obj map[string]json.RawMessage) error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			return &FormatError{Bundle: string(bundle), Msg: fmt.Sprintf("missing %q", k)}
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != s[k] {
			kind := "an array"
			if s[k] == '{' {
				kind = "an object"
			}
			return &FormatError{Bundle: string(bundle), Msg: fmt.Sprintf("%q must be %s", k, kind)}
		}
	}
	return nil
}

// Import reads a bundle from 'r' and replaces the corresponding collections
// of 'b'. Nothing is replaced if the bundle is not valid.
func Import(r io.Reader, b *Book, bundle Bundle) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cannot read %s bundle: %w", bundle, err)
	}
	s, ok := shapes[bundle]
	if !ok {
		return fmt.Errorf("unknown bundle %q", bundle)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return &FormatError{Bundle: string(bundle), Msg: "expected a JSON object", Err: err}
	}
	if err := s.check(bundle, obj); err != nil {
		return err
	}

	switch bundle {
	case AssetsBundle:
		var v jassets
		if err := json.Unmarshal(data, &v); err != nil {
			return &FormatError{Bundle: string(bundle), Msg: "cannot decode", Err: err}
		}
		b.Institutions, b.Accounts, b.History = v.Institutions, v.Accounts, v.HistoricalData
	case ExpensesBundle:
		var v jexpenses
		if err := json.Unmarshal(data, &v); err != nil {
			return &FormatError{Bundle: string(bundle), Msg: "cannot decode", Err: err}
		}
		tax := NewTaxonomy(b.Taxonomy.Excluded())
		tax.Hierarchy, tax.Inclusion = v.CategoryStructure, v.CategoryInclusion
		b.Transactions, b.Budgets, b.Taxonomy = v.Transactions, v.Budgets, tax
	case CategoriesBundle:
		var v jcategories
		if err := json.Unmarshal(data, &v); err != nil {
			return &FormatError{Bundle: string(bundle), Msg: "cannot decode", Err: err}
		}
		tax := NewTaxonomy(b.Taxonomy.Excluded())
		tax.Hierarchy, tax.Inclusion = v.CategoryStructure, v.CategoryInclusion
		b.Taxonomy = tax
	}
	b.migrate()
	return nil
}

// Delete empties the collections of 'bundle'.
func (b *Book) Delete(bundle Bundle) error {
	switch bundle {
	case AssetsBundle:
		b.DeleteAssets()
	case ExpensesBundle:
		b.DeleteExpenses()
	case CategoriesBundle:
		b.Taxonomy = NewTaxonomy(b.Taxonomy.Excluded())
	default:
		return fmt.Errorf("unknown bundle %q", bundle)
	}
	return nil
}
