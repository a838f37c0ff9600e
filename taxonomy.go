package networth

import (
	"maps"
	"slices"
	"strings"
)

// DefaultExcluded lists the categories that are excluded from totals unless
// the user says otherwise.
var DefaultExcluded = []string{Uncategorized, "Credit Card"}

// Inclusion maps a category key to whether it counts in aggregate totals.
type Inclusion map[string]bool

// Taxonomy is the category hierarchy and its inclusion settings.
type Taxonomy struct {
	Hierarchy Hierarchy
	Inclusion Inclusion

	// excluded are the category keys whose missing inclusion defaults to false.
	excluded []string
}

// NewTaxonomy returns an empty taxonomy. 'excluded' replaces DefaultExcluded
// when not nil.
func NewTaxonomy(excluded []string) *Taxonomy {
	if excluded == nil {
		excluded = DefaultExcluded
	}
	return &Taxonomy{
		Hierarchy: make(Hierarchy),
		Inclusion: make(Inclusion),
		excluded:  slices.Clone(excluded),
	}
}

// Clone returns a deep copy of t.
func (t *Taxonomy) Clone() *Taxonomy {
	return &Taxonomy{
		Hierarchy: t.Hierarchy.Clone(),
		Inclusion: maps.Clone(t.Inclusion),
		excluded:  t.excluded,
	}
}

// Excluded returns the category keys excluded by default.
func (t *Taxonomy) Excluded() []string { return slices.Clone(t.excluded) }

// defaultInclusion is the inclusion of a key without an explicit setting.
func (t *Taxonomy) defaultInclusion(key string) bool {
	return !slices.Contains(t.excluded, key)
}

// Included returns the inclusion setting of the exact key 'key'.
func (t *Taxonomy) Included(key string) bool {
	if v, ok := t.Inclusion[key]; ok {
		return v
	}
	return t.defaultInclusion(key)
}

// IsIncluded reports whether transactions of 'category' count in totals:
// neither the category nor its parent may be excluded.
func (t *Taxonomy) IsIncluded(category string) bool {
	c := ParseCategory(category)
	return t.Included(c.String()) && t.Included(c.ParentName())
}

// CreateCategory adds the category 'name' and its parent, and makes sure
// both have an inclusion setting. Settings created here are true.
//
// It returns false if nothing changed.
func (t *Taxonomy) CreateCategory(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	c := ParseCategory(name)
	changed := t.Hierarchy.add(c)
	if _, ok := t.Inclusion[c.ParentName()]; !ok {
		t.Inclusion[c.ParentName()] = true
		changed = true
	}
	if !c.IsParent() {
		if _, ok := t.Inclusion[c.String()]; !ok {
			t.Inclusion[c.String()] = true
			changed = true
		}
	}
	return changed
}

// Has returns true if the category key exists in the hierarchy.
func (t *Taxonomy) Has(key string) bool { return t.Hierarchy.Has(ParseCategory(key)) }

// SetInclusion overwrites the inclusion setting of the exact key.
func (t *Taxonomy) SetInclusion(key string, include bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	t.Inclusion[key] = include
}

// Migrate fills the taxonomy loaded from storage.
//
// An empty hierarchy is rebuilt from the transactions' categories. When any
// category lacks an inclusion setting, missing settings get their default
// and the default excluded categories without a setting get false. Existing
// settings are never changed.
// It returns true if anything changed.
func (t *Taxonomy) Migrate(txs []Transaction) bool {
	changed := false
	if len(t.Hierarchy) == 0 && len(txs) > 0 {
		categories := make([]string, 0, len(txs))
		for _, tx := range txs {
			categories = append(categories, tx.Category)
		}
		t.Hierarchy = BuildHierarchy(categories)
		changed = true
	}
	missing := false
	for _, key := range t.Hierarchy.Keys() {
		if _, ok := t.Inclusion[key]; !ok {
			t.Inclusion[key] = t.defaultInclusion(key)
			missing = true
		}
	}
	if missing {
		for _, key := range t.excluded {
			if _, ok := t.Inclusion[key]; !ok {
				t.Inclusion[key] = false
			}
		}
		changed = true
	}
	return changed
}
