package networth

import (
	"slices"
	"sort"
	"strings"
)

// Uncategorized is the category of transactions that have none.
const Uncategorized = "Uncategorized"

// Separator separates a parent name from its child name in a category key.
const Separator = ":"

// Category is either a parent category or a child of a parent category.
//
// A Category is only built through Parent, Child or ParseCategory and
// formatted through String, so that names never leak the separator.
type Category struct {
	parent string
	child  string // empty for a parent category
}

// Parent returns the parent category 'name'.
func Parent(name string) Category { return Category{parent: strings.TrimSpace(name)} }

// Child returns the category 'name' under 'parent'.
func Child(parent, name string) Category {
	return Category{parent: strings.TrimSpace(parent), child: strings.TrimSpace(name)}
}

// ParseCategory parses a "Parent" or "Parent:Child" string.
//
// It splits on the first separator, so that "A:B:C" is the child "B:C" of
// "A". Blank input is Uncategorized. It never fails.
func ParseCategory(raw string) Category {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Parent(Uncategorized)
	}
	parent, child, _ := strings.Cut(raw, Separator)
	c := Child(parent, child)
	if c.parent == "" {
		c.parent = Uncategorized
	}
	return c
}

// IsParent returns true if c is a parent category.
func (c Category) IsParent() bool { return c.child == "" }

// ParentName returns the name of the parent part of c.
func (c Category) ParentName() string { return c.parent }

// ChildName returns the name of the child part, or "" for a parent.
func (c Category) ChildName() string { return c.child }

// Root returns the parent category of c (c itself for a parent).
func (c Category) Root() Category { return Category{parent: c.parent} }

// String returns the category key "Parent" or "Parent:Child".
func (c Category) String() string {
	if c.child == "" {
		return c.parent
	}
	return c.parent + Separator + c.child
}

// Covers reports whether the category key 'key' is 'selected' itself or
// one of its children.
func Covers(selected, key string) bool {
	return key == selected || strings.HasPrefix(key, selected+Separator)
}

// Hierarchy maps each parent name to its sorted, unique child names.
type Hierarchy map[string][]string

// BuildHierarchy folds category keys into a Hierarchy.
func BuildHierarchy(categories []string) Hierarchy {
	h := make(Hierarchy)
	for _, raw := range categories {
		h.add(ParseCategory(raw))
	}
	return h
}

// add inserts c, returns true if the hierarchy changed.
func (h Hierarchy) add(c Category) bool {
	changed := false
	children, ok := h[c.parent]
	if !ok {
		children = []string{}
		changed = true
	}
	if c.child != "" && !slices.Contains(children, c.child) {
		children = append(children, c.child)
		sort.Strings(children)
		changed = true
	}
	h[c.parent] = children
	return changed
}

// Has returns true if the category exists in h.
func (h Hierarchy) Has(c Category) bool {
	children, ok := h[c.parent]
	if !ok {
		return false
	}
	return c.child == "" || slices.Contains(children, c.child)
}

// Parents returns the parent names in alphabetical order.
func (h Hierarchy) Parents() []string {
	parents := make([]string, 0, len(h))
	for p := range h {
		parents = append(parents, p)
	}
	sort.Strings(parents)
	return parents
}

// Keys returns every category key, each parent followed by its children.
func (h Hierarchy) Keys() []string {
	var keys []string
	for _, p := range h.Parents() {
		keys = append(keys, p)
		for _, c := range h[p] {
			keys = append(keys, Child(p, c).String())
		}
	}
	return keys
}

// Clone returns a deep copy of h.
func (h Hierarchy) Clone() Hierarchy {
	c := make(Hierarchy, len(h))
	for p, children := range h {
		c[p] = slices.Clone(children)
		if c[p] == nil {
			c[p] = []string{}
		}
	}
	return c
}
