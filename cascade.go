package networth

import (
	"maps"
	"slices"
	"strings"
)

// Changeset is the result of planning a command against a Book: the full
// replacement of every collection the command touches. Nil fields are left
// unchanged by Apply.
type Changeset struct {
	Taxonomy     *Taxonomy
	Transactions []Transaction
	Budgets      []Budget

	TransactionsChanged int // number of transactions whose category changed
	ItemsChanged        int // number of budget items renamed or removed
}

// IsEmpty returns true if applying cs would not change anything.
func (cs Changeset) IsEmpty() bool {
	return cs.Taxonomy == nil && cs.Transactions == nil && cs.Budgets == nil
}

// Command computes a Changeset from the current state of a book.
type Command interface {
	Plan(b *Book) (Changeset, error)
}

// RenameCategory renames a parent category, or a child within its parent.
//
// Transactions and budget items of the category, or of its children, follow
// the rename. The inclusion setting is carried over.
// Renaming a parent onto another existing parent and moving a child to
// another parent are rejected.
type RenameCategory struct{ Old, New string }

func (cmd RenameCategory) Plan(b *Book) (Changeset, error) {
	oldName, newName := strings.TrimSpace(cmd.Old), strings.TrimSpace(cmd.New)
	if oldName == "" || newName == "" || oldName == newName {
		return Changeset{}, nil
	}
	oc, nc := ParseCategory(oldName), ParseCategory(newName)
	oldName, newName = oc.String(), nc.String()
	if oldName == newName {
		return Changeset{}, nil
	}

	tax := b.Taxonomy.Clone()
	h := tax.Hierarchy
	switch {
	case oc.IsParent() && nc.IsParent():
		if _, exists := h[newName]; exists {
			return Changeset{}, invalid("name", "category %q already exists, merging categories is not supported", newName)
		}
		children, ok := h[oldName]
		if !ok {
			return Changeset{}, invalid("name", "unknown category %q", oldName)
		}
		h[newName] = children
		delete(h, oldName)
	case !oc.IsParent() && !nc.IsParent():
		if oc.ParentName() != nc.ParentName() {
			return Changeset{}, invalid("name", "cannot move %q to another parent, delete it and create %q instead", oldName, newName)
		}
		children := h[oc.ParentName()]
		i := slices.Index(children, oc.ChildName())
		if i < 0 {
			return Changeset{}, invalid("name", "unknown category %q", oldName)
		}
		children = slices.Delete(slices.Clone(children), i, i+1)
		if !slices.Contains(children, nc.ChildName()) {
			children = append(children, nc.ChildName())
		}
		slices.Sort(children)
		h[oc.ParentName()] = children
	default:
		return Changeset{}, invalid("name", "cannot rename %q to %q: a category cannot change level", oldName, newName)
	}

	rename := func(key string) (string, bool) {
		if key == oldName {
			return newName, true
		}
		if rest, ok := strings.CutPrefix(key, oldName+Separator); ok {
			return newName + Separator + rest, true
		}
		return key, false
	}

	cs := Changeset{Taxonomy: tax}
	cs.Transactions = slices.Clone(b.Transactions)
	for i := range cs.Transactions {
		if key, ok := rename(cs.Transactions[i].Category); ok {
			cs.Transactions[i].Category = key
			cs.TransactionsChanged++
		}
	}
	cs.Budgets = mapBudgets(b.Budgets, func(items []BudgetItem) []BudgetItem {
		for i := range items {
			if key, ok := rename(items[i].Category); ok {
				items[i].Category = key
				cs.ItemsChanged++
			}
		}
		return items
	})

	setting := true
	if v, ok := tax.Inclusion[oldName]; ok {
		setting = v
	}
	delete(tax.Inclusion, oldName)
	tax.Inclusion[newName] = setting
	if oc.IsParent() {
		moved := make(Inclusion)
		for key, v := range tax.Inclusion {
			if rest, ok := strings.CutPrefix(key, oldName+Separator); ok {
				delete(tax.Inclusion, key)
				moved[newName+Separator+rest] = v
			}
		}
		maps.Copy(tax.Inclusion, moved)
	}
	return cs, nil
}

// DeleteCategory deletes a category.
//
// Deleting a parent deletes its children, moves their transactions to
// Uncategorized and removes their budget items. Deleting a child moves its
// transactions to the parent and removes its budget items.
type DeleteCategory struct{ Name string }

func (cmd DeleteCategory) Plan(b *Book) (Changeset, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return Changeset{}, nil
	}
	c := ParseCategory(cmd.Name)
	name := c.String()

	tax := b.Taxonomy.Clone()
	cs := Changeset{Taxonomy: tax}

	// matches reports whether a key is deleted, reassign gives the new category.
	var matches func(key string) bool
	reassign := Uncategorized
	if c.IsParent() {
		delete(tax.Hierarchy, name)
		matches = func(key string) bool { return Covers(name, key) }
	} else {
		if children, ok := tax.Hierarchy[c.ParentName()]; ok {
			tax.Hierarchy[c.ParentName()] = slices.DeleteFunc(children, func(s string) bool { return s == c.ChildName() })
		}
		matches = func(key string) bool { return key == name }
		reassign = c.ParentName()
	}

	cs.Transactions = slices.Clone(b.Transactions)
	for i := range cs.Transactions {
		if matches(cs.Transactions[i].Category) {
			cs.Transactions[i].Category = reassign
			cs.TransactionsChanged++
		}
	}
	if c.IsParent() && cs.TransactionsChanged > 0 {
		tax.Hierarchy.add(Parent(Uncategorized))
		if _, ok := tax.Inclusion[Uncategorized]; !ok {
			tax.Inclusion[Uncategorized] = tax.defaultInclusion(Uncategorized)
		}
	}
	cs.Budgets = mapBudgets(b.Budgets, func(items []BudgetItem) []BudgetItem {
		n := len(items)
		items = slices.DeleteFunc(items, func(it BudgetItem) bool { return matches(it.Category) })
		cs.ItemsChanged += n - len(items)
		return items
	})

	delete(tax.Inclusion, name)
	if c.IsParent() {
		for key := range tax.Inclusion {
			if strings.HasPrefix(key, name+Separator) {
				delete(tax.Inclusion, key)
			}
		}
	}
	return cs, nil
}

// mapBudgets returns a copy of budgets with items transformed by f. f
// receives a copy of the items.
func mapBudgets(budgets []Budget, f func([]BudgetItem) []BudgetItem) []Budget {
	res := slices.Clone(budgets)
	if res == nil {
		res = []Budget{}
	}
	for i := range res {
		res[i].Items = f(slices.Clone(res[i].Items))
	}
	return res
}

// AddCategory creates a category, and its parent if needed.
type AddCategory struct{ Name string }

func (cmd AddCategory) Plan(b *Book) (Changeset, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return Changeset{}, invalid("name", "category name cannot be empty")
	}
	tax := b.Taxonomy.Clone()
	if !tax.CreateCategory(name) {
		return Changeset{}, nil
	}
	return Changeset{Taxonomy: tax}, nil
}

// IncludeCategory sets whether a category counts in totals.
type IncludeCategory struct {
	Name    string
	Include bool
}

func (cmd IncludeCategory) Plan(b *Book) (Changeset, error) {
	key := ParseCategory(cmd.Name).String()
	if strings.TrimSpace(cmd.Name) == "" || !b.Taxonomy.Has(key) {
		return Changeset{}, invalid("name", "unknown category %q", cmd.Name)
	}
	tax := b.Taxonomy.Clone()
	tax.SetInclusion(key, cmd.Include)
	return Changeset{Taxonomy: tax}, nil
}
