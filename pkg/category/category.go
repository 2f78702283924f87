// Package category models the product category forest and answers subtree
// and hierarchy queries over it.
package category

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// PathSeparator joins category names in a rendered path.
const PathSeparator = " -> "

// ErrCycle reports a parent_id chain that loops back on itself.
var ErrCycle = errors.New("category parent cycle")

// Category is a node in the category forest. Roots have a nil ParentID.
type Category struct {
	ID       int
	Name     string
	ParentID *int
}

// IsRoot reports whether c has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// ChildOf reports whether c's parent is id.
func (c Category) ChildOf(id int) bool {
	return c.ParentID != nil && *c.ParentID == id
}

// Find returns the category with the given id from all.
func Find(all []Category, id int) (Category, bool) {
	for _, c := range all {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Children returns the direct children of parentID in collection order.
// A nil parentID selects the roots.
func Children(all []Category, parentID *int) []Category {
	var out []Category
	for _, c := range all {
		if parentID == nil && c.IsRoot() || parentID != nil && c.ChildOf(*parentID) {
			out = append(out, c)
		}
	}
	return out
}

// FullPath renders the names from the root down to c, joined by
// PathSeparator. A parent id missing from all ends the walk, so orphans
// render as roots. On a cycle the path collected so far is returned along
// with ErrCycle.
func FullPath(c Category, all []Category) (string, error) {
	byID := make(map[int]Category, len(all))
	for _, x := range all {
		if _, ok := byID[x.ID]; !ok {
			byID[x.ID] = x
		}
	}

	names := []string{c.Name}
	seen := map[int]bool{c.ID: true}
	var err error
	for cur := c; cur.ParentID != nil; {
		pid := *cur.ParentID
		if seen[pid] {
			err = fmt.Errorf("%w: category %d revisited from %d", ErrCycle, pid, cur.ID)
			break
		}
		parent, ok := byID[pid]
		if !ok {
			break
		}
		seen[pid] = true
		names = append(names, parent.Name)
		cur = parent
	}
	slices.Reverse(names)
	return strings.Join(names, PathSeparator), err
}
