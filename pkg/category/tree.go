package category

import (
	"fmt"
	"slices"

	"storeflow/pkg/product"
)

// Source exposes the collections the tree reads on every query.
type Source interface {
	Categories() []Category
	Products() []product.Product
}

// Node is one level of a rendered hierarchy.
type Node struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	ProductCount int             `json:"product_count"`
	Children     map[string]Node `json:"children"`
}

// Tree answers structural queries over the category collection.
//
// Subtree results are cached per root id. The cache is never invalidated
// automatically: any write that creates, deletes or reparents a category
// must call Invalidate or InvalidateAll.
type Tree struct {
	src   Source
	cache map[int][]Category
}

// NewTree returns a Tree reading from src.
func NewTree(src Source) *Tree {
	return &Tree{src: src, cache: make(map[int][]Category)}
}

// Subtree returns rootID and all of its descendants in pre-order, children
// visited in collection order. An unknown rootID yields an empty slice. If
// the data contains a cycle below rootID the duplicate-free partial result
// is returned with ErrCycle and nothing is cached.
func (t *Tree) Subtree(rootID int) ([]Category, error) {
	if cached, ok := t.cache[rootID]; ok {
		return slices.Clone(cached), nil
	}
	out, err := subtree(rootID, t.src.Categories())
	if err != nil {
		return out, err
	}
	t.cache[rootID] = out
	return slices.Clone(out), nil
}

// ProductsInSubtree returns, in product collection order, every product
// whose category lies in the subtree of rootID.
func (t *Tree) ProductsInSubtree(rootID int) ([]product.Product, error) {
	cats, err := t.Subtree(rootID)
	ids := make(map[int]struct{}, len(cats))
	for _, c := range cats {
		ids[c.ID] = struct{}{}
	}
	var out []product.Product
	for _, p := range t.src.Products() {
		if p.CategoryID == nil {
			continue
		}
		if _, ok := ids[*p.CategoryID]; ok {
			out = append(out, p)
		}
	}
	return out, err
}

// Hierarchy renders the nested structure below rootID. ProductCount counts
// direct products only.
func (t *Tree) Hierarchy(rootID int) (Node, bool, error) {
	all := t.src.Categories()
	root, ok := Find(all, rootID)
	if !ok {
		return Node{}, false, nil
	}
	b := newBuilder(all, t.src.Products())
	n := b.node(root)
	return n, true, b.err
}

// Forest renders every root category keyed by name.
func (t *Tree) Forest() (map[string]Node, error) {
	all := t.src.Categories()
	b := newBuilder(all, t.src.Products())
	out := make(map[string]Node)
	for _, root := range Children(all, nil) {
		out[root.Name] = b.node(root)
	}
	return out, b.err
}

// Invalidate drops the cached subtree rooted at id.
func (t *Tree) Invalidate(id int) {
	delete(t.cache, id)
}

// InvalidateAll drops every cached subtree.
func (t *Tree) InvalidateAll() {
	clear(t.cache)
}

func childIndex(all []Category) map[int][]Category {
	idx := make(map[int][]Category)
	for _, c := range all {
		if c.ParentID != nil {
			idx[*c.ParentID] = append(idx[*c.ParentID], c)
		}
	}
	return idx
}

func subtree(rootID int, all []Category) ([]Category, error) {
	root, ok := Find(all, rootID)
	if !ok {
		return []Category{}, nil
	}
	children := childIndex(all)
	visited := make(map[int]bool)
	var (
		out []Category
		err error
	)
	var walk func(c Category)
	walk = func(c Category) {
		if visited[c.ID] {
			err = fmt.Errorf("%w: category %d reached twice below %d", ErrCycle, c.ID, rootID)
			return
		}
		visited[c.ID] = true
		out = append(out, c)
		for _, child := range children[c.ID] {
			walk(child)
		}
	}
	walk(root)
	return out, err
}

type builder struct {
	children map[int][]Category
	counts   map[int]int
	visited  map[int]bool
	err      error
}

func newBuilder(all []Category, products []product.Product) *builder {
	counts := make(map[int]int)
	for _, p := range products {
		if p.CategoryID != nil {
			counts[*p.CategoryID]++
		}
	}
	return &builder{
		children: childIndex(all),
		counts:   counts,
		visited:  make(map[int]bool),
	}
}

func (b *builder) node(c Category) Node {
	b.visited[c.ID] = true
	n := Node{
		ID:           c.ID,
		Name:         c.Name,
		ProductCount: b.counts[c.ID],
		Children:     make(map[string]Node),
	}
	for _, child := range b.children[c.ID] {
		if b.visited[child.ID] {
			b.err = fmt.Errorf("%w: category %d reached twice", ErrCycle, child.ID)
			continue
		}
		n.Children[child.Name] = b.node(child)
	}
	return n
}
