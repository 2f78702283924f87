package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeflow/pkg/product"
)

type fakeSource struct {
	categories []Category
	products   []product.Product
}

func (s *fakeSource) Categories() []Category { return append([]Category(nil), s.categories...) }
func (s *fakeSource) Products() []product.Product { return append([]product.Product(nil), s.products...) }

func ids(cats []Category) []int {
	out := make([]int, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.ID)
	}
	return out
}

func codes(ps []product.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Code)
	}
	return out
}

func newSource() *fakeSource {
	return &fakeSource{
		categories: sampleCategories(),
		products: []product.Product{
			{Code: "LAP-1", CategoryID: intp(4)},
			{Code: "PHN-1", CategoryID: intp(3)},
			{Code: "SOFA", CategoryID: intp(5)},
			{Code: "LOOSE"},
			{Code: "ORPHAN", CategoryID: intp(99)},
			{Code: "ELEC", CategoryID: intp(1)},
		},
	}
}

func TestSubtreePreOrder(t *testing.T) {
	tree := NewTree(newSource())

	got, err := tree.Subtree(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3}, ids(got))
}

func TestSubtreeLeafIsItself(t *testing.T) {
	tree := NewTree(newSource())

	for _, id := range []int{3, 4, 5} {
		got, err := tree.Subtree(id)
		require.NoError(t, err)
		assert.Equal(t, []int{id}, ids(got))
	}
}

func TestSubtreeUnknownRoot(t *testing.T) {
	tree := NewTree(newSource())

	got, err := tree.Subtree(404)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubtreeCacheNeedsInvalidation(t *testing.T) {
	src := newSource()
	tree := NewTree(src)

	_, err := tree.Subtree(1)
	require.NoError(t, err)

	src.categories = append(src.categories, Category{ID: 6, Name: "Tablets", ParentID: intp(1)})
	stale, err := tree.Subtree(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3}, ids(stale))

	tree.Invalidate(1)
	fresh, err := tree.Subtree(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3, 6}, ids(fresh))

	src.categories = src.categories[:5]
	tree.InvalidateAll()
	again, err := tree.Subtree(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3}, ids(again))
}

func TestSubtreeReturnsCopies(t *testing.T) {
	tree := NewTree(newSource())

	first, err := tree.Subtree(1)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := tree.Subtree(1)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", second[0].Name)
}

func TestSubtreeDetectsCycle(t *testing.T) {
	src := &fakeSource{categories: []Category{
		{ID: 1, Name: "A", ParentID: intp(3)},
		{ID: 2, Name: "B", ParentID: intp(1)},
		{ID: 3, Name: "C", ParentID: intp(2)},
	}}
	tree := NewTree(src)

	got, err := tree.Subtree(1)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Equal(t, []int{1, 2, 3}, ids(got))
}

func TestProductsInSubtree(t *testing.T) {
	tree := NewTree(newSource())

	got, err := tree.ProductsInSubtree(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"LAP-1", "PHN-1", "ELEC"}, codes(got))

	got, err = tree.ProductsInSubtree(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"LAP-1"}, codes(got))

	got, err = tree.ProductsInSubtree(404)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHierarchy(t *testing.T) {
	tree := NewTree(newSource())

	n, ok, err := tree.Hierarchy(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Electronics", n.Name)
	assert.Equal(t, 1, n.ProductCount)
	require.Contains(t, n.Children, "Computers")
	assert.Equal(t, 0, n.Children["Computers"].ProductCount)
	assert.Equal(t, 1, n.Children["Computers"].Children["Laptops"].ProductCount)
	assert.Empty(t, n.Children["Phones"].Children)

	_, ok, err = tree.Hierarchy(404)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestForest(t *testing.T) {
	tree := NewTree(newSource())

	forest, err := tree.Forest()
	require.NoError(t, err)
	require.Len(t, forest, 2)
	assert.Equal(t, 5, forest["Home"].ID)
	assert.Equal(t, 1, forest["Home"].ProductCount)
	assert.Len(t, forest["Electronics"].Children, 2)
}
