package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func sampleCategories() []Category {
	return []Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Computers", ParentID: intp(1)},
		{ID: 3, Name: "Phones", ParentID: intp(1)},
		{ID: 4, Name: "Laptops", ParentID: intp(2)},
		{ID: 5, Name: "Home"},
	}
}

func TestFullPath(t *testing.T) {
	all := sampleCategories()
	tests := []struct {
		name string
		cat  Category
		want string
	}{
		{"root", all[0], "Electronics"},
		{"child", all[1], "Electronics -> Computers"},
		{"grandchild", all[3], "Electronics -> Computers -> Laptops"},
		{"orphan renders as root", Category{ID: 9, Name: "Lost", ParentID: intp(42)}, "Lost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FullPath(tt.cat, all)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFullPathTerminatesOnCycle(t *testing.T) {
	all := []Category{
		{ID: 1, Name: "A", ParentID: intp(2)},
		{ID: 2, Name: "B", ParentID: intp(1)},
	}
	got, err := FullPath(all[0], all)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Equal(t, "B -> A", got)
}

func TestChildren(t *testing.T) {
	all := sampleCategories()

	roots := Children(all, nil)
	require.Len(t, roots, 2)
	assert.Equal(t, "Electronics", roots[0].Name)
	assert.Equal(t, "Home", roots[1].Name)

	kids := Children(all, intp(1))
	require.Len(t, kids, 2)
	assert.Equal(t, []int{2, 3}, []int{kids[0].ID, kids[1].ID})

	assert.Empty(t, Children(all, intp(5)))
}
