package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeflow/pkg/category"
	"storeflow/pkg/order"
	"storeflow/pkg/product"
	"storeflow/pkg/recent"
)

var stamp = time.Date(2026, 10, 16, 14, 5, 9, 250000000, time.UTC)

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range []category.Category{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Child", ParentID: intp(1)},
	} {
		assert.Equal(t, c, categoryFromRecord(categoryToRecord(c)))
	}
}

func TestProductRoundTrip(t *testing.T) {
	for _, p := range []product.Product{
		{Code: "A", Name: "Widget", Description: "blue", Price: decimal.RequireFromString("19.99"), Stock: 4, CategoryID: intp(3), CreatedAt: stamp},
		{Code: "B", Name: "Loose", Price: decimal.Zero},
	} {
		got, err := productFromRecord(productToRecord(p))
		require.NoError(t, err)
		assert.Equal(t, p.Code, got.Code)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Description, got.Description)
		assert.True(t, p.Price.Equal(got.Price), "price %s != %s", p.Price, got.Price)
		assert.Equal(t, p.Stock, got.Stock)
		assert.Equal(t, p.CategoryID, got.CategoryID)
		assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	}
}

func TestOrderRoundTrip(t *testing.T) {
	o := order.Order{
		ID:           9,
		CustomerName: "María García",
		Items:        []order.Item{{Code: "LAP-001", Qty: 1}, {Code: "CAM-001", Qty: 2}},
		Status:       order.StatusCancelled,
		CreatedAt:    stamp,
	}
	got, err := orderFromRecord(orderToRecord(o))
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestRecentViewRoundTrip(t *testing.T) {
	v := recent.View{Identifier: "user_maria", Stack: []string{"LAP-001", "VES-001"}, UpdatedAt: stamp}
	got, err := recentViewFromRecord(recentViewToRecord(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestProductPriceFromString(t *testing.T) {
	p, err := productFromRecord(ProductRecord{Code: "A", Price: "12.50"})
	require.NoError(t, err)
	assert.Equal(t, "12.5", p.Price.String())
}

func TestParseTimeLayouts(t *testing.T) {
	got, err := parseTime("2026-10-16T14:05:09.25Z")
	require.NoError(t, err)
	assert.True(t, stamp.Equal(got))

	got, err = parseTime("2026-10-16T14:05:09")
	require.NoError(t, err)
	assert.Equal(t, time.Local, got.Location())

	got, err = parseTime("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseTime("16/10/2026")
	assert.Error(t, err)
}
