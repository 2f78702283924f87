package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeflow/pkg/inventory"
	"storeflow/pkg/logger"
	"storeflow/pkg/order"
	"storeflow/pkg/store"
	"storeflow/pkg/store/memory"
)

func ephemeralEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_EPHEMERAL", "true")
	t.Setenv("STORE_NAME", "Test Shop")
	t.Setenv("STORE_LOG_FILE", filepath.Join(t.TempDir(), "storeflow.log"))
}

func newTestApp(t *testing.T, script string) (*app, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, memory.New(), logger.Nop())
	require.NoError(t, err)
	svc := inventory.New(st, logger.Nop(), 5)
	_, err = svc.SeedSampleData(ctx)
	require.NoError(t, err)
	svc.Start(ctx)

	var out bytes.Buffer
	return &app{
		name: "Test Shop",
		svc:  svc,
		log:  logger.Nop(),
		con:  newConsole(ctx, strings.NewReader(script), &out, "en"),
	}, &out
}

func TestRunSession(t *testing.T) {
	ephemeralEnv(t)
	script := strings.Join([]string{
		"1", "4", "KEY-1", "Keyboard", "Mechanical", "25.5", "3", "8",
		"5",
		"6",
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(script), &out))

	got := out.String()
	assert.Contains(t, got, "Test Shop - STORE MANAGEMENT SYSTEM")
	assert.Contains(t, got, "Product 'Keyboard' created (No category)")
	assert.Contains(t, got, "PRODUCTS (1):")
	assert.Contains(t, got, "KEY-1: Keyboard")
	assert.Contains(t, got, "Thank you for using Test Shop system")
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	ephemeralEnv(t)

	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader("9\n"), &out))
	assert.Contains(t, out.String(), "Invalid option")
	assert.Contains(t, out.String(), "Program interrupted")
}

func TestOrderMenu(t *testing.T) {
	a, out := newTestApp(t, "3\nAna\nTAB-001\n2\n\n2\n6\n")

	require.NoError(t, a.orders(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Pending orders: 2")
	assert.Contains(t, got, "Order 4 created and queued")
	assert.Contains(t, got, "Order 2 processed: DONE")
	assert.Contains(t, got, "Order 4 processed: DONE")
	assert.Contains(t, got, "3 orders processed")
	assert.Empty(t, a.svc.Orders(order.StatusPending))
}

func TestDeleteCategoryMenu(t *testing.T) {
	a, out := newTestApp(t, "5\n5\nDELETE\n6\n")

	require.NoError(t, a.categories(context.Background()))

	got := out.String()
	assert.Contains(t, got, "CATEGORY TO DELETE: Clothing")
	assert.Contains(t, got, "Men -> ROOT")
	assert.Contains(t, got, "Category 'Clothing' deleted successfully")
	assert.Contains(t, got, "2 subcategories moved up one level")
	assert.Len(t, a.svc.Categories(), 9)
}

func TestDeleteCategoryCancelled(t *testing.T) {
	a, out := newTestApp(t, "5\n2\nno\n6\n")

	require.NoError(t, a.categories(context.Background()))

	assert.Contains(t, out.String(), "Deletion cancelled")
	assert.Len(t, a.svc.Categories(), 10)
}

func TestHistoryMenu(t *testing.T) {
	a, out := newTestApp(t, "1\nuser_ana\nSOF-001\n2\nuser_juan\n3\nuser_juan\n2\nghost\n4\n")

	require.NoError(t, a.history(context.Background()))

	got := out.String()
	assert.Contains(t, got, "user_juan: iPhone 15 (PHN-001), Android Tablet (TAB-002), Gaming Laptop (LAP-001)")
	assert.Contains(t, got, "'3-Seat Sofa' added to user history")
	assert.Contains(t, got, "Current history: [SOF-001]")
	assert.Contains(t, got, "History cleared for user user_juan")
	assert.Contains(t, got, "No history for user ghost")
}

func TestValidationErrorsDoNotEndSession(t *testing.T) {
	a, out := newTestApp(t, "4\nLAP-001\nCopy\n\n10\n1\n8\n")

	require.NoError(t, a.products(context.Background()))
	assert.Contains(t, out.String(), "Product with code 'LAP-001' already exists")

	err := a.check(context.Background(), "test", inventory.ErrEmptyOrder)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Error: order has no items")
}
