package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeflow/pkg/config"
	"storeflow/pkg/logger"
	"storeflow/pkg/store"
	"storeflow/pkg/store/file"
)

func TestSeedWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := config.Config{DataFile: path, RecentViewCapacity: 5}

	require.NoError(t, seed(context.Background(), cfg, logger.Nop()))
	// A second run replaces the document instead of appending to it.
	require.NoError(t, seed(context.Background(), cfg, logger.Nop()))

	st, err := store.Open(context.Background(), file.New(path), logger.Nop())
	require.NoError(t, err)
	assert.Len(t, st.Categories(), 10)
	assert.Len(t, st.Products(), 13)
	assert.Len(t, st.Orders(), 3)
	assert.Len(t, st.RecentViews(), 3)
}
