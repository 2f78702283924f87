package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeflow/pkg/store"
)

func TestLoadMissingFile(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "store_data.json"))

	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNoDocument)
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store_data.json")
	b := New(path)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, []byte(`{"products":[]}`)))
	require.NoError(t, b.Save(ctx, []byte(`{"orders":[]}`)))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"orders":[]}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not linger")
}

func TestSaveIntoMissingDirectoryFails(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "absent", "store_data.json"))

	assert.Error(t, b.Save(context.Background(), []byte(`{}`)))
}
