package bot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/starshine-sys/quotebot/store/jsonfile"
	"github.com/starshine-sys/quotebot/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "quotes.json")
	s, closer, err := OpenStorage(ctx, Config{Storage: StorageConfig{Backend: BackendJSON, Path: path}})
	require.NoError(t, err)
	assert.Nil(t, closer)
	require.IsType(t, &jsonfile.Store{}, s)
	assert.Equal(t, path, s.(*jsonfile.Store).Path())

	s, _, err = OpenStorage(ctx, Config{Storage: StorageConfig{Backend: BackendMemory}})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)

	// test mode always uses memory
	s, _, err = OpenStorage(ctx, Config{
		Bot:     BotConfig{TestMode: true},
		Storage: StorageConfig{Backend: BackendPostgres},
	})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)
}

func TestOpenStorageErrors(t *testing.T) {
	ctx := context.Background()

	_, _, err := OpenStorage(ctx, Config{Storage: StorageConfig{Backend: "sqlite"}})
	assert.Error(t, err)

	_, _, err = OpenStorage(ctx, Config{Storage: StorageConfig{Backend: BackendPostgres}})
	assert.Error(t, err)

	_, _, err = OpenStorage(ctx, Config{Storage: StorageConfig{Backend: BackendRedis}})
	assert.Error(t, err)
}
