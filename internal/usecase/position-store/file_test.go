package positionstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	positionstorev1 "github.com/papersim/paperbroker/internal/domain/position-store/v1"
	"github.com/papersim/paperbroker/pkg/logger"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)

	return NewFileStore(t.TempDir(), log)
}

func TestFileStoreLoadWithoutData(t *testing.T) {
	store := newTestFileStore(t)

	positions, err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, positions)
}

func TestFileStorePositionsRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	snapshot := []positionstorev1.PositionSnapshot{
		{Symbol: "IF2609", Direction: marketv1.DirectionLong, Volume: 10, Price: 102.5},
		{Symbol: "BTC-USD", Direction: marketv1.DirectionNet, Volume: -3, Price: 64_000},
	}

	require.NoError(t, store.Save(context.Background(), snapshot))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store := newTestFileStore(t)

	require.NoError(t, store.Save(context.Background(), []positionstorev1.PositionSnapshot{
		{Symbol: "IF2609", Direction: marketv1.DirectionLong, Volume: 10, Price: 100},
	}))
	require.NoError(t, store.Save(context.Background(), []positionstorev1.PositionSnapshot{}))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStoreLoadSettingsWithoutData(t *testing.T) {
	store := newTestFileStore(t)

	settings, err := store.LoadSettings(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, settings)
}

func TestFileStoreSettingsRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	settings := positionstorev1.Settings{
		TradeSlippage: 2,
		TimerInterval: 5,
		InstantTrade:  true,
	}

	require.NoError(t, store.SaveSettings(context.Background(), settings))

	loaded, err := store.LoadSettings(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, settings, *loaded)
}

func TestFileStoreLoadCorruptData(t *testing.T) {
	dir := t.TempDir()
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel), logger.WithOutputPaths([]string{os.DevNull}))
	require.NoError(t, err)
	store := NewFileStore(dir, log)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper_account_data.json"), []byte("{not json"), 0o644))

	_, err = store.Load(context.Background())
	assert.Error(t, err)
}
