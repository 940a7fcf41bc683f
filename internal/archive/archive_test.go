package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/shanehull/birthdaybot/internal/types"
)

func TestSaveAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir(), "America/Bogota", zaptest.NewLogger(t))
	require.NoError(t, err)

	p := types.RunPayload{
		Metadata: types.Metadata{RecordCount: 1, ProcessingYear: 2024, Source: "HermessApp"},
		Records:  []types.BirthdayRecord{{Name: "Juan Perez", Birthday: "2024-05-12"}},
	}

	// 02:00 UTC is still the previous day in Bogotá.
	at := time.Date(2024, time.May, 13, 2, 0, 0, 0, time.UTC)
	path, err := store.Save(p, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "birthdays_2024-05-12.json"), path)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load("2024-05-12")
	require.NoError(t, err)
	assert.Equal(t, p, *loaded)
}

func TestSaveReplacesSameDay(t *testing.T) {
	store, err := NewStore(t.TempDir(), "UTC", nil)
	require.NoError(t, err)

	at := time.Date(2024, time.May, 12, 8, 0, 0, 0, time.UTC)
	_, err = store.Save(types.RunPayload{Metadata: types.Metadata{RecordCount: 1}}, at)
	require.NoError(t, err)
	_, err = store.Save(types.RunPayload{Metadata: types.Metadata{RecordCount: 2}}, at.Add(time.Hour))
	require.NoError(t, err)

	loaded, err := store.Load("2024-05-12")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Metadata.RecordCount)
}

func TestLoadErrors(t *testing.T) {
	store, err := NewStore(t.TempDir(), "", nil)
	require.NoError(t, err)

	_, err = store.Load("2024-01-01")
	assert.ErrorIs(t, err, ErrNotArchived)

	_, err = store.Load("01/01/2024")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotArchived)
}

func TestNewStoreInvalidZone(t *testing.T) {
	_, err := NewStore(t.TempDir(), "Mars/Olympus", nil)
	assert.Error(t, err)
}
