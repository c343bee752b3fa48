package toml

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maasutil/maascli/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	config := viper.New()
	config.Set("profiles.path", profilesPath)

	store, err := NewStore(config)
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	first := domain.Profile{
		Name:        "dev",
		URL:         "http://dev.example.com/api/",
		Credentials: &domain.APIKey{ConsumerKey: "a", TokenKey: "b", TokenSecret: "c"},
		Description: json.RawMessage(`{"resources":["nodes","tags"]}`),
	}
	second := domain.Profile{
		Name: "staging",
		URL:  "http://staging.example.com/api/",
	}

	require.NoError(t, store.Save(context.Background(), first))
	require.NoError(t, store.Save(context.Background(), second))

	got, err := store.Get(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	anonymous, err := store.Get(context.Background(), "staging")
	require.NoError(t, err)
	assert.True(t, anonymous.Anonymous())

	profiles, err := store.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Profile{first, second}, profiles)
}

func TestStoreSaveOverwritesByName(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), domain.Profile{Name: "dev", URL: "http://old/"}))
	require.NoError(t, store.Save(context.Background(), domain.Profile{Name: "dev", URL: "http://new/"}))

	profiles, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "http://new/", profiles[0].URL)
}

func TestStoreGetUnknownName(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), domain.Profile{Name: "dev"}))

	require.NoError(t, store.Delete(context.Background(), "dev"))

	profiles, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestStoreDeleteUnknownName(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	assert.ErrorIs(t, store.Delete(context.Background(), "missing"), domain.ErrProfileNotFound)
}

func TestStoreListOnMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	profiles, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestStoreWritesOwnerOnlyFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), domain.Profile{Name: "dev"}))

	info, err := os.Stat(store.profilesPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	require.NoError(t, os.WriteFile(profilesPath, []byte("version = 99\n"), 0o600))

	config := viper.New()
	config.Set("profiles.path", profilesPath)
	store, err := NewStore(config)
	require.NoError(t, err)

	_, err = store.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported profiles schema version")
}

func TestStoreConcurrentSavesDoNotCorruptFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profile := domain.Profile{
				Name: "profile-" + strconv.Itoa(i),
				URL:  "http://example.com/api/",
			}
			assert.NoError(t, store.Save(context.Background(), profile))
		}(i)
	}
	wg.Wait()

	profiles, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 8)
}

func TestStoreCancelledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Save(ctx, domain.Profile{Name: "dev"}))
	_, err := store.List(ctx)
	assert.Error(t, err)
}
