package application

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maasutil/maascli/internal/domain"
	"github.com/maasutil/maascli/internal/ports"
)

type fakeStore struct {
	profiles map[string]domain.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: map[string]domain.Profile{}}
}

func (s *fakeStore) Get(_ context.Context, name string) (domain.Profile, error) {
	profile, ok := s.profiles[name]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *fakeStore) List(context.Context) ([]domain.Profile, error) {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := make([]domain.Profile, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, s.profiles[name])
	}
	return profiles, nil
}

func (s *fakeStore) Save(_ context.Context, profile domain.Profile) error {
	s.profiles[profile.Name] = profile
	return nil
}

func (s *fakeStore) Delete(_ context.Context, name string) error {
	if _, ok := s.profiles[name]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(s.profiles, name)
	return nil
}

type fakeSession struct {
	description json.RawMessage
}

func (f fakeSession) Description() json.RawMessage { return f.description }
func (f fakeSession) Origin() ports.Origin         { return nil }

type fakeSessionFactory struct {
	description json.RawMessage
	token       *domain.APIKey
	tokenErr    error
	validateErr error

	obtainCalls   int
	validateCalls int
	fromURLCalls  int
	profileCalls  []string
}

func (f *fakeSessionFactory) FromURL(_ context.Context, _ string, _ *domain.APIKey, _ bool) (ports.Session, error) {
	f.fromURLCalls++
	return fakeSession{description: f.description}, nil
}

func (f *fakeSessionFactory) FromProfile(_ context.Context, profile domain.Profile) (ports.Session, error) {
	f.profileCalls = append(f.profileCalls, profile.Name)
	return fakeSession{description: f.description}, nil
}

func (f *fakeSessionFactory) ObtainToken(_ context.Context, _, _, _ string, _ bool) (*domain.APIKey, error) {
	f.obtainCalls++
	return f.token, f.tokenErr
}

func (f *fakeSessionFactory) ValidateKey(_ context.Context, _ string, _ *domain.APIKey, _ bool) error {
	f.validateCalls++
	return f.validateErr
}

func newTestService(store *fakeStore, sessions *fakeSessionFactory) *Service {
	return NewService(store, sessions, &fakePrompter{}, strings.NewReader(""))
}

func TestLoginPersistsAllFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	sessions := &fakeSessionFactory{
		description: json.RawMessage(`{"resources":["nodes"]}`),
		token:       &domain.APIKey{ConsumerKey: "a", TokenKey: "b", TokenSecret: "c"},
	}
	service := newTestService(store, sessions)

	profile, err := service.Login(context.Background(), LoginParams{
		ProfileName: "dev",
		URL:         "http://example.com/api/",
		Username:    "alice",
		Password:    "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.obtainCalls)
	assert.Equal(t, 1, sessions.validateCalls)

	stored, err := store.Get(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, profile, stored)
	assert.Equal(t, "dev", stored.Name)
	assert.Equal(t, "http://example.com/api/", stored.URL)
	assert.Equal(t, "a:b:c", stored.Credentials.String())
	assert.JSONEq(t, `{"resources":["nodes"]}`, string(stored.Description))
}

func TestLoginAnonymousSkipsTokenExchangeAndValidation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	sessions := &fakeSessionFactory{description: json.RawMessage(`{}`)}
	service := newTestService(store, sessions)

	profile, err := service.Login(context.Background(), LoginParams{
		ProfileName: "anon",
		URL:         "http://example.com/api/",
	})
	require.NoError(t, err)
	assert.True(t, profile.Anonymous())
	assert.Zero(t, sessions.obtainCalls)
	assert.Zero(t, sessions.validateCalls)
}

func TestLoginAbortsWhenServerRejectsKey(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	sessions := &fakeSessionFactory{
		token:       &domain.APIKey{ConsumerKey: "a", TokenKey: "b", TokenSecret: "c"},
		validateErr: errors.New("401 unauthorized"),
	}
	service := newTestService(store, sessions)

	_, err := service.Login(context.Background(), LoginParams{
		ProfileName: "dev",
		URL:         "http://example.com/api/",
		Username:    "alice",
		Password:    "bad",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected your API key")
	assert.Empty(t, store.profiles, "nothing may be persisted after a rejected key")
}

func TestLoginOverwritesExistingProfile(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	require.NoError(t, store.Save(context.Background(), domain.Profile{Name: "dev", URL: "http://old/"}))

	sessions := &fakeSessionFactory{
		description: json.RawMessage(`{"v":2}`),
		token:       &domain.APIKey{ConsumerKey: "x", TokenKey: "y", TokenSecret: "z"},
	}
	service := newTestService(store, sessions)

	_, err := service.Login(context.Background(), LoginParams{
		ProfileName: "dev",
		URL:         "http://new/api/",
		Username:    "alice",
		Password:    "secret",
	})
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, "http://new/api/", stored.URL)
}

func TestLoginWithAPIKey(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	sessions := &fakeSessionFactory{description: json.RawMessage(`{}`)}
	service := newTestService(store, sessions)

	profile, err := service.LoginWithAPIKey(context.Background(), "dev", "http://example.com/api/", "a:b:c", false)
	require.NoError(t, err)
	assert.Equal(t, "a:b:c", profile.Credentials.String())
	assert.Equal(t, 1, sessions.validateCalls)
	assert.Zero(t, sessions.obtainCalls, "API-key login performs no token exchange")
}

func TestLogoutRemovesProfile(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	require.NoError(t, store.Save(context.Background(), domain.Profile{Name: "dev"}))

	service := newTestService(store, &fakeSessionFactory{})
	require.NoError(t, service.Logout(context.Background(), "dev"))
	assert.Empty(t, store.profiles)
}

func TestLogoutUnknownProfileIsAnError(t *testing.T) {
	t.Parallel()

	service := newTestService(newFakeStore(), &fakeSessionFactory{})
	err := service.Logout(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRefreshProfilesMutatesOnlyDescription(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	key := &domain.APIKey{ConsumerKey: "a", TokenKey: "b", TokenSecret: "c"}
	originals := []domain.Profile{
		{Name: "one", URL: "http://one/api/", Credentials: key, Description: json.RawMessage(`{"v":1}`)},
		{Name: "two", URL: "http://two/api/", Description: json.RawMessage(`{"v":1}`)},
	}
	for _, profile := range originals {
		require.NoError(t, store.Save(context.Background(), profile))
	}

	sessions := &fakeSessionFactory{description: json.RawMessage(`{"v":2}`)}
	service := newTestService(store, sessions)

	require.NoError(t, service.RefreshProfiles(context.Background()))
	assert.ElementsMatch(t, []string{"one", "two"}, sessions.profileCalls)

	for _, original := range originals {
		refreshed, err := store.Get(context.Background(), original.Name)
		require.NoError(t, err)
		assert.Equal(t, original.Name, refreshed.Name)
		assert.Equal(t, original.URL, refreshed.URL)
		assert.Equal(t, original.Credentials, refreshed.Credentials)
		assert.JSONEq(t, `{"v":2}`, string(refreshed.Description))
	}
}
