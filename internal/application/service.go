package application

import (
	"context"
	"fmt"
	"io"

	"github.com/maasutil/maascli/internal/domain"
	"github.com/maasutil/maascli/internal/ports"
)

// Service carries out the profile lifecycle: logging in (both credential
// paths), logging out, listing and refreshing profiles. Commands never
// touch the store or session factory directly.
type Service struct {
	store    ports.ProfileStore
	sessions ports.SessionFactory
	prompter ports.Prompter
	stdin    io.Reader
}

func NewService(store ports.ProfileStore, sessions ports.SessionFactory, prompter ports.Prompter, stdin io.Reader) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
		prompter: prompter,
		stdin:    stdin,
	}
}

// LoginParams are the inputs to the username/password login path.
type LoginParams struct {
	ProfileName string
	URL         string
	Username    string
	Password    string
	Insecure    bool
}

// Login resolves username/password credentials, exchanges them for an API
// key when not anonymous, and persists the resulting profile.
func (s *Service) Login(ctx context.Context, params LoginParams) (domain.Profile, error) {
	resolved, err := ResolvePassword(params.URL, params.Username, params.Password, s.stdin, s.prompter)
	if err != nil {
		return domain.Profile{}, err
	}

	var key *domain.APIKey
	if !resolved.Anonymous {
		key, err = s.sessions.ObtainToken(ctx, params.URL, resolved.Username, resolved.Password, params.Insecure)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("obtain API key: %w", err)
		}
	}

	return s.saveProfile(ctx, params.ProfileName, params.URL, key, params.Insecure)
}

// LoginWithAPIKey persists a profile from an API key supplied directly,
// via stdin ("-"), or interactively.
func (s *Service) LoginWithAPIKey(ctx context.Context, profileName, url, rawKey string, insecure bool) (domain.Profile, error) {
	key, err := ResolveAPIKey(rawKey, s.stdin, s.prompter)
	if err != nil {
		return domain.Profile{}, err
	}

	return s.saveProfile(ctx, profileName, url, key, insecure)
}

// saveProfile validates the key against the server, establishes a session
// to capture its capability description, and writes the profile. Rejected
// credentials abort the whole login; the user must not discover a bad key
// only on the next invocation.
func (s *Service) saveProfile(ctx context.Context, name, url string, key *domain.APIKey, insecure bool) (domain.Profile, error) {
	if key != nil {
		if err := s.sessions.ValidateKey(ctx, url, key, insecure); err != nil {
			return domain.Profile{}, fmt.Errorf("the server rejected your API key: %w", err)
		}
	}

	session, err := s.sessions.FromURL(ctx, url, key, insecure)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("establish session: %w", err)
	}

	profile := domain.Profile{
		Name:        name,
		URL:         url,
		Credentials: key,
		Description: session.Description(),
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	return profile, nil
}

// Logout removes a stored profile. Removing an unknown name is an error;
// silently succeeding would mask a typo.
func (s *Service) Logout(ctx context.Context, profileName string) error {
	if err := s.store.Delete(ctx, profileName); err != nil {
		return fmt.Errorf("remove profile %q: %w", profileName, err)
	}
	return nil
}

func (s *Service) Profiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// RefreshProfiles re-establishes a session for every stored profile and
// overwrites only its capability description, preserving name, URL and
// credentials verbatim.
func (s *Service) RefreshProfiles(ctx context.Context) error {
	profiles, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	for _, profile := range profiles {
		session, err := s.sessions.FromProfile(ctx, profile)
		if err != nil {
			return fmt.Errorf("refresh profile %q: %w", profile.Name, err)
		}

		profile.Description = session.Description()
		if err := s.store.Save(ctx, profile); err != nil {
			return fmt.Errorf("save refreshed profile %q: %w", profile.Name, err)
		}
	}

	return nil
}
