package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	Name        string             `toml:"name"`
	URL         string             `toml:"url"`
	Credentials *credentialsSchema `toml:"credentials,omitempty"`
	Description string             `toml:"description,omitempty"`
}

// credentialsSchema keeps the three key parts separate on disk; an absent
// table means the profile is anonymous.
type credentialsSchema struct {
	ConsumerKey string `toml:"consumer_key"`
	TokenKey    string `toml:"token_key"`
	TokenSecret string `toml:"token_secret"`
}
