package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Profile is a named, persisted pairing of a remote API endpoint with the
// credentials used against it and the server's cached capability
// description.
type Profile struct {
	Name        string
	URL         string
	Credentials *APIKey
	Description json.RawMessage
}

// Anonymous reports whether the profile grants credential-less access.
func (p Profile) Anonymous() bool {
	return p.Credentials == nil
}

// APIKey is the three-part token issued by the remote server. A value of
// this type is always fully populated; anonymous access is represented by
// a nil *APIKey, never by empty parts.
type APIKey struct {
	ConsumerKey string
	TokenKey    string
	TokenSecret string
}

// ParseAPIKey splits a "consumer:token:secret" string into an APIKey.
func ParseAPIKey(raw string) (*APIKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 colon-separated parts, got %d", ErrMalformedAPIKey, len(parts))
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty part", ErrMalformedAPIKey)
		}
	}

	return &APIKey{ConsumerKey: parts[0], TokenKey: parts[1], TokenSecret: parts[2]}, nil
}

func (k APIKey) String() string {
	return k.ConsumerKey + ":" + k.TokenKey + ":" + k.TokenSecret
}
