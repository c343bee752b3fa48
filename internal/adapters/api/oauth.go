package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/maasutil/maascli/internal/domain"
)

// authorizationHeader builds an OAuth 1.0a PLAINTEXT Authorization header
// from a three-part API key. The server only checks the signature against
// the token secret, so no request-body signing is involved.
func authorizationHeader(key *domain.APIKey, now time.Time) (string, error) {
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate oauth nonce: %w", err)
	}

	params := [][2]string{
		{"oauth_version", "1.0"},
		{"oauth_signature_method", "PLAINTEXT"},
		{"oauth_consumer_key", key.ConsumerKey},
		{"oauth_token", key.TokenKey},
		{"oauth_signature", "&" + key.TokenSecret},
		{"oauth_nonce", hex.EncodeToString(nonce)},
		{"oauth_timestamp", strconv.FormatInt(now.Unix(), 10)},
	}

	header := "OAuth "
	for i, param := range params {
		if i > 0 {
			header += ", "
		}
		header += param[0] + `="` + percentEncode(param[1]) + `"`
	}

	return header, nil
}

// percentEncode applies the strict RFC 3986 escaping OAuth 1.0a mandates.
// url.QueryEscape is not usable here: it turns a space into "+".
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
