// Package api implements the session factory and origin against the
// remote server's JSON API.
package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maasutil/maascli/internal/domain"
	"github.com/maasutil/maascli/internal/ports"
)

// Factory builds sessions over HTTP. A nil client defaults to
// http.DefaultClient and a nil clock to the system clock; insecure
// sessions get a derived client that skips TLS certificate verification.
type Factory struct {
	client *http.Client
	clock  ports.Clock
}

var _ ports.SessionFactory = (*Factory)(nil)

func NewFactory(client *http.Client, clock ports.Clock) *Factory {
	if client == nil {
		client = http.DefaultClient
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Factory{client: client, clock: clock}
}

func (f *Factory) FromURL(ctx context.Context, url string, credentials *domain.APIKey, insecure bool) (ports.Session, error) {
	session := &session{
		client:      f.httpClient(insecure),
		baseURL:     url,
		credentials: credentials,
		clock:       f.clock,
	}

	var description json.RawMessage
	if err := session.call(ctx, http.MethodGet, "describe", nil, &description); err != nil {
		return nil, fmt.Errorf("describe remote API: %w", err)
	}
	session.description = description

	return session, nil
}

func (f *Factory) FromProfile(ctx context.Context, profile domain.Profile) (ports.Session, error) {
	return f.FromURL(ctx, profile.URL, profile.Credentials, false)
}

func (f *Factory) ObtainToken(ctx context.Context, url, username, password string, insecure bool) (*domain.APIKey, error) {
	endpoint, err := joinURL(url, "account/token")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(username, password)

	resp, err := f.httpClient(insecure).Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange credentials for token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newCallError(req, resp)
	}

	var payload struct {
		ConsumerKey string `json:"consumer_key"`
		TokenKey    string `json:"token_key"`
		TokenSecret string `json:"token_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	return domain.ParseAPIKey(payload.ConsumerKey + ":" + payload.TokenKey + ":" + payload.TokenSecret)
}

func (f *Factory) ValidateKey(ctx context.Context, url string, credentials *domain.APIKey, insecure bool) error {
	session := &session{
		client:      f.httpClient(insecure),
		baseURL:     url,
		credentials: credentials,
		clock:       f.clock,
	}
	return session.call(ctx, http.MethodGet, "account/validate", nil, nil)
}

func (f *Factory) httpClient(insecure bool) *http.Client {
	if !insecure {
		return f.client
	}

	transport, ok := f.client.Transport.(*http.Transport)
	if ok {
		transport = transport.Clone()
	} else {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	derived := *f.client
	derived.Transport = transport
	return &derived
}
