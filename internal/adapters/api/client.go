package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/maasutil/maascli/internal/domain"
	"github.com/maasutil/maascli/internal/ports"
)

type session struct {
	client      *http.Client
	baseURL     string
	credentials *domain.APIKey
	description json.RawMessage
	clock       ports.Clock
}

var _ ports.Session = (*session)(nil)

func (s *session) Description() json.RawMessage { return s.description }

func (s *session) Origin() ports.Origin { return &origin{session: s} }

func (s *session) call(ctx context.Context, method, path string, body, out any) error {
	endpoint, err := joinURL(s.baseURL, path)
	if err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.credentials != nil {
		header, err := authorizationHeader(s.credentials, s.clock.Now())
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", header)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newCallError(req, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}

	return nil
}

func newCallError(req *http.Request, resp *http.Response) *CallError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &CallError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

func joinURL(base, path string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	// Credentials embedded in the URL are resolved before login; the wire
	// never sees them.
	parsed.User = nil
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/" + path
	return parsed.String(), nil
}

// origin exposes the remote resource collections through one session.
type origin struct {
	session *session
}

var _ ports.Origin = (*origin)(nil)

type nodeSchema struct {
	SystemID     string   `json:"system_id"`
	Hostname     string   `json:"hostname"`
	Architecture string   `json:"architecture"`
	CPUCount     int      `json:"cpu_count"`
	Memory       float64  `json:"memory"`
	StatusName   string   `json:"status_name"`
	Owner        string   `json:"owner"`
	TagNames     []string `json:"tag_names"`
}

func (n nodeSchema) toDomain() domain.Node {
	return domain.Node{
		SystemID:     n.SystemID,
		Hostname:     n.Hostname,
		Architecture: n.Architecture,
		CPUs:         n.CPUCount,
		Memory:       n.Memory,
		Status:       n.StatusName,
		Owner:        n.Owner,
		Tags:         n.TagNames,
	}
}

func (o *origin) Nodes(ctx context.Context) ([]domain.Node, error) {
	var entries []nodeSchema
	if err := o.session.call(ctx, http.MethodGet, "nodes", nil, &entries); err != nil {
		return nil, err
	}

	nodes := make([]domain.Node, 0, len(entries))
	for _, entry := range entries {
		nodes = append(nodes, entry.toDomain())
	}
	return nodes, nil
}

func (o *origin) Node(ctx context.Context, systemID string) (domain.Node, error) {
	var entry nodeSchema
	if err := o.session.call(ctx, http.MethodGet, "nodes/"+url.PathEscape(systemID), nil, &entry); err != nil {
		return domain.Node{}, err
	}
	return entry.toDomain(), nil
}

func (o *origin) AcquireNode(ctx context.Context, constraints domain.AcquireConstraints) (domain.Node, error) {
	body := struct {
		Hostname     string   `json:"hostname,omitempty"`
		Architecture string   `json:"architecture,omitempty"`
		CPUCount     int      `json:"cpu_count,omitempty"`
		Memory       float64  `json:"memory,omitempty"`
		Tags         []string `json:"tags,omitempty"`
	}{
		Hostname:     constraints.Hostname,
		Architecture: constraints.Architecture,
		CPUCount:     constraints.CPUs,
		Memory:       constraints.Memory,
		Tags:         constraints.Tags,
	}

	var entry nodeSchema
	if err := o.session.call(ctx, http.MethodPost, "nodes/acquire", body, &entry); err != nil {
		return domain.Node{}, err
	}
	return entry.toDomain(), nil
}

func (o *origin) DeployNode(ctx context.Context, systemID string) (domain.Node, error) {
	var entry nodeSchema
	if err := o.session.call(ctx, http.MethodPost, "nodes/"+url.PathEscape(systemID)+"/deploy", nil, &entry); err != nil {
		return domain.Node{}, err
	}
	return entry.toDomain(), nil
}

func (o *origin) ReleaseNode(ctx context.Context, systemID string) (domain.Node, error) {
	var entry nodeSchema
	if err := o.session.call(ctx, http.MethodPost, "nodes/"+url.PathEscape(systemID)+"/release", nil, &entry); err != nil {
		return domain.Node{}, err
	}
	return entry.toDomain(), nil
}

func (o *origin) Tags(ctx context.Context) ([]domain.Tag, error) {
	var entries []struct {
		Name       string `json:"name"`
		Definition string `json:"definition"`
		Comment    string `json:"comment"`
	}
	if err := o.session.call(ctx, http.MethodGet, "tags", nil, &entries); err != nil {
		return nil, err
	}

	tags := make([]domain.Tag, 0, len(entries))
	for _, entry := range entries {
		tags = append(tags, domain.Tag{Name: entry.Name, Definition: entry.Definition, Comment: entry.Comment})
	}
	return tags, nil
}

func (o *origin) Files(ctx context.Context) ([]domain.File, error) {
	var entries []struct {
		Filename string `json:"filename"`
		AnonURI  string `json:"anon_resource_uri"`
	}
	if err := o.session.call(ctx, http.MethodGet, "files", nil, &entries); err != nil {
		return nil, err
	}

	files := make([]domain.File, 0, len(entries))
	for _, entry := range entries {
		files = append(files, domain.File{Filename: entry.Filename, AnonURI: entry.AnonURI})
	}
	return files, nil
}

func (o *origin) Users(ctx context.Context) ([]domain.User, error) {
	var entries []struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		IsSuperuser bool   `json:"is_superuser"`
	}
	if err := o.session.call(ctx, http.MethodGet, "users", nil, &entries); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(entries))
	for _, entry := range entries {
		users = append(users, domain.User{Username: entry.Username, Email: entry.Email, IsAdmin: entry.IsSuperuser})
	}
	return users, nil
}
