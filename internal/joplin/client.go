// Package joplin is a client for the Joplin desktop data API (the Web
// Clipper service).
package joplin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lherron/joplin2fnx/internal/domain"
)

const (
	// DefaultURL is where the clipper service listens unless reconfigured.
	DefaultURL = "http://127.0.0.1:41184"

	pingReply      = "JoplinClipperServer"
	defaultTimeout = 30 * time.Second
	pageLimit      = 100
	listFields     = "id,parent_id,title"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("joplin %s: HTTP %d", e.Path, e.Status)
	}
	return fmt.Sprintf("joplin %s: HTTP %d: %s", e.Path, e.Status, e.Body)
}

// Client talks to one Joplin instance.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for baseURL authenticating with token.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid joplin url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("invalid joplin url %q: want http(s)://host:port", baseURL)
	}
	c := &Client{
		base:  base,
		token: token,
		http:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query == nil {
		query = url.Values{}
	}
	if c.token != "" {
		query.Set("token", c.token)
	}
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("joplin %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("joplin %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// Ping checks that the service at the base URL is a Joplin clipper server.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.get(ctx, "/ping", nil)
	if err != nil {
		return err
	}
	if got := strings.TrimSpace(string(body)); got != pingReply {
		return fmt.Errorf("unexpected ping reply %q from %s", got, c.base)
	}
	return nil
}

type page[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

// list follows has_more across pages until exhausted.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T
	for n := 1; ; n++ {
		query := url.Values{
			"fields": {listFields},
			"limit":  {strconv.Itoa(pageLimit)},
			"page":   {strconv.Itoa(n)},
		}
		body, err := c.get(ctx, path, query)
		if err != nil {
			return nil, err
		}
		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("joplin %s page %d: decode: %w", path, n, err)
		}
		all = append(all, p.Items...)
		if !p.HasMore {
			return all, nil
		}
	}
}

// Folders lists every folder.
func (c *Client) Folders(ctx context.Context) ([]domain.FolderRecord, error) {
	return list[domain.FolderRecord](ctx, c, "/folders")
}

// Notes lists every note.
func (c *Client) Notes(ctx context.Context) ([]domain.NoteRecord, error) {
	return list[domain.NoteRecord](ctx, c, "/notes")
}

// NoteBody fetches the markdown body of note id.
func (c *Client) NoteBody(ctx context.Context, id string) (string, error) {
	body, err := c.get(ctx, "/notes/"+id, url.Values{"fields": {"body"}})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return "", &domain.NotFoundError{Kind: "note", ID: id}
		}
		return "", err
	}
	var note struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(body, &note); err != nil {
		return "", fmt.Errorf("joplin note %s: decode: %w", id, err)
	}
	return note.Body, nil
}

// String returns the base URL without the token.
func (c *Client) String() string {
	return c.base.String()
}
