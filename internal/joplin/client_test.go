package joplin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lherron/joplin2fnx/internal/domain"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "secret", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestPing(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		fmt.Fprint(w, "JoplinClipperServer")
	})
	require.NoError(t, c.Ping(context.Background()))
}

func TestPingWrongService(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "nginx")
	})
	require.Error(t, c.Ping(context.Background()))
}

func TestFoldersFollowsPages(t *testing.T) {
	pages := map[int][]domain.FolderRecord{
		1: {{ID: "1", Title: "Work"}},
		2: {{ID: "2", ParentID: "1", Title: "Projects"}},
	}
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/folders", r.URL.Path)
		assert.Equal(t, "id,parent_id,title", r.URL.Query().Get("fields"))
		n, _ := strconv.Atoi(r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":    pages[n],
			"has_more": n < len(pages),
		})
	})

	folders, err := c.Folders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.FolderRecord{
		{ID: "1", Title: "Work"},
		{ID: "2", ParentID: "1", Title: "Projects"},
	}, folders)
}

func TestNotes(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes", r.URL.Path)
		assert.Equal(t, "id,parent_id,title", r.URL.Query().Get("fields"))
		fmt.Fprint(w, `{"items":[{"id":"n1","parent_id":"abc","title":"Plan"}],"has_more":false}`)
	})

	notes, err := c.Notes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.NoteRecord{{ID: "n1", ParentID: "abc", Title: "Plan"}}, notes)
}

func TestNoteBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notes/n1":
			assert.Equal(t, "body", r.URL.Query().Get("fields"))
			fmt.Fprint(w, `{"id":"n1","body":"# hi"}`)
		default:
			http.NotFound(w, r)
		}
	})

	body, err := c.NoteBody(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, "# hi", body)

	_, err = c.NoteBody(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStatusError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid token", http.StatusForbidden)
	})

	_, err := c.Notes(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, "/notes", se.Path)
	assert.Contains(t, err.Error(), "Invalid token")
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", "")
	require.Error(t, err)

	c, err := New("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, c.String())
}

func TestContextCancel(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "JoplinClipperServer")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, c.Ping(ctx))
}
