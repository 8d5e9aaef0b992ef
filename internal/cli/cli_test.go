package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is a minimal in-memory /api/news server.
type backend struct {
	mu       sync.Mutex
	articles []map[string]any
	deletes  int
	lastBody map[string]any
	listDown bool
}

func newBackend(t *testing.T) (*backend, string) {
	t.Helper()
	b := &backend{}
	now := time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)
	for i, cat := range []string{"crypto", "crypto", "tech", "stocks", "crypto"} {
		b.articles = append(b.articles, map[string]any{
			"id":        string(rune('a' + i)),
			"title":     "Story " + string(rune('A'+i)),
			"content":   "<p>body</p>",
			"excerpt":   "body",
			"category":  cat,
			"published": i != 3,
			"createdAt": now,
			"updatedAt": now,
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/news", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.listDown {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"failed to load articles"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(b.articles)
	})
	mux.HandleFunc("GET /api/news/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, a := range b.articles {
			if a["id"] == r.PathValue("id") {
				_ = json.NewEncoder(w).Encode(a)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"article not found"}`))
	})
	mux.HandleFunc("POST /api/news", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.lastBody = body
		body["id"] = "new"
		b.articles = append([]map[string]any{body}, b.articles...)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("PATCH /api/news/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.lastBody = body
		body["id"] = r.PathValue("id")
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("DELETE /api/news/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.deletes++
		for i, a := range b.articles {
			if a["id"] == r.PathValue("id") {
				b.articles = append(b.articles[:i], b.articles[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, srv.URL
}

func run(t *testing.T, url, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url=" + url, "--token=tok"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Story A")
	assert.Contains(t, out, "Cryptocurrency")
	assert.Contains(t, out, "Draft")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, strings.ToLower(out), "5 articles")

	out, err = run(t, url, "", "list", "--search", "TECH")
	require.NoError(t, err)
	assert.Contains(t, out, "Story C")
	assert.NotContains(t, out, "Story A")
}

func TestBrowseCommand(t *testing.T) {
	b, url := newBackend(t)
	b.articles = append(b.articles, map[string]any{
		"id": "f", "title": "Story F", "category": "crypto",
		"createdAt": time.Now().Add(-5 * time.Hour).UTC().Format(time.RFC3339),
	})

	out, err := run(t, url, "", "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "== Cryptocurrency ==")
	assert.Contains(t, out, "[Show More] 3 of 4 shown")
	assert.Contains(t, out, "image: /placeholder.svg")

	out, err = run(t, url, "", "browse", "--expand", "crypto")
	require.NoError(t, err)
	assert.Contains(t, out, "[Show Less] 4 of 4 shown")

	out, err = run(t, url, "", "browse", "--category", "markets")
	require.NoError(t, err)
	assert.Contains(t, out, "No Articles Yet")
}

func TestCreateCommand(t *testing.T) {
	t.Run("blank fields never reach the server", func(t *testing.T) {
		b, url := newBackend(t)

		_, err := run(t, url, "", "create", "--title", "  ", "--category", "tech", "--content", "x")

		require.Error(t, err)
		assert.Equal(t, "Please fill in all required fields", err.Error())
		assert.Nil(t, b.lastBody)
	})

	t.Run("creates with content file and image", func(t *testing.T) {
		b, url := newBackend(t)
		dir := t.TempDir()
		body := filepath.Join(dir, "body.html")
		img := filepath.Join(dir, "pic.png")
		require.NoError(t, os.WriteFile(body, []byte("<p>Oil</p>"), 0o600))
		require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\n"), 0o600))

		out, err := run(t, url, "", "create", "--title", "Oil", "--category", "commodities",
			"--content-file", body, "--image", img)

		require.NoError(t, err)
		assert.Contains(t, out, `Created "Oil"`)
		assert.Equal(t, "<p>Oil</p>", b.lastBody["content"])
		assert.True(t, strings.HasPrefix(b.lastBody["imageUrl"].(string), "data:image/png;base64,"))
	})

	t.Run("non-image file is rejected locally", func(t *testing.T) {
		b, url := newBackend(t)
		doc := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(doc, []byte("hi"), 0o600))

		_, err := run(t, url, "", "create", "--title", "T", "--category", "tech", "--content", "C", "--image", doc)

		require.Error(t, err)
		assert.Equal(t, "Please upload an image file", err.Error())
		assert.Nil(t, b.lastBody)
	})
}

func TestEditCommand(t *testing.T) {
	b, url := newBackend(t)

	out, err := run(t, url, "", "edit", "d", "--published", "--title", "Stocks rally")

	require.NoError(t, err)
	assert.Contains(t, out, `Updated "Stocks rally"`)
	assert.Equal(t, true, b.lastBody["published"])
	assert.Equal(t, "<p>body</p>", b.lastBody["content"])
	assert.Equal(t, "stocks", b.lastBody["category"])

	_, err = run(t, url, "", "edit", "zzz", "--title", "x")
	require.Error(t, err)
	assert.Equal(t, "article not found", err.Error())
}

func TestDeleteCommand(t *testing.T) {
	t.Run("declining sends nothing", func(t *testing.T) {
		b, url := newBackend(t)

		out, err := run(t, url, "n\n", "delete", "a")

		require.NoError(t, err)
		assert.Contains(t, out, `delete "Story A"?`)
		assert.Contains(t, out, "Cancelled")
		assert.Zero(t, b.deletes)
		assert.Len(t, b.articles, 5)
	})

	t.Run("confirming deletes", func(t *testing.T) {
		b, url := newBackend(t)

		out, err := run(t, url, "y\n", "delete", "a")

		require.NoError(t, err)
		assert.Contains(t, out, "Deleted")
		assert.Equal(t, 1, b.deletes)
		assert.Len(t, b.articles, 4)
	})

	t.Run("failed pre-load is reported and the prompt names the ID", func(t *testing.T) {
		b, url := newBackend(t)
		b.mu.Lock()
		b.listDown = true
		b.mu.Unlock()

		out, err := run(t, url, "y\n", "delete", "a")

		require.NoError(t, err)
		assert.Contains(t, out, "Could not load articles (failed to load articles); confirming by ID")
		assert.Contains(t, out, `delete "a"?`)
		assert.Equal(t, 1, b.deletes)
	})

	t.Run("--yes skips the prompt", func(t *testing.T) {
		b, url := newBackend(t)

		out, err := run(t, url, "", "delete", "b", "--yes")

		require.NoError(t, err)
		assert.NotContains(t, out, "Are you sure")
		assert.Equal(t, 1, b.deletes)
	})
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "http://unused", "", "token", "--secret", "s3cret", "--subject", "me")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)

	_, err = run(t, "http://unused", "", "token", "--secret", "")
	assert.Error(t, err)
}
