package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faisalali0159/besofy/internal/client"
	"github.com/Faisalali0159/besofy/internal/domain"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClient_ListArticles(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `[
		{"id":"1","title":"A","content":"c","category":"crypto","imageUrl":"/a.png","published":true,"createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-01-02T03:04:05Z"},
		{"id":"2","title":"B","content":"c","category":"tech","image":"/b.png","published":false,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}
	]`)
	c := client.New(srv.URL, client.WithToken("tok"))

	articles, err := c.ListArticles(context.Background())

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Bearer tok", rec.auth)
	assert.Equal(t, "/a.png", articles[0].ImageURL(), "imageUrl alias is honoured")
	assert.Equal(t, "/b.png", articles[1].ImageURL())
	assert.Equal(t, 2024, articles[0].CreatedAt.Year())
}

func TestClient_ListSummaries(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `[{"id":"1","title":"A","excerpt":"e","category":"crypto","createdAt":"2024-01-02T03:04:05Z"}]`)
	c := client.New(srv.URL, client.WithToken("tok"))

	items, err := c.ListSummaries(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, rec.auth, "public list is fetched anonymously")
	assert.Equal(t, "e", items[0].Excerpt)
}

func TestClient_CreateArticle(t *testing.T) {
	t.Run("sends imageUrl null without an image", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusCreated, `{"id":"new","title":"T"}`)
		c := client.New(srv.URL)

		a, err := c.CreateArticle(context.Background(), domain.ArticleInput{Title: "T", Content: "C", Category: "tech"})

		require.NoError(t, err)
		assert.Equal(t, "new", a.ID)
		assert.Equal(t, http.MethodPost, rec.method)
		assert.Equal(t, "/api/news", rec.path)
		assert.Contains(t, rec.body, "imageUrl")
		assert.Nil(t, rec.body["imageUrl"])
		assert.NotContains(t, rec.body, "published")
	})

	t.Run("surfaces the server error field", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusBadRequest, `{"error":"title is required"}`)
		c := client.New(srv.URL)

		_, err := c.CreateArticle(context.Background(), domain.ArticleInput{})

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "title is required", client.Message(err, "Failed to create article"))
	})

	t.Run("falls back to body text", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusBadGateway, "upstream exploded\n")
		c := client.New(srv.URL)

		_, err := c.CreateArticle(context.Background(), domain.ArticleInput{})

		assert.Equal(t, "upstream exploded", client.Message(err, "Failed to create article"))
	})

	t.Run("falls back to the generic message", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusInternalServerError, "")
		c := client.New(srv.URL)

		_, err := c.CreateArticle(context.Background(), domain.ArticleInput{})

		assert.Equal(t, "Failed to create article", client.Message(err, "Failed to create article"))
	})
}

func TestClient_UpdateArticle(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{"id":"a b","published":true}`)
	c := client.New(srv.URL, client.WithToken("tok"))
	img := "data:image/png;base64,AAAA"

	a, err := c.UpdateArticle(context.Background(), "a b", domain.ArticleInput{
		Title: "T", Content: "C", Category: "markets", Image: &img, Published: true,
	})

	require.NoError(t, err)
	assert.True(t, a.Published)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/news/a b", rec.path)
	assert.Equal(t, img, rec.body["image"])
	assert.Equal(t, true, rec.body["published"])
}

func TestClient_DeleteArticle(t *testing.T) {
	t.Run("no content is success", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusNoContent, "")
		c := client.New(srv.URL)

		require.NoError(t, c.DeleteArticle(context.Background(), "1"))
		assert.Equal(t, http.MethodDelete, rec.method)
	})

	t.Run("not found is an APIError", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusNotFound, `{"error":"article not found"}`)
		c := client.New(srv.URL)

		err := c.DeleteArticle(context.Background(), "1")

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

func TestClient_TransportError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "[]")
	srv.Close()
	c := client.New(srv.URL)

	_, err := c.ListArticles(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Failed to load news articles", client.Message(err, "Failed to load news articles"))
}

func TestClient_ContextCancelled(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "[]")
	c := client.New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListSummaries(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}
