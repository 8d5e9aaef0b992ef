// Package admin implements the article manager used by administrators:
// the searchable list, the create and edit forms, and confirmed deletes.
package admin

import (
	"context"
	"strings"

	"github.com/Faisalali0159/besofy/internal/client"
	"github.com/Faisalali0159/besofy/internal/domain"
	"github.com/Faisalali0159/besofy/internal/listresource"
)

// User-facing messages. The *FailedMessage values are fallbacks for when
// the server gives none.
const (
	CreateFailedMessage  = "Failed to create article"
	UpdateFailedMessage  = "Failed to update news article"
	DeleteFailedMessage  = "Failed to delete the article"
	MissingFieldsMessage = "Please fill in all required fields"
)

// API is the subset of the news client the manager needs.
type API interface {
	ListArticles(ctx context.Context) ([]domain.Article, error)
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	CreateArticle(ctx context.Context, in domain.ArticleInput) (*domain.Article, error)
	UpdateArticle(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

// ActionError carries the message shown to the user for a failed action.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string { return e.Message }

func (e *ActionError) Unwrap() error { return e.Err }

// Manager owns the admin article list.
type Manager struct {
	api  API
	list *listresource.Controller[domain.Article]
}

// NewManager creates a Manager. Call Load to fetch the list.
func NewManager(api API, opts ...listresource.Option[domain.Article]) *Manager {
	return &Manager{
		api:  api,
		list: listresource.New(api.ListArticles, opts...),
	}
}

// Load fetches the full list.
func (m *Manager) Load(ctx context.Context) error {
	return m.list.Load(ctx)
}

// Refresh re-fetches the list on demand.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.list.Load(ctx)
}

// Retry is the "try again" action after a failed load.
func (m *Manager) Retry(ctx context.Context) error {
	return m.list.Retry(ctx)
}

// Snapshot returns the list state.
func (m *Manager) Snapshot() listresource.Snapshot[domain.Article] {
	return m.list.Snapshot()
}

// Close releases the list; in-flight loads are cancelled.
func (m *Manager) Close() {
	m.list.Close()
}

// Search filters the current list by term.
func (m *Manager) Search(term string) []domain.Article {
	return Filter(m.list.Snapshot().Items, term)
}

// Filter returns the articles whose title, content or category contains
// term, ignoring case. An empty term returns items unchanged.
func Filter(items []domain.Article, term string) []domain.Article {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)

	out := make([]domain.Article, 0, len(items))
	for _, a := range items {
		if strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Content), needle) ||
			strings.Contains(strings.ToLower(string(a.Category)), needle) {
			out = append(out, a)
		}
	}
	return out
}

// Delete asks confirm before deleting id. A declined confirmation sends no
// request and leaves the list alone. On success the list is reloaded; on
// failure the list is left unchanged and an *ActionError is returned.
// deleted reports whether the delete request succeeded.
func (m *Manager) Delete(ctx context.Context, id string, confirm func(domain.Article) bool) (deleted bool, err error) {
	target := domain.Article{ID: id}
	for _, a := range m.list.Snapshot().Items {
		if a.ID == id {
			target = a
			break
		}
	}

	if confirm == nil || !confirm(target) {
		return false, nil
	}

	if err := m.api.DeleteArticle(ctx, id); err != nil {
		return false, &ActionError{Message: DeleteFailedMessage, Err: err}
	}

	m.reload(ctx)
	return true, nil
}

// reload re-fetches after a completed mutation. A failed reload is visible
// through the list state, so it does not fail the mutation.
func (m *Manager) reload(ctx context.Context) {
	_ = m.list.Load(ctx)
}

func failure(err error, fallback string) *ActionError {
	return &ActionError{Message: client.Message(err, fallback), Err: err}
}
