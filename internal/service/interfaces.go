package service

import (
	"context"

	"github.com/Faisalali0159/besofy/internal/domain"
)

// ArticleServiceInterface defines the interface for article operations.
// Used for dependency injection and mocking in tests.
type ArticleServiceInterface interface {
	// ListAll returns every article, newest first, for administrators.
	ListAll(ctx context.Context) ([]domain.Article, error)
	// ListPublished returns published articles in their public shape.
	ListPublished(ctx context.Context) ([]domain.ArticleSummary, error)
	// Get returns any article by ID.
	Get(ctx context.Context, id string) (*domain.Article, error)
	// GetPublished returns a published article in its public shape.
	GetPublished(ctx context.Context, id string) (*domain.ArticleSummary, error)
	// Create validates and stores a new, unpublished article.
	Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error)
	// Update replaces the editable fields of an article.
	Update(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error)
	// Delete removes an article.
	Delete(ctx context.Context, id string) error
}
