package repository

import (
	"context"

	"github.com/Faisalali0159/besofy/internal/domain"
)

// ListFilter narrows an article listing.
type ListFilter struct {
	PublishedOnly bool
}

// ArticleRepository defines methods for article data access.
type ArticleRepository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Article, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
}
