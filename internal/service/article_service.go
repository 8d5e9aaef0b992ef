package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Faisalali0159/besofy/internal/cache"
	"github.com/Faisalali0159/besofy/internal/domain"
	"github.com/Faisalali0159/besofy/internal/logger"
	"github.com/Faisalali0159/besofy/internal/metrics"
	"github.com/Faisalali0159/besofy/internal/repository"
	"github.com/Faisalali0159/besofy/internal/validator"
)

// DefaultExcerptLength is used when Options.ExcerptLength is not positive.
const DefaultExcerptLength = 200

// Options tunes ArticleService.
type Options struct {
	ExcerptLength int
}

// ArticleService implements article management on top of a repository and
// the public list cache.
type ArticleService struct {
	repo      repository.ArticleRepository
	cache     cache.ArticleCache
	validator *validator.Validator
	excerpt   int
}

// NewArticleService creates a new ArticleService. A nil cache disables caching.
func NewArticleService(
	repo repository.ArticleRepository,
	articleCache cache.ArticleCache,
	v *validator.Validator,
	opts Options,
) *ArticleService {
	if articleCache == nil {
		articleCache = cache.Nop{}
	}
	if opts.ExcerptLength <= 0 {
		opts.ExcerptLength = DefaultExcerptLength
	}
	return &ArticleService{
		repo:      repo,
		cache:     articleCache,
		validator: v,
		excerpt:   opts.ExcerptLength,
	}
}

// ListAll returns every article, newest first.
func (s *ArticleService) ListAll(ctx context.Context) ([]domain.Article, error) {
	timer := metrics.NewTimer()
	articles, err := s.repo.List(ctx, repository.ListFilter{})
	timer.ObserveDuration(metrics.DBQueryDuration.WithLabelValues("list"))
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	metrics.ObserveList("admin", len(articles))
	return articles, nil
}

// ListPublished returns the public list, served from cache when possible.
func (s *ArticleService) ListPublished(ctx context.Context) ([]domain.ArticleSummary, error) {
	items, ok, err := s.cache.GetPublished(ctx)
	switch {
	case err != nil:
		metrics.ObserveCache("error")
		logger.WarnContext(ctx, "Public list cache read failed",
			slog.String("error", err.Error()))
	case ok:
		metrics.ObserveCache("hit")
		metrics.ObserveList("public", len(items))
		return items, nil
	default:
		metrics.ObserveCache("miss")
	}

	// Read before the query: a mutation landing mid-load bumps it and the
	// fill below is dropped.
	gen, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		logger.WarnContext(ctx, "Public list cache generation read failed",
			slog.String("error", genErr.Error()))
	}

	timer := metrics.NewTimer()
	articles, err := s.repo.List(ctx, repository.ListFilter{PublishedOnly: true})
	timer.ObserveDuration(metrics.DBQueryDuration.WithLabelValues("list_published"))
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}

	items = make([]domain.ArticleSummary, 0, len(articles))
	for _, a := range articles {
		items = append(items, s.summarize(a))
	}

	if genErr == nil {
		s.fill(ctx, gen, items)
	}

	metrics.ObserveList("public", len(items))
	return items, nil
}

// Get returns any article by ID.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	timer := metrics.NewTimer()
	article, err := s.repo.Get(ctx, id)
	timer.ObserveDuration(metrics.DBQueryDuration.WithLabelValues("get"))
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// GetPublished returns a published article; drafts are reported as not found.
func (s *ArticleService) GetPublished(ctx context.Context, id string) (*domain.ArticleSummary, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.Published {
		return nil, domain.ErrArticleNotFound
	}
	summary := s.summarize(*article)
	return &summary, nil
}

// Create validates and stores a new article. New articles are unpublished.
func (s *ArticleService) Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	in = normalize(in)
	in.Published = false
	if err := s.validator.ValidateArticle(&in); err != nil {
		return nil, err
	}

	article := &domain.Article{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Image:    in.Image,
	}

	timer := metrics.NewTimer()
	err := s.repo.Create(ctx, article)
	timer.ObserveDuration(metrics.DBQueryDuration.WithLabelValues("create"))
	metrics.ObserveMutation("create", err)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	logger.WithArticleID(article.ID).InfoContext(ctx, "Article created",
		slog.String("category", string(article.Category)))
	s.invalidate(ctx)
	return article, nil
}

// Update replaces title, content, category, image and published.
func (s *ArticleService) Update(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error) {
	in = normalize(in)
	if err := s.validator.ValidateArticle(&in); err != nil {
		return nil, err
	}

	article := &domain.Article{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Image:     in.Image,
		Published: in.Published,
	}

	timer := metrics.NewTimer()
	err := s.repo.Update(ctx, article)
	timer.ObserveDuration(metrics.DBQueryDuration.WithLabelValues("update"))
	metrics.ObserveMutation("update", err)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update article: %w", err)
	}

	logger.WithArticleID(id).InfoContext(ctx, "Article updated",
		slog.Bool("published", article.Published))
	s.invalidate(ctx)
	return article, nil
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	timer := metrics.NewTimer()
	err := s.repo.Delete(ctx, id)
	timer.ObserveDuration(metrics.DBQueryDuration.WithLabelValues("delete"))
	metrics.ObserveMutation("delete", err)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return err
		}
		return fmt.Errorf("delete article: %w", err)
	}

	logger.WithArticleID(id).InfoContext(ctx, "Article deleted")
	s.invalidate(ctx)
	return nil
}

func (s *ArticleService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.ErrorContext(ctx, "Public list cache invalidation failed",
			slog.String("error", err.Error()))
	}
}

func (s *ArticleService) fill(ctx context.Context, gen int64, items []domain.ArticleSummary) {
	err := s.cache.SetPublished(ctx, gen, items)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrStale):
		metrics.ObserveCache("stale")
		logger.DebugContext(ctx, "Public list changed during load, not cached")
	default:
		logger.WarnContext(ctx, "Public list cache write failed",
			slog.String("error", err.Error()))
	}
}

func (s *ArticleService) summarize(a domain.Article) domain.ArticleSummary {
	return domain.ArticleSummary{
		ID:        a.ID,
		Title:     a.Title,
		Excerpt:   Excerpt(a.Content, s.excerpt),
		Category:  a.Category,
		CreatedAt: a.CreatedAt,
		ImageURL:  a.ImageURL(),
	}
}

// normalize trims the text fields and drops an empty image.
func normalize(in domain.ArticleInput) domain.ArticleInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = domain.Category(strings.TrimSpace(string(in.Category)))
	if in.Image != nil && strings.TrimSpace(*in.Image) == "" {
		in.Image = nil
	}
	return in
}
