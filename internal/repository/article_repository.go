package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Faisalali0159/besofy/internal/domain"
)

const articleColumns = `id, title, content, category, image, published, created_at, updated_at`

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

// List returns articles newest first.
func (r *PostgresArticleRepository) List(ctx context.Context, filter ListFilter) ([]domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM news`
	if filter.PublishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

// Get returns a single article or domain.ErrArticleNotFound.
func (r *PostgresArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrArticleNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM news WHERE id = $1`, id)
	a, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts the article. ID, CreatedAt and UpdatedAt are assigned here
// and written back to the argument.
func (r *PostgresArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO news (id, title, content, category, image, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`, article.ID, article.Title, article.Content, string(article.Category), article.Image, article.Published,
	).Scan(&article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Update replaces the editable fields of an existing article.
func (r *PostgresArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	if _, err := uuid.Parse(article.ID); err != nil {
		return domain.ErrArticleNotFound
	}

	err := r.pool.QueryRow(ctx, `
		UPDATE news
		SET title = $2, content = $3, category = $4, image = $5, published = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, article.ID, article.Title, article.Content, string(article.Category), article.Image, article.Published,
	).Scan(&article.CreatedAt, &article.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrArticleNotFound
	}
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Delete removes an article.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrArticleNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	var category string
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &category, &a.Image, &a.Published, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	a.Category = domain.Category(category)
	return &a, nil
}
