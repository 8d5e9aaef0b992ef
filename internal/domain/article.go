package domain

import (
	"errors"
	"time"
)

// ErrArticleNotFound is returned when no article matches the requested ID.
var ErrArticleNotFound = errors.New("article not found")

// Article represents a news article managed by administrators.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Image     *string   `json:"image,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ImageURL returns the article image or an empty string.
func (a Article) ImageURL() string {
	if a.Image == nil {
		return ""
	}
	return *a.Image
}

// ArticleSummary is the public representation of an article.
type ArticleSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	ImageURL  string    `json:"imageUrl,omitempty"`
}

// ArticleInput carries the editable fields of an article.
// Create ignores Published; new articles start unpublished.
type ArticleInput struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  Category `json:"category"`
	Image     *string  `json:"image"`
	Published bool     `json:"published"`
}
