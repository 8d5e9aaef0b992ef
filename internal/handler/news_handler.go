package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Faisalali0159/besofy/internal/domain"
	"github.com/Faisalali0159/besofy/internal/logger"
	"github.com/Faisalali0159/besofy/internal/service"
	"github.com/Faisalali0159/besofy/internal/validator"
)

// AdminChecker reports whether a request was made by an administrator.
type AdminChecker interface {
	IsAdmin(c *gin.Context) bool
}

// NewsHandler handles /api/news requests.
type NewsHandler struct {
	articles service.ArticleServiceInterface
	admins   AdminChecker
	maxBody  int64
}

// NewNewsHandler creates a new NewsHandler. Request bodies are capped at
// MaxBodyBytes(maxImageBytes); a non-positive value selects
// validator.DefaultMaxImageBytes.
func NewNewsHandler(articles service.ArticleServiceInterface, admins AdminChecker, maxImageBytes int) *NewsHandler {
	if maxImageBytes <= 0 {
		maxImageBytes = validator.DefaultMaxImageBytes
	}
	return &NewsHandler{
		articles: articles,
		admins:   admins,
		maxBody:  MaxBodyBytes(maxImageBytes),
	}
}

// CreateArticleRequest represents the request for creating an article.
// Older clients send the image as "image"; "imageUrl" wins when both are set.
type CreateArticleRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	ImageURL *string `json:"imageUrl"`
	Image    *string `json:"image"`
}

// UpdateArticleRequest represents the full-record update of an article.
type UpdateArticleRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Category  string  `json:"category"`
	Image     *string `json:"image"`
	Published bool    `json:"published"`
}

// ArticleResponse is the admin representation of an article.
type ArticleResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Category  string  `json:"category"`
	Image     *string `json:"image"`
	ImageURL  *string `json:"imageUrl"`
	Published bool    `json:"published"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// SummaryResponse is the public representation of an article.
type SummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Category:  string(a.Category),
		Image:     a.Image,
		ImageURL:  a.Image,
		Published: a.Published,
		CreatedAt: a.CreatedAt.Format(TimeFormat),
		UpdatedAt: a.UpdatedAt.Format(TimeFormat),
	}
}

func toSummaryResponse(s *domain.ArticleSummary) SummaryResponse {
	return SummaryResponse{
		ID:        s.ID,
		Title:     s.Title,
		Excerpt:   s.Excerpt,
		Category:  string(s.Category),
		CreatedAt: s.CreatedAt.Format(TimeFormat),
		ImageURL:  s.ImageURL,
	}
}

// List handles GET /api/news
func (h *NewsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.admins.IsAdmin(c) {
		articles, err := h.articles.ListAll(ctx)
		if err != nil {
			h.fail(c, err, "failed to load articles")
			return
		}
		resp := make([]ArticleResponse, 0, len(articles))
		for i := range articles {
			resp = append(resp, toArticleResponse(&articles[i]))
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	items, err := h.articles.ListPublished(ctx)
	if err != nil {
		h.fail(c, err, "failed to load articles")
		return
	}
	resp := make([]SummaryResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toSummaryResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/news/:id
func (h *NewsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if h.admins.IsAdmin(c) {
		article, err := h.articles.Get(ctx, id)
		if err != nil {
			h.fail(c, err, "failed to load article")
			return
		}
		c.JSON(http.StatusOK, toArticleResponse(article))
		return
	}

	summary, err := h.articles.GetPublished(ctx, id)
	if err != nil {
		h.fail(c, err, "failed to load article")
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// Create handles POST /api/news
func (h *NewsHandler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if !h.bind(c, &req) {
		return
	}

	image := req.ImageURL
	if image == nil {
		image = req.Image
	}

	article, err := h.articles.Create(c.Request.Context(), domain.ArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: domain.Category(req.Category),
		Image:    image,
	})
	if err != nil {
		h.fail(c, err, "failed to create article")
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Update handles PATCH /api/news/:id
func (h *NewsHandler) Update(c *gin.Context) {
	var req UpdateArticleRequest
	if !h.bind(c, &req) {
		return
	}

	article, err := h.articles.Update(c.Request.Context(), c.Param("id"), domain.ArticleInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  domain.Category(req.Category),
		Image:     req.Image,
		Published: req.Published,
	})
	if err != nil {
		h.fail(c, err, "failed to update article")
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// bind decodes the JSON body into dst, reading at most h.maxBody bytes.
// It writes the error response and returns false on failure.
func (h *NewsHandler) bind(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
	return false
}

// Delete handles DELETE /api/news/:id
func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.articles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps service errors to status codes. Internal errors are logged and
// replaced by message so that driver details do not leak to clients.
func (h *NewsHandler) fail(c *gin.Context, err error, message string) {
	var ve validation.Errors
	switch {
	case errors.As(err, &ve):
		details := validator.Messages(ve)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   firstMessage(details),
			"details": details,
		})
	case errors.Is(err, domain.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
	default:
		_ = c.Error(err)
		logger.ErrorContext(c.Request.Context(), message,
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

func firstMessage(details map[string]string) string {
	for _, field := range fieldOrder {
		if msg, ok := details[field]; ok {
			return msg
		}
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return "invalid request"
	}
	return details[keys[0]]
}
