package validator

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Faisalali0159/besofy/internal/domain"
)

// DefaultMaxImageBytes is the largest embedded image accepted.
const DefaultMaxImageBytes = 10 * 1024 * 1024

// Validator provides validation methods for article input.
type Validator struct {
	maxImageBytes int
}

// NewValidator creates a new Validator instance. A non-positive
// maxImageBytes selects DefaultMaxImageBytes.
func NewValidator(maxImageBytes int) *Validator {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &Validator{maxImageBytes: maxImageBytes}
}

// ValidateArticle validates the editable fields of an article. Categories
// are not restricted to the known set.
func (v *Validator) ValidateArticle(in *domain.ArticleInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title,
			validation.By(notBlank("title is required")),
		),
		validation.Field(&in.Content,
			validation.By(notBlank("content is required")),
		),
		validation.Field(&in.Category,
			validation.By(notBlank("category is required")),
		),
		validation.Field(&in.Image,
			validation.By(v.imageRule),
		),
	)
}

// notBlank rejects values that are empty after trimming whitespace.
func notBlank(message string) validation.RuleFunc {
	return func(value interface{}) error {
		var s string
		switch val := value.(type) {
		case string:
			s = val
		case domain.Category:
			s = string(val)
		default:
			return nil
		}
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", message)
		}
		return nil
	}
}

// imageRule accepts a nil or empty image, an http(s) URL, a site-relative
// path, or a base64 data URL whose payload is an image within the limit.
func (v *Validator) imageRule(value interface{}) error {
	p, ok := value.(*string)
	if !ok || p == nil || *p == "" {
		return nil
	}
	img := *p

	switch {
	case strings.HasPrefix(img, "data:"):
		return v.validateDataURL(img)
	case strings.HasPrefix(img, "/"):
		return nil
	default:
		if err := is.URL.Validate(img); err != nil {
			return validation.NewError("invalid_image", "image must be a URL or data URL")
		}
		u, err := url.Parse(img)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return validation.NewError("invalid_image", "image must be a URL or data URL")
		}
		return nil
	}
}

func (v *Validator) validateDataURL(img string) error {
	mediaType, data, err := DecodeDataURL(img)
	if err != nil {
		return validation.NewError("invalid_image", err.Error())
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return validation.NewError("invalid_image_type", "image must be an image file")
	}
	if len(data) > v.maxImageBytes {
		return validation.NewError("image_too_large",
			fmt.Sprintf("image must be less than %d bytes", v.maxImageBytes))
	}
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return validation.NewError("invalid_image_content", "image data is not a recognised image format")
	}
	return nil
}

// DecodeDataURL splits a base64 data URL into its media type and payload.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	mediaType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("data URL must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mediaType, data, nil
}

// Messages flattens ozzo validation errors into field -> message pairs.
func Messages(err error) map[string]string {
	out := make(map[string]string)
	if ve, ok := err.(validation.Errors); ok {
		for field, fieldErr := range ve {
			out[field] = fieldErr.Error()
		}
	} else if err != nil {
		out["unknown"] = err.Error()
	}
	return out
}
