package handler

import (
	"encoding/base64"
	"time"
)

// TimeFormat is the standard time format for API responses (RFC3339)
const TimeFormat = time.RFC3339

// fieldOrder fixes which validation message is reported first.
var fieldOrder = []string{"title", "content", "category", "image"}

// textFieldAllowance is the body room left for title, content, category and
// JSON framing on top of the encoded image.
const textFieldAllowance = 1 << 20

// MaxBodyBytes is the largest create or update body accepted when images
// may be up to maxImageBytes before base64 encoding.
func MaxBodyBytes(maxImageBytes int) int64 {
	return int64(base64.StdEncoding.EncodedLen(maxImageBytes)) + textFieldAllowance
}
