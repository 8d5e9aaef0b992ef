// Package attachment turns a user-selected image file into the data URL
// sent as an article image, and manages the preview shown for it.
package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MaxImageSize is the largest file accepted.
const MaxImageSize = 10 * 1024 * 1024

var (
	ErrTooLarge = errors.New("image exceeds size limit")
	ErrNotImage = errors.New("file is not an image")
	ErrRead     = errors.New("read image file")
)

// Messages shown to the user for the errors above.
const (
	TooLargeMessage   = "File size must be less than 10MB"
	NotImageMessage   = "Please upload an image file"
	ReadFailedMessage = "Error reading file. Please try again."
)

// Message returns the text to show the user for err.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return TooLargeMessage
	case errors.Is(err, ErrNotImage):
		return NotImageMessage
	case errors.Is(err, ErrRead):
		return ReadFailedMessage
	default:
		return err.Error()
	}
}

// File is a user-selected file. ContentType is the type the file declares
// for itself; it is trusted as is.
type File interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

// Previewer is implemented by files that can be previewed directly from a
// local handle. The returned release func frees that handle.
type Previewer interface {
	Preview() (url string, release func(), err error)
}

// Preview is what a form shows for the current image.
type Preview struct {
	URL     string
	release func()
	once    sync.Once
}

// DataPreview is a preview embedded in its URL. It owns no handle.
func DataPreview(url string) *Preview {
	return &Preview{URL: url}
}

// HandlePreview wraps a preview backed by a local handle.
func HandlePreview(url string, release func()) *Preview {
	return &Preview{URL: url, release: release}
}

// FileBacked reports whether the preview holds a handle.
func (p *Preview) FileBacked() bool {
	return p != nil && p.release != nil
}

// Release frees the handle of a file-backed preview. It is a no-op for data
// previews and safe to call more than once.
func (p *Preview) Release() {
	if !p.FileBacked() {
		return
	}
	p.once.Do(p.release)
}

// Attachment is an accepted image.
type Attachment struct {
	// DataURL is the value submitted as the article image.
	DataURL string
	Preview *Preview
}

// Check validates size and declared type without reading the file.
func Check(f File) error {
	if f.Size() > MaxImageSize {
		return ErrTooLarge
	}
	if !strings.HasPrefix(f.ContentType(), "image/") {
		return ErrNotImage
	}
	return nil
}

// Attach validates f and encodes it as a data URL. Files implementing
// Previewer get a handle-backed preview, others a data preview.
func Attach(f File) (*Attachment, error) {
	if err := Check(f); err != nil {
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if len(raw) > MaxImageSize {
		return nil, ErrTooLarge
	}

	dataURL := "data:" + f.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(raw)

	preview := DataPreview(dataURL)
	if p, ok := f.(Previewer); ok {
		url, release, err := p.Preview()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
		preview = HandlePreview(url, release)
	}

	return &Attachment{DataURL: dataURL, Preview: preview}, nil
}

// Slot holds the image of one open form.
type Slot struct {
	mu      sync.Mutex
	current *Attachment
}

// NewSlot creates a slot holding existing, typically the stored image URL
// of an article being edited. An empty existing leaves the slot empty.
func NewSlot(existing string) *Slot {
	s := &Slot{}
	if existing != "" {
		s.current = &Attachment{DataURL: existing, Preview: DataPreview(existing)}
	}
	return s
}

// Set attaches f, releasing the previous preview on success. Validation
// failures leave the slot untouched; a read failure clears it.
func (s *Slot) Set(f File) error {
	att, err := Attach(f)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case errors.Is(err, ErrRead):
		s.replaceLocked(nil)
		return err
	case err != nil:
		return err
	}
	s.replaceLocked(att)
	return nil
}

// Clear removes the image.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(nil)
}

// Close releases the preview when the form goes away. The value is kept.
func (s *Slot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Preview.Release()
	}
}

// Value returns the image to submit, or nil when the slot is empty.
func (s *Slot) Value() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.DataURL == "" {
		return nil
	}
	v := s.current.DataURL
	return &v
}

// PreviewURL returns the URL to show, or "" when empty.
func (s *Slot) PreviewURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Preview.URL
}

func (s *Slot) replaceLocked(next *Attachment) {
	if s.current != nil {
		s.current.Preview.Release()
	}
	s.current = next
}
