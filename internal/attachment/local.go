package attachment

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// LocalFile is a file on disk whose declared type comes from its extension.
// Its preview keeps the file open until released.
type LocalFile struct {
	path        string
	size        int64
	contentType string
}

// OpenLocal stats path and returns it as a File.
func OpenLocal(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &LocalFile{
		path:        path,
		size:        info.Size(),
		contentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func (f *LocalFile) Name() string        { return filepath.Base(f.path) }
func (f *LocalFile) Size() int64         { return f.size }
func (f *LocalFile) ContentType() string { return f.contentType }

// Open implements File.
func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// Preview implements Previewer with a file:// URL held open by a handle.
func (f *LocalFile) Preview() (string, func(), error) {
	h, err := os.Open(f.path)
	if err != nil {
		return "", nil, err
	}
	abs, err := filepath.Abs(f.path)
	if err != nil {
		_ = h.Close()
		return "", nil, err
	}
	return "file://" + filepath.ToSlash(abs), func() { _ = h.Close() }, nil
}
