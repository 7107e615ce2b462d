// Package assets ties uploaded image files to project records: it persists
// uploads under a content root and removes superseded files. Removal is
// best-effort; record consistency never depends on a file being present.
package assets

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path uploaded files are served from.
const URLPrefix = "/uploads/"

// ErrUnsupportedType rejects uploads whose extension is not an image type.
var ErrUnsupportedType = errors.New("unsupported file type")

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// Store saves uploaded files to disk under a base directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates the base directory if missing.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the content root, for mounting the static file server.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes an uploaded file under the content root and returns the
// public reference to record on the owning project. The stored name is
// random; only the extension of the original filename is kept.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedExts[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	target := filepath.Join(s.dir, name)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		// don't leave a partial file behind
		os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}

	return URLPrefix + name, nil
}

// Remove deletes the file a reference points at. A missing file is not an
// error: cleanup runs after a record mutation already committed, so the
// caller only ever logs failures.
func (s *Store) Remove(ref string) error {
	if ref == "" {
		return nil
	}
	name := path.Base(strings.TrimPrefix(ref, URLPrefix))
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("bad asset reference %q", ref)
	}

	target := filepath.Join(s.dir, name)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(target)
}

// RemoveLogged is Remove with the best-effort contract applied: failures
// are logged and swallowed.
func (s *Store) RemoveLogged(ref string) {
	if err := s.Remove(ref); err != nil {
		s.logger.Warn("asset cleanup failed", slog.String("ref", ref), slog.Any("err", err))
	}
}
