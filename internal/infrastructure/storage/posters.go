package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"clubvenue/internal/ports/output"
)

var _ output.PosterStore = (*LocalPosterStore)(nil)

// MaxPosterBytes caps a single upload.
const MaxPosterBytes = 5 << 20

var allowedExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// ErrPosterTooLarge is returned when an upload exceeds MaxPosterBytes.
var ErrPosterTooLarge = errors.New("poster exceeds size limit")

// LocalPosterStore writes posters under dir and serves them from baseURL.
type LocalPosterStore struct {
	dir     string
	baseURL string
}

func NewLocalPosterStore(dir, baseURL string) *LocalPosterStore {
	return &LocalPosterStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalPosterStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("poster %q: unsupported file type", filename)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create poster dir: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create poster: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, MaxPosterBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxPosterBytes {
		err = ErrPosterTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write poster: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Remove deletes a poster previously returned by Save. A missing file is not an error.
func (s *LocalPosterStore) Remove(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("poster %q: not served from %s", url, s.baseURL)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove poster: %w", err)
	}
	return nil
}

// Dir is the directory posters are written to.
func (s *LocalPosterStore) Dir() string { return s.dir }
