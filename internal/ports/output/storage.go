package output

import (
	"context"
	"io"
)

// PosterStore persists an uploaded poster and returns its public URL.
type PosterStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Remove deletes a poster by the URL Save returned. Unknown posters are not an error.
	Remove(ctx context.Context, url string) error
}
