// Package imagestore holds doctor profile images. Store is the collaborator
// boundary; Disk serves the images from the local filesystem, normalized to a
// bounded size, behind the same interface a hosted store would implement.
package imagestore

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Store interface {
	// Save persists the uploaded image and returns its public URL path.
	Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}

// Disk writes normalized JPEGs under Dir and serves them at BaseURL.
type Disk struct {
	Dir     string
	BaseURL string
	Log     zerolog.Logger
}

func NewDisk(dir, baseURL string, log zerolog.Logger) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{Dir: dir, BaseURL: baseURL, Log: log}, nil
}

const maxEdge = 800

func (d *Disk) Save(_ context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image %q: %w", header.Filename, err)
	}

	// Bound the larger edge; Fit keeps aspect ratio and never upscales.
	img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)

	filename := uuid.NewString() + ".jpg"
	path := filepath.Join(d.Dir, filename)
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		// Cleanup failures are non-fatal.
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			d.Log.Warn().Err(rmErr).Str("path", path).Msg("remove partial image")
		}
		return "", fmt.Errorf("save image: %w", err)
	}

	return d.BaseURL + "/" + filename, nil
}
