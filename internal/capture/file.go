package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
)

// FileSource serves a still image from disk as if it were a camera. It
// exists for development rigs and tests; classification results are
// identical to a live capture of the same scene.
type FileSource struct {
	path string
}

// NewFileSource creates a source that decodes the image at path on every
// Capture call.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Capture decodes the file, scaled to the requested resolution. A missing
// or undecodable file maps to ErrDeviceUnavailable, mirroring a camera
// that is not present.
func (f *FileSource) Capture(ctx context.Context, res Resolution) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureTimeout, err)
	}
	img, err := Load(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return fit(img, res), nil
}

// Load decodes a PNG, JPEG, or GIF image from disk at its native size.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
