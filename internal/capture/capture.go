package capture

import (
	"context"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// Failure taxonomy for a capture attempt. Both are terminal to the scan;
// the caller decides whether to re-scan.
var (
	// ErrDeviceUnavailable is returned when no camera responds or the
	// device produces an unusable payload.
	ErrDeviceUnavailable = errors.New("camera device unavailable")

	// ErrCaptureTimeout is returned when a frame is not produced within
	// the bounded wait of the capture context.
	ErrCaptureTimeout = errors.New("frame capture timed out")
)

// Resolution is a capture frame size in pixels. The zero value means
// "whatever the source produces natively".
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Enumerated capture presets backing the resolution toggle. Small is the
// default; the denomination table's radius calibration assumes it, so Scan
// is an alias for it.
var (
	Small = Resolution{Width: 480, Height: 360}
	Large = Resolution{Width: 800, Height: 600}
	Scan  = Small
)

// Preset resolves a preset name ("small", "scan", "large") to its
// resolution. ok is false for unknown names.
func Preset(name string) (res Resolution, ok bool) {
	switch name {
	case "small":
		return Small, true
	case "scan":
		return Scan, true
	case "large":
		return Large, true
	}
	return Resolution{}, false
}

// IsZero reports whether the resolution requests the source's native size.
func (r Resolution) IsZero() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Source produces one still frame per call.
//
// Capture blocks until a frame is available, the context expires
// (ErrCaptureTimeout), or the device fails (ErrDeviceUnavailable). The
// returned frame is owned by the caller and never retained by the source.
// Sources do not retry; re-invoking Capture is the caller's policy.
type Source interface {
	Capture(ctx context.Context, res Resolution) (image.Image, error)
}

// fit scales a decoded frame to the requested resolution. Frames already
// at the requested size, or requests for native size, pass through.
func fit(img image.Image, res Resolution) image.Image {
	if res.IsZero() {
		return img
	}
	b := img.Bounds()
	if b.Dx() == res.Width && b.Dy() == res.Height {
		return img
	}
	return imaging.Resize(img, res.Width, res.Height, imaging.Lanczos)
}
