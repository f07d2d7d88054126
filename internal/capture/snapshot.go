package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// SnapshotSource captures stills from an IP webcam's JPEG snapshot endpoint.
//
// Each Capture issues one HTTP GET and decodes the returned JPEG; no device
// handle is held between calls. Network failures and bad payloads map to
// ErrDeviceUnavailable, an expired context to ErrCaptureTimeout.
type SnapshotSource struct {
	client *resty.Client
	url    string
}

// NewSnapshotSource creates a snapshot source for the given URL. The
// timeout is a transport-level ceiling; per-capture bounds come from the
// Capture context.
func NewSnapshotSource(url string, timeout time.Duration) *SnapshotSource {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "image/jpeg")

	return &SnapshotSource{
		client: client,
		url:    url,
	}
}

// Capture fetches and decodes one snapshot, scaled to the requested
// resolution.
func (s *SnapshotSource) Capture(ctx context.Context, res Resolution) (image.Image, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", ErrCaptureTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: snapshot returned status %s", ErrDeviceUnavailable, resp.Status())
	}

	body := resp.Body()
	if !isValidJPEG(body) {
		return nil, fmt.Errorf("%w: snapshot payload is not a JPEG frame", ErrDeviceUnavailable)
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode snapshot: %v", ErrDeviceUnavailable, err)
	}

	return fit(img, res), nil
}

// isValidJPEG checks the SOI and EOI markers so truncated camera responses
// are rejected before the decoder sees them.
func isValidJPEG(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	if data[0] != 0xFF || data[1] != 0xD8 {
		return false
	}
	return data[len(data)-2] == 0xFF && data[len(data)-1] == 0xD9
}
