//go:build !cgo || !linux

package capture

import (
	"context"
	"fmt"
	"image"
)

// DeviceSource needs OpenCV through cgo; this stub stands in on builds
// without it and reports the device as unavailable. Use SnapshotSource or
// FileSource on such builds.
type DeviceSource struct {
	deviceID int
	hold     bool
}

// NewDeviceSource creates a stub source for the given device index.
func NewDeviceSource(deviceID int, hold bool) *DeviceSource {
	return &DeviceSource{deviceID: deviceID, hold: hold}
}

// Capture always fails with ErrDeviceUnavailable.
func (d *DeviceSource) Capture(ctx context.Context, res Resolution) (image.Image, error) {
	return nil, fmt.Errorf("%w: binary built without OpenCV device support", ErrDeviceUnavailable)
}

// Close is a no-op on the stub.
func (d *DeviceSource) Close() error { return nil }
