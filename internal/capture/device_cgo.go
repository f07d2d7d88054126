//go:build cgo && linux

package capture

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// DeviceSource captures stills from a local webcam through OpenCV.
//
// By default the device handle is opened and released around each capture
// so other programs can use the camera between scans. With Hold enabled the
// handle stays open across captures and must be released with Close.
type DeviceSource struct {
	deviceID int
	hold     bool

	mu  sync.Mutex
	cap *gocv.VideoCapture
}

// NewDeviceSource creates a source for the local capture device with the
// given index (0 is the system default webcam).
func NewDeviceSource(deviceID int, hold bool) *DeviceSource {
	return &DeviceSource{deviceID: deviceID, hold: hold}
}

// Capture reads one frame from the device at the requested resolution.
//
// The device handle is released on every exit path unless Hold is set, so
// a failed capture never leaves the camera claimed.
func (d *DeviceSource) Capture(ctx context.Context, res Resolution) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cam, err := d.open()
	if err != nil {
		return nil, err
	}
	if !d.hold {
		defer d.release()
	}

	if !res.IsZero() {
		cam.Set(gocv.VideoCaptureFrameWidth, float64(res.Width))
		cam.Set(gocv.VideoCaptureFrameHeight, float64(res.Height))
	}

	mat := gocv.NewMat()
	defer mat.Close()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrCaptureTimeout, ctx.Err())
		default:
		}
		if cam.Read(&mat) && !mat.Empty() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert frame: %v", ErrDeviceUnavailable, err)
	}

	return fit(img, res), nil
}

// Close releases a held device handle. Safe to call on a non-holding
// source or more than once.
func (d *DeviceSource) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.release()
}

func (d *DeviceSource) open() (*gocv.VideoCapture, error) {
	if d.cap != nil {
		return d.cap, nil
	}
	cam, err := gocv.OpenVideoCapture(d.deviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("%w: device %d did not open", ErrDeviceUnavailable, d.deviceID)
	}
	d.cap = cam
	return cam, nil
}

func (d *DeviceSource) release() error {
	if d.cap == nil {
		return nil
	}
	err := d.cap.Close()
	d.cap = nil
	return err
}
