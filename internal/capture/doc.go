// Package capture acquires single still frames from a camera.
//
// The Source interface is the Frame Acquirer boundary: one Capture call
// produces one caller-owned image.Image or fails with one of two sentinel
// errors: ErrDeviceUnavailable when no camera responds or the payload is
// unusable, ErrCaptureTimeout when the bounded wait expires. Sources never
// retry; the caller decides whether to scan again.
//
// Three backends are provided:
//
//   - SnapshotSource: one HTTP GET against an IP webcam's JPEG snapshot
//     endpoint per capture.
//   - DeviceSource: the local webcam via OpenCV (cgo builds on Linux;
//     a stub that reports ErrDeviceUnavailable elsewhere). The handle is
//     acquired and released around each capture, or held across captures
//     when configured.
//   - FileSource: a still from disk, for development and tests.
//
// Resolutions are enumerated presets; the classifier's built-in radius
// calibration assumes the default 480x360 preset.
package capture
