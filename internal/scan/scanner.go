// Package scan orchestrates a single scan pass: one frame capture followed
// by one classification, with a per-scan deadline and single-flight
// admission.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ironsheep/coinscan/internal/capture"
	"github.com/ironsheep/coinscan/internal/classify"
)

// ErrScanInFlight is returned when a scan is requested while another one is
// still running. Scans are never queued; the caller retries after the
// current pass finishes.
var ErrScanInFlight = errors.New("scan already in progress")

// DefaultTimeout bounds a full scan pass (capture plus classification) when
// the scanner is constructed with a non-positive timeout.
const DefaultTimeout = 5 * time.Second

// Scanner runs scan passes against one capture source. At most one pass is
// in flight at a time.
type Scanner struct {
	src     capture.Source
	clf     *classify.Classifier
	timeout time.Duration

	mu  sync.Mutex // serializes passes and guards res
	res capture.Resolution
}

// New creates a scanner over the given source and classifier. res selects
// the capture resolution for every pass; the zero value keeps the source's
// native size.
func New(src capture.Source, clf *classify.Classifier, res capture.Resolution, timeout time.Duration) *Scanner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Scanner{src: src, clf: clf, res: res, timeout: timeout}
}

// Scan captures one frame and classifies it.
//
// If another scan is already running the call fails immediately with
// ErrScanInFlight. The whole pass runs under a deadline derived from ctx
// and the scanner's timeout; capture failures surface the capture package's
// sentinels unwrapped.
func (s *Scanner) Scan(ctx context.Context) (*classify.Result, error) {
	if !s.mu.TryLock() {
		return nil, ErrScanInFlight
	}
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	frame, err := s.src.Capture(ctx, s.res)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	result, err := s.clf.Classify(frame)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	return result, nil
}

// SetResolution switches the capture resolution for subsequent passes. It
// blocks until any running pass finishes.
func (s *Scanner) SetResolution(res capture.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = res
}

// Resolution returns the capture resolution used for the next pass.
func (s *Scanner) Resolution() capture.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res
}
