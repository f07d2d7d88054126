// Package detect finds circular candidate regions in a captured frame.
//
// Detection uses a Hough circle transform over a gradient edge map. The
// pipeline is deliberately simple: grayscale, Gaussian blur, gradient
// thresholding, accumulator voting per radius, then peak detection and
// duplicate merging. It works best on high-contrast stills of coins on a
// plain background, which is the scanning setup this project targets.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward, Y increasing downward.
//
// # Confidence Scores
//
// Each candidate carries a confidence in [0, 1]: the fraction of its
// perimeter backed by edge pixels after the accumulator peak is verified
// against the edge map. 1.0 means the full outline is visible; candidates
// with less than half their perimeter supported are discarded.
//
// # Performance
//
// Voting is O(edge pixels × radii × 360). Keep the radius span tight; the
// classifier derives it from the denomination table rather than scanning
// every possible size.
package detect
