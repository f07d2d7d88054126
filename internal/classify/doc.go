// Package classify labels detected circular blobs as Euro coins.
//
// Classification is a fixed decision table over two scalar features per
// blob: radius in pixels and mean hue in HSV degrees. The table is ordered
// configuration data injected at construction time; the first matching rule
// wins, and a blob matching no rule is labeled "unknown" and excluded from
// the scan total while still being reported.
//
// Hue is measured as a circular mean over the blob's interior disk, with a
// thin border ring discarded to keep edge antialiasing out of the sample.
// Mean saturation and value are carried as optional secondary signals.
//
// Classification is a pure function of (frame, table): no state carries
// between calls, frames are never retained, and an empty detection result
// is a normal outcome rather than an error.
package classify
