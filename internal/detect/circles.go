package detect

import (
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Circle is a detected circular candidate region.
//
// Circles are found with a Hough circle transform, which votes for potential
// circle centers at each edge pixel. A candidate carries no denomination
// information; classification is a separate step.
type Circle struct {
	// Center is the detected center point of the circle.
	Center Point `json:"center"`

	// Radius is the detected radius in pixels.
	Radius int `json:"radius"`

	// Confidence indicates detection quality (0.0 to 1.0): the fraction
	// of the circle's perimeter backed by edge pixels.
	Confidence float64 `json:"confidence"`
}

// Params controls the detection pass.
type Params struct {
	// MinRadius and MaxRadius bound the Hough search space in pixels.
	MinRadius int
	MaxRadius int

	// BlurRadius is the Gaussian blur radius applied before edge
	// detection to suppress sensor noise.
	BlurRadius float64

	// EdgeThreshold is the grayscale gradient magnitude (0-255) above
	// which a pixel counts as an edge.
	EdgeThreshold float64

	// VoteFraction is the fraction of the expected circumference votes
	// required for a center to be accepted.
	VoteFraction float64
}

// DefaultParams returns detection parameters tuned for coin-sized blobs
// in a webcam still at the default scan resolution.
func DefaultParams(minRadius, maxRadius int) Params {
	return Params{
		MinRadius:     minRadius,
		MaxRadius:     maxRadius,
		BlurRadius:    1.0,
		EdgeThreshold: 20,
		VoteFraction:  0.6,
	}
}

// Circles finds circular candidates in an image using the Hough circle
// transform.
//
// Pipeline:
//
//  1. Grayscale conversion, then Gaussian blur to suppress sensor noise.
//  2. Gradient-threshold edge detection.
//  3. Accumulator voting: for each radius in [MinRadius, MaxRadius], each
//     edge pixel votes for the centers at that distance, sampled every 1°.
//  4. Peak detection: local maxima exceeding VoteFraction of the expected
//     circumference become candidates, then each candidate is verified
//     against the edge map (at least half the perimeter must be backed by
//     edge pixels).
//  5. Overlapping candidates are merged, keeping the highest-confidence one.
//
// An image with no circular content yields an empty slice, never an error.
// Results are sorted by confidence, highest first.
func Circles(img image.Image, p Params) []Circle {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 || p.MinRadius < 1 || p.MaxRadius < p.MinRadius {
		return nil
	}

	gray := imaging.Grayscale(img)
	blurred := blur.Gaussian(gray, p.BlurRadius)
	edges := edgeMap(blurred, p.EdgeThreshold)

	circles := make([]Circle, 0)

	for radius := p.MinRadius; radius <= p.MaxRadius; radius++ {
		accumulator := make([][]int, height)
		for y := 0; y < height; y++ {
			accumulator[y] = make([]int, width)
		}

		// Vote for circle centers. 1° sampling keeps the votes for a
		// well-formed circle concentrated within a pixel of the true
		// center even at large radii.
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				for angle := 0; angle < 360; angle++ {
					rad := float64(angle) * math.Pi / 180
					cx := x - int(math.Round(float64(radius)*math.Cos(rad)))
					cy := y - int(math.Round(float64(radius)*math.Sin(rad)))
					if cx >= 0 && cx < width && cy >= 0 && cy < height {
						accumulator[cy][cx]++
					}
				}
			}
		}

		threshold := int(float64(2*radius) * p.VoteFraction)
		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				if accumulator[y][x] < threshold {
					continue
				}
				if !isLocalMax(accumulator, x, y, width, height) {
					continue
				}
				// Accumulator peaks can be voting artifacts (the caustic
				// rings a wrong-radius hypothesis produces around a real
				// circle). Verify the hypothesis against the edge map.
				support := perimeterSupport(edges, x, y, radius, width, height)
				if support < 0.5 {
					continue
				}
				circles = append(circles, Circle{
					Center:     Point{X: x + bounds.Min.X, Y: y + bounds.Min.Y},
					Radius:     radius,
					Confidence: support,
				})
			}
		}
	}

	// Sort before merging so the strongest radius hypothesis survives
	// when the same physical circle is detected at adjacent radii.
	sort.Slice(circles, func(i, j int) bool {
		return circles[i].Confidence > circles[j].Confidence
	})

	return mergeOverlapping(circles)
}

// perimeterSupport measures how much of a hypothesized circle's perimeter
// is backed by edge pixels.
//
// The perimeter is sampled every 5°; a sample counts as supported when an
// edge pixel lies within its 3x3 neighborhood, which absorbs rasterization
// error. Returns the supported fraction in [0, 1].
func perimeterSupport(edges [][]bool, cx, cy, radius, width, height int) float64 {
	const step = 5
	supported := 0
	samples := 0

	for angle := 0; angle < 360; angle += step {
		rad := float64(angle) * math.Pi / 180
		px := cx + int(math.Round(float64(radius)*math.Cos(rad)))
		py := cy + int(math.Round(float64(radius)*math.Sin(rad)))
		samples++

		hit := false
		for dy := -1; dy <= 1 && !hit; dy++ {
			for dx := -1; dx <= 1 && !hit; dx++ {
				nx, ny := px+dx, py+dy
				if nx >= 0 && nx < width && ny >= 0 && ny < height && edges[ny][nx] {
					hit = true
				}
			}
		}
		if hit {
			supported++
		}
	}

	return float64(supported) / float64(samples)
}

// edgeMap performs gradient-based edge detection on a preprocessed image.
//
// Pixels where the grayscale difference to the right or lower neighbor
// exceeds the threshold are marked as edges. Border pixels are never edges.
func edgeMap(img image.Image, threshold float64) [][]bool {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}

			c := grayValue(img, x+bounds.Min.X, y+bounds.Min.Y)
			cx := grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y)
			cy := grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y)

			dx := math.Abs(float64(c) - float64(cx))
			dy := math.Abs(float64(c) - float64(cy))

			if dx > threshold || dy > threshold {
				edges[y][x] = true
			}
		}
	}

	return edges
}

// isLocalMax reports whether the accumulator cell at (x, y) is a local
// maximum within an 11x11 neighborhood.
func isLocalMax(accumulator [][]int, x, y, width, height int) bool {
	for dy := -5; dy <= 5; dy++ {
		for dx := -5; dx <= 5; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny, nx := y+dy, x+dx
			if ny >= 0 && ny < height && nx >= 0 && nx < width {
				if accumulator[ny][nx] > accumulator[y][x] {
					return false
				}
			}
		}
	}
	return true
}

// grayValue converts a pixel to grayscale using ITU-R BT.601 luminance weights.
// Formula: Y = 0.299*R + 0.587*G + 0.114*B
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}

// mergeOverlapping removes circles with overlapping centers.
//
// Two circles are considered the same detection if the distance between
// their centers is less than the average of their radii. The input must be
// sorted by confidence; the first occurrence wins.
func mergeOverlapping(circles []Circle) []Circle {
	if len(circles) == 0 {
		return circles
	}

	merged := make([]Circle, 0, len(circles))
	for _, c := range circles {
		duplicate := false
		for _, m := range merged {
			dx := c.Center.X - m.Center.X
			dy := c.Center.Y - m.Center.Y
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist < float64(c.Radius+m.Radius)/2 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			merged = append(merged, c)
		}
	}
	return merged
}
