package classify

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/coinscan/internal/detect"
)

// ErrInvalidFrame is returned when a frame is nil or has empty bounds.
var ErrInvalidFrame = errors.New("invalid frame")

// UnknownLabel marks blobs that matched no denomination rule. Unknown coins
// are reported for UI feedback but never counted in the total.
const UnknownLabel = "unknown"

// Blob is a measured circular region within one frame. Blobs are ephemeral;
// they exist only inside a single classification call and its result.
type Blob struct {
	// Center is the blob's center in frame coordinates.
	Center detect.Point `json:"center"`

	// Radius is the detected radius in pixels.
	Radius int `json:"radius"`

	// MeanHue is the circular mean hue over the interior disk, in
	// degrees (0-359.99).
	MeanHue float64 `json:"mean_hue"`

	// MeanSat and MeanVal are the mean HSV saturation and value (0-1),
	// secondary signals only.
	MeanSat float64 `json:"mean_sat"`
	MeanVal float64 `json:"mean_val"`

	// Confidence is the underlying circle detection confidence.
	Confidence float64 `json:"confidence"`
}

// Coin is one classified blob.
type Coin struct {
	// Label is the matched rule's denomination, or UnknownLabel.
	Label string `json:"label"`

	// ValueCents is the face value in Euro cents; 0 for unknown blobs.
	ValueCents int `json:"value_cents"`

	// Blob carries the measurements the classification was based on.
	Blob Blob `json:"blob"`
}

// Result is the outcome of classifying one frame.
type Result struct {
	// Coins lists every detected blob with its label, unknowns included.
	Coins []Coin `json:"coins"`

	// TotalCents is the summed face value of all non-unknown coins.
	TotalCents int `json:"total_cents"`
}

// Total sums the face values of all non-unknown coins. Recomputing the
// total from the same coin list always yields the same value.
func Total(coins []Coin) int {
	total := 0
	for _, c := range coins {
		if c.Label != UnknownLabel {
			total += c.ValueCents
		}
	}
	return total
}

// Classifier maps detected blobs to denominations using an ordered rule
// table fixed at construction time. Classification is a pure function of
// the frame and the table; no state carries between calls, so a Classifier
// is safe for concurrent use.
type Classifier struct {
	rules      Table
	params     detect.Params
	centerOnly bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithDetectParams overrides the detection parameters derived from the
// rule table. Useful for synthetic-table tests and unusual optics.
func WithDetectParams(p detect.Params) Option {
	return func(c *Classifier) { c.params = p }
}

// WithCenterCrop restricts detection to the central half of the frame,
// matching a scan station where coins are placed under the camera center.
func WithCenterCrop() Option {
	return func(c *Classifier) { c.centerOnly = true }
}

// New creates a Classifier for the given rule table.
//
// The Hough search span is derived from the table's radius bounds, widened
// by a quarter in both directions so that circles falling just outside every
// rule are still detected and reported as unknown.
func New(rules Table, opts ...Option) (*Classifier, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	minR, maxR := rules.RadiusBounds()
	c := &Classifier{
		rules:  rules,
		params: detect.DefaultParams(max(5, minR-minR/4), maxR+maxR/4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Rules returns a copy of the classifier's rule table.
func (c *Classifier) Rules() Table {
	out := make(Table, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify finds circular blobs in a frame and labels each one against the
// rule table.
//
// A frame without detectable coins yields an empty result with total 0,
// not an error; only a nil or empty frame is rejected with ErrInvalidFrame.
// The frame is not retained.
func (c *Classifier) Classify(frame image.Image) (*Result, error) {
	if frame == nil {
		return nil, ErrInvalidFrame
	}
	bounds := frame.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ErrInvalidFrame
	}

	region := frame
	offsetX, offsetY := 0, 0
	if c.centerOnly {
		w, h := bounds.Dx()/2, bounds.Dy()/2
		region = imaging.CropCenter(frame, w, h)
		offsetX = bounds.Min.X + (bounds.Dx()-w)/2
		offsetY = bounds.Min.Y + (bounds.Dy()-h)/2
	}

	circles := detect.Circles(region, c.params)

	coins := make([]Coin, 0, len(circles))
	for _, circle := range circles {
		blob := measure(region, circle)
		blob.Center.X += offsetX
		blob.Center.Y += offsetY

		hue := int(math.Round(blob.MeanHue)) % 360
		rule, ok := c.rules.Match(blob.Radius, hue, blob.MeanSat)
		if !ok {
			coins = append(coins, Coin{Label: UnknownLabel, Blob: blob})
			continue
		}
		coins = append(coins, Coin{Label: rule.Label, ValueCents: rule.ValueCents, Blob: blob})
	}

	return &Result{Coins: coins, TotalCents: Total(coins)}, nil
}

// interiorMargin is the fraction of the radius stripped from the sampling
// disk to keep edge antialiasing out of the hue measurement.
const interiorMargin = 0.15

// measure computes the mean HSV statistics over a circle's interior disk.
//
// Hue is a circular mean (summed unit vectors, then atan2) so that copper
// tones near 0° average correctly. Pixels outside the frame are skipped.
func measure(frame image.Image, circle detect.Circle) Blob {
	bounds := frame.Bounds()
	cx := circle.Center.X
	cy := circle.Center.Y
	inner := float64(circle.Radius) * (1 - interiorMargin)
	innerSq := inner * inner

	var sinSum, cosSum, satSum, valSum float64
	count := 0

	for y := cy - circle.Radius; y <= cy+circle.Radius; y++ {
		for x := cx - circle.Radius; x <= cx+circle.Radius; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
				continue
			}
			dx := float64(x - cx)
			dy := float64(y - cy)
			if dx*dx+dy*dy > innerSq {
				continue
			}

			col, ok := colorful.MakeColor(frame.At(x, y))
			if !ok {
				continue
			}
			h, s, v := col.Hsv()
			rad := h * math.Pi / 180
			sinSum += math.Sin(rad)
			cosSum += math.Cos(rad)
			satSum += s
			valSum += v
			count++
		}
	}

	blob := Blob{
		Center:     circle.Center,
		Radius:     circle.Radius,
		Confidence: circle.Confidence,
	}
	if count == 0 {
		return blob
	}

	meanHue := math.Atan2(sinSum, cosSum) * 180 / math.Pi
	if meanHue < 0 {
		meanHue += 360
	}
	blob.MeanHue = meanHue
	blob.MeanSat = satSum / float64(count)
	blob.MeanVal = valSum / float64(count)
	return blob
}
