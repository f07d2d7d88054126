package classify

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/coinscan/internal/detect"
)

// newFrame creates a white frame, the synthetic stand-in for an empty
// scanning surface.
func newFrame(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

// drawCoin fills a disk with a uniform HSV color.
func drawCoin(img *image.RGBA, cx, cy, radius int, hue float64) {
	c := colorful.Hsv(hue, 0.8, 0.7)
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, c)
			}
		}
	}
}

func TestClassify_NilFrame(t *testing.T) {
	c, err := New(DefaultEuroTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Classify(nil); err != ErrInvalidFrame {
		t.Errorf("nil frame: got %v, want ErrInvalidFrame", err)
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := c.Classify(empty); err != ErrInvalidFrame {
		t.Errorf("empty frame: got %v, want ErrInvalidFrame", err)
	}
}

func TestClassify_BlankFrame(t *testing.T) {
	c, err := New(DefaultEuroTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := c.Classify(newFrame(200, 200))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(result.Coins) != 0 {
		t.Errorf("blank frame: got %d coins, want 0", len(result.Coins))
	}
	if result.TotalCents != 0 {
		t.Errorf("blank frame: got total %d, want 0", result.TotalCents)
	}
}

func TestClassify_OneEuro(t *testing.T) {
	c, err := New(DefaultEuroTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	frame := newFrame(200, 200)
	drawCoin(frame, 100, 100, 45, 28)

	result, err := c.Classify(frame)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(result.Coins) != 1 {
		t.Fatalf("got %d coins, want 1", len(result.Coins))
	}
	coin := result.Coins[0]
	if coin.Label != "1 Euro" {
		t.Errorf("got label %q (radius %d, hue %.1f), want %q",
			coin.Label, coin.Blob.Radius, coin.Blob.MeanHue, "1 Euro")
	}
	if coin.ValueCents != 100 {
		t.Errorf("got value %d, want 100", coin.ValueCents)
	}
	if result.TotalCents != 100 {
		t.Errorf("got total %d, want 100", result.TotalCents)
	}
	if math.Abs(coin.Blob.MeanHue-28) > 3 {
		t.Errorf("mean hue %.1f, want ~28", coin.Blob.MeanHue)
	}
}

func TestClassify_UnknownExcludedFromTotal(t *testing.T) {
	c, err := New(DefaultEuroTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// A blue disk of 1-Euro size matches no denomination rule.
	frame := newFrame(200, 200)
	drawCoin(frame, 100, 100, 45, 200)

	result, err := c.Classify(frame)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(result.Coins) != 1 {
		t.Fatalf("unknown blob must still be reported, got %d coins", len(result.Coins))
	}
	if result.Coins[0].Label != UnknownLabel {
		t.Errorf("got label %q, want %q", result.Coins[0].Label, UnknownLabel)
	}
	if result.Coins[0].ValueCents != 0 {
		t.Errorf("unknown coin value: got %d, want 0", result.Coins[0].ValueCents)
	}
	if result.TotalCents != 0 {
		t.Errorf("unknown coin must not count, got total %d", result.TotalCents)
	}
}

func TestClassify_MixedCoins(t *testing.T) {
	c, err := New(DefaultEuroTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	frame := newFrame(280, 150)
	drawCoin(frame, 75, 75, 45, 28)  // 1 Euro
	drawCoin(frame, 205, 75, 47, 45) // 50 Cent

	result, err := c.Classify(frame)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(result.Coins) != 2 {
		t.Fatalf("got %d coins, want 2", len(result.Coins))
	}
	if result.TotalCents != 150 {
		for _, coin := range result.Coins {
			t.Logf("coin %q radius %d hue %.1f", coin.Label, coin.Blob.Radius, coin.Blob.MeanHue)
		}
		t.Errorf("got total %d, want 150", result.TotalCents)
	}
}

func TestClassify_TotalIsIdempotent(t *testing.T) {
	c, err := New(DefaultEuroTable())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	frame := newFrame(200, 200)
	drawCoin(frame, 100, 100, 45, 28)

	result, err := c.Classify(frame)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if got := Total(result.Coins); got != result.TotalCents {
		t.Errorf("recomputed total %d differs from reported %d", got, result.TotalCents)
	}
	if got := Total(result.Coins); got != Total(result.Coins) {
		t.Error("Total is not stable across recomputation")
	}
}

func TestClassify_CenterCrop(t *testing.T) {
	c, err := New(DefaultEuroTable(), WithCenterCrop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	frame := newFrame(240, 240)
	drawCoin(frame, 120, 120, 30, 20) // 1 Cent, centered
	drawCoin(frame, 32, 32, 30, 20)   // same coin in the corner, outside the center region

	result, err := c.Classify(frame)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(result.Coins) != 1 {
		t.Fatalf("center crop: got %d coins, want 1", len(result.Coins))
	}
	coin := result.Coins[0]
	if coin.Label != "1 Cent" {
		t.Errorf("got label %q, want %q", coin.Label, "1 Cent")
	}
	// Blob coordinates must be reported in frame space, not crop space.
	if dx, dy := coin.Blob.Center.X-120, coin.Blob.Center.Y-120; dx*dx+dy*dy > 36 {
		t.Errorf("blob center (%d,%d), want near (120,120)", coin.Blob.Center.X, coin.Blob.Center.Y)
	}
}

func TestMeasure_UniformDisk(t *testing.T) {
	frame := newFrame(100, 100)
	drawCoin(frame, 50, 50, 30, 120)

	blob := measure(frame, detect.Circle{Center: detect.Point{X: 50, Y: 50}, Radius: 30, Confidence: 1})

	if math.Abs(blob.MeanHue-120) > 2 {
		t.Errorf("mean hue %.2f, want ~120", blob.MeanHue)
	}
	if math.Abs(blob.MeanSat-0.8) > 0.05 {
		t.Errorf("mean sat %.2f, want ~0.8", blob.MeanSat)
	}
	if math.Abs(blob.MeanVal-0.7) > 0.05 {
		t.Errorf("mean val %.2f, want ~0.7", blob.MeanVal)
	}
}

func TestMeasure_CircularHueMean(t *testing.T) {
	// Half the disk at 350°, half at 10°: the arithmetic mean would be a
	// nonsense 180°, the circular mean is ~0°.
	frame := newFrame(100, 100)
	left := colorful.Hsv(350, 0.8, 0.7)
	right := colorful.Hsv(10, 0.8, 0.7)
	for y := 20; y <= 80; y++ {
		for x := 20; x <= 80; x++ {
			dx, dy := x-50, y-50
			if dx*dx+dy*dy > 30*30 {
				continue
			}
			if x < 50 {
				frame.Set(x, y, left)
			} else {
				frame.Set(x, y, right)
			}
		}
	}

	blob := measure(frame, detect.Circle{Center: detect.Point{X: 50, Y: 50}, Radius: 30, Confidence: 1})

	dist := math.Min(blob.MeanHue, 360-blob.MeanHue)
	if dist > 3 {
		t.Errorf("circular mean hue %.2f, want within 3° of 0°", blob.MeanHue)
	}
}
