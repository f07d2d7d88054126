package classify

import "fmt"

// Rule maps a radius/hue window to a coin denomination.
//
// Radius and hue ranges are closed intervals on integer pixel and degree
// units: a measurement exactly on a boundary belongs to the rule. A hue
// range with Min > Max wraps through 0° (e.g. 350..10 covers reds).
type Rule struct {
	// Label identifies the denomination (e.g. "1 Euro").
	Label string `yaml:"label" json:"label"`

	// ValueCents is the face value in Euro cents. Integer cents keep
	// totals exact.
	ValueCents int `yaml:"value_cents" json:"value_cents"`

	// RadiusMin and RadiusMax bound the blob radius in pixels, inclusive.
	RadiusMin int `yaml:"radius_min" json:"radius_min"`
	RadiusMax int `yaml:"radius_max" json:"radius_max"`

	// HueMin and HueMax bound the mean hue in degrees (0-359), inclusive.
	HueMin int `yaml:"hue_min" json:"hue_min"`
	HueMax int `yaml:"hue_max" json:"hue_max"`

	// SatMin is an optional secondary signal: when positive, the blob's
	// mean saturation (0-1) must be at least this value. Zero disables it.
	SatMin float64 `yaml:"sat_min,omitempty" json:"sat_min,omitempty"`
}

// matches reports whether a measured (radius, hue, saturation) triple falls
// inside this rule's ranges. Hue is matched on whole degrees.
func (r Rule) matches(radius, hue int, sat float64) bool {
	if radius < r.RadiusMin || radius > r.RadiusMax {
		return false
	}
	if !hueInRange(hue, r.HueMin, r.HueMax) {
		return false
	}
	if r.SatMin > 0 && sat < r.SatMin {
		return false
	}
	return true
}

// hueInRange checks membership in a closed degree interval, wrapping
// through 0° when min > max.
func hueInRange(hue, min, max int) bool {
	if min <= max {
		return hue >= min && hue <= max
	}
	return hue >= min || hue <= max
}

// Table is an ordered list of denomination rules.
//
// Order is the tie-breaker: the first matching rule wins, so tables must be
// ordered from most-specific to least-specific range. Overlapping ranges are
// legal and resolved purely by position.
type Table []Rule

// Match returns the first rule whose ranges contain the measurement, in
// table order. ok is false when no rule matches.
func (t Table) Match(radius, hue int, sat float64) (rule Rule, ok bool) {
	for _, r := range t {
		if r.matches(radius, hue, sat) {
			return r, true
		}
	}
	return Rule{}, false
}

// RadiusBounds returns the smallest and largest radius any rule accepts.
// Returns (0, 0) for an empty table.
func (t Table) RadiusBounds() (min, max int) {
	if len(t) == 0 {
		return 0, 0
	}
	min, max = t[0].RadiusMin, t[0].RadiusMax
	for _, r := range t[1:] {
		if r.RadiusMin < min {
			min = r.RadiusMin
		}
		if r.RadiusMax > max {
			max = r.RadiusMax
		}
	}
	return min, max
}

// Validate checks the table for structural problems: empty tables, blank
// labels, non-positive values, inverted radius ranges, and hue bounds
// outside 0-359.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("rule table is empty")
	}
	for i, r := range t {
		if r.Label == "" {
			return fmt.Errorf("rule %d: label must not be empty", i)
		}
		if r.ValueCents <= 0 {
			return fmt.Errorf("rule %d (%s): value must be positive", i, r.Label)
		}
		if r.RadiusMin < 1 || r.RadiusMax < r.RadiusMin {
			return fmt.Errorf("rule %d (%s): invalid radius range [%d, %d]", i, r.Label, r.RadiusMin, r.RadiusMax)
		}
		if r.HueMin < 0 || r.HueMin > 359 || r.HueMax < 0 || r.HueMax > 359 {
			return fmt.Errorf("rule %d (%s): hue bounds must be within 0-359", i, r.Label)
		}
		if r.SatMin < 0 || r.SatMin > 1 {
			return fmt.Errorf("rule %d (%s): sat_min must be within 0-1", i, r.Label)
		}
	}
	return nil
}

// DefaultEuroTable returns the built-in Euro denomination table.
//
// Radii are calibrated for the default 480x360 scan preset with the station
// camera at its reference mount height. Copper coins (1, 2, 5 cent) sit in
// the 5-35° hue band, Nordic gold (10, 20, 50 cent) in 36-65°; the bimetal
// 2 Euro is separated by radius alone because its silver ring makes the
// mean hue unstable.
//
// Ordering matters: 50 Cent precedes 2 Euro and 1 Euro because its radius
// band overlaps both and its hue band is the narrower constraint.
func DefaultEuroTable() Table {
	return Table{
		{Label: "50 Cent", ValueCents: 50, RadiusMin: 45, RadiusMax: 49, HueMin: 36, HueMax: 65},
		{Label: "2 Euro", ValueCents: 200, RadiusMin: 48, RadiusMax: 56, HueMin: 0, HueMax: 359},
		{Label: "1 Euro", ValueCents: 100, RadiusMin: 43, RadiusMax: 47, HueMin: 10, HueMax: 60},
		{Label: "20 Cent", ValueCents: 20, RadiusMin: 40, RadiusMax: 44, HueMin: 36, HueMax: 65},
		{Label: "5 Cent", ValueCents: 5, RadiusMin: 38, RadiusMax: 42, HueMin: 5, HueMax: 35},
		{Label: "10 Cent", ValueCents: 10, RadiusMin: 36, RadiusMax: 39, HueMin: 36, HueMax: 65},
		{Label: "2 Cent", ValueCents: 2, RadiusMin: 34, RadiusMax: 37, HueMin: 5, HueMax: 35},
		{Label: "1 Cent", ValueCents: 1, RadiusMin: 29, RadiusMax: 33, HueMin: 5, HueMax: 35},
	}
}
