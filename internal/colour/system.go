// Package colour implements conversion between colour systems.
//
// All conversions route through a canonical RGB pivot with channels in
// [0, 1]. Each supported system knows how to parse its payload text, how to
// convert to and from the pivot, and how to render a display string.
package colour

// System identifies a supported colour system.
type System int

const (
	SystemRGB System = iota
	SystemHex
	SystemYIQ
	SystemHLS
	SystemHSL
	SystemHSV
)

// Systems lists every supported system in enumeration order. Result fan-out
// follows this order.
var Systems = []System{SystemRGB, SystemHex, SystemYIQ, SystemHLS, SystemHSL, SystemHSV}

// TagLength is the number of leading query bytes that select a system.
const TagLength = 3

// ParseSystem resolves a 3-letter system tag. Matching is case-sensitive;
// anything other than the six known lowercase tags is rejected.
func ParseSystem(tag string) (System, bool) {
	switch tag {
	case "rgb":
		return SystemRGB, true
	case "hex":
		return SystemHex, true
	case "yiq":
		return SystemYIQ, true
	case "hls":
		return SystemHLS, true
	case "hsl":
		return SystemHSL, true
	case "hsv":
		return SystemHSV, true
	default:
		return 0, false
	}
}

// Tag returns the 3-letter tag for a system.
func (s System) Tag() string {
	switch s {
	case SystemRGB:
		return "rgb"
	case SystemHex:
		return "hex"
	case SystemYIQ:
		return "yiq"
	case SystemHLS:
		return "hls"
	case SystemHSL:
		return "hsl"
	case SystemHSV:
		return "hsv"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (s System) String() string {
	return s.Tag()
}

// Value is a colour in the native representation of one system: a numeric
// triple for every system except hex, which carries a bare 6-digit token.
type Value struct {
	System System

	// Triple holds the three numeric fields for non-hex systems, in the
	// system's native field order and ranges.
	Triple [3]float64

	// Hex holds the lowercase 6-digit token (no "#") for SystemHex.
	Hex string
}
