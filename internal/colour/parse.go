package colour

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsable signals that payload text is not a colour in the requested
// system. It is an expected outcome, not a failure: callers translate it to
// an empty result set without logging.
var ErrUnparsable = errors.New("colour: unparsable payload")

// hexPattern matches a bare hex token of 3 or 6 digits (no "#").
var hexPattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// stripped are decorative substrings removed before numeric parsing: the
// system tags themselves plus characters users paste from CSS-style or
// degree notation.
var stripped = []string{"rgb", "hex", "yiq", "hls", "hsl", "hsv", "(", ")", " ", "%", "°"}

// parseTriple splits comma-separated payload text into exactly three floats.
// Decorative substrings are stripped first, so inputs like "(100, 60%, 20°)"
// parse the same as "100,60,20". Returns ErrUnparsable on wrong arity or a
// non-numeric field.
func parseTriple(text string) ([3]float64, error) {
	for _, remove := range stripped {
		text = strings.ReplaceAll(text, remove, "")
	}
	fields := strings.Split(text, ",")
	if len(fields) != 3 {
		return [3]float64{}, ErrUnparsable
	}
	var triple [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return [3]float64{}, ErrUnparsable
		}
		triple[i] = v
	}
	return triple, nil
}

// parseRange parses a triple and clamps each field into [min, max].
func parseRange(text string, min, max float64) ([3]float64, error) {
	triple, err := parseTriple(text)
	if err != nil {
		return triple, err
	}
	for i, v := range triple {
		triple[i] = clamp(v, min, max)
	}
	return triple, nil
}

// parseHuePair parses a triple for the hue-based systems: the first field is
// wrapped into [0, 360) and the remaining two are clamped into [0, 100].
func parseHuePair(text string) ([3]float64, error) {
	triple, err := parseTriple(text)
	if err != nil {
		return triple, err
	}
	triple[0] = wrapHue(triple[0])
	triple[1] = clamp(triple[1], 0, 100)
	triple[2] = clamp(triple[2], 0, 100)
	return triple, nil
}

// parseHex accepts a 3 or 6 digit hex token, with or without a leading "#".
// Three-digit tokens are expanded by doubling each digit. The returned token
// is always 6 lowercase digits without the "#".
func parseHex(text string) (string, error) {
	text = strings.TrimLeft(text, " ")
	if text == "" {
		return "", ErrUnparsable
	}
	token := strings.TrimPrefix(text, "#")
	if !hexPattern.MatchString(token) {
		return "", ErrUnparsable
	}
	if len(token) == 3 {
		var b strings.Builder
		for _, digit := range token {
			b.WriteRune(digit)
			b.WriteRune(digit)
		}
		token = b.String()
	}
	return strings.ToLower(token), nil
}

// Parse interprets payload text as a colour in the given system.
func Parse(system System, text string) (Value, error) {
	switch system {
	case SystemRGB:
		triple, err := parseRange(text, 0, 255)
		return Value{System: system, Triple: triple}, err
	case SystemYIQ:
		triple, err := parseRange(text, -1, 1)
		return Value{System: system, Triple: triple}, err
	case SystemHLS, SystemHSL, SystemHSV:
		triple, err := parseHuePair(text)
		return Value{System: system, Triple: triple}, err
	case SystemHex:
		token, err := parseHex(text)
		return Value{System: system, Hex: token}, err
	default:
		return Value{}, ErrUnparsable
	}
}

// ParseQuery splits a raw query into its system tag and payload, then parses
// the payload. ok is false when the tag is not a known system; err is
// ErrUnparsable when the tag matched but the payload did not.
func ParseQuery(raw string) (Value, bool, error) {
	if len(raw) < TagLength {
		return Value{}, false, nil
	}
	system, ok := ParseSystem(raw[:TagLength])
	if !ok {
		return Value{}, false, nil
	}
	value, err := Parse(system, raw[TagLength:])
	return value, true, err
}

func clamp(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

// wrapHue wraps a hue in degrees into [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
