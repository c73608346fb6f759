package colour

import (
	"fmt"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ToRGB converts a native value to the canonical RGB pivot. The result is
// clamped to [0, 1] per channel.
func ToRGB(v Value) colorful.Color {
	var c colorful.Color
	switch v.System {
	case SystemRGB:
		c = colorful.Color{R: v.Triple[0] / 255, G: v.Triple[1] / 255, B: v.Triple[2] / 255}
	case SystemHex:
		c = hexToRGB(v.Hex)
	case SystemYIQ:
		c = yiqToRGB(v.Triple[0], v.Triple[1], v.Triple[2])
	case SystemHLS:
		// Field order: hue, lightness, saturation.
		c = colorful.Hsl(v.Triple[0], v.Triple[2]/100, v.Triple[1]/100)
	case SystemHSL:
		// Field order: hue, saturation, lightness.
		c = colorful.Hsl(v.Triple[0], v.Triple[1]/100, v.Triple[2]/100)
	case SystemHSV:
		c = colorful.Hsv(v.Triple[0], v.Triple[1]/100, v.Triple[2]/100)
	}
	return c.Clamped()
}

// FromRGB converts the canonical RGB pivot into a system's native
// representation.
func FromRGB(system System, c colorful.Color) Value {
	c = c.Clamped()
	switch system {
	case SystemRGB:
		return Value{System: system, Triple: [3]float64{c.R * 255, c.G * 255, c.B * 255}}
	case SystemHex:
		r, g, b := c.RGB255()
		return Value{System: system, Hex: fmt.Sprintf("%02x%02x%02x", r, g, b)}
	case SystemYIQ:
		y, i, q := rgbToYIQ(c)
		return Value{System: system, Triple: [3]float64{y, i, q}}
	case SystemHLS:
		h, s, l := c.Hsl()
		return Value{System: system, Triple: [3]float64{h, l * 100, s * 100}}
	case SystemHSL:
		h, s, l := c.Hsl()
		return Value{System: system, Triple: [3]float64{h, s * 100, l * 100}}
	case SystemHSV:
		h, s, v := c.Hsv()
		return Value{System: system, Triple: [3]float64{h, s * 100, v * 100}}
	default:
		return Value{System: system}
	}
}

// hexToRGB parses a 6-digit token as three base-16 byte pairs scaled to
// [0, 1]. The token has already been validated and expanded by parseHex.
func hexToRGB(token string) colorful.Color {
	channel := func(pair string) float64 {
		v, _ := strconv.ParseUint(pair, 16, 8)
		return float64(v) / 255
	}
	return colorful.Color{
		R: channel(token[0:2]),
		G: channel(token[2:4]),
		B: channel(token[4:6]),
	}
}

// NTSC YIQ encode coefficients (luma weights 0.30/0.59/0.11 with the
// chrominance planes taken as weighted R-Y / B-Y differences).
func rgbToYIQ(c colorful.Color) (y, i, q float64) {
	y = 0.30*c.R + 0.59*c.G + 0.11*c.B
	i = 0.74*(c.R-y) - 0.27*(c.B-y)
	q = 0.48*(c.R-y) + 0.41*(c.B-y)
	return y, i, q
}

// yiqToRGB applies the inverse of the encode matrix above. Channels are
// clamped by the caller.
func yiqToRGB(y, i, q float64) colorful.Color {
	return colorful.Color{
		R: y + 0.9468822170900693*i + 0.6235565819861433*q,
		G: y - 0.27478764629897834*i - 0.6356910791873801*q,
		B: y - 1.1085450346420322*i + 1.7090069284064666*q,
	}
}
