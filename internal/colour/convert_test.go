package colour

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// hueDistance is the shortest angular distance between two hues in degrees.
func hueDistance(a, b float64) float64 {
	d := math.Abs(math.Mod(a, 360) - math.Mod(b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestHexRoundTrip(t *testing.T) {
	// Converting the pivot to hex and back must stay within 8-bit
	// quantization tolerance on every channel.
	pivots := []colorful.Color{
		{R: 0, G: 0, B: 0},
		{R: 1, G: 1, B: 1},
		{R: 0.392156862745098, G: 0.23529411764705882, B: 0.0784313725490196},
		{R: 0.5, G: 0.25, B: 0.125},
		{R: 0.999, G: 0.001, B: 0.66},
	}

	const tolerance = 1.0 / 255

	for _, c := range pivots {
		hex := FromRGB(SystemHex, c)
		parsed, err := Parse(SystemHex, hex.String())
		if err != nil {
			t.Fatalf("Parse(hex, %q) error = %v", hex.String(), err)
		}
		back := ToRGB(parsed)
		if math.Abs(back.R-c.R) > tolerance ||
			math.Abs(back.G-c.G) > tolerance ||
			math.Abs(back.B-c.B) > tolerance {
			t.Errorf("hex round trip of %+v via %q = %+v, drift above 1/255", c, hex.String(), back)
		}
	}
}

func TestHexExpectedBytes(t *testing.T) {
	rgb := Value{System: SystemRGB, Triple: [3]float64{100, 60, 20}}
	hex := FromRGB(SystemHex, ToRGB(rgb))
	if hex.String() != "#643c14" {
		t.Errorf("hex of rgb(100, 60, 20) = %q, want %q", hex.String(), "#643c14")
	}
}

func TestThreeDigitHexExpansion(t *testing.T) {
	parsed, err := Parse(SystemHex, "#fff")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := ToRGB(parsed)
	if c.R != 1 || c.G != 1 || c.B != 1 {
		t.Errorf("ToRGB(#fff) = %+v, want white", c)
	}
}

func TestHueSystemRoundTrips(t *testing.T) {
	tests := []struct {
		name   string
		system System
		triple [3]float64
	}{
		{name: "hsv mid", system: SystemHSV, triple: [3]float64{210, 40, 80}},
		{name: "hsv fractional hue", system: SystemHSV, triple: [3]float64{0.5, 40, 30}},
		{name: "hsl mid", system: SystemHSL, triple: [3]float64{30, 66, 24}},
		{name: "hls mid", system: SystemHLS, triple: [3]float64{30, 24, 66}},
		{name: "hsl red wrap", system: SystemHSL, triple: [3]float64{359, 80, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Value{System: tt.system, Triple: tt.triple}
			out := FromRGB(tt.system, ToRGB(in))
			if hueDistance(out.Triple[0], tt.triple[0]) > 1e-6 {
				t.Errorf("hue = %v, want %v (mod 360)", out.Triple[0], tt.triple[0])
			}
			for i := 1; i < 3; i++ {
				if math.Abs(out.Triple[i]-tt.triple[i]) > 1e-6 {
					t.Errorf("field %d = %v, want %v", i, out.Triple[i], tt.triple[i])
				}
			}
		})
	}
}

func TestZeroSaturationDegenerate(t *testing.T) {
	// With saturation 0 the hue is undefined; only lightness/value must
	// survive the round trip.
	in := Value{System: SystemHSL, Triple: [3]float64{123, 0, 40}}
	out := FromRGB(SystemHSL, ToRGB(in))
	if out.Triple[1] != 0 {
		t.Errorf("saturation = %v, want 0", out.Triple[1])
	}
	if math.Abs(out.Triple[2]-40) > 0.5 {
		t.Errorf("lightness = %v, want ~40", out.Triple[2])
	}
}

func TestHLSAndHSLFieldOrder(t *testing.T) {
	// hls(h, l, s) and hsl(h, s, l) are the same math with the second and
	// third fields swapped. The same colour expressed both ways must reach
	// an identical pivot, and fan-out back into both systems must keep the
	// swap.
	hls := Value{System: SystemHLS, Triple: [3]float64{200, 30, 70}}
	hsl := Value{System: SystemHSL, Triple: [3]float64{200, 70, 30}}

	a, b := ToRGB(hls), ToRGB(hsl)
	if math.Abs(a.R-b.R) > 1e-12 || math.Abs(a.G-b.G) > 1e-12 || math.Abs(a.B-b.B) > 1e-12 {
		t.Fatalf("hls and hsl payloads diverged: %+v vs %+v", a, b)
	}

	outHLS := FromRGB(SystemHLS, a)
	outHSL := FromRGB(SystemHSL, a)
	if outHLS.Triple[1] != outHSL.Triple[2] || outHLS.Triple[2] != outHSL.Triple[1] {
		t.Errorf("field order not preserved: hls=%v hsl=%v", outHLS.Triple, outHSL.Triple)
	}
}

func TestYIQRoundTrip(t *testing.T) {
	pivots := []colorful.Color{
		{R: 0.2, G: 0.4, B: 0.6},
		{R: 1, G: 0, B: 0},
		{R: 0.5, G: 0.5, B: 0.5},
	}

	for _, c := range pivots {
		yiq := FromRGB(SystemYIQ, c)
		back := ToRGB(Value{System: SystemYIQ, Triple: yiq.Triple})
		if math.Abs(back.R-c.R) > 1e-9 ||
			math.Abs(back.G-c.G) > 1e-9 ||
			math.Abs(back.B-c.B) > 1e-9 {
			t.Errorf("yiq round trip of %+v = %+v", c, back)
		}
	}
}

func TestYIQGreyHasNoChrominance(t *testing.T) {
	y, i, q := rgbToYIQ(colorful.Color{R: 0.5, G: 0.5, B: 0.5})
	if math.Abs(y-0.5) > 1e-12 {
		t.Errorf("luma = %v, want 0.5", y)
	}
	if math.Abs(i) > 1e-12 || math.Abs(q) > 1e-12 {
		t.Errorf("chrominance = (%v, %v), want zero", i, q)
	}
}

func TestFromRGBClampsPivot(t *testing.T) {
	out := FromRGB(SystemRGB, colorful.Color{R: 1.5, G: -0.25, B: 0.5})
	want := [3]float64{255, 0, 127.5}
	if out.Triple != want {
		t.Errorf("FromRGB() = %v, want %v", out.Triple, want)
	}
}

func TestFormatStrings(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{
			name:  "rgb plain numbers",
			value: Value{System: SystemRGB, Triple: [3]float64{100, 60, 20}},
			want:  "rgb(100, 60, 20)",
		},
		{
			name:  "hsl percent suffixes",
			value: Value{System: SystemHSL, Triple: [3]float64{30, 66.666666, 23.5}},
			want:  "hsl(30, 66.6667%, 23.5%)",
		},
		{
			name:  "hls percent suffixes",
			value: Value{System: SystemHLS, Triple: [3]float64{30, 23.5, 66}},
			want:  "hls(30, 23.5%, 66%)",
		},
		{
			name:  "yiq plain numbers",
			value: Value{System: SystemYIQ, Triple: [3]float64{0.5, -0.2, 0.1}},
			want:  "yiq(0.5, -0.2, 0.1)",
		},
		{
			name:  "hex with hash",
			value: Value{System: SystemHex, Hex: "643c14"},
			want:  "#643c14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
