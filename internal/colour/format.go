package colour

import "fmt"

// String renders a value as its canonical display string:
//
//	rgb(100, 60, 20)
//	yiq(0.5, 0.2, -0.1)
//	hsl(30, 66.7%, 23.5%)
//	#643c14
//
// Numbers are printed with at most six significant digits.
func (v Value) String() string {
	switch v.System {
	case SystemHex:
		return "#" + v.Hex
	case SystemHLS, SystemHSL, SystemHSV:
		return fmt.Sprintf("%s(%.6g, %.6g%%, %.6g%%)", v.System.Tag(), v.Triple[0], v.Triple[1], v.Triple[2])
	default:
		return fmt.Sprintf("%s(%.6g, %.6g, %.6g)", v.System.Tag(), v.Triple[0], v.Triple[1], v.Triple[2])
	}
}
