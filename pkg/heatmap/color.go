package heatmap

import "fmt"

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	emptyDark  = RGB{0x2a, 0x2a, 0x2a}
	emptyLight = RGB{0xe0, 0xe0, 0xe0}
)

// Legend stops, hottest first.
var (
	DarkLegend  = []string{"#ff0000", "#ff00ff", "#00ffff", "#0000ff", "#1a1a1a"}
	LightLegend = []string{"#cc0000", "#ff0000", "#ffff00", "#00ff00", "#0000ff", "#f5f5f5"}
)

// Legend returns the gradient stops for the given theme.
func Legend(dark bool) []string {
	if dark {
		return DarkLegend
	}
	return LightLegend
}

// Color maps a cell value onto the theme ramp relative to maxValue.
// Dark runs blue, cyan, magenta, red; light runs blue, green, yellow, red.
// A zero cell gets the neutral background colour.
func Color(value, maxValue int, dark bool) RGB {
	if value <= 0 || maxValue <= 0 {
		if dark {
			return emptyDark
		}
		return emptyLight
	}

	ratio := min(float64(value)/float64(maxValue), 1)
	if dark {
		return darkRamp(ratio)
	}
	return lightRamp(ratio)
}

// step scales the position within a quarter of the ramp to [0, span].
func step(ratio, from float64, span int) int {
	return int((ratio - from) * 4 * float64(span))
}

func darkRamp(ratio float64) RGB {
	switch {
	case ratio < 0.25:
		return RGB{0, uint8(step(ratio, 0, 255)), 255}
	case ratio < 0.5:
		t := step(ratio, 0.25, 255)
		return RGB{uint8(t), 255, uint8(255 - t)}
	case ratio < 0.75:
		t := step(ratio, 0.5, 255)
		return RGB{255, uint8(255 - t), uint8(t)}
	}
	return RGB{255, 0, uint8(255 - step(ratio, 0.75, 255))}
}

func lightRamp(ratio float64) RGB {
	switch {
	case ratio < 0.25:
		return RGB{0, uint8(step(ratio, 0, 128)), uint8(255 - step(ratio, 0, 127))}
	case ratio < 0.5:
		return RGB{
			uint8(step(ratio, 0.25, 255)),
			uint8(128 + step(ratio, 0.25, 127)),
			uint8(128 - step(ratio, 0.25, 128)),
		}
	case ratio < 0.75:
		return RGB{255, uint8(255 - step(ratio, 0.5, 127)), 0}
	}
	return RGB{uint8(255 - step(ratio, 0.75, 55)), uint8(128 - step(ratio, 0.75, 128)), 0}
}
