package gradient

import (
	"math"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/gdamore/tcell/v2"
)

// InterpolateRGB performs linear RGB interpolation with proper rounding.
// t should be in [0, 1] range (automatically clamped).
func InterpolateRGB(from, to [3]int, t float64) [3]int {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	return [3]int{
		int(math.Round(float64(from[0]) + t*float64(to[0]-from[0]))),
		int(math.Round(float64(from[1]) + t*float64(to[1]-from[1]))),
		int(math.Round(float64(from[2]) + t*float64(to[2]-from[2]))),
	}
}

// InterpolateColor returns the color at position t of the gradient.
// With gradients disabled every position gets the start color.
func InterpolateColor(g config.Gradient, t float64) tcell.Color {
	if !config.UseGradients {
		t = 0
	}
	rgb := InterpolateRGB(g.Start, g.End, t)
	//nolint:gosec // G115: RGB values are 0-255, safe to convert to int32
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}

// FromColor derives a gradient running from primary to a lighter shade.
// Black (or an unresolvable color) yields fallback.
func FromColor(primary tcell.Color, ratio float64, fallback config.Gradient) config.Gradient {
	r, g, b := primary.RGB()
	if r <= 0 && g <= 0 && b <= 0 {
		return fallback
	}

	base := [3]int{int(r), int(g), int(b)}
	return config.Gradient{Start: base, End: lighten(base, ratio)}
}

// lighten moves each channel toward white by ratio [0, 1]
func lighten(rgb [3]int, ratio float64) [3]int {
	return [3]int{
		clamp(rgb[0] + int(math.Round(float64(255-rgb[0])*ratio))),
		clamp(rgb[1] + int(math.Round(float64(255-rgb[1])*ratio))),
		clamp(rgb[2] + int(math.Round(float64(255-rgb[2])*ratio))),
	}
}

func clamp(value int) int {
	return max(0, min(255, value))
}
