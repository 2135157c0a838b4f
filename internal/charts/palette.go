package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mauv0809/asset-ranking/internal/models"
)

// themeStops are sampled from the matching ColorBrewer and matplotlib scales,
// low to high.
var themeStops = map[models.Theme][]string{
	models.Blues:   {"c6dbef", "9ecae1", "6baed6", "2171b5", "08306b"},
	models.Greens:  {"c7e9c0", "a1d99b", "74c476", "238b45", "00441b"},
	models.Reds:    {"fcbba1", "fc9272", "fb6a4a", "cb181d", "67000d"},
	models.Viridis: {"440154", "3b528b", "21918c", "5ec962", "fde725"},
	models.Plasma:  {"0d0887", "7e03a8", "cc4778", "f89540", "f0f921"},
}

// missingColor marks points whose color value is absent.
var missingColor = drawing.ColorFromHex("bdbdbd")

// Scale maps a value in [min, max] onto the theme's color ramp. Unknown
// themes use Blues.
func Scale(theme models.Theme, v, min, max float64) drawing.Color {
	stops, ok := themeStops[theme]
	if !ok {
		stops = themeStops[models.Blues]
	}

	t := 1.0
	if max > min {
		t = (v - min) / (max - min)
	}
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(stops)-1)
	i := int(math.Floor(pos))
	if i >= len(stops)-1 {
		return drawing.ColorFromHex(stops[len(stops)-1])
	}
	return lerp(drawing.ColorFromHex(stops[i]), drawing.ColorFromHex(stops[i+1]), pos-float64(i))
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
