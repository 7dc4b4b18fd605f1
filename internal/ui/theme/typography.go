package theme

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Typography struct {
	Prompt     int32
	Title      int32
	Header     int32
	Body       int32
	Small      int32
	LineFactor float32
}

var Type = Typography{
	Prompt:     72,
	Title:      40,
	Header:     24,
	Body:       21,
	Small:      17,
	LineFactor: 1.45,
}

// LineHeight is the baseline-to-baseline distance for size.
func (t Typography) LineHeight(size int32) int32 {
	return int32(math.Round(float64(size) * float64(t.LineFactor)))
}

// TextDrawFunc renders text in whatever font the GUI loaded.
type TextDrawFunc func(text string, x, y, fontSize int32, clr rl.Color)

// TextMeasureFunc reports the pixel width of text in that font.
type TextMeasureFunc func(text string, fontSize int32) int32

// The raylib default font has no glyphs for × or ÷, so these are only a
// fallback until the GUI installs its own renderer.
var (
	textDrawFn TextDrawFunc = func(text string, x, y, fontSize int32, clr rl.Color) {
		rl.DrawText(text, x, y, fontSize, clr)
	}
	textMeasureFn TextMeasureFunc = func(text string, fontSize int32) int32 {
		return rl.MeasureText(text, fontSize)
	}
)

// SetTextRenderer replaces the text hooks used by every component. Nil
// arguments keep the current hook.
func SetTextRenderer(draw TextDrawFunc, measure TextMeasureFunc) {
	if draw != nil {
		textDrawFn = draw
	}
	if measure != nil {
		textMeasureFn = measure
	}
}

func drawText(text string, x, y, fontSize int32, clr rl.Color) {
	textDrawFn(text, x, y, fontSize, clr)
}

func measureText(text string, fontSize int32) int32 {
	return textMeasureFn(text, fontSize)
}
