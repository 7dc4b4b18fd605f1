package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/mathdash/internal/game"
)

type badgePalette struct {
	primary color.RGBA
	shade   color.RGBA
	accent  color.RGBA
}

var (
	greenBadge = badgePalette{
		primary: color.RGBA{R: 0, G: 230, B: 110, A: 235},
		shade:   color.RGBA{R: 0, G: 145, B: 60, A: 230},
		accent:  color.RGBA{R: 120, G: 255, B: 170, A: 210},
	}
	goldBadge = badgePalette{
		primary: color.RGBA{R: 255, G: 196, B: 0, A: 240},
		shade:   color.RGBA{R: 190, G: 120, B: 0, A: 235},
		accent:  color.RGBA{R: 255, G: 240, B: 160, A: 220},
	}
)

// starsFor is how many points the medal's star shows for a result.
func starsFor(r game.ResultTier) int {
	switch r {
	case game.ResultPerfect:
		return 3
	case game.ResultAwesome:
		return 2
	case game.ResultGoodJob:
		return 1
	default:
		return 0
	}
}

// renderMedalANSI draws a round medal with one star per result step and
// returns it as ANSI half blocks. Tiny panes get a text fallback.
func renderMedalANSI(result game.ResultTier, golden bool, widthChars, heightRows int) string {
	if widthChars < 10 || heightRows < 5 {
		return strings.Repeat("★", starsFor(result))
	}
	widthChars = clampInt(widthChars, 10, 40)
	heightRows = clampInt(heightRows, 5, 20)

	w := widthChars
	h := heightRows * 2
	dc := gg.NewContext(w, h)
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	pal := greenBadge
	if golden {
		pal = goldBadge
	}
	cx := float64(w) * 0.5
	cy := float64(h) * 0.5
	r := math.Min(float64(w), float64(h)) * 0.45

	// Soft glow behind the disc.
	dc.SetRGBA(1, 1, 1, 0.06)
	dc.DrawCircle(cx, cy, r*1.1)
	dc.Fill()

	disc := gg.NewRadialGradient(cx-r*0.3, cy-r*0.35, r*0.15, cx, cy, r*1.1)
	disc.AddColorStop(0.0, pal.accent)
	disc.AddColorStop(1.0, pal.primary)
	dc.SetFillStyle(disc)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()
	dc.SetColor(pal.shade)
	dc.SetLineWidth(1.2)
	dc.DrawCircle(cx, cy, r*0.82)
	dc.Stroke()

	stars := starsFor(result)
	if stars == 0 {
		return rgbaImageToANSIHalfBlocks(dc.Image())
	}
	dc.SetColor(pal.shade)
	spacing := r * 0.55
	startX := cx - spacing*float64(stars-1)/2
	for i := 0; i < stars; i++ {
		drawStar(dc, startX+spacing*float64(i), cy, r*0.3)
		dc.Fill()
	}
	return rgbaImageToANSIHalfBlocks(dc.Image())
}

func drawStar(dc *gg.Context, cx, cy, outer float64) {
	inner := outer * 0.45
	for i := 0; i < 10; i++ {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		x := cx + rad*math.Cos(a)
		y := cy + rad*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func rgbaImageToANSIHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return ""
	}

	var out strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			tr, tg, tb, ta := rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			br, bg, bb, ba := uint8(0), uint8(0), uint8(0), uint8(0)
			if y+1 < height {
				br, bg, bb, ba = rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}

			if ta < 8 && ba < 8 {
				out.WriteByte(' ')
				continue
			}

			out.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb))
		}
		out.WriteString("\x1b[0m\n")
	}
	return out.String()
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
