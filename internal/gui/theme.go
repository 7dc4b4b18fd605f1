package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	uitheme "github.com/appengine-ltd/mathdash/internal/ui/theme"
)

type Theme struct {
	Background    rl.Color
	Panel         rl.Color
	PanelRaised   rl.Color
	Border        rl.Color
	Divider       rl.Color
	TextPrimary   rl.Color
	TextSecondary rl.Color
	TextMuted     rl.Color
	Accent        rl.Color
	AccentAlt     rl.Color
	Warning       rl.Color
	Danger        rl.Color
	Success       rl.Color
}

const (
	spaceXS = uitheme.PaddingXS
	spaceS  = uitheme.PaddingS
	spaceM  = uitheme.PaddingM
	spaceL  = uitheme.PaddingL
)

var AppTheme = themeFromPalette(uitheme.Chalkboard)

func themeFromPalette(p uitheme.Palette) Theme {
	return Theme{
		Background:    p.BG,
		Panel:         p.Panel,
		PanelRaised:   p.PanelRaised,
		Border:        p.Border,
		Divider:       p.Divider,
		TextPrimary:   p.TextPrimary,
		TextSecondary: p.TextSecondary,
		TextMuted:     p.TextMuted,
		Accent:        p.Accent,
		AccentAlt:     p.AccentAlt,
		Warning:       p.Warning,
		Danger:        p.Danger,
		Success:       p.Success,
	}
}

// applyPalette switches both the component package and the screen colours.
func applyPalette(golden bool) {
	p := uitheme.Chalkboard
	if golden {
		p = uitheme.Golden
	}
	if uitheme.Active() == p {
		return
	}
	uitheme.UsePalette(p)
	AppTheme = themeFromPalette(p)
}

type PanelVariant = uitheme.PanelVariant

const (
	panelVariantDefault = uitheme.PanelStandard
	panelVariantRaised  = uitheme.PanelLifted
)

type ButtonState = uitheme.ButtonState

const (
	buttonStateNormal   = uitheme.ButtonNormal
	buttonStateSelected = uitheme.ButtonSelected
)

type ListItemState = uitheme.ListItemState

const (
	listStateNormal   = uitheme.ListItemNormal
	listStateSelected = uitheme.ListItemSelected
	listStateDisabled = uitheme.ListItemDisabled
)

// ---------------------------------------------------------------------------
// Frame
// ---------------------------------------------------------------------------

// DrawFrame paints the border around the entire window and returns the
// inner inset rectangle that all screen content should stay within.
func DrawFrame(screenW, screenH int32) rl.Rectangle {
	return uitheme.DrawFrame(screenW, screenH)
}

// ---------------------------------------------------------------------------
// Panel
// ---------------------------------------------------------------------------

// DrawPanel draws a themed panel. If title is non-empty, a header with an
// accent underline and a divider are drawn inside the panel top.
func DrawPanel(rect rl.Rectangle, title string, focused bool) {
	variant := panelVariantDefault
	if focused {
		variant = panelVariantRaised
	}
	uitheme.DrawPanel(rect, variant)
	if title != "" {
		DrawHeader(title, int32(rect.X+spaceM), int32(rect.Y+spaceS))
		dividerY := rect.Y + spaceS + float32(uitheme.Type.Header) + 14
		DrawDivider(rect.X+spaceM, dividerY, rect.X+rect.Width-spaceM, dividerY)
	}
}

func DrawButton(rect rl.Rectangle, state ButtonState, text string) {
	uitheme.DrawButton(rect, state, text)
}

func DrawListItem(rect rl.Rectangle, state ListItemState, leftText, rightText string) {
	uitheme.DrawListItem(rect, state, leftText, rightText)
}

// DrawInputField renders a styled text input field.
func DrawInputField(rect rl.Rectangle, text, placeholder string, focused bool) {
	uitheme.DrawInput(rect, text, placeholder, focused)
}

func DrawHeader(text string, x, y int32) {
	uitheme.DrawHeader(text, x, y)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	uitheme.DrawDivider(x1, y1, x2, y2)
}

func DrawHintText(text string, x, y int32) {
	uitheme.DrawHintText(text, x, y)
}

func DrawLabelValue(label, value string, x, y int32, valueColor rl.Color) {
	drawText(label, x, y, uitheme.Type.Body, AppTheme.TextSecondary)
	drawText(value, x+220, y, uitheme.Type.Body, valueColor)
}

// DrawAccuracyBar shows a labelled percentage bar coloured by how well it went.
func DrawAccuracyBar(label string, value int, rect rl.Rectangle) {
	v := clampInt(value, 0, 100)
	drawText(fmt.Sprintf("%s %d%%", label, v), int32(rect.X), int32(rect.Y), uitheme.Type.Small, AppTheme.TextSecondary)
	bar := rl.NewRectangle(rect.X, rect.Y+float32(uitheme.Type.Small)+4, rect.Width, 10)
	uitheme.DrawProgressBar(bar, float32(v)/100, accuracyColor(v))
}

func accuracyColor(value int) rl.Color {
	switch {
	case value >= 75:
		return AppTheme.Success
	case value >= 50:
		return AppTheme.Warning
	default:
		return AppTheme.Danger
	}
}
