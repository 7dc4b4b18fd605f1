package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette is one complete colour set for the GUI.
type Palette struct {
	BG            rl.Color
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
	DisabledPanel rl.Color
}

// Chalkboard is the default classroom palette.
var Chalkboard = Palette{
	BG:            rl.NewColor(0x12, 0x1E, 0x1A, 255), // #121E1A
	Panel:         rl.NewColor(0x1A, 0x2B, 0x25, 255), // #1A2B25
	PanelRaised:   rl.NewColor(0x21, 0x36, 0x2E, 255), // #21362E
	Border:        rl.NewColor(0x2E, 0x4A, 0x3F, 255), // #2E4A3F
	Divider:       rl.NewColor(0x25, 0x3C, 0x33, 255), // #253C33
	TextPrimary:   rl.NewColor(0xF1, 0xEF, 0xE6, 255), // #F1EFE6
	TextSecondary: rl.NewColor(0xB4, 0xC2, 0xBA, 255), // #B4C2BA
	TextMuted:     rl.NewColor(0x7F, 0x92, 0x88, 255), // #7F9288
	Accent:        rl.NewColor(0x4F, 0xC3, 0xF7, 255), // #4FC3F7
	AccentAlt:     rl.NewColor(0x66, 0xBB, 0x6A, 255), // #66BB6A
	Warning:       rl.NewColor(0xFF, 0xB7, 0x4D, 255), // #FFB74D
	Danger:        rl.NewColor(0xEF, 0x53, 0x50, 255), // #EF5350
	Success:       rl.NewColor(0x81, 0xC7, 0x84, 255), // #81C784
	DisabledPanel: rl.NewColor(0x15, 0x22, 0x1D, 255),
}

// Golden replaces Chalkboard once the golden theme reward is active.
var Golden = Palette{
	BG:            rl.NewColor(0x1F, 0x17, 0x08, 255), // #1F1708
	Panel:         rl.NewColor(0x2B, 0x21, 0x0C, 255), // #2B210C
	PanelRaised:   rl.NewColor(0x3A, 0x2C, 0x10, 255), // #3A2C10
	Border:        rl.NewColor(0x8D, 0x6E, 0x1E, 255), // #8D6E1E
	Divider:       rl.NewColor(0x5C, 0x47, 0x14, 255), // #5C4714
	TextPrimary:   rl.NewColor(0xFF, 0xF3, 0xC4, 255), // #FFF3C4
	TextSecondary: rl.NewColor(0xE6, 0xCC, 0x80, 255), // #E6CC80
	TextMuted:     rl.NewColor(0xA8, 0x8E, 0x4E, 255), // #A88E4E
	Accent:        rl.NewColor(0xFF, 0xC1, 0x07, 255), // #FFC107
	AccentAlt:     rl.NewColor(0xFF, 0xD5, 0x4F, 255), // #FFD54F
	Warning:       rl.NewColor(0xFF, 0x8F, 0x00, 255), // #FF8F00
	Danger:        rl.NewColor(0xE5, 0x73, 0x73, 255), // #E57373
	Success:       rl.NewColor(0xFF, 0xEE, 0x58, 255), // #FFEE58
	DisabledPanel: rl.NewColor(0x22, 0x1A, 0x09, 255),
}

var (
	BG            rl.Color
	Panel         rl.Color
	PanelRaised   rl.Color
	Border        rl.Color
	Divider       rl.Color
	TextPrimary   rl.Color
	TextSecondary rl.Color
	TextMuted     rl.Color
	Accent        rl.Color
	AccentAlt     rl.Color
	WarningAmber  rl.Color
	Danger        rl.Color
	Success       rl.Color
	DisabledPanel rl.Color
	DisabledText  rl.Color

	active Palette
)

func init() {
	UsePalette(Chalkboard)
}

// UsePalette swaps every package colour to p.
func UsePalette(p Palette) {
	active = p
	BG = p.BG
	Panel = p.Panel
	PanelRaised = p.PanelRaised
	Border = p.Border
	Divider = p.Divider
	TextPrimary = p.TextPrimary
	TextSecondary = p.TextSecondary
	TextMuted = p.TextMuted
	Accent = p.Accent
	AccentAlt = p.AccentAlt
	WarningAmber = p.Warning
	Danger = p.Danger
	Success = p.Success
	DisabledPanel = p.DisabledPanel
	DisabledText = p.TextMuted
}

// Active reports the palette currently in use.
func Active() Palette {
	return active
}
