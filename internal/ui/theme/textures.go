package theme

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Skin holds the nine-slice textures. Slots whose file is missing stay
// zero-valued and components fall back to flat shapes.
var Skin skinAssets

type skinAssets struct {
	Frame  NineSlice // chalkboard rim around the window
	Panel  NineSlice
	Button NineSlice
	Input  NineSlice

	loaded bool
}

// Slice insets must match scripts/gen_ui_placeholders.go.
const (
	frameSlice  = int32(12)
	panelSlice  = int32(8)
	buttonSlice = int32(8)
	inputSlice  = int32(6)
)

type skinFile struct {
	slot  *NineSlice
	file  string
	inset int32
}

// skinFiles pairs each slot with its file under assets/ui.
func skinFiles() []skinFile {
	return []skinFile{
		{&Skin.Frame, "frame_chalk.png", frameSlice},
		{&Skin.Panel, "panel_9slice.png", panelSlice},
		{&Skin.Button, "button_9slice.png", buttonSlice},
		{&Skin.Input, "input_9slice.png", inputSlice},
	}
}

// InitSkin loads the textures from dir/ui. Call once after rl.InitWindow and
// returns how many were found.
func InitSkin(dir string) int {
	if Skin.loaded {
		return 0
	}
	Skin.loaded = true
	found := 0
	for _, f := range skinFiles() {
		*f.slot = loadNineSlice(filepath.Join(dir, "ui", f.file), f.inset)
		if f.slot.Loaded() {
			found++
		}
	}
	return found
}

// UnloadSkin releases the textures. Call before rl.CloseWindow.
func UnloadSkin() {
	for _, f := range skinFiles() {
		if f.slot.Loaded() {
			rl.UnloadTexture(f.slot.Tex)
		}
		*f.slot = NineSlice{}
	}
	Skin.loaded = false
}

// FrameInset is the area inside the chalkboard rim.
func FrameInset(screenW, screenH int32) rl.Rectangle {
	m := float32(frameSlice)
	return rl.NewRectangle(m, m, float32(screenW)-m*2, float32(screenH)-m*2)
}

func loadNineSlice(path string, inset int32) NineSlice {
	ns := NineSlice{Left: inset, Right: inset, Top: inset, Bottom: inset}
	if _, err := os.Stat(path); err != nil {
		return ns
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return ns
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	ns.Tex = tex
	return ns
}
