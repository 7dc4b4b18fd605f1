//go:build ignore

// gen_ui_placeholders.go writes the assets/ui/*.png textures the GUI skin
// loads. Run with:
//
//	go run scripts/gen_ui_placeholders.go
//
// Slice sizes must match the constants in internal/ui/theme/textures.go.
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
)

type texture struct {
	name          string
	size, slice   int
	border, fill  color.RGBA
	chalkyOutline bool
}

func main() {
	if err := os.MkdirAll(filepath.Join("assets", "ui"), 0o755); err != nil {
		log.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(1, 2))

	textures := []texture{
		// Wooden chalkboard rim around a slate centre.
		{"frame_chalk.png", 64, 12, color.RGBA{0x6D, 0x4C, 0x2F, 0xFF}, color.RGBA{0x12, 0x1E, 0x1A, 0xFF}, false},
		{"panel_9slice.png", 48, 8, color.RGBA{0x2E, 0x4A, 0x3F, 0xFF}, color.RGBA{0x1A, 0x2B, 0x25, 0xFF}, true},
		{"button_9slice.png", 32, 8, color.RGBA{0x4F, 0xC3, 0xF7, 0xFF}, color.RGBA{0x21, 0x36, 0x2E, 0xFF}, true},
		{"input_9slice.png", 24, 6, color.RGBA{0x2E, 0x4A, 0x3F, 0xFF}, color.RGBA{0x0E, 0x17, 0x14, 0xFF}, false},
	}
	for _, tx := range textures {
		write(filepath.Join("assets", "ui", tx.name), render(tx, rng))
	}
	log.Println("textures written to assets/ui/")
}

// render fills the outer slice with the border colour. Chalky outlines get a
// little per-pixel grain so the 9-slice seams stay visible.
func render(tx texture, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tx.size, tx.size))
	for y := 0; y < tx.size; y++ {
		for x := 0; x < tx.size; x++ {
			edge := x < tx.slice || y < tx.slice || x >= tx.size-tx.slice || y >= tx.size-tx.slice
			if !edge {
				img.SetRGBA(x, y, tx.fill)
				continue
			}
			c := tx.border
			if tx.chalkyOutline {
				c = grain(c, rng.IntN(25)-12)
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func grain(c color.RGBA, d int) color.RGBA {
	clamp := func(v int) uint8 { return uint8(max(0, min(255, v))) }
	return color.RGBA{clamp(int(c.R) + d), clamp(int(c.G) + d), clamp(int(c.B) + d), c.A}
}

func write(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}
	log.Printf("  wrote %s", path)
}
