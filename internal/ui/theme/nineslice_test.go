package theme

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestPatchesCoverDestination(t *testing.T) {
	ns := NineSlice{Left: 8, Right: 8, Top: 8, Bottom: 8}
	dest := rl.NewRectangle(10, 20, 200, 100)
	p := ns.patches(48, 48, dest)

	var area float32
	for _, patch := range p {
		area += patch.dest.Width * patch.dest.Height
	}
	if area != dest.Width*dest.Height {
		t.Fatalf("patches cover %v px, want %v", area, dest.Width*dest.Height)
	}
	if p[0].dest != rl.NewRectangle(10, 20, 8, 8) {
		t.Fatalf("top-left corner should be copied verbatim, got %+v", p[0].dest)
	}
	if p[4].src != rl.NewRectangle(8, 8, 32, 32) {
		t.Fatalf("unexpected centre source %+v", p[4].src)
	}
	if p[8].dest.X != 202 || p[8].dest.Y != 112 {
		t.Fatalf("bottom-right corner misplaced: %+v", p[8].dest)
	}
}

func TestPatchesShrinkCornersOnSmallTargets(t *testing.T) {
	ns := NineSlice{Left: 12, Right: 12, Top: 12, Bottom: 12}
	p := ns.patches(64, 64, rl.NewRectangle(0, 0, 16, 10))
	if p[0].dest.Width != 8 || p[0].dest.Height != 5 {
		t.Fatalf("corner should halve the target, got %+v", p[0].dest)
	}
	if p[4].dest.Width != 0 || p[4].dest.Height != 0 {
		t.Fatalf("centre should collapse, got %+v", p[4].dest)
	}
}

func TestLineHeightUsesFactor(t *testing.T) {
	if got := (Typography{LineFactor: 1.5}).LineHeight(20); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
}
