package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// NineSlice is a 9-patch texture. Insets are in source pixels: corners are
// copied as-is, edges stretch along one axis and the centre stretches both.
type NineSlice struct {
	Tex    rl.Texture2D
	Left   int32
	Right  int32
	Top    int32
	Bottom int32
}

// Loaded reports whether a texture backs the slice.
func (ns NineSlice) Loaded() bool { return ns.Tex.ID != 0 }

type slicePatch struct {
	src, dest rl.Rectangle
}

// patches maps the nine source regions of a srcW×srcH texture onto dest.
// When dest is smaller than the combined insets the corners shrink to half
// of dest each so they never overlap.
func (ns NineSlice) patches(srcW, srcH float32, dest rl.Rectangle) [9]slicePatch {
	l, r := float32(ns.Left), float32(ns.Right)
	t, b := float32(ns.Top), float32(ns.Bottom)
	dl, dr, dt, db := l, r, t, b
	if dl+dr > dest.Width {
		dl, dr = dest.Width/2, dest.Width/2
	}
	if dt+db > dest.Height {
		dt, db = dest.Height/2, dest.Height/2
	}

	srcCols := [3][2]float32{{0, l}, {l, srcW - l - r}, {srcW - r, r}}
	srcRows := [3][2]float32{{0, t}, {t, srcH - t - b}, {srcH - b, b}}
	dstCols := [3][2]float32{{dest.X, dl}, {dest.X + dl, dest.Width - dl - dr}, {dest.X + dest.Width - dr, dr}}
	dstRows := [3][2]float32{{dest.Y, dt}, {dest.Y + dt, dest.Height - dt - db}, {dest.Y + dest.Height - db, db}}

	var out [9]slicePatch
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row*3+col] = slicePatch{
				src:  rl.NewRectangle(srcCols[col][0], srcRows[row][0], srcCols[col][1], srcRows[row][1]),
				dest: rl.NewRectangle(dstCols[col][0], dstRows[row][0], dstCols[col][1], dstRows[row][1]),
			}
		}
	}
	return out
}

// DrawNineSlice stretches ns over dest. Without a texture it fills dest with
// a faded tint so screens stay readable when assets/ui is missing.
func DrawNineSlice(ns NineSlice, dest rl.Rectangle, tint rl.Color) {
	if !ns.Loaded() {
		rl.DrawRectangleRec(dest, rl.Fade(tint, 0.35))
		return
	}
	for _, p := range ns.patches(float32(ns.Tex.Width), float32(ns.Tex.Height), dest) {
		if p.dest.Width <= 0 || p.dest.Height <= 0 {
			continue
		}
		rl.DrawTexturePro(ns.Tex, p.src, p.dest, rl.Vector2{}, 0, tint)
	}
}
