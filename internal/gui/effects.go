package gui

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type particle struct {
	pos   rl.Vector2
	vel   rl.Vector2
	color rl.Color
	size  float32
	life  float32
	ttl   float32
}

// particleField runs the confetti and fireworks celebrations.
type particleField struct {
	rng       *rand.Rand
	particles []particle
	gravity   float32
	pending   []burst
}

type burst struct {
	at    rl.Vector2
	delay float32
}

const maxParticles = 1200

func newParticleField(rng *rand.Rand) *particleField {
	return &particleField{rng: rng, gravity: 260}
}

func (f *particleField) Active() bool {
	return len(f.particles) > 0 || len(f.pending) > 0
}

func (f *particleField) Reset() {
	f.particles = f.particles[:0]
	f.pending = f.pending[:0]
}

// Confetti drops count pieces from above the top edge across width.
func (f *particleField) Confetti(width float32, count int) {
	for i := 0; i < count && len(f.particles) < maxParticles; i++ {
		f.particles = append(f.particles, particle{
			pos:   rl.NewVector2(f.rng.Float32()*width, -f.rng.Float32()*120),
			vel:   rl.NewVector2((f.rng.Float32()-0.5)*120, 60+f.rng.Float32()*120),
			color: rl.ColorFromHSV(f.rng.Float32()*360, 0.75, 1),
			size:  4 + f.rng.Float32()*5,
			ttl:   3 + f.rng.Float32()*1.5,
		})
	}
}

// Fireworks schedules a few staggered bursts inside the given area.
func (f *particleField) Fireworks(area rl.Rectangle, bursts int) {
	for i := 0; i < bursts; i++ {
		f.pending = append(f.pending, burst{
			at: rl.NewVector2(
				area.X+area.Width*(0.15+0.7*f.rng.Float32()),
				area.Y+area.Height*(0.15+0.4*f.rng.Float32()),
			),
			delay: float32(i) * 0.45,
		})
	}
}

func (f *particleField) explode(at rl.Vector2) {
	hue := f.rng.Float32() * 360
	const spokes = 48
	for i := 0; i < spokes && len(f.particles) < maxParticles; i++ {
		angle := float64(i) / spokes * 2 * math.Pi
		speed := 140 + f.rng.Float32()*110
		f.particles = append(f.particles, particle{
			pos:   at,
			vel:   rl.NewVector2(float32(math.Cos(angle))*speed, float32(math.Sin(angle))*speed),
			color: rl.ColorFromHSV(hue+f.rng.Float32()*40, 0.8, 1),
			size:  3,
			ttl:   1.2 + f.rng.Float32()*0.6,
		})
	}
}

// Step advances every particle by dt seconds and drops expired ones.
func (f *particleField) Step(dt float32) {
	kept := f.pending[:0]
	for _, b := range f.pending {
		b.delay -= dt
		if b.delay <= 0 {
			f.explode(b.at)
			continue
		}
		kept = append(kept, b)
	}
	f.pending = kept

	alive := f.particles[:0]
	for _, p := range f.particles {
		p.life += dt
		if p.life >= p.ttl {
			continue
		}
		p.vel.Y += f.gravity * dt
		p.pos.X += p.vel.X * dt
		p.pos.Y += p.vel.Y * dt
		alive = append(alive, p)
	}
	f.particles = alive
}

func (f *particleField) Draw() {
	for _, p := range f.particles {
		fade := 1 - p.life/p.ttl
		rl.DrawCircleV(p.pos, p.size, rl.Fade(p.color, fade))
	}
}

// whiteboard keeps freehand strokes drawn over the play screen.
type whiteboard struct {
	strokes [][]rl.Vector2
	drawing bool
}

const minStrokeGap = 2.0

// Pen feeds one frame of mouse state; down is the button state and pos is
// the cursor inside the board.
func (w *whiteboard) Pen(down bool, pos rl.Vector2) {
	if !down {
		w.drawing = false
		return
	}
	if !w.drawing {
		w.strokes = append(w.strokes, []rl.Vector2{pos})
		w.drawing = true
		return
	}
	cur := w.strokes[len(w.strokes)-1]
	last := cur[len(cur)-1]
	if math.Hypot(float64(pos.X-last.X), float64(pos.Y-last.Y)) < minStrokeGap {
		return
	}
	w.strokes[len(w.strokes)-1] = append(cur, pos)
}

func (w *whiteboard) Clear() {
	w.strokes = nil
	w.drawing = false
}

func (w *whiteboard) Strokes() int {
	return len(w.strokes)
}

func (w *whiteboard) Draw(clr rl.Color) {
	for _, s := range w.strokes {
		if len(s) == 1 {
			rl.DrawCircleV(s[0], 2, clr)
			continue
		}
		for i := 1; i < len(s); i++ {
			rl.DrawLineEx(s[i-1], s[i], 3, clr)
		}
	}
}

// soundBank holds the two feedback tones, generated rather than loaded.
type soundBank struct {
	ready   bool
	correct rl.Sound
	wrong   rl.Sound
}

const sampleRate = 22050

// toneSamples renders a short 16-bit mono sine sweep from f0 to f1 Hz.
func toneSamples(f0, f1 float64, seconds float64) []byte {
	n := int(seconds * sampleRate)
	out := make([]byte, n*2)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := f0 + (f1-f0)*t
		phase += 2 * math.Pi * freq / sampleRate
		env := math.Min(1, (1-t)*4) * math.Min(1, t*40)
		v := int16(math.Sin(phase) * env * 0.35 * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

func (s *soundBank) init() {
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		return
	}
	up := toneSamples(660, 990, 0.18)
	down := toneSamples(330, 200, 0.28)
	s.correct = rl.LoadSoundFromWave(rl.NewWave(uint32(len(up)/2), sampleRate, 16, 1, up))
	s.wrong = rl.LoadSoundFromWave(rl.NewWave(uint32(len(down)/2), sampleRate, 16, 1, down))
	s.ready = true
}

func (s *soundBank) play(correct bool) {
	if !s.ready {
		return
	}
	if correct {
		rl.PlaySound(s.correct)
	} else {
		rl.PlaySound(s.wrong)
	}
}

func (s *soundBank) close() {
	if s.ready {
		rl.UnloadSound(s.correct)
		rl.UnloadSound(s.wrong)
		s.ready = false
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}
