package gui

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/parser"
	"github.com/appengine-ltd/mathdash/internal/store"
)

func testUI(t *testing.T, kv store.KV, perRound int) *gameUI {
	t.Helper()
	engine, err := game.NewQuestionEngine(game.NewRNG(11), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	catalog, err := game.NewCatalog(kv, game.BuiltinItems(), nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	ctrl, err := game.NewSessionController(game.ControllerConfig{
		Engine:            engine,
		Ledger:            game.NewStatisticsLedger(kv, nil),
		Wallet:            game.NewWallet(kv, nil),
		Catalog:           catalog,
		Features:          game.NewFeatureRegistry(kv, nil),
		QuestionsPerRound: perRound,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ui, err := newGameUI(AppConfig{Controller: ctrl, Seed: 3})
	if err != nil {
		t.Fatalf("new gui: %v", err)
	}
	return ui
}

func answerFor(t *testing.T, prompt string) int {
	t.Helper()
	var a, b int
	if _, err := fmt.Sscanf(prompt, "%d × %d = ?", &a, &b); err == nil {
		return a * b
	}
	if _, err := fmt.Sscanf(prompt, "%d ÷ %d = ?", &a, &b); err == nil {
		return a / b
	}
	t.Fatalf("unrecognised prompt %q", prompt)
	return 0
}

func enter(ui *gameUI, line string) {
	ui.input = line
	ui.submitInput()
}

func TestNewGameUIRequiresController(t *testing.T) {
	if _, err := newGameUI(AppConfig{}); err == nil {
		t.Fatalf("expected error without controller")
	}
}

func TestTypedRoundReachesResults(t *testing.T) {
	ui := testUI(t, store.NewMemory(), 2)
	enter(ui, "play")
	if ui.screen != screenPlay {
		t.Fatalf("expected play screen, got %v", ui.screen)
	}
	for i := 0; i < 2; i++ {
		enter(ui, strconv.Itoa(answerFor(t, ui.ctrl.View().Prompt)))
	}
	if ui.screen != screenResults {
		t.Fatalf("expected results screen, got %v (status %q)", ui.screen, ui.status)
	}
	if ui.input != "" {
		t.Fatalf("input should be cleared after submit")
	}
	if len(ui.messages) != 2 {
		t.Fatalf("expected one log line per answer, got %d", len(ui.messages))
	}
}

func TestQueuedPickScoresOption(t *testing.T) {
	ui := testUI(t, store.NewMemory(), 3)
	enter(ui, "play")
	v := ui.ctrl.View()
	want := answerFor(t, v.Prompt)
	for i, opt := range v.Options {
		if opt == want {
			ui.queue.EnqueueIntent(parser.Intent{Verb: "pick", Args: []string{strconv.Itoa(i)}})
		}
	}
	ui.drainQueue()
	if ui.last == nil || !ui.last.IsCorrect {
		t.Fatalf("expected queued pick to be correct, status %q", ui.status)
	}
}

func TestClarifyTakesOptionNumber(t *testing.T) {
	ui := testUI(t, store.NewMemory(), 3)
	enter(ui, "st")
	if ui.pendingClarify == nil {
		t.Fatalf("expected pending clarify, status %q", ui.status)
	}
	if HotkeysEnabled(ui) {
		t.Fatalf("hotkeys should pause while a clarify question is open")
	}
	want := ui.pendingClarify.Options[0].Verb
	enter(ui, "1")
	if ui.pendingClarify != nil {
		t.Fatalf("clarify should be consumed")
	}
	switch want {
	case "stats":
		if ui.screen != screenStats {
			t.Fatalf("expected stats screen, got %v", ui.screen)
		}
	case "store":
		if ui.screen != screenStore {
			t.Fatalf("expected store screen, got %v", ui.screen)
		}
	}
}

func TestStoreEnterBuysHighlightedItem(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set("coins", []byte("20"))
	ui := testUI(t, kv, 3)
	ui.screen = screenStore
	items := ui.ctrl.Catalog().Items()
	ui.store.Index = 0
	ui.activate()
	if !ui.ctrl.Catalog().IsOwned(items[0].ID) {
		t.Fatalf("expected %s to be owned, status %q", items[0].ID, ui.status)
	}
	if ui.ctrl.Wallet().Balance() != 20-items[0].Price {
		t.Fatalf("unexpected balance %d", ui.ctrl.Wallet().Balance())
	}
}

func TestRewardsToggleRespectsLock(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set("coins", []byte("200"))
	ui := testUI(t, kv, 3)
	ui.screen = screenRewards
	ui.rewards.Index = 0
	ui.activate()
	if !strings.Contains(ui.status, "locked") {
		t.Fatalf("expected locked message, got %q", ui.status)
	}

	for _, item := range ui.ctrl.Catalog().ItemsInTier(game.TierCheap) {
		enter(ui, "buy "+item.Name)
	}
	if ui.screen != screenRewards || len(ui.unlocked) != 1 {
		t.Fatalf("expected unlock announcement, screen %v unlocked %+v", ui.screen, ui.unlocked)
	}
	if !ui.effects.Active() {
		t.Fatalf("unlock should start confetti")
	}
	ui.rewards.Index = 0
	ui.activate()
	if ui.ctrl.FeatureActive(game.FeatureConfetti) {
		t.Fatalf("toggling an active reward should switch it off")
	}
}

func TestBackClearsInputBeforeLeaving(t *testing.T) {
	ui := testUI(t, store.NewMemory(), 3)
	ui.screen = screenStats
	ui.input = "sta"
	ui.back()
	if ui.screen != screenStats || ui.input != "" {
		t.Fatalf("first Esc should only clear the prompt")
	}
	ui.back()
	if ui.screen != screenMenu {
		t.Fatalf("second Esc should return to menu")
	}
	ui.back()
	if !ui.quit {
		t.Fatalf("Esc on the menu should quit")
	}
}

func TestListCursorKeepsSelectionVisible(t *testing.T) {
	c := listCursor{Index: 12}
	c.clampTo(20, 5)
	if c.Offset != 8 {
		t.Fatalf("expected offset 8, got %d", c.Offset)
	}
	c.Index = 2
	c.clampTo(20, 5)
	if c.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", c.Offset)
	}
	c.Index = 99
	c.clampTo(3, 5)
	if c.Index != 2 || c.Offset != 0 {
		t.Fatalf("expected clamp to last row, got %+v", c)
	}
}

func TestWhiteboardStrokes(t *testing.T) {
	var w whiteboard
	w.Pen(true, rl.NewVector2(10, 10))
	w.Pen(true, rl.NewVector2(10.5, 10))
	w.Pen(true, rl.NewVector2(20, 10))
	w.Pen(false, rl.Vector2{})
	w.Pen(true, rl.NewVector2(50, 50))
	if w.Strokes() != 2 {
		t.Fatalf("expected two strokes, got %d", w.Strokes())
	}
	if len(w.strokes[0]) != 2 {
		t.Fatalf("points closer than the gap should be skipped, got %d", len(w.strokes[0]))
	}
	w.Clear()
	if w.Strokes() != 0 {
		t.Fatalf("clear should drop strokes")
	}
}

func TestParticlesExpire(t *testing.T) {
	f := newParticleField(game.NewRNG(5))
	f.Confetti(800, 50)
	f.Fireworks(rl.NewRectangle(0, 0, 800, 600), 2)
	if !f.Active() {
		t.Fatalf("expected active field")
	}
	for i := 0; i < 600; i++ {
		f.Step(1.0 / 60)
	}
	if f.Active() {
		t.Fatalf("expected all particles to expire, %d left", len(f.particles))
	}
}

func TestToneSamplesLength(t *testing.T) {
	got := toneSamples(440, 440, 0.1)
	if len(got) != int(0.1*sampleRate)*2 {
		t.Fatalf("unexpected sample byte count %d", len(got))
	}
}
