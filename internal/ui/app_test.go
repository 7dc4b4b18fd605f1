package ui

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/store"
)

func testController(t *testing.T, kv store.KV, perRound int) *game.SessionController {
	t.Helper()
	engine, err := game.NewQuestionEngine(game.NewRNG(7), nil)
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
	return ctrl
}

func testModel(t *testing.T, kv store.KV, perRound int) model {
	t.Helper()
	return newModel(AppConfig{Version: "test", Controller: testController(t, kv, perRound)})
}

// solve reads the displayed prompt back into its answer.
func solve(t *testing.T, prompt string) int {
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

func submit(t *testing.T, m model, raw string) model {
	t.Helper()
	got, _ := m.submit(raw)
	return got.(model)
}

func TestMenuEnterStartsRound(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	got, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = got.(model)
	if m.screen != screenPlay || m.ctrl.Phase() != game.PhaseInProgress {
		t.Fatalf("expected play screen with a running round, got screen %v phase %v", m.screen, m.ctrl.Phase())
	}
	if !strings.Contains(m.View(), "Question 1/3") {
		t.Fatalf("expected progress text in play view")
	}
}

func TestMenuArrowKeysWrap(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	got, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = got.(model)
	if menuItem(m.menuIdx) != itemQuit {
		t.Fatalf("expected wrap to quit, got %d", m.menuIdx)
	}
}

func TestTypedAnswersFinishRound(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	m = submit(t, m, "play")
	for i := 0; i < 3; i++ {
		answer := solve(t, m.ctrl.View().Prompt)
		m = submit(t, m, strconv.Itoa(answer))
		if m.last == nil || !m.last.IsCorrect {
			t.Fatalf("answer %d should be correct, status %q", i, m.status)
		}
	}
	if m.screen != screenResults {
		t.Fatalf("expected results screen, got %v", m.screen)
	}
	view := m.View()
	if !strings.Contains(view, "PERFECT") {
		t.Fatalf("expected perfect banner in results view")
	}
	if m.ctrl.Wallet().Balance() != 6 {
		t.Fatalf("expected 1+2+3 coins, got %d", m.ctrl.Wallet().Balance())
	}

	got, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = got.(model)
	if m.screen != screenPlay || m.ctrl.View().Index != 0 {
		t.Fatalf("enter on results should start a new round")
	}
}

func TestWrongAnswerShowsCorrection(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	m = submit(t, m, "play")
	answer := solve(t, m.ctrl.View().Prompt)
	m = submit(t, m, strconv.Itoa(answer+1))
	if m.last == nil || m.last.IsCorrect {
		t.Fatalf("expected a miss")
	}
	if !strings.Contains(m.status, strconv.Itoa(answer)) {
		t.Fatalf("status should reveal the answer, got %q", m.status)
	}
}

func TestNegativeAnswerRejectedBeforeRecording(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	m = submit(t, m, "play")
	m = submit(t, m, "-5")
	if len(m.ctrl.View().Answers) != 0 {
		t.Fatalf("invalid input must not become an answer record")
	}
	if !strings.Contains(m.status, "whole numbers") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestChoiceCursorSubmitsOption(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	m = submit(t, m, "play")
	v := m.ctrl.View()
	answer := solve(t, v.Prompt)
	target := -1
	for i, opt := range v.Options {
		if opt == answer {
			target = i
		}
	}
	if target < 0 {
		t.Fatalf("options %v missing %d", v.Options, answer)
	}
	for i := 0; i < target; i++ {
		got, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = got.(model)
	}
	got, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = got.(model)
	if m.last == nil || !m.last.IsCorrect {
		t.Fatalf("expected highlighted correct option to score, status %q", m.status)
	}
}

func TestBuyWithoutCoinsExplains(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set("coins", []byte("10"))
	m := testModel(t, kv, 3)
	m = submit(t, m, "buy kite")
	if !strings.Contains(m.status, "costs 15") {
		t.Fatalf("expected price explanation, got %q", m.status)
	}
	if m.ctrl.Catalog().IsOwned("kite") || m.ctrl.Wallet().Balance() != 10 {
		t.Fatalf("failed purchase changed state")
	}
}

func TestCompletingTierShowsUnlock(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set("coins", []byte("500"))
	m := testModel(t, kv, 3)
	for _, item := range m.ctrl.Catalog().ItemsInTier(game.TierCheap) {
		m = submit(t, m, "buy "+item.Name)
	}
	if m.screen != screenRewards || len(m.unlocked) != 1 {
		t.Fatalf("expected rewards screen with one unlock, got screen %v unlocked %+v (status %q)", m.screen, m.unlocked, m.status)
	}
	if !strings.Contains(m.View(), "Confetti") {
		t.Fatalf("expected unlock announcement in view")
	}
	m = submit(t, m, "disable confetti")
	if m.ctrl.FeatureActive(game.FeatureConfetti) {
		t.Fatalf("disable should turn confetti off")
	}
}

func TestEnableLockedFeature(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	m = submit(t, m, "enable fireworks")
	if !strings.Contains(m.status, "locked") {
		t.Fatalf("expected locked message, got %q", m.status)
	}
}

func TestModeCommandAndTabToggle(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	m = submit(t, m, "play")
	m = submit(t, m, "mode double")
	if m.ctrl.View().ScoringMode != game.ScoringDouble {
		t.Fatalf("expected double scoring")
	}
	got, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = got.(model)
	if m.ctrl.View().ScoringMode != game.ScoringStandard {
		t.Fatalf("tab should toggle back to standard")
	}
}

func TestClarifyListsOptions(t *testing.T) {
	m := testModel(t, store.NewMemory(), 3)
	m = submit(t, m, "st")
	if !strings.Contains(m.status, "Did you mean") {
		t.Fatalf("expected clarify prompt, got %q", m.status)
	}
}

func TestStatsViewAfterRound(t *testing.T) {
	m := testModel(t, store.NewMemory(), 2)
	m = submit(t, m, "play")
	answer := solve(t, m.ctrl.View().Prompt)
	m = submit(t, m, strconv.Itoa(answer+2))
	m = submit(t, m, strconv.Itoa(solve(t, m.ctrl.View().Prompt)))
	m = submit(t, m, "stats")
	view := m.View()
	if !strings.Contains(view, "Most missed") || !strings.Contains(view, "missed 1 of") {
		t.Fatalf("expected most-missed entry in stats view:\n%s", view)
	}
}

func TestMedalFallsBackForTinyPanes(t *testing.T) {
	if got := renderMedalANSI(game.ResultPerfect, false, 4, 2); got != "★★★" {
		t.Fatalf("expected text fallback, got %q", got)
	}
	if got := renderMedalANSI(game.ResultGoodJob, true, 20, 8); !strings.Contains(got, "▀") {
		t.Fatalf("expected half-block render")
	}
}
