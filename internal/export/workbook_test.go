package export

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/store"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Problems: []game.ProblemStat{
			{Problem: "6 × 7 = ?", Correct: 3, Incorrect: 1, Total: 4},
			{Problem: "72 ÷ 8 = ?", Correct: 0, Incorrect: 2, Total: 2},
		},
		Scores: []game.GameScoreEntry{
			{ID: "a", Score: 18, TotalQuestions: 20, Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Date: "3/1/2026"},
		},
		Owned: []game.CatalogItem{
			{ID: "kite", Name: "Kite", Price: 15, Tier: game.TierCheap},
		},
		Balance:    42,
		TotalItems: 38,
		Generated:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read %s: %v", sheet, err)
	}
	return rows
}

func TestWriteProducesAllSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	if err := Write(path, testSnapshot()); err != nil {
		t.Fatalf("write: %v", err)
	}

	problems := readSheet(t, path, SheetProblems)
	if len(problems) != 3 {
		t.Fatalf("expected header + 2 problem rows, got %d", len(problems))
	}
	if problems[1][0] != "6 × 7 = ?" || problems[1][3] != "4" {
		t.Fatalf("unexpected first problem row %v", problems[1])
	}

	rounds := readSheet(t, path, SheetRounds)
	if len(rounds) != 2 || rounds[1][2] != "18" || rounds[1][4] != "a" {
		t.Fatalf("unexpected rounds %v", rounds)
	}

	summary := readSheet(t, path, SheetSummary)
	found := false
	for _, row := range summary {
		if len(row) == 2 && row[0] == "Items owned" {
			found = true
			if row[1] != "1/38" {
				t.Fatalf("unexpected owned summary %q", row[1])
			}
		}
	}
	if !found {
		t.Fatalf("summary missing owned row: %v", summary)
	}

	collection := readSheet(t, path, SheetCollection)
	if len(collection) != 2 || collection[1][1] != "cheap" {
		t.Fatalf("unexpected collection %v", collection)
	}
}

func TestWriteRejectsOtherExtensions(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "progress.csv"), testSnapshot())
	if !errors.Is(err, ErrBadExtension) {
		t.Fatalf("expected ErrBadExtension, got %v", err)
	}
}

func TestEmptySnapshotStillBuilds(t *testing.T) {
	f, err := Build(Snapshot{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetProblems)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestSnapshotFromController(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set("coins", []byte("30"))
	engine, err := game.NewQuestionEngine(game.NewRNG(1), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	catalog, err := game.NewCatalog(kv, game.BuiltinItems(), nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	ctrl, err := game.NewSessionController(game.ControllerConfig{
		Engine:            engine,
		Ledger:            game.NewStatisticsLedger(kv, nil),
		Wallet:            game.NewWallet(kv, nil),
		Catalog:           catalog,
		Features:          game.NewFeatureRegistry(kv, nil),
		QuestionsPerRound: 1,
	})
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	ctrl.Start()
	if _, err := ctrl.SubmitAnswer(0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := ctrl.Purchase("kite"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := SnapshotFrom(ctrl, now)
	if len(s.Problems) != 1 || len(s.Scores) != 1 {
		t.Fatalf("expected one problem and one round, got %d/%d", len(s.Problems), len(s.Scores))
	}
	if len(s.Owned) != 1 || s.Owned[0].ID != "kite" {
		t.Fatalf("unexpected owned %+v", s.Owned)
	}
	if s.Balance != ctrl.Wallet().Balance() || !s.Generated.Equal(now) {
		t.Fatalf("snapshot out of sync: %+v", s)
	}
}
