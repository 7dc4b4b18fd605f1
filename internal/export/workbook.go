// Package export writes a player's progress to an Excel workbook.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/appengine-ltd/mathdash/internal/game"
)

const (
	SheetSummary    = "Summary"
	SheetProblems   = "Problems"
	SheetRounds     = "Rounds"
	SheetCollection = "Collection"
)

var ErrBadExtension = errors.New("export file must end in .xlsx")

// Snapshot is everything the workbook shows.
type Snapshot struct {
	Problems   []game.ProblemStat
	Scores     []game.GameScoreEntry
	Owned      []game.CatalogItem
	Balance    int
	TotalItems int
	Unlocked   []game.Reward
	Generated  time.Time
}

// SnapshotFrom reads the live stores behind ctrl.
func SnapshotFrom(ctrl *game.SessionController, now time.Time) Snapshot {
	s := Snapshot{
		Problems:   ctrl.Ledger().Problems(),
		Scores:     ctrl.Ledger().Scores(),
		Owned:      ctrl.Catalog().OwnedItems(),
		Balance:    ctrl.Wallet().Balance(),
		TotalItems: ctrl.Catalog().TotalCount(),
		Generated:  now,
	}
	if features := ctrl.Features(); features != nil {
		for _, rw := range features.Rewards() {
			if features.IsUnlocked(rw.Feature, ctrl.Catalog()) {
				s.Unlocked = append(s.Unlocked, rw)
			}
		}
	}
	return s
}

// Build lays the snapshot out over four sheets.
func Build(s Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), SheetSummary)
	for _, name := range []string{SheetProblems, SheetRounds, SheetCollection} {
		f.NewSheet(name)
	}
	if got := f.GetSheetList(); len(got) != 4 {
		f.Close()
		return nil, fmt.Errorf("workbook sheets %v", got)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	writers := []func(*excelize.File, Snapshot, int) error{
		writeSummary, writeProblems, writeRounds, writeCollection,
	}
	for _, w := range writers {
		if err := w(f, s, header); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and saves it to path.
func Write(path string, s Snapshot) error {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("%q: %w", path, ErrBadExtension)
	}
	f, err := Build(s)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, header int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, header)
}

func writeSummary(f *excelize.File, s Snapshot, header int) error {
	attempts, correct := 0, 0
	for _, p := range s.Problems {
		attempts += p.Total
		correct += p.Correct
	}
	accuracy := 0.0
	if attempts > 0 {
		accuracy = float64(correct) / float64(attempts)
	}
	unlocked := make([]string, 0, len(s.Unlocked))
	for _, rw := range s.Unlocked {
		unlocked = append(unlocked, rw.DisplayName)
	}
	rows := [][]any{
		{"Field", "Value"},
		{"Generated", s.Generated.Format(time.RFC3339)},
		{"Questions answered", attempts},
		{"Answered correctly", correct},
		{"Accuracy", accuracy},
		{"Rounds played", len(s.Scores)},
		{"Coins", s.Balance},
		{"Items owned", fmt.Sprintf("%d/%d", len(s.Owned), s.TotalItems)},
		{"Rewards unlocked", strings.Join(unlocked, ", ")},
	}
	if err := writeRows(f, SheetSummary, header, rows); err != nil {
		return err
	}
	pct, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "B5", "B5", pct); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "A", 22)
}

func writeProblems(f *excelize.File, s Snapshot, header int) error {
	rows := [][]any{{"Problem", "Correct", "Incorrect", "Total"}}
	for _, p := range s.Problems {
		rows = append(rows, []any{string(p.Problem), p.Correct, p.Incorrect, p.Total})
	}
	if err := writeRows(f, SheetProblems, header, rows); err != nil {
		return err
	}
	return f.SetColWidth(SheetProblems, "A", "A", 16)
}

func writeRounds(f *excelize.File, s Snapshot, header int) error {
	rows := [][]any{{"Date", "Timestamp", "Score", "Questions", "ID"}}
	for _, e := range s.Scores {
		rows = append(rows, []any{e.Date, e.Timestamp.UTC().Format(time.RFC3339), e.Score, e.TotalQuestions, e.ID})
	}
	if err := writeRows(f, SheetRounds, header, rows); err != nil {
		return err
	}
	return f.SetColWidth(SheetRounds, "A", "B", 22)
}

func writeCollection(f *excelize.File, s Snapshot, header int) error {
	rows := [][]any{{"Item", "Tier", "Price"}}
	for _, item := range s.Owned {
		rows = append(rows, []any{item.Name, item.Tier.String(), item.Price})
	}
	if err := writeRows(f, SheetCollection, header, rows); err != nil {
		return err
	}
	return f.SetColWidth(SheetCollection, "A", "A", 22)
}
