package game

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/appengine-ltd/mathdash/internal/store"
	"github.com/google/uuid"
)

// MaxScoreHistory caps the stored game scores; the oldest entry is evicted first.
const MaxScoreHistory = 20

// ProblemKey identifies a problem in the ledger by its normalized prompt.
type ProblemKey string

func NewProblemKey(prompt string) ProblemKey {
	return ProblemKey(strings.Join(strings.Fields(prompt), " "))
}

type ProblemStat struct {
	Problem   ProblemKey `json:"-"`
	Correct   int        `json:"correct"`
	Incorrect int        `json:"incorrect"`
	Total     int        `json:"total"`
}

type GameScoreEntry struct {
	ID             string    `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Timestamp      time.Time `json:"timestamp"`
	Date           string    `json:"date"`
}

type Statistics struct {
	MostMissed    []ProblemStat
	MostCorrect   []ProblemStat
	TotalAttempts int
	TotalCorrect  int
	Scores        []GameScoreEntry
}

// StatisticsLedger keeps per-problem answer counts and the recent score
// history. Every mutation is written through to the store.
type StatisticsLedger struct {
	kv     store.KV
	log    *slog.Logger
	now    func() time.Time
	newID  func() string
	stats  map[ProblemKey]ProblemStat
	scores []GameScoreEntry
}

func NewStatisticsLedger(kv store.KV, logger *slog.Logger) *StatisticsLedger {
	l := &StatisticsLedger{
		kv:    kv,
		log:   loggerOrDefault(logger),
		now:   time.Now,
		newID: uuid.NewString,
	}
	l.load()
	return l
}

func (l *StatisticsLedger) load() {
	raw := loadJSON[map[ProblemKey]ProblemStat](l.kv, keyStats, l.log)
	l.stats = make(map[ProblemKey]ProblemStat, len(raw))
	for key, st := range raw {
		key = NewProblemKey(string(key))
		if key == "" || st.Correct < 0 || st.Incorrect < 0 {
			continue
		}
		st.Problem = key
		st.Total = st.Correct + st.Incorrect
		l.stats[key] = st
	}

	scores := loadJSON[[]GameScoreEntry](l.kv, keyScores, l.log)
	if len(scores) > MaxScoreHistory {
		scores = scores[len(scores)-MaxScoreHistory:]
	}
	l.scores = scores
}

func (l *StatisticsLedger) RecordAnswer(prompt string, isCorrect bool) error {
	key := NewProblemKey(prompt)
	st := l.stats[key]
	st.Problem = key
	st.Total++
	if isCorrect {
		st.Correct++
	} else {
		st.Incorrect++
	}
	l.stats[key] = st
	return saveJSON(l.kv, keyStats, l.stats)
}

func (l *StatisticsLedger) RecordGameScore(score, totalQuestions int) (GameScoreEntry, error) {
	now := l.now()
	entry := GameScoreEntry{
		ID:             l.newID(),
		Score:          score,
		TotalQuestions: totalQuestions,
		Timestamp:      now.UTC(),
		Date:           now.Format(time.DateOnly),
	}
	l.scores = append(l.scores, entry)
	if over := len(l.scores) - MaxScoreHistory; over > 0 {
		l.scores = slices.Clone(l.scores[over:])
	}
	return entry, saveJSON(l.kv, keyScores, l.scores)
}

func (l *StatisticsLedger) Problem(prompt string) (ProblemStat, bool) {
	st, ok := l.stats[NewProblemKey(prompt)]
	return st, ok
}

// Problems lists every tracked problem ordered by key.
func (l *StatisticsLedger) Problems() []ProblemStat {
	all := make([]ProblemStat, 0, len(l.stats))
	for _, st := range l.stats {
		all = append(all, st)
	}
	slices.SortFunc(all, func(a, b ProblemStat) int {
		return cmp.Compare(a.Problem, b.Problem)
	})
	return all
}

func (l *StatisticsLedger) Scores() []GameScoreEntry {
	return slices.Clone(l.scores)
}

func (l *StatisticsLedger) Statistics() Statistics {
	out := Statistics{Scores: l.Scores()}
	for _, st := range l.Problems() {
		out.TotalAttempts += st.Total
		out.TotalCorrect += st.Correct
		if st.Incorrect > 0 {
			out.MostMissed = append(out.MostMissed, st)
		}
		if st.Correct > 0 {
			out.MostCorrect = append(out.MostCorrect, st)
		}
	}
	slices.SortStableFunc(out.MostMissed, func(a, b ProblemStat) int {
		return cmp.Compare(b.Incorrect, a.Incorrect)
	})
	slices.SortStableFunc(out.MostCorrect, func(a, b ProblemStat) int {
		return cmp.Compare(b.Correct, a.Correct)
	})
	return out
}

// ClearAll wipes every problem counter and the score history.
func (l *StatisticsLedger) ClearAll() error {
	l.stats = make(map[ProblemKey]ProblemStat)
	l.scores = nil
	errStats := saveJSON(l.kv, keyStats, l.stats)
	errScores := saveJSON(l.kv, keyScores, []GameScoreEntry{})
	if errStats != nil {
		return errStats
	}
	return errScores
}
