package game

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseComplete:
		return "complete"
	default:
		return "not_started"
	}
}

// ScoringMode scales both score and coins for correct answers.
type ScoringMode int

const (
	ScoringStandard ScoringMode = iota
	ScoringDouble
)

func (m ScoringMode) Multiplier() int {
	if m == ScoringDouble {
		return 2
	}
	return 1
}

func (m ScoringMode) String() string {
	if m == ScoringDouble {
		return "double"
	}
	return "standard"
}

type InputMode int

const (
	InputChoice InputMode = iota
	InputNumeric
)

func (m InputMode) String() string {
	if m == InputNumeric {
		return "numeric"
	}
	return "choice"
}

type AnswerRecord struct {
	Prompt        string
	CorrectAnswer int
	UserAnswer    int
	IsCorrect     bool
}

type AnswerOutcome struct {
	IsCorrect     bool
	CorrectAnswer int
	CoinsAwarded  int
	Streak        int
	Score         int
	Complete      bool
	// ScoreEntry is set on the answer that completed the round.
	ScoreEntry *GameScoreEntry
}

type PurchaseOutcome struct {
	Item     CatalogItem
	Balance  int
	Unlocked []Reward
}

// PurchaseHook observes completed purchases. It runs after the item is
// owned and the coins are gone, and reports rewards to announce.
type PurchaseHook interface {
	AfterPurchase(c *Catalog, item CatalogItem) ([]Reward, error)
}

// View is a read-only snapshot for presentation layers.
type View struct {
	Phase          Phase
	Index          int
	Total          int
	Prompt         string
	Options        []int
	InputMode      InputMode
	ScoringMode    ScoringMode
	Score          int
	Correct        int
	Streak         int
	CoinsThisRound int
	Balance        int
	Answers        []AnswerRecord
	Result         ResultTier
}

func (v View) Progress() float64 {
	if v.Total == 0 {
		return 0
	}
	return float64(v.Index) / float64(v.Total)
}

type ControllerConfig struct {
	Engine            *QuestionEngine
	Ledger            *StatisticsLedger
	Wallet            *Wallet
	Catalog           *Catalog
	Features          *FeatureRegistry
	Hooks             []PurchaseHook
	QuestionsPerRound int
	Logger            *slog.Logger
}

// SessionController drives rounds and purchases. It owns the transient round
// state and applies each answer to the ledger and wallet in a fixed order.
type SessionController struct {
	engine   *QuestionEngine
	ledger   *StatisticsLedger
	wallet   *Wallet
	catalog  *Catalog
	features *FeatureRegistry
	hooks    []PurchaseHook
	log      *slog.Logger
	perRound int

	phase       Phase
	questions   []Question
	index       int
	options     []int
	score       int
	correct     int
	streak      int
	coinsRound  int
	answers     []AnswerRecord
	scoringMode ScoringMode
	inputMode   InputMode
}

func NewSessionController(cfg ControllerConfig) (*SessionController, error) {
	switch {
	case cfg.Engine == nil:
		return nil, errors.New("session controller needs a question engine")
	case cfg.Ledger == nil:
		return nil, errors.New("session controller needs a statistics ledger")
	case cfg.Wallet == nil:
		return nil, errors.New("session controller needs a wallet")
	case cfg.Catalog == nil:
		return nil, errors.New("session controller needs a catalog")
	}
	perRound := cfg.QuestionsPerRound
	if perRound < 1 {
		perRound = DefaultQuestionCount
	}
	hooks := slices.Clone(cfg.Hooks)
	if cfg.Features != nil {
		hooks = append([]PurchaseHook{cfg.Features}, hooks...)
	}
	return &SessionController{
		engine:   cfg.Engine,
		ledger:   cfg.Ledger,
		wallet:   cfg.Wallet,
		catalog:  cfg.Catalog,
		features: cfg.Features,
		hooks:    hooks,
		log:      loggerOrDefault(cfg.Logger),
		perRound: perRound,
	}, nil
}

func (s *SessionController) Phase() Phase { return s.phase }

func (s *SessionController) Catalog() *Catalog { return s.catalog }

func (s *SessionController) Features() *FeatureRegistry { return s.features }

func (s *SessionController) Ledger() *StatisticsLedger { return s.ledger }

func (s *SessionController) Wallet() *Wallet { return s.wallet }

// Start begins a fresh round from any phase.
func (s *SessionController) Start() {
	s.questions = s.engine.GenerateSession(s.perRound)
	s.index = 0
	s.score = 0
	s.correct = 0
	s.streak = 0
	s.coinsRound = 0
	s.answers = nil
	s.phase = PhaseInProgress
	s.refreshOptions()
	s.log.Info("round started", "questions", len(s.questions), "scoring", s.scoringMode, "input", s.inputMode)
}

// Reset is "play again": it discards the round and starts a new one.
func (s *SessionController) Reset() {
	s.Start()
}

func (s *SessionController) current() (Question, error) {
	switch s.phase {
	case PhaseNotStarted:
		return Question{}, ErrNotStarted
	case PhaseComplete:
		return Question{}, ErrRoundComplete
	}
	return s.questions[s.index], nil
}

func (s *SessionController) refreshOptions() {
	s.options = nil
	if s.phase != PhaseInProgress || s.inputMode != InputChoice {
		return
	}
	s.options = s.engine.Options(s.questions[s.index].CorrectAnswer)
}

// SubmitAnswer scores userAnswer against the current question. Every
// in-memory effect is applied before persistence errors are reported, so a
// failed write never leaves the round half-advanced.
func (s *SessionController) SubmitAnswer(userAnswer int) (AnswerOutcome, error) {
	q, err := s.current()
	if err != nil {
		return AnswerOutcome{}, err
	}

	isCorrect := userAnswer == q.CorrectAnswer
	s.answers = append(s.answers, AnswerRecord{
		Prompt:        q.Prompt,
		CorrectAnswer: q.CorrectAnswer,
		UserAnswer:    userAnswer,
		IsCorrect:     isCorrect,
	})

	var errs []error
	if err := s.ledger.RecordAnswer(q.Prompt, isCorrect); err != nil {
		errs = append(errs, err)
	}

	coins := 0
	if isCorrect {
		s.streak++
		mult := s.scoringMode.Multiplier()
		s.score += mult
		s.correct++
		coins = s.streak * mult
		if _, err := s.wallet.Add(coins); err != nil {
			errs = append(errs, err)
		}
		s.coinsRound += coins
	} else {
		s.streak = 0
	}

	out := AnswerOutcome{
		IsCorrect:     isCorrect,
		CorrectAnswer: q.CorrectAnswer,
		CoinsAwarded:  coins,
		Streak:        s.streak,
		Score:         s.score,
	}

	s.index++
	if s.index >= len(s.questions) {
		s.phase = PhaseComplete
		s.options = nil
		entry, err := s.ledger.RecordGameScore(s.score, len(s.questions))
		if err != nil {
			errs = append(errs, err)
		}
		out.Complete = true
		out.ScoreEntry = &entry
		s.log.Info("round complete",
			"score", s.score,
			"correct", s.correct,
			"total", len(s.questions),
			"coins", s.coinsRound,
			"result", ClassifyResult(s.correct, len(s.questions)),
		)
	} else {
		s.refreshOptions()
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.log.Error("answer persisted partially", "prompt", q.Prompt, "err", err)
		return out, err
	}
	return out, nil
}

// SubmitChoice answers with the option at index in the current option set.
func (s *SessionController) SubmitChoice(index int) (AnswerOutcome, error) {
	if _, err := s.current(); err != nil {
		return AnswerOutcome{}, err
	}
	if s.inputMode != InputChoice || index < 0 || index >= len(s.options) {
		return AnswerOutcome{}, fmt.Errorf("option %d: %w", index, ErrInvalidChoice)
	}
	return s.SubmitAnswer(s.options[index])
}

// SetScoringMode switches between standard and double scoring. Past answers
// keep what they earned; the current question gets fresh options.
func (s *SessionController) SetScoringMode(mode ScoringMode) {
	if mode == s.scoringMode {
		return
	}
	s.scoringMode = mode
	s.refreshOptions()
	s.log.Info("scoring mode changed", "mode", mode)
}

func (s *SessionController) SetInputMode(mode InputMode) {
	if mode == s.inputMode {
		return
	}
	s.inputMode = mode
	s.refreshOptions()
	s.log.Info("input mode changed", "mode", mode)
}

// Purchase buys itemID: coins first, ownership second, then hooks. When the
// spend fails nothing changes.
func (s *SessionController) Purchase(itemID string) (PurchaseOutcome, error) {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		return PurchaseOutcome{}, fmt.Errorf("%q: %w", itemID, ErrUnknownItem)
	}
	if s.catalog.IsOwned(item.ID) {
		return PurchaseOutcome{Item: item, Balance: s.wallet.Balance()}, fmt.Errorf("%q: %w", item.ID, ErrAlreadyOwned)
	}

	var errs []error
	if err := s.wallet.Spend(item.Price); err != nil {
		if errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrInvalidAmount) {
			return PurchaseOutcome{Item: item, Balance: s.wallet.Balance()}, err
		}
		errs = append(errs, err)
	}
	if err := s.catalog.Purchase(item.ID); err != nil {
		errs = append(errs, err)
	}

	out := PurchaseOutcome{Item: item, Balance: s.wallet.Balance()}
	for _, hook := range s.hooks {
		unlocked, err := hook.AfterPurchase(s.catalog, item)
		if err != nil {
			errs = append(errs, err)
		}
		out.Unlocked = append(out.Unlocked, unlocked...)
	}
	s.log.Info("item purchased", "item", item.ID, "price", item.Price, "balance", out.Balance, "unlocked", len(out.Unlocked))
	for _, rw := range out.Unlocked {
		s.log.Info("feature unlocked", "feature", rw.Feature, "tier", rw.Tier)
	}
	return out, errors.Join(errs...)
}

// SetFeature flips a reward toggle on the user's behalf. Enabling requires
// the reward's tier to be complete; disabling is always allowed.
func (s *SessionController) SetFeature(id FeatureID, enabled bool) error {
	if s.features == nil {
		return fmt.Errorf("%q: %w", id, ErrUnknownFeature)
	}
	if _, ok := s.features.Reward(id); !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownFeature)
	}
	if enabled && !s.features.IsUnlocked(id, s.catalog) {
		return fmt.Errorf("%q: %w", id, ErrFeatureLocked)
	}
	return s.features.SetToggle(id, enabled)
}

// FeatureActive is the effective toggle state used by presentation layers.
func (s *SessionController) FeatureActive(id FeatureID) bool {
	return s.features != nil && s.features.IsActive(id, s.catalog)
}

func (s *SessionController) ClearStatistics() error {
	s.log.Warn("clearing statistics")
	return s.ledger.ClearAll()
}

func (s *SessionController) View() View {
	v := View{
		Phase:          s.phase,
		Index:          s.index,
		Total:          len(s.questions),
		InputMode:      s.inputMode,
		ScoringMode:    s.scoringMode,
		Score:          s.score,
		Correct:        s.correct,
		Streak:         s.streak,
		CoinsThisRound: s.coinsRound,
		Balance:        s.wallet.Balance(),
		Answers:        slices.Clone(s.answers),
		Options:        slices.Clone(s.options),
	}
	if s.phase == PhaseInProgress {
		v.Prompt = s.questions[s.index].Prompt
	}
	if s.phase == PhaseComplete {
		v.Result = ClassifyResult(s.correct, len(s.questions))
	}
	return v
}
