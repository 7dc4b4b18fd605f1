package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/parser"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenResults
	screenStore
	screenStats
	screenRewards
	screenHelp
)

type menuItem int

const (
	itemPlay menuItem = iota
	itemStore
	itemStats
	itemRewards
	itemHelp
	itemQuit
	menuItemCount
)

var menuLabels = []string{"Play", "Store", "Stats", "Rewards", "Help", "Quit"}

const maxHistory = 6

type model struct {
	cfg    AppConfig
	ctrl   *game.SessionController
	parser *parser.Parser
	log    *slog.Logger
	input  textinput.Model

	screen     screen
	menuIdx    int
	choiceIdx  int
	status     string
	history    []string
	last       *game.AnswerOutcome
	lastPrompt string
	lastEntity string
	unlocked   []game.Reward
	width      int
	height     int
}

func newModel(cfg AppConfig) model {
	ti := textinput.New()
	ti.Placeholder = "type an answer or a command (help)"
	ti.CharLimit = 64
	ti.Width = 48
	ti.Prompt = "> "
	ti.Focus()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return model{
		cfg:    cfg,
		ctrl:   cfg.Controller,
		parser: parser.New(),
		log:    logger,
		input:  ti,
		screen: screenMenu,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.screen == screenMenu {
				return m, tea.Quit
			}
			m.screen = screenMenu
			m.status = ""
			return m, nil
		case tea.KeyEnter:
			raw := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(raw) == "" {
				return m.activate()
			}
			return m.submit(raw)
		}
		if m.input.Value() == "" {
			if next, handled := m.navigate(msg); handled {
				return next, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// navigate handles arrow keys while the prompt is empty.
func (m model) navigate(msg tea.KeyMsg) (model, bool) {
	switch m.screen {
	case screenMenu:
		switch msg.Type {
		case tea.KeyUp:
			m.menuIdx = (m.menuIdx + int(menuItemCount) - 1) % int(menuItemCount)
			return m, true
		case tea.KeyDown:
			m.menuIdx = (m.menuIdx + 1) % int(menuItemCount)
			return m, true
		}
	case screenPlay:
		v := m.ctrl.View()
		if msg.Type == tea.KeyTab {
			m.ctrl.SetScoringMode(toggleScoring(v.ScoringMode))
			m.status = fmt.Sprintf("Scoring: %s", m.ctrl.View().ScoringMode)
			return m, true
		}
		if v.InputMode != game.InputChoice || len(v.Options) == 0 {
			return m, false
		}
		switch msg.Type {
		case tea.KeyLeft:
			m.choiceIdx = (m.choiceIdx + len(v.Options) - 1) % len(v.Options)
			return m, true
		case tea.KeyRight:
			m.choiceIdx = (m.choiceIdx + 1) % len(v.Options)
			return m, true
		}
	}
	return m, false
}

func toggleScoring(mode game.ScoringMode) game.ScoringMode {
	if mode == game.ScoringDouble {
		return game.ScoringStandard
	}
	return game.ScoringDouble
}

// activate is Enter on an empty prompt.
func (m model) activate() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		switch menuItem(m.menuIdx) {
		case itemPlay:
			return m.dispatch(parser.Intent{Verb: "play"})
		case itemStore:
			m.screen = screenStore
		case itemStats:
			m.screen = screenStats
		case itemRewards:
			m.screen = screenRewards
		case itemHelp:
			m.screen = screenHelp
		case itemQuit:
			return m, tea.Quit
		}
		return m, nil
	case screenPlay:
		v := m.ctrl.View()
		if v.InputMode == game.InputChoice && len(v.Options) > 0 {
			return m.dispatch(parser.Intent{Verb: "pick", Args: []string{strconv.Itoa(m.choiceIdx)}})
		}
	case screenResults:
		return m.dispatch(parser.Intent{Verb: "again"})
	}
	return m, nil
}

func (m model) parseContext() parser.ParseContext {
	ctx := parser.ParseContext{LastEntity: m.lastEntity}
	catalog := m.ctrl.Catalog()
	balance := m.ctrl.Wallet().Balance()
	for _, item := range catalog.Items() {
		if catalog.IsOwned(item.ID) {
			continue
		}
		ctx.Items = append(ctx.Items, item.Name)
		if item.Price <= balance {
			ctx.Affordable = append(ctx.Affordable, item.Name)
		}
	}
	if features := m.ctrl.Features(); features != nil {
		for _, rw := range features.Rewards() {
			ctx.Features = append(ctx.Features, string(rw.Feature))
			if features.IsUnlocked(rw.Feature, catalog) {
				ctx.Unlocked = append(ctx.Unlocked, string(rw.Feature))
			}
		}
	}
	return ctx
}

func (m model) submit(raw string) (tea.Model, tea.Cmd) {
	intent := m.parser.Parse(m.parseContext(), raw)
	m.log.Debug("parsed input", "raw", raw, "verb", intent.Verb, "confidence", intent.Confidence)
	if intent.Clarify != nil {
		m.status = clarifyText(intent.Clarify)
		return m, nil
	}
	return m.dispatch(intent)
}

func clarifyText(q *parser.ClarifyQuestion) string {
	if len(q.Options) == 0 {
		return q.Prompt
	}
	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, parser.IntentToCommandString(o))
	}
	return q.Prompt + " " + strings.Join(opts, " / ")
}

func firstArg(intent parser.Intent) string {
	if len(intent.Args) == 0 {
		return ""
	}
	return intent.Args[0]
}

func (m model) dispatch(intent parser.Intent) (tea.Model, tea.Cmd) {
	switch intent.Verb {
	case "help":
		m.screen = screenHelp
	case "play":
		if m.ctrl.Phase() != game.PhaseInProgress {
			m.ctrl.Start()
			m.resetRound()
		}
		m.screen = screenPlay
	case "again":
		m.ctrl.Reset()
		m.resetRound()
		m.screen = screenPlay
	case "answer":
		n, err := game.ParseAnswer(firstArg(intent))
		if err != nil {
			m.status = "Answers are whole numbers, 0 or more."
			return m, nil
		}
		return m.applyAnswer(m.ctrl.SubmitAnswer(n))
	case "pick":
		idx, err := strconv.Atoi(firstArg(intent))
		if err != nil {
			m.status = "Pick 1, 2, 3 or 4."
			return m, nil
		}
		return m.applyAnswer(m.ctrl.SubmitChoice(idx))
	case "buy":
		return m.buy(firstArg(intent))
	case "enable", "disable":
		id := game.FeatureID(firstArg(intent))
		err := m.ctrl.SetFeature(id, intent.Verb == "enable")
		switch {
		case errors.Is(err, game.ErrFeatureLocked):
			m.status = fmt.Sprintf("%s is still locked. Complete its tier in the store.", id)
		case err != nil:
			m.status = fmt.Sprintf("Could not change %s: %v", id, err)
		default:
			m.status = fmt.Sprintf("%s %sd.", id, intent.Verb)
		}
		m.screen = screenRewards
	case "mode":
		mode := game.ScoringStandard
		if firstArg(intent) == "double" {
			mode = game.ScoringDouble
		}
		m.ctrl.SetScoringMode(mode)
		m.status = fmt.Sprintf("Scoring: %s (x%d)", mode, mode.Multiplier())
	case "input":
		mode := game.InputChoice
		if firstArg(intent) == "numeric" {
			mode = game.InputNumeric
		}
		m.ctrl.SetInputMode(mode)
		m.choiceIdx = 0
		m.status = fmt.Sprintf("Input: %s", mode)
	case "stats":
		m.screen = screenStats
	case "store":
		m.screen = screenStore
	case "rewards":
		m.screen = screenRewards
	case "coins":
		m.status = fmt.Sprintf("You have %d coins.", m.ctrl.Wallet().Balance())
	case "clear stats":
		if err := m.ctrl.ClearStatistics(); err != nil {
			m.status = fmt.Sprintf("Could not clear stats: %v", err)
		} else {
			m.status = "Statistics cleared."
		}
		m.screen = screenStats
	case "menu":
		m.screen = screenMenu
	case "quit":
		return m, tea.Quit
	default:
		m.status = "Unknown command. Type help."
	}
	return m, nil
}

func (m *model) resetRound() {
	m.last = nil
	m.lastPrompt = ""
	m.choiceIdx = 0
	m.unlocked = nil
	m.status = ""
}

func (m model) applyAnswer(out game.AnswerOutcome, err error) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, game.ErrNotStarted):
		m.status = "No round running. Type play."
		return m, nil
	case errors.Is(err, game.ErrRoundComplete):
		m.status = "Round finished. Type again for a new one."
		return m, nil
	case errors.Is(err, game.ErrInvalidChoice):
		m.status = "That option does not exist."
		return m, nil
	}

	prompt := m.lastAnsweredPrompt()
	m.last = &out
	m.lastPrompt = prompt
	m.choiceIdx = 0
	if out.IsCorrect {
		m.status = fmt.Sprintf("Correct! +%d coins (streak %d)", out.CoinsAwarded, out.Streak)
	} else {
		m.status = fmt.Sprintf("Not quite: %s %d", strings.TrimSuffix(prompt, "?"), out.CorrectAnswer)
	}
	if err != nil {
		m.log.Error("answer not fully saved", "err", err)
		m.status += " (progress not saved)"
	}
	m.pushHistory(m.status)
	if out.Complete {
		m.screen = screenResults
	} else {
		m.screen = screenPlay
	}
	if m.ctrl.FeatureActive(game.FeatureSoundEffects) {
		return m, bellCmd(out.IsCorrect)
	}
	return m, nil
}

// bellCmd rings the terminal bell: once for a correct answer, twice for a miss.
func bellCmd(correct bool) tea.Cmd {
	return func() tea.Msg {
		if correct {
			fmt.Fprint(os.Stderr, "\a")
		} else {
			fmt.Fprint(os.Stderr, "\a\a")
		}
		return nil
	}
}

// lastAnsweredPrompt is the prompt of the answer just recorded.
func (m model) lastAnsweredPrompt() string {
	answers := m.ctrl.View().Answers
	if len(answers) == 0 {
		return ""
	}
	return answers[len(answers)-1].Prompt
}

func (m model) buy(name string) (tea.Model, tea.Cmd) {
	m.screen = screenStore
	item, ok := m.ctrl.Catalog().FindByName(name)
	if !ok {
		m.status = fmt.Sprintf("No item called %q.", name)
		return m, nil
	}
	m.lastEntity = item.Name
	out, err := m.ctrl.Purchase(item.ID)
	switch {
	case errors.Is(err, game.ErrInsufficientFunds):
		m.status = fmt.Sprintf("%s costs %d coins; you have %d.", item.Name, item.Price, out.Balance)
		return m, nil
	case errors.Is(err, game.ErrAlreadyOwned):
		m.status = fmt.Sprintf("You already own the %s.", item.Name)
		return m, nil
	case err != nil && out.Item.ID == "":
		m.status = fmt.Sprintf("Could not buy %s: %v", item.Name, err)
		return m, nil
	}
	m.status = fmt.Sprintf("Bought %s %s! %d coins left.", item.Emoji, item.Name, out.Balance)
	if err != nil {
		m.log.Error("purchase not fully saved", "item", item.ID, "err", err)
		m.status += " (progress not saved)"
	}
	if len(out.Unlocked) > 0 {
		m.unlocked = append(m.unlocked, out.Unlocked...)
		for _, rw := range out.Unlocked {
			m.pushHistory(fmt.Sprintf("Unlocked %s for completing the %s tier!", rw.DisplayName, rw.Tier))
		}
		m.screen = screenRewards
	}
	return m, nil
}

func (m *model) pushHistory(line string) {
	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}
