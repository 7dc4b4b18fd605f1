package gui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/parser"
	uitheme "github.com/appengine-ltd/mathdash/internal/ui/theme"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Controller *game.SessionController
	Logger     *slog.Logger
	// Seed drives the celebration effects; zero uses the clock.
	Seed int64
	// AssetsDir holds fonts/ and ui/. Defaults to ./assets.
	AssetsDir string
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

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

type menuAction int

const (
	actionPlay menuAction = iota
	actionStore
	actionStats
	actionRewards
	actionHelp
	actionQuit
)

type menuItem struct {
	Label  string
	Action menuAction
}

var menuItems = []menuItem{
	{Label: "Play", Action: actionPlay},
	{Label: "Store", Action: actionStore},
	{Label: "Stats", Action: actionStats},
	{Label: "Rewards", Action: actionRewards},
	{Label: "Help", Action: actionHelp},
	{Label: "Quit", Action: actionQuit},
}

const (
	maxMessages   = 120
	inputMaxLen   = 64
	defaultWidth  = 1280
	defaultHeight = 800
)

type listCursor struct {
	Index  int
	Offset int
}

// clampTo keeps the cursor on a row and the row inside a window of visible rows.
func (c *listCursor) clampTo(rows, visible int) {
	c.Index = clampInt(c.Index, 0, max(rows-1, 0))
	if visible < 1 {
		visible = 1
	}
	if c.Index < c.Offset {
		c.Offset = c.Index
	}
	if c.Index >= c.Offset+visible {
		c.Offset = c.Index - visible + 1
	}
	c.Offset = clampInt(c.Offset, 0, max(rows-visible, 0))
}

type gameUI struct {
	cfg    AppConfig
	ctrl   *game.SessionController
	parser *parser.Parser
	log    *slog.Logger
	queue  *intentQueue

	width  int32
	height int32
	quit   bool

	screen     screen
	menuCursor int
	choiceIdx  int
	store      listCursor
	rewards    listCursor

	input          string
	status         string
	messages       []string
	pendingClarify *parser.ClarifyQuestion
	lastEntity     string
	last           *game.AnswerOutcome
	lastPrompt     string
	unlocked       []game.Reward

	effects *particleField
	board   whiteboard
	sounds  soundBank

	lastTick time.Time
}

func (a *App) Run() error {
	ui, err := newGameUI(a.cfg)
	if err != nil {
		return err
	}
	return ui.Run()
}

func newGameUI(cfg AppConfig) (*gameUI, error) {
	if cfg.Controller == nil {
		return nil, errors.New("gui: controller is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ui := &gameUI{
		cfg:     cfg,
		ctrl:    cfg.Controller,
		parser:  parser.New(),
		log:     logger,
		queue:   newIntentQueue(32),
		width:   defaultWidth,
		height:  defaultHeight,
		screen:  screenMenu,
		effects: newParticleField(game.NewRNG(cfg.Seed)),
	}
	ui.lastTick = time.Now()
	return ui, nil
}

func (ui *gameUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "Math Dash")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	assets := ui.cfg.AssetsDir
	if assets == "" {
		assets = "assets"
	}
	initTypography(assets)
	textures := uitheme.InitSkin(assets)
	ui.sounds.init()
	ui.log.Info("window opened", "width", ui.width, "height", ui.height, "textures", textures)

	for !ui.quit && !rl.WindowShouldClose() {
		now := time.Now()
		delta := now.Sub(ui.lastTick)
		if delta < 0 {
			delta = 0
		}
		ui.lastTick = now

		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())
		applyPalette(ui.ctrl.FeatureActive(game.FeatureGoldenTheme))

		ui.update(delta)

		rl.BeginDrawing()
		rl.ClearBackground(AppTheme.Background)
		ui.draw()
		rl.EndDrawing()
	}

	ui.sounds.close()
	uitheme.UnloadSkin()
	shutdownTypography()
	rl.CloseWindow()
	return nil
}

func (ui *gameUI) update(delta time.Duration) {
	ui.effects.Step(float32(delta.Seconds()))

	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.back()
		return
	}
	if HotkeysEnabled(ui) && pollHotkeys(ui, ui.queue) {
		flushCharQueue()
	} else {
		captureTextInput(&ui.input, inputMaxLen)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		if strings.TrimSpace(ui.input) != "" {
			ui.submitInput()
		} else {
			ui.activate()
		}
	}

	switch ui.screen {
	case screenMenu:
		ui.updateMenu()
	case screenPlay:
		ui.updatePlay()
	case screenStore:
		ui.updateStore()
	case screenRewards:
		ui.updateRewards()
	}
	ui.drainQueue()
}

func (ui *gameUI) draw() {
	inset := DrawFrame(ui.width, ui.height)
	content := rl.NewRectangle(inset.X+spaceS, inset.Y+spaceS, inset.Width-spaceS*2, inset.Height-spaceS*2)
	header, body, footer := splitLayout(content)

	ui.drawHeader(header)
	switch ui.screen {
	case screenMenu:
		ui.drawMenu(body)
	case screenPlay:
		ui.drawPlay(body)
	case screenResults:
		ui.drawResults(body)
	case screenStore:
		ui.drawStore(body)
	case screenStats:
		ui.drawStats(body)
	case screenRewards:
		ui.drawRewards(body)
	case screenHelp:
		ui.drawHelp(body)
	}
	ui.drawFooter(footer)
	ui.effects.Draw()
}

func splitLayout(content rl.Rectangle) (header, body, footer rl.Rectangle) {
	headerH := float32(64)
	footerH := float32(118)
	header = rl.NewRectangle(content.X, content.Y, content.Width, headerH)
	body = rl.NewRectangle(content.X, content.Y+headerH+spaceS, content.Width, content.Height-headerH-footerH-spaceS*2)
	footer = rl.NewRectangle(content.X, content.Y+content.Height-footerH, content.Width, footerH)
	return header, body, footer
}

func (ui *gameUI) drainQueue() {
	for {
		intent, ok := ui.queue.Dequeue()
		if !ok {
			return
		}
		ui.dispatch(intent)
	}
}

func (ui *gameUI) back() {
	ui.pendingClarify = nil
	if ui.input != "" {
		ui.input = ""
		return
	}
	if ui.screen == screenMenu {
		ui.quit = true
		return
	}
	ui.screen = screenMenu
	ui.status = ""
}

// activate is Enter with an empty prompt.
func (ui *gameUI) activate() {
	switch ui.screen {
	case screenMenu:
		ui.runMenuAction(menuItems[ui.menuCursor].Action)
	case screenPlay:
		v := ui.ctrl.View()
		if v.InputMode == game.InputChoice && len(v.Options) > 0 {
			ui.dispatch(parser.Intent{Verb: "pick", Kind: parser.Answer, Args: []string{strconv.Itoa(ui.choiceIdx)}})
		}
	case screenResults:
		ui.dispatch(parser.Intent{Verb: "again", Kind: parser.Command})
	case screenStore:
		items := ui.ctrl.Catalog().Items()
		if len(items) > 0 {
			ui.buy(items[clampInt(ui.store.Index, 0, len(items)-1)].Name)
		}
	case screenRewards:
		ui.toggleSelectedReward()
	}
}

func (ui *gameUI) runMenuAction(action menuAction) {
	switch action {
	case actionPlay:
		ui.dispatch(parser.Intent{Verb: "play", Kind: parser.Command})
	case actionStore:
		ui.screen = screenStore
	case actionStats:
		ui.screen = screenStats
	case actionRewards:
		ui.screen = screenRewards
	case actionHelp:
		ui.screen = screenHelp
	case actionQuit:
		ui.quit = true
	}
}

func (ui *gameUI) parseContext() parser.ParseContext {
	ctx := parser.ParseContext{LastEntity: ui.lastEntity}
	catalog := ui.ctrl.Catalog()
	balance := ui.ctrl.Wallet().Balance()
	for _, item := range catalog.Items() {
		if catalog.IsOwned(item.ID) {
			continue
		}
		ctx.Items = append(ctx.Items, item.Name)
		if item.Price <= balance {
			ctx.Affordable = append(ctx.Affordable, item.Name)
		}
	}
	if features := ui.ctrl.Features(); features != nil {
		for _, rw := range features.Rewards() {
			ctx.Features = append(ctx.Features, string(rw.Feature))
			if features.IsUnlocked(rw.Feature, catalog) {
				ctx.Unlocked = append(ctx.Unlocked, string(rw.Feature))
			}
		}
	}
	return ctx
}

// submitInput parses the typed line. A pending clarify question takes a
// bare option number first.
func (ui *gameUI) submitInput() {
	raw := strings.TrimSpace(ui.input)
	ui.input = ""
	if raw == "" {
		return
	}

	if q := ui.pendingClarify; q != nil {
		ui.pendingClarify = nil
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(q.Options) {
			ui.dispatch(q.Options[n-1])
			return
		}
	}

	intent := ui.parser.Parse(ui.parseContext(), raw)
	ui.log.Debug("parsed input", "raw", raw, "verb", intent.Verb, "confidence", intent.Confidence)
	if intent.Clarify != nil {
		ui.status = intent.Clarify.Prompt
		if len(intent.Clarify.Options) > 0 {
			ui.pendingClarify = intent.Clarify
			opts := make([]string, 0, len(intent.Clarify.Options))
			for i, o := range intent.Clarify.Options {
				opts = append(opts, fmt.Sprintf("%d) %s", i+1, parser.IntentToCommandString(o)))
			}
			ui.status += " " + strings.Join(opts, "  ")
		}
		return
	}
	ui.dispatch(intent)
}

func firstArg(intent parser.Intent) string {
	if len(intent.Args) == 0 {
		return ""
	}
	return intent.Args[0]
}

func (ui *gameUI) dispatch(intent parser.Intent) {
	switch intent.Verb {
	case "help":
		ui.screen = screenHelp
	case "play":
		if ui.ctrl.Phase() != game.PhaseInProgress {
			ui.ctrl.Start()
			ui.resetRound()
		}
		ui.screen = screenPlay
	case "again":
		ui.ctrl.Reset()
		ui.resetRound()
		ui.screen = screenPlay
	case "answer":
		n, err := game.ParseAnswer(firstArg(intent))
		if err != nil {
			ui.status = "Answers are whole numbers, 0 or more."
			return
		}
		ui.applyAnswer(ui.ctrl.SubmitAnswer(n))
	case "pick":
		idx, err := strconv.Atoi(firstArg(intent))
		if err != nil {
			ui.status = "Pick 1, 2, 3 or 4."
			return
		}
		ui.applyAnswer(ui.ctrl.SubmitChoice(idx))
	case "buy":
		ui.buy(firstArg(intent))
	case "enable", "disable":
		ui.setFeature(game.FeatureID(firstArg(intent)), intent.Verb == "enable")
	case "mode":
		mode := game.ScoringStandard
		if firstArg(intent) == "double" {
			mode = game.ScoringDouble
		}
		ui.ctrl.SetScoringMode(mode)
		ui.status = fmt.Sprintf("Scoring: %s (x%d)", mode, mode.Multiplier())
	case "input":
		mode := game.InputChoice
		if firstArg(intent) == "numeric" {
			mode = game.InputNumeric
		}
		ui.ctrl.SetInputMode(mode)
		ui.choiceIdx = 0
		ui.status = fmt.Sprintf("Input: %s", mode)
	case "stats":
		ui.screen = screenStats
	case "store":
		ui.screen = screenStore
	case "rewards":
		ui.screen = screenRewards
	case "coins":
		ui.status = fmt.Sprintf("You have %d coins.", ui.ctrl.Wallet().Balance())
	case "clear stats":
		if err := ui.ctrl.ClearStatistics(); err != nil {
			ui.status = "Could not clear stats: " + err.Error()
		} else {
			ui.status = "Statistics cleared."
		}
		ui.screen = screenStats
	case "menu":
		ui.screen = screenMenu
	case "quit":
		ui.quit = true
	default:
		ui.status = "Unknown command. Press F1 for help."
	}
}

func (ui *gameUI) resetRound() {
	ui.last = nil
	ui.lastPrompt = ""
	ui.choiceIdx = 0
	ui.unlocked = nil
	ui.status = ""
	ui.board.Clear()
	ui.effects.Reset()
}

func (ui *gameUI) applyAnswer(out game.AnswerOutcome, err error) {
	switch {
	case errors.Is(err, game.ErrNotStarted):
		ui.status = "No round running. Type play."
		return
	case errors.Is(err, game.ErrRoundComplete):
		ui.status = "Round finished. Press Enter for a new one."
		return
	case errors.Is(err, game.ErrInvalidChoice):
		ui.status = "That option does not exist."
		return
	}

	answers := ui.ctrl.View().Answers
	if len(answers) > 0 {
		ui.lastPrompt = answers[len(answers)-1].Prompt
	}
	ui.last = &out
	ui.choiceIdx = 0
	if out.IsCorrect {
		ui.status = fmt.Sprintf("Correct! +%d coins (streak %d)", out.CoinsAwarded, out.Streak)
	} else {
		ui.status = fmt.Sprintf("Not quite: %s %d", strings.TrimSuffix(ui.lastPrompt, "?"), out.CorrectAnswer)
	}
	if err != nil {
		ui.log.Error("answer not fully saved", "err", err)
		ui.status += " (progress not saved)"
	}
	ui.appendMessage(ui.status)
	if ui.ctrl.FeatureActive(game.FeatureSoundEffects) {
		ui.sounds.play(out.IsCorrect)
	}

	if !out.Complete {
		ui.screen = screenPlay
		return
	}
	ui.screen = screenResults
	ui.board.Clear()
	ui.celebrate(ui.ctrl.View().Result)
}

// celebrate starts the unlocked end-of-round effects.
func (ui *gameUI) celebrate(result game.ResultTier) {
	if ui.ctrl.FeatureActive(game.FeatureConfetti) && result >= game.ResultAwesome {
		count := 160
		if result == game.ResultPerfect {
			count = 320
		}
		ui.effects.Confetti(float32(ui.width), count)
	}
	if ui.ctrl.FeatureActive(game.FeatureFireworks) && result == game.ResultPerfect {
		ui.effects.Fireworks(rl.NewRectangle(0, 0, float32(ui.width), float32(ui.height)), 5)
	}
}

func (ui *gameUI) buy(name string) {
	ui.screen = screenStore
	item, ok := ui.ctrl.Catalog().FindByName(name)
	if !ok {
		ui.status = fmt.Sprintf("No item called %q.", name)
		return
	}
	ui.lastEntity = item.Name
	out, err := ui.ctrl.Purchase(item.ID)
	switch {
	case errors.Is(err, game.ErrInsufficientFunds):
		ui.status = fmt.Sprintf("%s costs %d coins; you have %d.", item.Name, item.Price, out.Balance)
		return
	case errors.Is(err, game.ErrAlreadyOwned):
		ui.status = fmt.Sprintf("You already own the %s.", item.Name)
		return
	case err != nil && out.Item.ID == "":
		ui.status = fmt.Sprintf("Could not buy %s: %v", item.Name, err)
		return
	}
	ui.status = fmt.Sprintf("Bought %s! %d coins left.", item.Name, out.Balance)
	if err != nil {
		ui.log.Error("purchase not fully saved", "item", item.ID, "err", err)
		ui.status += " (progress not saved)"
	}
	ui.appendMessage(ui.status)
	if len(out.Unlocked) > 0 {
		ui.unlocked = append(ui.unlocked, out.Unlocked...)
		for _, rw := range out.Unlocked {
			ui.appendMessage(fmt.Sprintf("Unlocked %s for completing the %s tier!", rw.DisplayName, rw.Tier))
		}
		ui.screen = screenRewards
		ui.effects.Confetti(float32(ui.width), 120)
	}
}

func (ui *gameUI) setFeature(id game.FeatureID, enabled bool) {
	verb := "disabled"
	if enabled {
		verb = "enabled"
	}
	err := ui.ctrl.SetFeature(id, enabled)
	switch {
	case errors.Is(err, game.ErrFeatureLocked):
		ui.status = fmt.Sprintf("%s is still locked. Complete its tier in the store.", id)
	case err != nil:
		ui.status = fmt.Sprintf("Could not change %s: %v", id, err)
	default:
		ui.status = fmt.Sprintf("%s %s.", id, verb)
	}
	ui.screen = screenRewards
}

func (ui *gameUI) toggleSelectedReward() {
	features := ui.ctrl.Features()
	if features == nil {
		return
	}
	rewards := features.Rewards()
	if len(rewards) == 0 {
		return
	}
	rw := rewards[clampInt(ui.rewards.Index, 0, len(rewards)-1)]
	ui.setFeature(rw.Feature, !features.IsEnabled(rw.Feature))
}

func (ui *gameUI) appendMessage(message string) {
	line := strings.TrimSpace(message)
	if line == "" {
		return
	}
	formatted := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), line)
	ui.messages = append(ui.messages, formatted)
	if len(ui.messages) > maxMessages {
		ui.messages = append([]string(nil), ui.messages[len(ui.messages)-maxMessages:]...)
	}
}

func captureTextInput(target *string, maxLen int) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch <= 126 && len(*target) < maxLen {
			*target += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(*target) > 0 {
		*target = (*target)[:len(*target)-1]
	}
}

// flushCharQueue drops characters whose key press was taken as a hotkey.
func flushCharQueue() {
	for rl.GetCharPressed() > 0 {
	}
}

func wrapIndex(i int, size int) int {
	if size <= 0 {
		return 0
	}
	for i < 0 {
		i += size
	}
	for i >= size {
		i -= size
	}
	return i
}

func clampInt(v int, min int, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
