package gui

import (
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/parser"
	uitheme "github.com/appengine-ltd/mathdash/internal/ui/theme"
)

const rowGap = float32(6)

// layout mirrors draw so update can hit-test the same rectangles.
func (ui *gameUI) layout() (header, body, footer rl.Rectangle) {
	inset := uitheme.FrameInset(ui.width, ui.height)
	content := rl.NewRectangle(inset.X+spaceS, inset.Y+spaceS, inset.Width-spaceS*2, inset.Height-spaceS*2)
	return splitLayout(content)
}

func visibleRows(area rl.Rectangle) int {
	rows := int((area.Height - 70) / (uitheme.RowHeight + rowGap))
	if rows < 1 {
		rows = 1
	}
	return rows
}

func listRowRect(area rl.Rectangle, slot int) rl.Rectangle {
	y := area.Y + 60 + float32(slot)*(uitheme.RowHeight+rowGap)
	return rl.NewRectangle(area.X+spaceM, y, area.Width-spaceM*2, uitheme.RowHeight)
}

// playAreas splits the play body into the question panel and the side panel
// that holds the whiteboard or the answer log.
func playAreas(body rl.Rectangle) (question, side rl.Rectangle) {
	split := body.Width * 0.6
	question = rl.NewRectangle(body.X, body.Y, split-spaceS/2, body.Height)
	side = rl.NewRectangle(body.X+split+spaceS/2, body.Y, body.Width-split-spaceS/2, body.Height)
	return question, side
}

func optionRects(area rl.Rectangle, n int) []rl.Rectangle {
	if n == 0 {
		return nil
	}
	gap := spaceM
	w := (area.Width - spaceL*2 - gap*float32(n-1)) / float32(n)
	y := area.Y + area.Height - uitheme.ButtonHeight*1.6 - spaceL
	out := make([]rl.Rectangle, n)
	for i := range out {
		out[i] = rl.NewRectangle(area.X+spaceL+float32(i)*(w+gap), y, w, uitheme.ButtonHeight*1.6)
	}
	return out
}

func boardRect(side rl.Rectangle) rl.Rectangle {
	return rl.NewRectangle(side.X+spaceS, side.Y+56, side.Width-spaceS*2, side.Height-56-spaceS)
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (ui *gameUI) updateMenu() {
	if !HotkeysEnabled(ui) {
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		ui.menuCursor = wrapIndex(ui.menuCursor+1, len(menuItems))
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		ui.menuCursor = wrapIndex(ui.menuCursor-1, len(menuItems))
	}
	_, body, _ := ui.layout()
	mouse := rl.GetMousePosition()
	for i := range menuItems {
		r := menuButtonRect(body, i)
		if rl.CheckCollisionPointRec(mouse, r) {
			ui.menuCursor = i
			if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
				ui.runMenuAction(menuItems[i].Action)
			}
		}
	}
}

func (ui *gameUI) updatePlay() {
	if ui.ctrl.Phase() != game.PhaseInProgress {
		return
	}
	_, body, _ := ui.layout()
	question, side := playAreas(body)
	mouse := rl.GetMousePosition()

	v := ui.ctrl.View()
	if v.InputMode == game.InputChoice && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		for i, r := range optionRects(question, len(v.Options)) {
			if rl.CheckCollisionPointRec(mouse, r) {
				ui.queue.EnqueueIntent(parser.Intent{Verb: "pick", Kind: parser.Answer, Args: []string{strconv.Itoa(i)}})
			}
		}
	}

	if ui.ctrl.FeatureActive(game.FeatureWhiteboard) {
		board := boardRect(side)
		inside := rl.CheckCollisionPointRec(mouse, board)
		ui.board.Pen(inside && rl.IsMouseButtonDown(rl.MouseButtonLeft), mouse)
	}
}

func (ui *gameUI) updateStore() {
	items := ui.ctrl.Catalog().Items()
	_, body, _ := ui.layout()
	ui.updateList(&ui.store, len(items), body)
}

func (ui *gameUI) updateRewards() {
	features := ui.ctrl.Features()
	if features == nil {
		return
	}
	_, body, _ := ui.layout()
	ui.updateList(&ui.rewards, len(features.Rewards()), body)
}

func (ui *gameUI) updateList(c *listCursor, rows int, body rl.Rectangle) {
	if HotkeysEnabled(ui) {
		if rl.IsKeyPressed(rl.KeyDown) {
			c.Index = wrapIndex(c.Index+1, rows)
		}
		if rl.IsKeyPressed(rl.KeyUp) {
			c.Index = wrapIndex(c.Index-1, rows)
		}
		if rl.IsKeyPressed(rl.KeyPageDown) {
			c.Index += visibleRows(body)
		}
		if rl.IsKeyPressed(rl.KeyPageUp) {
			c.Index -= visibleRows(body)
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Index -= int(wheel)
	}
	c.clampTo(rows, visibleRows(body))
}

// ---------------------------------------------------------------------------
// Draw
// ---------------------------------------------------------------------------

func (ui *gameUI) drawHeader(rect rl.Rectangle) {
	DrawPanel(rect, "", false)
	drawText("MATH DASH", int32(rect.X+spaceM), int32(rect.Y+14), uitheme.Type.Title-6, AppTheme.Accent)
	right := fmt.Sprintf("Coins %d   Collection %d/%d", ui.ctrl.Wallet().Balance(), ui.ctrl.Catalog().OwnedCount(), ui.ctrl.Catalog().TotalCount())
	w := measureText(right, uitheme.Type.Body)
	drawText(right, int32(rect.X+rect.Width-spaceM)-w, int32(rect.Y+20), uitheme.Type.Body, AppTheme.TextPrimary)
	if ui.cfg.Version != "" {
		DrawHintText("v"+ui.cfg.Version, int32(rect.X+spaceM)+measureText("MATH DASH", uitheme.Type.Title-6)+14, int32(rect.Y+26))
	}
}

func (ui *gameUI) drawFooter(rect rl.Rectangle) {
	DrawPanel(rect, "", false)
	input := rl.NewRectangle(rect.X+spaceM, rect.Y+spaceS, rect.Width*0.5, 44)
	DrawInputField(input, ui.input, "type an answer or a command", true)
	if ui.status != "" {
		clr := AppTheme.TextPrimary
		if ui.last != nil && !ui.last.IsCorrect && ui.screen == screenPlay {
			clr = AppTheme.Danger
		}
		statusRect := rl.NewRectangle(input.X+input.Width+spaceM, input.Y, rect.Width-input.Width-spaceM*3, input.Height)
		drawWrappedText(ui.status, statusRect, 2, uitheme.Type.Small, clr)
	}
	DrawHintText(ui.footerHint(), int32(rect.X+spaceM), int32(rect.Y+rect.Height-spaceS)-uitheme.Type.Small-4)
}

func (ui *gameUI) footerHint() string {
	switch ui.screen {
	case screenMenu:
		return "Up/Down to move, Enter to select, Esc to quit"
	case screenPlay:
		hint := "Type the answer or press 1-4, Tab toggles double, Esc for menu"
		if ui.ctrl.FeatureActive(game.FeatureWhiteboard) {
			hint += ", Shift+C clears the board"
		}
		return hint
	case screenResults:
		return "Enter to play again, Shift+S store, Shift+T stats, Esc for menu"
	case screenStore:
		return "Up/Down to browse, Enter or buy <item> to purchase, Esc for menu"
	case screenRewards:
		return "Up/Down to browse, Enter toggles an unlocked reward, Esc for menu"
	default:
		return "Esc for menu, F1 for help"
	}
}

func menuButtonRect(body rl.Rectangle, i int) rl.Rectangle {
	w := float32(420)
	x := body.X + (body.Width-w)/2
	y := body.Y + 70 + float32(i)*(uitheme.ButtonHeight+spaceS)
	return rl.NewRectangle(x, y, w, uitheme.ButtonHeight)
}

func (ui *gameUI) drawMenu(body rl.Rectangle) {
	drawTextCentered("Practise your times tables and earn coins", body, 16, uitheme.Type.Header, AppTheme.TextSecondary)
	for i, item := range menuItems {
		state := buttonStateNormal
		if i == ui.menuCursor {
			state = buttonStateSelected
		}
		DrawButton(menuButtonRect(body, i), state, item.Label)
	}
}

func (ui *gameUI) drawPlay(body rl.Rectangle) {
	v := ui.ctrl.View()
	question, side := playAreas(body)
	DrawPanel(question, fmt.Sprintf("Question %d of %d", v.Index+1, v.Total), true)
	if v.Phase != game.PhaseInProgress {
		drawTextCentered("No round running. Type play.", question, int32(question.Height/2), uitheme.Type.Header, AppTheme.TextSecondary)
		return
	}

	bar := rl.NewRectangle(question.X+spaceL, question.Y+64, question.Width-spaceL*2, 12)
	uitheme.DrawProgressBar(bar, float32(v.Progress()), AppTheme.Accent)
	stats := fmt.Sprintf("Score %d   Streak %d   +%d coins this round", v.Score, v.Streak, v.CoinsThisRound)
	drawText(stats, int32(bar.X), int32(bar.Y)+22, uitheme.Type.Body, AppTheme.TextSecondary)
	if v.ScoringMode == game.ScoringDouble {
		badge := "DOUBLE x2"
		w := measureText(badge, uitheme.Type.Body)
		drawText(badge, int32(bar.X+bar.Width)-w, int32(bar.Y)+22, uitheme.Type.Body, AppTheme.Warning)
	}

	promptY := question.Y + question.Height*0.38
	if ui.ctrl.FeatureActive(game.FeatureRainbowText) {
		drawRainbowCentered(v.Prompt, question, int32(promptY-question.Y), uitheme.Type.Prompt)
	} else {
		drawTextCentered(v.Prompt, question, int32(promptY-question.Y), uitheme.Type.Prompt, AppTheme.TextPrimary)
	}

	if v.InputMode == game.InputChoice {
		for i, r := range optionRects(question, len(v.Options)) {
			state := buttonStateNormal
			if i == ui.choiceIdx {
				state = buttonStateSelected
			}
			DrawButton(r, state, "")
			label := strconv.Itoa(v.Options[i])
			drawTextCentered(label, r, int32(r.Height/2)-uitheme.Type.Title/2, uitheme.Type.Title, AppTheme.TextPrimary)
			DrawHintText(strconv.Itoa(i+1), int32(r.X)+8, int32(r.Y)+6)
		}
	} else {
		drawTextCentered("Type your answer below and press Enter", question, int32(question.Height)-90, uitheme.Type.Body, AppTheme.TextMuted)
	}

	if ui.ctrl.FeatureActive(game.FeatureWhiteboard) {
		DrawPanel(side, "Scratch Board", false)
		board := boardRect(side)
		rl.DrawRectangleRec(board, rl.Fade(AppTheme.Background, 0.85))
		rl.DrawRectangleLinesEx(board, 1, AppTheme.Border)
		ui.board.Draw(AppTheme.TextPrimary)
		return
	}
	ui.drawMessageLog(side)
}

func (ui *gameUI) drawMessageLog(rect rl.Rectangle) {
	DrawPanel(rect, "This session", false)
	line := textLineHeight(uitheme.Type.Small)
	maxLines := int((rect.Height - 70) / float32(line))
	start := max(len(ui.messages)-maxLines, 0)
	y := int32(rect.Y) + 60
	for _, m := range ui.messages[start:] {
		drawText(m, int32(rect.X+spaceM), y, uitheme.Type.Small, AppTheme.TextSecondary)
		y += line
	}
}

func (ui *gameUI) drawResults(body rl.Rectangle) {
	v := ui.ctrl.View()
	panel := rl.NewRectangle(body.X+body.Width*0.15, body.Y, body.Width*0.7, body.Height)
	DrawPanel(panel, "Round complete", true)

	drawMedal(rl.NewVector2(panel.X+panel.Width/2, panel.Y+150), 70, v.Result)
	drawTextCentered(strings.ToUpper(v.Result.String())+"!", panel, 240, uitheme.Type.Title, AppTheme.Accent)
	summary := fmt.Sprintf("Score %d   Correct %d/%d   Coins earned %d", v.Score, v.Correct, v.Total, v.CoinsThisRound)
	drawTextCentered(summary, panel, 296, uitheme.Type.Header, AppTheme.TextPrimary)

	y := int32(panel.Y) + 350
	for _, a := range v.Answers {
		if a.IsCorrect {
			continue
		}
		if float32(y) > panel.Y+panel.Height-40 {
			break
		}
		line := fmt.Sprintf("%s %d   (you said %d)", strings.TrimSuffix(a.Prompt, "?"), a.CorrectAnswer, a.UserAnswer)
		drawTextCentered(line, panel, y-int32(panel.Y), uitheme.Type.Body, AppTheme.Danger)
		y += textLineHeight(uitheme.Type.Body)
	}
}

// drawMedal draws a disc with one pentagon per result step.
func drawMedal(center rl.Vector2, radius float32, result game.ResultTier) {
	rl.DrawCircleV(center, radius*1.1, rl.Fade(AppTheme.Accent, 0.15))
	rl.DrawCircleV(center, radius, AppTheme.AccentAlt)
	rl.DrawCircleLines(int32(center.X), int32(center.Y), radius*0.82, AppTheme.Background)
	stars := int(result)
	if stars == 0 {
		return
	}
	spacing := radius * 0.55
	start := center.X - spacing*float32(stars-1)/2
	for i := 0; i < stars; i++ {
		rl.DrawPoly(rl.NewVector2(start+spacing*float32(i), center.Y), 5, radius*0.24, -90, AppTheme.Background)
	}
}

func (ui *gameUI) drawStore(body rl.Rectangle) {
	catalog := ui.ctrl.Catalog()
	balance := ui.ctrl.Wallet().Balance()
	DrawPanel(body, "Store", true)

	items := catalog.Items()
	rows := visibleRows(body)
	ui.store.clampTo(len(items), rows)
	for slot := 0; slot < rows && ui.store.Offset+slot < len(items); slot++ {
		i := ui.store.Offset + slot
		item := items[i]
		state := listStateNormal
		right := fmt.Sprintf("%d coins", item.Price)
		switch {
		case catalog.IsOwned(item.ID):
			right = "owned"
		case item.Price > balance:
			state = listStateDisabled
		}
		if i == ui.store.Index {
			state = listStateSelected
		}
		tier := item.Tier.String()
		if catalog.IsTierComplete(item.Tier) {
			tier += " (complete)"
		}
		DrawListItem(listRowRect(body, slot), state, fmt.Sprintf("%-22s %s", item.Name, tier), right)
	}
}

func (ui *gameUI) drawStats(body rl.Rectangle) {
	st := ui.ctrl.Ledger().Statistics()
	left := rl.NewRectangle(body.X, body.Y, body.Width*0.5-spaceS/2, body.Height)
	right := rl.NewRectangle(body.X+body.Width*0.5+spaceS/2, body.Y, body.Width*0.5-spaceS/2, body.Height)
	DrawPanel(left, "Problems", false)
	DrawPanel(right, "Rounds", false)

	accuracy := 0
	if st.TotalAttempts > 0 {
		accuracy = st.TotalCorrect * 100 / st.TotalAttempts
	}
	DrawAccuracyBar("Accuracy", accuracy, rl.NewRectangle(left.X+spaceM, left.Y+60, left.Width-spaceM*2, 32))
	DrawLabelValue("Answered", strconv.Itoa(st.TotalAttempts), int32(left.X+spaceM), int32(left.Y)+104, AppTheme.TextPrimary)

	y := int32(left.Y) + 146
	line := textLineHeight(uitheme.Type.Body)
	drawText("Most missed", int32(left.X+spaceM), y, uitheme.Type.Header, AppTheme.Danger)
	y += line + 6
	for _, s := range firstStats(st.MostMissed, 6) {
		drawText(fmt.Sprintf("%s  missed %d of %d", s.Problem, s.Incorrect, s.Total), int32(left.X+spaceM), y, uitheme.Type.Body, AppTheme.TextPrimary)
		y += line
	}
	y += 10
	drawText("Most correct", int32(left.X+spaceM), y, uitheme.Type.Header, AppTheme.Success)
	y += line + 6
	for _, s := range firstStats(st.MostCorrect, 6) {
		drawText(fmt.Sprintf("%s  right %d of %d", s.Problem, s.Correct, s.Total), int32(left.X+spaceM), y, uitheme.Type.Body, AppTheme.TextPrimary)
		y += line
	}

	chart := rl.NewRectangle(right.X+spaceM, right.Y+60, right.Width-spaceM*2, right.Height*0.45)
	drawScoreChart(chart, st.Scores)
	y = int32(chart.Y+chart.Height) + 20
	for i := len(st.Scores) - 1; i >= 0 && i >= len(st.Scores)-6; i-- {
		e := st.Scores[i]
		drawText(fmt.Sprintf("%s   %d / %d", e.Date, e.Score, e.TotalQuestions), int32(right.X+spaceM), y, uitheme.Type.Body, AppTheme.TextSecondary)
		y += line
	}
}

func firstStats(in []game.ProblemStat, n int) []game.ProblemStat {
	if len(in) > n {
		return in[:n]
	}
	return in
}

// drawScoreChart plots the last rounds as bars scaled to their own totals.
func drawScoreChart(rect rl.Rectangle, scores []game.GameScoreEntry) {
	rl.DrawRectangleRec(rect, rl.Fade(AppTheme.Background, 0.6))
	if len(scores) == 0 {
		drawTextCentered("No rounds yet", rect, int32(rect.Height/2)-10, uitheme.Type.Body, AppTheme.TextMuted)
		return
	}
	const maxBars = 20
	start := max(len(scores)-maxBars, 0)
	shown := scores[start:]
	w := rect.Width / float32(maxBars)
	for i, e := range shown {
		frac := float32(0)
		if e.TotalQuestions > 0 {
			frac = float32(e.Score) / float32(e.TotalQuestions)
		}
		if frac > 2 {
			frac = 2
		}
		h := (rect.Height - 8) * frac / 2
		bar := rl.NewRectangle(rect.X+float32(i)*w+2, rect.Y+rect.Height-h, w-4, h)
		rl.DrawRectangleRec(bar, accuracyColor(int(frac*100)))
	}
	mid := rect.Y + rect.Height/2
	DrawDivider(rect.X, mid, rect.X+rect.Width, mid)
}

func (ui *gameUI) drawRewards(body rl.Rectangle) {
	DrawPanel(body, "Rewards", true)
	features := ui.ctrl.Features()
	if features == nil {
		return
	}
	catalog := ui.ctrl.Catalog()
	rewards := features.Rewards()
	top := body
	if len(ui.unlocked) > 0 {
		names := make([]string, 0, len(ui.unlocked))
		for _, rw := range ui.unlocked {
			names = append(names, rw.DisplayName)
		}
		drawText("New: "+strings.Join(names, ", ")+"!", int32(body.X+spaceM), int32(body.Y)+58, uitheme.Type.Header, AppTheme.Success)
		top.Y += 44
		top.Height -= 44
	}
	ui.rewards.clampTo(len(rewards), visibleRows(top))
	for slot := 0; slot < visibleRows(top) && ui.rewards.Offset+slot < len(rewards); slot++ {
		i := ui.rewards.Offset + slot
		rw := rewards[i]
		state := listStateNormal
		right := "locked: own every " + rw.Tier.String() + " item"
		switch {
		case features.IsActive(rw.Feature, catalog):
			right = "on"
		case features.IsUnlocked(rw.Feature, catalog):
			right = "off"
		default:
			state = listStateDisabled
		}
		if i == ui.rewards.Index {
			state = listStateSelected
		}
		DrawListItem(listRowRect(top, slot), state, rw.DisplayName, right)
	}
}

func (ui *gameUI) drawHelp(body rl.Rectangle) {
	DrawPanel(body, "Help", false)
	lines := []string{
		"play / again           start a round, or a fresh one",
		"<number>               answer the question",
		"pick 1-4  or keys 1-4  choose an option",
		"mode standard|double   double scores and coins (Tab)",
		"input choice|numeric   options or typed answers",
		"store / buy <item>     spend coins (Shift+S)",
		"rewards                see unlocks (Shift+R)",
		"enable|disable <x>     toggle an unlocked reward",
		"stats / clear stats    your history (Shift+T)",
		"coins                  show balance",
		"menu / quit",
	}
	drawLines(body, 64, uitheme.Type.Body, lines, AppTheme.TextPrimary)
}

// ---------------------------------------------------------------------------
// Text helpers
// ---------------------------------------------------------------------------

func drawTextCentered(text string, rect rl.Rectangle, yOffset int32, fontSize int32, clr rl.Color) {
	width := measureText(text, fontSize)
	x := int32(rect.X + (rect.Width-float32(width))/2)
	drawText(text, x, int32(rect.Y)+yOffset, fontSize, clr)
}

// drawRainbowCentered cycles hue per glyph and drifts it with time.
func drawRainbowCentered(text string, rect rl.Rectangle, yOffset int32, fontSize int32) {
	width := measureText(text, fontSize)
	x := int32(rect.X + (rect.Width-float32(width))/2)
	shift := float32(rl.GetTime() * 90)
	i := 0
	for _, r := range text {
		glyph := string(r)
		if r != ' ' {
			hue := shift + float32(i)*40
			drawText(glyph, x, int32(rect.Y)+yOffset, fontSize, rl.ColorFromHSV(hue, 0.7, 1))
			i++
		}
		x += measureText(glyph, fontSize) + 1
	}
}

func drawWrappedText(text string, rect rl.Rectangle, y int32, size int32, clr rl.Color) {
	lines := wrapText(text, size, int32(rect.Width))
	for i, line := range lines {
		drawText(line, int32(rect.X), int32(rect.Y)+y+int32(i)*(size+6), size, clr)
	}
}

func drawLines(rect rl.Rectangle, y int32, size int32, lines []string, clr rl.Color) {
	line := textLineHeight(size)
	for i, l := range lines {
		drawText(l, int32(rect.X+spaceM), int32(rect.Y)+y+int32(i)*line, size, clr)
	}
}

func wrapText(text string, size int32, maxWidth int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measureText(candidate, size) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
