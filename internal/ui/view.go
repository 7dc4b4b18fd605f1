package ui

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/mathdash/internal/game"
)

const rule = "----------------------------------------"

func (m model) palette() palette {
	if m.ctrl.FeatureActive(game.FeatureGoldenTheme) {
		return goldPalette
	}
	return greenPalette
}

func (m model) View() string {
	p := m.palette()
	var b strings.Builder

	title := p.bright.Render("MATH DASH")
	if m.cfg.Version != "" {
		title += p.dim.Render("  v" + m.cfg.Version)
	}
	b.WriteString(title + p.text.Render(fmt.Sprintf("   🪙 %d", m.ctrl.Wallet().Balance())) + "\n")
	b.WriteString(p.border.Render(rule) + "\n\n")

	switch m.screen {
	case screenMenu:
		b.WriteString(m.menuBody(p))
	case screenPlay:
		b.WriteString(m.playBody(p))
	case screenResults:
		b.WriteString(m.resultsBody(p))
	case screenStore:
		b.WriteString(m.storeBody(p))
	case screenStats:
		b.WriteString(m.statsBody(p))
	case screenRewards:
		b.WriteString(m.rewardsBody(p))
	case screenHelp:
		b.WriteString(helpBody(p))
	}

	b.WriteString("\n" + p.border.Render(rule) + "\n")
	if m.status != "" {
		b.WriteString(p.text.Render(m.status) + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(p.dim.Render(m.footerHint()) + "\n")
	return b.String()
}

func (m model) footerHint() string {
	switch m.screen {
	case screenMenu:
		return "↑/↓ to move, Enter to select, Esc to quit"
	case screenPlay:
		return "type the answer, ←/→ + Enter to pick, Tab toggles double, Esc for menu"
	case screenResults:
		return "Enter to play again, store, stats, Esc for menu"
	default:
		return "Esc for menu, help for commands"
	}
}

func (m model) menuBody(p palette) string {
	var b strings.Builder
	for i, label := range menuLabels {
		cursor := "  "
		line := p.text.Render(label)
		if i == m.menuIdx {
			cursor = "> "
			line = p.bright.Render(label)
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

func (m model) playBody(p palette) string {
	v := m.ctrl.View()
	if v.Phase != game.PhaseInProgress {
		return p.text.Render("No round running. Type play.") + "\n"
	}
	var b strings.Builder
	b.WriteString(p.dim.Render(fmt.Sprintf("Question %d/%d   Score %d   Streak %d   +%d coins this round   %s",
		v.Index+1, v.Total, v.Score, v.Streak, v.CoinsThisRound, scoringBadge(v.ScoringMode))) + "\n")
	b.WriteString(progressBar(v.Progress(), 40, p) + "\n\n")

	prompt := v.Prompt
	if m.ctrl.FeatureActive(game.FeatureRainbowText) {
		b.WriteString("   " + rainbow(prompt) + "\n\n")
	} else {
		b.WriteString("   " + p.bright.Bold(true).Render(prompt) + "\n\n")
	}

	if v.InputMode == game.InputChoice {
		opts := make([]string, 0, len(v.Options))
		for i, opt := range v.Options {
			label := fmt.Sprintf("%d) %d", i+1, opt)
			if i == m.choiceIdx {
				opts = append(opts, p.bright.Render("["+label+"]"))
			} else {
				opts = append(opts, p.text.Render(" "+label+" "))
			}
		}
		b.WriteString("   " + strings.Join(opts, "  ") + "\n")
	} else {
		b.WriteString(p.dim.Render("   type your answer and press Enter") + "\n")
	}

	if m.last != nil {
		b.WriteString("\n")
		if m.last.IsCorrect {
			b.WriteString(p.good.Render("✓ "+m.lastPrompt) + "\n")
		} else {
			b.WriteString(p.bad.Render(fmt.Sprintf("✗ %s %d", strings.TrimSuffix(m.lastPrompt, "?"), m.last.CorrectAnswer)) + "\n")
		}
	}
	return b.String()
}

func scoringBadge(mode game.ScoringMode) string {
	if mode == game.ScoringDouble {
		return "DOUBLE x2"
	}
	return "standard"
}

func progressBar(frac float64, width int, p palette) string {
	filled := int(frac * float64(width))
	filled = clampInt(filled, 0, width)
	return p.bright.Render(strings.Repeat("█", filled)) + p.dim.Render(strings.Repeat("░", width-filled))
}

func (m model) resultsBody(p palette) string {
	v := m.ctrl.View()
	var b strings.Builder
	golden := m.ctrl.FeatureActive(game.FeatureGoldenTheme)
	b.WriteString(renderMedalANSI(v.Result, golden, 20, 8))
	b.WriteString("\n" + p.bright.Bold(true).Render(v.Result.Banner()) + "\n\n")
	b.WriteString(p.text.Render(fmt.Sprintf("Score %d   Correct %d/%d   Coins earned %d", v.Score, v.Correct, v.Total, v.CoinsThisRound)) + "\n")

	if m.ctrl.FeatureActive(game.FeatureConfetti) && v.Result >= game.ResultAwesome {
		n := 24
		if v.Result == game.ResultPerfect {
			n = 48
		}
		b.WriteString(rainbow(strings.Repeat("✦ ", n/2)) + "\n")
	}
	if m.ctrl.FeatureActive(game.FeatureFireworks) && v.Result == game.ResultPerfect {
		b.WriteString(rainbow("  *  .  ✺  .  *    ✹   *  .  ✺") + "\n")
	}

	var missed []game.AnswerRecord
	for _, a := range v.Answers {
		if !a.IsCorrect {
			missed = append(missed, a)
		}
	}
	if len(missed) > 0 {
		b.WriteString("\n" + p.dim.Render("Review") + "\n")
		for _, a := range missed {
			b.WriteString(p.bad.Render(fmt.Sprintf("  %s %d (you said %d)", strings.TrimSuffix(a.Prompt, "?"), a.CorrectAnswer, a.UserAnswer)) + "\n")
		}
	}
	return b.String()
}

func (m model) storeBody(p palette) string {
	catalog := m.ctrl.Catalog()
	balance := m.ctrl.Wallet().Balance()
	var b strings.Builder
	b.WriteString(p.dim.Render(fmt.Sprintf("Collection %d/%d   buy <item>", catalog.OwnedCount(), catalog.TotalCount())) + "\n")
	for _, tier := range game.AllTiers() {
		items := catalog.ItemsInTier(tier)
		if len(items) == 0 {
			continue
		}
		header := strings.ToUpper(tier.String())
		if catalog.IsTierComplete(tier) {
			header += " ✓"
		}
		b.WriteString("\n" + p.bright.Render(header) + "\n")
		for _, item := range items {
			line := fmt.Sprintf("  %s %-18s %5d", item.Emoji, item.Name, item.Price)
			switch {
			case catalog.IsOwned(item.ID):
				b.WriteString(p.good.Render(line+"  owned") + "\n")
			case item.Price > balance:
				b.WriteString(p.dim.Render(line) + "\n")
			default:
				b.WriteString(p.text.Render(line) + "\n")
			}
		}
	}
	return b.String()
}

func (m model) statsBody(p palette) string {
	st := m.ctrl.Ledger().Statistics()
	var b strings.Builder
	accuracy := 0
	if st.TotalAttempts > 0 {
		accuracy = st.TotalCorrect * 100 / st.TotalAttempts
	}
	b.WriteString(p.text.Render(fmt.Sprintf("Answered %d   Correct %d   Accuracy %d%%", st.TotalAttempts, st.TotalCorrect, accuracy)) + "\n")

	b.WriteString("\n" + p.bright.Render("Most missed") + "\n")
	if len(st.MostMissed) == 0 {
		b.WriteString(p.dim.Render("  nothing yet") + "\n")
	}
	for _, s := range limitStats(st.MostMissed, 5) {
		b.WriteString(p.bad.Render(fmt.Sprintf("  %-14s missed %d of %d", s.Problem, s.Incorrect, s.Total)) + "\n")
	}
	b.WriteString("\n" + p.bright.Render("Most correct") + "\n")
	if len(st.MostCorrect) == 0 {
		b.WriteString(p.dim.Render("  nothing yet") + "\n")
	}
	for _, s := range limitStats(st.MostCorrect, 5) {
		b.WriteString(p.good.Render(fmt.Sprintf("  %-14s right %d of %d", s.Problem, s.Correct, s.Total)) + "\n")
	}

	b.WriteString("\n" + p.bright.Render("Recent rounds") + "\n")
	if len(st.Scores) == 0 {
		b.WriteString(p.dim.Render("  no rounds yet") + "\n")
	}
	for i := len(st.Scores) - 1; i >= 0 && i >= len(st.Scores)-5; i-- {
		e := st.Scores[i]
		b.WriteString(p.text.Render(fmt.Sprintf("  %s  %d/%d", e.Date, e.Score, e.TotalQuestions)) + "\n")
	}
	return b.String()
}

func limitStats(in []game.ProblemStat, n int) []game.ProblemStat {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func (m model) rewardsBody(p palette) string {
	features := m.ctrl.Features()
	if features == nil {
		return p.dim.Render("No rewards available.") + "\n"
	}
	catalog := m.ctrl.Catalog()
	var b strings.Builder
	for _, rw := range m.unlocked {
		b.WriteString(p.good.Render(fmt.Sprintf("🎉 New: %s!", rw.DisplayName)) + "\n")
	}
	if len(m.unlocked) > 0 {
		b.WriteString("\n")
	}
	for _, rw := range features.Rewards() {
		state := "locked: own every " + rw.Tier.String() + " item"
		style := p.dim
		if features.IsUnlocked(rw.Feature, catalog) {
			state = "off  (enable " + string(rw.Feature) + ")"
			style = p.text
			if features.IsActive(rw.Feature, catalog) {
				state = "on   (disable " + string(rw.Feature) + ")"
				style = p.good
			}
		}
		b.WriteString(style.Render(fmt.Sprintf("  %-22s %s", rw.DisplayName, state)) + "\n")
	}
	return b.String()
}

func helpBody(p palette) string {
	lines := []string{
		"play / again          start a round, or a fresh one",
		"<number>              answer the question",
		"pick 1-4              choose an option",
		"mode standard|double  double scores and coins",
		"input choice|numeric  options or typed answers",
		"store / buy <item>    spend coins",
		"rewards               see unlocks",
		"enable|disable <x>    toggle an unlocked reward",
		"stats / clear stats   your history",
		"coins                 show balance",
		"menu / quit",
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(p.text.Render("  "+l) + "\n")
	}
	return b.String()
}
