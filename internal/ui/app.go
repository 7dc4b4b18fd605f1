package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/mathdash/internal/game"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Controller *game.SessionController
	Logger     *slog.Logger
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	m := newModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles (retro green, gold once the golden theme is active) ---
type palette struct {
	text   lipgloss.Style
	bright lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
}

var (
	greenPalette = palette{
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		bright: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
	goldPalette = palette{
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		bright: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
	rainbowColors = []lipgloss.Color{"196", "208", "226", "46", "51", "21", "201"}
)

func rainbow(s string) string {
	out := ""
	i := 0
	for _, r := range s {
		if r == ' ' {
			out += " "
			continue
		}
		out += lipgloss.NewStyle().Foreground(rainbowColors[i%len(rainbowColors)]).Render(string(r))
		i++
	}
	return out
}
