package games

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/keys"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/internal/theme"
)

// GamesLoadedMsg carries the catalog plus the leaderboard rows.
type GamesLoadedMsg struct {
	Games    []model.BrainGame
	Top      []model.GameScore
	Recent   []model.GameScore
	Settings model.GameSettings
}

// TriggerRequestedMsg asks the app to open a popup right now. The app
// owns the scheduler and the popup, so the board only raises its hand.
type TriggerRequestedMsg struct{}

type gameMutatedMsg struct{}

// leaderboardSize is how many top scores the table shows.
const leaderboardSize = 5

type tab int

const (
	tabCatalog tab = iota
	tabLeaderboard
	tabSettings
)

type gameItem struct {
	game model.BrainGame
}

func (i gameItem) FilterValue() string { return i.game.Title }

type gameDelegate struct{}

func (d gameDelegate) Height() int                                     { return 2 }
func (d gameDelegate) Spacing() int                                    { return 0 }
func (d gameDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d gameDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(gameItem)
	if !ok {
		return
	}
	g := gi.game

	check := "[ ]"
	if g.Active {
		check = "[x]"
	}

	title := fmt.Sprintf("%s %s %s", check, g.Title,
		theme.GameTypeStyle(string(g.Type)).Render(string(g.Type)))
	meta := fmt.Sprintf("    %ds — %s", g.DurationSeconds, g.Instructions)

	if index == m.Index() {
		title = theme.SelectedItemStyle.Render(title)
		meta = theme.SelectedItemStyle.Render(meta)
	} else {
		title = theme.ListItemStyle.Render(title)
		meta = theme.ListItemStyle.Render(meta)
	}

	fmt.Fprint(w, lipgloss.JoinVertical(lipgloss.Left, title, meta))
}

// Model is the brain-games board: the game catalog with active toggles,
// the score leaderboard, and the popup scheduler settings.
type Model struct {
	list     list.Model
	topTable table.Model
	store    store.Store
	keys     *keys.KeyMap
	tab      tab
	settings model.GameSettings
	recent   []model.GameScore
	form     *settingsForm
	width    int
	height   int
}

// New creates the games board model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, gameDelegate{}, width, height-3)
	l.Title = "Game Catalog"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Game", Width: 20},
			{Title: "Type", Width: 10},
			{Title: "Score", Width: 8},
			{Title: "When", Width: 16},
		}),
		table.WithHeight(leaderboardSize+1),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(theme.ColorBlue)
	ts.Selected = ts.Selected.Foreground(theme.ColorWhite).Background(theme.ColorSubtle)
	t.SetStyles(ts)

	return Model{
		list:     l,
		topTable: t,
		store:    s,
		keys:     k,
		settings: model.DefaultGameSettings(),
		width:    width,
		height:   height,
	}
}

// Init loads the catalog and scores.
func (m Model) Init() tea.Cmd {
	return m.LoadGames()
}

// Update handles messages for the games board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		done, settings, cmd := m.form.update(msg)
		if !done {
			return m, cmd
		}
		m.form = nil
		if settings == nil {
			return m, nil
		}
		return m, m.saveSettings(*settings)
	}

	switch msg := msg.(type) {
	case GamesLoadedMsg:
		m.settings = msg.Settings
		m.recent = msg.Recent

		items := make([]list.Item, len(msg.Games))
		for i, g := range msg.Games {
			items[i] = gameItem{game: g}
		}
		cmd := m.list.SetItems(items)

		rows := make([]table.Row, len(msg.Top))
		for i, sc := range msg.Top {
			rows[i] = table.Row{
				fmt.Sprintf("%d", i+1),
				sc.GameTitle,
				string(sc.Type),
				fmt.Sprintf("%d", sc.Score),
				sc.Date.Format("2006-01-02 15:04"),
			}
		}
		m.topTable.SetRows(rows)
		return m, cmd

	case gameMutatedMsg:
		return m, m.LoadGames()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.tab = (m.tab + 1) % 3
			return m, nil
		case "s":
			m.form = newSettingsForm(m.settings, m.width, m.height)
			return m, m.form.init()
		}

		switch {
		case key.Matches(msg, m.keys.Trigger):
			return m, func() tea.Msg { return TriggerRequestedMsg{} }

		case key.Matches(msg, m.keys.Toggle):
			if m.tab == tabCatalog {
				if item, ok := m.list.SelectedItem().(gameItem); ok {
					return m, m.toggleActive(item.game)
				}
			}
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case tabCatalog:
		m.list, cmd = m.list.Update(msg)
	case tabLeaderboard:
		m.topTable, cmd = m.topTable.Update(msg)
	}
	return m, cmd
}

// View renders the games board.
func (m Model) View() string {
	if m.form != nil {
		return m.form.view()
	}

	tabs := m.renderTabs()

	switch m.tab {
	case tabLeaderboard:
		return lipgloss.JoinVertical(lipgloss.Left, tabs, m.renderLeaderboard())
	case tabSettings:
		return lipgloss.JoinVertical(lipgloss.Left, tabs, m.renderSettings())
	default:
		return lipgloss.JoinVertical(lipgloss.Left, tabs, m.list.View())
	}
}

func (m Model) renderTabs() string {
	labels := []string{"Catalog", "Leaderboard", "Settings"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if tab(i) == m.tab {
			parts[i] = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render(label)
		} else {
			parts[i] = theme.HelpStyle.Render(label)
		}
	}
	return " " + parts[0] + "  " + parts[1] + "  " + parts[2]
}

func (m Model) renderLeaderboard() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render(fmt.Sprintf("Top %d Scores", leaderboardSize))

	body := m.topTable.View()
	if len(m.topTable.Rows()) == 0 {
		body = theme.HelpStyle.Render("No scores yet. Win a popup game to get on the board.")
	}

	recent := ""
	if len(m.recent) > 0 {
		recent = "\n" + lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render("Recent") + "\n"
		for _, sc := range m.recent {
			recent += fmt.Sprintf("  %s  %-20s %4d\n",
				sc.Date.Format("01-02 15:04"), sc.GameTitle, sc.Score)
		}
	}

	return theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, recent),
	)
}

func (m Model) renderSettings() string {
	s := m.settings

	enabled := theme.ErrorStyle.Render("off")
	if s.Enabled {
		enabled = theme.SuccessStyle.Render("on")
	}

	body := fmt.Sprintf(
		"Popups:        %s\nInterval:      %d–%d min\nGames per day: %d\nVolume:        %.0f%%\n",
		enabled, s.MinIntervalMinutes, s.MaxIntervalMinutes, s.GamesPerDay, s.Volume*100,
	)

	return theme.PanelStyle.Render(
		body + "\n" + theme.HelpStyle.Render("Press s to edit."),
	)
}

// KeyHints returns the status bar hints for this board.
func (m Model) KeyHints() string {
	if m.form != nil {
		return "enter submit | esc cancel"
	}
	return "tab section | x toggle | s settings | g play now"
}

// Capturing reports whether the board is consuming raw text input.
func (m Model) Capturing() bool {
	return m.form != nil
}

// LoadGames returns a tea.Cmd that queries the catalog, scores and settings.
func (m Model) LoadGames() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		games, err := s.GetGames(ctx, false)
		if err != nil {
			games = nil
		}
		top, err := s.TopScores(ctx, leaderboardSize)
		if err != nil {
			top = nil
		}
		recent, err := s.GetScores(ctx, 5)
		if err != nil {
			recent = nil
		}
		settings, err := s.GetGameSettings(ctx)
		if err != nil {
			settings = model.DefaultGameSettings()
		}
		return GamesLoadedMsg{Games: games, Top: top, Recent: recent, Settings: settings}
	}
}

// toggleActive flips a catalog entry's eligibility.
func (m Model) toggleActive(g model.BrainGame) tea.Cmd {
	g.Active = !g.Active
	s := m.store
	return func() tea.Msg {
		_ = s.UpdateGame(context.Background(), g)
		return gameMutatedMsg{}
	}
}

func (m Model) saveSettings(settings model.GameSettings) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_ = s.PutGameSettings(context.Background(), settings)
		return gameMutatedMsg{}
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
}
