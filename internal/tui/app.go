// Package tui provides the interactive Bubble Tea dashboard for sitebudget.
package tui

import (
	"fmt"
	"strings"
	"time"

	"sitebudget/internal/auth"
	"sitebudget/internal/config"
	"sitebudget/internal/forecast"
	"sitebudget/internal/insight"
	"sitebudget/internal/model"
	"sitebudget/internal/store"
	"sitebudget/internal/tui/components"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// analysisDelay is a short artificial pause before analysis results
// appear. It exists only to make the loading state visible.
const analysisDelay = 600 * time.Millisecond

// AnalysisMsg is sent when a full analysis pass finishes.
type AnalysisMsg struct {
	Projects  []model.Project
	Expenses  []model.Expense
	Items     []model.InventoryItem
	InvStats  model.InventoryStats
	Budget    insight.BudgetAnalysis
	Stock     insight.InventoryAnalysis
	Predicted *forecast.Prediction
	Elapsed   time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	st           *store.Store
	user         auth.User
	forecastDays int

	// Data from the last analysis pass
	projects  []model.Project
	expenses  []model.Expense
	items     []model.InventoryItem
	invStats  model.InventoryStats
	budget    insight.BudgetAnalysis
	stock     insight.InventoryAnalysis
	predicted *forecast.Prediction

	loaded    bool
	analyzing bool
	loadTime  time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab cursors
	projCursor  int
	invCursor   int
	themeCursor int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
)

// NewApp creates a new TUI app model over an opened store.
func NewApp(st *store.Store, forecastDays int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		st:           st,
		user:         st.User(),
		forecastDays: forecastDays,
		needSetup:    !config.Exists(),
		spinner:      sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		analyzeCmd(a.st, a.forecastDays),
	)
}

// analyzeCmd reads the store and runs the full analysis pass in the
// background.
func analyzeCmd(st *store.Store, forecastDays int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		time.Sleep(analysisDelay)

		projects := st.Projects()
		expenses := st.Expenses()
		items := st.Items()

		return AnalysisMsg{
			Projects:  projects,
			Expenses:  expenses,
			Items:     items,
			InvStats:  st.InventoryStats(),
			Budget:    insight.AnalyzeBudget(projects, expenses),
			Stock:     insight.AnalyzeInventory(items),
			Predicted: forecast.PredictCashFlow(expenses, forecastDays, nil),
			Elapsed:   time.Since(start),
		}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup form intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Re-run analysis on demand
		if key == "r" && !a.analyzing {
			a.analyzing = true
			return a, analyzeCmd(a.st, a.forecastDays)
		}

		// Per-tab cursor movement
		switch a.activeTab {
		case tabProjects:
			switch key {
			case "j", "down":
				if a.projCursor < len(a.projects)-1 {
					a.projCursor++
				}
				return a, nil
			case "k", "up":
				if a.projCursor > 0 {
					a.projCursor--
				}
				return a, nil
			}
		case tabInventory:
			switch key {
			case "j", "down":
				if a.invCursor < len(a.items)-1 {
					a.invCursor++
				}
				return a, nil
			case "k", "up":
				if a.invCursor > 0 {
					a.invCursor--
				}
				return a, nil
			}
		case tabSettings:
			switch key {
			case "j", "down":
				if a.themeCursor < len(theme.All)-1 {
					a.themeCursor++
				}
				return a, nil
			case "k", "up":
				if a.themeCursor > 0 {
					a.themeCursor--
				}
				return a, nil
			case "enter":
				return a.applyTheme()
			}
		}

		// Tab navigation
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}
		switch key {
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case AnalysisMsg:
		a.projects = msg.Projects
		a.expenses = msg.Expenses
		a.items = msg.Items
		a.invStats = msg.InvStats
		a.budget = msg.Budget
		a.stock = msg.Stock
		a.predicted = msg.Predicted
		a.loadTime = msg.Elapsed
		a.analyzing = false
		a.loaded = true

		if a.projCursor >= len(a.projects) {
			a.projCursor = len(a.projects) - 1
		}
		if a.projCursor < 0 {
			a.projCursor = 0
		}
		if a.invCursor >= len(a.items) {
			a.invCursor = len(a.items) - 1
		}
		if a.invCursor < 0 {
			a.invCursor = 0
		}

		// Activate first-run setup after the first analysis pass
		if a.needSetup && a.setupForm == nil {
			a.setupForm = newSetupForm(len(a.projects), &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.analyzing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) applyTheme() (tea.Model, tea.Cmd) {
	if a.themeCursor < 0 || a.themeCursor >= len(theme.All) {
		return a, nil
	}
	theme.SetActive(theme.All[a.themeCursor].Name)

	cfg, _ := config.Load()
	cfg.Appearance.Theme = theme.Active.Name
	_ = config.Save(cfg)
	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// Tab indexes, matching components.Tabs order.
const (
	tabOverview = iota
	tabProjects
	tabInventory
	tabInsights
	tabForecast
	tabSettings
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return fmt.Sprintf(
			"\n  Terminal too narrow (%d cols)\n\n  sitebudget needs at least %d columns.\n",
			a.width, minTerminalWidth,
		)
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◆ sitebudget"))
	b.WriteString(subtitleStyle.Render(" · Construction Budget Manager"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Analyzing budget data"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	rows := []struct{ key, desc string }{
		{"o/p/v/i/f/x", "switch tabs"},
		{"tab / shift+tab", "next / previous tab"},
		{"j/k", "move selection"},
		{"r", "re-run analysis"},
		{"enter", "apply (settings)"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n  Keyboard shortcuts\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", r.key)),
			descStyle.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("  Press any key to dismiss"))
	return b.String()
}

func (a App) viewMain() string {
	cw := a.contentWidth()

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.viewOverview(cw)
	case tabProjects:
		content = a.viewProjects(cw)
	case tabInventory:
		content = a.viewInventory(cw)
	case tabInsights:
		content = a.viewInsights(cw)
	case tabForecast:
		content = a.viewForecast(cw)
	case tabSettings:
		content = a.viewSettings(cw)
	}

	var b strings.Builder
	b.WriteString(components.RenderTabBar(a.activeTab, cw))
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(cw, a.user.Name, a.user.Role))
	return b.String()
}
