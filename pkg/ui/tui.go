package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	inferenceApp "github.com/ChiaviniK/ComexioCase/business/inference/app"
	"github.com/ChiaviniK/ComexioCase/pkg/ui/components"
)

// StartupStep represents a step in the startup process.
type StartupStep struct {
	Name   string
	Status string // "pending", "connecting", "connected", "done", "failed"
}

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"   // Initial welcome screen
	PhaseStartup   Phase = "startup"   // Loading modules
	PhaseDashboard Phase = "dashboard" // Main dashboard
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// StartupOrder lists the startup steps in display order. Step keys match
// the names main reports modules under.
var StartupOrder = []string{"catalog", "rates", "listing", "inference", "trends"}

var startupNames = map[string]string{
	"catalog":   "Loading category catalog",
	"rates":     "Fetching exchange rate",
	"listing":   "Preparing marketplace client",
	"inference": "Configuring inference engine",
	"trends":    "Preparing trend sources",
}

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// Actions are the side effects the dashboard can request. Each runs on its
// own goroutine and reports back through Send.
type Actions struct {
	Refresh func(categoryID string)
	Export  func(categoryID string)
	Charts  func(categoryID string)
	Trends  func(source string)
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	variant Variant
	theme   Theme
	keys    KeyMap
	help    help.Model
	actions Actions

	// Components
	table   table.Model
	kpis    *components.KPIComponent
	ranking *components.RankingComponent
	status  *components.StatusComponent

	// Phase state
	phase        Phase
	welcomeStart time.Time
	startupSteps map[string]*StartupStep
	startupTime  time.Time

	// State
	quitting     bool
	loading      bool
	width        int
	height       int
	categories   []string
	current      int
	batches      map[string]*inferenceApp.Batch
	trendSources []string
	trendIdx     int
	errors       []ErrorEntry // last 3
	logs         []string     // last 5
}

// New creates a new TUI model.
func New(variant Variant, categories, trendSources []string, actions Actions) Model {
	now := time.Now()
	theme := NewTheme(variant.Accent)

	steps := make(map[string]*StartupStep, len(StartupOrder))
	for _, key := range StartupOrder {
		steps[key] = &StartupStep{Name: startupNames[key], Status: "pending"}
	}

	return Model{
		variant:      variant,
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		actions:      actions,
		table:        newRecordTable(variant, theme),
		kpis:         components.NewKPIComponent(theme.Accent),
		ranking:      components.NewRankingComponent(variant.RankingRows, theme.Accent),
		status:       components.NewStatusComponent(),
		phase:        PhaseWelcome,
		welcomeStart: now,
		startupSteps: steps,
		startupTime:  now,
		categories:   categories,
		batches:      make(map[string]*inferenceApp.Batch),
		trendSources: trendSources,
		errors:       make([]ErrorEntry, 0, 3),
		logs:         make([]string, 0, 5),
	}
}

var columnWidths = map[string]int{
	"CO_NCM":         10,
	"Produto":        34,
	"Valor_FOB_USD":  13,
	"Peso_KG":        8,
	"Preco_Medio_KG": 14,
	"Porto_Entrada":  14,
	"Pais_Origem":    14,
	"Data":           10,
}

func newRecordTable(variant Variant, theme Theme) table.Model {
	cols := make([]table.Column, 0, len(variant.Columns))
	for _, name := range variant.Columns {
		cols = append(cols, table.Column{Title: name, Width: columnWidths[name]})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Accent)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(theme.Accent).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		// During welcome phase, any other key skips to startup
		if m.phase == PhaseWelcome {
			m.enterStartup()
			return m, nil
		}
		if m.phase != PhaseDashboard {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Next):
			m.selectCategory(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectCategory(m.current - 1)
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.requestRefresh()
			return m, nil
		case key.Matches(msg, m.keys.Export):
			if m.actions.Export != nil && m.currentCategory() != "" {
				go m.actions.Export(m.currentCategory())
			}
			return m, nil
		case key.Matches(msg, m.keys.Charts):
			if m.actions.Charts != nil && m.currentCategory() != "" {
				go m.actions.Charts(m.currentCategory())
			}
			return m, nil
		case key.Matches(msg, m.keys.Trends):
			if len(m.trendSources) > 0 {
				m.trendIdx = (m.trendIdx + 1) % len(m.trendSources)
				m.requestTrends()
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - 18; h > 5 {
			m.table.SetHeight(h)
		}

	case TickMsg:
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m.enterStartup()
		}
		return m, tickCmd()

	case StartupMsg:
		if step, ok := m.startupSteps[msg.Step]; ok {
			step.Status = msg.Status
		}
		if msg.Status == "failed" && msg.Message != "" {
			m.addError(msg.Message)
		}
		if m.phase != PhaseDashboard && m.startupComplete() {
			m.phase = PhaseDashboard
			m.requestRefresh()
			m.requestTrends()
		}

	case BatchMsg:
		if msg.Batch == nil {
			return m, nil
		}
		m.batches[msg.Batch.Category.ID] = msg.Batch
		m.status.Update(components.SourceStatus{
			Name:       "Dólar",
			Healthy:    !msg.Batch.Rate.IsFallback(),
			Detail:     string(msg.Batch.Rate.Source),
			LastUpdate: msg.Batch.Rate.ObservedAt,
		})
		m.status.Update(components.SourceStatus{
			Name:       "Mercado Livre",
			Healthy:    !msg.Batch.Degraded,
			LastUpdate: msg.Batch.CreatedAt,
		})
		if msg.Batch.Category.ID == m.currentCategory() {
			m.loading = false
			m.showBatch(msg.Batch)
		}
		m.logs = addLog(m.logs, "info", fmt.Sprintf("%s: %d records", msg.Batch.Category.ID, len(msg.Batch.Records)))

	case TrendsMsg:
		if msg.Report == nil {
			return m, nil
		}
		rows := make([]components.RankingRow, 0, len(msg.Report.Results))
		for _, r := range msg.Report.Results {
			rows = append(rows, components.RankingRow{
				Rank:      r.Rank,
				Entity:    r.EntityKey,
				Start:     r.StartPeriod,
				End:       r.EndPeriod,
				PctChange: r.PctChange,
			})
		}
		m.ranking.Update(msg.Report.Source, msg.Report.FromFallback, len(msg.Report.Skipped), rows)

	case ArtifactMsg:
		for _, p := range msg.Paths {
			m.logs = addLog(m.logs, "info", fmt.Sprintf("%s written: %s", msg.Kind, p))
		}

	case ErrorMsg:
		m.loading = false
		m.addError(msg.Error.Error())
		m.logs = addLog(m.logs, "error", msg.Error.Error())

	case LogMsg:
		m.logs = addLog(m.logs, msg.Level, msg.Message)
	}

	return m, nil
}

func (m *Model) enterStartup() {
	m.phase = PhaseStartup
	m.startupTime = time.Now()
	// Trigger callback directly (don't use Send() from within Update)
	if OnStartModules != nil {
		go OnStartModules()
	}
}

func (m Model) startupComplete() bool {
	for _, step := range m.startupSteps {
		if step.Status != "connected" && step.Status != "done" {
			return false
		}
	}
	return true
}

func (m Model) currentCategory() string {
	if len(m.categories) == 0 {
		return ""
	}
	return m.categories[m.current]
}

func (m *Model) selectCategory(i int) {
	if len(m.categories) == 0 {
		return
	}
	m.current = (i + len(m.categories)) % len(m.categories)
	if b, ok := m.batches[m.currentCategory()]; ok {
		m.showBatch(b)
		return
	}
	m.showBatch(nil)
	m.requestRefresh()
}

func (m *Model) requestRefresh() {
	if m.actions.Refresh == nil || m.currentCategory() == "" {
		return
	}
	m.loading = true
	go m.actions.Refresh(m.currentCategory())
}

func (m *Model) requestTrends() {
	if m.actions.Trends == nil || len(m.trendSources) == 0 {
		return
	}
	go m.actions.Trends(m.trendSources[m.trendIdx])
}

func (m *Model) showBatch(b *inferenceApp.Batch) {
	if b == nil {
		m.table.SetRows(nil)
		m.kpis.Update(components.KPIs{Category: m.currentCategory()})
		return
	}

	rows := make([]table.Row, 0, len(b.Records))
	for _, rec := range b.Records {
		rows = append(rows, table.Row(m.variant.Row(rec)))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()

	m.kpis.Update(components.KPIs{
		Category:     b.Category.ID,
		Records:      b.Summary.Count,
		TotalFOB:     b.Summary.TotalFOB,
		MeanFOB:      b.Summary.MeanFOB,
		MedianFOB:    b.Summary.MedianFOB,
		MeanUnit:     b.Summary.MeanUnitValue,
		TotalWeight:  b.Summary.TotalWeightKg,
		Rate:         b.Rate.Bid,
		RateFallback: b.Rate.IsFallback(),
		Degraded:     b.Degraded,
	})
}

func (m *Model) addError(message string) {
	m.errors = append(m.errors, ErrorEntry{Message: message, Timestamp: time.Now()})
	if len(m.errors) > 3 {
		m.errors = m.errors[len(m.errors)-3:]
	}
}

// addLog adds a log message and returns the updated slice (keeps last 5).
func addLog(logs []string, level, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	logs = append(logs, fmt.Sprintf("[%s] %s: %s", timestamp, level, message))
	if len(logs) > 5 {
		logs = logs[len(logs)-5:]
	}
	return logs
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Até logo!\n\n"
	}

	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseStartup:
		return m.renderStartupScreen()
	}

	var b strings.Builder

	b.WriteString(m.theme.Title.Render(" 🚢 " + m.variant.Title + " "))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if s := m.status.View(); s != "" {
		b.WriteString(s)
		b.WriteString("\n\n")
	}

	kpis := m.kpis.View()
	if m.loading {
		kpis = WarningValue.Render("⟳ refreshing "+m.currentCategory()+"...") + "\n" + kpis
	}
	b.WriteString(BoxStyle.Render(kpis))
	b.WriteString("\n")

	records := m.table.View()
	if len(m.table.Rows()) == 0 {
		records = MutedValue.Render("  No records for this category yet...")
	}
	ranking := m.ranking.View()

	if m.width > 140 {
		left := BoxStyle.Render(records)
		right := BoxStyle.Width(m.width - lipgloss.Width(left) - 4).Render(ranking)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(BoxStyle.Render(records))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(ranking))
	}
	b.WriteString("\n\n")

	// Persistent error panel (show last 3 errors)
	if len(m.errors) > 0 {
		errorStyle := lipgloss.NewStyle().Foreground(ColorDanger)
		errorHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(errorStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(MutedValue.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for _, line := range m.logs {
		b.WriteString(MutedValue.Render("  " + line))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		if i == m.current {
			tabs = append(tabs, m.theme.TabOn.Render(c))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(c))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	greenStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	// Animated dots based on time
	elapsed := time.Since(m.welcomeStart)
	dots := strings.Repeat(".", int(elapsed.Milliseconds()/300)%4)

	var sb strings.Builder
	sb.WriteString("\n\n\n\n")

	logo := `
    ██████╗ ██████╗ ███╗   ███╗███████╗██╗  ██╗
   ██╔════╝██╔═══██╗████╗ ████║██╔════╝╚██╗██╔╝
   ██║     ██║   ██║██╔████╔██║█████╗   ╚███╔╝
   ██║     ██║   ██║██║╚██╔╝██║██╔══╝   ██╔██╗
   ╚██████╗╚██████╔╝██║ ╚═╝ ██║███████╗██╔╝ ██╗
    ╚═════╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝  ╚═╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("          I N T E L I G Ê N C I A   D E   I M P O R T A Ç Ã O"))
	sb.WriteString("\n\n\n")
	sb.WriteString(greenStyle.Render(fmt.Sprintf("                  Initializing%s", dots)))
	sb.WriteString("\n\n")
	sb.WriteString(mutedStyle.Render("            Press any key to skip, or wait..."))
	sb.WriteString("\n")

	return sb.String()
}

// renderStartupScreen renders the loading/startup screen.
func (m Model) renderStartupScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent).MarginBottom(1)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	successStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	connectingStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	failedStyle := lipgloss.NewStyle().Foreground(ColorDanger)

	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  🚢 " + m.variant.Title))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("  Starting up..."))
	sb.WriteString("\n\n")

	for _, key := range StartupOrder {
		step := m.startupSteps[key]

		var icon, statusText string
		var style lipgloss.Style

		switch step.Status {
		case "connected", "done":
			icon, statusText, style = "✓", "Ready", successStyle
		case "connecting":
			spinners := []string{"◐", "◓", "◑", "◒"}
			idx := int(time.Since(m.startupTime).Milliseconds()/200) % len(spinners)
			icon, statusText, style = spinners[idx], "Loading...", connectingStyle
		case "failed":
			icon, statusText, style = "✗", "Failed", failedStyle
		default:
			icon, statusText, style = "○", "Pending", mutedStyle
		}

		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			style.Render(icon),
			mutedStyle.Render(step.Name),
			style.Render(statusText),
		))
	}

	sb.WriteString("\n")
	elapsed := time.Since(m.startupTime).Round(time.Second)
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  Elapsed: %s", elapsed)))
	sb.WriteString("\n")

	for _, err := range m.errors {
		sb.WriteString(failedStyle.Render("  • " + err.Message))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartModules is called when the welcome screen completes and modules should start.
// This is set by main.go to signal when to begin loading modules.
var OnStartModules func()

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
	// Call OnStartModules callback when StartModulesMsg is sent
	if _, ok := msg.(StartModulesMsg); ok && OnStartModules != nil {
		OnStartModules()
	}
}
