// Package tui provides the interactive Bubble Tea session browser.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ccview/internal/cli"
	"ccview/internal/config"
	"ccview/internal/conversation"
	"ccview/internal/model"
	"ccview/internal/pipeline"
	"ccview/internal/source"
	"ccview/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Sessions []model.SessionStats
	LoadTime time.Duration
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// SessionParsedMsg is sent when a full conversation parse completes.
type SessionParsedMsg struct {
	Result pipeline.ParseResult
}

type viewMode int

const (
	viewList viewMode = iota
	viewConversation
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	sessions []model.SessionStats
	filtered []model.SessionStats
	loaded   bool
	loadTime time.Duration

	// UI state
	width  int
	height int
	mode   viewMode

	// List view
	cursor int
	offset int

	// Conversation view
	convo     pipeline.ParseResult
	page      int
	paged     model.PaginatedMessages
	convoErr  error
	parsing   bool
	convoScrl int

	// Filter state
	days    int
	project string

	// Loading — channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg

	// Pipeline inputs
	dataDir          string
	includeSubagents bool
	rates            config.PriceResolver
	pageSize         int
}

const (
	minTerminalWidth = 60
	listChromeHeight = 7 // title + header + footer rows around the session list
)

// NewApp creates the root TUI model.
func NewApp(dataDir string, days int, project string, includeSubagents bool, cfg config.Config) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AA99F"))

	pageSize := cfg.General.PageSize
	if pageSize <= 0 {
		pageSize = conversation.DefaultPageSize
	}

	return App{
		dataDir:          dataDir,
		days:             days,
		project:          project,
		includeSubagents: includeSubagents,
		rates:            cfg.Resolver(),
		pageSize:         pageSize,
		spinner:          sp,
		loadSub:          make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.dataDir, a.includeSubagents, a.rates, a.loadSub),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	now := time.Now()
	since := now.AddDate(0, 0, -a.days)

	filtered := a.sessions
	if a.project != "" {
		filtered = pipeline.FilterByProject(filtered, a.project)
	}
	filtered = pipeline.FilterByTime(filtered, since, now)

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].StartTime.After(filtered[j].StartTime)
	})
	a.filtered = filtered

	if a.cursor >= len(a.filtered) {
		a.cursor = len(a.filtered) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.mode == viewConversation {
			return a.updateConversation(key)
		}
		return a.updateList(key)

	case DataLoadedMsg:
		a.sessions = msg.Sessions
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.recompute()
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case SessionParsedMsg:
		a.parsing = false
		a.convo = msg.Result
		a.convoErr = msg.Result.Err
		a.page = 1
		a.convoScrl = 0
		a.paged = conversation.Paginate(a.convo.Messages, a.page, a.pageSize)
		a.mode = viewConversation
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a App) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.filtered)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g":
		a.cursor = 0
		a.offset = 0
	case "G":
		a.cursor = len(a.filtered) - 1
		if a.cursor < 0 {
			a.cursor = 0
		}
	case "enter":
		if a.cursor < len(a.filtered) && !a.parsing {
			a.parsing = true
			return a, parseSessionCmd(a.dataDir, a.filtered[a.cursor], a.rates)
		}
	}
	return a, nil
}

func (a App) updateConversation(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		a.mode = viewList
		a.convo = pipeline.ParseResult{}
		a.paged = model.PaginatedMessages{}
	case "n", "right":
		if a.page < a.paged.TotalPages {
			a.page++
			a.convoScrl = 0
			a.paged = conversation.Paginate(a.convo.Messages, a.page, a.pageSize)
		}
	case "p", "left":
		if a.page > 1 {
			a.page--
			a.convoScrl = 0
			a.paged = conversation.Paginate(a.convo.Messages, a.page, a.pageSize)
		}
	case "j", "down":
		a.convoScrl++
	case "k", "up":
		if a.convoScrl > 0 {
			a.convoScrl--
		}
	case "g":
		a.convoScrl = 0
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d).\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.mode == viewConversation {
		return a.viewConversation()
	}
	return a.viewList()
}

func (a App) viewLoading() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("  ")
	b.WriteString(a.spinner.View())
	if a.progressMax > 0 {
		fmt.Fprintf(&b, " Parsing sessions  %s / %s",
			cli.FormatNumber(int64(a.progress)),
			cli.FormatNumber(int64(a.progressMax)))
	} else {
		b.WriteString(" Discovering sessions...")
	}
	b.WriteString("\n")
	return b.String()
}

func (a App) viewList() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  ccview  %d sessions, last %dd", len(a.filtered), a.days)))
	if a.project != "" {
		b.WriteString(mutedStyle.Render("  project: " + a.project))
	}
	b.WriteString("\n\n")

	if len(a.filtered) == 0 {
		b.WriteString(mutedStyle.Render("  No sessions in the selected range.\n"))
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("  q quit"))
		return b.String()
	}

	visible := a.height - listChromeHeight
	if visible < 1 {
		visible = 1
	}

	// Keep cursor in the visible window
	offset := a.offset
	if a.cursor < offset {
		offset = a.cursor
	}
	if a.cursor >= offset+visible {
		offset = a.cursor - visible + 1
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("    %-12s %-13s %-14s %-30s %6s %9s",
		"Session", "Start", "Project", "Summary", "Msgs", "Cost")))
	b.WriteString("\n")

	end := offset + visible
	if end > len(a.filtered) {
		end = len(a.filtered)
	}
	for i := offset; i < end; i++ {
		s := a.filtered[i]
		start := ""
		if !s.StartTime.IsZero() {
			start = s.StartTime.Local().Format("Jan 02 15:04")
		}
		line := fmt.Sprintf("  %-12s %-13s %-14s %-30s %6s %9s",
			cli.Truncate(s.SessionID, 12),
			start,
			cli.Truncate(s.Project, 14),
			cli.Truncate(s.Summary, 30),
			cli.FormatNumber(int64(s.MessageCount)),
			cli.FormatCost(s.TotalCostUSD),
		)
		if i == a.cursor {
			b.WriteString(selectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("  j/k move · enter open · g/G jump · q quit"))
	return b.String()
}

func (a App) viewConversation() string {
	var b strings.Builder

	b.WriteString("\n")
	title := fmt.Sprintf("  %s  %s", cli.Truncate(a.convo.Stats.SessionID, 10), a.convo.Stats.Project)
	if a.convo.Stats.Summary != "" {
		title += "  · " + cli.Truncate(a.convo.Stats.Summary, 40)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if a.convoErr != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("  Parse error: %v\n", a.convoErr)))
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("  esc back · q back"))
		return b.String()
	}

	var content strings.Builder
	for i := len(a.paged.Messages) - 1; i >= 0; i-- {
		content.WriteString(cli.RenderMessage(a.paged.Messages[i]))
	}

	// Manual scroll over the rendered page
	lines := strings.Split(content.String(), "\n")
	visible := a.height - 6
	if visible < 1 {
		visible = 1
	}
	scroll := a.convoScrl
	if scroll > len(lines)-visible {
		scroll = len(lines) - visible
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[scroll:end], "\n"))
	b.WriteString("\n")

	b.WriteString(footerStyle.Render(fmt.Sprintf(
		"  page %d/%d (%d messages) · n/p page · j/k scroll · esc back",
		a.paged.CurrentPage, a.paged.TotalPages, a.paged.TotalMessages)))
	return b.String()
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CECDC3")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#878580")).Bold(true)
	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CECDC3"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AA99F")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#878580"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#575653"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#D14D41"))
)

// loadDataCmd starts the data pipeline in a background goroutine. It streams
// ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(dataDir string, includeSubagents bool, rates config.PriceResolver, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so parse workers aren't stalled. A skipped
			// update is caught up by the next one.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			cache, err := store.Open(pipeline.CachePath())
			if err == nil {
				cr, loadErr := pipeline.LoadWithCache(dataDir, includeSubagents, rates, cache, progressFn)
				_ = cache.Close()
				if loadErr == nil {
					sub <- DataLoadedMsg{Sessions: cr.Sessions, LoadTime: time.Since(start)}
					return
				}
			}

			result, err := pipeline.Load(dataDir, includeSubagents, rates, progressFn)
			if err != nil {
				sub <- DataLoadedMsg{LoadTime: time.Since(start)}
				return
			}
			sub <- DataLoadedMsg{Sessions: result.Sessions, LoadTime: time.Since(start)}
		}()

		// Block until the first message (ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// parseSessionCmd parses the full conversation for one session in the background.
func parseSessionCmd(dataDir string, s model.SessionStats, rates config.PriceResolver) tea.Cmd {
	return func() tea.Msg {
		df := source.DiscoveredFile{
			Path:          s.FilePath,
			Project:       s.Project,
			SessionID:     s.SessionID,
			IsSubagent:    s.IsSubagent,
			ParentSession: s.ParentSession,
		}
		if df.Path == "" {
			found, ok, err := source.FindSession(dataDir, s.SessionID)
			if err != nil || !ok {
				return SessionParsedMsg{Result: pipeline.ParseResult{
					Stats: s,
					Err:   fmt.Errorf("session file for %s not found", s.SessionID),
				}}
			}
			df = found
		}
		return SessionParsedMsg{Result: pipeline.ParseSession(df, rates)}
	}
}
