package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ccview/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	progressStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorPurple)
	hookStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorOrange)
	toolStyle      = lipgloss.NewStyle().Foreground(ColorAccent)
	errorStyle     = lipgloss.NewStyle().Foreground(ColorRed)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeBorder := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	writeBorder("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		writeBorder("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			writeBorder("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	writeBorder("╰", "┴", "╯")

	return b.String()
}

// RenderMessage renders one conversation message with its content blocks.
func RenderMessage(msg model.Message) string {
	var b strings.Builder

	label := string(msg.Kind)
	var style lipgloss.Style
	switch msg.Kind {
	case model.KindUser:
		style = userStyle
	case model.KindAssistant:
		style = assistantStyle
	case model.KindProgress:
		style = progressStyle
	case model.KindHook:
		style = hookStyle
	default:
		style = valueStyle
	}

	header := style.Render(strings.ToUpper(label))
	if !msg.Timestamp.IsZero() {
		header += mutedStyle.Render("  " + msg.Timestamp.Local().Format("Jan 02 15:04:05"))
	}
	if msg.Model != "" {
		header += mutedStyle.Render("  " + msg.Model)
	}
	if msg.Usage != nil {
		header += mutedStyle.Render(fmt.Sprintf("  %s tok  %s",
			FormatTokens(msg.Usage.TotalTokens), FormatCost(msg.Usage.CostUSD)))
	}
	b.WriteString("  " + header + "\n")

	for _, blk := range msg.Blocks {
		b.WriteString(renderBlock(blk))
	}

	return b.String()
}

func renderBlock(blk model.ContentBlock) string {
	var b strings.Builder

	switch blk.Type {
	case model.BlockText:
		writeIndented(&b, valueStyle, blk.Text)

	case model.BlockThinking:
		writeIndented(&b, dimStyle, blk.Text)

	case model.BlockToolUse:
		line := toolStyle.Render("⚙ "+blk.ToolName) + mutedStyle.Render("  "+blk.ID)
		if blk.AgentID != "" {
			line += progressStyle.Render("  " + blk.AgentID)
		}
		b.WriteString("    " + line + "\n")
		if blk.Result != nil {
			style := mutedStyle
			if blk.Result.IsError {
				style = errorStyle
			}
			writeIndented(&b, style, Truncate(blk.Result.Content, 400))
		}
		for _, p := range blk.Progress {
			b.WriteString("      " + progressStyle.Render("↳ "+p.AgentID) +
				mutedStyle.Render("  "+Truncate(p.Prompt, 80)) + "\n")
		}

	case model.BlockToolResult:
		// The full content renders under the correlated tool_use, so only
		// a compact reference shows here.
		line := mutedStyle.Render("→ result for " + blk.ID)
		if blk.IsError {
			line += errorStyle.Render("  (error)")
		}
		b.WriteString("    " + line + "\n")

	case model.BlockImage:
		b.WriteString("    " + mutedStyle.Render("[image "+blk.MediaType+"]") + "\n")

	case model.BlockProgress:
		b.WriteString("    " + progressStyle.Render("↳ "+blk.AgentID) +
			mutedStyle.Render("  "+Truncate(blk.Text, 120)) + "\n")

	case model.BlockHook:
		b.WriteString("    " + hookStyle.Render("⚑ "+blk.HookEvent) +
			mutedStyle.Render("  "+Truncate(blk.HookCommand, 120)) + "\n")
	}

	return b.String()
}

func writeIndented(b *strings.Builder, style lipgloss.Style, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("    " + style.Render(line) + "\n")
	}
}

// RenderPageFooter renders the pagination status line.
func RenderPageFooter(page model.PaginatedMessages) string {
	status := fmt.Sprintf("page %d/%d  ·  %d messages", page.CurrentPage, page.TotalPages, page.TotalMessages)
	if page.HasMore {
		status += "  ·  more available"
	}
	return "  " + mutedStyle.Render(status)
}
