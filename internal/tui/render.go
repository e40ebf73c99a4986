package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/options"
)

var (
	paneHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	liftedStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Faint(true)
	mirrorStyle     = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1).Foreground(lipgloss.Color("212"))
	statusBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 2)
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading board..."
	}

	contentH := m.layout.contentHeight()
	canvas := blankCanvas(m.width, contentH)
	now := time.Now()

	// Pane headers first, then cards over them, the mirror on top of
	// everything.
	m.eachContainer(func(pane *dom.Node) {
		r, ok := m.layout.Rect(pane)
		if !ok {
			return
		}
		header := paneHeaderStyle.Render(truncate(describe(pane), int(r.W)))
		canvas = overlayAt(canvas, header, int(r.X), int(r.Y), m.width, contentH)
	})

	m.eachContainer(func(pane *dom.Node) {
		for _, c := range pane.Children() {
			if c.Style().Mirror || !options.IsItem(c) {
				continue
			}
			canvas = m.drawCard(canvas, c, now, contentH)
		}
	})

	walkTree(m.tree.Root, func(n *dom.Node) {
		if n.Style().Mirror {
			canvas = m.drawCard(canvas, n, now, contentH)
		}
	})

	statusLine := m.renderStatus(m.status)
	footer := m.renderFooter(renderHelp(m.keys.ShortHelp()))
	return canvas + "\n" + statusLine + "\n" + footer
}

func (m Model) drawCard(canvas string, n *dom.Node, now time.Time, contentH int) string {
	r, ok := m.layout.Rect(n)
	if !ok {
		return canvas
	}
	dx, dy := n.OffsetAt(now)
	x := int(r.X + dx + 0.5)
	y := int(r.Y + dy + 0.5)

	style := cardStyle
	switch {
	case n.Style().Mirror:
		style = mirrorStyle
	case n.Style().Lifted:
		style = liftedStyle
	}
	w := int(r.W) - 2
	if w < 4 {
		w = 4
	}
	box := style.Width(w).Render(truncate(describe(n), w-2))
	return overlayAt(canvas, box, x, y, m.width, contentH)
}

// eachContainer visits every drop container across the board's scopes.
func (m Model) eachContainer(fn func(*dom.Node)) {
	walkTree(m.tree.Root, func(n *dom.Node) {
		if options.IsContainer(n) {
			fn(n)
		}
	})
}

func (m Model) renderStatus(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	return statusBarStyle.Render(padRight(flat, m.width-4))
}

func (m Model) renderFooter(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	return footerStyle.Render(padRight(flat, m.width-4))
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}

func blankCanvas(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > max {
			max = w
		}
	}
	return max
}

// overlayAt composites overlay onto base at column x, row y. Rows outside
// the canvas are clipped.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := cutPlain(target, 0, x)
		right := ""
		if width > 0 {
			right = cutPlain(target, x+overlayWidth, width)
		}
		overlayLine := padRight(line, overlayWidth)
		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func cutPlain(s string, left, right int) string {
	if right <= left {
		return ""
	}
	runes := []rune(s)
	if left < 0 {
		left = 0
	}
	if right > len(runes) {
		right = len(runes)
	}
	if left > len(runes) {
		return ""
	}
	return string(runes[left:right])
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
