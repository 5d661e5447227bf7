package purge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/nmkill/internal/core"
	"github.com/lakshaymaurya-felt/nmkill/internal/ui"
)

// exitLabel is the last menu entry.
const exitLabel = "  Exit"

// ─── Top-level view ──────────────────────────────────────────────────────────

func (m Model) renderView() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	if m.scanning {
		s.WriteString("  " + m.spinner.View() + " Finding Node Modules...")
		s.WriteString("\n")
		return s.String()
	}

	switch m.state.Mode {
	case ConfirmingDeletion:
		s.WriteString(m.renderConfirm())
	default:
		s.WriteString(m.renderList())
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m Model) renderHeader() string {
	version := m.opts.Version
	if version == "" {
		version = "dev"
	}
	title := ui.TitleStyle().Render("nmkill") +
		lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render("("+version+")")
	if m.opts.DryRun {
		title += "  " + ui.TagWarningStyle().Render(" dry run ")
	}
	if m.opts.Host == "" {
		return title
	}
	host := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(m.opts.Host)
	return title + "\n" + host
}

// ─── Body ────────────────────────────────────────────────────────────────────

func (m Model) renderList() string {
	question := lipgloss.NewStyle().Foreground(ui.ColorSuccess).Bold(true).Render(ui.IconQuestion)
	lines := []string{question + " " + lipgloss.NewStyle().Bold(true).Render("Choose the Node Modules:")}

	if m.records.Len() == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  (no node_modules with a package.json found)"))
	}

	total := m.records.Len() + 1
	vh := m.viewportHeight()
	for i := m.offset; i < total && i < m.offset+vh; i++ {
		lines = append(lines, m.renderItem(i))
	}

	if total > vh {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d ──", min(m.offset+vh, total), total)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderItem(i int) string {
	pointer := " "
	if i == m.cursor {
		pointer = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render(ui.IconPointer)
	}

	r, ok := m.records.At(i)
	if !ok {
		label := exitLabel
		if i == m.cursor {
			label = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Underline(true).Render(label)
		}
		return pointer + " " + label
	}

	style := lipgloss.NewStyle().Foreground(ui.ColorText)
	switch {
	case !r.Active:
		style = ui.DoneStyle()
	case i == m.cursor:
		style = style.Foreground(ui.ColorPrimary)
	}
	line := pointer + " " + style.Render(r.Label())

	if m.pending[i] {
		line += lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true).Render("  removing…")
	}
	return line
}

func (m Model) renderConfirm() string {
	r, _ := m.records.At(m.state.Index)

	question := lipgloss.NewStyle().Foreground(ui.ColorSuccess).Bold(true).Render(ui.IconQuestion)
	prompt := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Are you sure want to remove %q?", r.DisplayName))

	choice := func(label string, on bool) string {
		if on {
			return lipgloss.NewStyle().Foreground(ui.ColorPrimary).Underline(true).Render(label)
		}
		return lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(label)
	}
	toggle := choice("Yap", m.yes) + " / " + choice("Nope", !m.yes)

	detail := lipgloss.NewStyle().Foreground(ui.ColorTextDim).
		Render(fmt.Sprintf("  %s  %s MB", r.TargetDir, r.SizeMB))

	return question + " " + prompt + " " + toggle + "\n" + detail
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m Model) renderFooter() string {
	var parts []string

	summary := fmt.Sprintf("  %d of %d remaining %s %s total %s %s reclaimed",
		m.records.ActiveCount(), m.records.Len(), ui.IconPipe,
		core.FormatSize(m.records.TotalBytes()), ui.IconPipe,
		core.FormatSize(m.records.ReclaimedBytes()))
	if m.space != nil {
		summary += fmt.Sprintf(" %s %s free", ui.IconPipe, humanize.Bytes(m.space.Free))
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(summary))

	if m.notice != "" {
		if m.noticeOK {
			parts = append(parts, ui.DoneStyle().Render("  "+ui.IconCheck+" "+m.notice))
		} else {
			parts = append(parts, ui.ErrorStyle().Render("  "+ui.IconError+" "+m.notice))
		}
	}

	var hints string
	if m.state.Mode == ConfirmingDeletion {
		hints = m.help.View(m.keys.confirmHelp())
	} else {
		hints = m.help.View(m.keys.browseHelp())
	}
	parts = append(parts, "  "+hints)

	return strings.Join(parts, "\n")
}
