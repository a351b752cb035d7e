package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const footerHints = "ctrl+p open · s/v split · x close pane · tab focus · +/- resize · c chat · t terminal · q quit"

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	bodyHeight := m.height - 4 // header, tabs, footer, toast line
	layout := m.opts.Layout.View()
	if layout.TerminalOpen {
		bodyHeight--
	}
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	if m.picker != nil {
		b.WriteString(m.renderPicker(bodyHeight))
	} else {
		b.WriteString(m.renderBody(bodyHeight))
	}
	b.WriteString("\n")

	if layout.TerminalOpen {
		b.WriteString(styles.Terminal.Render(truncate.String("▸ terminal (shared panel state)", uint(m.width))))
		b.WriteString("\n")
	}

	if m.toast != "" {
		b.WriteString(styles.Toast.Render(truncate.String(m.toast, uint(m.width))))
	}
	b.WriteString("\n")
	footer := footerHints
	if m.opts.Verbose {
		footer = fmt.Sprintf("updates: %d · %s", m.storeEvents, footerHints)
	}
	b.WriteString(styles.Footer.Render(truncate.String(footer, uint(m.width))))
	return b.String()
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("winsync · %s · %s", m.opts.Label, m.opts.Root)
	return styles.Header.Render(truncate.String(title, uint(m.width)))
}

func (m *Model) renderTabs() string {
	view := m.opts.Files.View()
	if len(view.OpenedFiles) == 0 {
		return styles.Tab.Render("no open files")
	}
	parts := make([]string, 0, len(view.OpenedFiles))
	for _, f := range view.OpenedFiles {
		label := f.Name
		if f.IsDirty {
			label += styles.DirtyMark.Render("●")
		}
		if f.ID == view.ActiveFileID {
			parts = append(parts, styles.ActiveTab.Render(" "+label+" "))
		} else {
			parts = append(parts, styles.Tab.Render(" "+label+" "))
		}
	}
	return truncate.String(strings.Join(parts, ""), uint(m.width))
}

// renderBody draws the pane row sized by the layout store's percentages,
// with the chat panel pinned to the right column when open.
func (m *Model) renderBody(height int) string {
	layout := m.opts.Layout.View()
	files := m.opts.Files.View()

	paneArea := m.width
	if layout.ChatOpen {
		paneArea -= chatPanelWidth
		if paneArea < 10 {
			paneArea = 10
		}
	}

	cols := make([]string, 0, len(layout.Panes)+1)
	used := 0
	for i, pane := range layout.Panes {
		w := int(pane.Size / 100 * float64(paneArea))
		if i == len(layout.Panes)-1 {
			w = paneArea - used // last pane absorbs rounding
		}
		if w < 6 {
			w = 6
		}
		used += w

		title := "empty"
		for _, f := range files.OpenedFiles {
			if f.ID == pane.FileID {
				title = f.Name
				break
			}
		}
		body := styles.PaneTitle.Render(title) + "\n" + fmt.Sprintf("%.0f%%", pane.Size)

		style := styles.Pane
		if pane.ID == layout.ActivePaneID {
			style = styles.ActivePane
		}
		cols = append(cols, style.Width(w-2).Height(height-2).Render(body))
	}

	if layout.ChatOpen {
		chat := styles.ChatPanel.Width(chatPanelWidth - 2).Height(height - 2).
			Render(styles.PaneTitle.Render("chat") + "\ndrop files here to attach")
		cols = append(cols, chat)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *Model) renderPicker(height int) string {
	p := m.picker
	rows := []string{p.input.View()}
	limit := len(p.matches)
	if limit > pickerMaxRows {
		limit = pickerMaxRows
	}
	lineWidth := m.width - 8
	if lineWidth < 1 {
		lineWidth = 1
	}
	for i := 0; i < limit; i++ {
		line := truncate.String(p.matches[i].Path, uint(lineWidth))
		if i == p.cursor {
			rows = append(rows, styles.PickerChoice.Render("> "+line))
		} else {
			rows = append(rows, styles.PickerItem.Render("  "+line))
		}
	}
	boxWidth := m.width - 4
	if boxWidth < 2 {
		boxWidth = 2
	}
	box := styles.Picker.Width(boxWidth).Render(strings.Join(rows, "\n"))
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Top, box)
}
