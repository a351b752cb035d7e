package ui

import (
	"path/filepath"
	"sort"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/korhaliv/winsync/internal/workspace"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const pickerMaxRows = 12

// picker is the quick-open overlay: a fuzzy filter over the project tree.
type picker struct {
	input   textinput.Model
	entries []workspace.Entry
	matches []workspace.Entry
	cursor  int
}

func (m *Model) openPicker() {
	input := textinput.New()
	input.Placeholder = "open file"
	input.Focus()
	entries := m.opts.Tree.Entries()
	m.picker = &picker{
		input:   input,
		entries: entries,
		matches: entries,
	}
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	switch msg.String() {
	case "esc", "ctrl+p":
		m.picker = nil
		return m, nil
	case "up", "ctrl+k":
		if p.cursor > 0 {
			p.cursor--
		}
		return m, nil
	case "down", "ctrl+j":
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return m, nil
	case "enter":
		if p.cursor < len(p.matches) {
			entry := p.matches[p.cursor]
			path := filepath.Join(m.opts.Root, entry.Path)
			if err := m.opts.Opener.OpenPath(path); err != nil {
				m.opts.Notices.Toast("Could not open " + entry.Name)
			}
		}
		m.picker = nil
		return m, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refilter()
	return m, cmd
}

// refilter ranks entries against the query; an empty query shows the whole
// tree in path order.
func (p *picker) refilter() {
	query := p.input.Value()
	if query == "" {
		p.matches = p.entries
		p.cursor = 0
		return
	}
	paths := make([]string, len(p.entries))
	for i, e := range p.entries {
		paths[i] = e.Path
	}
	ranks := fuzzy.RankFindFold(query, paths)
	sort.Sort(ranks)
	matches := make([]workspace.Entry, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, p.entries[r.OriginalIndex])
	}
	p.matches = matches
	p.cursor = 0
}
