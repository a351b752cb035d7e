package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/korhaliv/winsync/internal/dragdrop"
	"github.com/korhaliv/winsync/internal/store"
	"github.com/korhaliv/winsync/internal/theme"
	"github.com/korhaliv/winsync/internal/transport"
	"github.com/korhaliv/winsync/internal/workspace"
)

const (
	chatPanelWidth = 32
	toastLifetime  = 4 * time.Second
)

var styles = theme.Default()

type storesChangedMsg struct{}

type noticeMsg string

type toastTickMsg struct{}

// Options carries the collaborators the window shell needs.
type Options struct {
	Label   string
	Root    string
	Files   *store.FileStore
	Layout  *store.LayoutStore
	Tree    *workspace.Tree
	Opener  *workspace.Opener
	Local   transport.Bus
	Regions *dragdrop.RegionIndex
	Notices *Notifier
	Verbose bool
}

// Model renders one window of the editor shell.
type Model struct {
	opts   Options
	width  int
	height int

	updates chan struct{}
	unsubs  []func()

	storeEvents int

	toast       string
	toastExpire time.Time

	picker *picker
}

// NewModel wires the model to its stores; mutations from any source (local
// keys or remote sync) wake the view through the same subscription.
func NewModel(opts Options) *Model {
	m := &Model{
		opts:    opts,
		updates: make(chan struct{}, 1),
	}
	wake := func() {
		select {
		case m.updates <- struct{}{}:
		default:
		}
	}
	m.unsubs = append(m.unsubs, opts.Files.Subscribe(func(_, _ store.FileView) { wake() }))
	m.unsubs = append(m.unsubs, opts.Layout.Subscribe(func(_, _ store.LayoutView) { wake() }))
	return m
}

// Teardown removes the store subscriptions; call after the program exits.
func (m *Model) Teardown() {
	for _, u := range m.unsubs {
		u()
	}
	m.unsubs = nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStores(), m.waitForNotice())
}

func (m *Model) waitForStores() tea.Cmd {
	return func() tea.Msg {
		<-m.updates
		return storesChangedMsg{}
	}
}

func (m *Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.opts.Notices.ch)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.publishRegions()
		return m, nil

	case tea.MouseMsg:
		// The terminal's pointer feed stands in for the host shell's
		// pointer events; the arbiter consumes them off the local bus.
		_ = m.opts.Local.Emit(transport.ChannelPointerMoved, dragdrop.PointerEvent{X: msg.X, Y: msg.Y})
		if m.opts.Verbose {
			// Verbose mode doubles the pointer feed as a drag feed, so
			// arbitration can be exercised without a host shell.
			switch msg.Action {
			case tea.MouseActionMotion:
				_ = m.opts.Local.Emit(transport.ChannelDragOver, dragdrop.PointerEvent{X: msg.X, Y: msg.Y})
			case tea.MouseActionRelease:
				_ = m.opts.Local.Emit(transport.ChannelDragEnd, struct{}{})
			}
		}
		return m, nil

	case storesChangedMsg:
		m.storeEvents++
		m.publishRegions()
		return m, m.waitForStores()

	case noticeMsg:
		m.toast = string(msg)
		m.toastExpire = time.Now().Add(toastLifetime)
		return m, tea.Batch(m.waitForNotice(), toastTick())

	case toastTickMsg:
		if m.toast != "" && time.Now().After(m.toastExpire) {
			m.toast = ""
			return m, nil
		}
		if m.toast != "" {
			return m, toastTick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return toastTickMsg{} })
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		return m.updatePicker(msg)
	}

	layout := m.opts.Layout
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "ctrl+p":
		m.openPicker()
		return m, nil
	case "s":
		_, _ = layout.SplitPane(store.SplitHorizontal, layout.View().ActivePaneID)
	case "v":
		_, _ = layout.SplitPane(store.SplitVertical, layout.View().ActivePaneID)
	case "x":
		layout.ClosePane(layout.View().ActivePaneID)
	case "tab":
		m.cycleActivePane()
	case "+", "=":
		m.resizeActivePane(5)
	case "-":
		m.resizeActivePane(-5)
	case "c":
		layout.ToggleChat()
	case "t":
		layout.ToggleTerminal()
	case "w":
		m.opts.Files.Close(m.opts.Files.View().ActiveFileID)
	}
	return m, nil
}

func (m *Model) cycleActivePane() {
	v := m.opts.Layout.View()
	for i, p := range v.Panes {
		if p.ID == v.ActivePaneID {
			next := v.Panes[(i+1)%len(v.Panes)]
			m.opts.Layout.SetActivePane(next.ID)
			return
		}
	}
}

func (m *Model) resizeActivePane(delta float64) {
	v := m.opts.Layout.View()
	for _, p := range v.Panes {
		if p.ID == v.ActivePaneID {
			m.opts.Layout.ResizePane(p.ID, p.Size+delta)
			return
		}
	}
}

// publishRegions keeps the arbiter's chat rectangle in sync with the
// rendered layout: the chat panel occupies the right-hand column whenever
// it is open.
func (m *Model) publishRegions() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	if m.opts.Layout.View().ChatOpen {
		m.opts.Regions.SetChatRegion(dragdrop.Rect{
			X: m.width - chatPanelWidth,
			Y: 0,
			W: chatPanelWidth,
			H: m.height,
		})
		return
	}
	m.opts.Regions.ClearChatRegion()
}
