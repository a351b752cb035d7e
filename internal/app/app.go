package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/korhaliv/winsync/internal/dragdrop"
	"github.com/korhaliv/winsync/internal/logging"
	"github.com/korhaliv/winsync/internal/store"
	"github.com/korhaliv/winsync/internal/syncer"
	"github.com/korhaliv/winsync/internal/transport"
	"github.com/korhaliv/winsync/internal/ui"
	"github.com/korhaliv/winsync/internal/workspace"
)

// Config describes user-provided window options.
type Config struct {
	RedisAddr      string
	Root           string
	WindowLabel    string
	DragPoll       time.Duration
	HandshakeDelay time.Duration
	Verbose        bool
}

// Run boots one window process: cross-window bus, stores, sync engine,
// drag arbitration, and the terminal shell. Teardown happens in reverse
// order when the shell exits.
func Run(cfg Config) error {
	label := transport.WindowLabel(cfg.WindowLabel)

	// Cross-window bus; degrades to no-op when Redis is absent.
	bus := transport.Connect(cfg.RedisAddr, transport.Namespace(cfg.Root))
	defer bus.Close()

	// Window-local bus for host shell events (pointer, drag, drop).
	local := transport.NewMemory()
	defer local.Close()

	files := store.NewFileStore(cfg.Root)
	layout := store.NewLayoutStore()

	tree := workspace.NewTree(nil)
	tree.Refresh(cfg.Root)
	if watcher, err := workspace.WatchRoot(cfg.Root, tree); err != nil {
		logging.Error(err)
	} else {
		defer watcher.Close()
	}

	opener := &workspace.Opener{Files: files, Layout: layout}
	reloader := &workspace.Reloader{Files: files}

	engine, err := syncer.Start(syncer.Options{
		Bus:            bus,
		Origin:         label,
		Files:          files,
		Layout:         layout,
		Reloader:       reloader,
		Tree:           tree,
		HandshakeDelay: cfg.HandshakeDelay,
	})
	if err != nil {
		return err
	}
	defer engine.Stop()

	cell := dragdrop.NewCursorCell()
	regions := dragdrop.NewRegionIndex()
	arbiter, err := dragdrop.StartArbiter(local, cell, regions, cfg.DragPoll)
	if err != nil {
		return err
	}
	defer arbiter.Stop()

	notices := ui.NewNotifier()
	router, err := dragdrop.AttachRouter(local, arbiter, opener, notices)
	if err != nil {
		return err
	}
	defer router.Detach()

	model := ui.NewModel(ui.Options{
		Label:   label,
		Root:    cfg.Root,
		Files:   files,
		Layout:  layout,
		Tree:    tree,
		Opener:  opener,
		Local:   local,
		Regions: regions,
		Notices: notices,
		Verbose: cfg.Verbose,
	})
	defer model.Teardown()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
