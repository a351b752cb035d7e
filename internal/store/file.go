package store

import (
	"sync"

	"github.com/korhaliv/winsync/internal/logging/events"
)

// OpenFile is one open editor tab. Content never crosses the window
// boundary; snapshots zero it before transmission.
type OpenFile struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Name     string `json:"name"`
	IsDirty  bool   `json:"isDirty"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// FileView is a point-in-time copy of the file store's state.
type FileView struct {
	OpenedFiles  []OpenFile
	ActiveFileID string
	RootPath     string
}

// FileSubscriber observes each mutation as a (previous, next) pair.
type FileSubscriber func(prev, next FileView)

// FileStore holds the window's open files. It is the window's own mutable
// state; remote windows only ever see snapshots of it.
type FileStore struct {
	mu      sync.Mutex
	view    FileView
	subs    []fileSub
	nextSub int
}

type fileSub struct {
	id int
	fn FileSubscriber
}

func NewFileStore(rootPath string) *FileStore {
	return &FileStore{view: FileView{RootPath: rootPath}}
}

// Subscribe registers a mutation observer and returns its teardown.
func (s *FileStore) Subscribe(fn FileSubscriber) func() {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, fileSub{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// View returns a defensive copy of the current state.
func (s *FileStore) View() FileView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneFileView(s.view)
}

// mutate runs fn under the lock and notifies subscribers afterwards with
// copies, so no handler ever runs while the lock is held.
func (s *FileStore) mutate(fn func(*FileView)) {
	s.mu.Lock()
	prev := cloneFileView(s.view)
	fn(&s.view)
	next := cloneFileView(s.view)
	subs := append([]fileSub(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(prev, next)
	}
}

// Open adds a file record (or refocuses an existing tab with the same path)
// and makes it the active file.
func (s *FileStore) Open(file OpenFile) {
	s.mutate(func(v *FileView) {
		for i, existing := range v.OpenedFiles {
			if existing.Path == file.Path && file.Path != "" {
				v.ActiveFileID = v.OpenedFiles[i].ID
				return
			}
		}
		v.OpenedFiles = append(v.OpenedFiles, file)
		v.ActiveFileID = file.ID
	})
	events.Window.FileOpened(file.ID, file.Path, file.Language)
}

// Close removes a tab. The active file falls back to the last remaining tab.
func (s *FileStore) Close(id string) {
	s.mutate(func(v *FileView) {
		for i, f := range v.OpenedFiles {
			if f.ID == id {
				v.OpenedFiles = append(v.OpenedFiles[:i:i], v.OpenedFiles[i+1:]...)
				break
			}
		}
		if v.ActiveFileID == id {
			v.ActiveFileID = ""
			if n := len(v.OpenedFiles); n > 0 {
				v.ActiveFileID = v.OpenedFiles[n-1].ID
			}
		}
	})
	events.Window.FileClosed(id)
}

func (s *FileStore) SetActive(id string) {
	s.mutate(func(v *FileView) {
		for _, f := range v.OpenedFiles {
			if f.ID == id {
				v.ActiveFileID = id
				return
			}
		}
	})
}

// SetContent records an edit and marks the tab dirty.
func (s *FileStore) SetContent(id, content string) {
	s.mutate(func(v *FileView) {
		for i := range v.OpenedFiles {
			if v.OpenedFiles[i].ID == id {
				v.OpenedFiles[i].Content = content
				v.OpenedFiles[i].IsDirty = true
				return
			}
		}
	})
}

// SetSavedContent installs content that matches disk (initial load, reload
// after a sync merge, save completion) and clears the dirty mark.
func (s *FileStore) SetSavedContent(id, content string) {
	s.mutate(func(v *FileView) {
		for i := range v.OpenedFiles {
			if v.OpenedFiles[i].ID == id {
				v.OpenedFiles[i].Content = content
				v.OpenedFiles[i].IsDirty = false
				return
			}
		}
	})
}

func (s *FileStore) SetRootPath(root string) {
	s.mutate(func(v *FileView) {
		v.RootPath = root
	})
}

// ApplySnapshot overwrites the replicated fields with a remote snapshot.
// Entries arrive with empty content; where a local tab for the same file
// already holds content, that content survives the merge, so an echo of our
// own broadcast cannot wipe live edits. Entries still empty afterwards are
// the ones the receiver reloads from disk. Re-applying the same snapshot is
// a no-op by plain overwrite.
func (s *FileStore) ApplySnapshot(files []OpenFile, activeFileID, rootPath string) {
	s.mutate(func(v *FileView) {
		merged := make([]OpenFile, len(files))
		for i, f := range files {
			if f.Content == "" {
				for _, local := range v.OpenedFiles {
					if local.ID == f.ID && local.Content != "" {
						f.Content = local.Content
						f.IsDirty = local.IsDirty
						break
					}
				}
			}
			merged[i] = f
		}
		v.OpenedFiles = merged
		v.ActiveFileID = activeFileID
		if rootPath != "" {
			v.RootPath = rootPath
		}
	})
}

func cloneFileView(v FileView) FileView {
	dup := v
	dup.OpenedFiles = append([]OpenFile(nil), v.OpenedFiles...)
	return dup
}
