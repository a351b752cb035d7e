// Package workspace owns the window's contact with the disk: opening files
// into the store, reloading content after a sync merge, and keeping the
// project tree fresh.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/korhaliv/winsync/internal/logging/events"
	"github.com/korhaliv/winsync/internal/store"
)

var languageByExt = map[string]string{
	".go":   "go",
	".ts":   "typescript",
	".tsx":  "typescriptreact",
	".js":   "javascript",
	".jsx":  "javascriptreact",
	".rs":   "rust",
	".py":   "python",
	".rb":   "ruby",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".md":   "markdown",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".html": "html",
	".css":  "css",
	".sh":   "shell",
	".sql":  "sql",
}

// LanguageForPath infers the editor language from the file extension.
func LanguageForPath(path string) string {
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "plaintext"
}

// Opener creates editor tabs from absolute paths and assigns them to the
// active pane. It is the collaborator behind the drop router and the
// quick-open picker.
type Opener struct {
	Files  *store.FileStore
	Layout *store.LayoutStore
}

func (o *Opener) OpenPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("open %s: is a directory", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	id := "file-" + uuid.NewString()[:8]
	o.Files.Open(store.OpenFile{
		ID:       id,
		Path:     path,
		Name:     filepath.Base(path),
		Language: LanguageForPath(path),
		Content:  string(content),
	})

	// Opening an already-open path refocuses the existing tab; assign
	// whichever tab ended up active.
	view := o.Files.View()
	if pane := o.Layout.View().ActivePaneID; pane != "" && view.ActiveFileID != "" {
		o.Layout.AssignFile(pane, view.ActiveFileID)
	}
	return nil
}

// Reloader fetches content for files that arrived in a sync merge with an
// empty body. A failed reload leaves the tab content-less until the next
// trigger; that is the documented recovery path.
type Reloader struct {
	Files *store.FileStore
}

func (r *Reloader) Reload(fileID, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		events.Sync.ReloadError(fileID, err)
		return
	}
	r.Files.SetSavedContent(fileID, string(content))
}
