package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ContentChangedHandler is called when a watched export file changes.
type ContentChangedHandler func(pageID string, content []byte)

// Bridge watches exported markdown files on disk. When an external editor
// saves the file, the watcher fires and hands the new content to the
// handler, which re-imports it into the open editing session through the
// external-update path (so in-progress local edits are not clobbered by
// the session's own writes).
type Bridge struct {
	watcher  *fsnotify.Watcher
	onChange ContentChangedHandler
	log      zerolog.Logger
	mu       sync.RWMutex
	watching map[string]string // filePath -> pageID
	dirRefs  map[string]int    // directory -> watched files in it
}

// New creates a vault bridge.
func New(onChange ContentChangedHandler, log zerolog.Logger) (*Bridge, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	b := &Bridge{
		watcher:  watcher,
		onChange: onChange,
		log:      log,
		watching: make(map[string]string),
		dirRefs:  make(map[string]int),
	}

	go b.watchLoop()

	return b, nil
}

// WatchFile starts watching an exported file for a page.
func (b *Bridge) WatchFile(pageID, filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	b.mu.Lock()
	_, already := b.watching[absPath]
	b.watching[absPath] = pageID
	firstInDir := false
	if !already {
		b.dirRefs[dir]++
		firstInDir = b.dirRefs[dir] == 1
	}
	b.mu.Unlock()

	// fsnotify watches dirs for file events; one watch per directory
	if firstInDir {
		if err := b.watcher.Add(dir); err != nil {
			b.mu.Lock()
			delete(b.watching, absPath)
			if b.dirRefs[dir]--; b.dirRefs[dir] <= 0 {
				delete(b.dirRefs, dir)
			}
			b.mu.Unlock()
			return err
		}
	}
	return nil
}

// StopWatching stops watching a page's export. The directory watch is
// dropped when no other watched file lives in it.
func (b *Bridge) StopWatching(pageID string) {
	var unwatchDir string

	b.mu.Lock()
	for path, id := range b.watching {
		if id == pageID {
			delete(b.watching, path)
			dir := filepath.Dir(path)
			if b.dirRefs[dir]--; b.dirRefs[dir] <= 0 {
				delete(b.dirRefs, dir)
				unwatchDir = dir
			}
			break
		}
	}
	b.mu.Unlock()

	if unwatchDir != "" {
		if err := b.watcher.Remove(unwatchDir); err != nil {
			b.log.Debug().Err(err).Str("dir", unwatchDir).Msg("vault bridge: remove watch")
		}
	}
}

// Close stops the watcher.
func (b *Bridge) Close() error {
	return b.watcher.Close()
}

func (b *Bridge) watchLoop() {
	for {
		select {
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) {
				absPath, _ := filepath.Abs(event.Name)
				b.mu.RLock()
				pageID, watched := b.watching[absPath]
				b.mu.RUnlock()

				if watched {
					content, err := os.ReadFile(absPath)
					if err != nil {
						b.log.Error().Err(err).Str("path", absPath).Msg("vault bridge: read file")
						continue
					}
					if b.onChange != nil {
						b.onChange(pageID, content)
					}
				}
			}
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.log.Error().Err(err).Msg("vault bridge: watcher error")
		}
	}
}
