// Package journal implements the change-tracking source on fsnotify. Events
// are buffered between scans; a scan replays everything since the caller's
// cursor and terminates with a verdict.
package journal

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeJournal = (*Journal)(nil)

// skipDirectories are directories never watched.
var skipDirectories = map[string]bool{
	".git":              true,
	".jj":               true,
	"node_modules":      true,
	domain.ForgeDirName: true,
}

// eventBufferLimit bounds the events held between two scans. Past the limit
// the buffer is no longer a complete enumeration, so the next scan reports an
// unreliable verdict instead of a partial one.
const eventBufferLimit = 4096

// Journal buffers filesystem change events between scans.
type Journal struct {
	fsWatcher *fsnotify.Watcher

	mu         sync.Mutex
	buffer     []ports.ChangeEvent
	overflowed bool
	cursor     uint64
	fileIDSeq  uint64
	started    bool
}

// New creates a journal. Start must be called before Scan.
func New() (*Journal, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "creating filesystem watcher")
	}
	return &Journal{fsWatcher: watcher}, nil
}

// Start begins watching root recursively and buffering events until ctx ends.
func (j *Journal) Start(ctx context.Context, root string) error {
	for dir := range walkDirs(root) {
		if err := j.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "watching directory"), "dir", dir)
		}
	}

	j.mu.Lock()
	j.started = true
	j.mu.Unlock()

	go j.collect(ctx)
	return nil
}

// Stop releases the underlying watcher.
func (j *Journal) Stop() error {
	return j.fsWatcher.Close()
}

// Scan replays every buffered event since cursor into observe and advances
// the cursor. A cursor mismatch or a buffer overflow yields a failed verdict:
// the enumeration cannot be trusted, so the caller falls back to checking
// every input. The buffer is drained either way.
func (j *Journal) Scan(_ context.Context, cursor string, observe func(ports.ChangeEvent)) (ports.ScanResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.started {
		return ports.ScanResult{}, domain.ErrJournalNotStarted
	}

	reliable := !j.overflowed && cursor == formatCursor(j.cursor)
	if reliable {
		for _, ev := range j.buffer {
			observe(ev)
		}
	}

	j.buffer = nil
	j.overflowed = false
	j.cursor++

	return ports.ScanResult{
		Succeeded: reliable,
		Cursor:    formatCursor(j.cursor),
	}, nil
}

// Cursor returns the journal's current checkpoint.
func (j *Journal) Cursor() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return formatCursor(j.cursor)
}

func formatCursor(c uint64) string {
	return strconv.FormatUint(c, 10)
}

func (j *Journal) collect(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-j.fsWatcher.Events:
			if !ok {
				return
			}
			j.record(event)
		case _, ok := <-j.fsWatcher.Errors:
			if !ok {
				return
			}
			// A watcher error means events may have been lost.
			j.mu.Lock()
			j.overflowed = true
			j.mu.Unlock()
		}
	}
}

// record maps one fsnotify event onto journal events. Creates and removes
// change the parent directory's membership as well as the path itself;
// renames are membership changes plus an identity event for the
// rename-tracking consumer.
func (j *Journal) record(event fsnotify.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	switch {
	case event.Op&fsnotify.Write != 0:
		j.append(ports.ChangeEvent{Kind: ports.ChangePath, Path: event.Name})
	case event.Op&fsnotify.Create != 0:
		j.append(ports.ChangeEvent{Kind: ports.ChangePath, Path: event.Name})
		j.append(ports.ChangeEvent{Kind: ports.ChangeMembership, Path: filepath.Dir(event.Name)})
	case event.Op&fsnotify.Remove != 0:
		j.append(ports.ChangeEvent{Kind: ports.ChangePath, Path: event.Name})
		j.append(ports.ChangeEvent{Kind: ports.ChangeMembership, Path: filepath.Dir(event.Name)})
	case event.Op&fsnotify.Rename != 0:
		j.append(ports.ChangeEvent{Kind: ports.ChangeMembership, Path: filepath.Dir(event.Name)})
		j.fileIDSeq++
		j.append(ports.ChangeEvent{Kind: ports.ChangeIdentity, FileID: j.fileIDSeq})
	}

	// New directories join the watch set.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirectories[info.Name()] {
			for dir := range walkDirs(event.Name) {
				_ = j.fsWatcher.Add(dir)
			}
		}
	}
}

func (j *Journal) append(ev ports.ChangeEvent) {
	if j.overflowed {
		return
	}
	if len(j.buffer) >= eventBufferLimit {
		j.overflowed = true
		j.buffer = nil
		return
	}
	j.buffer = append(j.buffer, ev)
}

// walkDirs yields every watchable directory under root.
func walkDirs(root string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Skip unreadable directories, keep walking
			}
			if !d.IsDir() {
				return nil
			}
			if skipDirectories[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
