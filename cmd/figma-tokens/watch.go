package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	figmatokens "github.com/kataras/figma-tokens"
	"github.com/kataras/figma-tokens/pkg/tokens"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// tokenWatcher calls back when the token file changes. The directory is
// watched rather than the file so that editors replacing the file on save
// are seen too.
type tokenWatcher struct {
	watcher  *fsnotify.Watcher
	file     string
	debounce time.Duration
	logger   figmatokens.Logger
}

func newTokenWatcher(dir string, debounce time.Duration, logger figmatokens.Logger) (*tokenWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &tokenWatcher{
		watcher:  w,
		file:     tokens.FileName,
		debounce: debounce,
		logger:   logger,
	}, nil
}

func (tw *tokenWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != tw.file {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// run blocks until ctx is done, calling onChange once per burst of changes.
func (tw *tokenWatcher) run(ctx context.Context, onChange func()) error {
	defer tw.watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-tw.watcher.Events:
			if !ok {
				return nil
			}
			if !tw.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(tw.debounce)
			} else {
				timer.Reset(tw.debounce)
			}
			fire = timer.C
		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return nil
			}
			if tw.logger != nil {
				tw.logger.Warnf("watch error: %v", err)
			}
		case <-fire:
			fire = nil
			onChange()
		}
	}
}
