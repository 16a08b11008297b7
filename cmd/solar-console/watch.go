package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/b/solar-console/pkg/logging"
)

const reloadDebounce = 100 * time.Millisecond

type sender interface {
	Send(msg tea.Msg)
}

// watchFiles sends reloadMsg when any of files changes. The parent
// directories are watched so editors that save by rename are seen too.
// Bursts of events collapse into one reload.
func watchFiles(p sender, files ...string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	log := logging.NewLogger("watch")

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	added := 0
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.WithError(err).WithField("dir", dir).Debug("cannot watch")
			continue
		}
		added++
	}
	if added == 0 {
		watcher.Close()
		return nil, fmt.Errorf("no watchable directory for %v", files)
	}

	go func() {
		var debounce <-chan time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !targets[filepath.Clean(event.Name)] {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				debounce = time.After(reloadDebounce)
			case <-debounce:
				debounce = nil
				p.Send(reloadMsg{})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("watch error")
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

// forwardSignals turns each signal into a reload until done is closed.
func forwardSignals(p sender, sigs <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-sigs:
			p.Send(reloadMsg{})
		case <-done:
			return
		}
	}
}
