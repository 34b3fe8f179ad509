package source

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// WatchFile emits a signal whenever the given file is appended to. Events are
// debounced so a burst of writes produces a single signal. The watch runs
// until ctx is cancelled; the returned channel is closed on exit.
//
// The parent directory is watched rather than the file itself, so the watch
// survives atomic replace-style writes.
func WatchFile(ctx context.Context, path string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(changes)

		// The debounce timer fires into its own channel and the loop
		// forwards the signal, so this goroutine is the only sender on
		// changes and a late-firing timer cannot hit the closed channel.
		fired := make(chan struct{}, 1)
		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case <-fired:
				select {
				case changes <- struct{}{}:
				default:
				}

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(watchDebounce, func() {
					select {
					case fired <- struct{}{}:
					default:
					}
				})

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}
