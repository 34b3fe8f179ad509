package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"ccview/internal/config"
	"ccview/internal/source"
	"ccview/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache discovers, diffs against cache, parses only changed files,
// and returns the combined result set.
func LoadWithCache(dataDir string, includeSubagents bool, rates config.PriceResolver, cache *store.Cache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	if len(files) == 0 {
		return &CachedLoadResult{}, nil
	}

	var toProcess []source.DiscoveredFile
	if includeSubagents {
		toProcess = files
	} else {
		for _, f := range files {
			if !f.IsSubagent {
				toProcess = append(toProcess, f)
			}
		}
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{
			TotalFiles:   len(toProcess),
			ProjectCount: source.CountProjects(files),
		},
	}

	if len(toProcess) == 0 {
		return result, nil
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	// Diff: partition into changed and unchanged
	var toReparse []source.DiscoveredFile
	var unchanged []string

	for _, f := range toProcess {
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			unchanged = append(unchanged, f.Path)
		} else {
			toReparse = append(toReparse, f)
		}
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	// Drop cache rows for files deleted since the last run. Best-effort:
	// a failed prune only leaves dead rows behind.
	existing := make(map[string]struct{}, len(files))
	for _, f := range files {
		existing[f.Path] = struct{}{}
	}
	_ = cache.Prune(existing)

	if len(unchanged) > 0 {
		cached, err := cache.LoadAllSessions()
		if err != nil {
			return nil, fmt.Errorf("loading cached sessions: %w", err)
		}

		unchangedSet := make(map[string]struct{}, len(unchanged))
		for _, p := range unchanged {
			unchangedSet[p] = struct{}{}
		}
		for _, s := range cached {
			if _, ok := unchangedSet[s.FilePath]; ok {
				result.Sessions = append(result.Sessions, s)
				result.ParsedFiles++
			}
		}
	}

	if len(toReparse) > 0 {
		numWorkers := runtime.GOMAXPROCS(0)
		if numWorkers < 1 {
			numWorkers = 4
		}
		if numWorkers > len(toReparse) {
			numWorkers = len(toReparse)
		}

		work := make(chan int, len(toReparse))
		results := make([]ParseResult, len(toReparse))
		var wg sync.WaitGroup
		var processed atomic.Int64

		for i := range toReparse {
			work <- i
		}
		close(work)

		wg.Add(numWorkers)
		for w := 0; w < numWorkers; w++ {
			go func() {
				defer wg.Done()
				for idx := range work {
					pr := ParseSession(toReparse[idx], rates)
					pr.Messages = nil
					results[idx] = pr
					n := processed.Add(1)
					if progressFn != nil {
						progressFn(int(n)+result.CacheHits, result.TotalFiles)
					}
				}
			}()
		}

		wg.Wait()

		for i, pr := range results {
			if pr.Err != nil {
				result.FileErrors++
				continue
			}
			result.ParsedFiles++

			if pr.Stats.MessageCount > 0 {
				result.Sessions = append(result.Sessions, pr.Stats)

				info, err := os.Stat(toReparse[i].Path)
				if err == nil {
					_ = cache.SaveSession(pr.Stats, info.ModTime().UnixNano(), info.Size())
				}
			}
		}
	}

	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "ccview")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "sessions.db")
}
