package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"ccview/internal/config"
	"ccview/internal/model"
	"ccview/internal/source"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Sessions     []model.SessionStats
	TotalFiles   int
	ParsedFiles  int
	FileErrors   int
	ProjectCount int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses all session files from the data directory.
// Each file is an independent parse with no shared state, so files run
// through a bounded worker pool.
func Load(dataDir string, includeSubagents bool, rates config.PriceResolver, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	if len(files) == 0 {
		return &LoadResult{}, nil
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

	result := &LoadResult{
		TotalFiles:   len(toProcess),
		ProjectCount: source.CountProjects(files),
	}

	if len(toProcess) == 0 {
		return result, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(toProcess) {
		numWorkers = len(toProcess)
	}

	work := make(chan int, len(toProcess))
	results := make([]ParseResult, len(toProcess))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range toProcess {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				pr := ParseSession(toProcess[idx], rates)
				pr.Messages = nil // only stats are retained for the dashboard
				results[idx] = pr
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(toProcess))
				}
			}
		}()
	}

	wg.Wait()

	for _, pr := range results {
		if pr.Err != nil {
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		if pr.Stats.MessageCount > 0 {
			result.Sessions = append(result.Sessions, pr.Stats)
		}
	}

	return result, nil
}
