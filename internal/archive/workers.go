package archive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dtnitsch/textpack-archiver/models"
)

type Job struct {
	URL string
}

// run fans the configured URLs out over a fixed pool of workers and
// collects every result plus the merged word frequency map.
func run(ctx context.Context, logger *slog.Logger, config *models.ArchiveConfig, pipeline *Pipeline) ([]Result, map[string]int, error) {
	logger.Info("starting archive run", "url_count", len(config.URLs), "workers", config.WorkerCount)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(config.URLs))
	results := make(chan Result, len(config.URLs))

	workerCount := config.WorkerCount
	if workerCount > len(config.URLs) {
		workerCount = len(config.URLs)
	}

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, pipeline, &wg, jobs, results)
	}

	for _, rawURL := range config.URLs {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("all archive workers finished")

	allResults := make([]Result, 0, len(config.URLs))
	aggregate := map[string]int{}
	var runErr error
	for result := range results {
		allResults = append(allResults, result)
		if result.Error != nil {
			runErr = fmt.Errorf("one or more archives failed")
		}
		for word, count := range result.WordCounts {
			aggregate[word] += count
		}
	}

	return allResults, aggregate, runErr
}

// worker drains the job channel. A panic while archiving one URL is
// converted into an error result so the rest of the batch still runs.
func worker(ctx context.Context, id int, logger *slog.Logger, pipeline *Pipeline, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()

	for job := range jobs {
		logger.Info("worker picked up url", "worker_id", id, "url", job.URL)
		results <- archiveWithRecovery(ctx, logger, pipeline, job.URL)
	}
}

func archiveWithRecovery(ctx context.Context, logger *slog.Logger, pipeline *Pipeline, rawURL string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while archiving", "url", rawURL, "panic", r)
			result = Result{
				URL:       rawURL,
				Error:     fmt.Errorf("internal error while archiving %s: %v", rawURL, r),
				ErrorType: "internal_error",
			}
		}
	}()

	return pipeline.ArchiveURL(ctx, rawURL)
}
