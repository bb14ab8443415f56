package fetcher

import (
	"context"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/dtnitsch/textpack-archiver/models"
)

const (
	assetConcurrency = 4
	assetTimeout     = 30 * time.Second
)

type assetJob struct {
	url  string
	path string
}

// FetchAssets downloads every unique URL in the asset map with at most
// four requests in flight; as one completes the next queued URL is
// dispatched. Each request carries its own 30-second timeout. A timeout,
// non-2xx status, or transport error produces a failed record with an
// empty payload; no single asset's failure propagates. The result holds
// exactly one record per unique URL, and an empty map returns immediately.
func (f *Fetcher) FetchAssets(ctx context.Context, assets models.AssetMap) []models.AssetRecord {
	if len(assets) == 0 {
		return []models.AssetRecord{}
	}

	urls := make([]string, 0, len(assets))
	for url := range assets {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	jobs := make(chan assetJob, len(urls))
	results := make(chan models.AssetRecord, len(urls))

	var wg sync.WaitGroup
	workers := assetConcurrency
	if len(urls) < workers {
		workers = len(urls)
	}
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for job := range jobs {
				results <- f.fetchAsset(ctx, id, job)
			}
		}(w)
	}

	for _, url := range urls {
		jobs <- assetJob{url: url, path: assets[url]}
	}
	close(jobs)

	wg.Wait()
	close(results)

	records := make([]models.AssetRecord, 0, len(urls))
	for record := range results {
		records = append(records, record)
	}
	return records
}

func (f *Fetcher) fetchAsset(ctx context.Context, workerID int, job assetJob) models.AssetRecord {
	failed := models.AssetRecord{OriginalURL: job.url, LocalPath: job.path, Failed: true}

	reqCtx, cancel := context.WithTimeout(ctx, assetTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, job.url, nil)
	if err != nil {
		f.logger.Warn("Failed to build asset request", "worker_id", workerID, "url", job.url, "error", err)
		return failed
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("Failed to download asset", "worker_id", workerID, "url", job.url, "error", err)
		return failed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("Failed to download asset", "worker_id", workerID, "url", job.url, "status", resp.StatusCode)
		return failed
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Warn("Failed to read asset body", "worker_id", workerID, "url", job.url, "error", err)
		return failed
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return models.AssetRecord{
		OriginalURL: job.url,
		LocalPath:   job.path,
		Data:        data,
		MimeType:    mimeType,
	}
}
