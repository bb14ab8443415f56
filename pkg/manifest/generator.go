package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dtnitsch/textpack-archiver/pkg/storage"
	"github.com/dtnitsch/textpack-archiver/pkg/textstats"
)

const topKeywordCount = 25

// ArchiveResult carries what the pipeline learned about one URL, enough
// to build its manifest entry without re-reading the bundle.
type ArchiveResult struct {
	URL          string
	FilePath     string
	Title        string
	WordCount    int
	AssetsTotal  int
	AssetsFailed int
	SizeBytes    int64
	WordCounts   map[string]int
	Error        error
	ErrorType    string
}

// GenerateSummary writes the run summary next to the archives and
// returns its path. Per-URL and aggregate keywords come from the word
// frequency maps collected during conversion.
func GenerateSummary(results []ArchiveResult, aggregateKeywords map[string]int, outputDir string, s *storage.Storage) (string, error) {
	summary := SummaryManifest{
		GeneratedAt:       time.Now().Format(time.RFC3339),
		TotalURLs:         len(results),
		AggregateKeywords: textstats.TopKeywords(aggregateKeywords, topKeywordCount),
	}

	for _, result := range results {
		entry := URLSummary{
			URL: result.URL,
		}

		if result.Error != nil {
			summary.Failed++
			entry.Status = "error"
			entry.ErrorType = result.ErrorType
			entry.ErrorMessage = result.Error.Error()
		} else {
			summary.Successful++
			entry.Status = "success"
			entry.FilePath = result.FilePath
			entry.WordCount = result.WordCount
			entry.AssetsTotal = result.AssetsTotal
			entry.AssetsFailed = result.AssetsFailed

			entry.SizeBytes = result.SizeBytes
			if entry.SizeBytes == 0 && result.FilePath != "" {
				if stats, err := s.GetFileStats(result.FilePath); err == nil {
					entry.SizeBytes = stats.SizeBytes
				}
			}

			if result.WordCounts != nil {
				entry.TopKeywords = textstats.TopKeywords(result.WordCounts, topKeywordCount)
			}
		}

		summary.Results = append(summary.Results, entry)
	}

	summaryPath := filepath.Join(outputDir, fmt.Sprintf("summary-%s.json", time.Now().Format("2006-01-02")))
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling summary: %w", err)
	}

	if err := s.SaveFile(summaryPath, data); err != nil {
		return "", fmt.Errorf("error saving summary: %w", err)
	}

	return summaryPath, nil
}
