package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/dtnitsch/textpack-archiver/pkg/storage"
)

func TestGenerateSummary(t *testing.T) {
	dir := t.TempDir()
	s := &storage.Storage{}

	results := []ArchiveResult{
		{
			URL:          "https://example.com/good",
			FilePath:     "archives/2026-01-15-example-good.textpack",
			WordCount:    500,
			AssetsTotal:  4,
			AssetsFailed: 1,
			SizeBytes:    2048,
			WordCounts:   map[string]int{"archive": 10, "bundle": 5},
		},
		{
			URL:       "https://example.com/bad",
			Error:     errors.New("failed to fetch page"),
			ErrorType: "fetch_error",
		},
	}

	path, err := GenerateSummary(results, map[string]int{"archive": 12, "bundle": 5}, dir, s)
	if err != nil {
		t.Fatalf("GenerateSummary() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}

	var summary SummaryManifest
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("failed to parse summary: %v", err)
	}

	if summary.TotalURLs != 2 || summary.Successful != 1 || summary.Failed != 1 {
		t.Errorf("totals = %d/%d/%d, want 2/1/1", summary.TotalURLs, summary.Successful, summary.Failed)
	}
	if len(summary.AggregateKeywords) == 0 || summary.AggregateKeywords[0] != "archive:12" {
		t.Errorf("aggregate keywords = %v", summary.AggregateKeywords)
	}

	good := summary.Results[0]
	if good.Status != "success" || good.WordCount != 500 || good.AssetsFailed != 1 || good.SizeBytes != 2048 {
		t.Errorf("success entry = %+v", good)
	}
	if len(good.TopKeywords) == 0 || good.TopKeywords[0] != "archive:10" {
		t.Errorf("per-url keywords = %v", good.TopKeywords)
	}

	bad := summary.Results[1]
	if bad.Status != "error" || bad.ErrorType != "fetch_error" || bad.ErrorMessage == "" {
		t.Errorf("error entry = %+v", bad)
	}
	if bad.FilePath != "" {
		t.Errorf("error entry file path = %q, want empty", bad.FilePath)
	}
}

func TestGenerateSummaryFillsSizeFromDisk(t *testing.T) {
	dir := t.TempDir()
	s := &storage.Storage{}

	bundlePath := dir + "/bundle.textpack"
	if err := s.SaveFile(bundlePath, make([]byte, 77)); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	path, err := GenerateSummary([]ArchiveResult{{URL: "https://example.com", FilePath: bundlePath}}, nil, dir, s)
	if err != nil {
		t.Fatalf("GenerateSummary() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}
	var summary SummaryManifest
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("failed to parse summary: %v", err)
	}
	if summary.Results[0].SizeBytes != 77 {
		t.Errorf("size = %d, want 77 from disk", summary.Results[0].SizeBytes)
	}
}
