package archive

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/assetpath"
	"github.com/dtnitsch/textpack-archiver/pkg/bundle"
	"github.com/dtnitsch/textpack-archiver/pkg/converter"
	"github.com/dtnitsch/textpack-archiver/pkg/extractor"
	"github.com/dtnitsch/textpack-archiver/pkg/fetcher"
	"github.com/dtnitsch/textpack-archiver/pkg/frontmatter"
	"github.com/dtnitsch/textpack-archiver/pkg/metadata"
	"github.com/dtnitsch/textpack-archiver/pkg/pageimages"
	"github.com/dtnitsch/textpack-archiver/pkg/patcher"
	"github.com/dtnitsch/textpack-archiver/pkg/storage"
	"github.com/dtnitsch/textpack-archiver/pkg/textstats"
)

const slugFallback = "untitled"

// Pipeline runs the full archive sequence for one URL: fetch, extract,
// convert, collect and download assets, reconcile failures, and package
// the bundle.
type Pipeline struct {
	Fetcher   *fetcher.Fetcher
	Storage   *storage.Storage
	Settings  models.ConversionSettings
	OutputDir string
	Logger    *slog.Logger
}

// Result describes one archive attempt, success or failure.
type Result struct {
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

// ArchiveURL processes a single URL end to end. Failures are returned
// in the Result with an ErrorType matching the stage that failed; no
// partial bundle is ever written.
func (p *Pipeline) ArchiveURL(ctx context.Context, rawURL string) Result {
	result := Result{URL: rawURL}
	started := time.Now()

	doc, err := p.Fetcher.GetHTML(ctx, rawURL)
	if err != nil {
		p.Logger.Error("failed to fetch page", "url", rawURL, "error", err)
		result.Error = err
		result.ErrorType = "fetch_error"
		return result
	}
	article, err := extractor.Extract(doc, rawURL, p.Logger)
	if err != nil {
		p.Logger.Error("failed to extract article", "url", rawURL, "error", err)
		result.Error = err
		result.ErrorType = "extract_error"
		return result
	}

	meta := metadata.Extract(doc, rawURL, article.TextContent, p.Logger)
	meta.Excerpt = article.Excerpt
	if meta.Title == "" {
		meta.Title = article.Title
	}
	if len(meta.Authors) == 0 && article.Byline != "" {
		meta.Authors = []string{article.Byline}
	}
	result.Title = meta.Title

	alloc := assetpath.New()
	markdown, assets, err := converter.Convert(article.Content, p.Settings, alloc)
	if err != nil {
		p.Logger.Error("failed to convert article", "url", rawURL, "error", err)
		result.Error = err
		result.ErrorType = "convert_error"
		return result
	}

	images := pageimages.Collect(doc, rawURL)
	markdown, assets = pageimages.Append(markdown, assets, images)

	records := p.Fetcher.FetchAssets(ctx, assets)
	for _, rec := range records {
		if rec.Failed {
			result.AssetsFailed++
		}
	}
	result.AssetsTotal = len(records)
	markdown = patcher.RevertFailedAssets(markdown, records)

	result.WordCount = textstats.WordCount(article.TextContent)
	result.WordCounts = textstats.WordFrequency(article.TextContent)

	block := frontmatter.Build(meta, article.TextContent, time.Now())

	data, err := bundle.Package(block, markdown, rawURL, records)
	if err != nil {
		p.Logger.Error("failed to package bundle", "url", rawURL, "error", err)
		result.Error = err
		result.ErrorType = "package_error"
		return result
	}

	filename := bundle.Filename(meta.Title, meta.Date, rawURL, slugFallback)
	outPath := filepath.Join(p.OutputDir, filename)
	if err := p.Storage.SaveFile(outPath, data); err != nil {
		p.Logger.Error("failed to save bundle", "url", rawURL, "path", outPath, "error", err)
		result.Error = err
		result.ErrorType = "save_error"
		return result
	}

	result.FilePath = outPath
	result.SizeBytes = int64(len(data))
	p.Logger.Info("archived page",
		"url", rawURL,
		"path", outPath,
		"word_count", result.WordCount,
		"assets_total", result.AssetsTotal,
		"assets_failed", result.AssetsFailed,
		"duration_ms", time.Since(started).Milliseconds())

	return result
}
