package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/textpack-archiver/internal/common"
	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/db"
	"github.com/dtnitsch/textpack-archiver/pkg/fetcher"
	"github.com/dtnitsch/textpack-archiver/pkg/manifest"
	"github.com/dtnitsch/textpack-archiver/pkg/storage"
	"github.com/dtnitsch/textpack-archiver/pkg/textstats"
)

// FinalOutput is the machine-readable run report written to stdout.
type FinalOutput struct {
	TotalURLs   int    `json:"total_urls"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	SummaryPath string `json:"summary_path,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
}

func ArchiveAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config, err := buildConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	sanitized, invalid := common.SanitizeAndValidateURLs(config.URLs)
	for _, bad := range invalid {
		fmt.Fprintf(os.Stderr, "Skipping invalid URL: %s\n", bad)
	}
	if len(sanitized) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no valid URLs to archive")
		os.Exit(1)
	}
	config.URLs = sanitized

	database, err := openDatabase(c)
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		os.Exit(2)
	}
	defer database.Close()
	logger.Debug("history database ready", "path", database.Path())

	s := &storage.Storage{}
	pipeline := &Pipeline{
		Fetcher:   fetcher.New(logger),
		Storage:   s,
		Settings:  config.Conversion,
		OutputDir: config.OutputDir,
		Logger:    logger,
	}

	results, aggregate, runErr := run(context.Background(), logger, config, pipeline)

	for _, result := range results {
		if err := recordResult(database, result); err != nil {
			logger.Warn("failed to record archive history", "url", result.URL, "error", err)
		}
	}

	archiveResults := make([]manifest.ArchiveResult, 0, len(results))
	for _, result := range results {
		archiveResults = append(archiveResults, manifest.ArchiveResult{
			URL:          result.URL,
			FilePath:     result.FilePath,
			Title:        result.Title,
			WordCount:    result.WordCount,
			AssetsTotal:  result.AssetsTotal,
			AssetsFailed: result.AssetsFailed,
			SizeBytes:    result.SizeBytes,
			WordCounts:   result.WordCounts,
			Error:        result.Error,
			ErrorType:    result.ErrorType,
		})
	}

	summaryPath, err := manifest.GenerateSummary(archiveResults, aggregate, config.OutputDir, s)
	if err != nil {
		logger.Warn("failed to write run summary", "error", err)
	}

	output := FinalOutput{
		TotalURLs:   len(results),
		SummaryPath: summaryPath,
		DurationMS:  time.Since(startTime).Milliseconds(),
	}
	for _, result := range results {
		if result.Error != nil {
			output.Failed++
		} else {
			output.Successful++
		}
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err == nil {
		fmt.Println(string(encoded))
	}

	if runErr != nil {
		return cli.Exit("one or more archives failed", 1)
	}
	return nil
}

// buildConfig merges the optional config file with CLI flags; flags win.
func buildConfig(c *cli.Context) (*models.ArchiveConfig, error) {
	var config *models.ArchiveConfig
	var err error

	if c.IsSet("config") {
		config, err = models.LoadConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
	} else {
		config = &models.ArchiveConfig{
			WorkerCount: 4,
			OutputDir:   "archives",
			Conversion:  models.DefaultConversionSettings(),
		}
	}

	if c.IsSet("urls") || len(config.URLs) == 0 {
		config.URLs = c.StringSlice("urls")
	}
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("output-dir") {
		config.OutputDir = c.String("output-dir")
	}
	if c.IsSet("figure-style") {
		config.Conversion.FigureStyle = c.String("figure-style")
	}
	if c.IsSet("table-style") {
		config.Conversion.TableStyle = c.String("table-style")
	}

	if config.WorkerCount < 1 {
		config.WorkerCount = 1
	}
	if err := config.Conversion.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if c.IsSet("db-path") {
		return db.OpenAt(c.String("db-path"))
	}
	return db.Open()
}

func recordResult(database *db.DB, result Result) error {
	rec := db.ArchiveRecord{
		URL:          result.URL,
		Filename:     result.FilePath,
		Title:        result.Title,
		WordCount:    result.WordCount,
		AssetsTotal:  result.AssetsTotal,
		AssetsFailed: result.AssetsFailed,
		Status:       "success",
	}
	if result.Error != nil {
		rec.Status = "error"
		rec.ErrorType = result.ErrorType
		rec.ErrorMessage = result.Error.Error()
		rec.Filename = ""
	}
	if result.WordCounts != nil {
		rec.TopKeywords = textstats.TopKeywords(result.WordCounts, 10)
	}

	_, err := database.RecordArchive(rec)
	return err
}
