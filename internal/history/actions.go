// Package history exposes past archive runs recorded in the local database.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/textpack-archiver/pkg/db"
)

func HistoryAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	database, err := openDatabase(c)
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	var records []db.ArchiveRecord
	if c.IsSet("url") {
		records, err = database.FindByURL(c.String("url"))
	} else {
		records, err = database.ListRecent(c.Int("limit"))
	}
	if err != nil {
		logger.Error("failed to read archive history", "error", err)
		os.Exit(2)
	}

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	fmt.Println(string(encoded))

	return nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if c.IsSet("db-path") {
		return db.OpenAt(c.String("db-path"))
	}
	return db.Open()
}
