package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/textpack-archiver/internal/archive"
	"github.com/dtnitsch/textpack-archiver/internal/history"
)

func main() {
	app := &cli.App{
		Name:  "textpack-archiver",
		Usage: "archive web articles as portable markdown bundles",
		Commands: []*cli.Command{
			{
				Name:   "archive",
				Usage:  "fetch URLs and package each article as a .textpack bundle",
				Action: archive.ArchiveAction,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "urls",
						Aliases: []string{"u"},
						Usage:   "URLs to archive (repeatable)",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "path to a YAML config file",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "number of concurrent archive workers",
						Value:   4,
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "directory archive bundles are written to",
						Value:   "archives",
					},
					&cli.StringFlag{
						Name:  "figure-style",
						Usage: "figure rendering: markdown or html",
					},
					&cli.StringFlag{
						Name:  "table-style",
						Usage: "table rendering: markdown or html",
					},
					&cli.StringFlag{
						Name:  "db-path",
						Usage: "path to the history database (defaults to next to the binary)",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "only log errors",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "show past archive attempts",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "show every attempt for one URL",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "number of recent attempts to show",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "db-path",
						Usage: "path to the history database (defaults to next to the binary)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
