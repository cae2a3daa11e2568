package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "jobsearch",
		Usage: "Job search API, Telegram bot and saved-search notifier",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the HTTP search API",
				Action: serveCommand,
			},
			{
				Name:   "bot",
				Usage:  "Run the Telegram bot and the saved-search notifier",
				Action: botCommand,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations",
				Action: migrateCommand,
			},
			{
				Name:      "search",
				Usage:     "Run one search and print the page as JSON",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "page",
						Usage: "1-based page number",
					},
					&cli.StringFlag{
						Name:  "limit",
						Usage: "Page size",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort field, prefix with - for descending",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Upsert jobs from a JSON file into PostgreSQL",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of jobs",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
