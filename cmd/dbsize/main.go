package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/johndauphine/dbsize/internal/analyzer"
	"github.com/johndauphine/dbsize/internal/config"
	"github.com/johndauphine/dbsize/internal/logging"
	"github.com/johndauphine/dbsize/internal/source"
	"github.com/johndauphine/dbsize/internal/util"
	"github.com/johndauphine/dbsize/internal/version"
)

func main() {
	app := &cli.App{
		Name:    version.Name,
		Usage:   version.Description,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (optional, built-in defaults otherwise)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "text",
				Usage: "Log format: text or json",
			},
			&cli.StringFlag{
				Name:  "verbosity",
				Value: "info",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Analyze per-table storage consumption",
				Action: runAnalyze,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path to the SQLite database file (overrides config)",
					},
					&cli.StringFlag{
						Name:  "tables",
						Usage: "Comma-separated list of tables to analyze (default: all)",
					},
					&cli.BoolFlag{
						Name:  "no-progress",
						Usage: "Disable the progress bar",
					},
				},
			},
			{
				Name:   "tables",
				Usage:  "List user tables with exact row counts",
				Action: runTables,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path to the SQLite database file (overrides config)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(c *cli.Context) error {
	level, err := logging.ParseLevel(c.String("verbosity"))
	if err != nil {
		return err
	}
	logging.SetLevel(level)
	logging.SetFormat(c.String("log-format"))
	return nil
}

// dbPath resolves the database path: the --db flag wins over the config.
func dbPath(c *cli.Context, cfg *config.Config) string {
	if path := c.String("db"); path != "" {
		return path
	}
	return cfg.Database
}

func runAnalyze(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := source.Open(dbPath(c, cfg))
	if err != nil {
		return err
	}
	defer pool.Close()

	a := analyzer.New(pool, cfg)
	a.ShowProgress = !c.Bool("no-progress")
	return a.Run(c.Context, util.SplitCSV(c.String("tables")))
}

func runTables(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := source.Open(dbPath(c, cfg))
	if err != nil {
		return err
	}
	defer pool.Close()

	tables, err := pool.ListTables(c.Context)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	if len(tables) == 0 {
		fmt.Println("No user tables found.")
		return nil
	}

	for _, table := range tables {
		count, err := pool.RowCount(c.Context, table)
		if err != nil {
			logging.Error("counting rows of %s: %v", table, err)
			continue
		}
		fmt.Printf("%-30s %s\n", table, humanize.Comma(count))
	}
	return nil
}
