// Command migrate applies, rolls back and lists the scheduler schema
// migrations against the store selected by DB_DRIVER.
//
//	migrate up       apply every pending migration
//	migrate down     roll back the most recent migration
//	migrate status   list migrations and whether they are applied
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/urfave/cli/v3"

	"github.com/sakif/publication-scheduler/internal/config"
	"github.com/sakif/publication-scheduler/internal/repository/postgres"
	"github.com/sakif/publication-scheduler/internal/repository/sqlite"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the publication scheduler database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML, TOML or .env config file",
				Sources: cli.EnvVars("CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withProvider(ctx, cmd, func(p *goose.Provider) error {
						results, err := p.Up(ctx)
						if err != nil {
							return fmt.Errorf("applying migrations: %w", err)
						}
						if len(results) == 0 {
							fmt.Fprintln(out, "no pending migrations")
						}
						for _, r := range results {
							fmt.Fprintf(out, "applied %s (%s)\n", r.Source.Path, r.Duration.Round(time.Millisecond))
						}
						return nil
					})
				},
			},
			{
				Name:  "down",
				Usage: "Roll back the most recent migration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withProvider(ctx, cmd, func(p *goose.Provider) error {
						result, err := p.Down(ctx)
						if err != nil {
							return fmt.Errorf("rolling back: %w", err)
						}
						fmt.Fprintf(out, "rolled back %s (%s)\n", result.Source.Path, result.Duration.Round(time.Millisecond))
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "List migrations and their state",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withProvider(ctx, cmd, func(p *goose.Provider) error {
						statuses, err := p.Status(ctx)
						if err != nil {
							return fmt.Errorf("reading status: %w", err)
						}
						return writeStatus(out, statuses)
					})
				},
			},
		},
	}
}

// withProvider opens the configured database, builds a goose provider for
// the matching dialect and closes the connection when fn returns.
func withProvider(ctx context.Context, cmd *cli.Command, fn func(*goose.Provider) error) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	var (
		conn       *sql.DB
		newMigrate func(*sql.DB) (*goose.Provider, error)
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		conn, err = postgres.OpenRaw(cfg.DB.URL)
		newMigrate = postgres.NewMigrator
	default:
		conn, err = sqlite.OpenRaw(cfg.DB.Path)
		newMigrate = sqlite.NewMigrator
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.DB.Driver, err)
	}

	provider, err := newMigrate(conn)
	if err != nil {
		return err
	}
	return fn(provider)
}

func writeStatus(out io.Writer, statuses []*goose.MigrationStatus) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, st := range statuses {
		applied := "-"
		if !st.AppliedAt.IsZero() {
			applied = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", st.Source.Version, st.State, applied, st.Source.Path)
	}
	return tw.Flush()
}
