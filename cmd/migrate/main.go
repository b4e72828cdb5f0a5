// Command migrate applies, rolls back, and reports itinerary store migrations.
//
//	migrate --driver sqlite --dsn ./itinerary.db up
//	migrate --driver postgres --dsn "$DATABASE_URL" status
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary-planner/internal/repo"
	"github.com/pkordes/itinerary-planner/migrations"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree writing human output to out.
func newRootCmd(out io.Writer) *cobra.Command {
	var driver, dsn string

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage itinerary store schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&driver, "driver", "d", envOr("STORE_DRIVER", "postgres"), "Store driver: postgres or sqlite")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres URL or SQLite file (defaults to DATABASE_URL / SQLITE_PATH)")

	// withProvider opens the database named by the flags, runs fn, and closes it.
	withProvider := func(cmd *cobra.Command, fn func(context.Context, *goose.Provider) error) error {
		db, dialect, err := openDB(driver, dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		provider, err := migrations.NewProvider(dialect, db)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), provider)
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
				results, err := p.Up(ctx)
				if err != nil {
					return fmt.Errorf("up: %w", err)
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(out, "no pending migrations")
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(out, "applied %s (%s)\n", r.Source.Path, r.Duration)
				}
				return nil
			})
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
				r, err := p.Down(ctx)
				if err != nil {
					return fmt.Errorf("down: %w", err)
				}
				_, _ = fmt.Fprintf(out, "rolled back %s\n", r.Source.Path)
				return nil
			})
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Roll back every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
				results, err := p.DownTo(ctx, 0)
				if err != nil {
					return fmt.Errorf("reset: %w", err)
				}
				_, _ = fmt.Fprintf(out, "rolled back %d migration(s)\n", len(results))
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether each is applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd, func(ctx context.Context, p *goose.Provider) error {
				statuses, err := p.Status(ctx)
				if err != nil {
					return fmt.Errorf("status: %w", err)
				}
				for _, s := range statuses {
					_, _ = fmt.Fprintf(out, "%-8s %s\n", s.State, s.Source.Path)
				}
				return nil
			})
		},
	}

	rootCmd.AddCommand(upCmd, downCmd, resetCmd, statusCmd)
	return rootCmd
}

// openDB opens the database for driver. An empty dsn falls back to the
// same environment variables the API server reads.
func openDB(driver, dsn string) (*sql.DB, goose.Dialect, error) {
	switch driver {
	case "postgres":
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return nil, "", fmt.Errorf("--dsn or DATABASE_URL required for postgres")
		}
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres: %w", err)
		}
		return db, goose.DialectPostgres, nil
	case "sqlite":
		if dsn == "" {
			dsn = envOr("SQLITE_PATH", "itinerary.db")
		}
		db, err := repo.OpenSQLite(dsn)
		if err != nil {
			return nil, "", err
		}
		return db, goose.DialectSQLite3, nil
	default:
		return nil, "", fmt.Errorf("unsupported driver %q (want postgres or sqlite)", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
