// Command migrate applies the embedded SQL migrations to DATABASE_URL.
//
//	migrate            apply every pending up migration
//	migrate -down 1    roll back the latest migration
//	migrate -status    list applied versions
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	_ "github.com/lib/pq"

	"github.com/memore/memore/migrations"
)

type config struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
}

func main() {
	down := flag.Int("down", 0, "number of migrations to roll back")
	status := flag.Bool("status", false, "print applied versions and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	m := &migrator{db: db, files: migrations.FS, logger: logger}

	switch {
	case *status:
		err = m.printStatus(ctx, os.Stdout)
	case *down > 0:
		err = m.Down(ctx, *down)
	default:
		err = m.Up(ctx)
	}
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func (m *migrator) printStatus(ctx context.Context, w io.Writer) error {
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	all, err := m.Versions()
	if err != nil {
		return err
	}
	for _, v := range all {
		state := "pending"
		if applied[v.Version] {
			state = "applied"
		}
		fmt.Fprintf(w, "%06d %-20s %s\n", v.Version, v.Name, state)
	}
	return nil
}
