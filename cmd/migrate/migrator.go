package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

const createVersionTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    BIGINT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// migration is one numbered up/down pair, e.g. 000002_boards.
type migration struct {
	Version int64
	Name    string
	Up      string
	Down    string
}

type migrator struct {
	db     *sql.DB
	files  fs.FS
	logger *slog.Logger
}

// Versions parses the embedded files into migrations ordered by version.
func (m *migrator) Versions() ([]migration, error) {
	names, err := fs.Glob(m.files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	byVersion := make(map[int64]*migration)
	for _, name := range names {
		version, label, direction, err := parseMigrationName(name)
		if err != nil {
			return nil, err
		}
		mig, ok := byVersion[version]
		if !ok {
			mig = &migration{Version: version, Name: label}
			byVersion[version] = mig
		}
		switch direction {
		case "up":
			mig.Up = name
		case "down":
			mig.Down = name
		}
	}

	out := make([]migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Up == "" || mig.Down == "" {
			return nil, fmt.Errorf("migration %06d is missing its up or down file", mig.Version)
		}
		out = append(out, *mig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// parseMigrationName splits "000002_boards.up.sql" into (2, "boards", "up").
func parseMigrationName(name string) (int64, string, string, error) {
	base := strings.TrimSuffix(name, ".sql")
	dot := strings.LastIndex(base, ".")
	if dot < 0 {
		return 0, "", "", fmt.Errorf("migration %q: missing direction", name)
	}
	direction := base[dot+1:]
	if direction != "up" && direction != "down" {
		return 0, "", "", fmt.Errorf("migration %q: unknown direction %q", name, direction)
	}

	versionPart, label, ok := strings.Cut(base[:dot], "_")
	if !ok {
		return 0, "", "", fmt.Errorf("migration %q: missing name", name)
	}
	version, err := strconv.ParseInt(versionPart, 10, 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("migration %q: bad version: %w", name, err)
	}
	return version, label, direction, nil
}

// Applied returns the versions recorded in schema_migrations.
func (m *migrator) Applied(ctx context.Context) (map[int64]bool, error) {
	if _, err := m.db.ExecContext(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// Up applies every pending migration in order, each in its own transaction.
func (m *migrator) Up(ctx context.Context) error {
	all, err := m.Versions()
	if err != nil {
		return err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}

	count := 0
	for _, mig := range all {
		if applied[mig.Version] {
			continue
		}
		if err := m.apply(ctx, mig.Up, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
			return err
		}
		m.logger.Info("migration applied", "version", mig.Version, "name", mig.Name)
		count++
	}

	m.logger.Info("migrations up to date", "applied", count)
	return nil
}

// Down rolls back the latest steps applied migrations.
func (m *migrator) Down(ctx context.Context, steps int) error {
	all, err := m.Versions()
	if err != nil {
		return err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}

	for i := len(all) - 1; i >= 0 && steps > 0; i-- {
		mig := all[i]
		if !applied[mig.Version] {
			continue
		}
		if err := m.apply(ctx, mig.Down, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
			return err
		}
		m.logger.Info("migration rolled back", "version", mig.Version, "name", mig.Name)
		steps--
	}
	return nil
}

func (m *migrator) apply(ctx context.Context, file, bookkeeping string, version int64) error {
	body, err := fs.ReadFile(m.files, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", file, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("execute %s: %w", file, err)
	}
	if _, err := tx.ExecContext(ctx, bookkeeping, version); err != nil {
		return fmt.Errorf("record %s: %w", file, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", file, err)
	}
	return nil
}
