// Package testutil holds shared helpers for database-backed and unit tests.
package testutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/migrations"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 424242

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// MigrationFiles returns the embedded migration names with the given suffix
// ("up.sql" or "down.sql") in application order. Down files come back reversed.
func MigrationFiles(suffix string) ([]string, error) {
	entries, err := fs.Glob(migrations.FS, "*."+suffix)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(entries)
	if strings.HasPrefix(suffix, "down") {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	return entries, nil
}

// ApplyMigration executes one embedded migration file.
func ApplyMigration(ctx context.Context, pool *pgxpool.Pool, name string) error {
	sql, err := migrations.FS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	return nil
}

// ResetSchema drops every table and re-applies all up migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	downs, err := MigrationFiles("down.sql")
	if err != nil {
		return err
	}
	for _, name := range downs {
		if err := ApplyMigration(ctx, pool, name); err != nil {
			return err
		}
	}

	ups, err := MigrationFiles("up.sql")
	if err != nil {
		return err
	}
	for _, name := range ups {
		if err := ApplyMigration(ctx, pool, name); err != nil {
			return err
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// UniqueSuffix returns a short string that is unique within a test run.
func UniqueSuffix() string {
	return strings.ToLower(ulid.Make().String()[18:])
}

// NewTestUser creates a user with unique username, email and nickname.
// The password hash is a placeholder and will not verify.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	suffix := UniqueSuffix()
	return &model.User{
		ID:           ulid.Make().String(),
		Username:     "user" + suffix,
		Email:        "user" + suffix + "@example.com",
		Nickname:     "nick" + suffix,
		PasswordHash: "$argon2id$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewTestBoard creates a board owned by userID.
func NewTestBoard(t testing.TB, userID string) *model.Board {
	t.Helper()
	return &model.Board{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Title:     "board " + UniqueSuffix(),
		Category:  model.DefaultBoardCategory,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewTestMemo creates a memo on board written by userID.
func NewTestMemo(t testing.TB, boardID, userID, content string) *model.Memo {
	t.Helper()
	return &model.Memo{
		ID:        ulid.Make().String(),
		BoardID:   boardID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}
