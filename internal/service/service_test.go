package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/memore/memore/internal/auth"
	"github.com/memore/memore/internal/metrics"
	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/testutil"
	"github.com/memore/memore/internal/testutil/memstore"
)

// cheapHasher keeps argon2 fast in unit tests.
var cheapHasher = auth.NewHasher(auth.Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 16, SaltLen: 8})

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	store    *memstore.Store
	metrics  *metrics.InMemoryRecorder
	sessions *recordingSessions
	accounts *AccountService
	boards   *BoardService
	memos    *MemoService
	tokens   *auth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	rec := metrics.NewInMemory()
	sessions := &recordingSessions{}
	tokens := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)

	return &testEnv{
		store:    store,
		metrics:  rec,
		sessions: sessions,
		tokens:   tokens,
		accounts: NewAccountService(AccountConfig{
			Users:                store,
			Hasher:               cheapHasher,
			Tokens:               tokens,
			Sessions:             sessions,
			Metrics:              rec,
			Logger:               quietLogger(),
			AllowUnverifiedReset: true,
		}),
		boards: NewBoardService(store, rec, quietLogger()),
		memos:  NewMemoService(store, store, rec, quietLogger()),
	}
}

// seedUser stores a user directly, bypassing signup.
func (e *testEnv) seedUser(t *testing.T) *model.User {
	t.Helper()
	u := testutil.NewTestUser(t)
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return u
}

type recordingSessions struct {
	deleted []string
}

func (r *recordingSessions) DeleteAuthContext(_ context.Context, userID string) error {
	r.deleted = append(r.deleted, userID)
	return nil
}

// mockSummarizer is a testify mock of the Summarizer port.
type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
