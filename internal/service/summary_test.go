package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/testutil"
)

func newSummaryService(env *testEnv, s Summarizer) *SummaryService {
	return NewSummaryService(env.store, env.store, s, time.Second, env.metrics, quietLogger())
}

// seedBoard creates a board with the given memo contents, bypassing the
// memo service so blank memos can be stored.
func seedBoard(t *testing.T, env *testEnv, owner *model.User, contents ...string) *model.Board {
	t.Helper()
	ctx := context.Background()
	board := testutil.NewTestBoard(t, owner.ID)
	require.NoError(t, env.store.CreateBoard(ctx, board))
	for i, c := range contents {
		memo := testutil.NewTestMemo(t, board.ID, owner.ID, c)
		memo.CreatedAt = memo.CreatedAt.Add(time.Duration(i) * time.Millisecond)
		require.NoError(t, env.store.CreateMemo(ctx, memo))
	}
	return board
}

func TestSummarizeBoard_NothingToSummarize(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	board := seedBoard(t, env, owner, "", "   ", "\n\t")

	summarizer := new(mockSummarizer)
	svc := newSummaryService(env, summarizer)

	out, err := svc.SummarizeBoard(context.Background(), owner.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, NothingToSummarize, out.Summary)
	assert.True(t, out.Skipped)
	assert.False(t, out.Failed())

	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	assert.Equal(t, uint64(1), env.metrics.Snapshot().SummariesSkipped)
}

func TestSummarizeBoard_PersistsResult(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	board := seedBoard(t, env, owner, "우유 사기", "  ", "빵 사기")

	summarizer := new(mockSummarizer)
	summarizer.On("Summarize", mock.Anything, "우유 사기\n빵 사기").Return("  장보기 목록  \n", nil).Once()
	svc := newSummaryService(env, summarizer)

	out, err := svc.SummarizeBoard(context.Background(), owner.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "장보기 목록", out.Summary)
	assert.False(t, out.Failed())

	stored, ok := env.store.Board(board.ID)
	require.True(t, ok)
	assert.Equal(t, "장보기 목록", stored.Summary)

	summarizer.AssertExpectations(t)
	assert.Equal(t, uint64(1), env.metrics.Snapshot().SummariesSucceeded)
}

func TestSummarizeBoard_FailureIsDegraded(t *testing.T) {
	tests := []struct {
		name       string
		summarizer Summarizer
		reason     string
	}{
		{"api error", func() Summarizer {
			m := new(mockSummarizer)
			m.On("Summarize", mock.Anything, mock.Anything).Return("", errors.New("upstream 503")).Once()
			return m
		}(), "upstream 503"},
		{"blank answer", func() Summarizer {
			m := new(mockSummarizer)
			m.On("Summarize", mock.Anything, mock.Anything).Return("   ", nil).Once()
			return m
		}(), errEmptySummary.Error()},
		{"not configured", nil, errSummarizerDisabled.Error()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			owner := env.seedUser(t)
			board := seedBoard(t, env, owner, "something")
			require.NoError(t, env.store.UpdateBoardSummary(context.Background(), board.ID, "previous"))

			out, err := newSummaryService(env, tt.summarizer).SummarizeBoard(context.Background(), owner.ID, board.ID)
			require.NoError(t, err)
			assert.True(t, out.Failed())
			assert.Equal(t, SummaryFailed, out.Summary)
			assert.Equal(t, tt.reason, out.FailureReason)

			stored, _ := env.store.Board(board.ID)
			assert.Equal(t, "previous", stored.Summary, "failed summaries must not overwrite the board")
			assert.Equal(t, uint64(1), env.metrics.Snapshot().SummariesFailed)
		})
	}
}

func TestSummarizeBoard_OnlyOwnerMemos(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	intruder := env.seedUser(t)
	board := seedBoard(t, env, owner, "mine")

	// A memo by another user on the same board is ignored.
	stray := testutil.NewTestMemo(t, board.ID, intruder.ID, "not mine")
	require.NoError(t, env.store.CreateMemo(context.Background(), stray))

	summarizer := new(mockSummarizer)
	summarizer.On("Summarize", mock.Anything, "mine").Return("ok", nil).Once()

	_, err := newSummaryService(env, summarizer).SummarizeBoard(context.Background(), owner.ID, board.ID)
	require.NoError(t, err)
	summarizer.AssertExpectations(t)
}

func TestSummarizeBoard_NotOwned(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	other := env.seedUser(t)
	board := seedBoard(t, env, owner, "x")

	summarizer := new(mockSummarizer)
	_, err := newSummaryService(env, summarizer).SummarizeBoard(context.Background(), other.ID, board.ID)
	assert.ErrorIs(t, err, ErrBoardNotFound)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestSummarizeBoard_AppliesTimeout(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	board := seedBoard(t, env, owner, "x")

	summarizer := new(mockSummarizer)
	summarizer.On("Summarize", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), "x").Return("ok", nil).Once()

	_, err := newSummaryService(env, summarizer).SummarizeBoard(context.Background(), owner.ID, board.ID)
	require.NoError(t, err)
	summarizer.AssertExpectations(t)
}
