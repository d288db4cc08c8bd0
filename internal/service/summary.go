package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/memore/memore/internal/metrics"
)

const (
	// NothingToSummarize is returned as the summary of a board without
	// any non-blank memo. The external API is not called in that case.
	NothingToSummarize = "요약할 메모가 없습니다."
	// SummaryFailed is returned as the summary when the external call fails.
	SummaryFailed = "요약에 실패했습니다."
)

var (
	errSummarizerDisabled = errors.New("summarizer is not configured")
	errEmptySummary       = errors.New("summarizer returned an empty summary")
)

// SummaryOutcome is the result of summarizing a board. A failed external
// call is reported here rather than as an error.
type SummaryOutcome struct {
	Summary string
	// Skipped is set when there was nothing to send.
	Skipped bool
	// FailureReason is non-empty when summarization failed.
	FailureReason string
}

// Failed reports whether the external summarizer failed.
func (o *SummaryOutcome) Failed() bool {
	return o.FailureReason != ""
}

// SummaryService summarizes the memos of a board and stores the result.
type SummaryService struct {
	boards     BoardStore
	memos      MemoStore
	summarizer Summarizer
	timeout    time.Duration
	metrics    metrics.Recorder
	logger     *slog.Logger
}

// NewSummaryService creates a new SummaryService. A nil summarizer makes
// every non-empty request fail without a network call.
func NewSummaryService(boards BoardStore, memos MemoStore, summarizer Summarizer, timeout time.Duration, recorder metrics.Recorder, logger *slog.Logger) *SummaryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryService{
		boards:     boards,
		memos:      memos,
		summarizer: summarizer,
		timeout:    timeout,
		metrics:    recorder,
		logger:     logger,
	}
}

// SummarizeBoard collects the non-blank memos the owner wrote on the board,
// sends them to the summarizer and persists the trimmed result.
//
// Only ownership and persistence problems are returned as errors.
func (s *SummaryService) SummarizeBoard(ctx context.Context, userID, boardID string) (*SummaryOutcome, error) {
	board, err := s.boards.GetBoard(ctx, userID, boardID)
	if err != nil {
		if errors.Is(translateStoreError(err), ErrBoardNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	contents, err := s.memos.ListMemoContents(ctx, board.ID, board.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect memos: %w", err)
	}

	text := joinNonBlank(contents)
	if text == "" {
		s.metrics.IncSummary(metrics.SummarySkipped)
		return &SummaryOutcome{Summary: NothingToSummarize, Skipped: true}, nil
	}

	start := time.Now()
	summary, err := s.summarize(ctx, text)
	s.metrics.ObserveSummaryDuration(time.Since(start))
	if err != nil {
		s.metrics.IncSummary(metrics.SummaryFailed)
		s.logger.Warn("summary_failed",
			slog.String("board_id", board.ID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return &SummaryOutcome{Summary: SummaryFailed, FailureReason: err.Error()}, nil
	}

	if err := s.boards.UpdateBoardSummary(ctx, board.ID, summary); err != nil {
		return nil, fmt.Errorf("failed to store summary: %w", err)
	}

	s.metrics.IncSummary(metrics.SummarySuccess)
	s.logger.Info("summary_stored",
		slog.String("board_id", board.ID),
		slog.Int("memos", len(contents)),
	)

	return &SummaryOutcome{Summary: summary}, nil
}

func (s *SummaryService) summarize(ctx context.Context, text string) (string, error) {
	if s.summarizer == nil {
		return "", errSummarizerDisabled
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", errEmptySummary
	}
	return summary, nil
}

// joinNonBlank joins memo contents with newlines, dropping blank entries.
func joinNonBlank(contents []string) string {
	kept := make([]string, 0, len(contents))
	for _, c := range contents {
		if !isBlank(c) {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, "\n")
}
