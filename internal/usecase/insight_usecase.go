package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gosplit/internal/domain"
)

// InsightConfig configures InsightUseCase.
type InsightConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

// InsightUseCase produces written summaries of a group's expenses.
type InsightUseCase struct {
	summarizer Summarizer
	cache      Cache
	cfg        InsightConfig
	recorder   Recorder
}

// NewInsightUseCase creates a new InsightUseCase. summarizer and cache may
// be nil: without a summarizer the use case is disabled, without a cache
// every request reaches the summarizer.
func NewInsightUseCase(summarizer Summarizer, cache Cache, cfg InsightConfig, recorder Recorder) *InsightUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSummaryTimeout
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &InsightUseCase{
		summarizer: summarizer,
		cache:      cache,
		cfg:        cfg,
		recorder:   recorder,
	}
}

// Summary is a generated description of a group's expenses.
type Summary struct {
	Group  string
	Text   string
	Cached bool
}

// expenseSnapshot is the JSON shape of one expense in the prompt.
type expenseSnapshot struct {
	Description  string   `json:"description"`
	Amount       string   `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
}

// Enabled reports whether a summarizer is configured.
func (uc *InsightUseCase) Enabled() bool {
	return uc.summarizer != nil
}

// GenerateSummary summarizes the expense log of a group.
func (uc *InsightUseCase) GenerateSummary(ctx context.Context, store GroupStore, group string) (*Summary, error) {
	if !uc.Enabled() {
		return nil, fmt.Errorf("%w: summarizer", domain.ErrServiceDisabled)
	}

	g, err := store.Get(ctx, domain.NormalizeName(group))
	if err != nil {
		return nil, err
	}

	if len(g.Expenses) == 0 {
		return nil, domain.ErrNothingToSummarize
	}

	snapshot, err := ExpenseSnapshot(g.Expenses)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	key := summaryCacheKey(snapshot)

	if uc.cache != nil {
		text, err := uc.cache.Get(ctx, key)
		switch {
		case err == nil:
			uc.recorder.SummaryGenerated(true)
			return &Summary{Group: g.Name, Text: text, Cached: true}, nil
		case !errors.Is(err, ErrCacheMiss):
			logger.Warn().Err(err).Msg("summary cache read failed")
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	text, err := uc.summarizer.Summarize(callCtx, summaryPrompt+string(snapshot))
	if err != nil {
		uc.recorder.ExternalCallFailed("summarizer")
		logger.Error().Err(err).Str("group", g.Name).Msg("summary generation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	if uc.cache != nil && uc.cfg.CacheTTL > 0 {
		if err := uc.cache.Set(ctx, key, text, uc.cfg.CacheTTL); err != nil {
			logger.Warn().Err(err).Msg("summary cache write failed")
		}
	}

	uc.recorder.SummaryGenerated(false)
	logger.Info().Str("group", g.Name).Int("expenses", len(g.Expenses)).Msg("summary generated")

	return &Summary{Group: g.Name, Text: text}, nil
}

// ExpenseSnapshot serializes expenses as the JSON list sent to the
// summarizer.
func ExpenseSnapshot(expenses []domain.Expense) ([]byte, error) {
	rows := make([]expenseSnapshot, len(expenses))
	for i, e := range expenses {
		rows[i] = expenseSnapshot{
			Description:  e.Description(),
			Amount:       e.Amount().StringFixed(domain.AmountScale),
			Payer:        e.Payer(),
			Participants: e.Participants(),
		}
	}

	return json.Marshal(rows)
}

func summaryCacheKey(snapshot []byte) string {
	sum := sha256.Sum256(snapshot)
	return summaryCachePrefix + hex.EncodeToString(sum[:])
}
