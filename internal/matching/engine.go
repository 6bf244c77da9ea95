package matching

import (
	"context"

	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/farm"
)

// Engine wraps an optional pluggable strategy around the rule-based
// default. Matching never surfaces an error to the caller: a failing or
// missing strategy silently falls back to the rules.
type Engine struct {
	strategy Strategy
	rules    *Rules
	logger   *zap.Logger
}

// NewEngine builds an engine. strategy may be nil, in which case only the
// rules run.
func NewEngine(strategy Strategy, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		strategy: strategy,
		rules:    NewRules(),
		logger:   logger,
	}
}

// Match returns the ranked top jobs for the preferences. An empty input
// yields an empty result, not an error.
func (e *Engine) Match(ctx context.Context, jobs []*farm.Job, prefs farm.Profile) []*farm.Job {
	if len(jobs) == 0 {
		return nil
	}

	if e.strategy != nil {
		ranked, err := e.strategy.Match(ctx, jobs, prefs)
		if err == nil && ranked != nil {
			e.logger.Debug("strategy matching succeeded",
				zap.Int("candidates", len(jobs)),
				zap.Int("ranked", len(ranked)),
			)
			return ranked
		}
		if err != nil {
			e.logger.Warn("strategy matching failed, falling back to rules", zap.Error(err))
		} else {
			e.logger.Debug("strategy returned no result, falling back to rules")
		}
	}

	ranked, _ := e.rules.Match(ctx, jobs, prefs)
	return ranked
}
