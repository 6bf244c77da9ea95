package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/logger"
	"github.com/agromatch/agromatch/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultRetryDelay   = 2 * time.Second
	maxRanked           = 5
)

// Strategy ranks jobs for a worker by asking Gemini to order the
// candidates. It satisfies the matching engine's Strategy interface; every
// error surfaces so the engine can fall back to the rules.
type Strategy struct {
	generator  contentGenerator
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
	maxLogLen  int
}

func NewStrategy(generator contentGenerator, log *zap.Logger, maxRetries int) *Strategy {
	if log == nil {
		log = zap.NewNop()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Strategy{
		generator:  generator,
		logger:     log,
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
		maxLogLen:  defaultMaxLogLength,
	}
}

// Match asks the model to rank the candidate jobs against the worker's
// preferences and returns them in the model's order.
func (s *Strategy) Match(ctx context.Context, jobs []*farm.Job, prefs farm.Profile) ([]*farm.Job, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	prompt, err := buildPrompt(jobs, prefs)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini rank request",
		zap.Int("candidates", len(jobs)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generateWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini rank response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	ids, err := parseRanking(raw)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*farm.Job, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}

	var ranked []*farm.Job
	for _, id := range ids {
		if job, ok := byID[id]; ok {
			ranked = append(ranked, job)
			delete(byID, id)
		}
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("gemini ranking referenced no known job ids")
	}
	if len(ranked) > maxRanked {
		ranked = ranked[:maxRanked]
	}
	return ranked, nil
}

func (s *Strategy) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, s.retryDelay); err != nil {
				return "", err
			}
		}

		raw, err := s.generator.GenerateContent(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func buildPrompt(jobs []*farm.Job, prefs farm.Profile) (string, error) {
	prefsPayload := map[string]any{
		"work_types":       prefs.WorkTypes,
		"location":         prefs.Location,
		"min_pay_rate":     prefs.MinPayRate,
		"max_distance":     prefs.MaxDistance,
		"hours_preference": prefs.HoursPreference,
	}
	prefsJSON, err := json.MarshalIndent(prefsPayload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal preferences payload: %w", err)
	}

	jobsPayload := make([]map[string]any, 0, len(jobs))
	for _, job := range jobs {
		jobsPayload = append(jobsPayload, map[string]any{
			"id":         job.ID,
			"work_type":  job.WorkType,
			"pay":        job.PayLabel(),
			"hourly_pay": job.HourlyPay(),
			"location":   job.Location,
			"work_hours": job.WorkHours,
		})
	}
	jobsJSON, err := json.MarshalIndent(jobsPayload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal jobs payload: %w", err)
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Preferences:\n{{PREFERENCES_JSON}}\n\nJobs:\n{{JOBS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{PREFERENCES_JSON}}", string(prefsJSON))
	prompt = strings.ReplaceAll(prompt, "{{JOBS_JSON}}", string(jobsJSON))
	return prompt, nil
}

// parseRanking extracts the ordered job id list from the model response.
func parseRanking(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var data struct {
		JobIDs []string `json:"job_ids"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	if len(data.JobIDs) == 0 {
		return nil, fmt.Errorf("gemini response contained no job ids")
	}
	return data.JobIDs, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
