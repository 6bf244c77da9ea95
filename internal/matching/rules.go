// Package matching ranks open jobs against a worker's stated preferences.
// The deterministic rule-based strategy is the default; smarter strategies
// plug in behind the same interface and fall back to the rules on failure.
package matching

import (
	"context"
	"sort"
	"strings"

	"github.com/agromatch/agromatch/internal/farm"
)

// maxResults caps how many jobs a match run returns.
const maxResults = 5

// allWorkTypes is the preference sentinel that matches every job.
const allWorkTypes = "all types of work"

// Strategy produces a ranked list of jobs for the given preferences.
type Strategy interface {
	Match(ctx context.Context, jobs []*farm.Job, prefs farm.Profile) ([]*farm.Job, error)
}

// Rules is the deterministic default: filter by work-type tokens, rank by
// hourly-equivalent pay, keep the top five.
type Rules struct{}

// NewRules returns the rule-based strategy.
func NewRules() *Rules { return &Rules{} }

func (r *Rules) Match(_ context.Context, jobs []*farm.Job, prefs farm.Profile) ([]*farm.Job, error) {
	prefTypes := strings.ToLower(prefs.WorkTypes)

	var matched []*farm.Job
	for _, job := range jobs {
		if workTypeMatches(prefTypes, strings.ToLower(job.WorkType)) {
			matched = append(matched, job)
		}
	}

	// Stable keeps the relative input order for equal pay.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].HourlyPay() > matched[j].HourlyPay()
	})

	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}
	return matched, nil
}

// workTypeMatches reports whether a job's work type qualifies under the
// comma-separated preference list. An empty preference or the "all types"
// sentinel matches everything; otherwise any single token that is a
// substring of the job type (or vice versa) qualifies.
func workTypeMatches(prefTypes, jobType string) bool {
	if prefTypes == "" || strings.Contains(prefTypes, allWorkTypes) {
		return true
	}

	for _, token := range strings.Split(prefTypes, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if strings.Contains(jobType, token) || strings.Contains(token, jobType) {
			return true
		}
	}
	return false
}
