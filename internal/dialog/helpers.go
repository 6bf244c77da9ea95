package dialog

import (
	"context"
	"strconv"
	"strings"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/texts"
)

// Preference code tables. Labels are stored in canonical English so the
// matching rules compare them against job work types regardless of the
// user's display language.
var workTypeLabels = map[string]string{
	"1": "Harvesting",
	"2": "Planting",
	"3": "Irrigation",
	"4": "Livestock care",
	"5": "General labor",
	"6": "All types of work",
}

var distanceMiles = map[string]int{
	"1": 10,
	"2": 25,
	"3": 50,
	"4": 999,
}

var hoursLabels = map[string]string{
	"1": "Full-time",
	"2": "Part-time",
	"3": "Flexible",
}

// parseWorkTypeCodes maps a comma-separated code selection to its labels.
// Unrecognized codes are dropped; ok is false when nothing valid remains.
func parseWorkTypeCodes(input string) (string, bool) {
	var labels []string
	for _, token := range strings.Split(input, ",") {
		if label, ok := workTypeLabels[strings.TrimSpace(token)]; ok {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return "", false
	}
	return strings.Join(labels, ", "), true
}

// mergeProfile persists the patch and mirrors it on the in-memory user so
// later steps of the same turn see the updated profile.
func (b *Bot) mergeProfile(ctx context.Context, req *request, patch farm.ProfilePatch) error {
	if err := b.store.MergeProfile(ctx, req.user.ID, patch); err != nil {
		return err
	}
	req.user.Profile.Apply(patch)
	return nil
}

func (b *Bot) jobLine(req *request, index int, job *farm.Job) string {
	return b.render(req, "job_line", texts.Params{
		"index":     strconv.Itoa(index),
		"work_type": job.WorkType,
		"farm_name": orDefault(job.FarmName, job.OwnerName),
		"pay":       job.PayLabel(),
		"location":  orDefault(job.Location, "Not specified"),
		"hours":     orDefault(job.WorkHours, "Not specified"),
		"workers":   strconv.Itoa(job.WorkersNeeded),
	})
}

func (b *Bot) jobCard(req *request, job *farm.Job) string {
	return b.render(req, "job_card", texts.Params{
		"farm_name":      orDefault(job.FarmName, job.OwnerName),
		"work_type":      job.WorkType,
		"workers":        strconv.Itoa(job.WorkersNeeded),
		"hours":          orDefault(job.WorkHours, "Not specified"),
		"pay":            job.PayLabel(),
		"location":       orDefault(job.Location, "Not specified"),
		"transportation": orDefault(job.Transportation, "Not specified"),
		"meeting_point":  orDefault(job.MeetingPoint, "Not specified"),
		"description":    orDefault(job.Description, "None"),
	})
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// isMenuCommand reports whether the message is the mid-flow escape hatch
// honored by the recommendation review states.
func isMenuCommand(text string) bool {
	switch strings.ToLower(text) {
	case "menu", "menú", "inicio":
		return true
	}
	return false
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// currentOr renders a profile value for the update prompts.
func currentOr(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not set"
	}
	return value
}
