package dialog

import (
	"context"

	"github.com/agromatch/agromatch/internal/farm"
)

// handleWorkTypePref accepts a comma-separated set of work-type codes.
// Valid codes are kept, unknown ones silently dropped; an empty result
// re-prompts.
func (b *Bot) handleWorkTypePref(ctx context.Context, req *request) (*outcome, error) {
	labels, ok := parseWorkTypeCodes(req.text)
	if !ok {
		return &outcome{reply: b.render(req, "work_type_retry", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{WorkTypes: farm.String(labels)}); err != nil {
		return nil, err
	}
	return &outcome{
		reply: b.render(req, "worker_pref_distance", nil),
		next:  farm.StateWorkerPrefLocation,
	}, nil
}

func (b *Bot) handleDistancePref(ctx context.Context, req *request) (*outcome, error) {
	miles, ok := distanceMiles[req.text]
	if !ok {
		return &outcome{reply: b.render(req, "distance_retry", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{MaxDistance: farm.Int(miles)}); err != nil {
		return nil, err
	}
	return &outcome{
		reply: b.render(req, "worker_pref_hours", nil),
		next:  farm.StateWorkerPrefHours,
	}, nil
}

// handleHoursPref is the last preference step: it stores the schedule,
// then immediately runs matching and presents the results.
func (b *Bot) handleHoursPref(ctx context.Context, req *request) (*outcome, error) {
	label, ok := hoursLabels[req.text]
	if !ok {
		return &outcome{reply: b.render(req, "hours_retry", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{HoursPreference: farm.String(label)}); err != nil {
		return nil, err
	}

	out, err := b.showRecommendations(ctx, req)
	if err != nil {
		return nil, err
	}
	out.reply = b.render(req, "profile_complete", nil) + "\n\n" + out.reply
	return out, nil
}
