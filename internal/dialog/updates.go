package dialog

import (
	"context"
	"strconv"
	"strings"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/texts"
)

func (b *Bot) handleUpdateMenu(ctx context.Context, req *request) (*outcome, error) {
	profile := req.user.Profile
	switch req.text {
	case "1":
		return &outcome{
			reply: b.render(req, "update_work_type", texts.Params{"current": currentOr(profile.WorkTypes)}),
			next:  farm.StateWorkerUpdateWorkType,
		}, nil
	case "2":
		return &outcome{
			reply: b.render(req, "update_location", texts.Params{"current": currentOr(profile.Location)}),
			next:  farm.StateWorkerActualLocation,
		}, nil
	case "3":
		return &outcome{
			reply: b.render(req, "update_pay_rate", texts.Params{"current": formatRate(profile.MinPayRate)}),
			next:  farm.StateWorkerUpdatePayRate,
		}, nil
	case "4":
		return &outcome{
			reply: b.render(req, "update_distance", texts.Params{"current": strconv.Itoa(profile.MaxDistance)}),
			next:  farm.StateWorkerUpdateDistance,
		}, nil
	case "5":
		return &outcome{
			reply: b.render(req, "update_hours", texts.Params{"current": currentOr(profile.HoursPreference)}),
			next:  farm.StateWorkerUpdateHours,
		}, nil
	case "6":
		return b.showMainMenu(req), nil
	default:
		return &outcome{reply: b.render(req, "update_menu_retry", nil)}, nil
	}
}

// handleWorkTypeUpdate stores the free-text work types verbatim. Unlike
// initial registration there is no code table here.
func (b *Bot) handleWorkTypeUpdate(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "update_work_type", texts.Params{"current": currentOr(req.user.Profile.WorkTypes)})}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{WorkTypes: farm.String(req.text)}); err != nil {
		return nil, err
	}
	return b.updatedOutcome(req, "updated_work_type", req.text), nil
}

func (b *Bot) handleLocationUpdate(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "update_location", texts.Params{"current": currentOr(req.user.Profile.Location)})}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{Location: farm.String(req.text)}); err != nil {
		return nil, err
	}
	return b.updatedOutcome(req, "updated_location", req.text), nil
}

func (b *Bot) handlePayRateUpdate(ctx context.Context, req *request) (*outcome, error) {
	rate, err := strconv.ParseFloat(strings.TrimPrefix(req.text, "$"), 64)
	if err != nil || rate < 0 {
		return &outcome{reply: b.render(req, "invalid_pay_rate", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{MinPayRate: farm.Float(rate)}); err != nil {
		return nil, err
	}
	return b.updatedOutcome(req, "updated_pay_rate", formatRate(rate)), nil
}

func (b *Bot) handleDistanceUpdate(ctx context.Context, req *request) (*outcome, error) {
	miles, err := strconv.Atoi(req.text)
	if err != nil || miles < 0 {
		return &outcome{reply: b.render(req, "invalid_distance", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{MaxDistance: farm.Int(miles)}); err != nil {
		return nil, err
	}
	return b.updatedOutcome(req, "updated_distance", strconv.Itoa(miles)), nil
}

func (b *Bot) handleHoursUpdate(ctx context.Context, req *request) (*outcome, error) {
	label, ok := hoursLabels[req.text]
	if !ok {
		return &outcome{reply: b.render(req, "hours_update_retry", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{HoursPreference: farm.String(label)}); err != nil {
		return nil, err
	}
	return b.updatedOutcome(req, "updated_hours", label), nil
}

// updatedOutcome confirms the write, clears state and lands back on the
// worker menu.
func (b *Bot) updatedOutcome(req *request, key, value string) *outcome {
	confirmation := b.render(req, key, texts.Params{"value": value})
	return &outcome{
		reply: confirmation + "\n\n" + b.render(req, "worker_menu", nil),
		clear: true,
	}
}
