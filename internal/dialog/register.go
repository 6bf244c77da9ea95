package dialog

import (
	"context"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/texts"
)

// handleRoleSelection resolves the very first choice. Anything but an
// exact "1" or "2" re-prompts without a transition.
func (b *Bot) handleRoleSelection(ctx context.Context, req *request) (*outcome, error) {
	switch req.text {
	case "1":
		if err := b.store.SetUserRole(ctx, req.user.ID, farm.RoleWorker); err != nil {
			return nil, err
		}
		req.user.Role = farm.RoleWorker
		return &outcome{
			reply: b.render(req, "worker_reg_start", nil),
			next:  farm.StateWorkerRegName,
		}, nil
	case "2":
		if err := b.store.SetUserRole(ctx, req.user.ID, farm.RoleOwner); err != nil {
			return nil, err
		}
		req.user.Role = farm.RoleOwner
		return &outcome{
			reply: b.render(req, "owner_reg_start", nil),
			next:  farm.StateOwnerRegName,
		}, nil
	default:
		return &outcome{reply: b.render(req, "role_retry", nil)}, nil
	}
}

func (b *Bot) handleWorkerName(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "worker_reg_start", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{Name: farm.String(req.text)}); err != nil {
		return nil, err
	}
	return &outcome{
		reply: b.render(req, "worker_reg_location", texts.Params{"name": req.text}),
		next:  farm.StateWorkerRegLocation,
	}, nil
}

func (b *Bot) handleWorkerLocation(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "worker_reg_location", texts.Params{"name": req.user.Profile.Name})}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{Location: farm.String(req.text)}); err != nil {
		return nil, err
	}
	return &outcome{
		reply: b.render(req, "worker_reg_id", nil),
		next:  farm.StateWorkerRegID,
	}, nil
}

// handleWorkerID requires an attachment; a bare text message re-prompts.
func (b *Bot) handleWorkerID(ctx context.Context, req *request) (*outcome, error) {
	if req.attachment == "" {
		return &outcome{reply: b.render(req, "worker_id_missing", nil)}, nil
	}
	patch := farm.ProfilePatch{
		IDVerified: farm.Bool(true),
		IDPhotoURL: farm.String(req.attachment),
	}
	if err := b.mergeProfile(ctx, req, patch); err != nil {
		return nil, err
	}
	if err := b.store.SetUserRegistered(ctx, req.user.ID, true); err != nil {
		return nil, err
	}
	req.user.Registered = true
	return &outcome{
		reply: b.render(req, "worker_pref_work_type", nil),
		next:  farm.StateWorkerPrefWorkType,
	}, nil
}

func (b *Bot) handleOwnerName(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "owner_reg_start", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{Name: farm.String(req.text)}); err != nil {
		return nil, err
	}
	return &outcome{
		reply: b.render(req, "owner_reg_farm_name", texts.Params{"name": req.text}),
		next:  farm.StateOwnerRegFarmName,
	}, nil
}

func (b *Bot) handleFarmName(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "owner_reg_farm_name", texts.Params{"name": req.user.Profile.Name})}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{FarmName: farm.String(req.text)}); err != nil {
		return nil, err
	}
	return &outcome{
		reply: b.render(req, "owner_reg_location", nil),
		next:  farm.StateOwnerRegLocation,
	}, nil
}

// handleOwnerLocation completes employer registration and lands on the
// owner menu.
func (b *Bot) handleOwnerLocation(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "owner_reg_location", nil)}, nil
	}
	if err := b.mergeProfile(ctx, req, farm.ProfilePatch{Location: farm.String(req.text)}); err != nil {
		return nil, err
	}
	if err := b.store.SetUserRegistered(ctx, req.user.ID, true); err != nil {
		return nil, err
	}
	req.user.Registered = true

	done := b.render(req, "owner_reg_done", texts.Params{
		"farm_name": req.user.Profile.FarmName,
		"location":  req.text,
	})
	return &outcome{
		reply: done + "\n\n" + b.render(req, "owner_menu", nil),
		clear: true,
	}, nil
}
