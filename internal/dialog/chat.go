package dialog

import (
	"context"
	"strings"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/notify"
	"github.com/agromatch/agromatch/internal/texts"
)

// startWorkerChat opens a relay with the owner of the worker's most
// recent application.
func (b *Bot) startWorkerChat(ctx context.Context, req *request) (*outcome, error) {
	matches, err := b.store.ListMatchesByWorker(ctx, req.user.ID)
	if err != nil {
		return nil, err
	}

	var latest *farm.Match
	for _, match := range matches {
		if latest == nil || match.CreatedAt.After(latest.CreatedAt) {
			latest = match
		}
	}
	if latest == nil {
		return b.noChatPartner(req), nil
	}

	job, err := b.store.GetJob(ctx, latest.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.OwnerID == "" {
		return b.noChatPartner(req), nil
	}

	return b.openChat(req, job.OwnerID, orDefault(job.FarmName, job.OwnerID)), nil
}

// startOwnerChat opens a relay with the most recent applicant across the
// owner's jobs.
func (b *Bot) startOwnerChat(ctx context.Context, req *request) (*outcome, error) {
	jobs, err := b.store.ListJobsByOwner(ctx, req.user.ID)
	if err != nil {
		return nil, err
	}

	var latest *farm.Match
	for _, job := range jobs {
		matches, err := b.store.ListMatchesByJob(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if latest == nil || match.CreatedAt.After(latest.CreatedAt) {
				latest = match
			}
		}
	}
	if latest == nil {
		return b.noChatPartner(req), nil
	}

	name := latest.WorkerID
	if worker, err := b.store.GetUser(ctx, latest.WorkerID); err == nil && worker != nil {
		name = orDefault(worker.Profile.Name, latest.WorkerID)
	}
	return b.openChat(req, latest.WorkerID, name), nil
}

func (b *Bot) openChat(req *request, with, name string) *outcome {
	return &outcome{
		reply: b.render(req, "chat_start", texts.Params{"name": name}),
		next:  farm.StateChatting,
		data:  &farm.StateData{With: with},
	}
}

func (b *Bot) noChatPartner(req *request) *outcome {
	menuKey := "worker_menu"
	if req.user.Role == farm.RoleOwner {
		menuKey = "owner_menu"
	}
	return &outcome{
		reply: b.render(req, "chat_none", nil) + "\n\n" + b.render(req, menuKey, nil),
	}
}

// handleChatMessage forwards each message to the counterparty until the
// user types 'endchat'. No chat history is stored.
func (b *Bot) handleChatMessage(ctx context.Context, req *request) (*outcome, error) {
	if strings.EqualFold(req.text, "endchat") {
		return &outcome{
			reply: b.render(req, "chat_ended", nil) + "\n\n" + b.showMainMenu(req).reply,
			clear: true,
		}, nil
	}

	with := req.state.Data.With
	if with == "" {
		return b.noChatPartner(req), nil
	}

	body := b.texts.Render("chat_incoming", b.languageOf(ctx, with), texts.Params{
		"name":    orDefault(req.user.Profile.Name, req.user.ID),
		"message": req.text,
	})

	return &outcome{
		reply:   b.render(req, "chat_sent", nil),
		notices: []notify.Notice{{To: with, Body: body}},
	}, nil
}
