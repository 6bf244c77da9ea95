package dialog

import (
	"context"
	"strconv"
	"strings"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/texts"
)

// The posting flow accumulates fields on StateData.Draft, carrying the
// draft forward explicitly on every transition.

func (b *Bot) draft(req *request) *farm.JobDraft {
	if req.state != nil && req.state.Data.Draft != nil {
		return req.state.Data.Draft
	}
	return &farm.JobDraft{}
}

func (b *Bot) handleJobWorkType(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "job_post_work_type_retry", nil)}, nil
	}
	draft := b.draft(req)
	draft.WorkType = req.text
	return &outcome{
		reply: b.render(req, "job_post_workers", nil),
		next:  farm.StateJobWorkersNeeded,
		data:  &farm.StateData{Draft: draft},
	}, nil
}

func (b *Bot) handleJobWorkers(ctx context.Context, req *request) (*outcome, error) {
	workers, err := strconv.Atoi(req.text)
	if err != nil || workers <= 0 {
		return &outcome{reply: b.render(req, "job_post_workers_retry", nil)}, nil
	}
	draft := b.draft(req)
	draft.WorkersNeeded = workers
	return &outcome{
		reply: b.render(req, "job_post_hours", nil),
		next:  farm.StateJobWorkHours,
		data:  &farm.StateData{Draft: draft},
	}, nil
}

func (b *Bot) handleJobWorkHours(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "job_post_hours", nil)}, nil
	}
	draft := b.draft(req)
	draft.WorkHours = req.text
	return &outcome{
		reply: b.render(req, "job_post_payment_type", nil),
		next:  farm.StateJobPaymentType,
		data:  &farm.StateData{Draft: draft},
	}, nil
}

func (b *Bot) handleJobPaymentType(ctx context.Context, req *request) (*outcome, error) {
	var paymentType farm.PaymentType
	switch req.text {
	case "1":
		paymentType = farm.PayPerHour
	case "2":
		paymentType = farm.PayPerDay
	case "3":
		paymentType = farm.PayPerTask
	default:
		return &outcome{reply: b.render(req, "job_post_payment_type_retry", nil)}, nil
	}
	draft := b.draft(req)
	draft.PaymentType = paymentType
	return &outcome{
		reply: b.render(req, "job_post_payment_amount", texts.Params{"unit": string(paymentType)}),
		next:  farm.StateJobPayment,
		data:  &farm.StateData{Draft: draft},
	}, nil
}

func (b *Bot) handleJobPayment(ctx context.Context, req *request) (*outcome, error) {
	amount, err := strconv.ParseFloat(strings.TrimPrefix(req.text, "$"), 64)
	if err != nil || amount <= 0 {
		return &outcome{reply: b.render(req, "job_post_amount_retry", nil)}, nil
	}
	draft := b.draft(req)
	draft.PaymentAmount = amount
	return &outcome{
		reply: b.render(req, "job_post_location", nil),
		next:  farm.StateJobLocation,
		data:  &farm.StateData{Draft: draft},
	}, nil
}

func (b *Bot) handleJobLocation(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "job_post_location", nil)}, nil
	}
	draft := b.draft(req)
	draft.Location = req.text
	return &outcome{
		reply: b.render(req, "job_post_transportation", nil),
		next:  farm.StateJobTransport,
		data:  &farm.StateData{Draft: draft},
	}, nil
}

// handleJobTransportation asks for a meeting point only when transport is
// provided; otherwise the flow skips straight to the description.
func (b *Bot) handleJobTransportation(ctx context.Context, req *request) (*outcome, error) {
	draft := b.draft(req)
	switch req.text {
	case "1":
		draft.Transportation = "Provided"
		return &outcome{
			reply: b.render(req, "job_post_meeting_point", nil),
			next:  farm.StateJobMeetingPoint,
			data:  &farm.StateData{Draft: draft},
		}, nil
	case "2":
		draft.Transportation = "Not provided"
		return &outcome{
			reply: b.render(req, "job_post_description", nil),
			next:  farm.StateJobDescription,
			data:  &farm.StateData{Draft: draft},
		}, nil
	default:
		return &outcome{reply: b.render(req, "job_post_transport_retry", nil)}, nil
	}
}

func (b *Bot) handleJobMeetingPoint(ctx context.Context, req *request) (*outcome, error) {
	if req.text == "" {
		return &outcome{reply: b.render(req, "job_post_meeting_point", nil)}, nil
	}
	draft := b.draft(req)
	draft.MeetingPoint = req.text
	return &outcome{
		reply: b.render(req, "job_post_description", nil),
		next:  farm.StateJobDescription,
		data:  &farm.StateData{Draft: draft},
	}, nil
}

// handleJobDescription closes the flow: the accumulated draft becomes a
// live Job record.
func (b *Bot) handleJobDescription(ctx context.Context, req *request) (*outcome, error) {
	draft := b.draft(req)
	if !strings.EqualFold(req.text, "skip") {
		draft.Description = req.text
	}

	job := &farm.Job{
		Status:         farm.JobOpen,
		WorkType:       draft.WorkType,
		WorkersNeeded:  draft.WorkersNeeded,
		WorkHours:      draft.WorkHours,
		PaymentType:    draft.PaymentType,
		PaymentAmount:  draft.PaymentAmount,
		Location:       draft.Location,
		Transportation: draft.Transportation,
		MeetingPoint:   draft.MeetingPoint,
		Description:    draft.Description,
		OwnerID:        req.user.ID,
		OwnerName:      req.user.Profile.Name,
		FarmName:       req.user.Profile.FarmName,
	}
	jobID, err := b.store.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}

	posted := b.render(req, "job_posted", texts.Params{
		"work_type": job.WorkType,
		"workers":   strconv.Itoa(job.WorkersNeeded),
		"pay":       job.PayLabel(),
		"job_id":    jobID,
	})
	return &outcome{
		reply: posted + "\n\n" + b.render(req, "owner_menu", nil),
		clear: true,
	}, nil
}
