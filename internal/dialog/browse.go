package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/notify"
	"github.com/agromatch/agromatch/internal/texts"
)

// handleMenuSelection dispatches a stable-menu number for a registered
// user. Unknown choices just replay the menu.
func (b *Bot) handleMenuSelection(ctx context.Context, req *request) (*outcome, error) {
	if req.user.Role == farm.RoleOwner {
		return b.handleOwnerMenuSelection(ctx, req)
	}
	return b.handleWorkerMenuSelection(ctx, req)
}

func (b *Bot) handleWorkerMenuSelection(ctx context.Context, req *request) (*outcome, error) {
	switch req.text {
	case "1":
		return b.showRecommendations(ctx, req)
	case "2":
		return &outcome{
			reply: b.render(req, "update_menu", nil),
			next:  farm.StateWorkerUpdateMenu,
		}, nil
	case "3":
		return b.listApplications(ctx, req)
	case "4":
		return b.startWorkerChat(ctx, req)
	case "5":
		return &outcome{reply: b.render(req, "help", nil)}, nil
	default:
		return b.showMainMenu(req), nil
	}
}

func (b *Bot) handleOwnerMenuSelection(ctx context.Context, req *request) (*outcome, error) {
	switch req.text {
	case "1":
		return &outcome{
			reply: b.render(req, "job_post_start", nil),
			next:  farm.StateJobWorkType,
			data:  &farm.StateData{Draft: &farm.JobDraft{}},
		}, nil
	case "2":
		return b.listOwnerJobs(ctx, req)
	case "3":
		return b.listApplicants(ctx, req)
	case "4":
		return b.startOwnerChat(ctx, req)
	case "5":
		return &outcome{reply: b.render(req, "help", nil)}, nil
	default:
		return b.showMainMenu(req), nil
	}
}

// showRecommendations runs the matching engine over the open jobs and
// presents the result: a single job goes to the direct accept/decline
// flow, several jobs go to the numbered list or, when configured, to the
// sequential one-at-a-time review.
func (b *Bot) showRecommendations(ctx context.Context, req *request) (*outcome, error) {
	open, err := b.store.ListOpenJobs(ctx)
	if err != nil {
		return nil, err
	}
	ranked := b.engine.Match(ctx, open, req.user.Profile)

	if len(ranked) == 0 {
		return &outcome{
			reply: b.render(req, "no_jobs", nil) + "\n\n" + b.render(req, "worker_menu", nil),
			clear: true,
		}, nil
	}

	ids := make([]string, len(ranked))
	for i, job := range ranked {
		ids[i] = job.ID
	}

	if len(ranked) == 1 {
		reply := b.render(req, "found_jobs", texts.Params{"count": "1"}) +
			"\n\n" + b.jobLine(req, 1, ranked[0]) +
			"\n" + b.render(req, "select_job", texts.Params{"max": "1"})
		return &outcome{
			reply: reply,
			next:  farm.StateViewingJobs,
			data:  &farm.StateData{Jobs: ids, JobID: ranked[0].ID},
		}, nil
	}

	if b.sequentialReview {
		return &outcome{
			reply: b.reviewPrompt(req, ranked[0], 1, len(ranked)),
			next:  farm.StateReviewingRec,
			data:  &farm.StateData{Jobs: ids},
		}, nil
	}

	return &outcome{
		reply: b.jobList(req, ranked),
		next:  farm.StateSelectingFromRecs,
		data:  &farm.StateData{Jobs: ids},
	}, nil
}

func (b *Bot) jobList(req *request, jobs []*farm.Job) string {
	var sb strings.Builder
	sb.WriteString(b.render(req, "found_jobs", texts.Params{"count": strconv.Itoa(len(jobs))}))
	sb.WriteString("\n\n")
	for i, job := range jobs {
		sb.WriteString(b.jobLine(req, i+1, job))
		sb.WriteString("\n")
	}
	sb.WriteString(b.render(req, "select_job", texts.Params{"max": strconv.Itoa(len(jobs))}))
	return sb.String()
}

func (b *Bot) reviewPrompt(req *request, job *farm.Job, index, total int) string {
	return b.render(req, "review_header", texts.Params{
		"index": strconv.Itoa(index),
		"total": strconv.Itoa(total),
	}) + "\n\n" + b.jobCard(req, job) + "\n\n" + b.render(req, "review_question", nil)
}

// handleSelectFromRecommendations resolves a numbered pick from the list
// into the detail view.
func (b *Bot) handleSelectFromRecommendations(ctx context.Context, req *request) (*outcome, error) {
	if isMenuCommand(req.text) {
		return b.showMainMenu(req), nil
	}

	ids := req.state.Data.Jobs
	max := strconv.Itoa(len(ids))

	n, err := strconv.Atoi(req.text)
	if err != nil {
		return &outcome{reply: b.render(req, "pick_number", texts.Params{"max": max})}, nil
	}
	if n < 1 || n > len(ids) {
		return &outcome{reply: b.render(req, "pick_number_range", texts.Params{"max": max})}, nil
	}

	job, err := b.store.GetJob(ctx, ids[n-1])
	if err != nil {
		return nil, err
	}
	if job == nil {
		return &outcome{reply: b.render(req, "job_not_found", nil)}, nil
	}

	return &outcome{
		reply: b.jobCard(req, job) + "\n\n" + b.render(req, "apply_question", nil),
		next:  farm.StateJobDetailsView,
		data:  &farm.StateData{Jobs: ids, JobID: job.ID},
	}, nil
}

// handleJobDetailsView confirms or abandons the pick made from the list.
func (b *Bot) handleJobDetailsView(ctx context.Context, req *request) (*outcome, error) {
	if isMenuCommand(req.text) {
		return b.showMainMenu(req), nil
	}

	switch req.text {
	case "1":
		return b.applyToJob(ctx, req, req.state.Data.JobID)
	case "2":
		return b.relistJobs(ctx, req, req.state.Data.Jobs)
	default:
		return &outcome{reply: b.render(req, "apply_retry", nil)}, nil
	}
}

// relistJobs rebuilds the numbered list from stored ids, dropping jobs
// that have disappeared since.
func (b *Bot) relistJobs(ctx context.Context, req *request, ids []string) (*outcome, error) {
	var jobs []*farm.Job
	var kept []string
	for _, id := range ids {
		job, err := b.store.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job != nil {
			jobs = append(jobs, job)
			kept = append(kept, id)
		}
	}
	if len(jobs) == 0 {
		return &outcome{
			reply: b.render(req, "no_jobs", nil) + "\n\n" + b.render(req, "worker_menu", nil),
			clear: true,
		}, nil
	}
	return &outcome{
		reply: b.jobList(req, jobs),
		next:  farm.StateSelectingFromRecs,
		data:  &farm.StateData{Jobs: kept},
	}, nil
}

// handleRecommendationReview walks the ranked list one job at a time.
func (b *Bot) handleRecommendationReview(ctx context.Context, req *request) (*outcome, error) {
	if isMenuCommand(req.text) {
		return b.showMainMenu(req), nil
	}

	ids := req.state.Data.Jobs
	cursor := req.state.Data.Cursor

	switch req.text {
	case "1":
		if cursor < len(ids) {
			return b.applyToJob(ctx, req, ids[cursor])
		}
		return b.endOfReview(req), nil
	case "2":
		for next := cursor + 1; next < len(ids); next++ {
			job, err := b.store.GetJob(ctx, ids[next])
			if err != nil {
				return nil, err
			}
			if job == nil {
				continue
			}
			return &outcome{
				reply: b.reviewPrompt(req, job, next+1, len(ids)),
				next:  farm.StateReviewingRec,
				data:  &farm.StateData{Jobs: ids, Cursor: next},
			}, nil
		}
		return b.endOfReview(req), nil
	default:
		return &outcome{reply: b.render(req, "review_retry", nil)}, nil
	}
}

func (b *Bot) endOfReview(req *request) *outcome {
	return &outcome{
		reply: b.render(req, "no_more_jobs", nil) + "\n\n" + b.render(req, "worker_menu", nil),
		clear: true,
	}
}

// handleViewingJobs is the single-result path: "1" opens the details.
func (b *Bot) handleViewingJobs(ctx context.Context, req *request) (*outcome, error) {
	if isMenuCommand(req.text) {
		return b.showMainMenu(req), nil
	}

	if req.text != "1" {
		return &outcome{reply: b.render(req, "pick_number_range", texts.Params{"max": "1"})}, nil
	}

	job, err := b.store.GetJob(ctx, req.state.Data.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return &outcome{reply: b.render(req, "job_not_found", nil)}, nil
	}

	return &outcome{
		reply: b.jobCard(req, job) + "\n\n" + b.render(req, "apply_question", nil),
		next:  farm.StateJobAction,
		data:  &farm.StateData{JobID: job.ID},
	}, nil
}

// handleJobAction is the direct accept/decline on a single job.
func (b *Bot) handleJobAction(ctx context.Context, req *request) (*outcome, error) {
	if isMenuCommand(req.text) {
		return b.showMainMenu(req), nil
	}

	switch req.text {
	case "1":
		return b.applyToJob(ctx, req, req.state.Data.JobID)
	case "2":
		return &outcome{
			reply: b.render(req, "application_declined", nil) + "\n\n" + b.render(req, "worker_menu", nil),
			clear: true,
		}, nil
	default:
		return &outcome{reply: b.render(req, "apply_retry", nil)}, nil
	}
}

// applyToJob is the single convergence point of all review flows: create
// the accepted Match, queue the owner notification and land back on the
// worker menu.
func (b *Bot) applyToJob(ctx context.Context, req *request, jobID string) (*outcome, error) {
	job, err := b.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return &outcome{reply: b.render(req, "job_not_found", nil)}, nil
	}

	matchID, err := b.store.CreateMatch(ctx, &farm.Match{
		JobID:    job.ID,
		WorkerID: req.user.ID,
		Status:   farm.MatchAccepted,
	})
	if err != nil {
		return nil, err
	}

	reply := b.render(req, "applied", texts.Params{
		"work_type": job.WorkType,
		"farm_name": orDefault(job.FarmName, job.OwnerName),
		"pay":       job.PayLabel(),
		"match_id":  matchID,
	}) + "\n\n" + b.render(req, "worker_menu", nil)

	out := &outcome{reply: reply, clear: true}

	if job.OwnerID != "" {
		body := b.texts.Render("new_application", b.languageOf(ctx, job.OwnerID), texts.Params{
			"name":      orDefault(req.user.Profile.Name, req.user.ID),
			"work_type": job.WorkType,
			"location":  orDefault(job.Location, "Not specified"),
			"pay":       job.PayLabel(),
		})
		out.notices = append(out.notices, notify.Notice{To: job.OwnerID, Body: body})
	}
	return out, nil
}

// languageOf resolves a recipient's stored language for notices,
// defaulting to English.
func (b *Bot) languageOf(ctx context.Context, userID string) string {
	user, err := b.store.GetUser(ctx, userID)
	if err != nil || user == nil || user.Profile.Language == "" {
		return "en"
	}
	return user.Profile.Language
}

// listApplications shows the worker's past applications.
func (b *Bot) listApplications(ctx context.Context, req *request) (*outcome, error) {
	matches, err := b.store.ListMatchesByWorker(ctx, req.user.ID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return &outcome{
			reply: b.render(req, "no_applications", nil) + "\n\n" + b.render(req, "worker_menu", nil),
		}, nil
	}

	var sb strings.Builder
	sb.WriteString(b.render(req, "applications_header", nil))
	sb.WriteString("\n\n")
	for _, match := range matches {
		job, err := b.store.GetJob(ctx, match.JobID)
		if err != nil {
			return nil, err
		}
		if job == nil {
			continue
		}
		fmt.Fprintf(&sb, "• %s at %s, %s (%s)\n",
			job.WorkType, orDefault(job.FarmName, job.OwnerName), job.PayLabel(), match.Status)
	}
	sb.WriteString("\n")
	sb.WriteString(b.render(req, "worker_menu", nil))
	return &outcome{reply: sb.String()}, nil
}

// listOwnerJobs shows the owner's postings with application counts.
func (b *Bot) listOwnerJobs(ctx context.Context, req *request) (*outcome, error) {
	jobs, err := b.store.ListJobsByOwner(ctx, req.user.ID)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return &outcome{
			reply: b.render(req, "my_jobs_none", nil) + "\n\n" + b.render(req, "owner_menu", nil),
		}, nil
	}

	var sb strings.Builder
	sb.WriteString(b.render(req, "my_jobs_header", nil))
	sb.WriteString("\n\n")
	for _, job := range jobs {
		matches, err := b.store.ListMatchesByJob(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		sb.WriteString(b.render(req, "my_jobs_line", texts.Params{
			"work_type":    job.WorkType,
			"pay":          job.PayLabel(),
			"status":       string(job.Status),
			"applications": strconv.Itoa(len(matches)),
		}))
	}
	sb.WriteString("\n")
	sb.WriteString(b.render(req, "owner_menu", nil))
	return &outcome{reply: sb.String()}, nil
}

// listApplicants shows everyone who applied to the owner's jobs.
func (b *Bot) listApplicants(ctx context.Context, req *request) (*outcome, error) {
	jobs, err := b.store.ListJobsByOwner(ctx, req.user.ID)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, job := range jobs {
		matches, err := b.store.ListMatchesByJob(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			worker, err := b.store.GetUser(ctx, match.WorkerID)
			if err != nil {
				return nil, err
			}
			name := match.WorkerID
			if worker != nil {
				name = orDefault(worker.Profile.Name, match.WorkerID)
			}
			lines = append(lines, b.render(req, "applicant_line", texts.Params{
				"name":      name,
				"work_type": job.WorkType,
				"match_id":  match.ID,
			}))
		}
	}

	if len(lines) == 0 {
		return &outcome{
			reply: b.render(req, "applicants_none", nil) + "\n\n" + b.render(req, "owner_menu", nil),
		}, nil
	}

	reply := b.render(req, "applicants_header", nil) + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" + b.render(req, "owner_menu", nil)
	return &outcome{reply: reply}, nil
}
