// Package store persists the four record kinds the dialogue core works
// with: users, jobs, conversation states and matches. Implementations are
// simple keyed repositories; no transactional guarantees are offered and
// none are assumed by callers.
package store

import (
	"context"

	"github.com/agromatch/agromatch/internal/farm"
)

// Store is the record repository consumed by the dialogue controller.
// Lookups for missing records return (nil, nil); errors are reserved for
// storage failures.
type Store interface {
	GetUser(ctx context.Context, id string) (*farm.User, error)
	CreateUser(ctx context.Context, user *farm.User) error
	// SetUserRole also resets Registered, matching a fresh role selection.
	SetUserRole(ctx context.Context, id string, role farm.Role) error
	SetUserRegistered(ctx context.Context, id string, registered bool) error
	// MergeProfile applies the patch to the stored profile, leaving all
	// other fields as they are.
	MergeProfile(ctx context.Context, id string, patch farm.ProfilePatch) error
	// ListUsersByRole returns every user holding the role, registered or
	// not. Callers filter further.
	ListUsersByRole(ctx context.Context, role farm.Role) ([]*farm.User, error)

	CreateJob(ctx context.Context, job *farm.Job) (string, error)
	GetJob(ctx context.Context, id string) (*farm.Job, error)
	ListOpenJobs(ctx context.Context) ([]*farm.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID string) ([]*farm.Job, error)
	SetJobStatus(ctx context.Context, id string, status farm.JobStatus) error

	GetState(ctx context.Context, userID string) (*farm.ConversationState, error)
	SetState(ctx context.Context, userID string, state farm.StateName, data *farm.StateData) error
	ClearState(ctx context.Context, userID string) error

	CreateMatch(ctx context.Context, match *farm.Match) (string, error)
	ListMatchesByWorker(ctx context.Context, workerID string) ([]*farm.Match, error)
	ListMatchesByJob(ctx context.Context, jobID string) ([]*farm.Match, error)
}
