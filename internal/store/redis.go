package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agromatch/agromatch/internal/farm"
)

const (
	userKeyPrefix  = "agromatch:user:"
	jobKeyPrefix   = "agromatch:job:"
	stateKeyPrefix = "agromatch:conv:"
	matchKeyPrefix = "agromatch:match:"

	allUsersKey  = "agromatch:users"
	openJobsKey  = "agromatch:jobs:open"
	jobSeqKey    = "agromatch:seq:job"
	matchSeqKey  = "agromatch:seq:match"
	ownerJobsKey = "agromatch:jobs:owner:"

	workerMatchesKey = "agromatch:matches:worker:"
	jobMatchesKey    = "agromatch:matches:job:"
)

// RedisStore keeps records as JSON blobs with secondary index sets for the
// list operations. Same contract as the file store, no extra guarantees.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisStore parses the URL and verifies connectivity before returning.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{rdb: client, now: time.Now}, nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error { return s.rdb.Close() }

func (s *RedisStore) getJSON(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) GetUser(ctx context.Context, id string) (*farm.User, error) {
	var user farm.User
	ok, err := s.getJSON(ctx, userKeyPrefix+id, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

func (s *RedisStore) CreateUser(ctx context.Context, user *farm.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	if err := s.setJSON(ctx, userKeyPrefix+user.ID, user); err != nil {
		return err
	}
	if err := s.rdb.SAdd(ctx, allUsersKey, user.ID).Err(); err != nil {
		return fmt.Errorf("redis sadd %q: %w", allUsersKey, err)
	}
	return nil
}

// ListUsersByRole scans the user index. Roles change rarely, so the index
// holds all users and the role filter happens on read.
func (s *RedisStore) ListUsersByRole(ctx context.Context, role farm.Role) ([]*farm.User, error) {
	ids, err := s.rdb.SMembers(ctx, allUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %q: %w", allUsersKey, err)
	}

	var out []*farm.User
	for _, id := range ids {
		user, err := s.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		if user != nil && user.Role == role {
			out = append(out, user)
		}
	}
	sortUsersByID(out)
	return out, nil
}

func (s *RedisStore) SetUserRole(ctx context.Context, id string, role farm.Role) error {
	return s.patchUser(ctx, id, func(u *farm.User) {
		u.Role = role
		u.Registered = false
	})
}

func (s *RedisStore) SetUserRegistered(ctx context.Context, id string, registered bool) error {
	return s.patchUser(ctx, id, func(u *farm.User) { u.Registered = registered })
}

func (s *RedisStore) MergeProfile(ctx context.Context, id string, patch farm.ProfilePatch) error {
	return s.patchUser(ctx, id, func(u *farm.User) { u.Profile.Apply(patch) })
}

func (s *RedisStore) patchUser(ctx context.Context, id string, apply func(*farm.User)) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", id)
	}
	apply(user)
	return s.setJSON(ctx, userKeyPrefix+id, user)
}

func (s *RedisStore) CreateJob(ctx context.Context, job *farm.Job) (string, error) {
	now := s.now()
	if job.ID == "" {
		seq, err := s.rdb.Incr(ctx, jobSeqKey).Result()
		if err != nil {
			return "", fmt.Errorf("redis incr %q: %w", jobSeqKey, err)
		}
		job.ID = fmt.Sprintf("JOB_%d_%s", seq, now.Format("20060102150405"))
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.Status == "" {
		job.Status = farm.JobOpen
	}

	if err := s.setJSON(ctx, jobKeyPrefix+job.ID, job); err != nil {
		return "", err
	}
	if job.Status == farm.JobOpen {
		if err := s.rdb.SAdd(ctx, openJobsKey, job.ID).Err(); err != nil {
			return "", fmt.Errorf("redis sadd %q: %w", openJobsKey, err)
		}
	}
	if job.OwnerID != "" {
		if err := s.rdb.SAdd(ctx, ownerJobsKey+job.OwnerID, job.ID).Err(); err != nil {
			return "", fmt.Errorf("redis sadd owner index: %w", err)
		}
	}
	return job.ID, nil
}

func (s *RedisStore) GetJob(ctx context.Context, id string) (*farm.Job, error) {
	var job farm.Job
	ok, err := s.getJSON(ctx, jobKeyPrefix+id, &job)
	if err != nil || !ok {
		return nil, err
	}
	return &job, nil
}

func (s *RedisStore) ListOpenJobs(ctx context.Context) ([]*farm.Job, error) {
	return s.jobsFromIndex(ctx, openJobsKey)
}

func (s *RedisStore) ListJobsByOwner(ctx context.Context, ownerID string) ([]*farm.Job, error) {
	return s.jobsFromIndex(ctx, ownerJobsKey+ownerID)
}

func (s *RedisStore) jobsFromIndex(ctx context.Context, indexKey string) ([]*farm.Job, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %q: %w", indexKey, err)
	}

	var jobs []*farm.Job
	for _, id := range ids {
		job, err := s.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job != nil {
			jobs = append(jobs, job)
		}
	}
	sortJobsByID(jobs)
	return jobs, nil
}

func (s *RedisStore) SetJobStatus(ctx context.Context, id string, status farm.JobStatus) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %q not found", id)
	}

	job.Status = status
	if err := s.setJSON(ctx, jobKeyPrefix+id, job); err != nil {
		return err
	}

	if status == farm.JobOpen {
		return s.rdb.SAdd(ctx, openJobsKey, id).Err()
	}
	return s.rdb.SRem(ctx, openJobsKey, id).Err()
}

func (s *RedisStore) GetState(ctx context.Context, userID string) (*farm.ConversationState, error) {
	var state farm.ConversationState
	ok, err := s.getJSON(ctx, stateKeyPrefix+userID, &state)
	if err != nil || !ok {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) SetState(ctx context.Context, userID string, state farm.StateName, data *farm.StateData) error {
	next := &farm.ConversationState{
		UserID:    userID,
		State:     state,
		UpdatedAt: s.now(),
	}
	if data != nil {
		next.Data = *data
	}
	return s.setJSON(ctx, stateKeyPrefix+userID, next)
}

func (s *RedisStore) ClearState(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, stateKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del state: %w", err)
	}
	return nil
}

func (s *RedisStore) CreateMatch(ctx context.Context, match *farm.Match) (string, error) {
	now := s.now()
	if match.ID == "" {
		seq, err := s.rdb.Incr(ctx, matchSeqKey).Result()
		if err != nil {
			return "", fmt.Errorf("redis incr %q: %w", matchSeqKey, err)
		}
		match.ID = fmt.Sprintf("MATCH_%d_%s", seq, now.Format("20060102150405"))
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = now
	}

	if err := s.setJSON(ctx, matchKeyPrefix+match.ID, match); err != nil {
		return "", err
	}
	if err := s.rdb.SAdd(ctx, workerMatchesKey+match.WorkerID, match.ID).Err(); err != nil {
		return "", fmt.Errorf("redis sadd worker index: %w", err)
	}
	if err := s.rdb.SAdd(ctx, jobMatchesKey+match.JobID, match.ID).Err(); err != nil {
		return "", fmt.Errorf("redis sadd job index: %w", err)
	}
	return match.ID, nil
}

func (s *RedisStore) ListMatchesByWorker(ctx context.Context, workerID string) ([]*farm.Match, error) {
	return s.matchesFromIndex(ctx, workerMatchesKey+workerID)
}

func (s *RedisStore) ListMatchesByJob(ctx context.Context, jobID string) ([]*farm.Match, error) {
	return s.matchesFromIndex(ctx, jobMatchesKey+jobID)
}

func (s *RedisStore) matchesFromIndex(ctx context.Context, indexKey string) ([]*farm.Match, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %q: %w", indexKey, err)
	}

	var matches []*farm.Match
	for _, id := range ids {
		var match farm.Match
		ok, err := s.getJSON(ctx, matchKeyPrefix+id, &match)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, &match)
		}
	}
	sortMatchesByID(matches)
	return matches, nil
}
