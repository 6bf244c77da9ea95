package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/agromatch/agromatch/internal/farm"
)

const (
	usersFile         = "users.json"
	jobsFile          = "jobs.json"
	conversationsFile = "conversations.json"
	matchesFile       = "matches.json"
)

// FileStore keeps each record kind in a JSON file under a data directory.
// Writes rewrite the whole file; a single mutex serializes access. Fine for
// a sandbox deployment, swap in the Redis store for anything bigger.
type FileStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewFileStore creates the data directory and the four record files if they
// do not exist yet.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %q: %w", dir, err)
	}

	s := &FileStore{dir: dir, now: time.Now}
	for _, name := range []string{usersFile, jobsFile, conversationsFile, matchesFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
				return nil, fmt.Errorf("initializing %q: %w", path, err)
			}
		}
	}

	return s, nil
}

func readAll[T any](s *FileStore, file string) (map[string]*T, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, file))
	if os.IsNotExist(err) {
		return map[string]*T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", file, err)
	}

	records := map[string]*T{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", file, err)
	}
	return records, nil
}

func writeAll[T any](s *FileStore, file string, records map[string]*T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %q: %w", file, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, file), data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", file, err)
	}
	return nil
}

func (s *FileStore) GetUser(_ context.Context, id string) (*farm.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[farm.User](s, usersFile)
	if err != nil {
		return nil, err
	}
	return users[id], nil
}

func (s *FileStore) CreateUser(_ context.Context, user *farm.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[farm.User](s, usersFile)
	if err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	users[user.ID] = user
	return writeAll(s, usersFile, users)
}

func (s *FileStore) SetUserRole(_ context.Context, id string, role farm.Role) error {
	return s.patchUser(id, func(u *farm.User) {
		u.Role = role
		u.Registered = false
	})
}

func (s *FileStore) SetUserRegistered(_ context.Context, id string, registered bool) error {
	return s.patchUser(id, func(u *farm.User) { u.Registered = registered })
}

func (s *FileStore) MergeProfile(_ context.Context, id string, patch farm.ProfilePatch) error {
	return s.patchUser(id, func(u *farm.User) { u.Profile.Apply(patch) })
}

func (s *FileStore) ListUsersByRole(_ context.Context, role farm.Role) ([]*farm.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[farm.User](s, usersFile)
	if err != nil {
		return nil, err
	}

	var out []*farm.User
	for _, user := range users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *FileStore) patchUser(id string, apply func(*farm.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readAll[farm.User](s, usersFile)
	if err != nil {
		return err
	}
	user, ok := users[id]
	if !ok {
		return fmt.Errorf("user %q not found", id)
	}
	apply(user)
	return writeAll(s, usersFile, users)
}

func (s *FileStore) CreateJob(_ context.Context, job *farm.Job) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := readAll[farm.Job](s, jobsFile)
	if err != nil {
		return "", err
	}

	now := s.now()
	if job.ID == "" {
		job.ID = fmt.Sprintf("JOB_%d_%s", len(jobs)+1, now.Format("20060102150405"))
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.Status == "" {
		job.Status = farm.JobOpen
	}

	jobs[job.ID] = job
	if err := writeAll(s, jobsFile, jobs); err != nil {
		return "", err
	}
	return job.ID, nil
}

func (s *FileStore) GetJob(_ context.Context, id string) (*farm.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := readAll[farm.Job](s, jobsFile)
	if err != nil {
		return nil, err
	}
	return jobs[id], nil
}

func (s *FileStore) ListOpenJobs(_ context.Context) ([]*farm.Job, error) {
	return s.listJobs(func(j *farm.Job) bool { return j.Status == farm.JobOpen })
}

func (s *FileStore) ListJobsByOwner(_ context.Context, ownerID string) ([]*farm.Job, error) {
	return s.listJobs(func(j *farm.Job) bool { return j.OwnerID == ownerID })
}

func (s *FileStore) listJobs(keep func(*farm.Job) bool) ([]*farm.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := readAll[farm.Job](s, jobsFile)
	if err != nil {
		return nil, err
	}

	var out []*farm.Job
	for _, job := range jobs {
		if keep(job) {
			out = append(out, job)
		}
	}
	// Map iteration order is random; keep listings deterministic.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *FileStore) SetJobStatus(_ context.Context, id string, status farm.JobStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := readAll[farm.Job](s, jobsFile)
	if err != nil {
		return err
	}
	job, ok := jobs[id]
	if !ok {
		return fmt.Errorf("job %q not found", id)
	}
	job.Status = status
	return writeAll(s, jobsFile, jobs)
}

func (s *FileStore) GetState(_ context.Context, userID string) (*farm.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	states, err := readAll[farm.ConversationState](s, conversationsFile)
	if err != nil {
		return nil, err
	}
	return states[userID], nil
}

func (s *FileStore) SetState(_ context.Context, userID string, state farm.StateName, data *farm.StateData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	states, err := readAll[farm.ConversationState](s, conversationsFile)
	if err != nil {
		return err
	}

	next := &farm.ConversationState{
		UserID:    userID,
		State:     state,
		UpdatedAt: s.now(),
	}
	if data != nil {
		next.Data = *data
	}
	states[userID] = next
	return writeAll(s, conversationsFile, states)
}

func (s *FileStore) ClearState(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	states, err := readAll[farm.ConversationState](s, conversationsFile)
	if err != nil {
		return err
	}
	if _, ok := states[userID]; !ok {
		return nil
	}
	delete(states, userID)
	return writeAll(s, conversationsFile, states)
}

func (s *FileStore) CreateMatch(_ context.Context, match *farm.Match) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := readAll[farm.Match](s, matchesFile)
	if err != nil {
		return "", err
	}

	now := s.now()
	if match.ID == "" {
		match.ID = fmt.Sprintf("MATCH_%d_%s", len(matches)+1, now.Format("20060102150405"))
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = now
	}

	matches[match.ID] = match
	if err := writeAll(s, matchesFile, matches); err != nil {
		return "", err
	}
	return match.ID, nil
}

func (s *FileStore) ListMatchesByWorker(_ context.Context, workerID string) ([]*farm.Match, error) {
	return s.listMatches(func(m *farm.Match) bool { return m.WorkerID == workerID })
}

func (s *FileStore) ListMatchesByJob(_ context.Context, jobID string) ([]*farm.Match, error) {
	return s.listMatches(func(m *farm.Match) bool { return m.JobID == jobID })
}

func (s *FileStore) listMatches(keep func(*farm.Match) bool) ([]*farm.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := readAll[farm.Match](s, matchesFile)
	if err != nil {
		return nil, err
	}

	var out []*farm.Match
	for _, match := range matches {
		if keep(match) {
			out = append(out, match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
