package farm

import "time"

// MatchStatus is the application outcome. The dialogue flows only ever
// create matches as accepted; pending/rejected exist for store-level tooling.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// Match links a worker to a job they applied to. Repeat applications to the
// same job create fresh records; nothing deduplicates them.
type Match struct {
	ID        string      `json:"match_id"`
	JobID     string      `json:"job_id"`
	WorkerID  string      `json:"worker_id"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
