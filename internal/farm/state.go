package farm

import "time"

// StateName identifies a dialogue step. Stable menus are represented by the
// absence of a ConversationState record, not by a terminal state value.
type StateName string

const (
	StateAwaitingRole StateName = "awaiting_role_selection"

	StateWorkerRegName     StateName = "worker_reg_name"
	StateWorkerRegLocation StateName = "worker_reg_location"
	StateWorkerRegID       StateName = "worker_reg_id"

	StateWorkerPrefWorkType StateName = "worker_pref_work_type"
	StateWorkerPrefLocation StateName = "worker_pref_location"
	StateWorkerPrefHours    StateName = "worker_pref_hours"

	StateWorkerUpdateMenu     StateName = "worker_update_menu"
	StateWorkerUpdateWorkType StateName = "worker_update_work_type"
	StateWorkerUpdatePayRate  StateName = "worker_update_pay_rate"
	StateWorkerUpdateDistance StateName = "worker_update_distance"
	StateWorkerUpdateHours    StateName = "worker_update_hours"
	StateWorkerActualLocation StateName = "worker_pref_actual_location"

	StateOwnerRegName     StateName = "owner_reg_name"
	StateOwnerRegFarmName StateName = "owner_reg_farm_name"
	StateOwnerRegLocation StateName = "owner_reg_location"

	StateJobWorkType      StateName = "job_work_type"
	StateJobWorkersNeeded StateName = "job_workers_needed"
	StateJobWorkHours     StateName = "job_work_hours"
	StateJobPaymentType   StateName = "job_payment_type"
	StateJobPayment       StateName = "job_payment"
	StateJobLocation      StateName = "job_location"
	StateJobTransport     StateName = "job_transportation"
	StateJobMeetingPoint  StateName = "job_meeting_point"
	StateJobDescription   StateName = "job_description"

	StateSelectingFromRecs StateName = "selecting_from_recommendations"
	StateReviewingRec      StateName = "reviewing_recommendation"
	StateJobDetailsView    StateName = "job_details_view"
	StateViewingJobs       StateName = "viewing_jobs"
	StateJobAction         StateName = "job_action"

	StateChatting StateName = "chatting"
)

// StateData carries the step-scoped working data for the current state.
// Entering a new state replaces it entirely; handlers that need to carry a
// field forward copy it explicitly.
type StateData struct {
	// Jobs is the ordered list of job IDs being reviewed.
	Jobs []string `json:"jobs,omitempty"`
	// Cursor indexes into Jobs during sequential review.
	Cursor int `json:"cursor,omitempty"`
	// JobID is the single job under consideration.
	JobID string `json:"job_id,omitempty"`
	// With is the chat counterparty during relay.
	With string `json:"with,omitempty"`
	// Draft accumulates job-posting fields.
	Draft *JobDraft `json:"draft,omitempty"`
}

// JobDraft holds the fields collected across the posting flow before the
// Job record is created.
type JobDraft struct {
	WorkType       string      `json:"work_type,omitempty"`
	WorkersNeeded  int         `json:"workers_needed,omitempty"`
	WorkHours      string      `json:"work_hours,omitempty"`
	PaymentType    PaymentType `json:"payment_type,omitempty"`
	PaymentAmount  float64     `json:"payment_amount,omitempty"`
	Location       string      `json:"location,omitempty"`
	Transportation string      `json:"transportation,omitempty"`
	MeetingPoint   string      `json:"meeting_point,omitempty"`
	Description    string      `json:"description,omitempty"`
}

// ConversationState is the per-user pointer to where the dialogue currently
// is. At most one exists per user.
type ConversationState struct {
	UserID    string    `json:"user_id"`
	State     StateName `json:"state"`
	Data      StateData `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}
