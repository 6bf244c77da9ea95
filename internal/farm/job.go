package farm

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle state of a posting. Jobs are never deleted;
// they are opened once and eventually marked filled.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobFilled JobStatus = "filled"
)

// PaymentType describes how a job pays when a flat hourly rate is not used.
type PaymentType string

const (
	PayPerHour PaymentType = "per hour"
	PayPerDay  PaymentType = "per day"
	PayPerTask PaymentType = "per task"
)

// Job is a posting created by a farm owner. Pay is carried either as a flat
// hourly PayRate or as a PaymentType/PaymentAmount pair; when both are
// missing the job ranks as unpaid rather than erroring.
type Job struct {
	ID             string      `json:"job_id"`
	Status         JobStatus   `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	WorkType       string      `json:"work_type"`
	WorkersNeeded  int         `json:"workers_needed,omitempty"`
	WorkHours      string      `json:"work_hours,omitempty"`
	PaymentType    PaymentType `json:"payment_type,omitempty"`
	PaymentAmount  float64     `json:"payment_amount,omitempty"`
	PayRate        float64     `json:"pay_rate,omitempty"`
	Location       string      `json:"location,omitempty"`
	Transportation string      `json:"transportation,omitempty"`
	MeetingPoint   string      `json:"meeting_point,omitempty"`
	Description    string      `json:"description,omitempty"`
	OwnerID        string      `json:"owner_id,omitempty"`
	OwnerName      string      `json:"owner_name,omitempty"`
	FarmName       string      `json:"farm_name,omitempty"`
}

// workdayHours normalizes per-day pay to an hourly equivalent.
const workdayHours = 8

// HourlyPay returns the single comparable pay value used for ranking.
func (j *Job) HourlyPay() float64 {
	switch j.PaymentType {
	case PayPerDay:
		return j.PaymentAmount / workdayHours
	case PayPerHour:
		return j.PaymentAmount
	default:
		return j.PayRate
	}
}

// PayLabel renders the pay for display, preferring the explicit payment
// pair over the flat hourly rate.
func (j *Job) PayLabel() string {
	switch {
	case j.PaymentType == PayPerDay:
		return fmt.Sprintf("$%.2f/day", j.PaymentAmount)
	case j.PaymentType == PayPerHour:
		return fmt.Sprintf("$%.2f/hour", j.PaymentAmount)
	case j.PaymentType == PayPerTask:
		return fmt.Sprintf("$%.2f/task", j.PaymentAmount)
	case j.PayRate > 0:
		return fmt.Sprintf("$%.2f/hour", j.PayRate)
	default:
		return "Contact for details"
	}
}
