// Package farm holds the domain records shared by the dialogue core,
// the matching engine and the record store: users, jobs, matches and
// per-user conversation state.
package farm

import "time"

// Role identifies which side of the marketplace a user is on. It is set
// once at role selection and never changes afterwards.
type Role string

const (
	RoleUnknown Role = "unknown"
	RoleWorker  Role = "worker"
	RoleOwner   Role = "farm_owner"
)

// User is a messaging-channel participant. The ID is the channel-qualified
// sender address (e.g. "whatsapp:+15555551234") and doubles as the key in
// the record store.
type User struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	Registered bool      `json:"registered"`
	CreatedAt  time.Time `json:"created_at"`
	Profile    Profile   `json:"profile"`
}

// Profile accumulates registration and preference fields. Fields are only
// ever merged in one at a time, never replaced wholesale.
type Profile struct {
	Name            string  `json:"name,omitempty"`
	Location        string  `json:"location,omitempty"`
	WorkTypes       string  `json:"work_types,omitempty"`
	MinPayRate      float64 `json:"min_pay_rate,omitempty"`
	MaxDistance     int     `json:"max_distance,omitempty"`
	HoursPreference string  `json:"hours_preference,omitempty"`
	IDVerified      bool    `json:"id_verified,omitempty"`
	IDPhotoURL      string  `json:"id_photo_url,omitempty"`
	Language        string  `json:"language,omitempty"`
	FarmName        string  `json:"farm_name,omitempty"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched
// by Apply, so callers can patch a single field without reading the rest.
type ProfilePatch struct {
	Name            *string
	Location        *string
	WorkTypes       *string
	MinPayRate      *float64
	MaxDistance     *int
	HoursPreference *string
	IDVerified      *bool
	IDPhotoURL      *string
	Language        *string
	FarmName        *string
}

// Apply merges the patch into the profile.
func (p *Profile) Apply(patch ProfilePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.WorkTypes != nil {
		p.WorkTypes = *patch.WorkTypes
	}
	if patch.MinPayRate != nil {
		p.MinPayRate = *patch.MinPayRate
	}
	if patch.MaxDistance != nil {
		p.MaxDistance = *patch.MaxDistance
	}
	if patch.HoursPreference != nil {
		p.HoursPreference = *patch.HoursPreference
	}
	if patch.IDVerified != nil {
		p.IDVerified = *patch.IDVerified
	}
	if patch.IDPhotoURL != nil {
		p.IDPhotoURL = *patch.IDPhotoURL
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	if patch.FarmName != nil {
		p.FarmName = *patch.FarmName
	}
}

// Pointer helpers for building patches inline.
func String(s string) *string  { return &s }
func Float(f float64) *float64 { return &f }
func Int(i int) *int           { return &i }
func Bool(b bool) *bool        { return &b }
