package models

import "time"

// Attendance defines a per-user RSVP record based on the 'attendances'
// table. Exactly one of EventID / AssignmentID is set. A second submission
// for the same (user, target) pair overwrites status and timestamp.
type Attendance struct {
	ID           int64            `json:"id" db:"id"`
	UserID       int64            `json:"userId" db:"user_id"`
	EventID      *int64           `json:"eventId,omitempty" db:"event_id"`
	AssignmentID *int64           `json:"assignmentId,omitempty" db:"assignment_id"`
	Status       AttendanceStatus `json:"status" db:"status"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// AttendanceSummary holds per-target response counts
type AttendanceSummary struct {
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Maybe int `json:"maybe"`
}

// Total returns the number of responses counted
func (s AttendanceSummary) Total() int {
	return s.Yes + s.No + s.Maybe
}
