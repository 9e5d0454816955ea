package models

import "time"

// Event defines a scheduled lesson based on the 'events' table.
// Room, when set, overrides the subject's room for this occurrence.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	SubjectID   int64     `json:"subjectId" db:"subject_id"`
	StartTime   time.Time `json:"startTime" db:"start_time"`
	EndTime     time.Time `json:"endTime" db:"end_time"`
	Description string    `json:"description" db:"description"`
	CreatorID   *int64    `json:"creatorId,omitempty" db:"creator_id"`
	Room        *string   `json:"room,omitempty" db:"room"`

	Subject *Subject `json:"subject,omitempty"` // Relation, no db tag
}

// EffectiveRoom returns the event room, falling back to the subject room
// when the event has none.
func (e *Event) EffectiveRoom() string {
	if e.Room != nil && *e.Room != "" {
		return *e.Room
	}
	if e.Subject != nil {
		return e.Subject.Room
	}
	return ""
}

// Assignment defines a piece of work tied to a subject based on the
// 'assignments' table. File fields are opaque metadata: the original
// display name and the local storage path of an optional attachment.
type Assignment struct {
	ID          int64      `json:"id" db:"id"`
	SubjectID   int64      `json:"subjectId" db:"subject_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CreatorID   *int64     `json:"creatorId,omitempty" db:"creator_id"`
	FileName    *string    `json:"fileName,omitempty" db:"file_name"`
	FilePath    *string    `json:"filePath,omitempty" db:"file_path"`

	Subject *Subject `json:"subject,omitempty"` // Relation, no db tag
}
