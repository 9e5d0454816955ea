package models

// Class defines a group of students based on the 'classes' table
type Class struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// Subject defines a course offering based on the 'subjects' table.
// TeacherID and ClassID are optional references; they are not validated
// against existence when a subject is created.
type Subject struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	TeacherID *int64 `json:"teacherId,omitempty" db:"teacher_id"`
	Room      string `json:"room" db:"room"`
	Color     string `json:"color" db:"color"`
	ClassID   *int64 `json:"classId,omitempty" db:"class_id"`

	Teacher *User  `json:"teacher,omitempty"` // Relation, no db tag
	Class   *Class `json:"class,omitempty"`   // Relation, no db tag
}

// DefaultSubjectColor is used when a subject is created without a color tag
const DefaultSubjectColor = "#3498db"
