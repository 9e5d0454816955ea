package models

// Role defines the closed set of account roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the known values
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// CanManageAccounts reports whether the role may create user accounts
func (r Role) CanManageAccounts() bool {
	return r == RoleAdmin
}

// CanManageCatalog reports whether the role may create classes and subjects
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// CanPublish reports whether the role may publish events and assignments
func (r Role) CanPublish() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// CanRespond reports whether the role may RSVP to events and assignments
func (r Role) CanRespond() bool {
	return r == RoleStudent
}

// AttendanceStatus defines the closed set of RSVP statuses
type AttendanceStatus string

const (
	StatusYes   AttendanceStatus = "yes"
	StatusNo    AttendanceStatus = "no"
	StatusMaybe AttendanceStatus = "maybe"
)

// Valid reports whether the status is one of the known values
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusYes, StatusNo, StatusMaybe:
		return true
	}
	return false
}
