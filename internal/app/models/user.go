package models

// User defines the account model based on the 'users' table
type User struct {
	ID           int64   `json:"id" db:"id"`
	Username     string  `json:"username" db:"username"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         Role    `json:"role" db:"role"`
	FullName     *string `json:"fullName,omitempty" db:"full_name"`
}

// DisplayName returns the full name when set, the username otherwise
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}
