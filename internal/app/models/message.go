package models

import "time"

// Message defines an internal notification based on the 'messages' table.
// The read flag only ever transitions false to true.
type Message struct {
	ID         int64     `json:"id" db:"id"`
	ToUserID   int64     `json:"toUserId" db:"to_user_id"`
	FromUserID *int64    `json:"fromUserId,omitempty" db:"from_user_id"`
	Subject    string    `json:"subject" db:"subject"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Read       bool      `json:"read" db:"read"`
}
