package domain

import "time"

// Session is one row of refresh-token history for a user. Every login or
// refresh appends a new row; logout blanks RefreshToken instead of deleting.
// A refresh token is valid only while some row's RefreshToken matches it
// exactly.
type Session struct {
	ID           int64
	UserID       int64
	RefreshToken string
	CreatedAt    time.Time
}
