package domain

import "time"

// UserProfile is the slice of the user-account store this service needs for
// the userinfo endpoint. Account management itself lives elsewhere.
type UserProfile struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}
