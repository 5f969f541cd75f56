package dto

import (
	"time"

	domainuser "stayhub/internal/domain/user"
)

// User is the public profile payload; password material never leaves the
// domain.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func MapUser(u *domainuser.User) User {
	if u == nil {
		return User{}
	}
	return User{
		ID:          string(u.ID),
		Email:       u.Email,
		Name:        u.Name,
		Description: u.Description,
		CreatedAt:   u.CreatedAt,
	}
}
