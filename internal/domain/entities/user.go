package entities

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FirstLogin   bool      `json:"first_login"`
	TeamIDs      []string  `json:"team_ids"`
	CreatedAt    time.Time `json:"created_at"`
}
