package entities

import "time"

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UserIDs     []string  `json:"user_ids"`
	CreatedAt   time.Time `json:"created_at"`
}
