package models

import "time"

type Team struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	Name      string    `json:"name"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Members []TeamMember `json:"members,omitempty"`
}

type TeamMember struct {
	ID        int       `json:"id"`
	TeamID    int       `json:"team_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty"`
}
