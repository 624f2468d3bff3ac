package models

import "time"

// Registration связывает пользователя с событием. Пара (user_id, event_id)
// уникальна на уровне БД.
type Registration struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User  *User  `json:"user,omitempty"`
	Event *Event `json:"event,omitempty"`
}
