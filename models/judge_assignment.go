package models

import "time"

// JudgeAssignment даёт судье право оценивать конкретное событие.
// Пара (event_id, judge_id) уникальна; создание — upsert.
type JudgeAssignment struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	JudgeID   int       `json:"judge_id"`
	CreatedAt time.Time `json:"created_at"`

	Judge *User  `json:"judge,omitempty"`
	Event *Event `json:"event,omitempty"`
}
