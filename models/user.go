package models

import "time"

// Role — закрытое перечисление ролей, соответствует ENUM в БД.
// Никогда не представляется произвольной строкой на границах слоёв.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
	RoleJudge       Role = "judge"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleParticipant, RoleOrganizer, RoleJudge:
		return true
	}
	return false
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal — аутентифицированный актор запроса, извлекается из JWT.
type Principal struct {
	UserID int
	Name   string
	Role   Role
}
