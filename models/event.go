package models

import "time"

// EventPhase представляет производное состояние жизненного цикла события.
// Фаза не хранится в БД: она вычисляется по временным окнам на чтении,
// чтобы статус не мог разойтись с таймстемпами.
type EventPhase string

const (
	PhaseDraft              EventPhase = "draft"
	PhasePublished          EventPhase = "published"
	PhaseRegistrationOpen   EventPhase = "registration_open"
	PhaseRegistrationClosed EventPhase = "registration_closed"
	PhaseSubmissionOpen     EventPhase = "submission_open"
	PhaseSubmissionClosed   EventPhase = "submission_closed"
	PhaseJudgingOpen        EventPhase = "judging_open"
	PhaseJudgingClosed      EventPhase = "judging_closed"
	PhaseCompleted          EventPhase = "completed"
)

// Event представляет хакатон с настраиваемыми временными окнами.
type Event struct {
	ID          int     `json:"id"`
	OrganizerID int     `json:"organizer_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Theme       *string `json:"theme,omitempty"`
	Online      bool    `json:"online"`
	Location    *string `json:"location,omitempty"`

	StartAt             time.Time  `json:"start_at"`
	EndAt               time.Time  `json:"end_at"`
	RegistrationOpenAt  *time.Time `json:"registration_open_at,omitempty"`
	RegistrationCloseAt *time.Time `json:"registration_close_at,omitempty"`
	SubmissionOpenAt    *time.Time `json:"submission_open_at,omitempty"`
	SubmissionCloseAt   *time.Time `json:"submission_close_at,omitempty"`
	JudgingStartAt      *time.Time `json:"judging_start_at,omitempty"`
	JudgingEndAt        *time.Time `json:"judging_end_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Organizer         *User `json:"organizer,omitempty"`
	RegistrationCount int   `json:"registration_count,omitempty"`
	TeamCount         int   `json:"team_count,omitempty"`
}

// PhaseOf выводит фазу события на момент now. Единственный источник
// истины для всех проверок жизненного цикла: каждое окно опционально,
// пропущенные окна схлопывают соответствующие фазы.
func PhaseOf(e *Event, now time.Time) EventPhase {
	if now.After(e.EndAt) {
		return PhaseCompleted
	}
	if e.JudgingEndAt != nil && now.After(*e.JudgingEndAt) {
		return PhaseJudgingClosed
	}
	if e.JudgingStartAt != nil && !now.Before(*e.JudgingStartAt) {
		return PhaseJudgingOpen
	}
	if e.SubmissionCloseAt != nil && now.After(*e.SubmissionCloseAt) {
		return PhaseSubmissionClosed
	}
	if e.SubmissionOpenAt != nil && !now.Before(*e.SubmissionOpenAt) {
		return PhaseSubmissionOpen
	}
	if e.RegistrationCloseAt != nil && now.After(*e.RegistrationCloseAt) {
		return PhaseRegistrationClosed
	}
	if e.RegistrationOpenAt != nil && !now.Before(*e.RegistrationOpenAt) {
		return PhaseRegistrationOpen
	}
	if now.Before(e.StartAt) {
		return PhasePublished
	}
	return PhaseRegistrationClosed
}

// RegistrationOpen reports whether a registration may be created at now.
// Если registration_close_at не задан, регистрация возможна до start_at.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.RegistrationOpenAt != nil && now.Before(*e.RegistrationOpenAt) {
		return false
	}
	if e.RegistrationCloseAt != nil {
		return now.Before(*e.RegistrationCloseAt)
	}
	return now.Before(e.StartAt)
}

// SubmissionOpen reports whether a submission may be created at now.
// Окна опциональны: без них подача не ограничена по времени.
func (e *Event) SubmissionOpen(now time.Time) bool {
	if e.SubmissionOpenAt != nil && now.Before(*e.SubmissionOpenAt) {
		return false
	}
	if e.SubmissionCloseAt != nil && now.After(*e.SubmissionCloseAt) {
		return false
	}
	return true
}

// JudgingOpen reports whether a score may be created at now.
func (e *Event) JudgingOpen(now time.Time) bool {
	if e.JudgingStartAt != nil && now.Before(*e.JudgingStartAt) {
		return false
	}
	if e.JudgingEndAt != nil && now.After(*e.JudgingEndAt) {
		return false
	}
	return true
}
