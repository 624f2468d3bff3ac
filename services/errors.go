package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrInvalidRole            = errors.New("invalid role value")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrRegistrationNotOpen    = errors.New("event registration is not open")
	ErrSubmissionWindowClosed = errors.New("event submission window is closed")
	ErrJudgingWindowClosed    = errors.New("event judging window is closed")

	// Ошибки конфликтов
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrRegistrationConflict = errors.New("user is already registered for this event")
	ErrTeamMemberConflict   = errors.New("user is already a member of this team")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrNotEventOrganizer      = errors.New("only the event organizer can perform this action")
	ErrJudgeNotAssigned       = errors.New("judge is not assigned to this event")
)
