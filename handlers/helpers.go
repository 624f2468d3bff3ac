package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/hackathon-system/services"
)

// envelope — единый формат ответа API: {success, data?, message?}.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // Ошибка программиста: dst не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	js, err := json.Marshal(env)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func okResponse(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func createdResponse(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter) {
	errorResponse(w, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusForbidden, message)
}

// degradedListResponse — деградация чтения: при недоступности хранилища
// списочные эндпоинты отвечают 200 с пустым списком вместо ошибки.
func degradedListResponse(w http.ResponseWriter, err error) {
	slog.Error("storage unavailable, degrading to empty list", "error", err)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    []struct{}{},
		Message: "Database temporarily unavailable, showing empty list",
	})
}

// listErrorResponse применяет деградацию чтения к списочным эндпоинтам:
// доменные ошибки (доступ, not found) маппятся как обычно, а
// инфраструктурные сбои хранилища превращаются в пустой список.
func listErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, services.ErrNotEventOrganizer):
		mapServiceErrorToHTTP(w, err)
	default:
		degradedListResponse(w, err)
	}
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы.
func mapServiceErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	// Ресурс не найден
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrSubmissionNotFound):
		notFoundResponse(w)

	// Конфликты
	case errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrRegistrationConflict),
		errors.Is(err, services.ErrTeamMemberConflict):
		conflictResponse(w, err.Error())

	// Невалидные данные / бизнес-правила
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrRegistrationNotOpen),
		errors.Is(err, services.ErrSubmissionWindowClosed),
		errors.Is(err, services.ErrJudgingWindowClosed),
		errors.Is(err, services.ErrEventNameRequired),
		errors.Is(err, services.ErrEventDatesRequired),
		errors.Is(err, services.ErrEventInvalidDateRange),
		errors.Is(err, services.ErrEventInvalidRegWindow),
		errors.Is(err, services.ErrEventInvalidSubWindow),
		errors.Is(err, services.ErrEventInvalidJudgeWindow),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrJudgeEmailRequired),
		errors.Is(err, services.ErrScoreCriteriaRequired),
		errors.Is(err, services.ErrSubmissionTitleRequired),
		errors.Is(err, services.ErrSubmissionRepoRequired),
		errors.Is(err, services.ErrAnnouncementFieldsRequired),
		errors.Is(err, services.ErrQuestionTextRequired),
		errors.Is(err, services.ErrQuestionAnswerRequired),
		errors.Is(err, services.ErrChatContentRequired):
		badRequestResponse(w, err)

	// Аутентификация и доступ
	case errors.Is(err, services.ErrAuthInvalidCredentials):
		unauthorizedResponse(w, err.Error())
	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, services.ErrNotEventOrganizer),
		errors.Is(err, services.ErrJudgeNotAssigned):
		forbiddenResponse(w, err.Error())

	default:
		serverErrorResponse(w, err)
	}
}

// urlParamInt читает числовой chi URL-параметр.
func urlParamInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return value, nil
}

// queryInt читает необязательный числовой query-параметр; nil, если не задан.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return &value, nil
}
