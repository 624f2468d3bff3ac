package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type JudgeHandler struct {
	judgeService services.JudgeService
}

func NewJudgeHandler(judgeService services.JudgeService) *JudgeHandler {
	return &JudgeHandler{judgeService: judgeService}
}

// Assign назначает судью на событие по email; только владелец события.
func (h *JudgeHandler) Assign(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.AssignJudgeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	assignment, err := h.judgeService.Assign(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, assignment)
}

// List поддерживает ?eventId=N и ?judgeId=N.
func (h *JudgeHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := queryInt(r, "eventId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	judgeID, err := queryInt(r, "judgeId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	assignments, err := h.judgeService.List(r.Context(), services.ListAssignmentsInput{
		EventID: eventID,
		JudgeID: judgeID,
	})
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, assignments)
}

// MyAssignments — события, на которые назначен текущий судья.
func (h *JudgeHandler) MyAssignments(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	assignments, err := h.judgeService.MyAssignments(r.Context(), principal)
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, assignments)
}
