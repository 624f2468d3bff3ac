package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, team)
}

// List поддерживает ?eventId=N и ?mine=true.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	eventID, err := queryInt(r, "eventId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	teams, err := h.teamService.List(r.Context(), principal, services.ListTeamsInput{
		EventID: eventID,
		Mine:    r.URL.Query().Get("mine") == "true",
	})
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, teams)
}

type inviteRequest struct {
	TeamID int `json:"team_id"`
	UserID int `json:"user_id"`
}

// Invite добавляет пользователя в команду. Повторное приглашение
// идемпотентно.
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.teamService.AddMember(r.Context(), req.TeamID, req.UserID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	okResponse(w, map[string]interface{}{"team_id": req.TeamID, "user_id": req.UserID})
}

type joinRequest struct {
	TeamID int `json:"team_id"`
}

func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var req joinRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.teamService.Join(r.Context(), principal, req.TeamID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	okResponse(w, map[string]interface{}{"team_id": req.TeamID, "user_id": principal.UserID})
}
