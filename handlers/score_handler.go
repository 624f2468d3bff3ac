package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Create принимает оценку от назначенного судьи; итог считается на сервере.
func (h *ScoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.CreateScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	score, err := h.scoreService.Create(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, score)
}

// List поддерживает ?eventId=N и ?teamId=N.
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := queryInt(r, "eventId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	teamID, err := queryInt(r, "teamId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	scores, err := h.scoreService.List(r.Context(), services.ListScoresInput{
		EventID: eventID,
		TeamID:  teamID,
	})
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, scores)
}

// Leaderboard — публичный агрегированный рейтинг команд события.
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlParamInt(r, "eventID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	totals, err := h.scoreService.Leaderboard(r.Context(), eventID)
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, totals)
}
