package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type QuestionHandler struct {
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.AskQuestionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	q, err := h.questionService.Ask(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, q)
}

// Answer отвечает на вопрос; только организатор.
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.AnswerQuestionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	q, err := h.questionService.Answer(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	okResponse(w, q)
}

func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := queryInt(r, "eventId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	questions, err := h.questionService.List(r.Context(), eventID)
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, questions)
}
