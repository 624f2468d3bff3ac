package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(registrationService services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

type registerRequest struct {
	EventID int `json:"event_id"`
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	reg, err := h.registrationService.Register(r.Context(), principal, req.EventID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, reg)
}

// List: с ?forEvent=N — участники события (владелец или зарегистрированный),
// без него — регистрации текущего пользователя.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	eventID, err := queryInt(r, "forEvent")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if eventID != nil {
		regs, err := h.registrationService.ListForEvent(r.Context(), principal, *eventID)
		if err != nil {
			listErrorResponse(w, err)
			return
		}
		okResponse(w, regs)
		return
	}

	regs, err := h.registrationService.ListMine(r.Context(), principal)
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, regs)
}
