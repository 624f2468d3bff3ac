package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type AnnouncementHandler struct {
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.CreateAnnouncementInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	ann, err := h.announcementService.Create(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, ann)
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := queryInt(r, "eventId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	announcements, err := h.announcementService.List(r.Context(), eventID)
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, announcements)
}
