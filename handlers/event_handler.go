package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// eventView дополняет событие вычисляемой фазой жизненного цикла.
type eventView struct {
	*models.Event
	Phase models.EventPhase `json:"phase"`
}

func newEventView(e *models.Event, now time.Time) eventView {
	return eventView{Event: e, Phase: models.PhaseOf(e, now)}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	event, err := h.eventService.Create(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, newEventView(event, time.Now()))
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlParamInt(r, "eventID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	event, err := h.eventService.GetByID(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	okResponse(w, newEventView(event, time.Now()))
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	eventID, err := urlParamInt(r, "eventID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.UpdateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	event, err := h.eventService.Update(r.Context(), principal, eventID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	okResponse(w, newEventView(event, time.Now()))
}

// List поддерживает фильтры ?mine=true (события текущего организатора)
// и ?organizerId=N.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	var input services.ListEventsInput

	organizerID, err := queryInt(r, "organizerId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	input.OrganizerID = organizerID

	if r.URL.Query().Get("mine") == "true" {
		principal, err := middleware.GetPrincipalFromContext(r.Context())
		if err != nil {
			unauthorizedResponse(w, "Authentication required")
			return
		}
		input.OrganizerID = &principal.UserID
	}

	events, err := h.eventService.List(r.Context(), input)
	if err != nil {
		listErrorResponse(w, err)
		return
	}

	now := time.Now()
	views := make([]eventView, 0, len(events))
	for _, event := range events {
		views = append(views, newEventView(event, now))
	}
	okResponse(w, views)
}
