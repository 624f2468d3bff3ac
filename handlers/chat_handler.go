package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.PostChatMessageInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	msg, err := h.chatService.Post(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, msg)
}

// List поддерживает ?eventId=N и ?teamId=N; история ограничена
// последними сообщениями.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
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

	messages, err := h.chatService.List(r.Context(), services.ListChatInput{
		EventID: eventID,
		TeamID:  teamID,
	})
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, messages)
}
