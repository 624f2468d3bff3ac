package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), principal.UserID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	okResponse(w, user)
}

type changeRoleRequest struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// ChangeRole меняет роль пользователя; доступно только организатору.
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var req changeRoleRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := h.userService.ChangeRole(r.Context(), principal, req.UserID, models.Role(req.Role))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	okResponse(w, user)
}
