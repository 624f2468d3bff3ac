package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/services"
)

type CertificateHandler struct {
	certificateService services.CertificateService
}

func NewCertificateHandler(certificateService services.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

// Generate выпускает сертификат одному получателю; только владелец события.
func (h *CertificateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var input services.GenerateCertificateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	cert, err := h.certificateService.Generate(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, cert)
}

type bulkCertificatesRequest struct {
	EventID int `json:"event_id"`
}

// Bulk выпускает сертификаты всем зарегистрированным участникам события.
func (h *CertificateHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "Authentication required")
		return
	}

	var req bulkCertificatesRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.certificateService.Bulk(r.Context(), principal, req.EventID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	createdResponse(w, result)
}

func (h *CertificateHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlParamInt(r, "eventID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	certs, err := h.certificateService.List(r.Context(), eventID)
	if err != nil {
		listErrorResponse(w, err)
		return
	}
	okResponse(w, certs)
}
