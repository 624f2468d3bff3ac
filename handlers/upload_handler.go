package handlers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/hackathon-system/storage"
)

// Максимальный размер файла после декодирования — 10MB.
const maxUploadSize = 10 << 20

type UploadHandler struct {
	uploader storage.FileUploader
}

func NewUploadHandler(uploader storage.FileUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

type uploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload принимает файл в base64 и кладёт его в объектное хранилище
// под случайным ключом.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}
	if req.Filename == "" || req.Data == "" {
		badRequestResponse(w, errors.New("filename and data are required"))
		return
	}

	// Допускаем data URL вида "data:<type>;base64,<payload>".
	raw := req.Data
	if idx := strings.Index(raw, ";base64,"); idx >= 0 {
		raw = raw[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		badRequestResponse(w, errors.New("data must be valid base64"))
		return
	}
	if len(data) > maxUploadSize {
		badRequestResponse(w, fmt.Errorf("file must not be larger than %d bytes", maxUploadSize))
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), path.Ext(req.Filename))
	result, err := h.uploader.Upload(r.Context(), key, contentType, bytes.NewReader(data))
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	createdResponse(w, uploadResponse{Key: result.Key, URL: result.Location})
}
