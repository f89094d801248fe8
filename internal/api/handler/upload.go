package handler

import (
	"net/http"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/service"
)

// UploadHandler serves the standalone image upload
type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload stores the multipart "image" field and returns its URL
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	image, closeImage, ok := readForm(w, r)
	if !ok {
		return
	}
	defer closeImage()

	stored, err := h.uploadService.UploadImage(r.Context(), image)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Success(w, http.StatusOK, "Image uploaded successfully", api.Data{
		"imageUrl": stored.URL,
		"publicId": stored.PublicID,
	})
}
