package handler

import (
	"errors"
	"net/http"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/middleware"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
)

// maxUploadSize caps multipart bodies, image included
const maxUploadSize = 5 << 20

const imageField = "image"

// requireUser returns the session user or writes Unauthenticated
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.Error(w, apperr.Unauthenticated("Not Authorized"))
		return uuid.Nil, false
	}
	return userID, true
}

// parseMultipart reads a form of at most maxUploadSize. Url-encoded bodies
// are accepted too, they simply carry no image.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	err := r.ParseMultipartForm(maxUploadSize)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Validation("File too large, the limit is 5MB")
	}
	return apperr.Validation("Invalid form data")
}

// formValue returns nil when the field was not sent at all
func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

// formImage returns the uploaded image, or nil when none was sent.
// The caller must run the returned close func once the upload is done.
func formImage(r *http.Request) (*models.ImageUpload, func(), error) {
	file, header, err := r.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperr.Validation("Invalid form data")
	}

	return &models.ImageUpload{Filename: header.Filename, File: file}, func() { file.Close() }, nil
}
