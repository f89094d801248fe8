package service

import (
	"context"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/models"
)

// UploadService stores standalone images in the base folder
type UploadService struct {
	images ImageStore
}

func NewUploadService(images ImageStore) *UploadService {
	return &UploadService{images: images}
}

// UploadImage stores an image under the root folder
func (s *UploadService) UploadImage(ctx context.Context, image *models.ImageUpload) (*models.StoredImage, error) {
	if image == nil {
		return nil, apperr.Validation("No file uploaded")
	}

	stored, err := s.images.Upload(ctx, "", *image)
	if err != nil {
		return nil, internal("upload image", err)
	}

	return stored, nil
}
