package storage

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/biteflow/restaurant-service/internal/config"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned when uploads are attempted without Cloudinary credentials
var ErrNotConfigured = errors.New("image storage is not configured")

// Uploader is the part of the Cloudinary upload API the store needs
type Uploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryStore uploads images under a base folder
type CloudinaryStore struct {
	uploader Uploader
	folder   string
}

func NewCloudinaryStore(uploader Uploader, folder string) *CloudinaryStore {
	return &CloudinaryStore{uploader: uploader, folder: folder}
}

// NewCloudinaryStoreFromConfig builds a store from account credentials
func NewCloudinaryStoreFromConfig(cfg config.Cloudinary) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrNotConfigured
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return NewCloudinaryStore(&cld.Upload, cfg.Folder), nil
}

// Upload stores img in the base folder, or in subfolder below it when given
func (s *CloudinaryStore) Upload(ctx context.Context, subfolder string, img models.ImageUpload) (*models.StoredImage, error) {
	if img.File == nil {
		return nil, errors.New("no image file")
	}

	folder := s.folder
	if subfolder != "" {
		folder = path.Join(s.folder, subfolder)
	}

	result, err := s.uploader.Upload(ctx, img.File, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		UniqueFilename: boolPtr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", img.Filename, err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload %s: %s", img.Filename, result.Error.Message)
	}

	return &models.StoredImage{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Disabled rejects every upload; used when credentials are missing so the rest of the API still serves
type Disabled struct{}

func (Disabled) Upload(context.Context, string, models.ImageUpload) (*models.StoredImage, error) {
	return nil, ErrNotConfigured
}

func boolPtr(b bool) *bool {
	return &b
}
