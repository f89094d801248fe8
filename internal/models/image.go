package models

import "io"

// ImageUpload is an image file received from a multipart form
type ImageUpload struct {
	Filename string
	File     io.Reader
}

// StoredImage is the result of pushing an image to object storage
type StoredImage struct {
	URL      string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}
