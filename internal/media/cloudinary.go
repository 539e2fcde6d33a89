package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned when photo uploads are attempted without
// a configured storage backend.
var ErrNotConfigured = errors.New("media storage not configured")

// Uploader stores a file and returns an opaque URL reference to it.
type Uploader interface {
	Store(ctx context.Context, file io.Reader) (string, error)
}

// CloudinaryStorage uploads incident photos to Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudinaryURL, folder string) (*CloudinaryStorage, error) {
	if cloudinaryURL == "" {
		return nil, ErrNotConfigured
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}

	return &CloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStorage) Store(ctx context.Context, file io.Reader) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, nil
}
