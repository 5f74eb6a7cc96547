package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"clinicbook/config"
	"clinicbook/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryUploader implements ImageUploader on the Cloudinary upload API.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates a new uploader for the given account.
func NewCloudinaryUploader(cld *cloudinary.Cloudinary, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, folder: folder}
}

// NewFromConfig builds the uploader from application config. It returns nil, nil
// when Cloudinary credentials are not configured, in which case uploads are skipped.
func NewFromConfig() (ImageUploader, error) {
	if !config.CloudinaryConfigured() {
		utils.GetLogger().Warn("Cloudinary credentials not set, image uploads disabled")
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return NewCloudinaryUploader(cld, config.AppConfig.CloudinaryFolder), nil
}

// UploadImage uploads the image into the configured folder and returns its secure URL.
func (s *CloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	params := uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("storage: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no secure URL returned")
	}

	utils.GetLogger().Debug("image uploaded", zap.String("file", filepath.Base(filename)), zap.String("publicId", result.PublicID), zap.String("folder", s.folder))
	return result.SecureURL, nil
}
