package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"inan-survey-server/config"
	"inan-survey-server/utils"
)

const maxBannerSize = 5 * 1024 * 1024 // 5MB

var allowedBannerTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateImageFile validates the declared content type and size (<= 5MB)
func ValidateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > maxBannerSize {
		return false
	}
	mediaType := h.Header.Get("Content-Type")
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return allowedBannerTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

func newCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}
	return cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
}

// UploadBanner uploads the banner image and returns its public URL. Transient
// upload failures are retried with bounded backoff.
func UploadBanner(ctx context.Context, header *multipart.FileHeader) (string, error) {
	cld, err := newCloudinary()
	if err != nil {
		return "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	var url string
	err = utils.RetryOperation(func() error {
		// Rewind so a retried attempt uploads the whole file
		if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
			return seekErr
		}
		result, uploadErr := cld.Upload.Upload(ctx, file, uploader.UploadParams{
			Folder:   "survey-banners",
			PublicID: strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)),
		})
		if uploadErr != nil {
			return uploadErr
		}
		url = result.SecureURL
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// DeleteBanner best-effort deletes a superseded banner object. Failure is
// logged, never fatal: it must not block the settings save.
func DeleteBanner(ctx context.Context, bannerURL string) {
	if bannerURL == "" {
		return
	}
	cld, err := newCloudinary()
	if err != nil {
		log.Printf("⚠️ Skipping old banner cleanup: %v", err)
		return
	}

	publicID := bannerPublicID(bannerURL)
	if publicID == "" {
		return
	}

	if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		log.Printf("⚠️ Failed to delete old banner %s: %v", publicID, err)
	}
}

// bannerPublicID extracts the Cloudinary public id ("survey-banners/<name>")
// from a delivery URL.
func bannerPublicID(url string) string {
	idx := strings.Index(url, "survey-banners/")
	if idx < 0 {
		return ""
	}
	id := url[idx:]
	return strings.TrimSuffix(id, filepath.Ext(id))
}
