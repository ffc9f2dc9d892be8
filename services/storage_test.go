package services

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func bannerHeader(contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: "banner.bin",
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name   string
		header *multipart.FileHeader
		valid  bool
	}{
		{"jpeg", bannerHeader("image/jpeg", 1024), true},
		{"png", bannerHeader("image/png", 1024), true},
		{"webp", bannerHeader("image/webp", 1024), true},
		{"content type with parameters", bannerHeader("image/png; charset=binary", 1024), true},
		{"uppercase content type", bannerHeader("IMAGE/PNG", 1024), true},
		{"gif rejected", bannerHeader("image/gif", 1024), false},
		{"pdf rejected", bannerHeader("application/pdf", 1024), false},
		{"missing content type", bannerHeader("", 1024), false},
		{"over the size limit", bannerHeader("image/png", maxBannerSize+1), false},
		{"at the size limit", bannerHeader("image/png", maxBannerSize), true},
		{"empty file", bannerHeader("image/png", 0), false},
		{"nil header", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateImageFile(tt.header); got != tt.valid {
				t.Errorf("ValidateImageFile() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestBannerPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1/survey-banners/spring.png", "survey-banners/spring"},
		{"https://res.cloudinary.com/demo/image/upload/v1/other/spring.png", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := bannerPublicID(tt.url); got != tt.want {
			t.Errorf("bannerPublicID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
