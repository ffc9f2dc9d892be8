package services

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"inan-survey-server/config"
	"inan-survey-server/models"
)

// ShareLink holds the public URL of a published poll or schema plus a QR
// encoding of it for offline sharing.
type ShareLink struct {
	URL    string `json:"url"`
	QRCode string `json:"qr_code"` // base64 PNG
}

// SharePathKind maps an entity to its public path segment
func SharePathKind(kind models.FormKind) string {
	if kind == models.KindQuestionnaire {
		return "questionnaires"
	}
	return "feedback"
}

// BuildShareLink builds the deterministic public URL /<kind>/<id> and its QR image
func BuildShareLink(kindSegment, id string) (*ShareLink, error) {
	url := fmt.Sprintf("%s/%s/%s", config.AppConfig.Server.BaseURL, kindSegment, id)

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return &ShareLink{
		URL:    url,
		QRCode: base64.StdEncoding.EncodeToString(png),
	}, nil
}
