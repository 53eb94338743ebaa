// Package imageutil converts image files into the CapturedImage shape the
// core consumes.
package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/diogo/glassai/internal/models"
)

// Load reads an image file and returns it as a CapturedImage. Dimensions are
// probed from the image header; a format the decoder does not know yields
// zero dimensions rather than an error, since the payload is opaque to the
// core anyway.
func Load(path string) (*models.CapturedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img := &models.CapturedImage{
		URI:    path,
		Base64: base64.StdEncoding.EncodeToString(data),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// MimeType guesses the mime type from the file extension, defaulting to JPEG.
func MimeType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// DataURL builds a data URL from an encoded payload.
func DataURL(b64, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, b64)
}
