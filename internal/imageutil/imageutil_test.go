package imageutil

import (
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestPNG(t, 8, 6)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if img.URI != path {
		t.Errorf("URI = %q, want %q", img.URI, path)
	}
	if img.Width != 8 || img.Height != 6 {
		t.Errorf("dimensions = %dx%d, want 8x6", img.Width, img.Height)
	}

	raw, err := base64.StdEncoding.DecodeString(img.Base64)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	want, _ := os.ReadFile(path)
	if string(raw) != string(want) {
		t.Error("decoded payload differs from the file contents")
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	os.WriteFile(path, []byte("not an image"), 0o600)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Payload still carried; dimensions simply unknown
	if img.Base64 == "" {
		t.Error("payload missing")
	}
	if img.Width != 0 || img.Height != 0 {
		t.Errorf("dimensions = %dx%d, want 0x0", img.Width, img.Height)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMimeType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"shot.png", "image/png"},
		{"anim.gif", "image/gif"},
		{"modern.webp", "image/webp"},
		{"mystery.bin", "image/jpeg"},
		{"noext", "image/jpeg"},
	}

	for _, tt := range tests {
		if got := MimeType(tt.path); got != tt.want {
			t.Errorf("MimeType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDataURL(t *testing.T) {
	got := DataURL("aGVsbG8=", "image/png")
	want := "data:image/png;base64,aGVsbG8="
	if got != want {
		t.Errorf("DataURL = %q, want %q", got, want)
	}

	if got := DataURL("aGVsbG8=", ""); !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Errorf("default mime type not applied: %q", got)
	}
}
