package service

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ─────────────────────────────────────────────────────────────
// Upload Service — file upload collaborator for media blocks and covers
// ─────────────────────────────────────────────────────────────

// UploadService stores uploaded files on disk and hands back a url. The
// engine stores only the url; an upload failure leaves the block without
// one and never corrupts document state.
type UploadService struct {
	dataDir string
}

// NewUploadService creates an UploadService rooted at dataDir.
func NewUploadService(dataDir string) *UploadService {
	return &UploadService{dataDir: dataDir}
}

// Upload writes the file under the page's upload directory and returns a
// file:// url.
func (s *UploadService) Upload(pageID, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.dataDir, "uploads", pageID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir for upload: %w", err)
	}
	ext := filepath.Ext(filename)
	path := filepath.Join(dir, uuid.New().String()+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "file://" + path, nil
}

// UploadDataURL decodes a base64 data-URL payload and stores it.
func (s *UploadService) UploadDataURL(pageID, dataURL string) (string, error) {
	data, ext, err := decodeDataURL(dataURL)
	if err != nil {
		return "", fmt.Errorf("decode upload: %w", err)
	}
	return s.Upload(pageID, "upload"+ext, data)
}

// decodeDataURL splits "data:<mime>;base64,<payload>" into bytes and a
// file extension guessed from the mime type.
func decodeDataURL(dataURL string) ([]byte, string, error) {
	const marker = ";base64,"
	idx := strings.Index(dataURL, marker)
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return nil, "", fmt.Errorf("not a base64 data url")
	}
	mime := dataURL[len("data:"):idx]
	data, err := base64.StdEncoding.DecodeString(dataURL[idx+len(marker):])
	if err != nil {
		return nil, "", err
	}
	ext := ".bin"
	switch mime {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	}
	return data, ext, nil
}
