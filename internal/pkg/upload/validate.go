package upload

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

var allowedExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	// Note: HTML/SVG are intentionally excluded due to XSS risk
}

var allowedMime = map[string]bool{
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/png":  true,
	"image/jpeg": true,
}

// zip magic, shared by docx and other OOXML containers
var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// ValidateDocumentBySniff checks the provided filename (extension) and the
// first bytes (head) against a whitelist of evidence document types.
// Returns the detected mime or an error.
func ValidateDocumentBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", errors.New("only PDF, DOC, DOCX, PNG and JPG files are supported")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		return "", errors.New("SVG/XML files are not supported for security reasons")
	}

	// DOCX is a zip container; DetectContentType reports application/zip.
	if ext == ".docx" && (detected == "application/zip" || bytes.HasPrefix(head, zipMagic)) {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
	}

	// Legacy .doc files use the OLE compound format, sniffed as octet-stream.
	if detected == "application/octet-stream" && allowedExt[ext] {
		return detected, nil
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", errors.New("the file type is not supported")
}
