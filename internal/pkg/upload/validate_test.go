package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocumentBySniff(t *testing.T) {
	pdfHead := []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj")
	mime, err := ValidateDocumentBySniff("business-plan.pdf", pdfHead)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	docxHead := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00}
	mime, err = ValidateDocumentBySniff("cv.docx", docxHead)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", mime)

	pngHead := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	mime, err = ValidateDocumentBySniff("pitch-deck.png", pngHead)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestValidateDocumentBySniffRejects(t *testing.T) {
	// disallowed extension
	_, err := ValidateDocumentBySniff("script.exe", []byte{0x4D, 0x5A})
	assert.Error(t, err)

	// html masquerading as pdf
	_, err = ValidateDocumentBySniff("evil.pdf", []byte("<html><script>alert(1)</script>"))
	assert.Error(t, err)

	// svg is blocked
	_, err = ValidateDocumentBySniff("logo.png", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	assert.Error(t, err)
}
