package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectKey(t *testing.T) {
	cfg := &Config{BucketName: "visapilot-docs"}

	key := cfg.GetObjectKey("0f8fad5b-d9cb-469f-a165-70867728950e", ".pdf", 2026, 3)
	assert.Equal(t, "documents/2026/03/0f8fad5b-d9cb-469f-a165-70867728950e.pdf", key)

	// extension without dot is normalized
	key = cfg.GetObjectKey("abc", "docx", 2025, 12)
	assert.Equal(t, "documents/2025/12/abc.docx", key)

	// no extension
	key = cfg.GetObjectKey("abc", "", 2025, 1)
	assert.Equal(t, "documents/2025/01/abc", key)
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", getContentType(".pdf"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", getContentType(".docx"))
	assert.Equal(t, "application/octet-stream", getContentType(".zip"))
}
