package pdfwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesValidStructure(t *testing.T) {
	pdf, err := Render("Business Plan", "Hello world.\n\nSecond paragraph.")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Contains(t, string(pdf), "%%EOF")
	assert.Contains(t, string(pdf), "/Type /Page")
}

func TestRenderSplitsLongTextAcrossPages(t *testing.T) {
	body := strings.Repeat("Lorem ipsum dolor sit amet consectetur adipiscing elit. ", 400)
	pdf, err := Render("Long Plan", body)
	require.NoError(t, err)

	s := string(pdf)
	pageCount := strings.Count(s, "/Type /Page") - strings.Count(s, "/Type /Pages")
	assert.Greater(t, pageCount, 1)
}

func TestRenderEmptyBody(t *testing.T) {
	pdf, err := Render("Empty", "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRenderNonLatinPunctuation(t *testing.T) {
	pdf, err := Render("Funding", "Seeking £50,000 — “seed” round.")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
