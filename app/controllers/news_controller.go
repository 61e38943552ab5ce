package controllers

import (
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
)

// HandleNewsIndex renders the public news page
func HandleNewsIndex(c *fiber.Ctx) error {
	var newsList []models.News
	result := database.GetDB().Preload("User").Where("published = ?", true).Order("created_at DESC").Find(&newsList)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch news articles")
	}

	return render(c, "news/index", fiber.Map{
		"Title":           "News",
		"MetaDescription": "Product updates and UK visa policy news from VisaPilot",
		"NewsList":        newsList,
	})
}

// HandleNewsShow renders a single news article
func HandleNewsShow(c *fiber.Ctx) error {
	newsSlug := c.Params("slug")

	var news models.News
	result := database.GetDB().Preload("User").Where("slug = ? AND published = ?", newsSlug, true).First(&news)
	if result.Error != nil {
		return c.Status(fiber.StatusNotFound).SendString("News article not found")
	}

	return render(c, "news/show", fiber.Map{
		"Title":           news.Title,
		"MetaDescription": stripHTMLAndTruncate(news.Content, 150),
		"News":            news,
		"Content":         template.HTML(news.Content),
	})
}

// Helper function to strip HTML and truncate content for meta descriptions
func stripHTMLAndTruncate(html string, maxLength int) string {
	// Very basic HTML stripping - in a real app you'd want a proper HTML parser
	text := strings.ReplaceAll(html, "<br>", " ")
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", " ")
	text = strings.ReplaceAll(text, "<div>", "")
	text = strings.ReplaceAll(text, "</div>", " ")

	// Remove other HTML tags
	var result strings.Builder
	var inTag bool
	for _, r := range text {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}

	// Truncate to maxLength
	stripped := result.String()
	if len(stripped) <= maxLength {
		return stripped
	}

	return stripped[:maxLength]
}
