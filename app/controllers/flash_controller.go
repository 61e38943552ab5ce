package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
)

// HandleFlashUploadRateLimit sets a flash error and redirects to the dashboard
func HandleFlashUploadRateLimit(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "error",
		"message": "Upload limit reached. Please wait a moment and try again.",
	}
	flash.WithError(c, fm)
	return c.Redirect("/user/dashboard", fiber.StatusSeeOther)
}

// HandleFlashUploadDuplicate sets an info flash and redirects to the given view URL
// Query: ?view=/user/plans/<uuid>
func HandleFlashUploadDuplicate(c *fiber.Ctx) error {
	view := c.Query("view", "/user/dashboard")
	fm := fiber.Map{
		"type":    "info",
		"message": "You have already uploaded this document.",
	}
	flash.WithInfo(c, fm)
	return c.Redirect(view, fiber.StatusSeeOther)
}

// HandleFlashUploadError shows a generic upload error from query string
// Query: ?msg=...
func HandleFlashUploadError(c *fiber.Ctx) error {
	msg := c.Query("msg", "Upload failed. Please try again.")
	if len(msg) > 300 {
		msg = msg[:300]
	}
	fm := fiber.Map{
		"type":    "error",
		"message": msg,
	}
	flash.WithError(c, fm)
	return c.Redirect("/user/dashboard", fiber.StatusSeeOther)
}
