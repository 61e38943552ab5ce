package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
)

// AdminPageController manages the static marketing pages served at
// /page/:slug (about, endorsement guidance, terms, privacy).
type AdminPageController struct {
	pageRepo repository.PageRepository
}

func NewAdminPageController(pageRepo repository.PageRepository) *AdminPageController {
	return &AdminPageController{pageRepo: pageRepo}
}

type pageForm struct {
	Title    string
	Slug     string
	Content  string
	IsActive bool
}

// readPageForm trims the posted fields and normalises the slug so
// "Visa Guidance" and "visa-guidance" resolve to the same page.
func readPageForm(c *fiber.Ctx) (pageForm, error) {
	form := pageForm{
		Title:    strings.TrimSpace(c.FormValue("title")),
		Slug:     slugify(c.FormValue("slug")),
		Content:  c.FormValue("content"),
		IsActive: c.FormValue("is_active") == "on",
	}
	if form.Title == "" || form.Slug == "" {
		return form, fmt.Errorf("title and slug are required")
	}
	return form, nil
}

func (apc *AdminPageController) failToList(c *fiber.Ctx, message string, err error) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message + ": " + err.Error(),
	}
	return flash.WithError(c, fm).Redirect("/admin/pages")
}

func (apc *AdminPageController) loadPage(c *fiber.Ctx) (*models.Page, uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, 0, false
	}
	page, err := apc.pageRepo.GetByID(uint(id))
	if err != nil {
		flash.WithError(c, fiber.Map{"type": "error", "message": "Page not found"})
		return nil, 0, false
	}
	return page, uint(id), true
}

// HandleAdminPages lists every page, active or not.
func (apc *AdminPageController) HandleAdminPages(c *fiber.Ctx) error {
	pages, err := apc.pageRepo.GetAll()
	if err != nil {
		return apc.failToList(c, "Failed to load pages", err)
	}

	return render(c, "admin/pages", fiber.Map{
		"Page":  "admin-pages",
		"Pages": pages,
	})
}

func (apc *AdminPageController) HandleAdminPageCreate(c *fiber.Ctx) error {
	return render(c, "admin/page_edit", fiber.Map{
		"Page":     "admin-pages",
		"EditPage": models.Page{},
		"IsEdit":   false,
	})
}

// HandleAdminPageStore creates a page. Unlike news articles, page slugs
// are part of published URLs, so a collision is an error rather than
// something to suffix away.
func (apc *AdminPageController) HandleAdminPageStore(c *fiber.Ctx) error {
	form, err := readPageForm(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/pages/create")
	}

	taken, err := apc.pageRepo.SlugExists(form.Slug)
	if err != nil {
		return apc.failToList(c, "Failed to check the slug", err)
	}
	if taken {
		fm := fiber.Map{"type": "error", "message": "A page with this slug already exists"}
		return flash.WithError(c, fm).Redirect("/admin/pages/create")
	}

	page := &models.Page{
		Title:     form.Title,
		Slug:      form.Slug,
		Content:   form.Content,
		IsActive:  form.IsActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := apc.pageRepo.Create(page); err != nil {
		fm := fiber.Map{"type": "error", "message": "Failed to create the page: " + err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/pages/create")
	}

	fm := fiber.Map{"type": "success", "message": "Page created"}
	return flash.WithSuccess(c, fm).Redirect("/admin/pages")
}

func (apc *AdminPageController) HandleAdminPageEdit(c *fiber.Ctx) error {
	page, _, ok := apc.loadPage(c)
	if !ok {
		return c.Redirect("/admin/pages")
	}

	return render(c, "admin/page_edit", fiber.Map{
		"Page":     "admin-pages",
		"EditPage": page,
		"IsEdit":   true,
	})
}

func (apc *AdminPageController) HandleAdminPageUpdate(c *fiber.Ctx) error {
	page, id, ok := apc.loadPage(c)
	if !ok {
		return c.Redirect("/admin/pages")
	}
	idParam := c.Params("id")

	form, err := readPageForm(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/pages/edit/" + idParam)
	}

	if form.Slug != page.Slug {
		taken, err := apc.pageRepo.SlugExistsExceptID(form.Slug, id)
		if err != nil {
			return apc.failToList(c, "Failed to check the slug", err)
		}
		if taken {
			fm := fiber.Map{"type": "error", "message": "Another page with this slug already exists"}
			return flash.WithError(c, fm).Redirect("/admin/pages/edit/" + idParam)
		}
	}

	page.Title = form.Title
	page.Slug = form.Slug
	page.Content = form.Content
	page.IsActive = form.IsActive
	page.UpdatedAt = time.Now()

	if err := apc.pageRepo.Update(page); err != nil {
		fm := fiber.Map{"type": "error", "message": "Failed to update the page: " + err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/pages/edit/" + idParam)
	}

	fm := fiber.Map{"type": "success", "message": "Page updated"}
	return flash.WithSuccess(c, fm).Redirect("/admin/pages")
}

// HandleAdminPageDelete removes a page. POST only; a crawler following a
// GET link must not delete content.
func (apc *AdminPageController) HandleAdminPageDelete(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	_, id, ok := apc.loadPage(c)
	if !ok {
		return c.Redirect("/admin/pages")
	}

	if err := apc.pageRepo.Delete(id); err != nil {
		return apc.failToList(c, "Failed to delete the page", err)
	}

	fm := fiber.Map{"type": "success", "message": "Page deleted"}
	return flash.WithSuccess(c, fm).Redirect("/admin/pages")
}

var adminPageController *AdminPageController

func InitializeAdminPageController() {
	adminPageController = NewAdminPageController(repository.GetGlobalFactory().GetPageRepository())
}

func GetAdminPageController() *AdminPageController {
	if adminPageController == nil {
		InitializeAdminPageController()
	}
	return adminPageController
}
