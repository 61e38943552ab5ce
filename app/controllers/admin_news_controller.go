package controllers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/app/repository"
)

// AdminNewsController manages the product-update articles shown on /news
// (release notes, Home Office rule-change announcements and the like).
type AdminNewsController struct {
	newsRepo repository.NewsRepository
}

func NewAdminNewsController(newsRepo repository.NewsRepository) *AdminNewsController {
	return &AdminNewsController{newsRepo: newsRepo}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a title, e.g.
// "April 2026 endorsement fee update" -> "april-2026-endorsement-fee-update".
func slugify(title string) string {
	s := slugCleaner.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// articleForm holds the posted fields, trimmed and with the slug derived
// from the title when the editor left it blank.
type articleForm struct {
	Title     string
	Content   string
	Slug      string
	Published bool
}

func readArticleForm(c *fiber.Ctx) (articleForm, error) {
	form := articleForm{
		Title:     strings.TrimSpace(c.FormValue("title")),
		Content:   strings.TrimSpace(c.FormValue("content")),
		Slug:      strings.TrimSpace(c.FormValue("slug")),
		Published: c.FormValue("published") == "1",
	}
	if form.Slug == "" {
		form.Slug = slugify(form.Title)
	}
	if form.Title == "" || form.Content == "" || form.Slug == "" {
		return form, fmt.Errorf("title and content are required")
	}
	return form, nil
}

func (anc *AdminNewsController) failToList(c *fiber.Ctx, message string, err error) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message + ": " + err.Error(),
	}
	return flash.WithError(c, fm).Redirect("/admin/news")
}

// HandleAdminNews lists all articles, drafts included.
func (anc *AdminNewsController) HandleAdminNews(c *fiber.Ctx) error {
	newsList, err := anc.newsRepo.GetAllWithoutPagination()
	if err != nil {
		return anc.failToList(c, "Failed to load articles", err)
	}

	return render(c, "admin/news", fiber.Map{
		"Page":     "admin-news",
		"NewsList": newsList,
	})
}

func (anc *AdminNewsController) HandleAdminNewsCreate(c *fiber.Ctx) error {
	return render(c, "admin/news_create", fiber.Map{
		"Page": "admin-news",
	})
}

// HandleAdminNewsStore creates an article. A colliding slug gets a
// timestamp suffix instead of failing the save.
func (anc *AdminNewsController) HandleAdminNewsStore(c *fiber.Ctx) error {
	authorID := uint64(c.Locals(USER_ID).(uint))

	form, err := readArticleForm(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/news/create")
	}

	taken, err := anc.newsRepo.SlugExists(form.Slug)
	if err != nil {
		return anc.failToList(c, "Failed to check the slug", err)
	}
	if taken {
		form.Slug = fmt.Sprintf("%s-%d", form.Slug, time.Now().Unix())
	}

	news := &models.News{
		Title:     form.Title,
		Content:   form.Content,
		Slug:      form.Slug,
		Published: form.Published,
		UserID:    authorID,
	}
	if err := anc.newsRepo.Create(news); err != nil {
		fm := fiber.Map{"type": "error", "message": "Failed to create the article: " + err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/news/create")
	}

	fm := fiber.Map{"type": "success", "message": "Article created"}
	return flash.WithSuccess(c, fm).Redirect("/admin/news")
}

func (anc *AdminNewsController) loadArticle(c *fiber.Ctx) (*models.News, uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, 0, false
	}
	news, err := anc.newsRepo.GetByID(uint(id))
	if err != nil {
		flash.WithError(c, fiber.Map{"type": "error", "message": "Article not found"})
		return nil, 0, false
	}
	return news, uint(id), true
}

func (anc *AdminNewsController) HandleAdminNewsEdit(c *fiber.Ctx) error {
	news, _, ok := anc.loadArticle(c)
	if !ok {
		return c.Redirect("/admin/news")
	}

	return render(c, "admin/news_edit", fiber.Map{
		"Page": "admin-news",
		"News": news,
	})
}

// HandleAdminNewsUpdate saves edits. The slug is only re-checked for
// collisions when the editor changed it.
func (anc *AdminNewsController) HandleAdminNewsUpdate(c *fiber.Ctx) error {
	news, id, ok := anc.loadArticle(c)
	if !ok {
		return c.Redirect("/admin/news")
	}
	idParam := c.Params("id")

	form, err := readArticleForm(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/news/edit/" + idParam)
	}

	if form.Slug != news.Slug {
		taken, err := anc.newsRepo.SlugExistsExceptID(form.Slug, id)
		if err != nil {
			return anc.failToList(c, "Failed to check the slug", err)
		}
		if taken {
			form.Slug = fmt.Sprintf("%s-%d", form.Slug, time.Now().Unix())
		}
	}

	news.Title = form.Title
	news.Content = form.Content
	news.Slug = form.Slug
	news.Published = form.Published

	if err := anc.newsRepo.Update(news); err != nil {
		fm := fiber.Map{"type": "error", "message": "Failed to update the article: " + err.Error()}
		return flash.WithError(c, fm).Redirect("/admin/news/edit/" + idParam)
	}

	fm := fiber.Map{"type": "success", "message": "Article updated"}
	return flash.WithSuccess(c, fm).Redirect("/admin/news")
}

func (anc *AdminNewsController) HandleAdminNewsDelete(c *fiber.Ctx) error {
	_, id, ok := anc.loadArticle(c)
	if !ok {
		return c.Redirect("/admin/news")
	}

	if err := anc.newsRepo.Delete(id); err != nil {
		return anc.failToList(c, "Failed to delete the article", err)
	}

	fm := fiber.Map{"type": "success", "message": "Article deleted"}
	return flash.WithSuccess(c, fm).Redirect("/admin/news")
}

var adminNewsController *AdminNewsController

func InitializeAdminNewsController() {
	adminNewsController = NewAdminNewsController(repository.GetGlobalFactory().GetNewsRepository())
}

func GetAdminNewsController() *AdminNewsController {
	if adminNewsController == nil {
		InitializeAdminNewsController()
	}
	return adminNewsController
}
