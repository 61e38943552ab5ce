package controllers

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func newFormCtx(app *fiber.App, values url.Values) *fiber.Ctx {
	fctx := &fasthttp.RequestCtx{}
	fctx.Request.Header.SetMethod(fiber.MethodPost)
	fctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
	fctx.Request.SetBodyString(values.Encode())
	return app.AcquireCtx(fctx)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "innovator-founder-fee-update", slugify("Innovator Founder: Fee Update!"))
	assert.Equal(t, "april-2026-rule-changes", slugify("  April 2026  Rule Changes  "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestReadArticleFormDerivesSlugFromTitle(t *testing.T) {
	app := fiber.New()
	c := newFormCtx(app, url.Values{
		"title":   {"Endorsing Body Capacity Update"},
		"content": {"The list of endorsing bodies changed."},
	})
	defer app.ReleaseCtx(c)

	form, err := readArticleForm(c)
	assert.NoError(t, err)
	assert.Equal(t, "endorsing-body-capacity-update", form.Slug)
}

func TestReadArticleFormRequiresTitleAndContent(t *testing.T) {
	app := fiber.New()
	c := newFormCtx(app, url.Values{"title": {"   "}})
	defer app.ReleaseCtx(c)

	_, err := readArticleForm(c)
	assert.Error(t, err)
}

func TestReadPageFormNormalisesSlug(t *testing.T) {
	app := fiber.New()
	c := newFormCtx(app, url.Values{
		"title":     {"Endorsement Guidance"},
		"slug":      {"Endorsement Guidance"},
		"content":   {"How endorsement works."},
		"is_active": {"on"},
	})
	defer app.ReleaseCtx(c)

	form, err := readPageForm(c)
	assert.NoError(t, err)
	assert.Equal(t, "endorsement-guidance", form.Slug)
	assert.True(t, form.IsActive)
}

func TestReadPageFormRequiresTitleAndSlug(t *testing.T) {
	app := fiber.New()
	c := newFormCtx(app, url.Values{
		"title":   {"Terms"},
		"slug":    {"---"},
		"content": {"x"},
	})
	defer app.ReleaseCtx(c)

	_, err := readPageForm(c)
	assert.Error(t, err)
}
