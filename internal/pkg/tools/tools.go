// Package tools holds the compiled-in catalogue of self-serve preparation
// tools: calculators, checklists and document builders. The catalogue is
// static reference data; calculator endpoints call the helpers in
// calculators.go or the scoring engine directly.
package tools

import (
	"sort"
	"strings"
)

// Kind describes how a tool behaves on its detail page.
type Kind string

const (
	KindCalculator Kind = "calculator" // numeric form with a JSON compute endpoint
	KindChecklist  Kind = "checklist"  // tickable item list
	KindBuilder    Kind = "builder"    // guided document/text builder
	KindGuide      Kind = "guide"      // static explainer content
)

// Category groups tools on the index page.
type Category struct {
	Slug string
	Name string
}

// Tool is one catalogue entry. Slug doubles as the URL segment.
type Tool struct {
	Slug        string
	Name        string
	Category    string // Category.Slug
	Kind        Kind
	Description string
	Premium     bool // requires pro or founder plan
}

// Categories returns the fixed category list in display order.
func Categories() []Category {
	return []Category{
		{Slug: "eligibility", Name: "Eligibility & Visa Fit"},
		{Slug: "business-plan", Name: "Business Plan"},
		{Slug: "financials", Name: "Financials"},
		{Slug: "endorsement", Name: "Endorsement"},
		{Slug: "application", Name: "Application & Documents"},
		{Slug: "team", Name: "Team & Hiring"},
		{Slug: "market", Name: "Market & Traction"},
		{Slug: "settling", Name: "Arriving & Settling"},
	}
}

// All returns every tool in catalogue order.
func All() []Tool {
	return catalogue
}

// Get looks a tool up by slug.
func Get(slug string) (Tool, bool) {
	for _, t := range catalogue {
		if t.Slug == slug {
			return t, true
		}
	}
	return Tool{}, false
}

// ByCategory returns the tools of one category in catalogue order.
func ByCategory(categorySlug string) []Tool {
	var out []Tool
	for _, t := range catalogue {
		if t.Category == categorySlug {
			out = append(out, t)
		}
	}
	return out
}

// Search returns tools whose name or description contains the query,
// case-insensitively, sorted by name.
func Search(query string) []Tool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []Tool
	for _, t := range catalogue {
		if strings.Contains(strings.ToLower(t.Name), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
