package handlers

import (
	"html/template"

	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/seo"
)

// PageData is the view model of the shared layout.
type PageData struct {
	Title     string
	SEO       seo.Meta
	Analytics Analytics

	Lang   string
	Path   string
	Status int
	Nav    []nav.RenderedItem

	// Pre-rendered fragments.
	Breadcrumbs template.HTML
	SideNav     template.HTML
	Body        template.HTML

	// Message is shown on error pages.
	Message string
}

// IsError reports whether the page is an error page.
func (d PageData) IsError() bool { return d.Status >= 400 }
