package nav

import (
	"fmt"
	"strings"
)

const (
	// RootLabel names the site root in breadcrumbs.
	RootLabel = "Documentation"
	// LearnLabel names the secondary crumb that leads back into the product.
	LearnLabel = "Learn"
)

// PageEntry is a page link below a guide heading in the side navigation.
type PageEntry struct {
	Title  string
	Href   string
	Active bool
}

// GuideEntry is a guide heading in the side navigation.
type GuideEntry struct {
	Slug  string
	Title string
	Href  string
	// Pages is empty for single-page guides: the heading already links to the page.
	Pages []PageEntry
}

// ProductURL is the root URL of a product, e.g. "/hack/".
func ProductURL(product string) string {
	return fmt.Sprintf("/%s/", product)
}

// GuideURL is the root URL of a guide, e.g. "/hack/async/".
func GuideURL(product, guide string) string {
	return fmt.Sprintf("/%s/%s/", product, guide)
}

// PageURL is the URL of a single page, e.g. "/hack/async/introduction".
func PageURL(product, guide, page string) string {
	return fmt.Sprintf("/%s/%s/%s", product, guide, page)
}

// GuidePageTitle computes the display title of a guide page. When the guide and
// page share a name (case-insensitively) or the guide only has one page, the
// guide name alone is used.
func GuidePageTitle(guide, page string, pageCount int) string {
	if strings.EqualFold(guide, page) || pageCount == 1 {
		return TitleCase(guide)
	}
	return CurrentPageLabel(guide, page)
}

// CurrentPageLabel is the "Guide: Page" label. Unlike GuidePageTitle it never collapses.
func CurrentPageLabel(guide, page string) string {
	return TitleCase(guide + ": " + page)
}

// GuideTrail builds the four-level breadcrumb trail of a guide page.
// The "Learn" crumb points at the product root too.
func GuideTrail(product, guide, page string) []Crumb {
	productURL := ProductURL(product)
	return []Crumb{
		{Href: "/", Label: RootLabel, Class: "breadcrumbRoot"},
		{Href: productURL, Label: product, Class: "breadcrumbProductRoot"},
		{Href: productURL, Label: LearnLabel, Class: "breadcrumbSecondaryRoot"},
		{Label: CurrentPageLabel(guide, page), Class: "breadcrumbCurrentPage", Active: true},
	}
}

// BuildGuideEntry computes the side navigation entry of one guide. It reports
// false for guides without pages, which have nothing to link to.
func BuildGuideEntry(product, guide string, pages []string, currentGuide, currentPage string) (GuideEntry, bool) {
	if len(pages) == 0 {
		return GuideEntry{}, false
	}
	entry := GuideEntry{
		Slug:  guide,
		Title: TitleCase(guide),
		Href:  PageURL(product, guide, pages[0]),
	}
	if len(pages) > 1 {
		entry.Pages = make([]PageEntry, 0, len(pages))
		for _, page := range pages {
			entry.Pages = append(entry.Pages, PageEntry{
				Title:  TitleCase(page),
				Href:   PageURL(product, guide, page),
				Active: guide == currentGuide && page == currentPage,
			})
		}
	}
	return entry, true
}
