package seo

import (
	"encoding/json"
	"html/template"
	"strings"

	"finitefield.org/hanko-docs/internal/nav"
)

// JSON marshals v for a ld+json script block. It returns "" on error.
// encoding/json escapes <, > and & so the result cannot close the script element.
func JSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// TechArticle describes a documentation page.
func TechArticle(headline, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "TechArticle",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds a schema.org BreadcrumbList. Items without a URL omit "item".
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		entry := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.Item != "" {
			entry["item"] = it.Item
		}
		el = append(el, entry)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// TrailItems converts a breadcrumb trail to list items. The crumb without a
// link, the current page, gets currentPath. Paths are made absolute against siteURL when it is set.
func TrailItems(siteURL string, crumbs []nav.Crumb, currentPath string) []BreadcrumbItem {
	items := make([]BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		href := c.Href
		if href == "" {
			href = currentPath
		}
		items = append(items, BreadcrumbItem{Name: c.Label, Item: Absolute(siteURL, href)})
	}
	return items
}

// Absolute joins siteURL and a root-relative path. With an empty siteURL the path is returned unchanged.
func Absolute(siteURL, path string) string {
	if siteURL == "" || path == "" {
		return path
	}
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(path, "/")
}
