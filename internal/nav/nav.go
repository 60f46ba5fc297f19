package nav

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/hack/"
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry. The current page has no Href.
type Crumb struct {
	Href   string
	Label  string
	Class  string
	Active bool
}

// Build renders navigation items with active state given the current path.
func Build(items []Item, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	itemPath = strings.TrimSuffix(itemPath, "/")
	if itemPath == "" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/hack" or "/hack/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with the documentation root
// - Deeper segments use a title-cased segment label
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: RootLabel, Class: "breadcrumbRoot", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.Trim(clean, "/"), "/")
	href := ""
	for i, part := range parts {
		if part == "" {
			continue
		}
		href += "/" + part
		label := TitleCase(part)
		if i == 0 {
			// products keep their slug, matching the guide page trail
			label = part
		}
		crumbs = append(crumbs, Crumb{
			Href:   href + "/",
			Label:  label,
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

// TitleCase turns a slug into a display title: hyphens become spaces and the
// first character of every space-separated word is upper-cased. The rest of
// each word is left as is, so "3rd" stays "3rd".
func TitleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "-", " "), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
