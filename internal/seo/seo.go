// Package seo builds page metadata and schema.org structured data.
package seo

import "html/template"

type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
	SiteName    string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	JSONLD      []template.JS
}

// SiteName is used for og:site_name and the title suffix.
const SiteName = "Hack & HHVM Documentation"

// PageMeta fills the common fields for a page. The canonical URL is only set
// when siteURL is known.
func PageMeta(siteURL, title, path string) Meta {
	full := title
	if full == "" {
		full = SiteName
	} else {
		full = title + " | " + SiteName
	}
	canonical := ""
	if siteURL != "" {
		canonical = Absolute(siteURL, path)
	}
	return Meta{
		Title:     full,
		Canonical: canonical,
		OG: OpenGraph{
			Title:    title,
			Type:     "article",
			URL:      canonical,
			SiteName: SiteName,
		},
	}
}

// NoIndex marks error pages so crawlers skip them.
func (m Meta) NoIndex() Meta {
	m.Robots = "noindex"
	return m
}

// WithJSONLD appends structured data blocks.
func (m Meta) WithJSONLD(blocks ...map[string]any) Meta {
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if js := JSON(b); js != "" {
			m.JSONLD = append(m.JSONLD, js)
		}
	}
	return m
}
