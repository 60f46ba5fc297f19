package guides

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a guide, page or its backing file cannot be located.
var ErrNotFound = errors.New("guides: not found")

// Index answers which guides and pages exist for a product and where their content lives.
type Index interface {
	// Guides lists guide slugs for the product in navigation order.
	Guides(ctx context.Context, product Product) ([]string, error)
	// Pages lists page slugs for a guide in navigation order.
	Pages(ctx context.Context, product Product, guide string) ([]string, error)
	// FileForPage returns the content file backing a page.
	FileForPage(ctx context.Context, product Product, guide, page string) (string, error)
}

// Guide is a named, ordered collection of pages within a product.
type Guide struct {
	Slug  string
	Pages []Page
}

// Page is a single content unit. File is relative to the content directory;
// when empty it defaults to "<product>/<guide>/<page>.md".
type Page struct {
	Slug string
	File string
}

// StaticIndex is an Index over a fixed catalog, typically loaded from a manifest.
type StaticIndex struct {
	contentDir string
	catalog    map[Product][]Guide
}

// NewStaticIndex builds an index rooted at contentDir. The catalog is copied.
func NewStaticIndex(contentDir string, catalog map[Product][]Guide) *StaticIndex {
	idx := &StaticIndex{
		contentDir: strings.TrimSpace(contentDir),
		catalog:    make(map[Product][]Guide, len(catalog)),
	}
	for product, list := range catalog {
		idx.catalog[product] = copyGuides(list)
	}
	return idx
}

func (x *StaticIndex) Guides(ctx context.Context, product Product) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !product.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProduct, string(product))
	}
	list := x.catalog[product]
	out := make([]string, 0, len(list))
	for _, g := range list {
		out = append(out, g.Slug)
	}
	return out, nil
}

func (x *StaticIndex) Pages(ctx context.Context, product Product, guide string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err := x.guide(product, guide)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(g.Pages))
	for _, p := range g.Pages {
		out = append(out, p.Slug)
	}
	return out, nil
}

func (x *StaticIndex) FileForPage(ctx context.Context, product Product, guide, page string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	g, err := x.guide(product, guide)
	if err != nil {
		return "", err
	}
	for _, p := range g.Pages {
		if p.Slug != page {
			continue
		}
		rel := p.File
		if rel == "" {
			rel = path.Join(string(product), guide, page+".md")
		}
		file := filepath.Join(x.contentDir, filepath.FromSlash(rel))
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: file %s for %s/%s/%s", ErrNotFound, rel, product, guide, page)
			}
			return "", fmt.Errorf("guides: stat %s: %w", file, err)
		}
		return file, nil
	}
	return "", fmt.Errorf("%w: page %s/%s/%s", ErrNotFound, product, guide, page)
}

func (x *StaticIndex) guide(product Product, slug string) (Guide, error) {
	if !product.Valid() {
		return Guide{}, fmt.Errorf("%w: %q", ErrInvalidProduct, string(product))
	}
	for _, g := range x.catalog[product] {
		if g.Slug == slug {
			return g, nil
		}
	}
	return Guide{}, fmt.Errorf("%w: guide %s/%s", ErrNotFound, product, slug)
}

func copyGuides(src []Guide) []Guide {
	out := make([]Guide, len(src))
	for i, g := range src {
		out[i] = Guide{Slug: g.Slug, Pages: append([]Page(nil), g.Pages...)}
	}
	return out
}
