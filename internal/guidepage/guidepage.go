// Package guidepage renders a single page of a product guide: its title,
// breadcrumb trail, guide navigation and content.
package guidepage

import (
	"context"
	"fmt"
	"sync"

	"finitefield.org/hanko-docs/internal/guides"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/view"
	"finitefield.org/hanko-docs/internal/webpage"
)

// FileRenderer turns a content file into sanitized markup.
type FileRenderer interface {
	RenderFile(path string) (string, error)
}

// GuidePage is created per request and discarded after rendering.
type GuidePage struct {
	webpage.Base

	guide string
	page  string

	index guides.Index
	files FileRenderer

	productOnce sync.Once
	product     guides.Product
	productErr  error
}

var _ webpage.Page = (*GuidePage)(nil)

// New builds a page from its path parameters. The guide and page parameters are required.
func New(params webpage.Params, index guides.Index, files FileRenderer) (*GuidePage, error) {
	base := webpage.NewBase(params)
	guide, err := base.RequiredStringParam("guide")
	if err != nil {
		return nil, err
	}
	page, err := base.RequiredStringParam("page")
	if err != nil {
		return nil, err
	}
	return &GuidePage{
		Base:  base,
		guide: guide,
		page:  page,
		index: index,
		files: files,
	}, nil
}

// Product parses the product parameter. The result, including a failure, is
// computed once per page.
func (p *GuidePage) Product() (guides.Product, error) {
	p.productOnce.Do(func() {
		raw, err := p.RequiredStringParam("product")
		if err != nil {
			p.productErr = err
			return
		}
		p.product, p.productErr = guides.ParseProduct(raw)
	})
	return p.product, p.productErr
}

// Title collapses to the guide name when the page repeats it or is the guide's only page.
func (p *GuidePage) Title(ctx context.Context) (string, error) {
	product, err := p.Product()
	if err != nil {
		return "", err
	}
	pages, err := p.index.Pages(ctx, product, p.guide)
	if err != nil {
		return "", fmt.Errorf("guidepage: title: %w", err)
	}
	return nav.GuidePageTitle(p.guide, p.page, len(pages)), nil
}

// Breadcrumbs returns the trail Documentation / product / Learn / "Guide: Page".
func (p *GuidePage) Breadcrumbs() ([]nav.Crumb, error) {
	product, err := p.Product()
	if err != nil {
		return nil, err
	}
	return nav.GuideTrail(product.String(), p.guide, p.page), nil
}

// BreadcrumbView renders the trail.
func (p *GuidePage) BreadcrumbView() (*view.Node, error) {
	crumbs, err := p.Breadcrumbs()
	if err != nil {
		return nil, err
	}
	return CrumbsView(crumbs), nil
}

// SideNav lists every guide of the product in index order.
func (p *GuidePage) SideNav(ctx context.Context) ([]nav.GuideEntry, error) {
	product, err := p.Product()
	if err != nil {
		return nil, err
	}
	return BuildSideNav(ctx, p.index, product, p.guide, p.page)
}

// SideNavView renders the guide navigation.
func (p *GuidePage) SideNavView(ctx context.Context) (*view.Node, error) {
	entries, err := p.SideNav(ctx)
	if err != nil {
		return nil, err
	}
	return SideNavView(entries), nil
}

// Body wraps the page content.
func (p *GuidePage) Body(ctx context.Context) (*view.Node, error) {
	inner, err := p.InnerContent(ctx)
	if err != nil {
		return nil, err
	}
	return view.Div("guidePageWrapper").Append(inner), nil
}

// InnerContent resolves and renders the backing file. Unknown products, guides,
// pages and missing files are reported as *webpage.NotFoundError.
func (p *GuidePage) InnerContent(ctx context.Context) (*view.Node, error) {
	return webpage.InvariantTo404(func() (*view.Node, error) {
		rawProduct, err := p.RequiredStringParam("product")
		if err != nil {
			return nil, err
		}
		product, err := guides.ParseProduct(rawProduct)
		if err != nil {
			return nil, err
		}
		guide, err := p.RequiredStringParam("guide")
		if err != nil {
			return nil, err
		}
		page, err := p.RequiredStringParam("page")
		if err != nil {
			return nil, err
		}
		path, err := p.index.FileForPage(ctx, product, guide, page)
		if err != nil {
			return nil, err
		}
		markup, err := p.files.RenderFile(path)
		if err != nil {
			return nil, err
		}
		return view.Div("innerContent").Append(view.Raw(markup)), nil
	})
}

// BuildSideNav computes navigation entries for every guide of product, marking
// the current guide and page active. Guides without pages are skipped.
func BuildSideNav(ctx context.Context, index guides.Index, product guides.Product, currentGuide, currentPage string) ([]nav.GuideEntry, error) {
	slugs, err := index.Guides(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("guidepage: side nav: %w", err)
	}
	entries := make([]nav.GuideEntry, 0, len(slugs))
	for _, guide := range slugs {
		pages, err := index.Pages(ctx, product, guide)
		if err != nil {
			return nil, fmt.Errorf("guidepage: side nav %s: %w", guide, err)
		}
		if entry, ok := nav.BuildGuideEntry(product.String(), guide, pages, currentGuide, currentPage); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
