package guidepage

import (
	"context"
	"fmt"
	"strconv"

	"finitefield.org/hanko-docs/internal/guides"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/view"
	"finitefield.org/hanko-docs/internal/webpage"
)

// ProductPage lists the guides of one product.
type ProductPage struct {
	webpage.Base

	product guides.Product
	index   guides.Index
}

var _ webpage.Page = (*ProductPage)(nil)

// NewProductPage validates the product parameter. An unknown or missing product
// is reported as *webpage.NotFoundError.
func NewProductPage(params webpage.Params, index guides.Index) (*ProductPage, error) {
	base := webpage.NewBase(params)
	raw, err := base.RequiredStringParam("product")
	if err != nil {
		return nil, &webpage.NotFoundError{Err: err}
	}
	product, err := guides.ParseProduct(raw)
	if err != nil {
		return nil, &webpage.NotFoundError{Err: err}
	}
	return &ProductPage{Base: base, product: product, index: index}, nil
}

// Product returns the validated product.
func (p *ProductPage) Product() guides.Product { return p.product }

// Title is the product's display name.
func (p *ProductPage) Title(context.Context) (string, error) {
	return p.product.DisplayName(), nil
}

// Breadcrumbs returns Documentation / product.
func (p *ProductPage) Breadcrumbs() ([]nav.Crumb, error) {
	crumbs := nav.Breadcrumbs(nav.ProductURL(p.product.String()))
	if len(crumbs) > 1 {
		crumbs[1].Class = "breadcrumbProductRoot"
	}
	return crumbs, nil
}

// BreadcrumbView renders the trail.
func (p *ProductPage) BreadcrumbView() (*view.Node, error) {
	crumbs, err := p.Breadcrumbs()
	if err != nil {
		return nil, err
	}
	return CrumbsView(crumbs), nil
}

// SideNavView renders the guide navigation with nothing active.
func (p *ProductPage) SideNavView(ctx context.Context) (*view.Node, error) {
	entries, err := BuildSideNav(ctx, p.index, p.product, "", "")
	if err != nil {
		return nil, err
	}
	return SideNavView(entries), nil
}

// Body lists every guide with a link to its first page.
func (p *ProductPage) Body(ctx context.Context) (*view.Node, error) {
	inner, err := webpage.InvariantTo404(func() (*view.Node, error) {
		entries, err := BuildSideNav(ctx, p.index, p.product, "", "")
		if err != nil {
			return nil, err
		}
		list := view.List("guideList")
		for _, e := range entries {
			count := len(e.Pages)
			if count == 0 {
				count = 1
			}
			list.Append(view.Item("guideListItem").Append(
				view.Heading(3, view.Link(e.Href, e.Title)),
				view.Span("pageCount").Append(view.Text(pagesLabel(count))),
			))
		}
		return view.Div("innerContent").Append(
			view.Heading(1, view.Text(p.product.DisplayName())),
			list,
		), nil
	})
	if err != nil {
		return nil, err
	}
	return view.Div("guidePageWrapper").Append(inner), nil
}

func pagesLabel(n int) string {
	if n == 1 {
		return "1 page"
	}
	return strconv.Itoa(n) + " pages"
}

// FirstPageURL returns the URL of the first page of a guide.
func FirstPageURL(ctx context.Context, index guides.Index, product guides.Product, guide string) (string, error) {
	pages, err := index.Pages(ctx, product, guide)
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("%w: guide %s has no pages", guides.ErrNotFound, guide)
	}
	return nav.PageURL(product.String(), guide, pages[0]), nil
}
