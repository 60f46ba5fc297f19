// Package handlers serves the documentation site: guide pages, product and
// guide roots, the home page and error pages.
package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/guidepage"
	"finitefield.org/hanko-docs/internal/guides"
	"finitefield.org/hanko-docs/internal/httpx"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/observability"
	"finitefield.org/hanko-docs/internal/seo"
	"finitefield.org/hanko-docs/internal/view"
	"finitefield.org/hanko-docs/internal/webpage"
)

// Site wires the guide index and content renderer to the layout.
type Site struct {
	index     guides.Index
	files     guidepage.FileRenderer
	layout    *webpage.Layout
	siteURL   string
	lang      string
	analytics Analytics
}

// Option customises a Site.
type Option func(*Site)

// WithSiteURL sets the absolute base for canonical and structured-data URLs.
func WithSiteURL(u string) Option {
	return func(s *Site) { s.siteURL = u }
}

// WithLang sets the language tag of the rendered pages. Empty keeps "en".
func WithLang(tag string) Option {
	return func(s *Site) {
		if tag != "" {
			s.lang = tag
		}
	}
}

// WithAnalytics enables client analytics snippets.
func WithAnalytics(a Analytics) Option {
	return func(s *Site) { s.analytics = a }
}

func NewSite(index guides.Index, files guidepage.FileRenderer, layout *webpage.Layout, opts ...Option) *Site {
	s := &Site{index: index, files: files, layout: layout, lang: "en"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes registers the site's pages on r.
func (s *Site) Routes(r chi.Router) {
	r.Get("/", s.Home)
	r.Get("/{product}", addSlash)
	r.Get("/{product}/", s.ProductRoot)
	r.Get("/{product}/{guide}", addSlash)
	r.Get("/{product}/{guide}/", s.GuideRoot)
	r.Get("/{product}/{guide}/{page}", s.GuidePage)
	r.NotFound(s.NotFound)
}

// GuidePage renders /{product}/{guide}/{page}.
func (s *Site) GuidePage(w http.ResponseWriter, r *http.Request) {
	page, err := guidepage.New(webpage.ParamsFromRequest(r, "product", "guide", "page"), s.index, s.files)
	if err != nil {
		s.NotFound(w, r)
		return
	}
	s.servePage(w, r, page, page.Breadcrumbs)
}

// ProductRoot renders /{product}/.
func (s *Site) ProductRoot(w http.ResponseWriter, r *http.Request) {
	page, err := guidepage.NewProductPage(webpage.ParamsFromRequest(r, "product"), s.index)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.servePage(w, r, page, page.Breadcrumbs)
}

// GuideRoot redirects /{product}/{guide}/ to the guide's first page.
func (s *Site) GuideRoot(w http.ResponseWriter, r *http.Request) {
	product, err := guides.ParseProduct(chi.URLParam(r, "product"))
	if err != nil {
		s.NotFound(w, r)
		return
	}
	guide := chi.URLParam(r, "guide")
	target, err := guidepage.FirstPageURL(r.Context(), s.index, product, guide)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	observability.FromContext(r.Context()).Debug("guide root redirect",
		zap.String("from", nav.GuideURL(product.String(), guide)),
		zap.String("to", target),
	)
	http.Redirect(w, r, target, http.StatusFound)
}

// Home lists the products.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	list := view.List("productList")
	for _, p := range guides.Products() {
		list.Append(view.Item("productListItem").Append(
			view.Heading(2, view.Link(nav.ProductURL(p.String()), p.DisplayName())),
		))
	}
	body, err := view.HTML(view.Div("homeWrapper").Append(list))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	meta := seo.PageMeta(s.siteURL, "", r.URL.Path).WithJSONLD(seo.WebSite(seo.SiteName, seo.Absolute(s.siteURL, "/")))
	s.render(w, r, http.StatusOK, PageData{Title: seo.SiteName, SEO: meta, Body: body})
}

// NotFound renders the 404 page, or a JSON error for JSON clients.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.WriteError(r.Context(), w, httpx.NewError("not_found", "page not found", http.StatusNotFound))
		return
	}
	s.render(w, r, http.StatusNotFound, PageData{
		Title:   "Page Not Found",
		SEO:     seo.PageMeta("", "Page Not Found", r.URL.Path).NoIndex(),
		Message: "The page you requested does not exist.",
	})
}

// servePage renders a page controller through the layout. The body is computed
// first so lookup failures become a 404 before the title and navigation run.
func (s *Site) servePage(w http.ResponseWriter, r *http.Request, page webpage.Page, trail func() ([]nav.Crumb, error)) {
	ctx := r.Context()

	bodyNode, err := page.Body(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	title, err := page.Title(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	crumbs, err := trail()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	crumbNode, err := page.BreadcrumbView()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	navNode, err := page.SideNavView(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	var fragments [3]template.HTML
	for i, n := range []*view.Node{crumbNode, navNode, bodyNode} {
		if fragments[i], err = view.HTML(n); err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	meta := seo.PageMeta(s.siteURL, title, r.URL.Path).WithJSONLD(
		seo.BreadcrumbList(seo.TrailItems(s.siteURL, crumbs, r.URL.Path)),
		seo.TechArticle(title, seo.Absolute(s.siteURL, r.URL.Path)),
	)
	s.render(w, r, http.StatusOK, PageData{
		Title:       title,
		SEO:         meta,
		Breadcrumbs: fragments[0],
		SideNav:     fragments[1],
		Body:        fragments[2],
	})
}

// fail answers lookup failures with 404 and everything else with 500.
func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	if webpage.IsNotFound(err) || errors.Is(err, guides.ErrNotFound) || errors.Is(err, guides.ErrInvalidProduct) {
		observability.FromContext(r.Context()).Debug("page not found", zap.Error(err))
		s.NotFound(w, r)
		return
	}
	s.serverError(w, r, err)
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	observability.FromContext(r.Context()).Error("render page", zap.Error(err))
	if httpx.WantsJSON(r) {
		httpx.WriteError(r.Context(), w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
		return
	}
	s.render(w, r, http.StatusInternalServerError, PageData{
		Title:   "Something Went Wrong",
		SEO:     seo.PageMeta("", "Something Went Wrong", r.URL.Path).NoIndex(),
		Message: "The page could not be rendered. Please try again later.",
	})
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, data PageData) {
	data.Status = status
	data.Path = r.URL.Path
	data.Lang = s.lang
	data.Analytics = s.analytics
	data.Nav = nav.Build(productNav(), r.URL.Path)
	if err := s.layout.Render(w, status, data); err != nil {
		observability.FromContext(r.Context()).Error("render layout", zap.Error(err), zap.Int("status", status))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func productNav() []nav.Item {
	products := guides.Products()
	items := make([]nav.Item, 0, len(products))
	for _, p := range products {
		items = append(items, nav.Item{Path: nav.ProductURL(p.String()), Label: p.DisplayName()})
	}
	return items
}

func addSlash(w http.ResponseWriter, r *http.Request) {
	target := "/" + strings.TrimLeft(r.URL.Path, "/") + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// Health answers liveness checks.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
