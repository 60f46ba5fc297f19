package guidepage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-docs/internal/guides"
	"finitefield.org/hanko-docs/internal/view"
	"finitefield.org/hanko-docs/internal/webpage"
)

type stubIndex struct {
	guides map[guides.Product][]string
	pages  map[string][]string // "product/guide" -> pages
}

func (s *stubIndex) Guides(_ context.Context, product guides.Product) ([]string, error) {
	return s.guides[product], nil
}

func (s *stubIndex) Pages(_ context.Context, product guides.Product, guide string) ([]string, error) {
	pages, ok := s.pages[product.String()+"/"+guide]
	if !ok {
		return nil, fmt.Errorf("%w: guide %s", guides.ErrNotFound, guide)
	}
	return pages, nil
}

func (s *stubIndex) FileForPage(ctx context.Context, product guides.Product, guide, page string) (string, error) {
	pages, err := s.Pages(ctx, product, guide)
	if err != nil {
		return "", err
	}
	for _, p := range pages {
		if p == page {
			return "/content/" + product.String() + "/" + guide + "/" + page + ".md", nil
		}
	}
	return "", fmt.Errorf("%w: page %s", guides.ErrNotFound, page)
}

type stubFiles struct {
	err error
}

func (s stubFiles) RenderFile(path string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "<p>rendered " + path + "</p>", nil
}

func newIndex() *stubIndex {
	return &stubIndex{
		guides: map[guides.Product][]string{
			guides.ProductHack: {"getting-started", "async", "faq"},
		},
		pages: map[string][]string{
			"hack/getting-started": {"installation", "tools"},
			"hack/async":           {"p1", "p2", "p3"},
			"hack/faq":             {"faq"},
		},
	}
}

func newPage(t *testing.T, product, guide, page string) *GuidePage {
	t.Helper()
	return newPageWith(t, newIndex(), stubFiles{}, product, guide, page)
}

func newPageWith(t *testing.T, idx guides.Index, files FileRenderer, product, guide, page string) *GuidePage {
	t.Helper()
	params := webpage.Params{"product": product, "guide": guide, "page": page}
	p, err := New(params, idx, files)
	require.NoError(t, err)
	return p
}

func doc(t *testing.T, n *view.Node) *goquery.Document {
	t.Helper()
	var b strings.Builder
	require.NoError(t, view.Render(&b, n))
	d, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)
	return d
}

func TestNewRequiresGuideAndPage(t *testing.T) {
	t.Parallel()

	_, err := New(webpage.Params{"product": "hack", "page": "x"}, newIndex(), stubFiles{})
	require.ErrorIs(t, err, webpage.ErrMissingParam)
	_, err = New(webpage.Params{"product": "hack", "guide": "x"}, newIndex(), stubFiles{})
	require.ErrorIs(t, err, webpage.ErrMissingParam)
}

func TestTitle(t *testing.T) {
	t.Parallel()

	idx := newIndex()
	idx.guides[guides.ProductHack] = append(idx.guides[guides.ProductHack], "Async-Guide")
	idx.pages["hack/Async-Guide"] = []string{"a", "b"}

	tests := []struct {
		name        string
		guide, page string
		want        string
	}{
		{name: "distinct names", guide: "getting-started", page: "installation", want: "Getting Started: Installation"},
		{name: "guide equals page ignoring case", guide: "Async-Guide", page: "async-guide", want: "Async Guide"},
		{name: "single page guide", guide: "faq", page: "faq", want: "Faq"},
		{name: "single page guide other page name", guide: "faq", page: "whatever", want: "Faq"},
		{name: "multi page guide", guide: "async", page: "p2", want: "Async: P2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newPageWith(t, idx, stubFiles{}, "hack", tc.guide, tc.page)
			got, err := p.Title(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTitleErrorsAreNotGuarded(t *testing.T) {
	t.Parallel()

	_, err := newPage(t, "hack", "unknown", "x").Title(context.Background())
	require.ErrorIs(t, err, guides.ErrNotFound)
	require.False(t, webpage.IsNotFound(err))

	_, err = newPage(t, "php", "faq", "faq").Title(context.Background())
	require.ErrorIs(t, err, guides.ErrInvalidProduct)
}

func TestBreadcrumbTailNeverCollapses(t *testing.T) {
	t.Parallel()

	p := newPage(t, "hack", "faq", "faq")
	title, err := p.Title(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Faq", title)

	n, err := p.BreadcrumbView()
	require.NoError(t, err)
	d := doc(t, n)

	require.Equal(t, "Faq: Faq", d.Find(".breadcrumbCurrentPage").Text())
	require.Equal(t, 3, d.Find("i.breadcrumbSeparator").Length())

	root := d.Find(".breadcrumbRoot a")
	require.Equal(t, "Documentation", root.Text())
	require.Equal(t, "/", root.AttrOr("href", ""))

	product := d.Find(".breadcrumbProductRoot a")
	require.Equal(t, "hack", product.Text())
	require.Equal(t, "/hack/", product.AttrOr("href", ""))

	learn := d.Find(".breadcrumbSecondaryRoot a")
	require.Equal(t, "Learn", learn.Text())
	require.Equal(t, "/hack/", learn.AttrOr("href", ""), "Learn points at the product root")
}

func TestSideNav(t *testing.T) {
	t.Parallel()

	p := newPage(t, "hack", "async", "p2")
	entries, err := p.SideNav(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	n, err := p.SideNavView(context.Background())
	require.NoError(t, err)
	d := doc(t, n)

	require.Equal(t, 1, d.Find("div.navWrapper.guideNav > ul.navList").Length())
	headings := d.Find("ul.navList > li > h4 > a")
	require.Equal(t, 3, headings.Length())
	require.Equal(t, "Getting Started", headings.Eq(0).Text())
	require.Equal(t, "/hack/getting-started/installation", headings.Eq(0).AttrOr("href", ""))

	async := d.Find("ul.navList > li").Eq(1)
	items := async.Find("ul.subList > li.subListItem")
	require.Equal(t, 3, items.Length())
	require.Equal(t, 1, async.Find("li.itemActive").Length())
	active := async.Find("li.itemActive h5 a")
	require.Equal(t, "P2", active.Text())
	require.Equal(t, "/hack/async/p2", active.AttrOr("href", ""))

	// getting-started pages are listed but none is active
	require.Equal(t, 0, d.Find("ul.navList > li").Eq(0).Find("li.itemActive").Length())

	faq := d.Find("ul.navList > li").Eq(2)
	require.Equal(t, 0, faq.Find("ul.subList").Length())
	require.Equal(t, "/hack/faq/faq", faq.Find("h4 a").AttrOr("href", ""))
}

func TestBodyRendersContent(t *testing.T) {
	t.Parallel()

	n, err := newPage(t, "hack", "getting-started", "tools").Body(context.Background())
	require.NoError(t, err)
	d := doc(t, n)
	inner := d.Find("div.guidePageWrapper > div.innerContent > p")
	require.Equal(t, "rendered /content/hack/getting-started/tools.md", inner.Text())
}

func TestBodyNotFound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                 string
		product, guide, page string
	}{
		{name: "unknown guide", product: "hack", guide: "nope", page: "x"},
		{name: "unknown page", product: "hack", guide: "async", page: "p9"},
		{name: "invalid product", product: "php", guide: "async", page: "p1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newPage(t, tc.product, tc.guide, tc.page).Body(context.Background())
			require.Error(t, err)
			require.True(t, webpage.IsNotFound(err), "expected not found, got %v", err)
		})
	}

	missing := newPageWith(t, newIndex(), stubFiles{err: fmt.Errorf("read: %w", os.ErrNotExist)}, "hack", "async", "p1")
	_, err := missing.Body(context.Background())
	require.True(t, webpage.IsNotFound(err), "missing file should be not found, got %v", err)

	broken := newPageWith(t, newIndex(), stubFiles{err: errors.New("disk on fire")}, "hack", "async", "p1")
	_, err = broken.Body(context.Background())
	require.Error(t, err)
	require.False(t, webpage.IsNotFound(err))
}

func TestProductIsResolvedOnce(t *testing.T) {
	t.Parallel()

	p := newPage(t, "hhvm", "faq", "faq")
	var wg sync.WaitGroup
	results := make([]guides.Product, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Product()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		require.Equal(t, guides.ProductHHVM, r)
	}

	bad := newPage(t, "HACK", "faq", "faq")
	_, err1 := bad.Product()
	_, err2 := bad.Product()
	require.ErrorIs(t, err1, guides.ErrInvalidProduct)
	require.Same(t, err1, err2)

	_, err := bad.Breadcrumbs()
	require.ErrorIs(t, err, guides.ErrInvalidProduct)
	_, err = bad.SideNav(context.Background())
	require.ErrorIs(t, err, guides.ErrInvalidProduct)
}

func TestProductPage(t *testing.T) {
	t.Parallel()

	p, err := NewProductPage(webpage.Params{"product": "hack"}, newIndex())
	require.NoError(t, err)
	require.Equal(t, guides.ProductHack, p.Product())

	title, err := p.Title(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Hack", title)

	crumbs, err := p.Breadcrumbs()
	require.NoError(t, err)
	require.Len(t, crumbs, 2)
	require.Equal(t, "breadcrumbProductRoot", crumbs[1].Class)
	require.Equal(t, "/hack/", crumbs[1].Href)

	body, err := p.Body(context.Background())
	require.NoError(t, err)
	d := doc(t, body)
	items := d.Find("ul.guideList > li.guideListItem")
	require.Equal(t, 3, items.Length())
	require.Equal(t, "Async", items.Eq(1).Find("h3 a").Text())
	require.Equal(t, "/hack/async/p1", items.Eq(1).Find("h3 a").AttrOr("href", ""))
	require.Equal(t, "3 pages", items.Eq(1).Find("span.pageCount").Text())
	require.Equal(t, "1 page", items.Eq(2).Find("span.pageCount").Text())

	nav, err := p.SideNavView(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, doc(t, nav).Find("li.itemActive").Length())
}

func TestNewProductPageInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewProductPage(webpage.Params{"product": "php"}, newIndex())
	require.True(t, webpage.IsNotFound(err))
	require.ErrorIs(t, err, guides.ErrInvalidProduct)

	_, err = NewProductPage(webpage.Params{}, newIndex())
	require.True(t, webpage.IsNotFound(err))
}

func TestFirstPageURL(t *testing.T) {
	t.Parallel()

	idx := newIndex()
	idx.pages["hack/empty"] = nil

	u, err := FirstPageURL(context.Background(), idx, guides.ProductHack, "async")
	require.NoError(t, err)
	require.Equal(t, "/hack/async/p1", u)

	_, err = FirstPageURL(context.Background(), idx, guides.ProductHack, "nope")
	require.ErrorIs(t, err, guides.ErrNotFound)
	_, err = FirstPageURL(context.Background(), idx, guides.ProductHack, "empty")
	require.ErrorIs(t, err, guides.ErrNotFound)
}
