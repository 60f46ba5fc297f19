package guides

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseProduct(t *testing.T) {
	for _, raw := range []string{"hack", "hhvm"} {
		p, err := ParseProduct(raw)
		if err != nil {
			t.Fatalf("ParseProduct(%q): %v", raw, err)
		}
		if p.String() != raw {
			t.Fatalf("expected %q, got %q", raw, p)
		}
	}
	for _, raw := range []string{"", "HACK", "php", "hack/"} {
		if _, err := ParseProduct(raw); !errors.Is(err, ErrInvalidProduct) {
			t.Fatalf("ParseProduct(%q): expected ErrInvalidProduct, got %v", raw, err)
		}
	}
}

func TestProductDisplayName(t *testing.T) {
	if got := ProductHack.DisplayName(); got != "Hack" {
		t.Fatalf("expected Hack, got %q", got)
	}
	if got := ProductHHVM.DisplayName(); got != "HHVM" {
		t.Fatalf("expected HHVM, got %q", got)
	}
	if got := Product("other").DisplayName(); got != "other" {
		t.Fatalf("expected raw value, got %q", got)
	}
}

func writeContent(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("# "+f+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
}

func TestStaticIndexLookups(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "hack/getting-started/installation.md", "hack/faq/faq.md", "shared/tools.md")

	idx := NewStaticIndex(dir, map[Product][]Guide{
		ProductHack: {
			{Slug: "getting-started", Pages: []Page{{Slug: "installation"}, {Slug: "tools", File: "shared/tools.md"}, {Slug: "missing"}}},
			{Slug: "faq", Pages: []Page{{Slug: "faq"}}},
		},
	})
	ctx := context.Background()

	guides, err := idx.Guides(ctx, ProductHack)
	if err != nil {
		t.Fatalf("Guides: %v", err)
	}
	if want := []string{"getting-started", "faq"}; !reflect.DeepEqual(guides, want) {
		t.Fatalf("guides: want %v, got %v", want, guides)
	}

	hhvm, err := idx.Guides(ctx, ProductHHVM)
	if err != nil || len(hhvm) != 0 {
		t.Fatalf("expected empty hhvm guides, got %v err=%v", hhvm, err)
	}

	pages, err := idx.Pages(ctx, ProductHack, "getting-started")
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if want := []string{"installation", "tools", "missing"}; !reflect.DeepEqual(pages, want) {
		t.Fatalf("pages: want %v, got %v", want, pages)
	}

	file, err := idx.FileForPage(ctx, ProductHack, "getting-started", "installation")
	if err != nil {
		t.Fatalf("FileForPage: %v", err)
	}
	if want := filepath.Join(dir, "hack", "getting-started", "installation.md"); file != want {
		t.Fatalf("file: want %s, got %s", want, file)
	}

	file, err = idx.FileForPage(ctx, ProductHack, "getting-started", "tools")
	if err != nil {
		t.Fatalf("FileForPage explicit file: %v", err)
	}
	if !strings.HasSuffix(file, filepath.Join("shared", "tools.md")) {
		t.Fatalf("unexpected explicit file %s", file)
	}
}

func TestStaticIndexNotFound(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "hack/faq/faq.md")
	idx := NewStaticIndex(dir, map[Product][]Guide{
		ProductHack: {{Slug: "faq", Pages: []Page{{Slug: "faq"}, {Slug: "gone"}}}},
	})
	ctx := context.Background()

	cases := []struct {
		name        string
		guide, page string
		wantErr     error
		product     Product
	}{
		{name: "unknown guide", product: ProductHack, guide: "nope", page: "faq", wantErr: ErrNotFound},
		{name: "unknown page", product: ProductHack, guide: "faq", page: "nope", wantErr: ErrNotFound},
		{name: "missing file", product: ProductHack, guide: "faq", page: "gone", wantErr: ErrNotFound},
		{name: "bad product", product: Product("php"), guide: "faq", page: "faq", wantErr: ErrInvalidProduct},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := idx.FileForPage(ctx, tc.product, tc.guide, tc.page)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := idx.Pages(ctx, ProductHack, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Pages unknown guide: expected ErrNotFound, got %v", err)
	}
}

func TestStaticIndexHonorsCancellation(t *testing.T) {
	idx := NewStaticIndex(t.TempDir(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := idx.Guides(ctx, ProductHack); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
