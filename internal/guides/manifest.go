package guides

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// The manifest lists guides per product in navigation order:
//
//	products:
//	  hack:
//	    - slug: getting-started
//	      pages:
//	        - installation
//	        - slug: first-program
//	          file: hack/getting-started/hello.md
//	    - title: Async Functions   # slug derived from the title
//	      pages: [introduction]
type manifest struct {
	Products map[string][]manifestGuide `yaml:"products"`
}

type manifestGuide struct {
	Slug  string         `yaml:"slug"`
	Title string         `yaml:"title"`
	Pages []manifestPage `yaml:"pages"`
}

type manifestPage struct {
	Slug string `yaml:"slug"`
	File string `yaml:"file"`
}

// UnmarshalYAML accepts either a bare page slug or a mapping with slug and file.
func (p *manifestPage) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Slug = value.Value
		return nil
	}
	type plain manifestPage
	var raw plain
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = manifestPage(raw)
	return nil
}

// LoadManifest reads a YAML manifest from disk and builds an index rooted at contentDir.
func LoadManifest(file, contentDir string) (*StaticIndex, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("guides: read manifest: %w", err)
	}
	return ParseManifest(data, contentDir)
}

// ParseManifest decodes and validates a manifest. All validation problems are reported together.
func ParseManifest(data []byte, contentDir string) (*StaticIndex, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("guides: parse manifest: %w", err)
	}

	var errs error
	catalog := make(map[Product][]Guide, len(m.Products))
	for rawProduct, rawGuides := range m.Products {
		product, err := ParseProduct(rawProduct)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		seenGuides := map[string]struct{}{}
		guides := make([]Guide, 0, len(rawGuides))
		for i, rg := range rawGuides {
			g, err := buildGuide(product, rg)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("guides: %s guide #%d: %w", product, i+1, err))
				continue
			}
			if _, dup := seenGuides[g.Slug]; dup {
				errs = multierr.Append(errs, fmt.Errorf("guides: %s: duplicate guide %q", product, g.Slug))
				continue
			}
			seenGuides[g.Slug] = struct{}{}
			guides = append(guides, g)
		}
		catalog[product] = guides
	}
	if errs != nil {
		return nil, errs
	}
	return NewStaticIndex(contentDir, catalog), nil
}

func buildGuide(product Product, rg manifestGuide) (Guide, error) {
	guideSlug := strings.TrimSpace(rg.Slug)
	if guideSlug == "" && strings.TrimSpace(rg.Title) != "" {
		guideSlug = slug.Make(rg.Title)
	}
	if !slug.IsSlug(guideSlug) {
		return Guide{}, fmt.Errorf("invalid guide slug %q", guideSlug)
	}
	if len(rg.Pages) == 0 {
		return Guide{}, fmt.Errorf("guide %q has no pages", guideSlug)
	}

	g := Guide{Slug: guideSlug, Pages: make([]Page, 0, len(rg.Pages))}
	seen := map[string]struct{}{}
	var errs error
	for _, rp := range rg.Pages {
		pageSlug := strings.TrimSpace(rp.Slug)
		if !slug.IsSlug(pageSlug) {
			errs = multierr.Append(errs, fmt.Errorf("guide %q: invalid page slug %q", guideSlug, pageSlug))
			continue
		}
		if _, dup := seen[pageSlug]; dup {
			errs = multierr.Append(errs, fmt.Errorf("guide %q: duplicate page %q", guideSlug, pageSlug))
			continue
		}
		file := strings.TrimSpace(rp.File)
		if file != "" && !localPath(file) {
			errs = multierr.Append(errs, fmt.Errorf("guide %q: page %q: file %q escapes the content directory", guideSlug, pageSlug, file))
			continue
		}
		seen[pageSlug] = struct{}{}
		g.Pages = append(g.Pages, Page{Slug: pageSlug, File: file})
	}
	if errs != nil {
		return Guide{}, errs
	}
	return g, nil
}

func localPath(p string) bool {
	if path.IsAbs(p) || strings.HasPrefix(p, "\\") {
		return false
	}
	clean := path.Clean(p)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
