// Package markup turns content files into sanitized HTML.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither markdown nor HTML.
var ErrUnsupportedFormat = errors.New("markup: unsupported format")

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

type frontMatter struct {
	Format string `yaml:"format"`
}

// Renderer converts markdown or HTML sources into sanitized markup.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a Renderer with GitHub-flavoured markdown and the content policy.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			// raw HTML is allowed through goldmark and cleaned by the policy afterwards
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
		policy: newContentPolicy(),
	}
}

var codeLanguageClass = regexp.MustCompile(`^language-[\w+#-]+$`)

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "div")
	policy.AllowAttrs("class").Matching(codeLanguageClass).OnElements("code")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnFullyQualifiedLinks(true)
	return policy
}

// RenderFile reads a content file and renders it. The format comes from the
// front matter when present, otherwise from the extension.
func (r *Renderer) RenderFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("markup: read %s: %w", path, err)
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return "", fmt.Errorf("markup: parse front matter %s: %w", path, err)
		}
	}
	format := strings.ToLower(strings.TrimSpace(front.Format))
	if format == "" {
		format = formatFromExt(path)
	}
	return r.Render(format, []byte(body))
}

// Render converts src in the given format to sanitized HTML.
func (r *Renderer) Render(format string, src []byte) (string, error) {
	switch format {
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := r.md.Convert(src, &buf); err != nil {
			return "", fmt.Errorf("markup: convert markdown: %w", err)
		}
		return r.policy.Sanitize(buf.String()), nil
	case FormatHTML:
		return r.policy.Sanitize(string(src)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
