// Package webpage holds the pieces every page controller shares: request
// parameters, the not-found boundary and the layout renderer.
package webpage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/hanko-docs/internal/view"
)

// ErrMissingParam is returned when a required path parameter is absent or empty.
var ErrMissingParam = errors.New("webpage: missing required parameter")

// Params are the path parameters a page was routed with.
type Params map[string]string

// ParamsFromRequest collects the named chi URL parameters of r.
func ParamsFromRequest(r *http.Request, names ...string) Params {
	p := make(Params, len(names))
	for _, name := range names {
		if v := chi.URLParam(r, name); v != "" {
			p[name] = v
		}
	}
	return p
}

// Page is what the layout needs from a page controller.
type Page interface {
	Title(ctx context.Context) (string, error)
	BreadcrumbView() (*view.Node, error)
	SideNavView(ctx context.Context) (*view.Node, error)
	Body(ctx context.Context) (*view.Node, error)
}

// Base carries the path parameters shared by page controllers.
type Base struct {
	params Params
}

// NewBase copies params so later changes by the caller are not observed.
func NewBase(params Params) Base {
	cp := make(Params, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return Base{params: cp}
}

// RequiredStringParam returns a non-empty path parameter exactly as routed.
// Values are not trimmed: " faq" is not "faq".
func (b Base) RequiredStringParam(name string) (string, error) {
	v := b.params[name]
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return v, nil
}
