package guidepage

import (
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/view"
)

// CrumbsView renders a breadcrumb trail with separators between crumbs.
// Crumbs without an Href are rendered as plain text.
func CrumbsView(crumbs []nav.Crumb) *view.Node {
	wrapper := view.Div("widthWrapper")
	for i, c := range crumbs {
		if i > 0 {
			wrapper.Append(view.Element("i", "breadcrumbSeparator"))
		}
		span := view.Span(c.Class)
		if c.Href != "" {
			span.Append(view.Link(c.Href, c.Label))
		} else {
			span.Append(view.Text(c.Label))
		}
		wrapper.Append(span)
	}
	return view.Div("breadcrumbNav").Append(wrapper)
}

// SideNavView renders guide entries as a nested list.
func SideNavView(entries []nav.GuideEntry) *view.Node {
	list := view.List("navList")
	for _, e := range entries {
		item := view.Item().Append(view.Heading(4, view.Link(e.Href, e.Title)))
		// single-page guides: the heading is the only link
		if len(e.Pages) > 0 {
			subList := view.List("subList")
			for _, p := range e.Pages {
				sub := view.Item("subListItem").Append(view.Heading(5, view.Link(p.Href, p.Title)))
				if p.Active {
					sub.AddClass("itemActive")
				}
				subList.Append(sub)
			}
			item.Append(subList)
		}
		list.Append(item)
	}
	return view.Div("navWrapper", "guideNav").Append(list)
}
