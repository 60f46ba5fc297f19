package view

import (
	"strings"
	"testing"
)

func render(t *testing.T, n *Node) string {
	t.Helper()
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b.String()
}

func TestRenderEscapesTextAndAttributes(t *testing.T) {
	n := Div("wrapper").Append(
		Heading(4, Link(`/hack/"x"/`, "<Getting> & Started")),
		Element("i", "separator"),
	)
	got := render(t, n)
	want := `<div class="wrapper"><h4><a href="/hack/&#34;x&#34;/">&lt;Getting&gt; &amp; Started</a></h4><i class="separator"></i></div>`
	if got != want {
		t.Fatalf("unexpected markup\nwant %s\ngot  %s", want, got)
	}
}

func TestRenderRawMarkupIsEmbedded(t *testing.T) {
	n := Div("innerContent").Append(Raw(`<h1 id="intro">Intro</h1><p>Hello <em>there</em></p>`))
	got := render(t, n)
	want := `<div class="innerContent"><h1 id="intro">Intro</h1><p>Hello <em>there</em></p></div>`
	if got != want {
		t.Fatalf("unexpected markup\nwant %s\ngot  %s", want, got)
	}
}

func TestAddClassIsIdempotent(t *testing.T) {
	n := Item("subListItem").AddClass("itemActive").AddClass("itemActive").AddClass(" ")
	if len(n.Classes) != 2 || !n.HasClass("itemActive") {
		t.Fatalf("unexpected classes %v", n.Classes)
	}
	if got := render(t, n); got != `<li class="subListItem itemActive"></li>` {
		t.Fatalf("unexpected markup %s", got)
	}
}

func TestHeadingLevelIsClamped(t *testing.T) {
	if got := render(t, Heading(9, Text("x"))); got != "<h6>x</h6>" {
		t.Fatalf("unexpected markup %s", got)
	}
	if got := render(t, Heading(0, Text("x"))); got != "<h1>x</h1>" {
		t.Fatalf("unexpected markup %s", got)
	}
}

func TestHTMLAndTextContent(t *testing.T) {
	n := Span("crumb").Append(Link("/", "Documentation"), Text(" / "), Raw("<b>ignored</b>"))
	if got := n.TextContent(); got != "Documentation / " {
		t.Fatalf("unexpected text content %q", got)
	}
	h, err := HTML(n)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(h), "<b>ignored</b>") {
		t.Fatalf("expected raw markup in %s", h)
	}
	if href, ok := n.Children[0].Attr("href"); !ok || href != "/" {
		t.Fatalf("expected href attr, got %q %v", href, ok)
	}
}

func TestRenderRejectsEmptyTag(t *testing.T) {
	var b strings.Builder
	if err := Render(&b, &Node{Kind: KindElement}); err == nil {
		t.Fatal("expected error for element without tag")
	}
}
