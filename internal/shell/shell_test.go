package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/iankisali/digitwin/internal/models"
	"github.com/iankisali/digitwin/internal/twin"
	"github.com/iankisali/digitwin/web"
)

func newTestShell(t *testing.T, c templ.Component) *Shell {
	t.Helper()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	return New(models.DefaultContent(), c, tmpl.ExecuteTemplate)
}

func renderPage(t *testing.T, s *Shell) string {
	t.Helper()
	var buf bytes.Buffer
	if err := s.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	return buf.String()
}

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func element(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func withAttr(key string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := attr(n, key)
		return ok
	}
}

func text(n *html.Node) string {
	var sb strings.Builder
	for _, t := range findAll(n, func(n *html.Node) bool { return n.Type == html.TextNode }) {
		sb.WriteString(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

func TestRenderHeadings(t *testing.T) {
	doc := parse(t, renderPage(t, newTestShell(t, twin.Mount(""))))

	h1 := findAll(doc, element("h1"))
	if len(h1) != 1 {
		t.Fatalf("expected one h1, got %d", len(h1))
	}
	if got := text(h1[0]); got != "Digitwin" {
		t.Errorf("expected title 'Digitwin', got %q", got)
	}

	subtitles := findAll(doc, func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return n.Type == html.ElementNode && n.Data == "p" && class == "subtitle"
	})
	if len(subtitles) != 1 {
		t.Fatalf("expected one subtitle, got %d", len(subtitles))
	}
	if got := text(subtitles[0]); got != "Ian Kisali's Digital Twin" {
		t.Errorf("expected subtitle %q, got %q", "Ian Kisali's Digital Twin", got)
	}
}

func TestRenderSingleTwinInFixedRegion(t *testing.T) {
	doc := parse(t, renderPage(t, newTestShell(t, twin.Mount(""))))

	regions := findAll(doc, withAttr("data-twin-region"))
	if len(regions) != 1 {
		t.Fatalf("expected one twin region, got %d", len(regions))
	}
	style, _ := attr(regions[0], "style")
	if !strings.Contains(strings.ReplaceAll(style, " ", ""), "height:600px") {
		t.Errorf("expected fixed 600px height, got style %q", style)
	}

	mounts := findAll(doc, withAttr("data-twin-mount"))
	if len(mounts) != 1 {
		t.Fatalf("expected one twin mount point, got %d", len(mounts))
	}
	inRegion := findAll(regions[0], withAttr("data-twin-mount"))
	if len(inRegion) != 1 {
		t.Error("expected the twin mount point inside the fixed region")
	}
	if id, _ := attr(mounts[0], "id"); id != twin.MountID {
		t.Errorf("expected mount id %q, got %q", twin.MountID, id)
	}
}

type footerLink struct {
	Href   string
	Target string
	Rel    string
	Label  string
}

func TestRenderFooterLinks(t *testing.T) {
	doc := parse(t, renderPage(t, newTestShell(t, twin.Mount(""))))

	footers := findAll(doc, element("footer"))
	if len(footers) != 1 {
		t.Fatalf("expected one footer, got %d", len(footers))
	}
	if got := text(footers[0]); !strings.Contains(got, "© 2025 Ian Kisali • DevOps Engineer") {
		t.Errorf("expected copyright in footer, got %q", got)
	}

	var got []footerLink
	for _, a := range findAll(footers[0], element("a")) {
		href, _ := attr(a, "href")
		target, _ := attr(a, "target")
		rel, _ := attr(a, "rel")
		got = append(got, footerLink{Href: href, Target: target, Rel: rel, Label: text(a)})
	}

	want := []footerLink{
		{Href: "mailto:iankisali@gmail.com", Label: "iankisali@gmail.com"},
		{Href: "https://www.linkedin.com/in/ian-kisali/", Target: "_blank", Rel: "noopener noreferrer", Label: "LinkedIn"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("footer links mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIsByteIdentical(t *testing.T) {
	s := newTestShell(t, twin.Mount(""))

	first := renderPage(t, s)
	for range 5 {
		if got := renderPage(t, s); got != first {
			t.Fatal("repeated renders produced different output")
		}
	}

	// A fresh shell over the same content renders the same page.
	if got := renderPage(t, newTestShell(t, twin.Mount(""))); got != first {
		t.Error("separately constructed shells produced different output")
	}
}

func TestRenderIgnoresCallerMutation(t *testing.T) {
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	c := models.DefaultContent()
	s := New(c, twin.Mount(""), tmpl.ExecuteTemplate)

	first := renderPage(t, s)

	c.Title = "changed"
	c.Footer.Links[1].Href = "https://elsewhere.example/"
	c.Footer.Links[1].External = false

	second := renderPage(t, s)
	if second != first {
		t.Error("page changed after the caller modified its content")
	}
	if strings.Contains(second, "elsewhere.example") {
		t.Error("caller's link change leaked into the page")
	}
	if !strings.Contains(second, `target="_blank" rel="noopener noreferrer"`) {
		t.Error("expected the profile link to keep opener isolation")
	}
}

func TestRenderTwinCalledOncePerRender(t *testing.T) {
	calls := 0
	c := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		calls++
		_, err := io.WriteString(w, `<div data-twin-mount></div>`)
		return err
	})
	s := newTestShell(t, c)

	for i := 1; i <= 3; i++ {
		renderPage(t, s)
		if calls != i {
			t.Fatalf("expected %d twin renders, got %d", i, calls)
		}
	}
}

func TestRenderTwinError(t *testing.T) {
	errTwin := errors.New("twin exploded")
	c := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errTwin
	})
	s := newTestShell(t, c)

	var buf bytes.Buffer
	err := s.Render(context.Background(), &buf)
	if !errors.Is(err, errTwin) {
		t.Fatalf("expected twin error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written on twin failure, got %d bytes", buf.Len())
	}
}

func TestRenderTemplateError(t *testing.T) {
	errTmpl := errors.New("no such template")
	s := New(models.DefaultContent(), twin.Mount(""), func(wr io.Writer, name string, data any) error {
		if name != PageTemplate {
			t.Errorf("expected template %q, got %q", PageTemplate, name)
		}
		return errTmpl
	})

	err := s.Render(context.Background(), io.Discard)
	if !errors.Is(err, errTmpl) {
		t.Fatalf("expected template error, got %v", err)
	}
}

func TestRenderPassesContent(t *testing.T) {
	var got models.IndexPageData
	s := New(models.DefaultContent(), twin.Mount("/bundle.js"), func(wr io.Writer, name string, data any) error {
		got = data.(models.IndexPageData)
		return nil
	})

	if err := s.Render(context.Background(), io.Discard); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if diff := cmp.Diff(models.DefaultContent(), got.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(got.Twin), `src="/bundle.js"`) {
		t.Errorf("expected rendered twin markup, got %q", got.Twin)
	}
}
