// Package shell renders the landing page around the Twin widget.
//
// The page is built from fixed content only: a title, a subtitle, a region of
// fixed height holding the Twin, and a footer with contact links. The Twin is
// rendered into that region exactly once per page and is otherwise left alone;
// the shell neither configures it nor inspects what it writes.
package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iankisali/digitwin/internal/models"
)

// PageTemplate is the template the shell executes.
const PageTemplate = "index.html"

var tracer = otel.Tracer("github.com/iankisali/digitwin/internal/shell")

type ExecuteTemplateFunc func(wr io.Writer, name string, data any) error

type Shell struct {
	content  models.Content
	twin     templ.Component
	tmplFunc ExecuteTemplateFunc
}

// New copies content, so later changes made by the caller never reach the
// rendered page.
func New(content models.Content, twin templ.Component, tmplFunc ExecuteTemplateFunc) *Shell {
	content.Footer.Links = append([]models.Link(nil), content.Footer.Links...)
	return &Shell{
		content:  content,
		twin:     twin,
		tmplFunc: tmplFunc,
	}
}

// Render writes the page to w. It reads nothing but the content the shell was
// built with, so every call produces the same bytes as long as the Twin does.
//
// An error from the Twin is returned wrapped and nothing is written.
func (s *Shell) Render(ctx context.Context, w io.Writer) error {
	ctx, span := tracer.Start(ctx, "shell.Render", trace.WithAttributes(
		attribute.String("page.title", s.content.Title),
	))
	defer span.End()

	twinHTML, err := templ.ToGoHTML(ctx, s.twin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "twin render failed")
		return fmt.Errorf("failed to render twin: %w", err)
	}

	data := models.IndexPageData{
		Content: s.content,
		Twin:    twinHTML,
	}

	if err := s.tmplFunc(w, PageTemplate, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "template execution failed")
		return fmt.Errorf("failed to render %s: %w", PageTemplate, err)
	}
	return nil
}
