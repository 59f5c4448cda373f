package models

import "html/template"

const (
	externalTarget = "_blank"
	externalRel    = "noopener noreferrer"
)

type Link struct {
	Label    string
	Href     string
	External bool
}

// Target is the browsing context the link opens in. External links open in a
// new one.
func (l Link) Target() string {
	if l.External {
		return externalTarget
	}
	return ""
}

// Rel keeps the opened page from reaching window.opener and from receiving the
// referrer.
func (l Link) Rel() string {
	if l.External {
		return externalRel
	}
	return ""
}

type Footer struct {
	Copyright string
	Links     []Link
}

type Content struct {
	Title      string
	Subtitle   string
	TwinHeight int
	Footer     Footer
}

// DefaultContent returns the landing page content. Each call builds a new
// value so no caller can alter what another renders.
func DefaultContent() Content {
	return Content{
		Title:      "Digitwin",
		Subtitle:   "Ian Kisali's Digital Twin",
		TwinHeight: 600,
		Footer: Footer{
			Copyright: "© 2025 Ian Kisali • DevOps Engineer",
			Links: []Link{
				{Label: "iankisali@gmail.com", Href: "mailto:iankisali@gmail.com"},
				{Label: "LinkedIn", Href: "https://www.linkedin.com/in/ian-kisali/", External: true},
			},
		},
	}
}

type IndexPageData struct {
	Content
	Twin template.HTML
}

type ErrorPageData struct {
	Title   string
	Status  int
	Message string
}
