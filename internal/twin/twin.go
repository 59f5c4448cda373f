// Package twin provides the mount point for the Twin widget. The widget itself
// is a client-side bundle; this package only places it on the page.
package twin

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	MountID          = "twin"
	DefaultScriptURL = "/static/js/twin.js"
)

// Mount returns a component writing the single element the Twin bundle takes
// over, followed by the deferred script that loads the bundle.
func Mount(scriptURL string) templ.Component {
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+MountID+`" class="twin" data-twin-mount></div>`); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script src="`+templ.EscapeString(scriptURL)+`" defer></script>`)
		return err
	})
}
