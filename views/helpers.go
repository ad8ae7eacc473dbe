package views

import (
	"context"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// now is swapped in tests.
var now = time.Now

// CurrentYear returns the current calendar year.
func CurrentYear() int {
	return now().Year()
}

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// GoogleFontsHref builds the stylesheet URL for the given families.
func GoogleFontsHref(families []string) string {
	if len(families) == 0 {
		return ""
	}
	return "https://fonts.googleapis.com/css?family=" + strings.Join(families, "|")
}

// NavClass returns the CSS classes of the top navigation.
func NavClass(open bool) string {
	if open {
		return "top-nav active"
	}
	return "top-nav"
}

// htmlWriter accumulates the first write error so components can be written
// as straight-line code.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) number(n int) {
	hw.raw(strconv.Itoa(n))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

func component(fn func(ctx context.Context, hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		fn(ctx, hw)
		return hw.err
	})
}
