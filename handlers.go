package mdblog

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mdblog/posts"
	"github.com/eringen/mdblog/views"
)

// page builds the layout data shared by every HTML response.
func (a *App) page(c echo.Context, meta views.PageMeta) views.Page {
	var list []posts.Post
	if a.Catalog != nil {
		list = a.Catalog.ListPosts()
	}
	return views.Page{
		Site: views.SiteConfig{
			Name:              a.Config.Name,
			URL:               a.Config.URL,
			Description:       a.Config.Description,
			Author:            a.Config.Author,
			GoogleFonts:       a.Config.GoogleFonts,
			GoogleAnalyticsID: a.Config.analyticsID(),
		},
		Meta:      meta,
		Posts:     list,
		NavOpen:   navOpen(c),
		Path:      c.Request().URL.Path,
		CSRFToken: csrfToken(c),
	}
}

func (a *App) handleIndex(c echo.Context) error {
	p := a.page(c, views.PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		URL:         views.BuildURL(a.Config.URL),
		OGType:      "website",
	})
	return Render(c, a.Views.Index(p))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Catalog.GetPost(slugParam(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, views.PageMeta{Title: "Not found"})))
		}
		return err
	}
	p := a.page(c, views.PageMeta{
		Title:       post.Title,
		Description: post.Summary(),
		URL:         PostURL(a.Config.URL, post),
		OGType:      "article",
	})
	return Render(c, a.Views.Post(p, post))
}

// slugParam returns the decoded slug. When the request path carries escapes
// Go keeps in RawPath (such as %2C), echo matches on the raw form and the
// param is still escaped.
func slugParam(c echo.Context) string {
	slug := c.Param("slug")
	if c.Request().URL.RawPath == "" {
		return slug
	}
	if s, err := url.PathUnescape(slug); err == nil {
		return s
	}
	return slug
}

func (a *App) handleNavToggle(c echo.Context) error {
	if err := toggleNav(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, localPath(c.FormValue("next")))
}

// localPath returns next when it is a path on this site, "/" otherwise.
func localPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if strings.ContainsAny(next, "\r\n") {
		return "/"
	}
	return next
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Catalog.ListPosts())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Catalog.ListPosts())
}

func handlePostsRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleStylesheet(c echo.Context) error {
	data, err := EmbeddedAssets.ReadFile("embedded/style.css")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", data)
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nSitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, views.PageMeta{Title: "Not found"})))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c, views.PageMeta{Title: "Error"})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
