package mdblog

import (
	"time"

	"github.com/eringen/mdblog/posts"
	"github.com/eringen/mdblog/views"
)

// PostURL returns the absolute URL of a post.
func PostURL(base string, p posts.Post) string {
	return views.BuildURL(base, "posts", p.Slug)
}

// lastModified is the sitemap/feed timestamp: posts carry no dates, so the
// catalog load time stands in.
func (a *App) lastModified() time.Time {
	if a.Catalog == nil {
		return time.Time{}
	}
	return a.Catalog.LoadedAt()
}
