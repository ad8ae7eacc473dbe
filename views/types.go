package views

import "github.com/eringen/mdblog/posts"

// SiteConfig holds the site-wide settings templates need.
type SiteConfig struct {
	Name              string
	URL               string
	Description       string
	Author            string
	GoogleFonts       []string // families, e.g. "Open+Sans:400,300"
	GoogleAnalyticsID string   // rendered only when non-empty
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Page is everything the layout needs besides the page body.
type Page struct {
	Site      SiteConfig
	Meta      PageMeta
	Posts     []posts.Post // every post, for the footer
	NavOpen   bool
	Path      string // request path, used as the nav toggle return target
	CSRFToken string
}
