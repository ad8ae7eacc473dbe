package views

import (
	"context"
	"regexp"

	"github.com/a-h/templ"

	"github.com/eringen/mdblog/markdown"
	"github.com/eringen/mdblog/posts"
)

// Layout wraps content in the site chrome: head, top nav and post footer.
func Layout(p Page, content templ.Component) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		title := p.Site.Name
		if p.Meta.Title != "" && p.Meta.Title != p.Site.Name {
			title = p.Meta.Title + " | " + p.Site.Name
		}
		description := p.Meta.Description
		if description == "" {
			description = p.Site.Description
		}
		ogType := p.Meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(title)
		hw.raw(`</title>`)
		if description != "" {
			hw.raw(`<meta name="description" content="`)
			hw.text(description)
			hw.raw(`">`)
			hw.raw(`<meta property="og:description" content="`)
			hw.text(description)
			hw.raw(`">`)
		}
		hw.raw(`<meta property="og:title" content="`)
		hw.text(title)
		hw.raw(`"><meta property="og:type" content="`)
		hw.text(ogType)
		hw.raw(`">`)
		if p.Meta.URL != "" {
			hw.raw(`<meta property="og:url" content="`)
			hw.text(p.Meta.URL)
			hw.raw(`"><link rel="canonical" href="`)
			hw.text(p.Meta.URL)
			hw.raw(`">`)
		}
		if href := GoogleFontsHref(p.Site.GoogleFonts); href != "" {
			hw.raw(`<link rel="stylesheet" href="`)
			hw.text(href)
			hw.raw(`">`)
		}
		hw.raw(`<link rel="stylesheet" href="/public/style.css">`)
		hw.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml" title="`)
		hw.text(p.Site.Name)
		hw.raw(`">`)
		if p.Site.GoogleAnalyticsID != "" {
			hw.component(ctx, analyticsSnippet(p.Site.GoogleAnalyticsID))
		}
		hw.raw(`</head><body>`)
		hw.component(ctx, TopNav(p.Site.Name, p.NavOpen, p.Path, p.CSRFToken))
		hw.raw(`<main class="content">`)
		hw.component(ctx, content)
		hw.raw(`</main>`)
		hw.component(ctx, PostFooter(p.Posts))
		hw.raw(`<p class="copyright">&copy; `)
		hw.number(CurrentYear())
		hw.raw(` `)
		hw.text(p.Site.Author)
		hw.raw(`</p></body></html>`)
	})
}

var reAnalyticsID = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// analyticsSnippet renders the gtag loader. Ids outside the known character
// set render nothing since the id is written into a script block.
func analyticsSnippet(id string) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		if !reAnalyticsID.MatchString(id) {
			return
		}
		hw.raw(`<script async src="https://www.googletagmanager.com/gtag/js?id=`)
		hw.text(id)
		hw.raw(`"></script>`)
		hw.raw(`<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config','`)
		hw.raw(id)
		hw.raw(`');</script>`)
	})
}

// TopNav renders the site navigation. The toggle posts back to the server,
// which flips the open state and redirects to returnTo.
func TopNav(siteName string, open bool, returnTo, csrfToken string) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		if returnTo == "" {
			returnTo = "/"
		}
		hw.raw(`<nav class="`)
		hw.text(NavClass(open))
		hw.raw(`"><a class="top-nav__brand" href="/">`)
		hw.text(siteName)
		hw.raw(`</a><form class="top-nav__form" method="post" action="/nav/toggle/">`)
		hw.raw(`<input type="hidden" name="_csrf" value="`)
		hw.text(csrfToken)
		hw.raw(`"><input type="hidden" name="next" value="`)
		hw.text(returnTo)
		hw.raw(`"><button type="submit" class="top-nav__toggle" aria-expanded="`)
		if open {
			hw.raw("true")
		} else {
			hw.raw("false")
		}
		hw.raw(`">Menu</button></form>`)
		hw.raw(`<ul class="top-nav__links"><li><a href="/">Posts</a></li><li><a href="/feed.xml">RSS</a></li></ul>`)
		hw.raw(`</nav>`)
	})
}

// PostFooter lists the title of every post.
func PostFooter(list []posts.Post) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<footer><ul class="post-footer">`)
		for _, p := range list {
			hw.raw(`<li><a class="post-footer__title" href="`)
			hw.text(p.Path())
			hw.raw(`">`)
			hw.text(p.Title)
			hw.raw(`</a></li>`)
		}
		hw.raw(`</ul></footer>`)
	})
}

// PostList renders the index of posts with their summaries.
func PostList(list []posts.Post) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		if len(list) == 0 {
			hw.raw(`<p class="post-list__empty">No posts yet.</p>`)
			return
		}
		hw.raw(`<ol class="post-list">`)
		for _, p := range list {
			hw.raw(`<li class="post-list__item"><h2><a class="post-list__title" href="`)
			hw.text(p.Path())
			hw.raw(`">`)
			hw.text(p.Title)
			hw.raw(`</a></h2>`)
			if s := p.Summary(); s != "" {
				hw.raw(`<p class="post-list__summary">`)
				hw.text(s)
				hw.raw(`</p>`)
			}
			hw.raw(`</li>`)
		}
		hw.raw(`</ol>`)
	})
}

// PostDetail renders a single post with its markdown body.
func PostDetail(post posts.Post) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<article class="post"><h1 class="post__title">`)
		hw.text(post.Title)
		hw.raw(`</h1><div class="post__body">`)
		hw.component(ctx, markdown.Markdown(post.Body))
		hw.raw(`</div></article>`)
	})
}

// Index is the home page.
func Index(p Page) templ.Component {
	return Layout(p, PostList(p.Posts))
}

// Post is the post detail page.
func Post(p Page, post posts.Post) templ.Component {
	return Layout(p, PostDetail(post))
}

// NotFound is rendered for unknown routes and slugs.
func NotFound(p Page) templ.Component {
	return Layout(p, component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<section class="error"><h1>Not found</h1><p>There is nothing here. <a href="/">Back to all posts</a>.</p></section>`)
	}))
}

// ServerError is rendered for 5xx responses.
func ServerError(p Page) templ.Component {
	return Layout(p, component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<section class="error"><h1>Something went wrong</h1><p>Please try again later.</p></section>`)
	}))
}
