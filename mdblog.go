// Package mdblog serves a blog whose posts are markdown files read once at
// startup. It renders a post list, post pages, a navigation toggle and a
// footer listing every post, plus RSS and a sitemap.
//
// Views are templ components. Callers may replace any of them through
// ViewFuncs; unset fields fall back to the views package.
package mdblog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/mdblog/analytics"
	"github.com/eringen/mdblog/posts"
	"github.com/eringen/mdblog/views"
	"github.com/eringen/mdblog/watch"
)

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	Index       func(p views.Page) templ.Component
	Post        func(p views.Page, post posts.Post) templ.Component
	NotFound    func(p views.Page) templ.Component
	ServerError func(p views.Page) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Index == nil {
		v.Index = views.Index
	}
	if v.Post == nil {
		v.Post = views.Post
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central mdblog application. It wires together the post catalog,
// analytics, handlers, middleware and views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog *Catalog
	Views   ViewFuncs

	analyticsStore   *analytics.Store
	analyticsHandler *analytics.Handler
	stopCleanup      func()
	cancelWatch      context.CancelFunc
	customRoutes     []func(*App)
	postsFS          fs.FS
	postsFSDir       string
	initialized      bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	views.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(log.INFO)

	for _, opt := range opts {
		opt(a)
	}
	a.Config.setDefaults()

	return a
}

// Init loads posts, opens analytics and registers middleware and routes.
// A malformed post aborts initialization.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return fmt.Errorf("mdblog: %w", err)
	}

	catalog, err := NewCatalog(a.loadPosts)
	if err != nil {
		return fmt.Errorf("mdblog: load posts: %w", err)
	}
	a.Catalog = catalog
	a.Echo.Logger.Infof("loaded %d posts", catalog.Current().Len())

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("mdblog: init analytics: %w", err)
		}
		a.analyticsStore = store
		a.analyticsHandler = analytics.NewHandler(store, a.Config.AnalyticsDedupe)
		a.stopCleanup = store.StartCleanupScheduler(a.Config.AnalyticsRetentionDays, 24*time.Hour, a.Echo.Logger)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

func (a *App) loadPosts() (*posts.Collection, error) {
	if a.postsFS != nil {
		return posts.LoadFS(a.postsFS, a.postsFSDir)
	}
	return posts.Load(a.Config.PostsDir)
}

// Reload re-reads the posts. The previous set keeps being served on error.
func (a *App) Reload() error {
	if err := a.Catalog.Reload(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("reloaded %d posts", a.Catalog.Current().Len())
	return nil
}

// Start initializes the app, starts the posts watcher when configured, and
// serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if a.Config.Watch && a.postsFS == nil {
		if err := a.startWatcher(); err != nil {
			return fmt.Errorf("mdblog: %w", err)
		}
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) startWatcher() error {
	w, err := watch.New(a.Config.PostsDir, a.Config.WatchDebounce, a.Reload, a.Echo.Logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelWatch = cancel
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Echo.Logger.Errorf("watch: %v", err)
		}
	}()
	a.Echo.Logger.Infof("watching %s for changes", a.Config.PostsDir)
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/style.css", a.handleStylesheet)
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleIndex)
	e.GET("/posts", handlePostsRedirect)
	e.GET("/posts/:slug/", a.handlePost)
	e.POST("/nav/toggle/", a.handleNavToggle)

	if a.analyticsHandler != nil {
		a.analyticsHandler.RegisterRoutes(e)
	}
}

// trackedPath reports whether views of path are counted.
func trackedPath(path string) bool {
	return path == "/" || strings.HasPrefix(path, "/posts/")
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.cancelWatch != nil {
		a.cancelWatch()
	}
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.analyticsHandler != nil {
		a.analyticsHandler.Close()
	}
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}
