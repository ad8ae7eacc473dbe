package mdblog

import (
	"fmt"
	"io/fs"
	"time"
)

// Environments understood by SiteConfig.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

const devSessionSecret = "mdblog-development-only-secret"

// DefaultGoogleFonts are the families loaded when none are configured.
var DefaultGoogleFonts = []string{
	"Play:400,700",
	"Open+Sans:400,300",
	"Inconsolata",
}

// SiteConfig holds all configuration for an mdblog site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Shown in the footer

	Addr      string `mapstructure:"addr"`       // Listen address (default ":3000")
	PostsDir  string `mapstructure:"posts_dir"`  // Markdown directory (default "posts")
	StaticDir string `mapstructure:"static_dir"` // User static assets (default "public")

	Environment       string   `mapstructure:"environment"`         // development, test or production
	GoogleFonts       []string `mapstructure:"google_fonts"`        // Font families (default DefaultGoogleFonts)
	GoogleAnalyticsID string   `mapstructure:"google_analytics_id"` // Web property id, production only

	SessionSecret string `mapstructure:"session_secret"` // Required in production
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	AnalyticsEnabled       bool          `mapstructure:"analytics_enabled"`
	AnalyticsDatabasePath  string        `mapstructure:"analytics_database_path"`  // default "data/analytics.db"
	AnalyticsRetentionDays int           `mapstructure:"analytics_retention_days"` // default 365
	AnalyticsDedupe        time.Duration `mapstructure:"analytics_dedupe"`         // default 30m

	Watch         bool          `mapstructure:"watch"`          // Reload posts on change
	WatchDebounce time.Duration `mapstructure:"watch_debounce"` // default 300ms
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.GoogleFonts == nil {
		c.GoogleFonts = append([]string(nil), DefaultGoogleFonts...)
	}
	if c.SessionSecret == "" && c.Environment != EnvProduction {
		c.SessionSecret = devSessionSecret
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetentionDays == 0 {
		c.AnalyticsRetentionDays = 365
	}
	if c.AnalyticsDedupe == 0 {
		c.AnalyticsDedupe = 30 * time.Minute
	}
	if c.WatchDebounce == 0 {
		c.WatchDebounce = 300 * time.Millisecond
	}
}

func (c *SiteConfig) validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Environment == EnvProduction && c.SessionSecret == "" {
		return fmt.Errorf("SessionSecret is required in production")
	}
	return nil
}

// analyticsID returns the Google Analytics id, which is only used in production.
func (c *SiteConfig) analyticsID() string {
	if c.Environment != EnvProduction {
		return ""
	}
	return c.GoogleAnalyticsID
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithPostsFS loads posts from dir inside fsys instead of Config.PostsDir.
// Watching is disabled for such sources.
func WithPostsFS(fsys fs.FS, dir string) Option {
	return func(a *App) {
		a.postsFS = fsys
		a.postsFSDir = dir
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}
