package mdblog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	var c SiteConfig
	c.setDefaults()
	assert.Equal(t, "Blog", c.Name)
	assert.Equal(t, ":3000", c.Addr)
	assert.Equal(t, "posts", c.PostsDir)
	assert.Equal(t, "public", c.StaticDir)
	assert.Equal(t, EnvDevelopment, c.Environment)
	assert.Equal(t, DefaultGoogleFonts, c.GoogleFonts)
	assert.NotEmpty(t, c.SessionSecret)
	assert.Equal(t, 300*time.Millisecond, c.WatchDebounce)
	assert.NoError(t, c.validate())
}

func TestSetDefaultsKeepsEmptyFontList(t *testing.T) {
	c := SiteConfig{GoogleFonts: []string{}}
	c.setDefaults()
	assert.Empty(t, c.GoogleFonts)
}

func TestValidate(t *testing.T) {
	prod := SiteConfig{Environment: EnvProduction}
	prod.setDefaults()
	assert.Empty(t, prod.SessionSecret, "no development secret in production")
	assert.Error(t, prod.validate())

	prod.SessionSecret = "s3cret"
	assert.NoError(t, prod.validate())

	bad := SiteConfig{Environment: "staging"}
	bad.setDefaults()
	assert.Error(t, bad.validate())
}

func TestAnalyticsIDOnlyInProduction(t *testing.T) {
	c := SiteConfig{Environment: EnvDevelopment, GoogleAnalyticsID: "G-1"}
	assert.Equal(t, "", c.analyticsID())
	c.Environment = EnvProduction
	assert.Equal(t, "G-1", c.analyticsID())
}

func TestContentSecurityPolicy(t *testing.T) {
	csp := contentSecurityPolicy(false)
	assert.Contains(t, csp, "font-src 'self' fonts.gstatic.com")
	assert.Contains(t, csp, "style-src 'self' fonts.googleapis.com")
	assert.NotContains(t, csp, "googletagmanager")
	assert.Contains(t, contentSecurityPolicy(true), "www.googletagmanager.com")
}
