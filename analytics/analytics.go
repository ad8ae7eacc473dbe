// Package analytics provides privacy-first page view counting.
//
// Views are recorded server-side by middleware. Visitors are never stored;
// a salted hash of IP and User-Agent only feeds the in-memory dedupe window.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// PageStat represents page view statistics.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DailyView represents views per day.
type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// Stats is the payload of the views endpoint.
type Stats struct {
	From       string      `json:"from"`
	To         string      `json:"to"`
	TotalViews int         `json:"total_views"`
	TopPages   []PageStat  `json:"top_pages"`
	DailyViews []DailyView `json:"daily_views"`
}

const dayLayout = "2006-01-02"

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
	"facebookexternalhit", "twitterbot", "linkedinbot",
	"ahrefsbot", "semrushbot", "mj12bot", "dotbot",
	"curl/", "wget/", "python-requests", "go-http-client",
}

// IsBot checks if the User-Agent is likely a bot, crawler or script.
func IsBot(ua string) bool {
	if strings.TrimSpace(ua) == "" {
		return true
	}
	ua = strings.ToLower(ua)
	for _, bot := range botMarkers {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

// VisitorKey returns a salted, truncated hash identifying a visitor for one day.
func VisitorKey(salt, ip, userAgent string, day time.Time) string {
	h := sha256.New()
	h.Write([]byte(salt + ip + "|" + userAgent + "|" + day.UTC().Format(dayLayout)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Day formats t as the storage day key.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}
