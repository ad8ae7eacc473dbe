package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsBot(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", true},
		{"curl/8.4.0", true},
		{"", true},
		{"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBot(tt.ua), "IsBot(%q)", tt.ua)
	}
}

func TestVisitorKey(t *testing.T) {
	day := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	a := VisitorKey("salt", "203.0.113.10", "ua", day)
	assert.Len(t, a, 16)
	assert.Equal(t, a, VisitorKey("salt", "203.0.113.10", "ua", day.Add(30*time.Minute)))
	assert.NotEqual(t, a, VisitorKey("salt", "203.0.113.10", "ua", day.Add(2*time.Hour)), "new day, new key")
	assert.NotEqual(t, a, VisitorKey("pepper", "203.0.113.10", "ua", day))
}

func TestViewLimiterAdmitsOncePerWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newViewLimiter(time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("k"), "first view counts")
	assert.False(t, l.allow("k"), "repeat within window is dropped")
	assert.True(t, l.allow("other"), "keys are independent")

	now = now.Add(61 * time.Second)
	assert.True(t, l.allow("k"), "view after window counts")
}

func TestViewLimiterPrune(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newViewLimiter(time.Minute)
	l.now = func() time.Time { return now }
	l.allow("a")
	now = now.Add(2 * time.Minute)
	l.allow("b")
	l.prune()
	assert.Len(t, l.seen, 1)
	_, ok := l.seen["b"]
	assert.True(t, ok)
}
