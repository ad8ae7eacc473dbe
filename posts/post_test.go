package posts

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# My First Post\nLorem ipsum", "My First Post"},
		{"#My First Post\nbody", "My First Post"},
		{"#    Spaced Out\nbody", "Spaced Out"},
		{"# Windows Line\r\nbody", "Windows Line"},
		{"intro text\n# Later Heading\nbody", "Later Heading"},
		{"## Second Level\nbody", "# Second Level"},
		{"#\u00a0No-Break Space\nbody", "No-Break Space"},
		{"# \u2003\ufeffEm Space\nbody", "Em Space"},
	}
	for _, tt := range tests {
		got, err := ParseTitle(tt.input)
		require.NoError(t, err, "ParseTitle(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseTitle(%q)", tt.input)
	}
}

func TestParseTitleMissing(t *testing.T) {
	for _, input := range []string{"", "no heading\n", "# heading without newline"} {
		_, err := ParseTitle(input)
		assert.ErrorIs(t, err, ErrNoTitle, "ParseTitle(%q)", input)
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# My First Post\nLorem ipsum...", "Lorem ipsum..."},
		{"# Title\n\nPara one.\n\nPara two.\n", "\nPara one.\n\nPara two.\n"},
		{"# Title\n", ""},
		{"preface\n# Title\nbody", "body"},
	}
	for _, tt := range tests {
		got, err := ParseBody(tt.input)
		require.NoError(t, err, "ParseBody(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseBody(%q)", tt.input)
	}
}

func TestParseBodyMissing(t *testing.T) {
	_, err := ParseBody("nothing to see here")
	assert.ErrorIs(t, err, ErrNoBody)
}

func TestParseBodyHashBeforeHeading(t *testing.T) {
	// A stray "#" ahead of the heading line wins the split.
	text := "issue #42 fixed\n# Real Title\nbody"
	body, err := ParseBody(text)
	require.NoError(t, err)
	assert.Equal(t, "# Real Title\nbody", body)
}

func TestSlugFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"00-my-first-post.md", "00-my-first-post"},
		{"hello.md", "hello"},
		{"a.md.bak.md", "a.bak.md"},
		{"README", "README"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlugFromFilename(tt.name), "SlugFromFilename(%q)", tt.name)
	}
}

func TestParse(t *testing.T) {
	text := "# My First Post\nLorem ipsum..."
	p, err := Parse("00-my-first-post.md", text)
	require.NoError(t, err)
	assert.Equal(t, Post{
		Slug:     "00-my-first-post",
		Title:    "My First Post",
		Body:     "Lorem ipsum...",
		FullText: text,
	}, p)
}

func TestParseNamesFileInError(t *testing.T) {
	_, err := Parse("broken.md", "no heading")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTitle))
	assert.Contains(t, err.Error(), "broken.md")
}

func TestLoad(t *testing.T) {
	c, err := Load("testdata/posts")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	all := c.All()
	assert.Equal(t, "00-my-first-post", all[0].Slug)
	assert.Equal(t, "My First Post", all[0].Title)
	assert.Equal(t, "Lorem ipsum dolor sit amet, consectetur adipisicing elit.\n", all[0].Body)
	assert.Equal(t, "01-second-thoughts", all[1].Slug)
	assert.Equal(t, "Second Thoughts", all[1].Title)
	assert.True(t, strings.HasPrefix(all[1].FullText, "#   Second Thoughts\n"))
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load("testdata/malformed")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTitle)
	assert.Contains(t, err.Error(), "00-broken.md")
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load("testdata/does-not-exist")
	assert.Error(t, err)
}

func TestLoadFSFiltersAndOrders(t *testing.T) {
	fsys := fstest.MapFS{
		"content/b.md":          {Data: []byte("# Bravo\nb")},
		"content/a.md":          {Data: []byte("# Alpha\na")},
		"content/c.markdown.md": {Data: []byte("# Charlie\nc")},
		"content/notes.txt":     {Data: []byte("not a post")},
		"content/logo.svg":      {Data: []byte("<svg/>")},
		"content/drafts/d.md":   {Data: []byte("# Delta\nd")},
	}
	c, err := LoadFS(fsys, "content")
	require.NoError(t, err)

	var slugs []string
	for _, p := range c.All() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"a", "b", "c.markdown"}, slugs)
}

func TestLoadFSEmpty(t *testing.T) {
	fsys := fstest.MapFS{"content/readme.txt": {Data: []byte("x")}}
	c, err := LoadFS(fsys, "content")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.All())
}

func TestPostPath(t *testing.T) {
	assert.Equal(t, "/posts/00-my-first-post/", Post{Slug: "00-my-first-post"}.Path())
	assert.Equal(t, "/posts/a%20b/", Post{Slug: "a b"}.Path())
}

func TestPostSummary(t *testing.T) {
	p := Post{Body: "\nFirst   line\ncontinues here.\n\nSecond paragraph."}
	assert.Equal(t, "First line continues here.", p.Summary())

	long := Post{Body: strings.Repeat("word ", 100)}
	got := long.Summary()
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), summaryLength+1)

	assert.Equal(t, "", Post{}.Summary())
}
