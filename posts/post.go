// Package posts loads blog posts from a directory of markdown files and
// exposes them as an immutable, ordered collection.
package posts

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoTitle is returned when a file has no "# Heading" line.
	ErrNoTitle = errors.New("posts: missing title heading")
	// ErrNoBody is returned when no body can be split off after the heading.
	ErrNoBody = errors.New("posts: missing body")
)

var (
	// \s in Go is ASCII only; the class also skips Unicode spaces and BOMs.
	reTitle = regexp.MustCompile(`#[\s\p{Zs}\x{2028}\x{2029}\x{feff}]*(.+)\n`)
	reBody  = regexp.MustCompile(`#(.+)\n([\s\S]*)`)
)

const (
	markdownExt   = ".md"
	summaryLength = 200
)

// Post is a single blog entry derived from one markdown file.
type Post struct {
	Slug     string
	Title    string
	Body     string
	FullText string
}

// Path returns the canonical route of the post.
func (p Post) Path() string {
	return "/posts/" + url.PathEscape(p.Slug) + "/"
}

// Summary returns the first paragraph of the body, flattened to a single
// line and truncated.
func (p Post) Summary() string {
	para := strings.TrimSpace(p.Body)
	if i := strings.Index(para, "\n\n"); i >= 0 {
		para = para[:i]
	}
	para = strings.Join(strings.Fields(para), " ")
	if utf8.RuneCountInString(para) <= summaryLength {
		return para
	}
	runes := []rune(para)
	return strings.TrimSpace(string(runes[:summaryLength])) + "…"
}

// ParseTitle returns the text following the first "#" heading marker.
func ParseTitle(text string) (string, error) {
	m := reTitle.FindStringSubmatch(text)
	if m == nil {
		return "", ErrNoTitle
	}
	return strings.TrimSuffix(m[1], "\r"), nil
}

// ParseBody returns everything after the line holding the first "#".
func ParseBody(text string) (string, error) {
	m := reBody.FindStringSubmatch(text)
	if m == nil {
		return "", ErrNoBody
	}
	return m[2], nil
}

// SlugFromFilename strips the first ".md" occurrence from name.
func SlugFromFilename(name string) string {
	return strings.Replace(name, markdownExt, "", 1)
}

// IsMarkdown reports whether a file name is picked up by the loader.
func IsMarkdown(name string) bool {
	return strings.Contains(name, markdownExt)
}

// Parse builds a Post from a file name and its contents.
func Parse(name, text string) (Post, error) {
	title, err := ParseTitle(text)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", name, err)
	}
	body, err := ParseBody(text)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", name, err)
	}
	return Post{
		Slug:     SlugFromFilename(name),
		Title:    title,
		Body:     body,
		FullText: text,
	}, nil
}

// Load reads every markdown file in dir, in directory listing order.
func Load(dir string) (*Collection, error) {
	c, err := LoadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, fmt.Errorf("load posts from %s: %w", dir, err)
	}
	return c, nil
}

// LoadFS is like Load but reads dir from fsys.
func LoadFS(fsys fs.FS, dir string) (*Collection, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var list []Post
	for _, entry := range entries {
		if entry.IsDir() || !IsMarkdown(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		post, err := Parse(entry.Name(), string(data))
		if err != nil {
			return nil, err
		}
		list = append(list, post)
	}
	return NewCollection(list), nil
}
