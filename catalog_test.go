package mdblog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/mdblog/posts"
)

func TestCatalogGetPost(t *testing.T) {
	c, err := NewCatalog(func() (*posts.Collection, error) {
		return posts.NewCollection([]posts.Post{{Slug: "a", Title: "A"}}), nil
	})
	require.NoError(t, err)

	p, err := c.GetPost("a")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Title)

	_, err = c.GetPost("b")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, c.ListPosts(), 1)
	assert.False(t, c.LoadedAt().IsZero())
}

func TestCatalogInitialLoadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewCatalog(func() (*posts.Collection, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestCatalogReloadKeepsPreviousOnError(t *testing.T) {
	calls := 0
	c, err := NewCatalog(func() (*posts.Collection, error) {
		calls++
		switch calls {
		case 1:
			return posts.NewCollection([]posts.Post{{Slug: "a"}}), nil
		case 2:
			return nil, posts.ErrNoTitle
		default:
			return posts.NewCollection([]posts.Post{{Slug: "a"}, {Slug: "b"}}), nil
		}
	})
	require.NoError(t, err)
	before := c.Current()

	assert.ErrorIs(t, c.Reload(), posts.ErrNoTitle)
	assert.Same(t, before, c.Current())

	require.NoError(t, c.Reload())
	assert.Equal(t, 2, c.Current().Len())
	assert.Equal(t, 1, before.Len(), "old collection is untouched")
}
