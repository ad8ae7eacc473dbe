package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/mdblog"
)

const testPostsDir = "../../posts/testdata/posts"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestListCommand(t *testing.T) {
	out, _, err := run(t, "list", "--posts", testPostsDir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"00-my-first-post", "My", "First", "Post"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "01-second-thoughts"))
}

func TestListCommandFromEnv(t *testing.T) {
	t.Setenv("MDBLOG_POSTS_DIR", testPostsDir)
	out, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "00-my-first-post")
}

func TestListCommandMalformed(t *testing.T) {
	_, _, err := run(t, "list", "--posts", "../../posts/testdata/malformed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "00-broken.md")
}

func TestShowCommand(t *testing.T) {
	out, _, err := run(t, "show", "00-my-first-post", "--posts", testPostsDir)
	require.NoError(t, err)
	assert.Equal(t, "# My First Post\nLorem ipsum dolor sit amet, consectetur adipisicing elit.\n", out)
}

func TestShowCommandNotFound(t *testing.T) {
	_, _, err := run(t, "show", "nope", "--posts", testPostsDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `post "nope" not found`)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("posts_dir: "+testPostsDir+"\n"), 0o644))
	out, errOut, err := run(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "01-second-thoughts")
	assert.Contains(t, errOut, "Using config file:")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := run(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mdblog dev\n", out)
}

func TestNewCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-blog")
	out, _, err := run(t, "new", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	cfg, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), `name: "My Blog"`)

	listOut, _, err := run(t, "list", "--posts", filepath.Join(dir, "posts"))
	require.NoError(t, err)
	assert.Contains(t, listOut, "00-my-first-post")
	assert.Contains(t, listOut, "My First Post")

	_, _, err = run(t, "new", dir)
	assert.Error(t, err, "existing directory is refused")
}

func TestToTitle(t *testing.T) {
	assert.Equal(t, "My Blog", toTitle("my-blog"))
	assert.Equal(t, "Myblog", toTitle("myblog"))
}

func TestServeReportsInitError(t *testing.T) {
	app := mdblog.New(mdblog.SiteConfig{Environment: mdblog.EnvProduction, Addr: "127.0.0.1:0"}, mdblog.ViewFuncs{})
	err := serve(context.Background(), app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SessionSecret")
}

func TestServeStopsOnCancel(t *testing.T) {
	app := mdblog.New(mdblog.SiteConfig{
		Environment: mdblog.EnvTest,
		Addr:        "127.0.0.1:0",
		PostsDir:    testPostsDir,
		StaticDir:   t.TempDir(),
	}, mdblog.ViewFuncs{})
	app.Echo.Logger.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, serve(ctx, app))
	require.NotNil(t, app.Catalog, "posts are loaded before shutdown")
	assert.Equal(t, 2, app.Catalog.Current().Len())
}
