package mdblog

import "embed"

// EmbeddedAssets contains static assets shipped with mdblog: style.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
