package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "desktop", cfg.Mode)
	assert.Equal(t, Port, cfg.Port)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 256, cfg.Height)
	assert.Equal(t, 4, cfg.ExportScale)
	assert.True(t, cfg.Advertise)
	assert.Empty(t, cfg.EmojiFont)
}

func TestParseConfigMode(t *testing.T) {
	cfg, err := parseConfig([]string{"-port", "9000", "-keep-sticker", "-emoji-font", "/tmp/emoji.ttf", "serve"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/emoji.ttf", cfg.EmojiFont)
	assert.Equal(t, "serve", cfg.Mode)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.KeepStampTool)
}

func TestParseConfigRejects(t *testing.T) {
	for _, args := range [][]string{
		{"paint"},
		{"serve", "extra"},
		{"-width", "0"},
		{"-export-scale", "-1"},
	} {
		_, err := parseConfig(args, io.Discard)
		assert.Error(t, err, "args %v", args)
	}
}
