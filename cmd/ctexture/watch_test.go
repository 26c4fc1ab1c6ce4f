package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputs(t *testing.T) {
	tests := []struct {
		name    string
		written []string
		path    string
		want    bool
	}{
		{"rendered file", []string{"out/wall.png"}, "out/wall.png", true},
		{"scaled preview", []string{"out/wall.png", "out/wall.scaled.png"}, "out/wall.scaled.png", true},
		{"other file in output", []string{"out/wall.png"}, "out/notes.png", false},
		{"default output", []string{"wall.png"}, "wall.png", true},
		{"archive under default output", []string{"wall.png"}, "iwad/patches/wall.png", false},
		{"text lump under default output", []string{"wall.png"}, "mymod/TEXTURES", false},
		{"archive inside output", []string{"out/wall.png"}, "out/mod/patches/wall.png", false},
		{"relative and cleaned", []string{"./wall.png"}, "sub/../wall.png", true},
		{"nothing rendered", nil, "wall.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			for _, w := range tt.written {
				paths = append(paths, filepath.FromSlash(w))
			}
			o := newOutputs(paths)
			assert.Equal(t, tt.want, o.has(filepath.FromSlash(tt.path)))
		})
	}
}

func TestOutputsFromRender(t *testing.T) {
	cfg := DefaultConfig()
	archive := writeArchive(t)
	cfg.Archives = []string{archive}
	cfg.Output = filepath.Dir(archive)

	ws, err := openWorkspace(cfg)
	require.NoError(t, err)
	paths, err := ws.render(nil)
	require.NoError(t, err)
	o := newOutputs(paths)
	assert.True(t, o.has(filepath.Join(cfg.Output, "double.png")))
	assert.False(t, o.has(filepath.Join(archive, "patches", "wall.png")))
	assert.False(t, o.has(filepath.Join(archive, "TEXTURES.txt")))
}
