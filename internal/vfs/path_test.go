package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		currentDir string
		input      string
		want       string
	}{
		{"dotdot pops one segment", "/home/guest", "..", "/home"},
		{"dotdot from first level", "/home", "..", "/"},
		{"dotdot at root is a no-op", "/", "..", "/"},
		{"absolute taken verbatim", "/home/guest", "/etc", "/etc"},
		{"relative appended", "/home", "guest", "/home/guest"},
		{"relative from root", "/", "home", "/home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.currentDir, tt.input))
		})
	}
}

func TestNormalizeDotDotClampIsIdempotent(t *testing.T) {
	dir := "/home/guest/projects"
	for i := 0; i < 10; i++ {
		dir = Normalize(dir, "..")
	}
	assert.Equal(t, "/", dir)
}

func TestSplit(t *testing.T) {
	assert.Nil(t, Split("/"))
	assert.Equal(t, []string{"home"}, Split("/home"))
	assert.Equal(t, []string{"home", "guest"}, Split("/home/guest"))
}

func TestParentAndBase(t *testing.T) {
	assert.Equal(t, "/", Parent("/"))
	assert.Equal(t, "/", Parent("/home"))
	assert.Equal(t, "/home", Parent("/home/guest"))

	assert.Equal(t, "", Base("/"))
	assert.Equal(t, "guest", Base("/home/guest"))
}

func TestResolveDirectoryAndFile(t *testing.T) {
	root := NewDirectory()
	home := NewDirectory()
	require.NoError(t, root.CreateChild("home", home))
	require.NoError(t, home.CreateChild("readme.txt", NewFile("hi")))

	t.Run("directory vs file distinction", func(t *testing.T) {
		_, err := ResolveDirectory(root, "/home/readme.txt")
		assert.ErrorIs(t, err, ErrNotADirectory)

		_, err = ResolveFile(root, "/home")
		assert.ErrorIs(t, err, ErrNotAFile)
	})

	t.Run("happy paths", func(t *testing.T) {
		dir, err := ResolveDirectory(root, "/home")
		require.NoError(t, err)
		assert.True(t, dir.IsDir())

		file, err := ResolveFile(root, "/home/readme.txt")
		require.NoError(t, err)
		assert.Equal(t, "hi", file.Content())
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ResolveDirectory(root, "/nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
