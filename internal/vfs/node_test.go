package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := NewDirectory()
	home := NewDirectory()
	require.NoError(t, root.CreateChild("home", home))
	require.NoError(t, home.CreateChild("guest", NewDirectory()))
	require.NoError(t, home.CreateChild("readme.txt", NewFile("hi")))

	t.Run("empty segments resolve to root", func(t *testing.T) {
		node, err := root.Resolve(nil)
		require.NoError(t, err)
		assert.Same(t, root, node)
	})

	t.Run("nested directory", func(t *testing.T) {
		node, err := root.Resolve([]string{"home", "guest"})
		require.NoError(t, err)
		assert.True(t, node.IsDir())
	})

	t.Run("file leaf", func(t *testing.T) {
		node, err := root.Resolve([]string{"home", "readme.txt"})
		require.NoError(t, err)
		assert.Equal(t, "hi", node.Content())
	})

	t.Run("missing segment", func(t *testing.T) {
		_, err := root.Resolve([]string{"home", "nope"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("descending through a file", func(t *testing.T) {
		_, err := root.Resolve([]string{"home", "readme.txt", "deeper"})
		assert.ErrorIs(t, err, ErrNotADirectory)
	})
}

func TestCreateChild(t *testing.T) {
	dir := NewDirectory()
	require.NoError(t, dir.CreateChild("a.txt", NewFile("")))

	t.Run("duplicate name fails", func(t *testing.T) {
		err := dir.CreateChild("a.txt", NewFile("other"))
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("invalid names rejected", func(t *testing.T) {
		assert.ErrorIs(t, dir.CreateChild("", NewFile("")), ErrInvalidName)
		assert.ErrorIs(t, dir.CreateChild("a/b", NewFile("")), ErrInvalidName)
	})

	t.Run("create under a file fails", func(t *testing.T) {
		file := NewFile("x")
		assert.ErrorIs(t, file.CreateChild("child", NewFile("")), ErrNotADirectory)
	})
}

func TestRename(t *testing.T) {
	dir := NewDirectory()
	require.NoError(t, dir.CreateChild("a.txt", NewFile("alpha")))
	require.NoError(t, dir.CreateChild("b.txt", NewFile("beta")))

	t.Run("destination exists leaves both entries unchanged", func(t *testing.T) {
		err := dir.Rename("a.txt", "b.txt")
		assert.ErrorIs(t, err, ErrAlreadyExists)

		a, err := dir.Child("a.txt")
		require.NoError(t, err)
		assert.Equal(t, "alpha", a.Content())

		b, err := dir.Child("b.txt")
		require.NoError(t, err)
		assert.Equal(t, "beta", b.Content())
	})

	t.Run("missing source", func(t *testing.T) {
		assert.ErrorIs(t, dir.Rename("nope.txt", "c.txt"), ErrNotFound)
	})

	t.Run("rename moves the same node", func(t *testing.T) {
		before, err := dir.Child("a.txt")
		require.NoError(t, err)

		require.NoError(t, dir.Rename("a.txt", "c.txt"))

		_, err = dir.Child("a.txt")
		assert.ErrorIs(t, err, ErrNotFound)

		after, err := dir.Child("c.txt")
		require.NoError(t, err)
		assert.Same(t, before, after)
	})
}

func TestRemoveChild(t *testing.T) {
	dir := NewDirectory()
	require.NoError(t, dir.CreateChild("sub", NewDirectory()))
	require.NoError(t, dir.CreateChild("a.txt", NewFile("a")))
	require.NoError(t, dir.CreateChild("b.txt", NewFile("b")))

	t.Run("directories cannot be removed", func(t *testing.T) {
		assert.ErrorIs(t, dir.RemoveChild("sub"), ErrNotAFile)
	})

	t.Run("removes exactly the named file", func(t *testing.T) {
		require.NoError(t, dir.RemoveChild("a.txt"))

		_, err := dir.Child("a.txt")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = dir.Child("b.txt")
		assert.NoError(t, err)
		_, err = dir.Child("sub")
		assert.NoError(t, err)
	})

	t.Run("missing entry", func(t *testing.T) {
		assert.ErrorIs(t, dir.RemoveChild("nope"), ErrNotFound)
	})
}

func TestPutFile(t *testing.T) {
	dir := NewDirectory()
	require.NoError(t, dir.CreateChild("sub", NewDirectory()))

	require.NoError(t, dir.PutFile("note.txt", "one"))
	require.NoError(t, dir.PutFile("note.txt", "two"))

	file, err := dir.Child("note.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", file.Content())

	assert.ErrorIs(t, dir.PutFile("sub", "nope"), ErrNotAFile)
}

func TestList(t *testing.T) {
	dir := NewDirectory()
	require.NoError(t, dir.CreateChild("b.txt", NewFile("")))
	require.NoError(t, dir.CreateChild("a", NewDirectory()))
	require.NoError(t, dir.CreateChild(".hidden", NewFile("")))

	t.Run("hidden entries skipped by default", func(t *testing.T) {
		entries := dir.List(false)
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Name)
		assert.Equal(t, KindDirectory, entries[0].Kind)
		assert.Equal(t, "b.txt", entries[1].Name)
		assert.Equal(t, KindFile, entries[1].Kind)
	})

	t.Run("includeHidden shows dotfiles", func(t *testing.T) {
		entries := dir.List(true)
		require.Len(t, entries, 3)
		assert.Equal(t, ".hidden", entries[0].Name)
	})

	t.Run("listing a file yields nothing", func(t *testing.T) {
		assert.Nil(t, NewFile("x").List(true))
	})
}
