package vfs

import (
	"fmt"
	"strings"
)

// Normalize turns an input path plus the current directory into an absolute
// path string.
//
//   - ".." pops the last segment of currentDir; popping past root is a no-op,
//     root stays root.
//   - A leading "/" makes the input absolute, taken verbatim.
//   - Anything else is appended to currentDir with a single separator. A
//     relative path containing intermediate ".." or "." segments is NOT
//     interpreted; only a lone ".." is understood. Known limitation.
func Normalize(currentDir, input string) string {
	if input == ".." {
		return Parent(currentDir)
	}
	if strings.HasPrefix(input, "/") {
		return input
	}
	if currentDir == "/" {
		return "/" + input
	}
	return currentDir + "/" + input
}

// Parent returns the parent of an absolute path, clamped at root.
func Parent(path string) string {
	if path == "/" || path == "" {
		return "/"
	}
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

// Split breaks an absolute path into its segments. "/" yields no segments.
func Split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Base returns the final segment of an absolute path, "" for root.
func Base(path string) string {
	segments := Split(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// ResolveDirectory resolves path from root and fails distinctly when the path
// exists but is a file rather than a directory.
func ResolveDirectory(root *Node, path string) (*Node, error) {
	node, err := root.Resolve(Split(path))
	if err != nil {
		return nil, err
	}
	if !node.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotADirectory)
	}
	return node, nil
}

// ResolveFile resolves path from root and fails distinctly when the path
// exists but is a directory.
func ResolveFile(root *Node, path string) (*Node, error) {
	node, err := root.Resolve(Split(path))
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotAFile)
	}
	return node, nil
}
