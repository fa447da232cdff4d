package vfs

import (
	"fmt"
	"sort"
	"strings"
)

type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "dir"
	case KindFile:
		return "file"
	}
	return "unknown"
}

// Node is a single entry in the virtual file tree. The variant is explicit:
// directories own a name->child map, files own their text content. Every node
// except the root has exactly one parent directory; nothing in this package
// hands out a second reference to a child.
type Node struct {
	kind     Kind
	children map[string]*Node
	content  string
}

func NewDirectory() *Node {
	return &Node{
		kind:     KindDirectory,
		children: make(map[string]*Node),
	}
}

func NewFile(content string) *Node {
	return &Node{
		kind:    KindFile,
		content: content,
	}
}

func (n *Node) Kind() Kind  { return n.kind }
func (n *Node) IsDir() bool { return n.kind == KindDirectory }

func (n *Node) Content() string {
	return n.content
}

func (n *Node) SetContent(content string) error {
	if n.kind != KindFile {
		return ErrNotAFile
	}
	n.content = content
	return nil
}

// Child returns the immediate child with the given name, or ErrNotFound.
func (n *Node) Child(name string) (*Node, error) {
	if n.kind != KindDirectory {
		return nil, ErrNotADirectory
	}
	child, ok := n.children[name]
	if !ok {
		return nil, ErrNotFound
	}
	return child, nil
}

// Resolve walks from n through the given path segments. An empty segment
// list resolves to n itself.
func (n *Node) Resolve(segments []string) (*Node, error) {
	current := n
	for _, segment := range segments {
		if !current.IsDir() {
			return nil, fmt.Errorf("%s: %w", segment, ErrNotADirectory)
		}
		child, ok := current.children[segment]
		if !ok {
			return nil, fmt.Errorf("%s: %w", segment, ErrNotFound)
		}
		current = child
	}
	return current, nil
}

// CreateChild inserts node under name. Create is not idempotent; callers that
// want overwrite semantics remove the existing entry first.
func (n *Node) CreateChild(name string, node *Node) error {
	if n.kind != KindDirectory {
		return ErrNotADirectory
	}
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if _, ok := n.children[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrAlreadyExists)
	}
	n.children[name] = node
	return nil
}

// PutFile writes a file child under name, overwriting any existing file with
// that name. Overwriting a directory is refused.
func (n *Node) PutFile(name string, content string) error {
	if n.kind != KindDirectory {
		return ErrNotADirectory
	}
	if existing, ok := n.children[name]; ok {
		if existing.IsDir() {
			return fmt.Errorf("%s: %w", name, ErrNotAFile)
		}
		existing.content = content
		return nil
	}
	return n.CreateChild(name, NewFile(content))
}

// Rename moves the entry oldName to newName within this directory. The
// operation is scoped to a single directory's immediate children; a
// cross-directory move would need a remove+insert pair at a higher layer.
func (n *Node) Rename(oldName, newName string) error {
	if n.kind != KindDirectory {
		return ErrNotADirectory
	}
	node, ok := n.children[oldName]
	if !ok {
		return fmt.Errorf("%s: %w", oldName, ErrNotFound)
	}
	if newName == "" || strings.Contains(newName, "/") {
		return fmt.Errorf("%q: %w", newName, ErrInvalidName)
	}
	if _, ok := n.children[newName]; ok {
		return fmt.Errorf("%s: %w", newName, ErrAlreadyExists)
	}
	delete(n.children, oldName)
	n.children[newName] = node
	return nil
}

// RemoveChild deletes the named file from this directory. Directories cannot
// be removed through this operation; no recursive delete is exposed.
func (n *Node) RemoveChild(name string) error {
	if n.kind != KindDirectory {
		return ErrNotADirectory
	}
	node, ok := n.children[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if node.IsDir() {
		return fmt.Errorf("%s: %w", name, ErrNotAFile)
	}
	delete(n.children, name)
	return nil
}

type Entry struct {
	Name string
	Kind Kind
}

// List returns the directory's immediate children. Entries whose name begins
// with '.' are skipped unless includeHidden is set. Output is sorted by name
// for determinism; callers must not read meaning into the order.
func (n *Node) List(includeHidden bool) []Entry {
	if n.kind != KindDirectory {
		return nil
	}
	entries := make([]Entry, 0, len(n.children))
	for name, child := range n.children {
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		entries = append(entries, Entry{Name: name, Kind: child.kind})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Len reports the number of immediate children, hidden included.
func (n *Node) Len() int {
	return len(n.children)
}
