package state

import (
	"encoding/json"
	"fmt"

	"github.com/InsulaLabs/vterm/internal/vfs"
)

// Wire schema, one JSON document per session:
//
//	{
//	  "files":       { "<name>": { "type": "dir"|"file", "contents": <map|string> }, ... },
//	  "profiles":    { "<name>": { "home": "<abs path>" }, ... },
//	  "currentDir":  "<abs path>",
//	  "currentUser": "<name>"
//	}
//
// "files" holds the root directory's children. Documents written before
// currentUser was persisted load with the default user.

type nodeDoc struct {
	Type     string          `json:"type"`
	Contents json.RawMessage `json:"contents"`
}

type profileDoc struct {
	Home string `json:"home"`
}

type stateDoc struct {
	Files       map[string]nodeDoc    `json:"files"`
	Profiles    map[string]profileDoc `json:"profiles"`
	CurrentDir  string                `json:"currentDir"`
	CurrentUser string                `json:"currentUser,omitempty"`
}

func encodeNode(node *vfs.Node) (nodeDoc, error) {
	if !node.IsDir() {
		contents, err := json.Marshal(node.Content())
		if err != nil {
			return nodeDoc{}, err
		}
		return nodeDoc{Type: "file", Contents: contents}, nil
	}

	children := make(map[string]nodeDoc, node.Len())
	for _, entry := range node.List(true) {
		child, err := node.Child(entry.Name)
		if err != nil {
			return nodeDoc{}, err
		}
		doc, err := encodeNode(child)
		if err != nil {
			return nodeDoc{}, err
		}
		children[entry.Name] = doc
	}
	contents, err := json.Marshal(children)
	if err != nil {
		return nodeDoc{}, err
	}
	return nodeDoc{Type: "dir", Contents: contents}, nil
}

func decodeNode(doc nodeDoc) (*vfs.Node, error) {
	switch doc.Type {
	case "file":
		var content string
		if err := json.Unmarshal(doc.Contents, &content); err != nil {
			return nil, fmt.Errorf("file contents: %w", err)
		}
		return vfs.NewFile(content), nil
	case "dir":
		var children map[string]nodeDoc
		if err := json.Unmarshal(doc.Contents, &children); err != nil {
			return nil, fmt.Errorf("dir contents: %w", err)
		}
		dir := vfs.NewDirectory()
		for name, childDoc := range children {
			child, err := decodeNode(childDoc)
			if err != nil {
				return nil, err
			}
			if err := dir.CreateChild(name, child); err != nil {
				return nil, err
			}
		}
		return dir, nil
	default:
		return nil, fmt.Errorf("unknown node type %q", doc.Type)
	}
}

// Encode serializes the full state document.
func Encode(s *State) ([]byte, error) {
	files := make(map[string]nodeDoc, s.Root.Len())
	for _, entry := range s.Root.List(true) {
		child, err := s.Root.Child(entry.Name)
		if err != nil {
			return nil, err
		}
		doc, err := encodeNode(child)
		if err != nil {
			return nil, err
		}
		files[entry.Name] = doc
	}

	profiles := make(map[string]profileDoc, len(s.Profiles))
	for name, profile := range s.Profiles {
		profiles[name] = profileDoc{Home: profile.Home}
	}

	return json.Marshal(stateDoc{
		Files:       files,
		Profiles:    profiles,
		CurrentDir:  s.CurrentDir,
		CurrentUser: s.CurrentUser,
	})
}

// Decode parses a state document and validates the parts whose invariants
// the rest of the system observes: currentDir must resolve to a directory
// and the current user must be a registered profile.
func Decode(data []byte) (*State, error) {
	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Files == nil || doc.Profiles == nil || doc.CurrentDir == "" {
		return nil, fmt.Errorf("state document incomplete")
	}

	root := vfs.NewDirectory()
	for name, childDoc := range doc.Files {
		child, err := decodeNode(childDoc)
		if err != nil {
			return nil, err
		}
		if err := root.CreateChild(name, child); err != nil {
			return nil, err
		}
	}

	profiles := make(map[string]Profile, len(doc.Profiles))
	for name, p := range doc.Profiles {
		profiles[name] = Profile{Name: name, Home: p.Home}
	}

	currentUser := doc.CurrentUser
	if currentUser == "" {
		currentUser = DefaultUser
	}
	if _, ok := profiles[currentUser]; !ok {
		return nil, fmt.Errorf("current user %q has no profile", currentUser)
	}

	if _, err := vfs.ResolveDirectory(root, doc.CurrentDir); err != nil {
		return nil, fmt.Errorf("current directory %s: %w", doc.CurrentDir, err)
	}

	return &State{
		Root:        root,
		Profiles:    profiles,
		CurrentUser: currentUser,
		CurrentDir:  doc.CurrentDir,
	}, nil
}
