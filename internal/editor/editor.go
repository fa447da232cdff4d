// Package editor is the line editor mode: every input line is appended to an
// in-memory buffer until SAVE writes it out as a file or EXIT throws it away.
package editor

import (
	"fmt"
	"strings"

	"github.com/InsulaLabs/vterm/internal/console"
	"github.com/InsulaLabs/vterm/internal/vfs"
)

type Mode struct {
	fileName string
	parent   *vfs.Node
	buffer   strings.Builder
	session  *console.Session
}

func Entry() console.ModeEntry {
	return console.ModeEntry{
		Name:        "edit",
		Description: "Open the line editor on a file in the current directory",
		Launch:      launch,
	}
}

func launch(s *console.Session, args []string) (console.Mode, string, error) {
	if len(args) == 0 {
		return nil, "", fmt.Errorf("usage: edit <name>")
	}
	name := args[0]
	if name == "" || strings.Contains(name, "/") {
		return nil, "", fmt.Errorf("%q: %w", name, vfs.ErrInvalidName)
	}

	dir, err := s.State().CurrentDirectory()
	if err != nil {
		return nil, "", err
	}

	m := &Mode{
		fileName: name,
		parent:   dir,
		session:  s,
	}

	// An existing file is loaded so SAVE rewrites the whole content.
	if existing, err := dir.Child(name); err == nil {
		if existing.IsDir() {
			return nil, "", fmt.Errorf("%s: %w", name, vfs.ErrNotAFile)
		}
		m.buffer.WriteString(existing.Content())
	}

	intro := fmt.Sprintf("editing %s (SAVE to write, EXIT to discard)", name)
	return m, intro, nil
}

func (m *Mode) Prompt() string {
	return fmt.Sprintf("edit(%s)> ", m.fileName)
}

// HandleLine appends anything that is not exactly SAVE or EXIT. The keywords
// match the whole line case-insensitively, never as a prefix.
func (m *Mode) HandleLine(line string) console.Result {
	switch {
	case strings.EqualFold(line, "SAVE"):
		if err := m.parent.PutFile(m.fileName, m.buffer.String()); err != nil {
			return console.Result{Output: err.Error(), IsErr: true}
		}
		if err := m.session.Persist(); err != nil {
			return console.Result{Output: err.Error(), IsErr: true}
		}
		return console.Result{Output: fmt.Sprintf("wrote %s", m.fileName), Done: true}
	case strings.EqualFold(line, "EXIT"):
		return console.Result{Output: "discarded", Done: true}
	default:
		m.buffer.WriteString(line)
		m.buffer.WriteString("\n")
		return console.Result{}
	}
}
