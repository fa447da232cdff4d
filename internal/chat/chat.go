// Package chat is the local chat log mode. There is no transport behind it:
// lines are timestamped, attributed to the current user, and appended to a
// chat.log file in the user's home directory when the mode exits.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/InsulaLabs/vterm/internal/console"
	"github.com/InsulaLabs/vterm/internal/vfs"
)

const LogFileName = "chat.log"

type Mode struct {
	session *console.Session
	user    string
	home    *vfs.Node
	log     strings.Builder

	now func() time.Time
}

func Entry() console.ModeEntry {
	return console.ModeEntry{
		Name:        "chat",
		Description: "Open the chat log (EXIT to leave)",
		Launch:      launch,
	}
}

func launch(s *console.Session, args []string) (console.Mode, string, error) {
	profile := s.State().CurrentProfile()
	home, err := vfs.ResolveDirectory(s.State().Root, profile.Home)
	if err != nil {
		return nil, "", err
	}

	m := &Mode{
		session: s,
		user:    profile.Name,
		home:    home,
		now:     time.Now,
	}

	// Pick up where the last session left off, if a log exists.
	if existing, err := home.Child(LogFileName); err == nil && !existing.IsDir() {
		m.log.WriteString(existing.Content())
	}

	intro := fmt.Sprintf("joined chat as %s (EXIT to leave)", profile.Name)
	return m, intro, nil
}

func (m *Mode) Prompt() string {
	return "chat> "
}

func (m *Mode) HandleLine(line string) console.Result {
	if strings.EqualFold(line, "EXIT") {
		if err := m.home.PutFile(LogFileName, m.log.String()); err != nil {
			return console.Result{Output: err.Error(), IsErr: true}
		}
		if err := m.session.Persist(); err != nil {
			return console.Result{Output: err.Error(), IsErr: true}
		}
		return console.Result{Output: "chat log written to " + LogFileName, Done: true}
	}

	entry := fmt.Sprintf("[%s] %s: %s", m.now().Format("15:04:05"), m.user, line)
	m.log.WriteString(entry)
	m.log.WriteString("\n")

	// Single participant; the echo is the whole conversation.
	return console.Result{Output: entry}
}
