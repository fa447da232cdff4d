package console

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/InsulaLabs/vterm/internal/state"
	"github.com/google/uuid"
)

type SessionConfig struct {
	Logger               *slog.Logger
	Prompt               string
	ActiveCursorSymbol   string
	InactiveCursorSymbol string
}

// Session binds the loaded state to one interactive console run: identity,
// command history, prompt, and the store the state is persisted through.
type Session struct {
	sessionID string

	history       []string
	historyIndex  int
	currentBuffer string
	inHistoryMode bool

	config         SessionConfig
	startTimestamp time.Time

	state    *state.State
	store    *state.Store
	registry *Registry

	logger *slog.Logger
}

func NewSession(config SessionConfig, st *state.State, store *state.Store) *Session {

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Session{
		sessionID:      uuid.New().String(),
		history:        []string{},
		historyIndex:   -1,
		inHistoryMode:  false,
		config:         config,
		startTimestamp: time.Now(),
		state:          st,
		store:          store,
		logger:         config.Logger.WithGroup("session"),
	}
}

func (s *Session) attachRegistry(r *Registry) {
	s.registry = r
}

func (s *Session) State() *state.State {
	return s.state
}

func (s *Session) Store() *state.Store {
	return s.store
}

// SetState swaps the live state, used by reboot/reset which re-read storage.
func (s *Session) SetState(st *state.State) {
	s.state = st
}

// Persist writes the current state through to storage. Failures are logged
// and reported; the in-memory state stays authoritative either way.
func (s *Session) Persist() error {
	if err := s.store.Save(s.state); err != nil {
		s.logger.Error("failed to persist session state", "error", err)
		return err
	}
	return nil
}

func (s *Session) AddToHistory(cmd string) {
	if cmd != "" {
		s.history = append(s.history, cmd)
		s.historyIndex = len(s.history)
		s.inHistoryMode = false
	}
}

func (s *Session) StartHistoryNavigation(currentBuffer string) {
	if !s.inHistoryMode {
		s.currentBuffer = currentBuffer
		s.inHistoryMode = true
		s.historyIndex = len(s.history)
	}
}

func (s *Session) IsInHistoryMode() bool {
	return s.inHistoryMode
}

func (s *Session) NavigateHistory(up bool) string {
	if len(s.history) == 0 {
		return ""
	}

	if up {
		if s.historyIndex > 0 {
			s.historyIndex--
			return s.history[s.historyIndex]
		}
	} else {
		if s.historyIndex < len(s.history)-1 {
			s.historyIndex++
			return s.history[s.historyIndex]
		} else {
			s.historyIndex = len(s.history)
			s.inHistoryMode = false
			return s.currentBuffer
		}
	}

	if s.historyIndex >= 0 && s.historyIndex < len(s.history) {
		return s.history[s.historyIndex]
	}

	return s.currentBuffer
}

func (s *Session) GetHistory() []string {
	return s.history
}

func (s *Session) GetActiveCursorSymbol() string {
	return s.config.ActiveCursorSymbol
}

func (s *Session) GetInactiveCursorSymbol() string {
	return s.config.InactiveCursorSymbol
}

func (s *Session) Uptime() time.Duration {
	return time.Since(s.startTimestamp)
}

func (s *Session) SessionID() string {
	return s.sessionID
}

// GetPrompt renders the normal-state prompt: user, current directory, and
// the configured prompt glyph.
func (s *Session) GetPrompt() string {
	return fmt.Sprintf("%s:%s%s", s.state.CurrentUser, s.state.CurrentDir, s.config.Prompt)
}
