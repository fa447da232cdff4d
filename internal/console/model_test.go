package console

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeLine(t *testing.T, model tea.Model, line string) tea.Model {
	t.Helper()
	for _, r := range line {
		if r == ' ' {
			model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model
}

func newTestModel(t *testing.T, modes ...ModeEntry) tea.Model {
	t.Helper()
	session, registry := newTestSession(t, modes...)
	var model tea.Model = New(session, registry)
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model
}

func TestModelDispatchesCommands(t *testing.T) {
	model := newTestModel(t)

	model = typeLine(t, model, "pwd")

	m := model.(Model)
	require.NotEmpty(t, m.displayHistory)
	last := m.displayHistory[len(m.displayHistory)-1]
	assert.Equal(t, displayEntryOutput, last.entryType)
	assert.Equal(t, "/home/guest", last.content)
	assert.Contains(t, m.View(), "guest:/home/guest> ")
}

func TestModelRoutesLinesToActiveMode(t *testing.T) {
	mode := &echoMode{name: "demo"}
	entry := ModeEntry{
		Name:        "demo",
		Description: "test mode",
		Launch: func(s *Session, args []string) (Mode, string, error) {
			return mode, "demo started", nil
		},
	}
	model := newTestModel(t, entry)

	model = typeLine(t, model, "demo")
	m := model.(Model)
	require.True(t, m.modes.Active())
	assert.Contains(t, m.View(), "demo> ")

	// while the mode is active, raw lines bypass the registry entirely
	model = typeLine(t, model, "pwd")
	assert.Equal(t, []string{"pwd"}, mode.lines)

	model = typeLine(t, model, "done")
	m = model.(Model)
	assert.False(t, m.modes.Active())
	assert.Contains(t, m.View(), "guest:/home/guest> ")
}

func TestModelClearAndQuit(t *testing.T) {
	model := newTestModel(t)

	model = typeLine(t, model, "pwd")
	model = typeLine(t, model, "cls")
	m := model.(Model)
	assert.Empty(t, m.displayHistory)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = model.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "Goodbye!\n", m.View())
}

func TestModelBlankLinesAreIgnored(t *testing.T) {
	model := newTestModel(t)
	before := len(model.(Model).displayHistory)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, before, len(model.(Model).displayHistory))
}

func TestModelHistoryNavigation(t *testing.T) {
	model := newTestModel(t)
	model = typeLine(t, model, "pwd")
	model = typeLine(t, model, "help")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "help", model.(Model).buffer)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "pwd", model.(Model).buffer)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "help", model.(Model).buffer)
}

func TestModelEditingKeys(t *testing.T) {
	model := newTestModel(t)

	for _, r := range "catx" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "cat", model.(Model).buffer)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	assert.Equal(t, "chat", model.(Model).buffer)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m := model.(Model)
	assert.Equal(t, "", m.buffer)
	last := m.displayHistory[len(m.displayHistory)-1]
	assert.True(t, strings.HasSuffix(last.content, "^C"))
}
