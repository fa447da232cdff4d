// Package quiz is the fixed-question quiz mode. Every input line answers the
// current question; the index always advances, and the mode pops itself after
// the last question. No exit keyword is needed.
package quiz

import (
	"fmt"
	"strings"

	"github.com/InsulaLabs/vterm/internal/console"
)

type Question struct {
	Prompt string
	Answer string
}

var defaultQuestions = []Question{
	{Prompt: "What command prints the current directory?", Answer: "pwd"},
	{Prompt: "What command lists the contents of a directory?", Answer: "ls"},
	{Prompt: "What keyword writes the editor buffer to disk?", Answer: "save"},
}

type Mode struct {
	questions []Question
	index     int
	score     int
}

func Entry() console.ModeEntry {
	return console.ModeEntry{
		Name:        "quiz",
		Description: "Take a short quiz",
		Launch:      launch,
	}
}

func launch(s *console.Session, args []string) (console.Mode, string, error) {
	m := NewMode(defaultQuestions)
	intro := fmt.Sprintf("quiz time: %d questions\n%s", len(m.questions), m.currentQuestion())
	return m, intro, nil
}

func NewMode(questions []Question) *Mode {
	return &Mode{questions: questions}
}

func (m *Mode) Prompt() string {
	return "quiz> "
}

func (m *Mode) Score() (score, total int) {
	return m.score, len(m.questions)
}

func (m *Mode) currentQuestion() string {
	return fmt.Sprintf("%d) %s", m.index+1, m.questions[m.index].Prompt)
}

func (m *Mode) HandleLine(line string) console.Result {
	question := m.questions[m.index]
	if strings.EqualFold(strings.TrimSpace(line), question.Answer) {
		m.score++
	}
	m.index++

	if m.index >= len(m.questions) {
		return console.Result{
			Output: fmt.Sprintf("quiz complete: %d/%d", m.score, len(m.questions)),
			Done:   true,
		}
	}
	return console.Result{Output: m.currentQuestion()}
}
