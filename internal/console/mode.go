package console

// Mode is a pushed, self-contained interactive handler that temporarily owns
// line input. While a mode is on the stack the dispatcher hands every raw
// input line to it instead of the command registry, and the displayed prompt
// becomes the mode's prompt.
type Mode interface {
	Prompt() string
	HandleLine(line string) Result
}

// Result is what a command handler or mode line handler produces for one
// input line. Done and Push are only meaningful coming from a mode; Quit and
// Clear only from a command handler.
type Result struct {
	Output string
	IsErr  bool

	Done bool // mode signals its own pop
	Push Mode // enter a mode (or nest one from inside another)

	Quit  bool
	Clear bool
}

// Stack is the modal input stack. Frames are pushed by command handlers and
// popped only when their own line handler signals Done; there is no external
// cancellation. The empty stack is the implicit Normal state where the
// command registry dispatches.
type Stack struct {
	frames []Mode
}

func (s *Stack) Active() bool {
	return len(s.frames) > 0
}

func (s *Stack) Depth() int {
	return len(s.frames)
}

func (s *Stack) Push(m Mode) {
	s.frames = append(s.frames, m)
}

func (s *Stack) Top() Mode {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *Stack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// HandleLine routes one raw input line to the top frame and applies the
// frame's pop/push signals. Exactly one line is in flight at a time; context
// mutations a handler makes are visible to its next invocation.
func (s *Stack) HandleLine(line string) Result {
	top := s.Top()
	if top == nil {
		return Result{}
	}
	result := top.HandleLine(line)
	if result.Done {
		s.pop()
	}
	if result.Push != nil {
		s.Push(result.Push)
	}
	return result
}

// Prompt returns the top frame's prompt, or fallback when the stack is empty.
func (s *Stack) Prompt(fallback string) string {
	if top := s.Top(); top != nil {
		return top.Prompt()
	}
	return fallback
}

// ModeEntry wires a mode constructor into the command registry by name. The
// launcher returns the mode to push plus an intro message shown immediately;
// registration happens in main so mode packages can depend on this one.
type ModeEntry struct {
	Name        string
	Description string
	Launch      func(s *Session, args []string) (Mode, string, error)
}
