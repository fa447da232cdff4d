package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/InsulaLabs/vterm/internal/calc"
	"github.com/InsulaLabs/vterm/internal/state"
	"github.com/InsulaLabs/vterm/internal/vfs"
)

type CommandHandler func(s *Session, args []string) Result

type Command struct {
	Name        string
	Usage       string
	Description string
	Handler     CommandHandler
}

// Registry is the closed, statically enumerated command set. The ordered
// slice drives help output; the index serves dispatch. Mode entries are
// appended at construction so interactive commands sit in the same listing.
type Registry struct {
	ordered []Command
	index   map[string]Command
}

func NewRegistry(modes []ModeEntry) *Registry {
	commands := []Command{
		{"help", "help", "List available commands", cmdHelp},
		{"ls", "ls [-a] [path]", "List directory contents", cmdLs},
		{"cd", "cd <path>", "Change the current directory", cmdCd},
		{"pwd", "pwd", "Print the current directory", cmdPwd},
		{"cat", "cat <name>", "Print a file's contents", cmdCat},
		{"mkdir", "mkdir <name>", "Create a directory", cmdMkdir},
		{"touch", "touch <name>", "Create an empty file", cmdTouch},
		{"mv", "mv <old> <new>", "Rename an entry in the current directory", cmdMv},
		{"rm", "rm <name>", "Remove a file", cmdRm},
		{"user", "user create|login|list [name]", "Manage user profiles", cmdUser},
		{"calc", "calc <expression>", "Evaluate an arithmetic expression", cmdCalc},
		{"info", "info", "Show session information", cmdInfo},
		{"cls", "cls", "Clear the screen", cmdCls},
		{"reboot", "reboot", "Reload the session from storage", cmdReboot},
		{"reset", "reset", "Discard stored state and start fresh", cmdReset},
		{"exit", "exit", "Leave the console", cmdExit},
	}

	for _, entry := range modes {
		commands = append(commands, Command{
			Name:        entry.Name,
			Usage:       entry.Name,
			Description: entry.Description,
			Handler:     launchHandler(entry),
		})
	}

	index := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		index[cmd.Name] = cmd
	}
	return &Registry{ordered: commands, index: index}
}

func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.index[name]
	return cmd, ok
}

// Dispatch runs one already-tokenized command line.
func (r *Registry) Dispatch(s *Session, name string, args []string) Result {
	cmd, ok := r.index[name]
	if !ok {
		return Result{Output: fmt.Sprintf("%s: command not found", name), IsErr: true}
	}
	return cmd.Handler(s, args)
}

func launchHandler(entry ModeEntry) CommandHandler {
	return func(s *Session, args []string) Result {
		mode, intro, err := entry.Launch(s, args)
		if err != nil {
			return Result{Output: err.Error(), IsErr: true}
		}
		return Result{Output: intro, Push: mode}
	}
}

func cmdHelp(s *Session, args []string) Result {
	var b strings.Builder
	b.WriteString("Available Commands:\n\n")
	for _, cmd := range s.registry.ordered {
		b.WriteString(fmt.Sprintf("  %-32s %s\n", cmd.Usage, cmd.Description))
	}
	return Result{Output: b.String()}
}

func cmdLs(s *Session, args []string) Result {
	includeHidden := false
	path := s.State().CurrentDir
	for _, arg := range args {
		if arg == "-a" {
			includeHidden = true
			continue
		}
		path = vfs.Normalize(s.State().CurrentDir, arg)
	}

	dir, err := vfs.ResolveDirectory(s.State().Root, path)
	if err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}

	var out strings.Builder
	for _, entry := range dir.List(includeHidden) {
		kind := "f"
		if entry.Kind == vfs.KindDirectory {
			kind = "d"
		}
		out.WriteString(fmt.Sprintf("%s %s\n", kind, entry.Name))
	}
	return Result{Output: out.String()}
}

func cmdCd(s *Session, args []string) Result {
	target := "/"
	if len(args) > 0 {
		target = args[0]
	}
	if err := s.State().ChangeDirectory(target); err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	s.Persist()
	return Result{}
}

func cmdPwd(s *Session, args []string) Result {
	return Result{Output: s.State().CurrentDir}
}

func cmdCat(s *Session, args []string) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: cat <name>", IsErr: true}
	}
	path := vfs.Normalize(s.State().CurrentDir, args[0])
	file, err := vfs.ResolveFile(s.State().Root, path)
	if err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	return Result{Output: file.Content()}
}

func cmdMkdir(s *Session, args []string) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: mkdir <name>", IsErr: true}
	}
	target := vfs.Normalize(s.State().CurrentDir, args[0])
	parent, err := vfs.ResolveDirectory(s.State().Root, vfs.Parent(target))
	if err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	if err := parent.CreateChild(vfs.Base(target), vfs.NewDirectory()); err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	s.Persist()
	return Result{}
}

func cmdTouch(s *Session, args []string) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: touch <name>", IsErr: true}
	}
	target := vfs.Normalize(s.State().CurrentDir, args[0])
	parent, err := vfs.ResolveDirectory(s.State().Root, vfs.Parent(target))
	if err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	name := vfs.Base(target)
	if existing, err := parent.Child(name); err == nil {
		if existing.IsDir() {
			return Result{Output: fmt.Sprintf("%s: %v", name, vfs.ErrNotAFile), IsErr: true}
		}
		return Result{}
	}
	if err := parent.CreateChild(name, vfs.NewFile("")); err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	s.Persist()
	return Result{}
}

func cmdMv(s *Session, args []string) Result {
	if len(args) < 2 {
		return Result{Output: "Usage: mv <old> <new>", IsErr: true}
	}
	dir, err := s.State().CurrentDirectory()
	if err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	if err := dir.Rename(args[0], args[1]); err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	s.Persist()
	return Result{}
}

func cmdRm(s *Session, args []string) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: rm <name>", IsErr: true}
	}
	dir, err := s.State().CurrentDirectory()
	if err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	if err := dir.RemoveChild(args[0]); err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	s.Persist()
	return Result{}
}

func cmdUser(s *Session, args []string) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: user create|login|list [name]", IsErr: true}
	}
	switch args[0] {
	case "create":
		if len(args) < 2 {
			return Result{Output: "Usage: user create <name>", IsErr: true}
		}
		if err := s.State().CreateUser(args[1]); err != nil {
			return Result{Output: err.Error(), IsErr: true}
		}
		s.Persist()
		return Result{Output: fmt.Sprintf("user %s created", args[1])}
	case "login":
		if len(args) < 2 {
			return Result{Output: "Usage: user login <name>", IsErr: true}
		}
		if err := s.State().Login(args[1]); err != nil {
			return Result{Output: err.Error(), IsErr: true}
		}
		s.Persist()
		return Result{Output: fmt.Sprintf("logged in as %s", args[1])}
	case "list":
		return Result{Output: strings.Join(s.State().Users(), "\n")}
	default:
		return Result{Output: fmt.Sprintf("user: unknown subcommand %q", args[0]), IsErr: true}
	}
}

func cmdCalc(s *Session, args []string) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: calc <expression>", IsErr: true}
	}
	value, err := calc.Eval(strings.Join(args, " "))
	if err != nil {
		return Result{Output: err.Error(), IsErr: true}
	}
	return Result{Output: calc.Format(value)}
}

func cmdInfo(s *Session, args []string) Result {
	st := s.State()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("session   %s\n", s.SessionID()))
	b.WriteString(fmt.Sprintf("user      %s\n", st.CurrentUser))
	b.WriteString(fmt.Sprintf("home      %s\n", st.CurrentProfile().Home))
	b.WriteString(fmt.Sprintf("cwd       %s\n", st.CurrentDir))
	b.WriteString(fmt.Sprintf("profiles  %d\n", len(st.Profiles)))
	b.WriteString(fmt.Sprintf("uptime    %s\n", s.Uptime().Round(time.Second)))
	b.WriteString(fmt.Sprintf("slot      %s\n", state.SlotKey))
	return Result{Output: b.String()}
}

func cmdCls(s *Session, args []string) Result {
	return Result{Clear: true}
}

func cmdReboot(s *Session, args []string) Result {
	s.SetState(s.Store().Load())
	return Result{Clear: true, Output: "session restored from storage"}
}

func cmdReset(s *Session, args []string) Result {
	s.SetState(s.Store().Reset())
	return Result{Clear: true, Output: "session reset to defaults"}
}

func cmdExit(s *Session, args []string) Result {
	return Result{Quit: true}
}
