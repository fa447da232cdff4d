package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/InsulaLabs/vterm/internal/vfs"
)

const (
	DefaultUser = "guest"
	HomeRoot    = "/home"
)

type Profile struct {
	Name string
	Home string
}

// State is the whole of a session: the file tree, registered profiles, who is
// logged in, and where they stand. There is exactly one State per process and
// one logical line of control mutating it, so no locking here. Callers
// persist explicitly through Store after every mutation that should survive
// a restart.
type State struct {
	Root        *vfs.Node
	Profiles    map[string]Profile
	CurrentUser string
	CurrentDir  string
}

// Default builds the out-of-the-box session: a root holding /home/guest, the
// guest profile, and the current directory set to guest's home.
func Default() *State {
	root := vfs.NewDirectory()
	home := vfs.NewDirectory()
	guest := vfs.NewDirectory()

	// Construction order guarantees /home exists before any profile does.
	if err := root.CreateChild("home", home); err != nil {
		panic(fmt.Sprintf("state: seeding default tree: %v", err))
	}
	if err := home.CreateChild(DefaultUser, guest); err != nil {
		panic(fmt.Sprintf("state: seeding default tree: %v", err))
	}

	return &State{
		Root: root,
		Profiles: map[string]Profile{
			DefaultUser: {Name: DefaultUser, Home: HomeRoot + "/" + DefaultUser},
		},
		CurrentUser: DefaultUser,
		CurrentDir:  HomeRoot + "/" + DefaultUser,
	}
}

// CreateUser registers a profile and creates its home directory under /home
// as a single step. A missing /home is a seeding bug, not a user error.
func (s *State) CreateUser(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%q: %w", name, vfs.ErrInvalidName)
	}
	if _, ok := s.Profiles[name]; ok {
		return fmt.Errorf("user %s: %w", name, vfs.ErrAlreadyExists)
	}

	home, err := vfs.ResolveDirectory(s.Root, HomeRoot)
	if err != nil {
		panic(fmt.Sprintf("state: %s missing from tree: %v", HomeRoot, err))
	}

	if err := home.CreateChild(name, vfs.NewDirectory()); err != nil {
		return err
	}
	s.Profiles[name] = Profile{Name: name, Home: HomeRoot + "/" + name}
	return nil
}

// Login switches the current user and drops them into their home directory.
func (s *State) Login(name string) error {
	profile, ok := s.Profiles[name]
	if !ok {
		return fmt.Errorf("user %s: %w", name, vfs.ErrNotFound)
	}
	s.CurrentUser = name
	s.CurrentDir = profile.Home
	return nil
}

// Users returns all registered profile names, sorted.
func (s *State) Users() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurrentProfile returns the logged-in user's profile.
func (s *State) CurrentProfile() Profile {
	return s.Profiles[s.CurrentUser]
}

// CurrentDirectory resolves CurrentDir against the tree.
func (s *State) CurrentDirectory() (*vfs.Node, error) {
	return vfs.ResolveDirectory(s.Root, s.CurrentDir)
}

// ChangeDirectory normalizes input against CurrentDir and moves there if the
// target resolves to a directory.
func (s *State) ChangeDirectory(input string) error {
	target := vfs.Normalize(s.CurrentDir, input)
	if _, err := vfs.ResolveDirectory(s.Root, target); err != nil {
		return err
	}
	s.CurrentDir = target
	return nil
}
