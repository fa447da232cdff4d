package state

import (
	"errors"
	"log/slog"

	"github.com/InsulaLabs/vterm/internal/kv"
)

const SlotKey = "vterm:session:v1"

// Store is the persistence adapter: the whole session document lives under a
// single slot key in the backing KV. Saves are explicit and whole-document;
// a crash between a mutation and Save loses that mutation.
type Store struct {
	kv     kv.KV
	logger *slog.Logger
}

func NewStore(backing kv.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:     backing,
		logger: logger.WithGroup("state"),
	}
}

// Load reads the slot and parses it. A missing key, unparsable payload, or
// schema mismatch all degrade to the default state; this is the sole
// recovery path for corrupted storage and is never surfaced as an error.
func (s *Store) Load() *State {
	raw, err := s.kv.Get(SlotKey)
	if err != nil {
		var notFound *kv.ErrKeyNotFound
		if !errors.As(err, &notFound) {
			s.logger.Warn("failed to read session slot, starting fresh", "error", err)
		}
		return Default()
	}

	st, err := Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("stored session unparsable, starting fresh", "error", err)
		return Default()
	}
	return st
}

// Save serializes the full state and overwrites the slot.
func (s *Store) Save(st *State) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	return s.kv.Set(SlotKey, string(data))
}

// Reset deletes the slot and reloads, which yields the defaults.
func (s *Store) Reset() *State {
	if err := s.kv.Delete(SlotKey); err != nil {
		s.logger.Warn("failed to delete session slot", "error", err)
	}
	return s.Load()
}
