package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Flag is a three-state boolean. A key that was never written reads as
// FlagUnset, which callers must treat differently from an explicit false.
type Flag int

const (
	FlagUnset Flag = iota
	FlagFalse
	FlagTrue
)

// Bool collapses the flag for callers that only care about "definitely true".
func (f Flag) Bool() bool {
	return f == FlagTrue
}

func (f Flag) String() string {
	switch f {
	case FlagFalse:
		return "false"
	case FlagTrue:
		return "true"
	default:
		return "unset"
	}
}

func flagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

type state struct {
	AuthToken       string `json:"authToken,omitempty"`
	UserEmail       string `json:"userEmail,omitempty"`
	UserName        string `json:"userName,omitempty"`
	ProfileComplete *bool  `json:"profileComplete,omitempty"`
	QuizTaken       *bool  `json:"quizTaken,omitempty"`
}

// Store persists session facts to a JSON file so they survive restarts.
type Store struct {
	mu    sync.RWMutex
	path  string
	state state
}

// NewStore creates a store rooted at dir. Nothing is read until Load.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "session.json")}
}

// Load reads the session file. A missing file is not an error; it leaves
// every key absent.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = state{}
			return nil
		}
		return fmt.Errorf("read session: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("parse session: %w", err)
	}
	s.state = st
	return nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Token returns the bearer credential, reporting whether one is stored.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AuthToken, s.state.AuthToken != ""
}

// Email returns the stored account email.
func (s *Store) Email() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UserEmail, s.state.UserEmail != ""
}

// Name returns the stored display name.
func (s *Store) Name() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UserName, s.state.UserName != ""
}

// ProfileComplete reports the onboarding gate flag.
func (s *Store) ProfileComplete() Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ProfileComplete == nil {
		return FlagUnset
	}
	return flagOf(*s.state.ProfileComplete)
}

// QuizTaken reports the quiz completion flag.
func (s *Store) QuizTaken() Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.QuizTaken == nil {
		return FlagUnset
	}
	return flagOf(*s.state.QuizTaken)
}

// SetIdentity populates the session wholesale from a login response.
func (s *Store) SetIdentity(token, email, name string, profileComplete, quizTaken bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, qt := profileComplete, quizTaken
	s.state = state{
		AuthToken:       token,
		UserEmail:       email,
		UserName:        name,
		ProfileComplete: &pc,
		QuizTaken:       &qt,
	}
	return s.save()
}

// SetName updates only the display name.
func (s *Store) SetName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UserName = name
	return s.save()
}

// SetProfileComplete records the onboarding gate outcome.
func (s *Store) SetProfileComplete(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ProfileComplete = &v
	return s.save()
}

// SetQuizTaken records the quiz completion outcome.
func (s *Store) SetQuizTaken(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.QuizTaken = &v
	return s.save()
}

// Clear wipes every key and removes the backing file. Used on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
