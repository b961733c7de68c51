package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileLeavesKeysAbsent(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Load())

	_, ok := s.Token()
	assert.False(t, ok)
	assert.Equal(t, FlagUnset, s.ProfileComplete())
	assert.Equal(t, FlagUnset, s.QuizTaken())
}

func TestUnsetAndFalseAreDistinct(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Load())

	assert.Equal(t, FlagUnset, s.ProfileComplete())
	require.NoError(t, s.SetProfileComplete(false))
	assert.Equal(t, FlagFalse, s.ProfileComplete())
	assert.False(t, s.ProfileComplete().Bool())
	require.NoError(t, s.SetProfileComplete(true))
	assert.Equal(t, FlagTrue, s.ProfileComplete())
}

func TestIdentityRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.Load())
	require.NoError(t, s.SetIdentity("tok-1", "ada@example.com", "Ada", false, true))

	// A fresh store reading the same file sees the same facts.
	s2 := NewStore(dir)
	require.NoError(t, s2.Load())

	tok, ok := s2.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)
	email, _ := s2.Email()
	assert.Equal(t, "ada@example.com", email)
	name, _ := s2.Name()
	assert.Equal(t, "Ada", name)
	assert.Equal(t, FlagFalse, s2.ProfileComplete())
	assert.Equal(t, FlagTrue, s2.QuizTaken())
}

func TestClearRemovesEveryKey(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.Load())
	require.NoError(t, s.SetIdentity("tok-1", "ada@example.com", "Ada", true, true))
	require.NoError(t, s.Clear())

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.Email()
	assert.False(t, ok)
	_, ok = s.Name()
	assert.False(t, ok)
	assert.Equal(t, FlagUnset, s.ProfileComplete())
	assert.Equal(t, FlagUnset, s.QuizTaken())

	// The file is gone too, so a reload sees nothing stale.
	s2 := NewStore(dir)
	require.NoError(t, s2.Load())
	_, ok = s2.Token()
	assert.False(t, ok)
	assert.NoFileExists(t, filepath.Join(dir, "session.json"))
}

func TestSetNamePreservesOtherKeys(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Load())
	require.NoError(t, s.SetIdentity("tok-1", "ada@example.com", "Ada", false, false))
	require.NoError(t, s.SetName("Jane Doe"))

	name, _ := s.Name()
	assert.Equal(t, "Jane Doe", name)
	tok, _ := s.Token()
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, FlagFalse, s.ProfileComplete())
}
