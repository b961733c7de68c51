package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRequiresCurrentAnswer(t *testing.T) {
	f := NewFlow()

	assert.False(t, f.CanNext())
	assert.ErrorIs(t, f.Next(), ErrUnanswered)

	require.NoError(t, f.SelectAnswer("fast-paced"))
	assert.True(t, f.CanNext())
	require.NoError(t, f.Next())
	assert.Equal(t, 1, f.Index())
}

func TestSelectAnswerIdempotentAndValidated(t *testing.T) {
	f := NewFlow()

	require.NoError(t, f.SelectAnswer("fast-paced"))
	require.NoError(t, f.SelectAnswer("structured")) // reselect allowed
	assert.Equal(t, "structured", f.Answer(0))
	assert.Equal(t, 0, f.Index()) // no auto-advance

	assert.ErrorIs(t, f.SelectAnswer("team-oriented"), ErrUnknownTag)
}

func TestNextAndSubmitMutuallyExclusiveByIndex(t *testing.T) {
	f := NewFlow()

	// Not at the last question: Submit unavailable.
	require.NoError(t, f.SelectAnswer("fast-paced"))
	_, err := f.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotLastIndex)

	advanceToLast(t, f)
	assert.True(t, f.AtLastQuestion())
	assert.False(t, f.CanNext())
	assert.ErrorIs(t, f.Next(), ErrNotLastIndex)
}

func TestSubmitGatedOnCompleteness(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectAnswer("fast-paced"))
	require.NoError(t, f.Next())
	require.NoError(t, f.SelectAnswer("analytical"))
	require.NoError(t, f.Next())
	require.NoError(t, f.SelectAnswer("team-oriented"))
	require.NoError(t, f.Next())
	require.NoError(t, f.SelectAnswer("startup-culture"))
	require.NoError(t, f.Next())

	// Last slot still empty: the gate covers the whole answer set.
	assert.False(t, f.CanSubmit())
	_, err := f.BeginSubmit()
	assert.ErrorIs(t, err, ErrIncomplete)

	require.NoError(t, f.SelectAnswer("impact-driven"))
	assert.True(t, f.CanSubmit())

	answers, err := f.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, []string{"fast-paced", "analytical", "team-oriented", "startup-culture", "impact-driven"}, answers)
}

func TestSubmitFailureStaysOnLastQuestion(t *testing.T) {
	f := answeredFlow(t)
	advanceToLast(t, f)

	_, err := f.BeginSubmit()
	require.NoError(t, err)
	_, err = f.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitPending)

	f.ApplySubmitResult(errors.New("Failed to save results."))
	assert.False(t, f.Done())
	assert.True(t, f.AtLastQuestion())
	assert.Equal(t, "Failed to save results.", f.SubmitErr())

	_, err = f.BeginSubmit()
	require.NoError(t, err)
	f.ApplySubmitResult(nil)
	assert.True(t, f.Done())
}

func TestBackBoundedAtZero(t *testing.T) {
	f := NewFlow()
	assert.Error(t, f.Back())

	require.NoError(t, f.SelectAnswer("fast-paced"))
	require.NoError(t, f.Next())
	require.NoError(t, f.Back())
	assert.Equal(t, 0, f.Index())
}

func answeredFlow(t *testing.T) *Flow {
	t.Helper()
	f := NewFlow()
	tags := []string{"fast-paced", "analytical", "team-oriented", "startup-culture", "impact-driven"}
	for i, tag := range tags {
		require.NoError(t, f.SelectAnswer(tag))
		if i < len(tags)-1 {
			require.NoError(t, f.Next())
		}
	}
	require.NoError(t, f.Back())
	for f.Index() > 0 {
		require.NoError(t, f.Back())
	}
	return f
}

func advanceToLast(t *testing.T, f *Flow) {
	t.Helper()
	for !f.AtLastQuestion() {
		if f.Answer(f.Index()) == "" {
			require.NoError(t, f.SelectAnswer(f.Current().Options[0].Tag))
		}
		require.NoError(t, f.Next())
	}
}
