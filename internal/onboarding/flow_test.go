package onboarding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextGatedOnEducationFields(t *testing.T) {
	f := NewFlow()

	assert.False(t, f.CanNext())
	assert.ErrorIs(t, f.Next(), ErrStepIncomplete)

	f.SetEducation("Bachelor's Degree")
	assert.False(t, f.CanNext())

	f.SetFieldOfStudy("Computer Science")
	assert.True(t, f.CanNext())
	require.NoError(t, f.Next())
	assert.Equal(t, StepResume, f.Step())
}

func TestResumeStepAlwaysAdvances(t *testing.T) {
	f := flowAtStep(t, StepResume)

	// No required field here; advancing without an upload is valid.
	assert.True(t, f.CanNext())
	require.NoError(t, f.Next())
	assert.Equal(t, StepSkills, f.Step())
}

func TestBackDisabledAtFirstStep(t *testing.T) {
	f := NewFlow()
	assert.Error(t, f.Back())

	f = flowAtStep(t, StepResume)
	require.NoError(t, f.Back())
	assert.Equal(t, StepEducation, f.Step())
}

func TestSkipFromAnyStepSkipsValidation(t *testing.T) {
	for _, step := range []int{StepEducation, StepResume, StepSkills} {
		f := NewFlow()
		if step > StepEducation {
			f = flowAtStep(t, step)
		}
		require.NoError(t, f.Skip())
		assert.Equal(t, StatusSkipped, f.Status())
		assert.ErrorIs(t, f.Next(), ErrFinished)
	}
}

func TestScanOverwritesSkills(t *testing.T) {
	f := flowAtStep(t, StepResume)
	f.SetSkills("hand-typed skills that will be lost")

	require.NoError(t, f.BeginScan())
	assert.True(t, f.ScanPending())
	assert.ErrorIs(t, f.BeginScan(), ErrScanPending)

	f.ApplyScanResult([]string{"Python", "SQL"}, nil)
	assert.False(t, f.ScanPending())
	assert.Equal(t, "Python, SQL", f.Skills())
	assert.Empty(t, f.ScanErr())
}

func TestFailedScanLeavesSkillsUntouched(t *testing.T) {
	f := flowAtStep(t, StepResume)
	f.SetSkills("Go, Kubernetes")

	require.NoError(t, f.BeginScan())
	f.ApplyScanResult(nil, errors.New("Failed to scan resume."))

	assert.Equal(t, "Go, Kubernetes", f.Skills())
	assert.Equal(t, "Failed to scan resume.", f.ScanErr())
	assert.Equal(t, StatusActive, f.Status())
}

func TestControlsUsableWhileScanPending(t *testing.T) {
	f := flowAtStep(t, StepResume)
	require.NoError(t, f.BeginScan())

	require.NoError(t, f.Next())
	require.NoError(t, f.Back())
	assert.Equal(t, StepResume, f.Step())
}

func TestSubmitOnlyFromFinalStep(t *testing.T) {
	f := flowAtStep(t, StepResume)
	_, err := f.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotLastStep)
}

func TestSubmitRequiresSkills(t *testing.T) {
	f := flowAtStep(t, StepSkills)
	_, err := f.BeginSubmit()
	assert.ErrorIs(t, err, ErrStepIncomplete)
}

func TestSubmitFailureIsResubmittable(t *testing.T) {
	f := flowAtStep(t, StepSkills)
	f.SetSkills("Python, SQL")

	payload, err := f.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "Bachelor's Degree", payload.Education)
	assert.Equal(t, "Computer Science", payload.FieldOfStudy)
	assert.Equal(t, "Python, SQL", payload.Skills)

	_, err = f.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitPending)

	f.ApplySubmitResult(errors.New("Failed to save profile."))
	assert.Equal(t, StatusActive, f.Status())
	assert.Equal(t, StepSkills, f.Step())
	assert.Equal(t, "Failed to save profile.", f.SubmitErr())
	assert.Equal(t, "Python, SQL", f.Skills())

	_, err = f.BeginSubmit()
	require.NoError(t, err)
	f.ApplySubmitResult(nil)
	assert.Equal(t, StatusCompleted, f.Status())
}

func flowAtStep(t *testing.T, step int) *Flow {
	t.Helper()
	f := NewFlow()
	f.SetEducation("Bachelor's Degree")
	f.SetFieldOfStudy("Computer Science")
	for f.Step() < step {
		require.NoError(t, f.Next())
	}
	return f
}
