package onboarding

import (
	"errors"
	"strings"
)

// Fixed option sets for the two step-1 selects.
var (
	EducationOptions = []string{
		"High School Diploma",
		"Associate Degree",
		"Bachelor's Degree",
		"Master's Degree",
		"Doctorate (PhD)",
	}
	FieldOfStudyOptions = []string{
		"Computer Science",
		"Business Administration",
		"Engineering",
		"Data Science & Analytics",
		"Marketing",
		"Finance",
		"Arts & Humanities",
	}
)

// Status is the flow's terminal disposition.
type Status int

const (
	StatusActive Status = iota
	StatusCompleted
	StatusSkipped
)

const (
	StepEducation = 1
	StepResume    = 2
	StepSkills    = 3
	lastStep      = StepSkills
)

var (
	ErrStepIncomplete = errors.New("required fields for this step are empty")
	ErrScanPending    = errors.New("a resume scan is already pending")
	ErrSubmitPending  = errors.New("a submission is already pending")
	ErrNotLastStep    = errors.New("submission is only available from the final step")
	ErrFinished       = errors.New("flow already finished")
)

// Profile is the payload produced by a completed flow.
type Profile struct {
	Education    string
	FieldOfStudy string
	Skills       string
}

// Flow is the three-step onboarding state machine. It performs no I/O
// itself; the caller runs the network operations the Begin methods hand
// out and reports back through the Apply methods.
type Flow struct {
	step   int
	status Status

	education    string
	fieldOfStudy string
	skills       string

	scanPending   bool
	scanErr       string
	submitPending bool
	submitErr     string
}

func NewFlow() *Flow {
	return &Flow{step: StepEducation}
}

func (f *Flow) Step() int       { return f.step }
func (f *Flow) Status() Status  { return f.status }
func (f *Flow) Skills() string  { return f.skills }
func (f *Flow) ScanErr() string { return f.scanErr }
func (f *Flow) SubmitErr() string {
	return f.submitErr
}
func (f *Flow) ScanPending() bool   { return f.scanPending }
func (f *Flow) SubmitPending() bool { return f.submitPending }

func (f *Flow) SetEducation(v string)    { f.education = v }
func (f *Flow) SetFieldOfStudy(v string) { f.fieldOfStudy = v }
func (f *Flow) SetSkills(v string)       { f.skills = v }

// CanNext reports whether the current step's required fields are populated.
// The resume step has no required field.
func (f *Flow) CanNext() bool {
	if f.status != StatusActive || f.step >= lastStep {
		return false
	}
	switch f.step {
	case StepEducation:
		return strings.TrimSpace(f.education) != "" && strings.TrimSpace(f.fieldOfStudy) != ""
	default:
		return true
	}
}

// Next advances one step, gated on CanNext.
func (f *Flow) Next() error {
	if f.status != StatusActive {
		return ErrFinished
	}
	if !f.CanNext() {
		return ErrStepIncomplete
	}
	f.step++
	return nil
}

// Back retreats one step. Disabled at the first step.
func (f *Flow) Back() error {
	if f.status != StatusActive {
		return ErrFinished
	}
	if f.step <= StepEducation {
		return ErrStepIncomplete
	}
	f.step--
	return nil
}

// Skip abandons the flow from any step without validation. No collected
// data is persisted; the caller still marks the session profile-complete
// so the flow is not re-prompted.
func (f *Flow) Skip() error {
	if f.status != StatusActive {
		return ErrFinished
	}
	f.status = StatusSkipped
	return nil
}

// BeginScan marks a resume scan pending. Only one scan may be in flight,
// but Next/Back/Skip stay usable while it runs.
func (f *Flow) BeginScan() error {
	if f.status != StatusActive {
		return ErrFinished
	}
	if f.scanPending {
		return ErrScanPending
	}
	f.scanPending = true
	f.scanErr = ""
	return nil
}

// ApplyScanResult finishes a pending scan. Success overwrites the skills
// field with the comma-joined extracted list, discarding prior manual
// edits. Failure leaves skills untouched and records an inline error.
func (f *Flow) ApplyScanResult(skills []string, err error) {
	f.scanPending = false
	if err != nil {
		f.scanErr = err.Error()
		return
	}
	f.skills = strings.Join(skills, ", ")
}

// BeginSubmit validates the final step and hands out the payload to send.
func (f *Flow) BeginSubmit() (Profile, error) {
	if f.status != StatusActive {
		return Profile{}, ErrFinished
	}
	if f.step != lastStep {
		return Profile{}, ErrNotLastStep
	}
	if f.submitPending {
		return Profile{}, ErrSubmitPending
	}
	if strings.TrimSpace(f.skills) == "" {
		return Profile{}, ErrStepIncomplete
	}
	f.submitPending = true
	f.submitErr = ""
	return Profile{
		Education:    f.education,
		FieldOfStudy: f.fieldOfStudy,
		Skills:       f.skills,
	}, nil
}

// ApplySubmitResult finishes a pending submission. Failure keeps the flow
// at the final step with prior input intact, resubmittable.
func (f *Flow) ApplySubmitResult(err error) {
	f.submitPending = false
	if err != nil {
		f.submitErr = err.Error()
		return
	}
	f.status = StatusCompleted
}
