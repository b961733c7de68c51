package quiz

import "errors"

// Option is one selectable answer with its preference tag.
type Option struct {
	Text string
	Tag  string
}

// Question presents mutually exclusive options; exactly one tag is recorded.
type Question struct {
	Prompt  string
	Options []Option
}

// Questions is the fixed ordered question list.
var Questions = []Question{
	{
		Prompt: "What work environment pace suits you best?",
		Options: []Option{
			{Text: "Fast-paced & dynamic", Tag: "fast-paced"},
			{Text: "Structured & well-planned", Tag: "structured"},
		},
	},
	{
		Prompt: "Which type of tasks do you find most engaging?",
		Options: []Option{
			{Text: "Analytical & data-driven", Tag: "analytical"},
			{Text: "Creative & open-ended", Tag: "creative"},
		},
	},
	{
		Prompt: "How do you prefer to work?",
		Options: []Option{
			{Text: "Collaborating in a team", Tag: "team-oriented"},
			{Text: "Independently, with ownership", Tag: "independent"},
		},
	},
	{
		Prompt: "What kind of company culture are you drawn to?",
		Options: []Option{
			{Text: "An agile startup", Tag: "startup-culture"},
			{Text: "An established organization", Tag: "corporate-culture"},
		},
	},
	{
		Prompt: "What is your primary motivation for an internship?",
		Options: []Option{
			{Text: "Developing technical skills", Tag: "skill-focused"},
			{Text: "Seeing the impact of my work", Tag: "impact-driven"},
		},
	},
}

var (
	ErrUnanswered    = errors.New("current question is unanswered")
	ErrUnknownTag    = errors.New("tag is not an option for this question")
	ErrIncomplete    = errors.New("every question must be answered before submitting")
	ErrNotLastIndex  = errors.New("submit is only available on the last question")
	ErrSubmitPending = errors.New("a submission is already pending")
	ErrDone          = errors.New("quiz already completed")
)

// Flow walks the question list collecting one tag per slot. Like the
// onboarding flow it performs no I/O; BeginSubmit hands out the answer
// list and ApplySubmitResult reports the outcome.
type Flow struct {
	questions []Question
	index     int
	answers   []string

	done          bool
	submitPending bool
	submitErr     string
}

func NewFlow() *Flow {
	return NewFlowWith(Questions)
}

// NewFlowWith builds a flow over a custom question list.
func NewFlowWith(questions []Question) *Flow {
	return &Flow{
		questions: questions,
		answers:   make([]string, len(questions)),
	}
}

func (f *Flow) Index() int           { return f.index }
func (f *Flow) Len() int             { return len(f.questions) }
func (f *Flow) Done() bool           { return f.done }
func (f *Flow) SubmitPending() bool  { return f.submitPending }
func (f *Flow) SubmitErr() string    { return f.submitErr }
func (f *Flow) Current() Question    { return f.questions[f.index] }
func (f *Flow) Answer(i int) string  { return f.answers[i] }
func (f *Flow) AtLastQuestion() bool { return f.index == len(f.questions)-1 }

// SelectAnswer records a tag for the current question. Idempotent; does
// not advance.
func (f *Flow) SelectAnswer(tag string) error {
	if f.done {
		return ErrDone
	}
	for _, opt := range f.questions[f.index].Options {
		if opt.Tag == tag {
			f.answers[f.index] = tag
			return nil
		}
	}
	return ErrUnknownTag
}

// CanNext reports whether the current slot is answered and a next
// question exists. The last index exposes Submit instead.
func (f *Flow) CanNext() bool {
	return !f.done && !f.AtLastQuestion() && f.answers[f.index] != ""
}

func (f *Flow) Next() error {
	if f.done {
		return ErrDone
	}
	if f.AtLastQuestion() {
		return ErrNotLastIndex
	}
	if f.answers[f.index] == "" {
		return ErrUnanswered
	}
	f.index++
	return nil
}

func (f *Flow) Back() error {
	if f.done {
		return ErrDone
	}
	if f.index == 0 {
		return ErrUnanswered
	}
	f.index--
	return nil
}

// CanSubmit is the completeness gate: every slot answered, not just the
// current one, and the cursor at the last question.
func (f *Flow) CanSubmit() bool {
	if f.done || !f.AtLastQuestion() {
		return false
	}
	for _, a := range f.answers {
		if a == "" {
			return false
		}
	}
	return true
}

// BeginSubmit validates completeness and hands out the ordered answers.
func (f *Flow) BeginSubmit() ([]string, error) {
	if f.done {
		return nil, ErrDone
	}
	if f.submitPending {
		return nil, ErrSubmitPending
	}
	if !f.AtLastQuestion() {
		return nil, ErrNotLastIndex
	}
	if !f.CanSubmit() {
		return nil, ErrIncomplete
	}
	f.submitPending = true
	f.submitErr = ""
	out := make([]string, len(f.answers))
	copy(out, f.answers)
	return out, nil
}

// ApplySubmitResult finishes a pending submission. Failure stays on the
// last question with an inline error, resubmittable.
func (f *Flow) ApplySubmitResult(err error) {
	f.submitPending = false
	if err != nil {
		f.submitErr = err.Error()
		return
	}
	f.done = true
}
