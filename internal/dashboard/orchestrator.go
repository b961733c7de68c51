package dashboard

import (
	"context"
	"errors"
	"io"
	"sync"

	"internship-navigator/internal/gateway"
	"internship-navigator/internal/onboarding"
	"internship-navigator/internal/quiz"
	"internship-navigator/internal/session"
	"internship-navigator/internal/shared/telemetry"
)

var (
	ErrOverlayInactive = errors.New("overlay is not active")
	ErrAnalyzerPending = errors.New("an analysis is already pending")
)

// Overlay identifies which modal flow, if any, currently suspends the
// dashboard. At most one is active at a time.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayOnboarding
	OverlayResumeAnalyzer
	OverlayQuiz
)

func (o Overlay) String() string {
	switch o {
	case OverlayOnboarding:
		return "onboarding"
	case OverlayResumeAnalyzer:
		return "resume-analyzer"
	case OverlayQuiz:
		return "quiz"
	default:
		return "none"
	}
}

// Gateway is the remote surface the orchestrator drives.
type Gateway interface {
	ProfileUpdater
	SubmitOnboarding(ctx context.Context, email, education, fieldOfStudy, skills string) error
	SubmitQuiz(ctx context.Context, email string, answers []string) error
	UploadResume(ctx context.Context, fileName string, doc io.Reader) (gateway.ResumeExtraction, error)
}

// Orchestrator owns the single-active-overlay invariant and serializes
// all state mutation behind one mutex. Network work runs in goroutines
// holding a context scoped to the overlay that started it; closing the
// overlay cancels that context, so late responses are discarded instead
// of mutating shared state.
type Orchestrator struct {
	gw      Gateway
	session *session.Store
	sync    *Sync

	mu            sync.Mutex
	overlay       Overlay
	overlayCtx    context.Context
	overlayCancel context.CancelFunc

	onboarding *onboarding.Flow
	quiz       *quiz.Flow

	analyzerPending bool
	analyzerErr     string
	extraction      *gateway.ResumeExtraction

	inflight sync.WaitGroup
}

func NewOrchestrator(gw Gateway, sess *session.Store, profileSync *Sync) *Orchestrator {
	return &Orchestrator{
		gw:      gw,
		session: sess,
		sync:    profileSync,
		overlay: OverlayNone,
	}
}

// Mount reads the session once and auto-opens onboarding unless the
// profile is known complete. This runs before any other open request and
// therefore takes precedence: a later Open against the onboarding
// overlay no-ops.
func (o *Orchestrator) Mount() {
	if o.session.ProfileComplete() != session.FlagTrue {
		o.Open(OverlayOnboarding)
	}
}

// Active returns the currently displayed overlay.
func (o *Orchestrator) Active() Overlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.overlay
}

// Open activates an overlay. It is a silent no-op when a different
// overlay is already active.
func (o *Orchestrator) Open(kind Overlay) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.overlay != OverlayNone || kind == OverlayNone {
		return false
	}

	o.overlay = kind
	o.overlayCtx, o.overlayCancel = context.WithCancel(context.Background())
	switch kind {
	case OverlayOnboarding:
		o.onboarding = onboarding.NewFlow()
	case OverlayQuiz:
		o.quiz = quiz.NewFlow()
	case OverlayResumeAnalyzer:
		o.analyzerPending = false
		o.analyzerErr = ""
		o.extraction = nil
	}
	return true
}

// Close dismisses the active overlay. In-flight requests started under
// it are cancelled and their responses discarded.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closeLocked()
}

func (o *Orchestrator) closeLocked() {
	if o.overlay == OverlayNone {
		return
	}
	if o.overlayCancel != nil {
		o.overlayCancel()
		o.overlayCancel = nil
	}
	o.overlay = OverlayNone
	o.onboarding = nil
	o.quiz = nil
}

// Wait blocks until every spawned request handler has returned.
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

// Logout clears the whole session. Any active overlay is closed first.
func (o *Orchestrator) Logout() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closeLocked()
	return o.session.Clear()
}

// --- onboarding controls ---

func (o *Orchestrator) SetEducation(v string) {
	o.withOnboarding(func(f *onboarding.Flow) error { f.SetEducation(v); return nil })
}

func (o *Orchestrator) SetFieldOfStudy(v string) {
	o.withOnboarding(func(f *onboarding.Flow) error { f.SetFieldOfStudy(v); return nil })
}

func (o *Orchestrator) SetSkills(v string) {
	o.withOnboarding(func(f *onboarding.Flow) error { f.SetSkills(v); return nil })
}

func (o *Orchestrator) NextStep() error {
	return o.withOnboarding(func(f *onboarding.Flow) error { return f.Next() })
}

func (o *Orchestrator) BackStep() error {
	return o.withOnboarding(func(f *onboarding.Flow) error { return f.Back() })
}

// OnboardingStep reports the current step, or 0 when the overlay is not
// active.
func (o *Orchestrator) OnboardingStep() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.onboarding == nil {
		return 0
	}
	return o.onboarding.Step()
}

func (o *Orchestrator) OnboardingSkills() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.onboarding == nil {
		return ""
	}
	return o.onboarding.Skills()
}

func (o *Orchestrator) OnboardingScanErr() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.onboarding == nil {
		return ""
	}
	return o.onboarding.ScanErr()
}

func (o *Orchestrator) OnboardingSubmitErr() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.onboarding == nil {
		return ""
	}
	return o.onboarding.SubmitErr()
}

// SkipOnboarding abandons the flow without any network write, but still
// marks the profile complete so it is not re-prompted.
func (o *Orchestrator) SkipOnboarding() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.overlay != OverlayOnboarding || o.onboarding == nil {
		return onboarding.ErrFinished
	}
	if err := o.onboarding.Skip(); err != nil {
		return err
	}
	if err := o.session.SetProfileComplete(true); err != nil {
		telemetry.Error("dashboard.session_write_failed", map[string]any{"err": err.Error()})
	}
	o.closeLocked()
	return nil
}

// ScanResume uploads the document from onboarding step 2. The scan has
// its own pending state; step controls stay usable while it runs.
func (o *Orchestrator) ScanResume(fileName string, doc io.Reader) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.overlay != OverlayOnboarding || o.onboarding == nil {
		return onboarding.ErrFinished
	}
	if err := o.onboarding.BeginScan(); err != nil {
		return err
	}

	ctx := o.overlayCtx
	flow := o.onboarding
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		res, err := o.gw.UploadResume(ctx, fileName, doc)

		o.mu.Lock()
		defer o.mu.Unlock()
		if ctx.Err() != nil || o.onboarding != flow {
			return
		}
		flow.ApplyScanResult(res.Skills, err)
	}()
	return nil
}

// SubmitOnboarding sends the completed profile from step 3.
func (o *Orchestrator) SubmitOnboarding() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.overlay != OverlayOnboarding || o.onboarding == nil {
		return onboarding.ErrFinished
	}
	profile, err := o.onboarding.BeginSubmit()
	if err != nil {
		return err
	}
	email, _ := o.session.Email()

	ctx := o.overlayCtx
	flow := o.onboarding
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		err := o.gw.SubmitOnboarding(ctx, email, profile.Education, profile.FieldOfStudy, profile.Skills)

		o.mu.Lock()
		defer o.mu.Unlock()
		if ctx.Err() != nil || o.onboarding != flow {
			return
		}
		flow.ApplySubmitResult(err)
		if flow.Status() != onboarding.StatusCompleted {
			return
		}
		if err := o.session.SetProfileComplete(true); err != nil {
			telemetry.Error("dashboard.session_write_failed", map[string]any{"err": err.Error()})
		}
		o.closeLocked()
		o.sync.NotifyProfileChanged()
	}()
	return nil
}

// --- quiz controls ---

func (o *Orchestrator) SelectQuizAnswer(tag string) error {
	return o.withQuiz(func(f *quiz.Flow) error { return f.SelectAnswer(tag) })
}

func (o *Orchestrator) NextQuestion() error {
	return o.withQuiz(func(f *quiz.Flow) error { return f.Next() })
}

func (o *Orchestrator) BackQuestion() error {
	return o.withQuiz(func(f *quiz.Flow) error { return f.Back() })
}

func (o *Orchestrator) QuizIndex() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.quiz == nil {
		return -1
	}
	return o.quiz.Index()
}

func (o *Orchestrator) QuizSubmitErr() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.quiz == nil {
		return ""
	}
	return o.quiz.SubmitErr()
}

// SubmitQuiz sends the full answer set. Success closes the overlay and
// routes the completion to ProfileSync.
func (o *Orchestrator) SubmitQuiz() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.overlay != OverlayQuiz || o.quiz == nil {
		return quiz.ErrDone
	}
	answers, err := o.quiz.BeginSubmit()
	if err != nil {
		return err
	}
	email, _ := o.session.Email()

	ctx := o.overlayCtx
	flow := o.quiz
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		err := o.gw.SubmitQuiz(ctx, email, answers)

		o.mu.Lock()
		defer o.mu.Unlock()
		if ctx.Err() != nil || o.quiz != flow {
			return
		}
		flow.ApplySubmitResult(err)
		if !flow.Done() {
			return
		}
		o.closeLocked()
		o.sync.ApplyQuizCompletion()
	}()
	return nil
}

// --- standalone resume analyzer ---

// AnalyzeResume uploads a document through the standalone analyzer
// overlay. Success hands the extraction to ProfileSync, which merges the
// name and skills into the remote profile and the session.
func (o *Orchestrator) AnalyzeResume(fileName string, doc io.Reader) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.overlay != OverlayResumeAnalyzer {
		return ErrOverlayInactive
	}
	if o.analyzerPending {
		return ErrAnalyzerPending
	}
	o.analyzerPending = true
	o.analyzerErr = ""

	ctx := o.overlayCtx
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		res, err := o.gw.UploadResume(ctx, fileName, doc)

		o.mu.Lock()
		if ctx.Err() != nil {
			o.mu.Unlock()
			return
		}
		o.analyzerPending = false
		if err != nil {
			o.analyzerErr = err.Error()
			o.mu.Unlock()
			return
		}
		o.extraction = &res
		o.mu.Unlock()

		// The merge is best-effort and must not hold the overlay lock
		// while the profile update round-trips.
		o.sync.ApplyResumeExtraction(ctx, res)
	}()
	return nil
}

func (o *Orchestrator) AnalyzerErr() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.analyzerErr
}

// Extraction returns the last analyzer result, if any.
func (o *Orchestrator) Extraction() (gateway.ResumeExtraction, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.extraction == nil {
		return gateway.ResumeExtraction{}, false
	}
	return *o.extraction, true
}

func (o *Orchestrator) withOnboarding(fn func(*onboarding.Flow) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.overlay != OverlayOnboarding || o.onboarding == nil {
		return onboarding.ErrFinished
	}
	return fn(o.onboarding)
}

func (o *Orchestrator) withQuiz(fn func(*quiz.Flow) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.overlay != OverlayQuiz || o.quiz == nil {
		return quiz.ErrDone
	}
	return fn(o.quiz)
}
