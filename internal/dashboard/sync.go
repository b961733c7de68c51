package dashboard

import (
	"context"
	"strings"
	"sync"

	"internship-navigator/internal/gateway"
	"internship-navigator/internal/session"
	"internship-navigator/internal/shared/telemetry"
)

// Sync is the sole writer that merges asynchronous enrichment results
// into the session and the remote profile record. Profile-dependent views
// key off the version token: every merge bumps it, so consumers recompute
// instead of reusing cached state.
type Sync struct {
	gw      ProfileUpdater
	session *session.Store

	mu        sync.Mutex
	version   uint64
	onRefresh func(version uint64)
}

// ProfileUpdater is the gateway subset Sync needs.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, email string, name, skills *string) error
}

// NewSync builds a Sync. onRefresh, if non-nil, is invoked after every
// version bump with the new value.
func NewSync(gw ProfileUpdater, sess *session.Store, onRefresh func(version uint64)) *Sync {
	return &Sync{gw: gw, session: sess, onRefresh: onRefresh}
}

// Version returns the current profile version token.
func (s *Sync) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// ApplyResumeExtraction pushes an analyzer result to the remote profile
// and, on success, into the session. Failure is best-effort: logged,
// nothing written, the user's flow is not interrupted.
func (s *Sync) ApplyResumeExtraction(ctx context.Context, res gateway.ResumeExtraction) {
	email, ok := s.session.Email()
	if !ok {
		telemetry.Error("sync.resume_merge_skipped", map[string]any{"reason": "no session email"})
		return
	}

	skills := strings.Join(res.Skills, ", ")
	if err := s.gw.UpdateProfile(ctx, email, &res.Name, &skills); err != nil {
		telemetry.Error("sync.resume_merge_failed", map[string]any{"err": err.Error()})
		return
	}

	if res.Name != "" {
		if err := s.session.SetName(res.Name); err != nil {
			telemetry.Error("sync.session_write_failed", map[string]any{"err": err.Error()})
		}
	}
	s.bump()
}

// ApplyQuizCompletion records a successful quiz submission.
func (s *Sync) ApplyQuizCompletion() {
	if err := s.session.SetQuizTaken(true); err != nil {
		telemetry.Error("sync.session_write_failed", map[string]any{"err": err.Error()})
	}
	s.bump()
}

// NotifyProfileChanged bumps the version without touching the session.
// Used when onboarding completes and views showing profile data must
// recompute.
func (s *Sync) NotifyProfileChanged() {
	s.bump()
}

func (s *Sync) bump() {
	s.mu.Lock()
	s.version++
	v := s.version
	cb := s.onRefresh
	s.mu.Unlock()
	if cb != nil {
		cb(v)
	}
}
