package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada Lovelace", "Ada@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}

	got, token, err := svc.Authenticate(ctx, "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if got.Name != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", got.Name)
	}

	if _, _, err := svc.Authenticate(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Authenticate(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestSubmitQuizRejectsBlankSlot(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := svc.SubmitQuiz(ctx, "ada@example.com", []string{"fast-paced", " ", "team-oriented", "startup-culture", "impact-driven"})
	if !errors.Is(err, ErrIncompleteAnswers) {
		t.Fatalf("expected ErrIncompleteAnswers, got %v", err)
	}

	user, err := svc.GetProfile(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if user.QuizTaken {
		t.Fatalf("quizTaken must stay false after a rejected submission")
	}

	if err := svc.SubmitQuiz(ctx, "ada@example.com", []string{"fast-paced", "analytical", "team-oriented", "startup-culture", "impact-driven"}); err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	user, _ = svc.GetProfile(ctx, "ada@example.com")
	if !user.QuizTaken {
		t.Fatalf("expected quizTaken true")
	}
	if user.QuizTags != "fast-paced, analytical, team-oriented, startup-culture, impact-driven" {
		t.Fatalf("unexpected tags %q", user.QuizTags)
	}
}

func TestCompleteOnboardingSetsProfileComplete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.CompleteOnboarding(ctx, "ada@example.com", "Bachelor's Degree", "Computer Science", "Python, SQL"); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}

	user, err := svc.GetProfile(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if !user.ProfileComplete {
		t.Fatalf("expected profileComplete true")
	}
	if user.Skills != "Python, SQL" {
		t.Fatalf("unexpected skills %q", user.Skills)
	}
}

func TestUpsertFromOAuthPreservesProfile(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.CompleteOnboarding(ctx, "ada@example.com", "Bachelor's Degree", "Computer Science", "Python"); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}

	if err := svc.UpsertFromOAuth(ctx, "google:123", "ada@example.com", "Ada L."); err != nil {
		t.Fatalf("UpsertFromOAuth: %v", err)
	}

	user, err := svc.GetProfile(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if user.Name != "Ada L." {
		t.Fatalf("expected refreshed name, got %q", user.Name)
	}
	if !user.ProfileComplete || user.Education != "Bachelor's Degree" {
		t.Fatalf("profile data must survive an oauth upsert: %+v", user)
	}
}
