package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"internship-navigator/internal/shared/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncompleteAnswers  = errors.New("every quiz question must be answered")
)

const bcryptCost = 12

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies credentials and issues a signed bearer token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if user.PasswordHash == "" {
		return User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := auth.SignJWT(auth.Claims{Sub: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// UpsertFromOAuth records an identity signed in through an external provider.
func (s *Service) UpsertFromOAuth(ctx context.Context, id, email, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(id) == "" || email == "" {
		return ErrInvalidInput
	}
	return s.Repo.Upsert(ctx, User{ID: id, Email: email, Name: strings.TrimSpace(name)})
}

// CompleteOnboarding stores the onboarding profile and marks it complete.
func (s *Service) CompleteOnboarding(ctx context.Context, email, education, fieldOfStudy, skills string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(education) == "" || strings.TrimSpace(fieldOfStudy) == "" {
		return ErrInvalidInput
	}
	complete := true
	return s.Repo.UpdateProfile(ctx, email, ProfileChanges{
		Education:       &education,
		FieldOfStudy:    &fieldOfStudy,
		Skills:          &skills,
		ProfileComplete: &complete,
	})
}

// SubmitQuiz stores the answer tags and marks the quiz taken. Every slot must
// hold an answer; partial submissions are rejected.
func (s *Service) SubmitQuiz(ctx context.Context, email string, answers []string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(answers) == 0 {
		return ErrInvalidInput
	}
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			return ErrIncompleteAnswers
		}
	}
	tags := strings.Join(answers, ", ")
	taken := true
	return s.Repo.UpdateProfile(ctx, email, ProfileChanges{
		QuizTags:  &tags,
		QuizTaken: &taken,
	})
}

// UpdateProfile applies a partial profile update (the enrichment merge path).
func (s *Service) UpdateProfile(ctx context.Context, email string, name, skills *string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrInvalidInput
	}
	return s.Repo.UpdateProfile(ctx, email, ProfileChanges{Name: name, Skills: skills})
}

// GetProfile fetches the full profile record by email.
func (s *Service) GetProfile(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByEmail(ctx, email)
}
