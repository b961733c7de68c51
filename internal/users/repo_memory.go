package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is the in-memory fallback used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User // keyed by lowercased email
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.users[key]; ok {
		return ErrDuplicateEmail
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[key] = user
	return nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	now := time.Now().UTC()
	existing, ok := r.users[key]
	if !ok {
		user.CreatedAt = now
		user.UpdatedAt = now
		r.users[key] = user
		return nil
	}
	existing.Name = user.Name
	existing.UpdatedAt = now
	r.users[key] = existing
	return nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, email string, changes ProfileChanges) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(email)
	user, ok := r.users[key]
	if !ok {
		return ErrNotFound
	}
	if changes.Name != nil {
		user.Name = *changes.Name
	}
	if changes.Education != nil {
		user.Education = *changes.Education
	}
	if changes.FieldOfStudy != nil {
		user.FieldOfStudy = *changes.FieldOfStudy
	}
	if changes.Skills != nil {
		user.Skills = *changes.Skills
	}
	if changes.QuizTags != nil {
		user.QuizTags = *changes.QuizTags
	}
	if changes.ProfileComplete != nil {
		user.ProfileComplete = *changes.ProfileComplete
	}
	if changes.QuizTaken != nil {
		user.QuizTaken = *changes.QuizTaken
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[key] = user
	return nil
}
