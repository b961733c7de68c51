package internships

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	postings map[string]Internship
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{postings: make(map[string]Internship)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Internship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Internship, 0, len(r.postings))
	for _, p := range r.postings {
		out = append(out, p)
	}
	// Highest match first, stable by id for equal scores.
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) Put(ctx context.Context, posting Internship) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = time.Now().UTC()
	}
	r.postings[posting.ID] = posting
	return nil
}
