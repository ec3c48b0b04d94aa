package repository

import (
	"context"
	"sync"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// MemoryRepository keeps the catalog in process memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	activities model.Catalog
}

// NewMemoryRepository constructs a store holding a copy of seed.
func NewMemoryRepository(seed model.Catalog) *MemoryRepository {
	return &MemoryRepository{activities: seed.Clone()}
}

// List returns a deep copy so callers never alias the store.
func (r *MemoryRepository) List(ctx context.Context) (model.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activities.Clone(), nil
}

// AddParticipant checks existence, duplicates and capacity under one lock.
func (r *MemoryRepository) AddParticipant(ctx context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	details, ok := r.activities[activity]
	if !ok {
		return ErrNotFound
	}
	if details.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	if details.IsFull() {
		return ErrActivityFull
	}
	details.Participants = append(details.Participants, email)
	r.activities[activity] = details
	return nil
}

// RemoveParticipant keeps the order of the remaining participants.
func (r *MemoryRepository) RemoveParticipant(ctx context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	details, ok := r.activities[activity]
	if !ok {
		return ErrNotFound
	}
	if !details.HasParticipant(email) {
		return ErrNotSignedUp
	}
	kept := make([]string, 0, len(details.Participants)-1)
	for _, p := range details.Participants {
		if p != email {
			kept = append(kept, p)
		}
	}
	details.Participants = kept
	r.activities[activity] = details
	return nil
}
