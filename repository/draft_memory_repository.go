package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tienda-admin/orderbuilder"
)

type memoryDraft struct {
	draft     orderbuilder.Draft
	expiresAt time.Time
}

// MemoryDraftRepository is the draft store used when no Redis address is configured
type MemoryDraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]memoryDraft
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryDraftRepository creates a MemoryDraftRepository. A zero ttl keeps drafts forever.
func NewMemoryDraftRepository(ttl time.Duration) *MemoryDraftRepository {
	return &MemoryDraftRepository{
		drafts: make(map[string]memoryDraft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Ensure MemoryDraftRepository implements DraftRepositoryInterface
var _ DraftRepositoryInterface = (*MemoryDraftRepository)(nil)

func (r *MemoryDraftRepository) Save(_ context.Context, draft orderbuilder.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	entry := memoryDraft{draft: draft}
	if r.ttl > 0 {
		entry.expiresAt = now.Add(r.ttl)
	}
	r.drafts[draft.ID] = entry
	return nil
}

// sweep drops expired drafts. Callers hold the write lock.
func (r *MemoryDraftRepository) sweep(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, entry := range r.drafts {
		if entry.expired(now) {
			delete(r.drafts, id)
		}
	}
}

func (e memoryDraft) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func (r *MemoryDraftRepository) Get(_ context.Context, id string) (orderbuilder.Draft, error) {
	r.mu.RLock()
	entry, ok := r.drafts[id]
	r.mu.RUnlock()

	if ok && entry.expired(r.now()) {
		r.mu.Lock()
		if current, still := r.drafts[id]; still && current.expired(r.now()) {
			delete(r.drafts, id)
		}
		r.mu.Unlock()
		ok = false
	}
	if !ok {
		return orderbuilder.Draft{}, fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	return entry.draft, nil
}

func (r *MemoryDraftRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.drafts, id)
	r.mu.Unlock()
	return nil
}
