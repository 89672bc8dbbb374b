package users

import (
	"context"
	"sort"
	"sync"

	"github.com/progrestian/izin/internal/common"
)

// MemoryRepository is a mutex-guarded in-memory implementation of
// Repository. It backs tests and throwaway deployments; the lock gives
// CreateIfAbsent the same one-winner guarantee the database provides.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]Credential
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]Credential)}
}

func (r *MemoryRepository) CreateIfAbsent(ctx context.Context, c *Credential) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.Username]; ok {
		return false, nil
	}

	r.items[c.Username] = *c
	return true, nil
}

func (r *MemoryRepository) Get(ctx context.Context, username string) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[username]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return &c, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[username]; !ok {
		return false, nil
	}

	delete(r.items, username)
	return true, nil
}

func (r *MemoryRepository) ListNames(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// Touch overwrites the stored record for username, bumping UpdatedAt the
// way a future credential rotation would. Used by tests to exercise
// revocation-by-timestamp.
func (r *MemoryRepository) Touch(ctx context.Context, username string, updatedAt int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[username]
	if !ok {
		return false
	}

	c.UpdatedAt = updatedAt
	r.items[username] = c
	return true
}
