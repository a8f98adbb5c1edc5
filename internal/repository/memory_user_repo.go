package repository

import (
	"context"
	"errors"
	"sync"

	"inkwell-api/internal/domain"
)

var ErrDuplicateEmail = errors.New("email already registered")

// MemoryUserRepository guarda usuarios en memoria. Se usa en tests y con
// STORE_DRIVER=memory.
type MemoryUserRepository struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}
	user.VerificationCodeHash = copyHash(user.VerificationCodeHash)
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return r.getLocked(id)
}

func (r *MemoryUserRepository) UpdateVerificationCode(_ context.Context, id, codeHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	user.VerificationCodeHash = &codeHash
	r.byID[id] = user
	return nil
}

func (r *MemoryUserRepository) ClearVerificationCode(_ context.Context, id, expectedHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok || user.VerificationCodeHash == nil || *user.VerificationCodeHash != expectedHash {
		return false, nil
	}
	user.VerificationCodeHash = nil
	r.byID[id] = user
	return true, nil
}

func (r *MemoryUserRepository) getLocked(id string) (domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	user.VerificationCodeHash = copyHash(user.VerificationCodeHash)
	return user, nil
}

func copyHash(h *string) *string {
	if h == nil {
		return nil
	}
	v := *h
	return &v
}
