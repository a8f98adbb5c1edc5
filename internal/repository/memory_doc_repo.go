package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"inkwell-api/internal/domain"
)

// MemoryDocRepository es la contraparte en memoria de PgDocRepository. La
// busqueda es por subcadena, sin stemming.
type MemoryDocRepository struct {
	mu   sync.Mutex
	docs map[string]domain.Doc
}

func NewMemoryDocRepository() *MemoryDocRepository {
	return &MemoryDocRepository{docs: make(map[string]domain.Doc)}
}

func (r *MemoryDocRepository) Create(_ context.Context, doc domain.Doc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryDocRepository) List(_ context.Context, userID string) ([]domain.DocSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.DocSummary, 0)
	for _, d := range r.ownedLocked(userID) {
		out = append(out, domain.DocSummary{ID: d.ID, Title: d.Title})
	}
	return out, nil
}

func (r *MemoryDocRepository) Search(_ context.Context, userID, query string) ([]domain.DocSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.DocSummary, 0)
	for _, d := range r.ownedLocked(userID) {
		if !strings.Contains(strings.ToLower(d.Title), needle) &&
			!strings.Contains(strings.ToLower(d.ContentText), needle) {
			continue
		}
		text := d.ContentText
		out = append(out, domain.DocSummary{ID: d.ID, Title: d.Title, ContentText: &text})
	}
	return out, nil
}

func (r *MemoryDocRepository) Get(_ context.Context, userID, id string) (domain.Doc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return domain.Doc{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryDocRepository) Update(_ context.Context, userID, id string, input domain.DocInput) (domain.Doc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return domain.Doc{}, ErrNotFound
	}
	d.Title = input.Title
	d.ContentText = input.ContentText
	d.ContentJSON = input.ContentJSON
	d.ContentHTML = input.ContentHTML
	d.UpdatedAt = time.Now().UTC()
	r.docs[id] = d
	return d, nil
}

func (r *MemoryDocRepository) Delete(_ context.Context, userID, id string) (domain.Doc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return domain.Doc{}, ErrNotFound
	}
	delete(r.docs, id)
	return d, nil
}

// ownedLocked devuelve los documentos de userID, mas nuevos primero.
func (r *MemoryDocRepository) ownedLocked(userID string) []domain.Doc {
	owned := make([]domain.Doc, 0)
	for _, d := range r.docs {
		if d.UserID == userID {
			owned = append(owned, d)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned
}
