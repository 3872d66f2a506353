package repository

import (
	"container/list"
	"context"
	"slices"
	"sync"

	"go-image-quality/pkg/models"
)

// DefaultHistorySize bounds the number of results kept in memory
const DefaultHistorySize = 256

// MemoryAnalysisRepository keeps the most recent analysis results in memory.
// Saving a result with an existing ID replaces it and marks it most recent.
// Results are copied on the way in and out, so callers never share a stored record.
type MemoryAnalysisRepository struct {
	mu       sync.RWMutex
	capacity int
	order    *list.List // front is newest
	byID     map[string]*list.Element
}

// NewMemoryAnalysisRepository creates a repository holding up to capacity results
func NewMemoryAnalysisRepository(capacity int) *MemoryAnalysisRepository {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &MemoryAnalysisRepository{
		capacity: capacity,
		order:    list.New(),
		byID:     make(map[string]*list.Element),
	}
}

func (r *MemoryAnalysisRepository) SaveAnalysisResult(ctx context.Context, result *models.ImageAnalysisResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result = cloneResponse(result)

	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.byID[result.ID]; ok {
		el.Value = result
		r.order.MoveToFront(el)
		return nil
	}

	r.byID[result.ID] = r.order.PushFront(result)
	for r.order.Len() > r.capacity {
		oldest := r.order.Back()
		r.order.Remove(oldest)
		delete(r.byID, oldest.Value.(*models.ImageAnalysisResponse).ID)
	}
	return nil
}

func (r *MemoryAnalysisRepository) GetAnalysisResult(ctx context.Context, id string) (*models.ImageAnalysisResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	el, ok := r.byID[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return cloneResponse(el.Value.(*models.ImageAnalysisResponse)), nil
}

func (r *MemoryAnalysisRepository) GetAnalysisHistory(ctx context.Context, imageURL string) ([]*models.ImageAnalysisResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var history []*models.ImageAnalysisResponse
	for el := r.order.Front(); el != nil; el = el.Next() {
		if result := el.Value.(*models.ImageAnalysisResponse); result.ImageURL == imageURL {
			history = append(history, cloneResponse(result))
		}
	}
	return history, nil
}

func cloneResponse(r *models.ImageAnalysisResponse) *models.ImageAnalysisResponse {
	c := *r
	c.Issues = slices.Clone(r.Issues)
	return &c
}
