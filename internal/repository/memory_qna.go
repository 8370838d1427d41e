package repository

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/google/uuid"
)

// MemoryQnaRepo keeps history in process memory: one append-only log per
// subgoal, each guarded by its own lock so unrelated subgoals never contend.
type MemoryQnaRepo struct {
	mu   sync.Mutex
	logs map[string]*qnaLog
}

type qnaLog struct {
	mu      sync.RWMutex
	entries []domain.QnaEntry
}

func NewMemoryQnaRepo() *MemoryQnaRepo {
	return &MemoryQnaRepo{logs: make(map[string]*qnaLog)}
}

func (r *MemoryQnaRepo) log(subgoalID string, create bool) *qnaLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[subgoalID]
	if !ok && create {
		l = &qnaLog{}
		r.logs[subgoalID] = l
	}
	return l
}

func (r *MemoryQnaRepo) History(_ context.Context, subgoalID string) ([]domain.QnaEntry, error) {
	l := r.log(subgoalID, false)
	if l == nil {
		return []domain.QnaEntry{}, nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.QnaEntry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func (r *MemoryQnaRepo) Append(_ context.Context, subgoalID, question, answer string) (domain.QnaEntry, error) {
	l := r.log(subgoalID, true)
	e := domain.QnaEntry{
		ID:        uuid.New().String(),
		SubgoalID: subgoalID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
	return e, nil
}
