package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// JSONQnaRepo persists history as a single JSON array on disk. Every append
// rewrites the file through a temp file and rename, so a crash leaves either
// the old or the new contents. Reads and writes hold an advisory lock on a
// sibling ".lock" file so processes sharing the path see each other's
// entries; the file on disk is the only copy of the history.
type JSONQnaRepo struct {
	path string
	lock *flock.Flock

	// flock tracks one lock per handle, so goroutines in this process
	// serialize here first.
	mu sync.Mutex
}

type jsonQnaEntry struct {
	ID        string    `json:"id"`
	SubgoalID string    `json:"subgoal_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

const jsonLockRetry = 10 * time.Millisecond

// NewJSONQnaRepo checks that the history file at path is readable. A missing
// file is treated as empty history and is created on the first append.
func NewJSONQnaRepo(path string) (*JSONQnaRepo, error) {
	r := &JSONQnaRepo{path: path, lock: flock.New(path + ".lock")}
	if _, err := r.read(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JSONQnaRepo) History(ctx context.Context, subgoalID string) ([]domain.QnaEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := r.acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	entries, err := r.read()
	if err != nil {
		return nil, err
	}
	out := []domain.QnaEntry{}
	for _, e := range entries {
		if e.SubgoalID == subgoalID {
			out = append(out, e.toDomain())
		}
	}
	return out, nil
}

func (r *JSONQnaRepo) Append(ctx context.Context, subgoalID, question, answer string) (domain.QnaEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	unlock, err := r.acquire(ctx, true)
	if err != nil {
		return domain.QnaEntry{}, err
	}
	defer unlock()

	entries, err := r.read()
	if err != nil {
		return domain.QnaEntry{}, err
	}
	e := jsonQnaEntry{
		ID:        uuid.New().String(),
		SubgoalID: subgoalID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.write(append(entries, e)); err != nil {
		return domain.QnaEntry{}, err
	}
	return e.toDomain(), nil
}

// acquire takes the cross-process lock, exclusive for writers and shared
// for readers, and returns its release.
func (r *JSONQnaRepo) acquire(ctx context.Context, exclusive bool) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return nil, fmt.Errorf("creating qna history directory: %w", err)
	}
	try := r.lock.TryRLockContext
	if exclusive {
		try = r.lock.TryLockContext
	}
	ok, err := try(ctx, jsonLockRetry)
	if err != nil {
		return nil, fmt.Errorf("locking qna history file: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("locking qna history file: %s is busy", r.path)
	}
	return func() { _ = r.lock.Unlock() }, nil
}

func (r *JSONQnaRepo) read() ([]jsonQnaEntry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading qna history file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var entries []jsonQnaEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing qna history file %s: %w", r.path, err)
	}
	return entries, nil
}

func (r *JSONQnaRepo) write(entries []jsonQnaEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding qna history: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating qna history directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing qna history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing qna history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing qna history: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replacing qna history file: %w", err)
	}
	return nil
}

func (e jsonQnaEntry) toDomain() domain.QnaEntry {
	return domain.QnaEntry{
		ID:        e.ID,
		SubgoalID: e.SubgoalID,
		Question:  e.Question,
		Answer:    e.Answer,
		CreatedAt: e.CreatedAt,
	}
}
