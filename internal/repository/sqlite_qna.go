package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/google/uuid"
)

// SQLiteQnaRepo implements QnaRepo on the qna_entries table. Entries are
// ordered by a per-subgoal sequence number assigned inside the INSERT.
type SQLiteQnaRepo struct {
	db    db.DBTX
	locks keyedMutex
	now   func() time.Time
}

func NewSQLiteQnaRepo(db db.DBTX) *SQLiteQnaRepo {
	return &SQLiteQnaRepo{db: db, now: time.Now}
}

func (r *SQLiteQnaRepo) History(ctx context.Context, subgoalID string) ([]domain.QnaEntry, error) {
	query := `SELECT id, subgoal_id, question, answer, created_at
		FROM qna_entries WHERE subgoal_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, subgoalID)
	if err != nil {
		return nil, fmt.Errorf("listing qna history: %w", err)
	}
	defer rows.Close()

	entries := []domain.QnaEntry{}
	for rows.Next() {
		var e domain.QnaEntry
		var createdAtStr string
		if err := rows.Scan(&e.ID, &e.SubgoalID, &e.Question, &e.Answer, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning qna entry: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating qna history: %w", err)
	}
	return entries, nil
}

func (r *SQLiteQnaRepo) Append(ctx context.Context, subgoalID, question, answer string) (domain.QnaEntry, error) {
	unlock := r.locks.lock(subgoalID)
	defer unlock()

	e := domain.QnaEntry{
		ID:        uuid.New().String(),
		SubgoalID: subgoalID,
		Question:  question,
		Answer:    answer,
		CreatedAt: r.now().UTC(),
	}

	query := `INSERT INTO qna_entries (id, subgoal_id, seq, question, answer, created_at)
		SELECT ?, ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?
		FROM qna_entries WHERE subgoal_id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.SubgoalID, e.Question, e.Answer, e.CreatedAt.Format(time.RFC3339Nano), subgoalID,
	)
	if err != nil {
		return domain.QnaEntry{}, fmt.Errorf("appending qna entry: %w", err)
	}
	return e, nil
}
