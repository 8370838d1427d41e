package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
)

// SQLiteSubgoalRepo implements SubgoalRepo using a SQLite database.
type SQLiteSubgoalRepo struct {
	db db.DBTX
}

func NewSQLiteSubgoalRepo(db db.DBTX) *SQLiteSubgoalRepo {
	return &SQLiteSubgoalRepo{db: db}
}

const subgoalColumns = `id, plan_id, owner_id, name, description, deadline, completed, priority`

func (r *SQLiteSubgoalRepo) Create(ctx context.Context, s domain.Subgoal) error {
	query := `INSERT INTO subgoals (` + subgoalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.PlanID,
		s.OwnerID,
		s.Name,
		s.Description,
		nullableTimeToString(s.Deadline, domain.DateLayout),
		boolToInt(s.Completed),
		boolToInt(s.Priority),
	)
	if err != nil {
		return fmt.Errorf("inserting subgoal: %w", err)
	}
	return nil
}

func (r *SQLiteSubgoalRepo) GetByID(ctx context.Context, id string) (*domain.Subgoal, error) {
	query := `SELECT ` + subgoalColumns + ` FROM subgoals WHERE id = ?`
	s, err := scanSubgoal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subgoal %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSubgoalRepo) ListByPlan(ctx context.Context, planID string) ([]domain.Subgoal, error) {
	query := `SELECT ` + subgoalColumns + ` FROM subgoals WHERE plan_id = ?`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing subgoals by plan: %w", err)
	}
	defer rows.Close()

	var subgoals []domain.Subgoal
	for rows.Next() {
		s, err := scanSubgoal(rows)
		if err != nil {
			return nil, err
		}
		subgoals = append(subgoals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subgoals: %w", err)
	}
	return subgoals, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubgoal(row rowScanner) (domain.Subgoal, error) {
	var s domain.Subgoal
	var deadline sql.NullString
	var completed, priority int

	err := row.Scan(&s.ID, &s.PlanID, &s.OwnerID, &s.Name, &s.Description, &deadline, &completed, &priority)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scanning subgoal: %w", err)
	}

	s.Deadline = parseNullableTime(deadline, domain.DateLayout)
	s.Completed = intToBool(completed)
	s.Priority = intToBool(priority)
	return s, nil
}
