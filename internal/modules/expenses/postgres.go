package expenses

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed expense repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, e *Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, title, category, amount, note, spent_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.Title, e.Category, e.Amount, e.Note, e.SpentAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	e := &Expense{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, category, amount, note, spent_at, created_at
		FROM expenses WHERE id=$1`, id).
		Scan(&e.ID, &e.Title, &e.Category, &e.Amount, &e.Note, &e.SpentAt, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *postgresRepo) List(ctx context.Context, from, to time.Time) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, category, amount, note, spent_at, created_at
		FROM expenses WHERE spent_at >= $1 AND spent_at < $2
		ORDER BY spent_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &e.Amount, &e.Note, &e.SpentAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
