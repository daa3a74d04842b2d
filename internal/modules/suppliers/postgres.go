package suppliers

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed supplier repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, phone, balance) VALUES ($1,$2,$3,$4)`,
		s.ID, s.Name, s.Phone, s.Balance)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	s := &Supplier{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, balance, created_at, updated_at
		FROM suppliers WHERE id=$1`, id).
		Scan(&s.ID, &s.Name, &s.Phone, &s.Balance, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, balance, created_at, updated_at
		FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Supplier
	for rows.Next() {
		s := &Supplier{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Balance, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, s *Supplier) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE suppliers SET name=$1, phone=$2, updated_at=$3 WHERE id=$4`,
		s.Name, s.Phone, time.Now(), s.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ApplyMovement mutates the balance and appends the ledger entry in one
// transaction. Either both land or neither does.
func (r *postgresRepo) ApplyMovement(ctx context.Context, supplierID uuid.UUID, delta decimal.Decimal, entry *LedgerEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE suppliers SET balance = balance + $1, updated_at = $2 WHERE id = $3`,
		delta, time.Now(), supplierID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO supplier_ledger_entries (id, supplier_id, kind, amount, note)
		VALUES ($1,$2,$3,$4,$5)`,
		entry.ID, entry.SupplierID, entry.Kind, entry.Amount, entry.Note)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) History(ctx context.Context, supplierID uuid.UUID) ([]*LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_id, kind, amount, note, created_at
		FROM supplier_ledger_entries WHERE supplier_id=$1
		ORDER BY created_at DESC`, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*LedgerEntry
	for rows.Next() {
		e := &LedgerEntry{}
		if err := rows.Scan(&e.ID, &e.SupplierID, &e.Kind, &e.Amount, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
