package sales

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed sales repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateSale writes the sale header and its lines in one transaction, so the
// sale record is all-or-nothing from the engine's point of view.
func (r *postgresRepo) CreateSale(ctx context.Context, s *Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, total, payment_method, created_at)
		VALUES ($1,$2,$3,$4)`,
		s.ID, s.Total, s.PaymentMethod, s.CreatedAt)
	if err != nil {
		return err
	}
	for i, l := range s.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_lines (sale_id, line_no, product_id, name, unit, quantity, unit_price, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			s.ID, i+1, l.ProductID, l.Name, l.Unit, l.Quantity, l.UnitPrice, l.Subtotal)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Sale, error) {
	s := &Sale{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, total, payment_method, created_at FROM sales WHERE id=$1`, id).
		Scan(&s.ID, &s.Total, &s.PaymentMethod, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Lines, err = r.lines(ctx, id)
	return s, err
}

func (r *postgresRepo) List(ctx context.Context, from, to time.Time) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, total, payment_method, created_at
		FROM sales WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Sale
	for rows.Next() {
		s := &Sale{}
		if err := rows.Scan(&s.ID, &s.Total, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range out {
		if s.Lines, err = r.lines(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *postgresRepo) lines(ctx context.Context, saleID uuid.UUID) ([]SaleLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, unit, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id=$1 ORDER BY line_no`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []SaleLine
	for rows.Next() {
		var l SaleLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Unit, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ── stock-sync outbox ─────────────────────────────────────────────────────────

func (r *postgresRepo) RecordSyncFailure(ctx context.Context, f *StockSyncFailure) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_sync_failures (id, sale_id, product_id, quantity, reason)
		VALUES ($1,$2,$3,$4,$5)`,
		f.ID, f.SaleID, f.ProductID, f.Quantity, f.Reason)
	return err
}

func (r *postgresRepo) PendingSyncFailures(ctx context.Context, limit int) ([]*StockSyncFailure, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sale_id, product_id, quantity, reason, created_at, resolved_at
		FROM stock_sync_failures WHERE resolved_at IS NULL
		ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*StockSyncFailure
	for rows.Next() {
		f := &StockSyncFailure{}
		var resolved sql.NullTime
		if err := rows.Scan(&f.ID, &f.SaleID, &f.ProductID, &f.Quantity, &f.Reason, &f.CreatedAt, &resolved); err != nil {
			return nil, err
		}
		if resolved.Valid {
			f.ResolvedAt = &resolved.Time
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *postgresRepo) ResolveSyncFailure(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stock_sync_failures SET resolved_at=$1 WHERE id=$2 AND resolved_at IS NULL`,
		time.Now(), id)
	return err
}
