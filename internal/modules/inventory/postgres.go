package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed inventory repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, unit, cost_price, selling_price, on_hand, reorder_level)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Unit, p.CostPrice, p.SellingPrice, p.OnHand, p.ReorderLevel)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := r.scan(r.db.QueryRowContext(ctx, `
		SELECT id,name,unit,cost_price,selling_price,on_hand,reorder_level,created_at,updated_at
		FROM products WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,name,unit,cost_price,selling_price,on_hand,reorder_level,created_at,updated_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, unit=$2, cost_price=$3, selling_price=$4, on_hand=$5, reorder_level=$6, updated_at=$7
		WHERE id=$8`,
		p.Name, p.Unit, p.CostPrice, p.SellingPrice, p.OnHand, p.ReorderLevel, time.Now(), p.ID)
	if err != nil {
		return err
	}
	return r.requireRow(res)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return r.requireRow(res)
}

// Decrement is a single conditional UPDATE so the database serialises
// concurrent commits against the same product; two racing sales can never
// jointly take on-hand below zero.
func (r *postgresRepo) Decrement(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("decrement quantity must be positive, got %d", qty)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET on_hand = on_hand - $1, updated_at = $2
		WHERE id = $3 AND on_hand >= $1`,
		qty, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a vanished product from a stock shortfall.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *postgresRepo) Increment(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("increment quantity must be positive, got %d", qty)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET on_hand = on_hand + $1, updated_at = $2 WHERE id = $3`,
		qty, time.Now(), id)
	if err != nil {
		return err
	}
	return r.requireRow(res)
}

func (r *postgresRepo) requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.CostPrice, &p.SellingPrice,
		&p.OnHand, &p.ReorderLevel, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
