package reports

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed reports repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) DailySales(ctx context.Context, from, to time.Time) ([]*DailySales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM sales WHERE created_at >= $1 AND created_at < $2
		GROUP BY day ORDER BY day DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*DailySales
	for rows.Next() {
		d := &DailySales{}
		if err := rows.Scan(&d.Date, &d.Count, &d.Total); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *postgresRepo) LowStock(ctx context.Context) ([]*LowStockProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, on_hand, reorder_level
		FROM products WHERE on_hand <= reorder_level
		ORDER BY on_hand`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*LowStockProduct
	for rows.Next() {
		p := &LowStockProduct{}
		if err := rows.Scan(&p.ID, &p.Name, &p.OnHand, &p.ReorderLevel); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SupplierDebts(ctx context.Context) ([]*SupplierDebt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, balance FROM suppliers
		WHERE balance <> 0 ORDER BY balance DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*SupplierDebt
	for rows.Next() {
		d := &SupplierDebt{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Balance); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
