package payments

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed payments repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *PushTransaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO push_transactions (id, phone_number, amount, merchant_request_id, status)
		VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.PhoneNumber, t.Amount, t.MerchantRequestID, t.Status)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*PushTransaction, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, phone_number, amount, merchant_request_id, status, result_code,
		       result_desc, receipt_number, callback_payload, callback_received_at,
		       created_at, updated_at
		FROM push_transactions WHERE id=$1`, id))
}

func (r *postgresRepo) GetByMerchantRef(ctx context.Context, merchantRequestID string) (*PushTransaction, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, phone_number, amount, merchant_request_id, status, result_code,
		       result_desc, receipt_number, callback_payload, callback_received_at,
		       created_at, updated_at
		FROM push_transactions WHERE merchant_request_id=$1`, merchantRequestID))
}

func (r *postgresRepo) List(ctx context.Context) ([]*PushTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, phone_number, amount, merchant_request_id, status, result_code,
		       result_desc, receipt_number, callback_payload, callback_received_at,
		       created_at, updated_at
		FROM push_transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*PushTransaction
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *postgresRepo) RecordCallback(ctx context.Context, id uuid.UUID, status PushStatus, cb CallbackPayload, raw []byte) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE push_transactions
		SET status=$1, result_code=$2, result_desc=$3, receipt_number=$4,
		    callback_payload=$5, callback_received_at=$6, updated_at=$6
		WHERE id=$7`,
		status, cb.ResultCode, cb.ResultDesc, cb.ReceiptNumber, raw, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*PushTransaction, error) {
	t := &PushTransaction{}
	var (
		resultCode sql.NullInt64
		resultDesc sql.NullString
		receiptNum sql.NullString
		payload    []byte
		receivedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.PhoneNumber, &t.Amount, &t.MerchantRequestID, &t.Status,
		&resultCode, &resultDesc, &receiptNum, &payload, &receivedAt,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	if resultCode.Valid {
		code := int(resultCode.Int64)
		t.ResultCode = &code
	}
	if resultDesc.Valid {
		t.ResultDesc = resultDesc.String
	}
	if receiptNum.Valid {
		t.ReceiptNumber = receiptNum.String
	}
	if len(payload) > 0 {
		t.CallbackPayload = payload
	}
	if receivedAt.Valid {
		t.CallbackReceivedAt = &receivedAt.Time
	}
	return t, nil
}
