package repository

import (
	"context"
	"database/sql"
)

// PaymentRepo records on-chain sends made through the app.
type PaymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) Insert(ctx context.Context, p Payment) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO payments(id, txid, address, amount_sats, created_at)
	VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, p.ID, p.Txid, p.Address, p.AmountSats)
	return err
}

// List returns payments newest first, up to limit (0 means no limit).
func (r *PaymentRepo) List(ctx context.Context, limit int) ([]Payment, error) {
	q := `SELECT id, txid, address, amount_sats, created_at FROM payments ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.Txid, &p.Address, &p.AmountSats, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
