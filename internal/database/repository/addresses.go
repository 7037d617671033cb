package repository

import (
	"context"
	"database/sql"
)

// AddressRepo handles the local deposit-address history.
type AddressRepo struct {
	db *sql.DB
}

func NewAddressRepo(db *sql.DB) *AddressRepo { return &AddressRepo{db: db} }

func (r *AddressRepo) Insert(ctx context.Context, a Address) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO addresses(id, address, addr_type, label, created_at)
	VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(address) DO UPDATE SET label = excluded.label;
	`, a.ID, a.Address, a.AddrType, a.Label)
	return err
}

func (r *AddressRepo) UpdateLabel(ctx context.Context, id string, label *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE addresses SET label = ? WHERE id = ?`, label, id)
	return err
}

// List returns addresses newest first, up to limit (0 means no limit).
func (r *AddressRepo) List(ctx context.Context, limit int) ([]Address, error) {
	q := `SELECT id, address, addr_type, label, created_at FROM addresses ORDER BY created_at DESC, id DESC`
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

	var out []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.Address, &a.AddrType, &a.Label, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AddressRepo) ByAddress(ctx context.Context, address string) (*Address, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, address, addr_type, label, created_at FROM addresses WHERE address = ?`, address)
	var a Address
	if err := row.Scan(&a.ID, &a.Address, &a.AddrType, &a.Label, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
