package repository

import (
	"context"
	"database/sql"
)

// ContactRepo handles saved peers.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) Upsert(ctx context.Context, c Contact) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO contacts(id, name, pubkey, host, created_at, updated_at)
	VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(pubkey) DO UPDATE SET
	  name = excluded.name,
	  host = excluded.host,
	  updated_at = CURRENT_TIMESTAMP;
	`, c.ID, c.Name, c.Pubkey, c.Host)
	return err
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	return err
}

func (r *ContactRepo) List(ctx context.Context) ([]Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, pubkey, host, created_at, updated_at FROM contacts ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Pubkey, &c.Host, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContactRepo) ByPubkey(ctx context.Context, pubkey string) (*Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, pubkey, host, created_at, updated_at FROM contacts WHERE pubkey = ?`, pubkey)
	var c Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Pubkey, &c.Host, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
