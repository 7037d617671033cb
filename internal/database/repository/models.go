package repository

import "time"

// Address is a deposit address previously issued by the node and recorded
// locally so the user can find it again.
type Address struct {
	ID        string
	Address   string
	AddrType  string
	Label     *string
	CreatedAt time.Time
}

// Contact is a saved peer: a human name for a pubkey@host.
type Contact struct {
	ID        string
	Name      string
	Pubkey    string
	Host      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment records an on-chain send made through the app.
type Payment struct {
	ID         string
	Txid       string
	Address    string
	AmountSats int64
	CreatedAt  time.Time
}
