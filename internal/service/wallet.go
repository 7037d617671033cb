package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/lndash/lndash/internal/database/repository"
	"github.com/lndash/lndash/internal/lnd"
)

// WalletService wraps the node's wallet calls and keeps local history of
// issued addresses and sends.
type WalletService struct {
	Node      lnd.NodeClient
	Addresses *repository.AddressRepo
	Payments  *repository.PaymentRepo
}

// NewDepositAddress asks the node for a fresh address of the given type and
// records it in local history. The address is returned even if recording
// fails: it exists on the node regardless.
func (s *WalletService) NewDepositAddress(ctx context.Context, addrType lnd.AddressType, label string) (string, error) {
	if s.Node == nil {
		return "", fmt.Errorf("wallet: node client not configured")
	}
	resp, err := s.Node.NewAddress(ctx, lnd.NewAddressRequest{Type: addrType})
	if err != nil {
		return "", err
	}
	if resp.Address == "" {
		return "", fmt.Errorf("wallet: node returned empty address")
	}

	if s.Addresses != nil {
		rec := repository.Address{
			ID:       uuid.NewString(),
			Address:  resp.Address,
			AddrType: string(addrType),
		}
		if l := strings.TrimSpace(label); l != "" {
			rec.Label = &l
		}
		if err := s.Addresses.Insert(ctx, rec); err != nil {
			log.Printf("wallet: record address: %v", err)
		}
	}
	return resp.Address, nil
}

// AddressHistory lists previously issued addresses, newest first.
func (s *WalletService) AddressHistory(ctx context.Context, limit int) ([]repository.Address, error) {
	if s.Addresses == nil {
		return nil, nil
	}
	return s.Addresses.List(ctx, limit)
}

// Send broadcasts an on-chain payment and records it locally.
func (s *WalletService) Send(ctx context.Context, addr string, amountSats int64, satPerVbyte uint64) (string, error) {
	if s.Node == nil {
		return "", fmt.Errorf("wallet: node client not configured")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("wallet: destination address required")
	}
	if amountSats <= 0 {
		return "", fmt.Errorf("wallet: amount must be positive")
	}

	resp, err := s.Node.SendCoins(ctx, lnd.SendCoinsRequest{Addr: addr, Amount: amountSats, SatPerVbyte: satPerVbyte})
	if err != nil {
		return "", err
	}

	if s.Payments != nil {
		p := repository.Payment{
			ID:         uuid.NewString(),
			Txid:       resp.Txid,
			Address:    addr,
			AmountSats: amountSats,
		}
		if err := s.Payments.Insert(ctx, p); err != nil {
			log.Printf("wallet: record payment: %v", err)
		}
	}
	return resp.Txid, nil
}

// SendHistory lists on-chain sends made through the app, newest first.
func (s *WalletService) SendHistory(ctx context.Context, limit int) ([]repository.Payment, error) {
	if s.Payments == nil {
		return nil, nil
	}
	return s.Payments.List(ctx, limit)
}
