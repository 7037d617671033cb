package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/lndash/lndash/internal/lnd"
	"github.com/lndash/lndash/internal/service"
)

func newSendFixture(t *testing.T, node *stubNode) *SendDialog {
	t.Helper()
	wallet := &service.WalletService{Node: node}
	return NewSendDialog(context.Background(), wallet)
}

func TestSendValidatesBeforeSubmitting(t *testing.T) {
	called := false
	node := &stubNode{sendCoins: func(context.Context, lnd.SendCoinsRequest) (lnd.SendCoinsResponse, error) {
		called = true
		return lnd.SendCoinsResponse{}, nil
	}}
	d := newSendFixture(t, node)

	d.Open()
	require.Nil(t, d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Contains(t, d.notice, "destination address")

	d.addr.SetValue("bc1qdest")
	d.amount.SetValue("nope")
	require.Nil(t, d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Contains(t, d.notice, "positive amount")
	require.False(t, called)
	require.True(t, d.IsOpen())
}

func TestSendSuccessShowsTxidAndStaysOpen(t *testing.T) {
	node := &stubNode{sendCoins: func(_ context.Context, req lnd.SendCoinsRequest) (lnd.SendCoinsResponse, error) {
		if req.Addr != "bc1qdest" || req.Amount != 5000 {
			return lnd.SendCoinsResponse{}, errors.New("unexpected request")
		}
		return lnd.SendCoinsResponse{Txid: "abc123"}, nil
	}}
	d := newSendFixture(t, node)

	d.Open()
	d.addr.SetValue("bc1qdest")
	d.amount.SetValue("5000")
	cmd := d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, d.Pending())

	d.HandleResult(cmd().(sendResultMsg))
	require.True(t, d.IsOpen())
	require.False(t, d.Pending())
	require.Equal(t, "abc123", d.txid)
	require.Contains(t, d.View(), "abc123")
}

func TestSendErrorKeepsFormForRetry(t *testing.T) {
	node := &stubNode{sendCoins: func(context.Context, lnd.SendCoinsRequest) (lnd.SendCoinsResponse, error) {
		return lnd.SendCoinsResponse{}, errors.New("insufficient funds")
	}}
	d := newSendFixture(t, node)

	d.Open()
	d.addr.SetValue("bc1qdest")
	d.amount.SetValue("5000")
	cmd := d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	d.HandleResult(cmd().(sendResultMsg))
	require.True(t, d.IsOpen())
	require.Contains(t, d.notice, "insufficient funds")
	require.Equal(t, "bc1qdest", d.addr.Value(), "inputs survive a failed send")
	require.Empty(t, d.txid)
}

func TestSendStaleResultDroppedAfterReopen(t *testing.T) {
	node := &stubNode{sendCoins: func(context.Context, lnd.SendCoinsRequest) (lnd.SendCoinsResponse, error) {
		return lnd.SendCoinsResponse{Txid: "stale"}, nil
	}}
	d := newSendFixture(t, node)

	d.Open()
	d.addr.SetValue("bc1qdest")
	d.amount.SetValue("5000")
	stale := d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})().(sendResultMsg)

	d.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	d.Open()

	d.HandleResult(stale)
	require.Empty(t, d.txid)
	require.False(t, d.Pending())
}

func TestSendPendingBlocksSecondSubmit(t *testing.T) {
	calls := 0
	node := &stubNode{sendCoins: func(context.Context, lnd.SendCoinsRequest) (lnd.SendCoinsResponse, error) {
		calls++
		return lnd.SendCoinsResponse{Txid: "once"}, nil
	}}
	d := newSendFixture(t, node)

	d.Open()
	d.addr.SetValue("bc1qdest")
	d.amount.SetValue("5000")
	first := d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)
	require.Nil(t, d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}))

	first()
	require.Equal(t, 1, calls)
}
