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

type stubNode struct {
	lnd.NodeClient

	newAddress func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error)
	sendCoins  func(context.Context, lnd.SendCoinsRequest) (lnd.SendCoinsResponse, error)
}

func (s *stubNode) NewAddress(ctx context.Context, req lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
	return s.newAddress(ctx, req)
}

func (s *stubNode) SendCoins(ctx context.Context, req lnd.SendCoinsRequest) (lnd.SendCoinsResponse, error) {
	return s.sendCoins(ctx, req)
}

func newReceiveFixture(t *testing.T, node *stubNode) *ReceiveDialog {
	t.Helper()
	wallet := &service.WalletService{Node: node}
	return NewReceiveDialog(context.Background(), wallet, lnd.AddressP2WKH)
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }

func TestReceiveOpenStartsEmpty(t *testing.T) {
	d := newReceiveFixture(t, &stubNode{})

	require.False(t, d.IsOpen())
	d.Open()
	require.True(t, d.IsOpen())
	require.False(t, d.Pending())
	require.Empty(t, d.Address())
	require.Empty(t, d.Notice())
}

func TestReceiveSuccessPopulatesAddress(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{Address: "bc1qxyz"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	cmd := d.HandleKey(keyEnter())
	require.NotNil(t, cmd)
	require.True(t, d.Pending())

	msg, ok := cmd().(addressIssuedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	d.HandleResult(msg)
	require.True(t, d.IsOpen(), "receiving an address must not close the dialog")
	require.False(t, d.Pending())
	require.Equal(t, "bc1qxyz", d.Address())
	require.Empty(t, d.Notice())
}

func TestReceiveOpenResetsPreviousAddress(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{Address: "bc1qfirst"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	d.HandleResult(d.HandleKey(keyEnter())().(addressIssuedMsg))
	require.Equal(t, "bc1qfirst", d.Address())

	d.HandleKey(keyEsc())
	require.False(t, d.IsOpen())

	d.Open()
	require.Empty(t, d.Address(), "reopening must never show the previous session's address")
	require.Empty(t, d.Notice())
	require.False(t, d.Pending())
}

func TestReceiveErrorShownOnceAddressUnchanged(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{}, errors.New("connection refused")
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	msg := d.HandleKey(keyEnter())().(addressIssuedMsg)
	require.Error(t, msg.Err)

	d.HandleResult(msg)
	require.True(t, d.IsOpen())
	require.False(t, d.Pending())
	require.Contains(t, d.Notice(), "connection refused")
	require.Empty(t, d.Address())

	// a redelivered result is dropped: nothing pending anymore
	d.notice = ""
	d.HandleResult(msg)
	require.Empty(t, d.Notice(), "duplicate result must not surface the error again")
}

func TestReceiveSubmitNeverCloses(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{Address: "bc1qstay"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	d.HandleKey(keyEnter())
	require.True(t, d.IsOpen())

	// only esc closes
	d.HandleKey(keyEsc())
	require.False(t, d.IsOpen())
}

func TestReceivePendingBlocksSecondSubmit(t *testing.T) {
	calls := 0
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		calls++
		return lnd.NewAddressResponse{Address: "bc1qonce"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	first := d.HandleKey(keyEnter())
	require.NotNil(t, first)
	require.Nil(t, d.HandleKey(keyEnter()), "second submit while pending must be a no-op")

	first()
	require.Equal(t, 1, calls)
}

func TestReceiveStaleResultDroppedAfterReopen(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{Address: "bc1qstale"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	cmd := d.HandleKey(keyEnter())
	stale := cmd().(addressIssuedMsg)

	// user closes and reopens before the result lands
	d.HandleKey(keyEsc())
	d.Open()

	d.HandleResult(stale)
	require.Empty(t, d.Address(), "result from a previous session must be dropped")
	require.Empty(t, d.Notice())
	require.False(t, d.Pending())
}

func TestReceiveStaleResultDroppedAfterClose(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{Address: "bc1qlate"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	stale := d.HandleKey(keyEnter())().(addressIssuedMsg)
	d.HandleKey(keyEsc())

	d.HandleResult(stale)
	require.False(t, d.IsOpen())
	require.Empty(t, d.Address())
}

func TestReceiveTypeCycleBlockedWhilePending(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{Address: "bc1q"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	require.Equal(t, lnd.AddressP2WKH, d.addrType)
	d.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, lnd.AddressP2TR, d.addrType)

	d.HandleKey(keyEnter())
	d.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, lnd.AddressP2TR, d.addrType, "type must not change mid-request")
}

func TestReceiveViewStates(t *testing.T) {
	node := &stubNode{newAddress: func(context.Context, lnd.NewAddressRequest) (lnd.NewAddressResponse, error) {
		return lnd.NewAddressResponse{Address: "bc1qview"}, nil
	}}
	d := newReceiveFixture(t, node)

	d.Open()
	require.Contains(t, d.View(), "Press enter")

	cmd := d.HandleKey(keyEnter())
	require.Contains(t, d.View(), "Requesting address")

	d.HandleResult(cmd().(addressIssuedMsg))
	require.Contains(t, d.View(), "bc1qview")
}
