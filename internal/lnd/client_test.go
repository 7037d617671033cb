package lnd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewRESTClient(Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNewAddressRequestShape(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"address":"bc1qxyzexample"}`))
	}))

	resp, err := c.NewAddress(context.Background(), NewAddressRequest{Type: AddressP2TR})
	require.NoError(t, err)
	require.Equal(t, "bc1qxyzexample", resp.Address)
	require.Equal(t, "/v1/newaddress", gotPath)
	require.Equal(t, "type=4", gotQuery)
}

func TestNewAddressDefaultType(t *testing.T) {
	t.Parallel()

	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"address":"bc1qabc"}`))
	}))

	_, err := c.NewAddress(context.Background(), NewAddressRequest{})
	require.NoError(t, err)
	require.Equal(t, "type=0", gotQuery)
}

func TestWalletBalanceStringInts(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/balance/blockchain", r.URL.Path)
		w.Write([]byte(`{"total_balance":"1500000","confirmed_balance":"1400000","unconfirmed_balance":"100000"}`))
	}))

	bal, err := c.WalletBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1500000), bal.TotalBalance)
	require.Equal(t, int64(1400000), bal.ConfirmedBalance)
	require.Equal(t, int64(100000), bal.UnconfirmedBalance)
}

func TestRequestErrorCarriesNodeMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"wallet locked","message":"wallet locked"}`))
	}))

	_, err := c.NewAddress(context.Background(), NewAddressRequest{})
	require.Error(t, err)
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	require.Equal(t, http.StatusInternalServerError, reqErr.Status)
	require.Contains(t, reqErr.Error(), "wallet locked")
}

func TestConnectAndDisconnectPeer(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.ConnectPeer(context.Background(), ConnectPeerRequest{Pubkey: "02abcd", Host: "1.2.3.4:9735"}))
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/v1/peers", gotPath)

	require.NoError(t, c.DisconnectPeer(context.Background(), "02abcd"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/v1/peers/02abcd", gotPath)
}

func TestOpenChannel(t *testing.T) {
	t.Parallel()

	var gotBody string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/channels", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"funding_txid_str":"cafe01","output_index":1}`))
	}))

	cp, err := c.OpenChannel(context.Background(), OpenChannelRequest{
		NodePubkey:         "03abcd",
		LocalFundingAmount: 200000,
	})
	require.NoError(t, err)
	require.Equal(t, "cafe01", cp.FundingTxidStr)
	require.Equal(t, uint32(1), cp.OutputIndex)
	require.Contains(t, gotBody, `"node_pubkey_string":"03abcd"`)
	require.Contains(t, gotBody, `"local_funding_amount":"200000"`)
}

func TestCloseChannel(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.CloseChannel(context.Background(), "cafe01:1", false))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/v1/channels/cafe01/1", gotPath)
	require.Empty(t, gotQuery)

	require.NoError(t, c.CloseChannel(context.Background(), "cafe01:1", true))
	require.Equal(t, "force=true", gotQuery)
}

func TestCloseChannelRejectsBadChannelPoint(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected for a malformed channel point")
	}))

	var reqErr *RequestError
	err := c.CloseChannel(context.Background(), "not-a-channel-point", false)
	require.Error(t, err)
	require.ErrorAs(t, err, &reqErr)
}

func TestSendCoins(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/transactions", r.URL.Path)
		w.Write([]byte(`{"txid":"deadbeef"}`))
	}))

	resp, err := c.SendCoins(context.Background(), SendCoinsRequest{Addr: "bc1qdest", Amount: 5000})
	require.NoError(t, err)
	require.Equal(t, "deadbeef", resp.Txid)
}

func TestMacaroonHeader(t *testing.T) {
	t.Parallel()

	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Grpc-Metadata-macaroon")
		w.Write([]byte(`{"alias":"node"}`))
	}))
	t.Cleanup(srv.Close)

	macPath := writeTempFile(t, []byte{0xde, 0xad, 0xbe, 0xef})
	c, err := NewRESTClient(Options{BaseURL: srv.URL, MacaroonPath: macPath})
	require.NoError(t, err)

	_, err = c.GetInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "deadbeef", gotHeader)
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admin.macaroon")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
