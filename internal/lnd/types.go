package lnd

// AddressType names the kinds of deposit addresses the node can issue.
type AddressType string

const (
	AddressP2WKH  AddressType = "p2wkh"
	AddressNP2WKH AddressType = "np2wkh"
	AddressP2TR   AddressType = "p2tr"
)

// restAddressType maps an AddressType onto the numeric enum the REST API uses.
func restAddressType(t AddressType) string {
	switch t {
	case AddressNP2WKH:
		return "1"
	case AddressP2TR:
		return "4"
	default:
		return "0" // witness pubkey hash
	}
}

// NewAddressRequest asks the node for a fresh deposit address.
type NewAddressRequest struct {
	Type AddressType
}

// NewAddressResponse carries the generated address.
type NewAddressResponse struct {
	Address string `json:"address"`
}

// InfoResponse is the subset of getinfo the dashboard shows.
type InfoResponse struct {
	Alias              string `json:"alias"`
	IdentityPubkey     string `json:"identity_pubkey"`
	Version            string `json:"version"`
	BlockHeight        uint32 `json:"block_height"`
	NumActiveChannels  uint32 `json:"num_active_channels"`
	NumPendingChannels uint32 `json:"num_pending_channels"`
	NumPeers           uint32 `json:"num_peers"`
	SyncedToChain      bool   `json:"synced_to_chain"`
	Network            string `json:"network,omitempty"`
}

// WalletBalanceResponse holds on-chain balances in satoshis.
type WalletBalanceResponse struct {
	TotalBalance       int64 `json:"total_balance,string"`
	ConfirmedBalance   int64 `json:"confirmed_balance,string"`
	UnconfirmedBalance int64 `json:"unconfirmed_balance,string"`
}

// Channel is an open channel as reported by the node.
type Channel struct {
	Active        bool   `json:"active"`
	RemotePubkey  string `json:"remote_pubkey"`
	ChannelPoint  string `json:"channel_point"`
	Capacity      int64  `json:"capacity,string"`
	LocalBalance  int64  `json:"local_balance,string"`
	RemoteBalance int64  `json:"remote_balance,string"`
	Private       bool   `json:"private"`
}

type listChannelsResponse struct {
	Channels []Channel `json:"channels"`
}

// PendingChannelsResponse summarizes channels awaiting confirmation or close.
type PendingChannelsResponse struct {
	TotalLimboBalance   int64                 `json:"total_limbo_balance,string"`
	PendingOpen         []PendingOpenChannel  `json:"pending_open_channels"`
	PendingForceClosing []PendingForceClosing `json:"pending_force_closing_channels"`
}

// PendingForceClosing is a channel waiting out its force-close timelock.
type PendingForceClosing struct {
	Channel struct {
		RemoteNodePub string `json:"remote_node_pub"`
		ChannelPoint  string `json:"channel_point"`
	} `json:"channel"`
	LimboBalance   int64 `json:"limbo_balance,string"`
	MaturityHeight int32 `json:"maturity_height"`
}

// PendingOpenChannel is a channel whose funding tx is unconfirmed.
type PendingOpenChannel struct {
	Channel struct {
		RemoteNodePub string `json:"remote_node_pub"`
		ChannelPoint  string `json:"channel_point"`
		Capacity      int64  `json:"capacity,string"`
		LocalBalance  int64  `json:"local_balance,string"`
	} `json:"channel"`
}

// OpenChannelRequest funds a new channel to a connected peer.
type OpenChannelRequest struct {
	NodePubkey         string `json:"node_pubkey_string"`
	LocalFundingAmount int64  `json:"local_funding_amount,string"`
	SatPerVbyte        uint64 `json:"sat_per_vbyte,string,omitempty"`
	Private            bool   `json:"private,omitempty"`
}

// ChannelPoint identifies a channel's funding output.
type ChannelPoint struct {
	FundingTxidStr string `json:"funding_txid_str"`
	OutputIndex    uint32 `json:"output_index"`
}

// Peer is a connected network peer.
type Peer struct {
	Pubkey    string `json:"pub_key"`
	Address   string `json:"address"`
	BytesSent int64  `json:"bytes_sent,string"`
	BytesRecv int64  `json:"bytes_recv,string"`
	Inbound   bool   `json:"inbound"`
}

type listPeersResponse struct {
	Peers []Peer `json:"peers"`
}

// ConnectPeerRequest connects to pubkey@host.
type ConnectPeerRequest struct {
	Pubkey string
	Host   string
	Perm   bool
}

// SendCoinsRequest sends on-chain funds.
type SendCoinsRequest struct {
	Addr        string `json:"addr"`
	Amount      int64  `json:"amount,string"`
	SatPerVbyte uint64 `json:"sat_per_vbyte,string,omitempty"`
}

// SendCoinsResponse carries the broadcast transaction id.
type SendCoinsResponse struct {
	Txid string `json:"txid"`
}

// Transaction is an on-chain wallet transaction.
type Transaction struct {
	TxHash           string `json:"tx_hash"`
	Amount           int64  `json:"amount,string"`
	NumConfirmations int32  `json:"num_confirmations"`
	BlockHeight      int32  `json:"block_height"`
	TimeStamp        int64  `json:"time_stamp,string"`
	TotalFees        int64  `json:"total_fees,string"`
	Label            string `json:"label,omitempty"`
}

type listTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
