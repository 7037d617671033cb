package tui

import (
	"github.com/lndash/lndash/internal/database/repository"
	"github.com/lndash/lndash/internal/lnd"
)

// messages
type infoMsg lnd.InfoResponse

type balanceMsg lnd.WalletBalanceResponse

type channelsMsg struct {
	Open    []lnd.Channel
	Pending lnd.PendingChannelsResponse
}

type peersMsg []lnd.Peer

type transactionsMsg []lnd.Transaction

type contactsMsg []repository.Contact

type addressHistoryMsg []repository.Address

type statusMsg string

type errMsg struct{ error }

// addressIssuedMsg completes a deposit-address request. Gen ties the result
// to the dialog generation that issued it; stale results are dropped.
type addressIssuedMsg struct {
	Gen     int
	Address string
	Err     error
}

// sendResultMsg completes an on-chain send.
type sendResultMsg struct {
	Gen  int
	Txid string
	Err  error
}

type connectResultMsg struct{ Err error }

type resetDoneMsg struct{ Err error }
