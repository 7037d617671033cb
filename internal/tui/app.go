package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lndash/lndash/internal/config"
	"github.com/lndash/lndash/internal/database/repository"
	"github.com/lndash/lndash/internal/lnd"
	"github.com/lndash/lndash/internal/service"
	"github.com/lndash/lndash/internal/tui/widgets"
)

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	node     lnd.NodeClient
	services Services

	state  appState
	width  int
	height int
	status string

	info      lnd.InfoResponse
	haveInfo  bool
	balance   lnd.WalletBalanceResponse
	channels  []lnd.Channel
	pendingCh lnd.PendingChannelsResponse
	peers     []lnd.Peer
	txns      []lnd.Transaction
	contacts  []repository.Contact
	addresses []repository.Address

	receive *ReceiveDialog
	send    *SendDialog

	// dashboard pane selection
	panes      []*widgets.Pane
	paneCursor int

	// peers view
	peerCursor   int
	connectOpen  bool
	connectInput textinput.Model
	saveOpen     bool
	saveInput    textinput.Model
	savePubkey   string
	saveHost     string
	searchOpen   bool
	searchInput  textinput.Model

	// channels view
	chanCursor       int
	openChanOpen     bool
	openChanInput    textinput.Model
	confirmCloseChan bool

	txCursor int

	confirmReset bool
	unit         string
	dateFormat   string
}

// Services bundles what the TUI needs from the service layer.
type Services struct {
	Wallet      *service.WalletService
	Peers       *service.PeerService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewDashboard    appState = "dashboard"
	viewChannels     appState = "channels"
	viewPeers        appState = "peers"
	viewTransactions appState = "transactions"
	viewSettings     appState = "settings"
)

const historyLimit = 50

func New(ctx context.Context, cfg config.Config, node lnd.NodeClient, services Services) *App {
	connect := textinput.New()
	connect.Prompt = "Peer (pubkey@host): "
	connect.CharLimit = 200
	connect.Width = 70

	save := textinput.New()
	save.Prompt = "Contact name: "
	save.CharLimit = 64
	save.Width = 32

	search := textinput.New()
	search.Prompt = "Search contacts: "
	search.CharLimit = 64
	search.Width = 32

	openChan := textinput.New()
	openChan.Prompt = "Open channel (pubkey amount): "
	openChan.CharLimit = 100
	openChan.Width = 70

	a := &App{
		ctx:           ctx,
		cfg:           cfg,
		node:          node,
		services:      services,
		state:         viewDashboard,
		receive:       NewReceiveDialog(ctx, services.Wallet, lnd.AddressType(cfg.UI.AddressType)),
		send:          NewSendDialog(ctx, services.Wallet),
		connectInput:  connect,
		saveInput:     save,
		searchInput:   search,
		openChanInput: openChan,
		unit:          cfg.UI.Unit,
		dateFormat:    cfg.UI.DateFormat,
		width:         100,
		height:        32,
	}
	a.panes = []*widgets.Pane{
		{Title: "Balance", Menu: []widgets.MenuItem{
			{Label: "Refresh", Action: a.loadBalance()},
		}},
		{Title: "Node", DisableMenu: true},
		{Title: "Channels", Menu: []widgets.MenuItem{
			{Label: "Refresh", Action: a.loadChannels()},
		}},
		{Title: "Addresses", Menu: []widgets.MenuItem{
			{Label: "Copy latest", Action: a.copyLatestAddress},
			{Label: "Refresh", Action: a.loadAddresses()},
		}},
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadInfo(),
		a.loadBalance(),
		a.loadChannels(),
		a.loadPeers(),
		a.loadTransactions(),
		a.loadContacts(""),
		a.loadAddresses(),
	)
}

// load commands

func (a *App) loadInfo() tea.Cmd {
	return func() tea.Msg {
		info, err := a.node.GetInfo(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return infoMsg(info)
	}
}

func (a *App) loadBalance() tea.Cmd {
	return func() tea.Msg {
		bal, err := a.node.WalletBalance(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return balanceMsg(bal)
	}
}

func (a *App) loadChannels() tea.Cmd {
	return func() tea.Msg {
		open, err := a.node.ListChannels(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		pending, err := a.node.PendingChannels(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return channelsMsg{Open: open, Pending: pending}
	}
}

func (a *App) loadPeers() tea.Cmd {
	return func() tea.Msg {
		peers, err := a.node.ListPeers(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return peersMsg(peers)
	}
}

func (a *App) loadTransactions() tea.Cmd {
	return func() tea.Msg {
		txns, err := a.node.GetTransactions(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return transactionsMsg(txns)
	}
}

func (a *App) loadContacts(query string) tea.Cmd {
	return func() tea.Msg {
		if a.services.Peers == nil {
			return contactsMsg(nil)
		}
		contacts, err := a.services.Peers.SearchContacts(a.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return contactsMsg(contacts)
	}
}

func (a *App) loadAddresses() tea.Cmd {
	return func() tea.Msg {
		if a.services.Wallet == nil {
			return addressHistoryMsg(nil)
		}
		addrs, err := a.services.Wallet.AddressHistory(a.ctx, historyLimit)
		if err != nil {
			return errMsg{err}
		}
		return addressHistoryMsg(addrs)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)

	case addressIssuedMsg:
		cmd := a.receive.HandleResult(m)
		if m.Err == nil && m.Address != "" {
			return a, tea.Batch(cmd, a.loadAddresses())
		}
		return a, cmd

	case sendResultMsg:
		cmd := a.send.HandleResult(m)
		if m.Err == nil {
			return a, tea.Batch(cmd, a.loadBalance(), a.loadTransactions())
		}
		return a, cmd

	case connectResultMsg:
		if m.Err != nil {
			a.status = "error: " + m.Err.Error()
			return a, nil
		}
		a.status = "peer connected"
		return a, a.loadPeers()

	case resetDoneMsg:
		if m.Err != nil {
			a.status = "error: " + m.Err.Error()
			return a, nil
		}
		a.status = "local history cleared"
		return a, tea.Batch(a.loadContacts(""), a.loadAddresses())

	case infoMsg:
		a.info = lnd.InfoResponse(m)
		a.haveInfo = true
	case balanceMsg:
		a.balance = lnd.WalletBalanceResponse(m)
	case channelsMsg:
		a.channels = m.Open
		a.pendingCh = m.Pending
		if a.chanCursor >= len(a.channels) {
			a.chanCursor = 0
		}
	case peersMsg:
		a.peers = []lnd.Peer(m)
		if a.peerCursor >= len(a.peers) {
			a.peerCursor = 0
		}
	case transactionsMsg:
		a.txns = []lnd.Transaction(m)
		if a.txCursor >= len(a.txns) {
			a.txCursor = 0
		}
	case contactsMsg:
		a.contacts = []repository.Contact(m)
	case addressHistoryMsg:
		a.addresses = []repository.Address(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	// modal surfaces take priority over everything else
	if a.receive.IsOpen() {
		return a, a.receive.HandleKey(m)
	}
	if a.send.IsOpen() {
		return a, a.send.HandleKey(m)
	}
	if a.confirmReset {
		return a.handleConfirmResetKey(m)
	}
	if a.confirmCloseChan {
		return a.handleConfirmCloseChanKey(m)
	}
	if a.connectOpen || a.saveOpen || a.searchOpen {
		return a.handlePeerInputKey(m)
	}
	if a.openChanOpen {
		return a.handleOpenChanInputKey(m)
	}
	if pane := a.openMenuPane(); pane != nil {
		return a.handleMenuKey(pane, m)
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "d":
		a.state = viewDashboard
	case "c":
		a.state = viewChannels
	case "p":
		a.state = viewPeers
	case "t":
		a.state = viewTransactions
	case "o":
		a.state = viewSettings
	case "r":
		return a, a.receive.Open()
	case "w":
		return a, a.send.Open()
	case "g":
		a.status = "refreshing..."
		return a, a.Init()
	}

	switch a.state {
	case viewDashboard:
		return a.handleDashboardKey(m)
	case viewChannels:
		return a.handleChannelsKey(m)
	case viewPeers:
		return a.handlePeersKey(m)
	case viewTransactions:
		return a.handleTransactionsKey(m)
	case viewSettings:
		return a.handleSettingsKey(m)
	}
	return a, nil
}

func (a *App) openMenuPane() *widgets.Pane {
	for _, p := range a.panes {
		if p.MenuOpen() {
			return p
		}
	}
	return nil
}

func (a *App) handleMenuKey(pane *widgets.Pane, m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc", "m":
		pane.CloseMenu()
	case "up", "k":
		pane.MenuUp()
	case "down", "j":
		pane.MenuDown()
	case "enter":
		return a, pane.SelectMenu()
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "left", "h":
		if a.paneCursor > 0 {
			a.paneCursor--
		}
	case "right", "l":
		if a.paneCursor < len(a.panes)-1 {
			a.paneCursor++
		}
	case "m":
		a.panes[a.paneCursor].ToggleMenu()
	}
	return a, nil
}

func (a *App) handleChannelsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up", "k":
		if a.chanCursor > 0 {
			a.chanCursor--
		}
	case "down", "j":
		if a.chanCursor < len(a.channels)-1 {
			a.chanCursor++
		}
	case "a":
		a.openChanOpen = true
		a.openChanInput.SetValue("")
		return a, a.openChanInput.Focus()
	case "x":
		if len(a.channels) == 0 {
			a.status = "no channel selected"
			return a, nil
		}
		a.confirmCloseChan = true
	}
	return a, nil
}

func (a *App) handleOpenChanInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.openChanOpen = false
		a.openChanInput.Blur()
		return a, nil
	case tea.KeyEnter:
		a.openChanOpen = false
		a.openChanInput.Blur()
		return a, a.openChannelCmd(a.openChanInput.Value())
	}
	var cmd tea.Cmd
	a.openChanInput, cmd = a.openChanInput.Update(m)
	return a, cmd
}

func (a *App) handleConfirmCloseChanKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		a.confirmCloseChan = false
		if a.chanCursor < len(a.channels) {
			return a, a.closeChannelCmd(a.channels[a.chanCursor].ChannelPoint)
		}
	case "n", "N", "esc":
		a.confirmCloseChan = false
	}
	return a, nil
}

func (a *App) handlePeersKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up", "k":
		if a.peerCursor > 0 {
			a.peerCursor--
		}
	case "down", "j":
		if a.peerCursor < len(a.peers)-1 {
			a.peerCursor++
		}
	case "a":
		a.connectOpen = true
		a.connectInput.SetValue("")
		return a, a.connectInput.Focus()
	case "x":
		if len(a.peers) == 0 {
			a.status = "no peer selected"
			return a, nil
		}
		return a, a.disconnectCmd(a.peers[a.peerCursor].Pubkey)
	case "n":
		if len(a.peers) == 0 {
			a.status = "no peer selected"
			return a, nil
		}
		peer := a.peers[a.peerCursor]
		a.saveOpen = true
		a.savePubkey = peer.Pubkey
		a.saveHost = peer.Address
		a.saveInput.SetValue("")
		return a, a.saveInput.Focus()
	case "/":
		a.searchOpen = true
		a.searchInput.SetValue("")
		return a, a.searchInput.Focus()
	}
	return a, nil
}

func (a *App) handlePeerInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.connectOpen, a.saveOpen, a.searchOpen = false, false, false
		a.connectInput.Blur()
		a.saveInput.Blur()
		a.searchInput.Blur()
		return a, nil
	case tea.KeyEnter:
		switch {
		case a.connectOpen:
			a.connectOpen = false
			a.connectInput.Blur()
			return a, a.connectCmd(a.connectInput.Value())
		case a.saveOpen:
			a.saveOpen = false
			a.saveInput.Blur()
			name := a.saveInput.Value()
			return a, a.saveContactCmd(name, a.savePubkey, a.saveHost)
		case a.searchOpen:
			a.searchOpen = false
			a.searchInput.Blur()
			return a, a.loadContacts(a.searchInput.Value())
		}
	}

	var cmd tea.Cmd
	switch {
	case a.connectOpen:
		a.connectInput, cmd = a.connectInput.Update(m)
	case a.saveOpen:
		a.saveInput, cmd = a.saveInput.Update(m)
	case a.searchOpen:
		a.searchInput, cmd = a.searchInput.Update(m)
	}
	return a, cmd
}

func (a *App) handleTransactionsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up", "k":
		if a.txCursor > 0 {
			a.txCursor--
		}
	case "down", "j":
		if a.txCursor < len(a.txns)-1 {
			a.txCursor++
		}
	case "y":
		if len(a.txns) == 0 {
			return a, nil
		}
		txid := a.txns[a.txCursor].TxHash
		if err := clipboard.WriteAll(txid); err != nil {
			a.status = "copy failed: " + err.Error()
		} else {
			a.status = "txid copied"
		}
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "u":
		if a.unit == "sat" {
			a.unit = "btc"
		} else {
			a.unit = "sat"
		}
		a.cfg.UI.Unit = a.unit
		return a, a.saveConfigCmd()
	case "x":
		a.confirmReset = true
	}
	return a, nil
}

func (a *App) handleConfirmResetKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		a.confirmReset = false
		return a, a.resetCmd()
	case "n", "N", "esc":
		a.confirmReset = false
	}
	return a, nil
}

// action commands

func (a *App) connectCmd(raw string) tea.Cmd {
	return func() tea.Msg {
		pubkey, host, ok := strings.Cut(strings.TrimSpace(raw), "@")
		if !ok || pubkey == "" {
			return connectResultMsg{Err: fmt.Errorf("expected pubkey@host")}
		}
		if a.services.Peers == nil {
			return connectResultMsg{Err: fmt.Errorf("peer service not configured")}
		}
		return connectResultMsg{Err: a.services.Peers.Connect(a.ctx, pubkey, host)}
	}
}

func (a *App) disconnectCmd(pubkey string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if a.services.Peers == nil {
				return errMsg{fmt.Errorf("peer service not configured")}
			}
			if err := a.services.Peers.Disconnect(a.ctx, pubkey); err != nil {
				return errMsg{err}
			}
			return statusMsg("peer disconnected")
		},
		a.loadPeers(),
	)
}

func (a *App) openChannelCmd(raw string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			fields := strings.Fields(raw)
			if len(fields) != 2 {
				return errMsg{fmt.Errorf("expected pubkey and amount in satoshis")}
			}
			amt, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil || amt <= 0 {
				return errMsg{fmt.Errorf("amount must be a positive satoshi count")}
			}
			cp, err := a.node.OpenChannel(a.ctx, lnd.OpenChannelRequest{
				NodePubkey:         fields[0],
				LocalFundingAmount: amt,
			})
			if err != nil {
				return errMsg{err}
			}
			return statusMsg("channel funding tx " + cp.FundingTxidStr)
		},
		a.loadChannels(),
	)
}

func (a *App) closeChannelCmd(channelPoint string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.node.CloseChannel(a.ctx, channelPoint, false); err != nil {
				return errMsg{err}
			}
			return statusMsg("channel close requested")
		},
		a.loadChannels(),
	)
}

func (a *App) saveContactCmd(name, pubkey, host string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if a.services.Peers == nil {
				return errMsg{fmt.Errorf("peer service not configured")}
			}
			if err := a.services.Peers.SaveContact(a.ctx, name, pubkey, host); err != nil {
				return errMsg{err}
			}
			return statusMsg("contact saved")
		},
		a.loadContacts(""),
	)
}

func (a *App) saveConfigCmd() tea.Cmd {
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("settings saved")
	}
}

func (a *App) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if a.services.Maintenance == nil {
			return resetDoneMsg{Err: fmt.Errorf("maintenance not configured")}
		}
		return resetDoneMsg{Err: a.services.Maintenance.Reset(a.ctx)}
	}
}

func (a *App) copyLatestAddress() tea.Msg {
	if len(a.addresses) == 0 {
		return statusMsg("no addresses yet")
	}
	if err := clipboard.WriteAll(a.addresses[0].Address); err != nil {
		return errMsg{fmt.Errorf("copy failed: %w", err)}
	}
	return statusMsg("address copied")
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewChannels:
		body = a.renderChannels()
	case viewPeers:
		body = a.renderPeers()
	case viewTransactions:
		body = a.renderTransactions()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderDashboard()
	}

	if a.status != "" {
		body += "\n" + helpStyle.Render(a.status)
	}

	switch {
	case a.receive.IsOpen():
		return widgets.RenderPopup(body, a.receive.View(), a.width, a.height)
	case a.send.IsOpen():
		return widgets.RenderPopup(body, a.send.View(), a.width, a.height)
	case a.confirmReset:
		confirm := titleStyle.Render("Clear local history?") + "\nAddresses, contacts and send records will be deleted.\n[y] Yes  [n] No"
		return widgets.RenderPopup(body, confirm, a.width, a.height)
	case a.confirmCloseChan:
		target := ""
		if a.chanCursor < len(a.channels) {
			target = truncate(a.channels[a.chanCursor].RemotePubkey, 20)
		}
		confirm := titleStyle.Render("Close channel?") + "\nCooperative close with " + target + ".\n[y] Yes  [n] No"
		return widgets.RenderPopup(body, confirm, a.width, a.height)
	}
	return body
}
