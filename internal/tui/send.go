package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lndash/lndash/internal/service"
)

// SendDialog drives the on-chain send form with the same lifecycle rules as
// the receive dialog: explicit close, single in-flight request, stale results
// dropped by generation.
type SendDialog struct {
	wallet *service.WalletService
	ctx    context.Context

	open    bool
	pending bool
	addr    textinput.Model
	amount  textinput.Model
	focus   int
	txid    string
	notice  string
	gen     int
}

func NewSendDialog(ctx context.Context, wallet *service.WalletService) *SendDialog {
	addr := textinput.New()
	addr.Prompt = "Address: "
	addr.CharLimit = 100
	addr.Width = 50

	amount := textinput.New()
	amount.Prompt = "Amount (sat): "
	amount.CharLimit = 16
	amount.Width = 16

	return &SendDialog{wallet: wallet, ctx: ctx, addr: addr, amount: amount}
}

func (d *SendDialog) IsOpen() bool  { return d.open }
func (d *SendDialog) Pending() bool { return d.pending }

func (d *SendDialog) Open() tea.Cmd {
	d.open = true
	d.pending = false
	d.txid = ""
	d.notice = ""
	d.focus = 0
	d.addr.SetValue("")
	d.amount.SetValue("")
	d.amount.Blur()
	d.gen++
	return d.addr.Focus()
}

func (d *SendDialog) Close() {
	d.open = false
	d.pending = false
	d.addr.Blur()
	d.amount.Blur()
	d.gen++
}

func (d *SendDialog) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		d.Close()
		return nil
	case tea.KeyTab, tea.KeyShiftTab:
		return d.toggleFocus()
	case tea.KeyEnter:
		return d.submit()
	}

	var cmd tea.Cmd
	if d.focus == 0 {
		d.addr, cmd = d.addr.Update(msg)
	} else {
		d.amount, cmd = d.amount.Update(msg)
	}
	return cmd
}

func (d *SendDialog) HandleResult(msg sendResultMsg) tea.Cmd {
	if msg.Gen != d.gen || !d.open || !d.pending {
		return nil
	}
	d.pending = false
	if msg.Err != nil {
		d.notice = msg.Err.Error()
		return nil
	}
	d.txid = msg.Txid
	d.notice = ""
	return nil
}

func (d *SendDialog) toggleFocus() tea.Cmd {
	if d.focus == 0 {
		d.focus = 1
		d.addr.Blur()
		return d.amount.Focus()
	}
	d.focus = 0
	d.amount.Blur()
	return d.addr.Focus()
}

func (d *SendDialog) submit() tea.Cmd {
	if d.pending {
		return nil
	}
	addr := strings.TrimSpace(d.addr.Value())
	if addr == "" {
		d.notice = "enter a destination address"
		return nil
	}
	amt, err := strconv.ParseInt(strings.TrimSpace(d.amount.Value()), 10, 64)
	if err != nil || amt <= 0 {
		d.notice = "enter a positive amount in satoshis"
		return nil
	}

	d.pending = true
	d.notice = ""
	gen := d.gen
	return func() tea.Msg {
		txid, err := d.wallet.Send(d.ctx, addr, amt, 0)
		return sendResultMsg{Gen: gen, Txid: txid, Err: err}
	}
}

func (d *SendDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Send Bitcoin"))
	b.WriteString("\n\n")
	b.WriteString(d.addr.View() + "\n")
	b.WriteString(d.amount.View() + "\n")

	switch {
	case d.pending:
		b.WriteString("\nBroadcasting...\n")
	case d.txid != "":
		b.WriteString("\n" + goodStyle.Render("sent, txid "+d.txid) + "\n")
	}

	if d.notice != "" {
		b.WriteString("\n" + noticeStyle.Render(d.notice) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("[tab] Field  [enter] Send  [esc] Close"))
	return b.String()
}
