package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lndash/lndash/internal/lnd"
	"github.com/lndash/lndash/internal/service"
)

// ReceiveDialog drives the deposit-address workflow:
//
//	closed -> open (empty) -> pending -> open (populated) -> closed
//
// Opening always resets the address. While a request is pending further
// submits are ignored. Every async result carries the generation it was
// requested under; results from a closed or reopened dialog are dropped, so
// a slow node can never write into a dialog the user already left.
type ReceiveDialog struct {
	wallet *service.WalletService
	ctx    context.Context

	open     bool
	pending  bool
	address  string
	qr       string
	addrType lnd.AddressType
	label    textinput.Model
	notice   string
	copied   bool
	gen      int
}

// NewReceiveDialog builds a closed dialog. defaultType is used each time the
// dialog opens; the user can cycle it per request.
func NewReceiveDialog(ctx context.Context, wallet *service.WalletService, defaultType lnd.AddressType) *ReceiveDialog {
	ti := textinput.New()
	ti.Prompt = "Label: "
	ti.Placeholder = "(optional)"
	ti.CharLimit = 64
	ti.Width = 32
	return &ReceiveDialog{
		wallet:   wallet,
		ctx:      ctx,
		addrType: defaultType,
		label:    ti,
	}
}

// IsOpen reports whether the dialog is showing.
func (d *ReceiveDialog) IsOpen() bool { return d.open }

// Pending reports whether an address request is in flight.
func (d *ReceiveDialog) Pending() bool { return d.pending }

// Address returns the currently displayed address ("" until one arrives).
func (d *ReceiveDialog) Address() string { return d.address }

// Notice returns the failure text shown in the dialog, if any.
func (d *ReceiveDialog) Notice() string { return d.notice }

// Open shows the dialog with a clean slate. The reset is unconditional so
// reopening never shows a previous session's address.
func (d *ReceiveDialog) Open() tea.Cmd {
	d.open = true
	d.pending = false
	d.address = ""
	d.qr = ""
	d.notice = ""
	d.copied = false
	d.label.SetValue("")
	d.gen++
	return d.label.Focus()
}

// Close hides the dialog and invalidates any in-flight request.
func (d *ReceiveDialog) Close() {
	d.open = false
	d.pending = false
	d.label.Blur()
	d.gen++
}

// HandleKey processes a key press while the dialog is open. Closing is always
// an explicit action; submitting never closes the dialog.
func (d *ReceiveDialog) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		d.Close()
		return nil
	case tea.KeyEnter:
		return d.submit()
	case tea.KeyTab:
		d.cycleType()
		return nil
	case tea.KeyCtrlY:
		return d.copyAddress()
	}

	var cmd tea.Cmd
	d.label, cmd = d.label.Update(msg)
	return cmd
}

// HandleResult applies an async address result. Stale results (wrong
// generation, dialog closed, or nothing pending) are dropped.
func (d *ReceiveDialog) HandleResult(msg addressIssuedMsg) tea.Cmd {
	if msg.Gen != d.gen || !d.open || !d.pending {
		return nil
	}
	d.pending = false
	if msg.Err != nil {
		d.notice = msg.Err.Error()
		return nil
	}
	d.address = msg.Address
	d.qr = renderQR(msg.Address)
	d.notice = ""
	return nil
}

// submit starts a request unless one is already pending.
func (d *ReceiveDialog) submit() tea.Cmd {
	if d.pending {
		return nil
	}
	d.pending = true
	d.notice = ""
	d.copied = false

	gen := d.gen
	addrType := d.addrType
	label := strings.TrimSpace(d.label.Value())
	return func() tea.Msg {
		addr, err := d.wallet.NewDepositAddress(d.ctx, addrType, label)
		return addressIssuedMsg{Gen: gen, Address: addr, Err: err}
	}
}

func (d *ReceiveDialog) cycleType() {
	if d.pending {
		return
	}
	switch d.addrType {
	case lnd.AddressP2WKH:
		d.addrType = lnd.AddressP2TR
	case lnd.AddressP2TR:
		d.addrType = lnd.AddressNP2WKH
	default:
		d.addrType = lnd.AddressP2WKH
	}
}

func (d *ReceiveDialog) copyAddress() tea.Cmd {
	if d.address == "" {
		return nil
	}
	if err := clipboard.WriteAll(d.address); err != nil {
		d.notice = fmt.Sprintf("copy failed: %v", err)
		return nil
	}
	d.copied = true
	return nil
}

// View renders the dialog body (the popup chrome is applied by the caller).
func (d *ReceiveDialog) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Receive Bitcoin"))
	b.WriteString("\n\n")

	switch {
	case d.pending:
		b.WriteString("Requesting address from node...\n")
	case d.address != "":
		if d.qr != "" {
			b.WriteString(d.qr)
			b.WriteString("\n")
		}
		b.WriteString(valueStyle.Render(d.address))
		b.WriteString("\n")
		if d.copied {
			b.WriteString(goodStyle.Render("copied to clipboard"))
			b.WriteString("\n")
		}
	default:
		b.WriteString("Press enter to generate a new deposit address.\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Type: ") + string(d.addrType) + "\n")
	b.WriteString(d.label.View() + "\n")

	if d.notice != "" {
		b.WriteString("\n" + noticeStyle.Render(d.notice) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("[enter] Generate  [tab] Type  [ctrl+y] Copy  [esc] Close"))
	return b.String()
}
