package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/lndash/lndash/internal/lnd"
	"github.com/lndash/lndash/internal/tui/widgets"
)

const balanceChartHeight = 8

func (a *App) renderDashboard() string {
	a.panes[0].Content = a.renderBalanceCard()
	a.panes[1].Content = a.renderNodeCard()
	a.panes[2].Content = a.renderChannelsCard()
	a.panes[3].Content = a.renderAddressesCard()

	for i, p := range a.panes {
		p.Selected = i == a.paneCursor
		p.Height = 10
	}

	top := widgets.HStack{
		Widgets: []widgets.Widget{a.panes[0], a.panes[1]},
		Ratios:  []float64{0.5, 0.5},
	}
	bottom := widgets.HStack{
		Widgets: []widgets.Widget{a.panes[2], a.panes[3]},
		Ratios:  []float64{0.5, 0.5},
	}

	chart := a.renderBalanceChart(a.width - 4)

	header := titleStyle.Render("lndash") + "  " + helpStyle.Render("[d]ashboard [c]hannels [p]eers [t]xns [o]ptions  [r]eceive [w]send [g]refresh [m]enu [q]uit")
	return header + "\n" +
		top.Render(a.width, 10) + "\n" +
		bottom.Render(a.width, 10) + "\n" +
		chart
}

func (a *App) renderBalanceCard() string {
	total := a.balance.TotalBalance
	confirmed := a.balance.ConfirmedBalance
	unconfirmed := a.balance.UnconfirmedBalance
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Total      "), valueStyle.Render(a.formatAmount(total)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Confirmed  "), goodStyle.Render(a.formatAmount(confirmed)))
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("Unconfirmed"), noticeStyle.Render(a.formatAmount(unconfirmed)))
	return b.String()
}

func (a *App) renderNodeCard() string {
	if !a.haveInfo {
		return helpStyle.Render("connecting to node...")
	}
	sync := badStyle.Render("syncing")
	if a.info.SyncedToChain {
		sync = goodStyle.Render("synced")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Alias  "), valueStyle.Render(a.info.Alias))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Height "), valueStyle.Render(fmt.Sprintf("%d", a.info.BlockHeight)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Chain  "), sync)
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("Peers  "), valueStyle.Render(fmt.Sprintf("%d", a.info.NumPeers)))
	return b.String()
}

func (a *App) renderChannelsCard() string {
	var localTotal, remoteTotal int64
	activeCount := 0
	for _, ch := range a.channels {
		localTotal += ch.LocalBalance
		remoteTotal += ch.RemoteBalance
		if ch.Active {
			activeCount++
		}
	}
	pendingCount := len(a.pendingCh.PendingOpen) + len(a.pendingCh.PendingForceClosing)
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Open    "), valueStyle.Render(fmt.Sprintf("%d (%d active)", len(a.channels), activeCount)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Pending "), noticeStyle.Render(fmt.Sprintf("%d", pendingCount)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Local   "), goodStyle.Render(a.formatAmount(localTotal)))
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("Remote  "), valueStyle.Render(a.formatAmount(remoteTotal)))
	return b.String()
}

func (a *App) renderAddressesCard() string {
	if len(a.addresses) == 0 {
		return helpStyle.Render("no addresses yet, press r to receive")
	}
	var b strings.Builder
	for i, addr := range a.addresses {
		if i >= 5 {
			break
		}
		label := addr.AddrType
		if addr.Label != nil && *addr.Label != "" {
			label = *addr.Label
		}
		fmt.Fprintf(&b, "%s %s\n", valueStyle.Render(truncate(addr.Address, 34)), labelStyle.Render(label))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderBalanceChart plots the running on-chain balance from the
// transaction history, newest transactions last.
func (a *App) renderBalanceChart(width int) string {
	if len(a.txns) < 2 || width < 20 {
		return ""
	}

	txns := make([]lnd.Transaction, len(a.txns))
	copy(txns, a.txns)
	sort.Slice(txns, func(i, j int) bool { return txns[i].TimeStamp < txns[j].TimeStamp })

	var running int64
	values := make([]float64, 0, len(txns))
	times := make([]time.Time, 0, len(txns))
	var minVal, maxVal float64
	for _, tx := range txns {
		running += tx.Amount
		v := float64(running)
		values = append(values, v)
		times = append(times, time.Unix(tx.TimeStamp, 0))
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	chart := tslc.New(width, balanceChartHeight)
	chart.SetStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	chart.LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	chart.SetTimeRange(times[0], times[len(times)-1])
	chart.SetViewTimeRange(times[0], times[len(times)-1])
	chart.SetYRange(minVal, maxVal)
	chart.SetViewYRange(minVal, maxVal)
	for i, t := range times {
		chart.Push(tslc.TimePoint{Time: t, Value: values[i]})
	}
	chart.DrawBraille()
	return labelStyle.Render("On-chain balance") + "\n" + chart.View()
}

func (a *App) renderChannels() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Channels") + "\n\n")
	if len(a.channels) == 0 {
		b.WriteString(helpStyle.Render("no open channels"))
	}
	for i, ch := range a.channels {
		cursor := "  "
		if i == a.chanCursor {
			cursor = "> "
		}
		state := goodStyle.Render("active")
		if !ch.Active {
			state = badStyle.Render("inactive")
		}
		fmt.Fprintf(&b, "%s%s  %s  cap %s  local %s  remote %s\n",
			cursor,
			valueStyle.Render(truncate(ch.RemotePubkey, 20)),
			state,
			a.formatAmount(ch.Capacity),
			a.formatAmount(ch.LocalBalance),
			a.formatAmount(ch.RemoteBalance))
	}
	if n := len(a.pendingCh.PendingOpen); n > 0 {
		fmt.Fprintf(&b, "\n%s\n", noticeStyle.Render(fmt.Sprintf("%d channel(s) pending open", n)))
	}
	if n := len(a.pendingCh.PendingForceClosing); n > 0 {
		fmt.Fprintf(&b, "%s\n", badStyle.Render(fmt.Sprintf("%d channel(s) force closing", n)))
	}

	if a.openChanOpen {
		b.WriteString("\n" + a.openChanInput.View())
	}

	b.WriteString("\n" + helpStyle.Render("[a] open channel  [x] close  [j/k] move  [d] back"))
	return b.String()
}

func (a *App) renderPeers() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Peers") + "\n\n")
	if len(a.peers) == 0 {
		b.WriteString(helpStyle.Render("no connected peers") + "\n")
	}
	for i, p := range a.peers {
		cursor := "  "
		if i == a.peerCursor {
			cursor = "> "
		}
		name := ""
		for _, c := range a.contacts {
			if c.Pubkey == p.Pubkey {
				name = c.Name
				break
			}
		}
		line := fmt.Sprintf("%s%s  %s", cursor, valueStyle.Render(truncate(p.Pubkey, 20)), labelStyle.Render(p.Address))
		if name != "" {
			line += "  " + goodStyle.Render(name)
		}
		b.WriteString(line + "\n")
	}

	if len(a.contacts) > 0 {
		b.WriteString("\n" + titleStyle.Render("Contacts") + "\n")
		for _, c := range a.contacts {
			host := ""
			if c.Host != nil {
				host = *c.Host
			}
			fmt.Fprintf(&b, "  %s  %s  %s\n", valueStyle.Render(c.Name), labelStyle.Render(truncate(c.Pubkey, 20)), labelStyle.Render(host))
		}
	}

	switch {
	case a.connectOpen:
		b.WriteString("\n" + a.connectInput.View())
	case a.saveOpen:
		b.WriteString("\n" + a.saveInput.View())
	case a.searchOpen:
		b.WriteString("\n" + a.searchInput.View())
	}

	b.WriteString("\n" + helpStyle.Render("[a]dd peer  [x] disconnect  [n] save contact  [/] search  [j/k] move"))
	return b.String()
}

func (a *App) renderTransactions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("On-chain Transactions") + "\n\n")
	if len(a.txns) == 0 {
		b.WriteString(helpStyle.Render("no transactions"))
	}
	for i, tx := range a.txns {
		cursor := "  "
		if i == a.txCursor {
			cursor = "> "
		}
		amount := goodStyle.Render("+" + a.formatAmount(tx.Amount))
		if tx.Amount < 0 {
			amount = badStyle.Render(a.formatAmount(tx.Amount))
		}
		conf := fmt.Sprintf("%d conf", tx.NumConfirmations)
		when := time.Unix(tx.TimeStamp, 0).Format(a.dateFormat)
		fmt.Fprintf(&b, "%s%s  %s  %s  %s\n",
			cursor,
			labelStyle.Render(when),
			valueStyle.Render(truncate(tx.TxHash, 16)),
			amount,
			labelStyle.Render(conf))
	}
	b.WriteString("\n" + helpStyle.Render("[j/k] move  [y] copy txid  [d] back"))
	return b.String()
}

func (a *App) renderSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Options") + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Node URL    "), valueStyle.Render(a.cfg.Node.RESTURL))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Unit        "), valueStyle.Render(a.unit))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Address type"), valueStyle.Render(a.cfg.UI.AddressType))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Database    "), valueStyle.Render(a.cfg.Database.Path))
	b.WriteString("\n" + helpStyle.Render("[u] toggle unit  [x] clear local history  [d] back"))
	return b.String()
}

func (a *App) formatAmount(sats int64) string {
	if a.unit == "btc" {
		return fmt.Sprintf("%.8f btc", float64(sats)/1e8)
	}
	return fmt.Sprintf("%d sat", sats)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
