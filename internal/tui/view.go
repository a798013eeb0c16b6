package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/orderdesk/internal/exchange"
)

// styles
var (
	appTitleStyle    = lipgloss.NewStyle().Bold(true)
	noteStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sectionStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Padding(0, 1)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (a *App) View() string {
	parts := []string{
		a.renderHeader(),
		"",
	}
	switch a.session.SelectedTab() {
	case TabLookup:
		parts = append(parts, a.renderLookup())
	default:
		parts = append(parts, a.renderOrderForm())
	}
	parts = append(parts, "", a.renderLogs())
	if a.status != "" {
		parts = append(parts, statusStyle.Render(a.status))
	}
	parts = append(parts, a.renderFooter())
	return strings.Join(parts, "\n")
}

func (a *App) renderHeader() string {
	title := appTitleStyle.Render("Securities Exchange App")
	note := noteStyle.Render("market orders are filled against available liquidity and then leave the exchange")

	current := a.session.SelectedTab()
	labels := make([]string, 0, len(tabOrder))
	for _, tab := range tabOrder {
		if tab == current {
			labels = append(labels, activeTabStyle.Render(tab))
			continue
		}
		labels = append(labels, inactiveTabStyle.Render(tab))
	}
	return title + "\n" + note + "\n" + strings.Join(labels, "│")
}

func (a *App) renderOrderForm() string {
	rows := []string{
		a.formRow(rowTicker, "Ticker", a.ticker.View()),
		a.formRow(rowType, "Order Type", radioGroup(string(a.orderType), string(exchange.OrderTypeLimit), string(exchange.OrderTypeMarket))),
		a.formRow(rowSide, "Side", radioGroup(string(a.side), string(exchange.SideBuy), string(exchange.SideSell))),
		a.formRow(rowSize, "Size", a.size.View()),
	}
	if a.orderType == exchange.OrderTypeLimit {
		rows = append(rows, a.formRow(rowPrice, "Price", a.price.View()))
	}
	return sectionStyle.Render("Order Form") + "\n" + strings.Join(rows, "\n")
}

func (a *App) formRow(row int, label, widget string) string {
	marker := "  "
	if a.focus == row {
		marker = "▶ "
	}
	return fmt.Sprintf("%s%-12s %s", marker, label, widget)
}

func radioGroup(selected string, options ...string) string {
	parts := make([]string, 0, len(options))
	for _, opt := range options {
		mark := "( )"
		if opt == selected {
			mark = "(•)"
		}
		parts = append(parts, mark+" "+opt)
	}
	return strings.Join(parts, "   ")
}

func (a *App) renderLookup() string {
	out := sectionStyle.Render("Order Lookup") + "\n"
	out += fmt.Sprintf("Enter Order ID: %s\n", a.orderID.View())
	if a.notFound {
		out += "\nOrder not found."
	} else if a.result != nil {
		out += "\n" + renderOrderDetails(a.result)
	}
	return out
}

func renderOrderDetails(o *exchange.Order) string {
	price := "-"
	if o.Price != nil {
		price = o.Price.String()
	}
	lines := []string{
		"Order Details:",
		"  Order Status:    " + string(o.Status),
		"  Order ID:        " + o.ID,
		"  Ticker:          " + o.Ticker,
		"  Order Type:      " + string(o.Type),
		"  Side:            " + string(o.Side),
		fmt.Sprintf("  Size:            %d", o.Size),
		"  Price:           " + price,
		fmt.Sprintf("  Residual size:   %d", o.ResidualSize),
		"  Avg. Fill Price: " + o.AvgFillPrice.StringFixed(2),
		"  Matches:         " + renderMatches(o.Matches),
	}
	return strings.Join(lines, "\n")
}

func renderMatches(matches []exchange.Match) string {
	if len(matches) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, fmt.Sprintf("%d@%s", m.Size, m.Price.String()))
	}
	return strings.Join(parts, ", ")
}

// renderLogs shows the tail of the session's capture sink. The sink itself
// keeps accumulating; only the display is clipped to the pane.
func (a *App) renderLogs() string {
	height := a.cfg.UI.LogPaneHeight
	if height < 3 {
		height = 3
	}
	lines := a.sink.Lines()
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	contentWidth := a.width - logBoxStyle.GetHorizontalFrameSize()
	if contentWidth < 20 {
		contentWidth = 20
	}
	clipped := make([]string, 0, len(lines))
	for _, line := range lines {
		clipped = append(clipped, ansi.Truncate(line, contentWidth, "…"))
	}
	content := strings.Join(clipped, "\n")
	if content == "" {
		content = noteStyle.Render("(no log output yet)")
	}
	return sectionStyle.Render("Logs") + "\n" + logBoxStyle.Width(min(a.width-2, 120)).Render(content)
}

func (a *App) renderFooter() string {
	switch a.session.SelectedTab() {
	case TabLookup:
		return noteStyle.Render("[enter] Lookup  [tab] Switch tab  [ctrl+c] Quit")
	default:
		return noteStyle.Render("[enter] Submit  [↑/↓] Field  [←/→] Toggle  [tab] Switch tab  [ctrl+c] Quit")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
