package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fernwood/tally/internal/metrics"
	"github.com/fernwood/tally/internal/model"
)

const trendBarWidth = 20

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.active {
	case tabInvoices:
		b.WriteString(m.renderInvoicesTab())
	case tabClients:
		b.WriteString(m.renderClientsTab())
	default:
		b.WriteString(m.renderOverviewTab())
	}

	if overlay := m.renderNotifications(); overlay != "" {
		b.WriteString("\n")
		b.WriteString(overlay)
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("tab: switch view • n: dismiss notification • q: quit"))

	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.active {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("tally"),
		"  ",
		lipgloss.JoinHorizontal(lipgloss.Center, tabs...),
	)

	return header + "\n"
}

func (m Model) renderOverviewTab() string {
	if m.dash.Loading {
		return m.spinner.View() + " loading dashboard..."
	}

	var sections []string

	if m.dash.Err != nil {
		sections = append(sections, errorBannerStyle.Render(
			fmt.Sprintf("⚠ refresh failed: %v (showing last good data)", m.dash.Err)))
	}

	snap := m.dash.Data
	if snap == nil {
		return strings.Join(sections, "\n")
	}

	sections = append(sections,
		m.renderSummaryCards(snap),
		m.renderTaxJar(snap.TaxJarStatus),
		m.renderTrend(snap.IncomeTrend),
		m.renderAlerts(snap.Alerts),
		titleStyle.Render("Recent transactions"),
		m.txTable.View(),
		subtleStyle.Render("updated "+snap.LastUpdated.Format(time.Kitchen)),
	)

	joined := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			joined = append(joined, s)
		}
	}
	return strings.Join(joined, "\n")
}

func (m Model) renderSummaryCards(snap *model.DashboardSnapshot) string {
	monthly := card("This month", fmt.Sprintf("%s  %s",
		incomeStyle.Render(fmt.Sprintf("+$%.2f", snap.MonthlySummary.Income)),
		expenseStyle.Render(fmt.Sprintf("-$%.2f", snap.MonthlySummary.Expenses))))

	quarterly := card("This quarter", fmt.Sprintf("net $%.2f", snap.QuarterlySummary.Net))

	var balance float64
	for _, acct := range snap.Accounts {
		balance += acct.Balance
	}
	accounts := card(fmt.Sprintf("Accounts (%d)", len(snap.Accounts)),
		fmt.Sprintf("$%.2f", balance))

	return lipgloss.JoinHorizontal(lipgloss.Top, monthly, quarterly, accounts)
}

func card(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardLabelStyle.Render(label),
		cardValueStyle.Render(value),
	))
}

func (m Model) renderTaxJar(jar model.TaxJarStatus) string {
	progress := jar.Progress()
	style := jarStyle(jar.Status())

	filled := int(progress / 100 * trendBarWidth)
	bar := style.Render(strings.Repeat("█", filled)) +
		subtleStyle.Render(strings.Repeat("░", trendBarWidth-filled))

	line := fmt.Sprintf("Tax jar  %s %s of $%.2f (%.0f%%)",
		bar,
		style.Render(fmt.Sprintf("$%.2f", jar.CurrentAmount)),
		jar.EstimatedQuarterlyPayment,
		progress)

	if !jar.NextQuarterlyDue.IsZero() {
		line += subtleStyle.Render("  due " + jar.NextQuarterlyDue.Format("Jan 2"))
	}

	return line
}

// renderTrend draws the income trend as horizontal bars, one per month of
// the fixed trailing window. Missing months are back-filled with zeros.
func (m Model) renderTrend(points []model.TrendPoint) string {
	trend := metrics.BackfillTrend(points, time.Now())

	var maxTotal float64
	for _, p := range trend {
		if p.Total > maxTotal {
			maxTotal = p.Total
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Income trend"))
	b.WriteString("\n")
	for _, p := range trend {
		width := 0
		if maxTotal > 0 {
			width = int(p.Total / maxTotal * trendBarWidth)
		}
		b.WriteString(fmt.Sprintf("%-9s %s $%.2f\n",
			p.Label(),
			trendBarStyle.Render(strings.Repeat("▆", width)),
			p.Total))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderAlerts(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, errorBannerStyle.Render("• "+a.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderInvoicesTab() string {
	if m.invoices.Loading {
		return m.spinner.View() + " loading invoices..."
	}

	var sections []string
	if m.invoices.Err != nil {
		sections = append(sections, errorBannerStyle.Render(
			fmt.Sprintf("⚠ refresh failed: %v (showing last good data)", m.invoices.Err)))
	}

	summary := metrics.SummarizeInvoices(m.invoices.Data, time.Now())
	strip := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Pending", fmt.Sprintf("%d / $%.2f", summary.Pending, summary.TotalPending)),
		card("Paid", fmt.Sprintf("%d / $%.2f", summary.Paid, summary.TotalPaid)),
		card("Overdue", fmt.Sprintf("%d", summary.Overdue)),
		card("This month", fmt.Sprintf("%d / $%.2f", summary.ThisMonth, summary.ThisMonthValue)),
	)

	sections = append(sections, strip, m.invoiceTable.View())
	return strings.Join(sections, "\n")
}

func (m Model) renderClientsTab() string {
	if m.clients.Loading {
		return m.spinner.View() + " loading clients..."
	}

	var sections []string
	if m.clients.Err != nil {
		sections = append(sections, errorBannerStyle.Render(
			fmt.Sprintf("⚠ refresh failed: %v (showing last good data)", m.clients.Err)))
	}

	if overview := m.clients.Data; overview != nil {
		strip := lipgloss.JoinHorizontal(lipgloss.Top,
			card("Active clients", fmt.Sprintf("%d", overview.ActiveClients)),
			card("Total billed", fmt.Sprintf("$%.2f", overview.TotalBilled)),
			card("Outstanding", fmt.Sprintf("$%.2f", overview.TotalOutstanding)),
		)
		sections = append(sections, strip)
	}

	sections = append(sections, m.clientTable.View())
	return strings.Join(sections, "\n")
}

// renderNotifications draws the overlay list, most recent first.
func (m Model) renderNotifications() string {
	items := m.bus.Notifications()
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items))
	for _, n := range items {
		icon := "ℹ"
		switch n.Type {
		case model.NotificationWarning:
			icon = "⚠"
		case model.NotificationError:
			icon = "✗"
		}

		body := fmt.Sprintf("%s %s — %s", icon, n.Title, n.Message)
		for _, line := range n.Breakdown {
			body += fmt.Sprintf("\n   %s (%.0f%%): $%.2f", line.Label, line.Rate, line.Amount)
		}
		lines = append(lines, notificationStyle.Render(body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
