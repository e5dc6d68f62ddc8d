package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/fernwood/tally/internal/model"
)

func newTransactionTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Merchant", Width: 24},
			{Title: "Category", Width: 20},
			{Title: "Amount", Width: 12},
		}),
		table.WithHeight(8),
		table.WithFocused(true),
	)
}

func newInvoiceTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Number", Width: 12},
			{Title: "Client", Width: 22},
			{Title: "Status", Width: 10},
			{Title: "Due", Width: 10},
			{Title: "Total", Width: 12},
		}),
		table.WithHeight(12),
		table.WithFocused(true),
	)
}

func newClientTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 22},
			{Title: "Company", Width: 20},
			{Title: "Status", Width: 10},
			{Title: "Outstanding", Width: 12},
		}),
		table.WithHeight(12),
		table.WithFocused(true),
	)
}

func transactionRows(transactions []model.Transaction) []table.Row {
	rows := make([]table.Row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, table.Row{
			tx.Date.Format("2006-01-02"),
			tx.MerchantName,
			categoryCell(tx.Category),
			amountCell(tx),
		})
	}
	return rows
}

// categoryCell badges the confidence band alongside the category name:
// high-confidence AI assignments get a robot marker, low-confidence ones
// a question mark asking for review.
func categoryCell(c model.Category) string {
	switch {
	case c.Primary == "":
		return "—"
	case c.IsHighConfidence():
		return c.Primary + " 🤖"
	case c.IsLowConfidence():
		return c.Primary + " ?"
	default:
		return c.Primary
	}
}

func amountCell(tx model.Transaction) string {
	if tx.Type == model.TransactionIncome {
		return fmt.Sprintf("+$%.2f", tx.Amount)
	}
	return fmt.Sprintf("-$%.2f", tx.Amount)
}

func invoiceRows(invoices []model.Invoice) []table.Row {
	rows := make([]table.Row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, table.Row{
			inv.InvoiceNumber,
			inv.Client.Name,
			string(inv.Status),
			inv.DueDate.Format("2006-01-02"),
			fmt.Sprintf("$%.2f", inv.Total),
		})
	}
	return rows
}

func clientRows(clients []model.Client) []table.Row {
	rows := make([]table.Row, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, table.Row{
			c.Name,
			c.Company,
			string(c.Status),
			fmt.Sprintf("$%.2f", c.OutstandingBalance),
		})
	}
	return rows
}
