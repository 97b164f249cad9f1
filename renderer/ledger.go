package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/date"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders a club's transactions within period with their
// running balance. A zero period shows the whole ledger.
func LedgerMarkdown(club *fantaleague.Club, period date.Range) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s ledger", club.Name))
	doc.PlainText(fmt.Sprintf("Budget: %s", md.Bold(club.Budget.Format())))
	if !period.IsZero() {
		doc.PlainText(fmt.Sprintf("Period: %s", period))
	}

	table := md.TableSet{Header: []string{"Date", "Description", "Type", "Prev", "Amount", "After"}}
	for _, tx := range club.Transactions {
		if !period.Contains(tx.Date) {
			continue
		}
		typ := ""
		if tx.Meta != nil {
			typ = tx.Meta.Type()
		}
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			tx.Description,
			typ,
			tx.Prev.Format(),
			tx.Delta.SignedString(),
			tx.After.Format(),
		})
	}
	if len(table.Rows) == 0 {
		doc.PlainText("No transactions.")
	} else {
		doc.Table(table)
	}
	if err := club.CheckLedger(); err != nil {
		doc.PlainText(fmt.Sprintf("Warning: %v. Run recompute to replay the ledger.", err))
	}
	return doc.String()
}
