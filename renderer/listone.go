package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fantaleague"
	md "github.com/nao1215/markdown"
)

// ListoneMarkdown renders the free agents of a division.
func ListoneMarkdown(c *fantaleague.Catalog, divisionID string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := divisionID
	if d := c.Division(divisionID); d != nil {
		title = d.Name
	}
	doc.H1(fmt.Sprintf("Listone %s", title))

	list := c.Listone(divisionID)
	if len(list) == 0 {
		doc.PlainText("No free agents.")
		return doc.String()
	}
	table := md.TableSet{Header: []string{"ID", "Name", "Roles", "Quote", "Note"}}
	for _, e := range list {
		note := ""
		if e.OriginalOther {
			note = "signed elsewhere, 1 season only"
		}
		table.Rows = append(table.Rows, []string{e.Player.ID, e.Player.Name, roles(e.Player.Roles), e.Player.Quote.String(), note})
	}
	doc.Table(table)
	return doc.String()
}
