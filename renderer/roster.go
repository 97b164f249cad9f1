package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/fantaleague"
	md "github.com/nao1215/markdown"
)

func roles(rs []fantaleague.Role) string {
	s := make([]string, len(rs))
	for i, r := range rs {
		s[i] = string(r)
	}
	return strings.Join(s, "/")
}

// RosterMarkdown renders a club's roster for a season, with its wages against
// the wage cap.
func RosterMarkdown(c *fantaleague.Catalog, club *fantaleague.Club, season int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s roster, season %d", club.Name, season))

	capacity := wageCap(c, club)
	doc.PlainText(fmt.Sprintf("Wages: %s, %d%% of the %s cap.",
		club.WageTotal.Format(), fantaleague.WagePercent(club.WageTotal, capacity), capacity.Format()))

	if len(club.Roster) == 0 {
		doc.PlainText("No contracts.")
		return doc.String()
	}

	table := md.TableSet{Header: []string{"Player", "Roles", "Quote", "Wage", "Seasons", "Status"}}
	for _, r := range club.Roster {
		name, rs := r.PlayerID, ""
		if p, err := c.Player(r.PlayerID); err == nil {
			name, rs = p.Name, roles(p.Roles)
		}
		status := string(r.Status)
		switch {
		case r.Status == fantaleague.Released:
			status = fmt.Sprintf("released from %d", r.ReleaseStartSeason)
		case !r.Original:
			status += " (duplicate)"
		}
		table.Rows = append(table.Rows, []string{
			name,
			rs,
			r.OriginalQuote.String(),
			r.Wage.String(),
			fmt.Sprintf("%d-%d", r.StartSeason, r.EndSeason),
			status,
		})
	}
	doc.Table(table)
	return doc.String()
}

// PlayersMarkdown renders the players catalog, with the club holding each
// player's original contract.
func PlayersMarkdown(c *fantaleague.Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Players")
	if len(c.Players) == 0 {
		doc.PlainText("No players yet.")
		return doc.String()
	}
	table := md.TableSet{Header: []string{"ID", "Name", "Real club", "Roles", "Quote", "Clubs"}}
	for _, p := range c.Players {
		var clubs []string
		for club, r := range c.ActiveEntries(p.ID) {
			if r.Original {
				clubs = append(clubs, md.Bold(club.Name))
			} else {
				clubs = append(clubs, club.Name)
			}
		}
		table.Rows = append(table.Rows, []string{
			p.ID, p.Name, p.RealClub, roles(p.Roles), p.Quote.String(), strings.Join(clubs, ", "),
		})
	}
	doc.Table(table)
	return doc.String()
}
