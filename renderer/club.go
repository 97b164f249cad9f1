package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/fantaleague"
	md "github.com/nao1215/markdown"
)

// ClubCard is the data of a club card.
type ClubCard struct {
	Name        string
	Division    string
	City        string
	Stadium     string
	President   string
	Founded     string
	ColorList   string
	Budget      string
	Wages       string
	WageCap     string
	WagePercent int
	Active      int
	RosterMax   int
}

// wageCap returns the wage cap applying to a club: its division's, or the
// league's.
func wageCap(c *fantaleague.Catalog, club *fantaleague.Club) fantaleague.Credits {
	if d := c.Division(club.DivisionID); d != nil && !d.WageCap.IsZero() {
		return d.WageCap
	}
	return c.Config.WageCap
}

func activeCount(club *fantaleague.Club) int {
	n := 0
	for range club.ActiveEntries() {
		n++
	}
	return n
}

// NewClubCard collects a club's card.
func NewClubCard(c *fantaleague.Catalog, club *fantaleague.Club) *ClubCard {
	card := &ClubCard{
		Name:      club.Name,
		City:      club.City,
		Stadium:   club.Stadium,
		President: club.President,
		Founded:   club.Founded,
		ColorList: strings.Join(club.Colors, ", "),
		Budget:    club.Budget.Format(),
		Wages:     club.WageTotal.Format(),
		Active:    activeCount(club),
		RosterMax: fantaleague.DefaultRosterMax,
	}
	capacity := wageCap(c, club)
	card.WageCap = capacity.Format()
	card.WagePercent = fantaleague.WagePercent(club.WageTotal, capacity)
	if d := c.Division(club.DivisionID); d != nil {
		card.Division = d.Name
		if d.RosterMax > 0 {
			card.RosterMax = d.RosterMax
		}
	}
	return card
}

// ClubsMarkdown renders the clubs of every division.
func ClubsMarkdown(c *fantaleague.Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Clubs")
	if len(c.Clubs) == 0 {
		doc.PlainText("No clubs yet.")
		return doc.String()
	}
	section := func(title, divisionID string) {
		table := md.TableSet{Header: []string{"ID", "Club", "Roster", "Wages", "Cap", "Budget"}}
		for club := range c.ClubsInDivision(divisionID) {
			table.Rows = append(table.Rows, []string{
				club.ID,
				club.Name,
				fmt.Sprintf("%d", activeCount(club)),
				club.WageTotal.Format(),
				fmt.Sprintf("%d%%", fantaleague.WagePercent(club.WageTotal, wageCap(c, club))),
				club.Budget.Format(),
			})
		}
		if len(table.Rows) == 0 {
			return
		}
		doc.H2(title)
		doc.Table(table)
	}
	for _, d := range c.Divisions {
		section(d.Name, d.ID)
	}
	section("Without division", "")
	return doc.String()
}
