package renderer

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/sandbox"
	md "github.com/nao1215/markdown"
)

// SandboxMarkdown renders a user's sandbox. Player names are looked up in the
// catalog.
func SandboxMarkdown(sb *sandbox.Sandbox, c *fantaleague.Catalog) string {
	name := func(id string) string {
		if p, err := c.Player(id); err == nil {
			return p.Name
		}
		return id
	}

	var b strings.Builder
	doc := md.NewMarkdown(&b)
	doc.H1(fmt.Sprintf("Sandbox of %s", sb.UserID))
	doc.PlainText(fmt.Sprintf("Formation %s, last saved %s.", md.Bold(sb.Formation.Module), sb.UpdatedAt.Format("2006-01-02 15:04")))
	if err := doc.Build(); err != nil {
		return fmt.Sprintf("error rendering sandbox: %v", err)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		doc := md.NewMarkdown(w)
		doc.H2("Contract plans")
		table := md.TableSet{Header: []string{"Player", "Years", "Wage", "Source"}}
		for _, id := range slices.Sorted(maps.Keys(sb.RosterPlans)) {
			plan := sb.RosterPlans[id]
			source := "plan"
			if plan.FromSnapshot {
				source = "snapshot"
			}
			table.Rows = append(table.Rows, []string{name(id), fmt.Sprint(plan.Years), plan.Wage.String(), source})
		}
		doc.Table(table)
		doc.PlainText(fmt.Sprintf("Planned wages: %s", md.Bold(sb.PlannedWages().Format())))
		doc.Build()
		return len(table.Rows) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		s := sb.ClubSnapshot
		if s == nil {
			return false
		}
		doc := md.NewMarkdown(w)
		title := s.ClubID
		if club, err := c.Club(s.ClubID); err == nil {
			title = club.Name
		}
		doc.H2(fmt.Sprintf("Snapshot of %s, %s", title, s.CapturedAt.Format("2006-01-02")))
		var players []string
		for _, p := range s.Players {
			players = append(players, name(p.PlayerID))
		}
		doc.BulletList(players...)
		doc.Build()
		return true
	})

	for _, set := range sb.NoteSets {
		ConditionalBlock(&b, func(w io.Writer) bool {
			doc := md.NewMarkdown(w)
			doc.H2(set.Name)
			table := md.TableSet{Header: []string{"Column", "Players"}}
			for _, col := range []struct {
				name string
				ids  []string
			}{
				{"Top", set.Columns.Top},
				{"Seconda", set.Columns.Seconda},
				{"Terza", set.Columns.Terza},
				{"Titolari", set.Columns.Titolari},
				{"Scommesse", set.Columns.Scommesse},
			} {
				if len(col.ids) == 0 {
					continue
				}
				var names []string
				for _, id := range col.ids {
					names = append(names, name(id))
				}
				table.Rows = append(table.Rows, []string{col.name, strings.Join(names, ", ")})
			}
			doc.Table(table)
			doc.Build()
			return len(table.Rows) > 0
		})
	}
	return b.String()
}
