package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/renderer"
	"github.com/google/subcommands"
)

// split splits a comma separated flag value, dropping empty items.
func split(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseCredits parses an optional amount flag.
func parseCredits(name, s string) (fantaleague.Credits, error) {
	if s == "" {
		return fantaleague.Credits{}, nil
	}
	c, err := fantaleague.ParseCredits(s)
	if err != nil {
		return fantaleague.Credits{}, fmt.Errorf("invalid -%s: %w", name, err)
	}
	return c, nil
}

type addPlayerCmd struct {
	name     string
	realClub string
	roles    string
	quote    string
}

func (*addPlayerCmd) Name() string     { return "add-player" }
func (*addPlayerCmd) Synopsis() string { return "add a player to the catalog" }
func (*addPlayerCmd) Usage() string {
	return `bbsl add-player -name <name> [-real-club <club>] [-roles <r1,r2>] [-quote <credits>]

  Adds a player. Roles are the Mantra tags: POR, DC, B, DD, DS, E, M, C, T, W, A, PC.
`
}
func (c *addPlayerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Player name")
	f.StringVar(&c.realClub, "real-club", "", "Real life club")
	f.StringVar(&c.roles, "roles", "", "Comma separated roles")
	f.StringVar(&c.quote, "quote", "", "Quote, in credits")
}

func (c *addPlayerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quote, err := parseCredits("quote", c.quote)
	if err != nil {
		return usage("%v", err)
	}
	in := fantaleague.PlayerInput{Name: c.name, RealClub: c.realClub, Quote: quote}
	for _, r := range split(c.roles) {
		in.Roles = append(in.Roles, fantaleague.Role(r))
	}

	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	p, err := a.league.AddPlayer(ctx, in)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Added player %s (%s).\n", p.Name, p.ID)
	return subcommands.ExitSuccess
}

type setQuoteCmd struct{}

func (*setQuoteCmd) Name() string     { return "set-quote" }
func (*setQuoteCmd) Synopsis() string { return "update a player's quote" }
func (*setQuoteCmd) Usage() string {
	return `bbsl set-quote <player> <credits>

  Sets a player's quote. Existing contracts keep the quote they were signed at.
`
}
func (*setQuoteCmd) SetFlags(f *flag.FlagSet) {}

func (*setQuoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("set-quote requires a player and a quote")
	}
	quote, err := fantaleague.ParseCredits(f.Arg(1))
	if err != nil {
		return usage("invalid quote: %v", err)
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	p, err := findPlayer(a.league.Catalog(), f.Arg(0))
	if err != nil {
		return failure(err)
	}
	p, err = a.league.UpdatePlayerQuote(ctx, p.ID, quote)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "%s is now quoted %s.\n", p.Name, p.Quote.Format())
	return subcommands.ExitSuccess
}

type deletePlayerCmd struct{}

func (*deletePlayerCmd) Name() string     { return "delete-player" }
func (*deletePlayerCmd) Synopsis() string { return "remove a player from the catalog" }
func (*deletePlayerCmd) Usage() string {
	return `bbsl delete-player <player>

  Removes a player. A player with an active contract cannot be removed.
`
}
func (*deletePlayerCmd) SetFlags(f *flag.FlagSet) {}

func (*deletePlayerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("delete-player requires a player")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	id := f.Arg(0)
	if p, err := findPlayer(a.league.Catalog(), id); err == nil {
		id = p.ID
	}
	deleted, err := a.league.DeletePlayer(ctx, id)
	if err != nil {
		return failure(err)
	}
	if !deleted {
		fmt.Fprintf(stdout, "No player %q.\n", f.Arg(0))
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stdout, "Player %s deleted.\n", f.Arg(0))
	return subcommands.ExitSuccess
}

type playersCmd struct{}

func (*playersCmd) Name() string     { return "players" }
func (*playersCmd) Synopsis() string { return "list the players" }
func (*playersCmd) Usage() string {
	return `bbsl players

  Lists every player, with the clubs holding a contract. The club holding the
  original contract is in bold.
`
}
func (*playersCmd) SetFlags(f *flag.FlagSet) {}

func (*playersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	printMarkdown(renderer.PlayersMarkdown(a.league.Catalog()))
	return subcommands.ExitSuccess
}

type addClubCmd struct {
	in     fantaleague.ClubInput
	colors string
	budget string
}

func (*addClubCmd) Name() string     { return "add-club" }
func (*addClubCmd) Synopsis() string { return "add a club" }
func (*addClubCmd) Usage() string {
	return `bbsl add-club -name <name> [-division <division>] [-budget <credits>] [branding flags]

  Adds a club with an empty roster and ledger. The division is an id, a code
  or a name.
`
}
func (c *addClubCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in.Name, "name", "", "Club name")
	f.StringVar(&c.in.DivisionID, "division", "", "Division of the club")
	f.StringVar(&c.budget, "budget", "", "Initial budget, in credits")
	f.StringVar(&c.in.Logo, "logo", "", "Logo URL")
	f.StringVar(&c.in.Founded, "founded", "", "Foundation year")
	f.StringVar(&c.in.President, "president", "", "President")
	f.StringVar(&c.in.Stadium, "stadium", "", "Stadium")
	f.StringVar(&c.in.City, "city", "", "City")
	f.StringVar(&c.colors, "colors", "", "Comma separated colors")
}

func (c *addClubCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	budget, err := parseCredits("budget", c.budget)
	if err != nil {
		return usage("%v", err)
	}
	in := c.in
	in.Budget = budget
	in.Colors = split(c.colors)

	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	if in.DivisionID != "" {
		d, err := a.league.Catalog().FindDivision(in.DivisionID)
		if err != nil {
			return failure(err)
		}
		in.DivisionID = d.ID
	}
	club, err := a.league.AddClub(ctx, in)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Added club %s (%s).\n", club.Name, club.ID)
	return subcommands.ExitSuccess
}

type clubsCmd struct{}

func (*clubsCmd) Name() string     { return "clubs" }
func (*clubsCmd) Synopsis() string { return "list the clubs, or show a club card" }
func (*clubsCmd) Usage() string {
	return `bbsl clubs [<club>]

  Lists the clubs of each division. With a club, shows its card: branding,
  division and finances.
`
}
func (*clubsCmd) SetFlags(f *flag.FlagSet) {}

func (*clubsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	c := a.league.Catalog()
	if f.NArg() == 0 {
		printMarkdown(renderer.ClubsMarkdown(c))
		return subcommands.ExitSuccess
	}
	club, err := c.FindClub(strings.Join(f.Args(), " "))
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.RenderClubCard(renderer.NewClubCard(c, club)))
	return subcommands.ExitSuccess
}

type addDivisionCmd struct {
	in         fantaleague.DivisionInput
	seasonBase string
	winterBase string
	wageCap    string
	prizes     string
}

func (*addDivisionCmd) Name() string     { return "add-division" }
func (*addDivisionCmd) Synopsis() string { return "add a division" }
func (*addDivisionCmd) Usage() string {
	return `bbsl add-division -name <name> [-code <code>] [-wage-cap <credits>] [-roster-max <n>] [-por-max <n>] [-prizes <c1,c2>]

  Adds a division. Omitted caps get the league defaults: 110 credits of wages,
  30 players of which 4 goalkeepers.
`
}
func (c *addDivisionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in.Name, "name", "", "Division name")
	f.StringVar(&c.in.Code, "code", "", "Short code")
	f.StringVar(&c.seasonBase, "season-base", "", "Budget granted each season")
	f.StringVar(&c.winterBase, "winter-base", "", "Budget granted at the winter market")
	f.StringVar(&c.wageCap, "wage-cap", "", "Wage cap")
	f.IntVar(&c.in.RosterMax, "roster-max", 0, "Maximum active players")
	f.IntVar(&c.in.PorMax, "por-max", 0, "Maximum active goalkeepers")
	f.StringVar(&c.prizes, "prizes", "", "Comma separated prizes, by final position")
}

func (c *addDivisionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := c.in
	var err error
	if in.SeasonBase, err = parseCredits("season-base", c.seasonBase); err != nil {
		return usage("%v", err)
	}
	if in.WinterBase, err = parseCredits("winter-base", c.winterBase); err != nil {
		return usage("%v", err)
	}
	if in.WageCap, err = parseCredits("wage-cap", c.wageCap); err != nil {
		return usage("%v", err)
	}
	for _, p := range split(c.prizes) {
		prize, err := parseCredits("prizes", p)
		if err != nil {
			return usage("%v", err)
		}
		in.Prizes = append(in.Prizes, prize)
	}

	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	d, err := a.league.AddDivision(ctx, in)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Added division %s (%s).\n", d.Name, d.ID)
	return subcommands.ExitSuccess
}

type addCompetitionCmd struct {
	name  string
	typ   string
	prize string
}

func (*addCompetitionCmd) Name() string     { return "add-competition" }
func (*addCompetitionCmd) Synopsis() string { return "add a competition" }
func (*addCompetitionCmd) Usage() string {
	return `bbsl add-competition -name <name> [-type cup|supercup|other] [-prize <credits>]
`
}
func (c *addCompetitionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Competition name")
	f.StringVar(&c.typ, "type", "cup", "Competition type: cup, supercup or other")
	f.StringVar(&c.prize, "prize", "", "Prize, in credits")
}

func (c *addCompetitionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prize, err := parseCredits("prize", c.prize)
	if err != nil {
		return usage("%v", err)
	}
	typ, err := fantaleague.ParseCompetitionType(c.typ)
	if err != nil {
		return usage("%v", err)
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	cmp, err := a.league.AddCompetition(ctx, fantaleague.CompetitionInput{Name: c.name, Type: typ, Prize: prize})
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Added %s %s (%s).\n", cmp.Type, cmp.Name, cmp.ID)
	return subcommands.ExitSuccess
}
