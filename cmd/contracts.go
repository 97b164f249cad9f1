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

// findPlayer returns the player with this id, or the only player with this
// name.
func findPlayer(c *fantaleague.Catalog, ref string) (*fantaleague.Player, error) {
	if p, err := c.Player(ref); err == nil {
		return p, nil
	}
	var found []*fantaleague.Player
	for _, p := range c.Players {
		if strings.EqualFold(p.Name, strings.TrimSpace(ref)) {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", fantaleague.ErrPlayerNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%d players are named %q, use the player id", len(found), ref)
	}
}

// contractArgs resolves the <club> <player> arguments of contract commands.
func contractArgs(c *fantaleague.Catalog, f *flag.FlagSet) (*fantaleague.Club, *fantaleague.Player, error) {
	club, err := c.FindClub(f.Arg(0))
	if err != nil {
		return nil, nil, err
	}
	p, err := findPlayer(c, f.Arg(1))
	if err != nil {
		return nil, nil, err
	}
	return club, p, nil
}

func printEntry(verb string, club *fantaleague.Club, p *fantaleague.Player, r *fantaleague.RosterEntry) {
	fmt.Fprintf(stdout, "%s %s at %s: %d-%d, wage %s, %s. Club wages %s.\n",
		verb, p.Name, club.Name, r.StartSeason, r.EndSeason, r.Wage.Format(), r.Status, club.WageTotal.Format())
}

type signCmd struct {
	years int
	quote string
}

func (*signCmd) Name() string     { return "sign" }
func (*signCmd) Synopsis() string { return "sign a player to a club" }
func (*signCmd) Usage() string {
	return `bbsl sign [-years <1-4>] [-quote <credits>] <club> <player>

  Signs a player for 1 to 4 seasons from the current one. The quote defaults
  to the player's quote. A player already signed in another club can only be
  signed for one season.
`
}
func (c *signCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.years, "years", 1, "Contract length, in seasons")
	f.StringVar(&c.quote, "quote", "", "Quote the wage is computed from, defaults to the player's quote")
}

func (c *signCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("sign requires a club and a player")
	}
	quote, err := parseCredits("quote", c.quote)
	if err != nil {
		return usage("%v", err)
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	club, p, err := contractArgs(a.league.Catalog(), f)
	if err != nil {
		return failure(err)
	}
	if c.quote == "" {
		quote = p.Quote
	}
	r, err := a.league.SignPlayer(ctx, club.ID, p.ID, c.years, quote)
	if err != nil {
		return failure(err)
	}
	printEntry("Signed", club, p, r)
	return subcommands.ExitSuccess
}

type releaseCmd struct {
	from int
}

func (*releaseCmd) Name() string     { return "release" }
func (*releaseCmd) Synopsis() string { return "release a player" }
func (*releaseCmd) Usage() string {
	return `bbsl release [-from <season>] <club> <player>

  Releases a player from a season on, the current one by default. The club
  keeps paying half the wage until the contract ends.
`
}
func (c *releaseCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.from, "from", 0, "First season of the release, defaults to the current season")
}

func (c *releaseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("release requires a club and a player")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	club, p, err := contractArgs(a.league.Catalog(), f)
	if err != nil {
		return failure(err)
	}
	from := c.from
	if from == 0 {
		from = a.league.Season()
	}
	r, err := a.league.ReleasePlayer(ctx, club.ID, p.ID, from)
	if err != nil {
		return failure(err)
	}
	printEntry("Released", club, p, r)
	return subcommands.ExitSuccess
}

type editContractCmd struct {
	quote string
	start int
	years int
}

func (*editContractCmd) Name() string     { return "edit-contract" }
func (*editContractCmd) Synopsis() string { return "rewrite a contract's quote, start and length" }
func (*editContractCmd) Usage() string {
	return `bbsl edit-contract -years <1-4> [-start <season>] [-quote <credits>] <club> <player>

  Rewrites a contract and recomputes its wage. The quote defaults to the
  contract's, the start to the current season. A released contract moved
  after its release season becomes active again.
`
}
func (c *editContractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quote, "quote", "", "New quote, defaults to the contract's")
	f.IntVar(&c.start, "start", 0, "First season, defaults to the current season")
	f.IntVar(&c.years, "years", 0, "Contract length, in seasons")
}

func (c *editContractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("edit-contract requires a club and a player")
	}
	quote, err := parseCredits("quote", c.quote)
	if err != nil {
		return usage("%v", err)
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	club, p, err := contractArgs(a.league.Catalog(), f)
	if err != nil {
		return failure(err)
	}
	r, err := a.league.EditContract(ctx, club.ID, p.ID, quote, c.start, c.years)
	if err != nil {
		return failure(err)
	}
	printEntry("Edited", club, p, r)
	return subcommands.ExitSuccess
}

type dropCmd struct{}

func (*dropCmd) Name() string     { return "drop" }
func (*dropCmd) Synopsis() string { return "delete a contract altogether" }
func (*dropCmd) Usage() string {
	return `bbsl drop <club> <player>

  Deletes a contract as if it never existed, unlike a release. Use it to fix
  mistakes.
`
}
func (*dropCmd) SetFlags(f *flag.FlagSet) {}

func (*dropCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("drop requires a club and a player")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	club, p, err := contractArgs(a.league.Catalog(), f)
	if err != nil {
		return failure(err)
	}
	deleted, err := a.league.DeleteRosterEntry(ctx, club.ID, p.ID)
	if err != nil {
		return failure(err)
	}
	if !deleted {
		fmt.Fprintf(stdout, "%s has no contract with %s.\n", club.Name, p.Name)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stdout, "Contract of %s at %s deleted. Club wages %s.\n", p.Name, club.Name, club.WageTotal.Format())
	return subcommands.ExitSuccess
}

type loanCmd struct{}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "loan a player out" }
func (*loanCmd) Usage() string {
	return `bbsl loan <club> <player>

  Lends an active player: the contract stays with the club but no longer
  counts towards its roster, quotas and wages.
`
}
func (*loanCmd) SetFlags(f *flag.FlagSet) {}

func (*loanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("loan requires a club and a player")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	club, p, err := contractArgs(a.league.Catalog(), f)
	if err != nil {
		return failure(err)
	}
	r, err := a.league.LoanOut(ctx, club.ID, p.ID)
	if err != nil {
		return failure(err)
	}
	printEntry("Loaned", club, p, r)
	return subcommands.ExitSuccess
}

type recallCmd struct{}

func (*recallCmd) Name() string     { return "recall" }
func (*recallCmd) Synopsis() string { return "recall a loaned player" }
func (*recallCmd) Usage() string {
	return `bbsl recall <club> <player>

  Brings a loaned player back, within the roster caps.
`
}
func (*recallCmd) SetFlags(f *flag.FlagSet) {}

func (*recallCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("recall requires a club and a player")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	club, p, err := contractArgs(a.league.Catalog(), f)
	if err != nil {
		return failure(err)
	}
	r, err := a.league.RecallLoan(ctx, club.ID, p.ID)
	if err != nil {
		return failure(err)
	}
	printEntry("Recalled", club, p, r)
	return subcommands.ExitSuccess
}

type rosterCmd struct{}

func (*rosterCmd) Name() string     { return "roster" }
func (*rosterCmd) Synopsis() string { return "show a club's roster and wages" }
func (*rosterCmd) Usage() string {
	return `bbsl roster <club>

  Lists a club's contracts and its wages against the wage cap, for the
  current season.
`
}
func (*rosterCmd) SetFlags(f *flag.FlagSet) {}

func (*rosterCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("roster requires a club")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	c := a.league.Catalog()
	club, err := c.FindClub(strings.Join(f.Args(), " "))
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.RosterMarkdown(c, club, a.league.Season()))
	return subcommands.ExitSuccess
}

type listoneCmd struct{}

func (*listoneCmd) Name() string     { return "listone" }
func (*listoneCmd) Synopsis() string { return "list the free agents of a division" }
func (*listoneCmd) Usage() string {
	return `bbsl listone <division>

  Lists the players the clubs of a division can sign. Players whose original
  contract is in the other division can only be signed for one season.
`
}
func (*listoneCmd) SetFlags(f *flag.FlagSet) {}

func (*listoneCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("listone requires a division")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	c := a.league.Catalog()
	d, err := c.FindDivision(strings.Join(f.Args(), " "))
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.ListoneMarkdown(c, d.ID))
	return subcommands.ExitSuccess
}
