package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/date"
	"github.com/etnz/fantaleague/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	sign     string
	amount   string
	desc     string
	typ      string
	player   string
	division string
	season   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "record a transaction in a club's ledger" }
func (*txCmd) Usage() string {
	return `bbsl tx -amount <credits> [-sign +|-] [-desc <text>] [-type <type>] [-player <player>] [-division <division>] <club>

  Records a transaction dated today and updates the club's budget.
  The type "acquisto" records an auction purchase, "stipendi" wages paid for
  a season (-season), any other type is a free label.

Usage Examples:
$ bbsl tx -amount 150 -sign + -desc "Prize, 1st place" -type premio "Atletico Birsa"
$ bbsl tx -amount 40 -type acquisto -player Lautaro "Atletico Birsa"
`
}
func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sign, "sign", "-", "+ for a credit, - for a debit")
	f.StringVar(&c.amount, "amount", "", "Amount, in credits")
	f.StringVar(&c.desc, "desc", "", "Description")
	f.StringVar(&c.typ, "type", "", "Transaction type")
	f.StringVar(&c.player, "player", "", "Player the transaction is about")
	f.StringVar(&c.division, "division", "", "Division the transaction is about")
	f.IntVar(&c.season, "season", 0, "Season of a wage transaction, defaults to the current season")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("tx requires a club")
	}
	if c.amount == "" {
		return usage("tx requires -amount")
	}
	amount, err := parseCredits("amount", c.amount)
	if err != nil {
		return usage("%v", err)
	}
	sign, err := fantaleague.ParseSign(c.sign)
	if err != nil {
		return usage("%v", err)
	}

	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	cat := a.league.Catalog()
	club, err := cat.FindClub(strings.Join(f.Args(), " "))
	if err != nil {
		return failure(err)
	}
	in := fantaleague.TransactionInput{Description: c.desc, Sign: sign, Amount: amount}
	in.Meta, err = c.meta(cat, a.league.Season())
	if err != nil {
		return failure(err)
	}
	tx, err := a.league.RecordTransaction(ctx, club.ID, in)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Recorded %s %s for %s. Budget %s.\n", tx.ID, tx.Delta.SignedString(), club.Name, club.Budget.Format())
	return subcommands.ExitSuccess
}

// meta builds the transaction metadata from the flags.
func (c *txCmd) meta(cat *fantaleague.Catalog, current int) (fantaleague.Meta, error) {
	var playerID, divisionID string
	if c.player != "" {
		p, err := findPlayer(cat, c.player)
		if err != nil {
			return nil, err
		}
		playerID = p.ID
	}
	if c.division != "" {
		d, err := cat.FindDivision(c.division)
		if err != nil {
			return nil, err
		}
		divisionID = d.ID
	}
	switch strings.ToLower(c.typ) {
	case fantaleague.TypePurchase:
		return fantaleague.Purchase{PlayerID: playerID, DivisionID: divisionID}, nil
	case fantaleague.TypeWage:
		season := c.season
		if season == 0 {
			season = current
		}
		return fantaleague.WageAdjustment{PlayerID: playerID, Season: season}, nil
	default:
		return fantaleague.Manual{Label: c.typ, PlayerID: playerID, DivisionID: divisionID}, nil
	}
}

type ledgerCmd struct {
	from, to string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "show a club's transactions" }
func (*ledgerCmd) Usage() string {
	return `bbsl ledger [-from <day>] [-to <day>] <club>

  Lists a club's transactions with the balance before and after each one,
  optionally between two days (both included).
`
}
func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day of the period, YYYY-MM-DD")
	f.StringVar(&c.to, "to", "", "Last day of the period, YYYY-MM-DD")
}

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("ledger requires a club")
	}
	period, err := date.ParseRange(c.from, c.to)
	if err != nil {
		return usage("%v", err)
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	club, err := a.league.Catalog().FindClub(strings.Join(f.Args(), " "))
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.LedgerMarkdown(club, period))
	return subcommands.ExitSuccess
}

type recomputeCmd struct{}

func (*recomputeCmd) Name() string     { return "recompute" }
func (*recomputeCmd) Synopsis() string { return "replay ledgers and fix budgets" }
func (*recomputeCmd) Usage() string {
	return `bbsl recompute [<club>...]

  Sorts the transactions of the clubs by date, recomputes the running
  balances and sets the budgets. Every club by default.
`
}
func (*recomputeCmd) SetFlags(f *flag.FlagSet) {}

func (*recomputeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	cat := a.league.Catalog()

	clubs := cat.Clubs
	if f.NArg() > 0 {
		clubs = nil
		for _, ref := range f.Args() {
			club, err := cat.FindClub(ref)
			if err != nil {
				return failure(err)
			}
			clubs = append(clubs, club)
		}
	}
	for _, club := range clubs {
		if err := a.league.RecomputeLedger(ctx, club.ID); err != nil {
			return failure(err)
		}
		fmt.Fprintf(stdout, "%s: budget %s.\n", club.Name, club.Budget.Format())
	}
	return subcommands.ExitSuccess
}
