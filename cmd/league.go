package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fantaleague"
	"github.com/google/subcommands"
)

type initCmd struct{}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the league data if it does not exist yet" }
func (*initCmd) Usage() string {
	return `bbsl init

  Opens the league data, creating the default league (two divisions and two
  cups, without clubs nor players) when nothing is stored yet.
`
}
func (*initCmd) SetFlags(f *flag.FlagSet) {}

func (*initCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	c := a.league.Catalog()
	fmt.Fprintf(stdout, "League ready in the %s store: %d divisions, %d clubs, %d players, season %d.\n",
		a.cfg.Store, len(c.Divisions), len(c.Clubs), len(c.Players), a.league.Season())
	return subcommands.ExitSuccess
}

type resetCmd struct {
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "replace the league data with the default league" }
func (*resetCmd) Usage() string {
	return `bbsl reset -yes

  Replaces the whole league data with the default league. Every club, player,
  contract and transaction is lost: export the league first.
`
}
func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		return usage("reset deletes the whole league, confirm with -yes")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	if err := a.league.ResetToDefault(ctx); err != nil {
		return failure(err)
	}
	fmt.Fprintln(stdout, "League reset to the default data.")
	return subcommands.ExitSuccess
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "rewrite legacy transactions in the current schema" }
func (*migrateCmd) Usage() string {
	return `bbsl migrate

  Converts transactions stored in a legacy shape (no sign, plain numbers as
  strings, missing ids) to the current schema and replays the ledgers.
`
}
func (*migrateCmd) SetFlags(f *flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	changed, err := a.league.Normalize(ctx)
	if err != nil {
		return failure(err)
	}
	if changed {
		fmt.Fprintln(stdout, "Legacy transactions migrated.")
	} else {
		fmt.Fprintln(stdout, "Nothing to migrate.")
	}
	return subcommands.ExitSuccess
}

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "align club budgets with their ledgers" }
func (*syncCmd) Usage() string {
	return `bbsl sync

  Sets every club budget to the balance after its latest transaction.
`
}
func (*syncCmd) SetFlags(f *flag.FlagSet) {}

func (*syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	changed, err := a.league.SyncBudgets(ctx)
	if err != nil {
		return failure(err)
	}
	if changed {
		fmt.Fprintln(stdout, "Budgets synced.")
	} else {
		fmt.Fprintln(stdout, "Budgets already in sync.")
	}
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the league data as a json savegame" }
func (*exportCmd) Usage() string {
	return `bbsl export [-o <file>]

  Writes the whole league data as indented json. Use -o - to write to the
  standard output.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", fantaleague.ExportFilename, "Output file, - for the standard output")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	if err := writeOutput(c.output, a.league.Export); err != nil {
		return failure(err)
	}
	if c.output != "-" {
		fmt.Fprintf(stdout, "League exported to %s.\n", c.output)
	}
	return subcommands.ExitSuccess
}

// writeOutput writes with write to the file name, or to stdout for "-".
func writeOutput(name string, write func(io.Writer) error) error {
	if name == "-" {
		return write(stdout)
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return nil
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the league data with a json savegame" }
func (*importCmd) Usage() string {
	return `bbsl import <file>

  Replaces the whole league data with an exported savegame. Nothing changes
  when the file cannot be parsed.
`
}
func (*importCmd) SetFlags(f *flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("import requires exactly one file")
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	defer file.Close()

	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	if err := a.league.Import(ctx, file); err != nil {
		return failure(err)
	}
	c := a.league.Catalog()
	fmt.Fprintf(stdout, "Imported %d clubs and %d players.\n", len(c.Clubs), len(c.Players))
	return subcommands.ExitSuccess
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the league data with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `bbsl query <jsonpath>

  Evaluates a JSONPath expression on the league data, as exported, and prints
  the result as json.

Usage Examples:
$ bbsl query '$.clubs[*].name'
$ bbsl query '$.players[?(@.quote > 30)].name'
`
}
func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("query requires exactly one JSONPath expression")
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()

	result, err := query(a.league.Catalog(), f.Arg(0))
	if err != nil {
		return failure(err)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

// query evaluates a JSONPath expression on the catalog json.
func query(c *fantaleague.Catalog, path string) (any, error) {
	var buf bytes.Buffer
	if err := fantaleague.EncodeCatalog(&buf, c); err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("could not decode the league data: %w", err)
	}
	result, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return result, nil
}
