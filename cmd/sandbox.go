package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/renderer"
	"github.com/etnz/fantaleague/sandbox"
	"github.com/google/subcommands"
)

type sandboxCmd struct {
	user string
}

func (*sandboxCmd) Name() string     { return "sandbox" }
func (*sandboxCmd) Synopsis() string { return "show a user's sandbox" }
func (*sandboxCmd) Usage() string {
	return `bbsl sandbox [-user <user>]

  Shows the sandbox of a user, the current one by default: formation,
  contract plans with their wages, club snapshot and note sets.
`
}
func (c *sandboxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Sandbox user, defaults to the current user")
}

func (c *sandboxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	user, err := a.user(ctx, c.user)
	if err != nil {
		return failure(err)
	}
	sb, err := a.sandboxes().Load(ctx, user)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.SandboxMarkdown(sb, a.league.Catalog()))
	return subcommands.ExitSuccess
}

type sandboxPlanCmd struct {
	user      string
	years     int
	quote     string
	remove    bool
	capture   string
	formation string
	newSet    string
	note      string
}

func (*sandboxPlanCmd) Name() string     { return "sandbox-plan" }
func (*sandboxPlanCmd) Synopsis() string { return "edit a user's sandbox" }
func (*sandboxPlanCmd) Usage() string {
	return `bbsl sandbox-plan [-user <user>] [-years <1-4>] [-quote <credits>] [-remove] <player>...
bbsl sandbox-plan [-user <user>] -capture <club>
bbsl sandbox-plan [-user <user>] -formation <module>
bbsl sandbox-plan [-user <user>] -new-set <name>
bbsl sandbox-plan [-user <user>] -note <set>/<column> <player>...

  Plans contracts for players (at their quote by default), removes plans,
  captures a club's roster as plans, sets the formation module, or manages
  note sets. Columns are top, seconda, terza, titolari and scommesse.
  Nothing here changes the league.
`
}
func (c *sandboxPlanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Sandbox user, defaults to the current user")
	f.IntVar(&c.years, "years", 1, "Planned contract length, in seasons")
	f.StringVar(&c.quote, "quote", "", "Planned quote, defaults to the player's quote")
	f.BoolVar(&c.remove, "remove", false, "Remove the players' plans")
	f.StringVar(&c.capture, "capture", "", "Capture the active roster of a club")
	f.StringVar(&c.formation, "formation", "", "Formation module, such as 4-4-2 or 3-4-2-1")
	f.StringVar(&c.newSet, "new-set", "", "Create a note set")
	f.StringVar(&c.note, "note", "", "Put the players in a column of a note set: <set>/<column>")
}

func (c *sandboxPlanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quote, err := parseCredits("quote", c.quote)
	if err != nil {
		return usage("%v", err)
	}
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	user, err := a.user(ctx, c.user)
	if err != nil {
		return failure(err)
	}
	m := a.sandboxes()
	sb, err := m.Load(ctx, user)
	if err != nil {
		return failure(err)
	}
	if err := c.apply(sb, a.league, f.Args(), quote); err != nil {
		return failure(err)
	}
	if err := m.Save(ctx, sb); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Sandbox of %s saved. Planned wages %s.\n", user, sb.PlannedWages().Format())
	return subcommands.ExitSuccess
}

// apply edits the sandbox according to the flags.
func (c *sandboxPlanCmd) apply(sb *sandbox.Sandbox, l *fantaleague.League, args []string, quote fantaleague.Credits) error {
	cat := l.Catalog()
	switch {
	case c.capture != "":
		club, err := cat.FindClub(c.capture)
		if err != nil {
			return err
		}
		sb.CaptureClub(club, l.Season(), time.Now())
		return nil
	case c.formation != "":
		return sb.SetFormation(c.formation, sb.Formation.Positions)
	case c.newSet != "":
		set, err := sb.AddNoteSet(c.newSet, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Note set %s created.\n", set.ID)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: no player given", fantaleague.ErrInvalidInput)
	}
	for _, ref := range args {
		p, err := findPlayer(cat, ref)
		if err != nil {
			return err
		}
		switch {
		case c.note != "":
			setID, column, ok := strings.Cut(c.note, "/")
			if !ok {
				return fmt.Errorf("%w: -note must be <set>/<column>, got %q", fantaleague.ErrInvalidInput, c.note)
			}
			if err := sb.AddNote(setID, column, p.ID); err != nil {
				return err
			}
		case c.remove:
			sb.Unplan(p.ID)
		default:
			q := quote
			if c.quote == "" {
				q = p.Quote
			}
			if _, err := sb.PlanPlayer(p.ID, q, c.years); err != nil {
				return err
			}
		}
	}
	return nil
}

type sandboxUserCmd struct{}

func (*sandboxUserCmd) Name() string     { return "sandbox-user" }
func (*sandboxUserCmd) Synopsis() string { return "show or select the current sandbox user" }
func (*sandboxUserCmd) Usage() string {
	return `bbsl sandbox-user [<user>]
`
}
func (*sandboxUserCmd) SetFlags(f *flag.FlagSet) {}

func (*sandboxUserCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	m := a.sandboxes()
	if f.NArg() == 0 {
		user, err := m.CurrentUser(ctx)
		if err != nil {
			return failure(err)
		}
		if user == "" {
			fmt.Fprintln(stdout, "No sandbox user selected.")
		} else {
			fmt.Fprintln(stdout, user)
		}
		return subcommands.ExitSuccess
	}
	if err := m.SetCurrentUser(ctx, f.Arg(0)); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Sandbox user %s selected.\n", f.Arg(0))
	return subcommands.ExitSuccess
}

type sandboxExportCmd struct {
	user   string
	output string
}

func (*sandboxExportCmd) Name() string     { return "sandbox-export" }
func (*sandboxExportCmd) Synopsis() string { return "export a user's sandbox as json" }
func (*sandboxExportCmd) Usage() string {
	return `bbsl sandbox-export [-user <user>] [-o <file>]

  Writes a sandbox as indented json, to sandbox-<user>.json by default. Use
  -o - to write to the standard output.
`
}
func (c *sandboxExportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Sandbox user, defaults to the current user")
	f.StringVar(&c.output, "o", "", "Output file, - for the standard output")
}

func (c *sandboxExportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	user, err := a.user(ctx, c.user)
	if err != nil {
		return failure(err)
	}
	sb, err := a.sandboxes().Load(ctx, user)
	if err != nil {
		return failure(err)
	}
	output := c.output
	if output == "" {
		output = sandbox.ExportFilename(user)
	}
	if err := writeOutput(output, func(w io.Writer) error { return sandbox.Export(w, sb) }); err != nil {
		return failure(err)
	}
	if output != "-" {
		fmt.Fprintf(stdout, "Sandbox of %s exported to %s.\n", user, output)
	}
	return subcommands.ExitSuccess
}

type sandboxImportCmd struct {
	user string
}

func (*sandboxImportCmd) Name() string     { return "sandbox-import" }
func (*sandboxImportCmd) Synopsis() string { return "replace a user's sandbox with an exported one" }
func (*sandboxImportCmd) Usage() string {
	return `bbsl sandbox-import [-user <user>] <file>

  Replaces a user's sandbox, whoever it was exported from. Older sandboxes are
  upgraded. Nothing changes when the file cannot be parsed.
`
}
func (c *sandboxImportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Sandbox user, defaults to the current user")
}

func (c *sandboxImportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("sandbox-import requires exactly one file")
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	defer file.Close()

	a, err := openApp(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	user, err := a.user(ctx, c.user)
	if err != nil {
		return failure(err)
	}
	sb, err := a.sandboxes().Import(ctx, file, user)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Sandbox of %s imported: %d plans, %d note sets.\n", user, len(sb.RosterPlans), len(sb.NoteSets))
	return subcommands.ExitSuccess
}

type sandboxResetCmd struct {
	user string
}

func (*sandboxResetCmd) Name() string     { return "sandbox-reset" }
func (*sandboxResetCmd) Synopsis() string { return "start a user's sandbox over" }
func (*sandboxResetCmd) Usage() string {
	return `bbsl sandbox-reset [-user <user>]
`
}
func (c *sandboxResetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Sandbox user, defaults to the current user")
}

func (c *sandboxResetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()
	user, err := a.user(ctx, c.user)
	if err != nil {
		return failure(err)
	}
	if _, err := a.sandboxes().Reset(ctx, user); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Sandbox of %s reset.\n", user)
	return subcommands.ExitSuccess
}
