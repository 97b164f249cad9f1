// Package cmd implements the CLI application of the league office.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/fantaleague"
	"github.com/etnz/fantaleague/renderer"
	"github.com/etnz/fantaleague/sandbox"
	"github.com/etnz/fantaleague/store"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands lists every subcommand, with its help group.
var Commands = []struct {
	Command subcommands.Command
	Group   string
}{
	{&initCmd{}, "league"},
	{&resetCmd{}, "league"},
	{&migrateCmd{}, "league"},
	{&syncCmd{}, "league"},
	{&exportCmd{}, "league"},
	{&importCmd{}, "league"},
	{&queryCmd{}, "league"},
	{&assistCmd{}, "league"},
	{&topicCmd{}, "league"},

	{&addPlayerCmd{}, "catalog"},
	{&setQuoteCmd{}, "catalog"},
	{&deletePlayerCmd{}, "catalog"},
	{&playersCmd{}, "catalog"},
	{&addClubCmd{}, "catalog"},
	{&clubsCmd{}, "catalog"},
	{&addDivisionCmd{}, "catalog"},
	{&addCompetitionCmd{}, "catalog"},

	{&signCmd{}, "contracts"},
	{&releaseCmd{}, "contracts"},
	{&editContractCmd{}, "contracts"},
	{&dropCmd{}, "contracts"},
	{&loanCmd{}, "contracts"},
	{&recallCmd{}, "contracts"},
	{&rosterCmd{}, "contracts"},
	{&listoneCmd{}, "contracts"},

	{&txCmd{}, "ledger"},
	{&ledgerCmd{}, "ledger"},
	{&recomputeCmd{}, "ledger"},

	{&sandboxCmd{}, "sandbox"},
	{&sandboxPlanCmd{}, "sandbox"},
	{&sandboxUserCmd{}, "sandbox"},
	{&sandboxExportCmd{}, "sandbox"},
	{&sandboxImportCmd{}, "sandbox"},
	{&sandboxResetCmd{}, "sandbox"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// IsCommand reports whether name is a registered subcommand.
func IsCommand(name string) bool {
	for _, cmd := range Commands {
		if cmd.Command.Name() == name {
			return true
		}
	}
	return name == "help" || name == "flags"
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeKind  = flag.String("store", "", "Storage backend: dir, sqlite, s3 or memory (env BBSL_STORE, default dir)")
	dataPath   = flag.String("data", "", "Data directory, or database file for sqlite (env BBSL_DATA, default .bbsl)")
	season     = flag.Int("season", 0, "Current season, defaults to the current year (env BBSL_SEASON)")
	htmlOutput = flag.Bool("html", false, "Print reports as an HTML page instead of terminal markdown")
	// Verbose turns the log output on.
	Verbose = flag.Bool("v", false, "Verbose logging")
)

// stdout receives the commands' output.
var stdout io.Writer = os.Stdout

// Config is the application configuration read from the environment. Global
// flags take precedence.
type Config struct {
	Store  string `env:"BBSL_STORE" envDefault:"dir"`
	Data   string `env:"BBSL_DATA" envDefault:".bbsl"`
	Season int    `env:"BBSL_SEASON"`
	User   string `env:"BBSL_USER"`

	S3Bucket          string `env:"BBSL_S3_BUCKET"`
	S3Prefix          string `env:"BBSL_S3_PREFIX"`
	S3Endpoint        string `env:"BBSL_S3_ENDPOINT"`
	S3Region          string `env:"BBSL_S3_REGION"`
	S3AccessKeyID     string `env:"BBSL_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"BBSL_S3_SECRET_ACCESS_KEY"`
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file if there is one, then applies the global flags.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not load .env: %v", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
	}
	if *dataPath != "" {
		cfg.Data = *dataPath
	}
	if *season != 0 {
		cfg.Season = *season
	}
	return cfg, nil
}

// memory is the process wide memory store, shared by every command of a
// process.
var memory = store.NewMemory()

// OpenStore opens the configured storage backend. close must be called once
// the store is no longer used.
func OpenStore(ctx context.Context, cfg *Config) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.Store) {
	case "dir", "":
		d, err := store.NewDir(cfg.Data)
		return d, noop, err
	case "sqlite":
		db, err := store.OpenSQLite(cfg.Data)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case "s3":
		s3, err := store.NewS3(ctx, store.S3Config{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		return s3, noop, err
	case "memory":
		return memory, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q, want dir, sqlite, s3 or memory", cfg.Store)
	}
}

// app is what a command works with: the configuration, the store, and lazily
// the league.
type app struct {
	cfg    *Config
	store  store.Store
	close  func() error
	league *fantaleague.League
}

// openApp loads the configuration and opens the store.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	s, close, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not open the %s store: %w", cfg.Store, err)
	}
	return &app{cfg: cfg, store: s, close: close}, nil
}

// openLeague opens the app and its league.
func openLeague(ctx context.Context) (*app, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	var opts []fantaleague.Option
	if a.cfg.Season > 0 {
		opts = append(opts, fantaleague.WithSeason(fantaleague.FixedSeason(a.cfg.Season)))
	}
	a.league, err = fantaleague.Open(ctx, fantaleague.NewRepository(a.store), opts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("could not open the league: %w", err)
	}
	return a, nil
}

// Close closes the store.
func (a *app) Close() {
	if err := a.close(); err != nil {
		log.Printf("could not close the store: %v", err)
	}
}

// sandboxes returns the sandbox manager over the app store.
func (a *app) sandboxes() *sandbox.Manager { return sandbox.NewManager(a.store, nil) }

// user returns the sandbox user: the given one, the configured one, or the
// current one.
func (a *app) user(ctx context.Context, user string) (string, error) {
	if user != "" {
		return user, nil
	}
	if a.cfg.User != "" {
		return a.cfg.User, nil
	}
	user, err := a.sandboxes().CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == "" {
		return "", fmt.Errorf("%w, use -user or select one with sandbox-user", sandbox.ErrNoUser)
	}
	return user, nil
}

// failure reports err and returns the exit status of a failed command.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usage reports a usage problem.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// printMarkdown prints a markdown report, rendered for the terminal, or as an
// HTML page with -html.
func printMarkdown(md string) {
	if *htmlOutput {
		page, err := renderer.HTMLPage("BBSL", md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Fprint(stdout, page)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
