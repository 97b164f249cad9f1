package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/fantaleague/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the league office assistant" }
func (*assistCmd) Usage() string {
	return `bbsl assist [<question>]

  Starts an interactive session with an AI assistant that reads the league
  data and follows real football news. Requires GEMINI_API_KEY.
`
}
func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openLeague(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.Close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return failure(fmt.Errorf("could not create the Gemini client: %w", err))
	}

	secretary := agent.NewSecretary(a.league.Catalog(), a.league.Season())
	assistant := agent.New(stdout, os.Stdin, agent.NewScout(), secretary)
	assistant.Print = func(w io.Writer, text string) { printMarkdown(text) }

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := assistant.Run(ctx, client, prompts...); err != nil {
		return failure(fmt.Errorf("assistant failed: %w", err))
	}
	return subcommands.ExitSuccess
}
