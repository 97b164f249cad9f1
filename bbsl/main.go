// Command bbsl runs the office of the BBSL fantasy football league.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/etnz/fantaleague/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Serves shell completion requests, and exits, when invoked by the shell.
	cmd.Completion(flag.CommandLine).Complete("bbsl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}

	if flag.NArg() > 0 && !cmd.IsCommand(flag.Arg(0)) {
		if found, code := cmd.RunExtension(flag.Arg(0), flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
