package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// Environment of extensions. They also receive the BBSL_S3_* variables
// unchanged.
const (
	EnvStore   = "BBSL_STORE"
	EnvData    = "BBSL_DATA"
	EnvSeason  = "BBSL_SEASON"
	EnvVerbose = "BBSL_VERBOSE"
)

// RunExtension attempts to find and execute an external bbsl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "bbsl-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Printf("external command %q not found in PATH: %v", name, err)
		return false, 0
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Global flags are passed as environment variables.
	cmd.Env = append(os.Environ(),
		EnvStore+"="+cfg.Store,
		EnvData+"="+cfg.Data,
		EnvSeason+"="+strconv.Itoa(cfg.Season),
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
