package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/watchlist/logger"
)

// Environment variables read by wls and passed down to extensions.
const (
	EnvWatchlists = "WLS_WATCHLISTS"
	EnvCurrency   = "WLS_CURRENCY"
	EnvVerbose    = "WLS_VERBOSE"
)

// RunExtension attempts to find and execute an external wls-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "wls-" + subcommand
	log := logger.Get().WithComponent("extension").WithFields(logger.Fields{"command": name})

	lp, err := exec.LookPath(name)
	if err != nil {
		log.WithError(err).Debug("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Global flags are resolved before being passed down.
	cmd.Env = append(os.Environ(),
		EnvWatchlists+"="+WatchlistsPath(),
		EnvCurrency+"="+Currency(nil),
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	log.Debug("running external command")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
