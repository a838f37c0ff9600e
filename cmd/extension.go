package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// Environment passed to extensions.
const (
	EnvDataDir  = "NWT_DATA_DIR"
	EnvStore    = "NWT_STORE"
	EnvSQLite   = "NWT_SQLITE_PATH"
	EnvUser     = "NWT_USER"
	EnvCurrency = "NWT_CURRENCY"
	EnvVerbose  = "NWT_VERBOSE"
)

// IsCommand returns true if name is a builtin subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, cmds := range Groups() {
		for _, c := range cmds {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}

// RunExtension looks for an nwt-<subcommand> executable in PATH and runs it
// with args and the resolved configuration in its environment.
// It returns false if there is no such executable.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "nwt-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("no extension", "name", name, "err", err)
		return false, 0
	}

	ext := exec.Command(lp, args...)
	ext.Stdin = os.Stdin
	ext.Stdout = os.Stdout
	ext.Stderr = os.Stderr
	ext.Env = append(os.Environ(), extensionEnv()...)

	slog.Debug("running extension", "path", lp, "args", args)
	if err := ext.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv is the configuration as environment variables. It comes
// after os.Environ so that flags override the inherited values.
func extensionEnv() []string {
	return []string{
		EnvDataDir + "=" + cfg.DataDir,
		EnvStore + "=" + cfg.Store,
		EnvSQLite + "=" + cfg.SQLitePath,
		EnvUser + "=" + cfg.User,
		EnvCurrency + "=" + cfg.Currency,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
