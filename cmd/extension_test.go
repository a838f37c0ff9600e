package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/etnz/networth/config"
)

func TestIsCommand(t *testing.T) {
	for name, want := range map[string]bool{
		"import":     true,
		"report":     true,
		"help":       true,
		"delete-all": true,
		"hello":      false,
		"":           false,
	} {
		if got := IsCommand(name); got != want {
			t.Errorf("IsCommand(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script requires a POSIX shell")
	}
	dir := useTempConfig(t, config.SQLiteStore)
	cfg.Currency = "EUR"

	bin := t.TempDir()
	script := "#!/bin/sh\nenv | grep '^NWT_' > \"$1\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(bin, "nwt-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv(EnvCurrency, "USD") // overridden by the configuration

	out := filepath.Join(dir, "env.txt")
	found, code := RunExtension("hello", []string{out})
	if !found {
		t.Fatal("RunExtension(hello) did not find nwt-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension(hello) exit code = %d, want 3", code)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(content)
	for _, want := range []string{
		EnvDataDir + "=" + dir,
		EnvStore + "=sqlite",
		EnvSQLite + "=" + filepath.Join(dir, "networth.db"),
		EnvUser + "=test",
		EnvCurrency + "=EUR",
		EnvVerbose + "=false",
	} {
		if !strings.Contains(got, want+"\n") {
			t.Errorf("extension environment lacks %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, EnvCurrency+"=USD") {
		t.Errorf("extension environment kept the inherited currency:\n%s", got)
	}

	if found, _ := RunExtension("missing-extension", nil); found {
		t.Error("RunExtension(missing-extension) found an executable")
	}
}
