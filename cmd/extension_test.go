package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// installExtension writes a ustax-<name> shell script into a temporary folder added to the PATH.
func installExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ExtensionPrefix+name), []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("failed to write extension %q: %v", name, err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	installExtension(t, "hello", fmt.Sprintf(`echo "$%s $%s $%s $1" > "$2"`+"\n", EnvCurrency, EnvRate, EnvVerbose))

	found, code := RunExtension("hello", []string{"world", out})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d, want true, 0", found, code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	want := fmt.Sprintf("%s %s %v world", *defaultCurrency, *defaultRate, *Verbose)
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("extension received %q, want %q", strings.TrimSpace(string(got)), want)
	}
}

func TestRunExtension_ExitCode(t *testing.T) {
	installExtension(t, "fail", "exit 3\n")
	found, code := RunExtension("fail", nil)
	if !found || code != 3 {
		t.Errorf("RunExtension() = %v, %d, want true, 3", found, code)
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	if found, _ := RunExtension("does-not-exist-anywhere", nil); found {
		t.Error("RunExtension() found a command that does not exist")
	}
}
