// Package cmd implements the ustax command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/ustax"
	"github.com/google/subcommands"
)

// Environment variables providing defaults to the global flags. They are also
// passed on to extensions.
const (
	EnvCurrency = "USTAX_CURRENCY"
	EnvRate     = "USTAX_RATE"
	EnvVerbose  = "USTAX_VERBOSE"
)

// Commands lists the ustax subcommands.
var Commands = []subcommands.Command{
	&calcCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	Verbose         = flag.Bool("v", envBool(EnvVerbose), "Log diagnostics to stderr")
	defaultCurrency = flag.String("default-currency", envOr(EnvCurrency, ustax.KRW), "Default display currency (KRW, USD)")
	defaultRate     = flag.String("default-rate", envOr(EnvRate, strconv.Itoa(ustax.DefaultExchangeRate)), "Default exchange rate in KRW per USD")
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

// logf logs only in verbose mode.
func logf(format string, args ...any) {
	if *Verbose {
		log.Printf(format, args...)
	}
}

// printMarkdown renders md for the terminal into w. It falls back to the raw
// markdown if it cannot be rendered.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		logf("cannot create markdown renderer: %v", err)
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		logf("cannot render markdown: %v", err)
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}
