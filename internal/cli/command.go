// Package cli implements the filedict command-line interface: a small
// Command registry with unified flag parsing and help generation, in
// the same shape as a conventional pflag-based Go CLI.
package cli

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a CLI command with unified help generation.
type Command struct {
	// Flags defines command-specific flags. Command identity comes from
	// Usage, not the FlagSet's own name.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "filedict".
	// Examples: "get <file> <key>", "vacuum <file>".
	Usage string

	// Short is a one-line description for the command listing.
	Short string

	// Exec runs the command after flags are parsed, receiving the
	// remaining positional arguments.
	Exec func(o *IO, args []string) error
}

// Name returns the command name, the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the one-line summary shown in the command listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-28s %s", c.Usage, c.Short)
}

// PrintHelp prints full help for this command.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: filedict", c.Usage)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder

		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command, returning an exit code.
func (c *Command) Run(o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}

		o.ErrPrintln("error:", err)

		return 1
	}

	if err := c.Exec(o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
