package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/filedict/filedict"
)

// StatsCmd returns the "stats" command.
func StatsCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("stats", flag.ContinueOnError),
		Usage: "stats <file>",
		Short: "Print key count, free slots, and file size",
		Exec:  execStats,
	}
}

func execStats(o *IO, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("stats requires exactly 1 argument, got %d", len(args))
	}

	d, err := filedict.Open(args[0])
	if err != nil {
		return err
	}

	defer d.Close()

	o.Printf("keys: %d\n", d.Len())
	o.Printf("free_slots: %d\n", d.FreeSlots())
	o.Printf("size_bytes: %d\n", d.Size())

	return nil
}
