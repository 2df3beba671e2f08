package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/filedict/filedict"
)

// DeleteCmd returns the "delete" command.
func DeleteCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("delete", flag.ContinueOnError),
		Usage: "delete <file> <key>",
		Short: "Remove a key",
		Exec:  execDelete,
	}
}

func execDelete(o *IO, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("delete requires exactly 2 arguments, got %d", len(args))
	}

	d, err := filedict.Open(args[0])
	if err != nil {
		return err
	}

	defer d.Close()

	if err := d.Delete(args[1]); err != nil {
		return err
	}

	o.Println("ok")

	return nil
}
