package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/filedict/filedict"
)

// VacuumCmd returns the "vacuum" command.
func VacuumCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("vacuum", flag.ContinueOnError),
		Usage: "vacuum <file>",
		Short: "Rewrite the file, dropping tombstones",
		Exec:  execVacuum,
	}
}

func execVacuum(o *IO, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("vacuum requires exactly 1 argument, got %d", len(args))
	}

	d, err := filedict.Open(args[0])
	if err != nil {
		return err
	}

	defer d.Close()

	if err := d.Vacuum(); err != nil {
		return err
	}

	o.Println("ok,", d.Len(), "keys remain")

	return nil
}
