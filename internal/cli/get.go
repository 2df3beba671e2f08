package cli

import (
	"encoding/json"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/filedict/filedict"
)

// GetCmd returns the "get" command.
func GetCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("get", flag.ContinueOnError),
		Usage: "get <file> <key>",
		Short: "Print the value stored under key",
		Exec:  execGet,
	}
}

func execGet(o *IO, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("get requires exactly 2 arguments, got %d", len(args))
	}

	d, err := filedict.Open(args[0])
	if err != nil {
		return err
	}

	defer d.Close()

	v, err := d.Get(args[1])
	if err != nil {
		return err
	}

	out, err := json.Marshal(v)
	if err != nil {
		return err
	}

	o.Println(string(out))

	return nil
}
