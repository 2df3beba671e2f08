package cli

import (
	"encoding/json"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/filedict/filedict"
)

// SetCmd returns the "set" command.
func SetCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("set", flag.ContinueOnError),
		Usage: "set <file> <key> <json-value>",
		Short: "Store a JSON value under key",
		Exec:  execSet,
	}
}

func execSet(o *IO, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("set requires exactly 3 arguments, got %d", len(args))
	}

	var value any
	if err := json.Unmarshal([]byte(args[2]), &value); err != nil {
		return fmt.Errorf("parsing value as JSON: %w", err)
	}

	d, err := filedict.Open(args[0])
	if err != nil {
		return err
	}

	defer d.Close()

	if err := d.Set(args[1], value); err != nil {
		return err
	}

	o.Println("ok")

	return nil
}
