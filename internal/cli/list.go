package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	flag "github.com/spf13/pflag"

	"github.com/filedict/filedict"
)

// ListCmd returns the "list" command.
func ListCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("list", flag.ContinueOnError),
		Usage: "list <file>",
		Short: "Print every live key and value",
		Exec:  execList,
	}
}

func execList(o *IO, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("list requires exactly 1 argument, got %d", len(args))
	}

	d, err := filedict.Open(args[0])
	if err != nil {
		return err
	}

	defer d.Close()

	keys := make([]string, 0, d.Len())
	for k := range d.Keys() {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		v, err := d.Get(k)
		if err != nil {
			return err
		}

		out, err := json.Marshal(v)
		if err != nil {
			return err
		}

		o.Printf("%s\t%s\n", k, out)
	}

	return nil
}
