// Command filedict-shell is an interactive REPL over a single filedict
// file: get/set/delete/keys/vacuum/stats without reopening the file
// between commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/filedict/filedict"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: filedict-shell <file>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var commands = []string{"get", "set", "delete", "keys", "vacuum", "stats", "help", "exit", "quit"}

func run(path string) error {
	d, err := filedict.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	defer d.Close()

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("filedict-shell: %s (%d keys)\n", path, d.Len())
	fmt.Println("Type 'help' for commands, 'exit' to quit.")

	for {
		input, err := line.Prompt("filedict> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println()
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if !dispatch(d, input) {
			break
		}
	}

	saveHistory(line)

	return nil
}

func dispatch(d *filedict.Dict, input string) bool {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "exit", "quit", "q":
		return false
	case "help", "?":
		printHelp()
	case "get":
		cmdGet(d, args)
	case "set":
		cmdSet(d, args)
	case "delete", "del":
		cmdDelete(d, args)
	case "keys", "ls", "list":
		cmdKeys(d)
	case "vacuum":
		cmdVacuum(d)
	case "stats":
		cmdStats(d)
	default:
		fmt.Printf("unknown command: %s (type 'help')\n", cmd)
	}

	return true
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  get <key>                Print the value for key")
	fmt.Println("  set <key> <json-value>   Store value under key")
	fmt.Println("  delete <key>             Remove key")
	fmt.Println("  keys                     List live keys")
	fmt.Println("  vacuum                   Rewrite the file, dropping tombstones")
	fmt.Println("  stats                    Print key count, free slots, size")
	fmt.Println("  exit / quit / q          Leave the shell")
}

func cmdGet(d *filedict.Dict, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: get <key>")
		return
	}

	v, err := d.Get(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, _ := json.Marshal(v)
	fmt.Println(string(out))
}

func cmdSet(d *filedict.Dict, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: set <key> <json-value>")
		return
	}

	var v any
	if err := json.Unmarshal([]byte(args[1]), &v); err != nil {
		fmt.Println("error: value is not valid JSON:", err)
		return
	}

	if err := d.Set(args[0], v); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("ok")
}

func cmdDelete(d *filedict.Dict, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: delete <key>")
		return
	}

	if err := d.Delete(args[0]); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("ok")
}

func cmdKeys(d *filedict.Dict) {
	keys := make([]string, 0, d.Len())
	for k := range d.Keys() {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		fmt.Println(k)
	}
}

func cmdVacuum(d *filedict.Dict) {
	if err := d.Vacuum(); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("ok, %d keys remain\n", d.Len())
}

func cmdStats(d *filedict.Dict) {
	fmt.Printf("keys: %d\n", d.Len())
	fmt.Printf("free_slots: %d\n", d.FreeSlots())
	fmt.Printf("size_bytes: %d\n", d.Size())
}

func completer(line string) []string {
	lower := strings.ToLower(line)

	var out []string

	for _, c := range commands {
		if strings.HasPrefix(c, lower) {
			out = append(out, c)
		}
	}

	return out
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".filedict_shell_history")
}

func saveHistory(line *liner.State) {
	path := historyFile()
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	defer f.Close()

	_, _ = line.WriteHistory(f)
}
