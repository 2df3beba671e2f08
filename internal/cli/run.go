package cli

import (
	"fmt"
	"io"
)

// Run is the CLI entry point, shared by cmd/filedict and its tests.
// Returns the process exit code.
func Run(out, errOut io.Writer, args []string) int {
	commands := allCommands()

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	if len(args) == 0 {
		printUsage(out, commands)
		return 0
	}

	if args[0] == "-h" || args[0] == "--help" {
		printUsage(out, commands)
		return 0
	}

	cmd, ok := commandMap[args[0]]
	if !ok {
		fprintln(errOut, "error: unknown command:", args[0])
		printUsage(errOut, commands)

		return 1
	}

	return cmd.Run(NewIO(out, errOut), args[1:])
}

func allCommands() []*Command {
	return []*Command{
		GetCmd(),
		SetCmd(),
		DeleteCmd(),
		ListCmd(),
		VacuumCmd(),
		StatsCmd(),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "filedict - embedded single-file key-value store")
	fprintln(w)
	fprintln(w, "Usage: filedict <command> [args]")
	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}
}
