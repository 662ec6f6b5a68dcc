package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/pborman/getopt/v2"
)

// Builtin documents a command the shell handles itself.
type Builtin struct {
	Use   string
	Short string
}

// AllBuiltins lists the builtins and history shortcuts in resolution order.
var AllBuiltins = []Builtin{
	{Use: "exit", Short: "Exit the shell."},
	{Use: "history [-n COUNT]", Short: "List the most recent commands, newest first."},
	{Use: "!!", Short: "Run the most recent command again."},
	{Use: "!N", Short: "Run command number N from the history list again."},
}

// Exit quits the shell.
func Exit(s *Shell, args []string) int {
	fmt.Fprintln(s.IO.Stdout(), s.config.FarewellMessage)
	s.Quit = true
	return 0
}

// History lists recent history entries, it never records anything itself.
func History(s *Shell, args []string) int {
	opts := getopt.New()
	count := opts.IntLong("count", 'n', s.config.History.ListLimit, "number of entries to list")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	err := opts.Getopt(args, nil)
	switch {
	case err != nil:
	case len(opts.Args()) > 0:
		err = fmt.Errorf("history: unexpected arguments: %s", strings.Join(opts.Args(), " "))
	case *count <= 0:
		err = fmt.Errorf("history: count must be positive, got %d", *count)
	}

	if err != nil || *helpOpt {
		w := s.IO.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		printHistoryHelp(w, opts)
		if err != nil {
			return 1
		}
		return 0
	}

	for _, entry := range s.History.ListRecent(*count) {
		fmt.Fprintf(s.IO.Stdout(), "% 5d  %s\n", entry.Index, entry.Line)
	}
	return 0
}

func printHistoryHelp(w io.Writer, opts *getopt.Set) {
	fmt.Fprintln(w, "usage: history [-n COUNT]")
	fmt.Fprintln(w, "Display the history list with line numbers, newest first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	opts.PrintOptions(w)
}
