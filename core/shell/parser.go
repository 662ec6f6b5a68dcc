// Package shell implements nsh's command line parser, the history shortcut
// resolver and the interactive session loop.
package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anmitsu/go-shlex"
)

// BackgroundToken marks a command that runs without the shell waiting.
const BackgroundToken = "&"

var (
	// ErrEmptyCommand is returned for lines that hold no arguments once the
	// background marker is stripped, e.g. "&".
	ErrEmptyCommand = errors.New("empty command")

	// ErrLineTooLong is returned for lines longer than Parser.MaxLineLength.
	ErrLineTooLong = errors.New("line too long")
	// ErrTooManyArgs is returned for commands with more than Parser.MaxArgs
	// arguments.
	ErrTooManyArgs = errors.New("too many arguments")

	indexedShortcut = regexp.MustCompile(`^!([0-9]+)$`)
)

// Normalize strips leading and trailing whitespace from a raw input line.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// SplitFunc breaks a normalized line into tokens.
type SplitFunc func(line string) ([]string, error)

// FieldsSplit splits on runs of whitespace, consecutive delimiters never
// produce empty arguments.
func FieldsSplit(line string) ([]string, error) {
	return strings.Fields(line), nil
}

// ShlexSplit splits using POSIX shell quoting rules.
func ShlexSplit(line string) ([]string, error) {
	return shlex.Split(line, true)
}

// Command is a tokenized line.
type Command struct {
	// Args holds the program name followed by its arguments.
	Args []string
	// Background is set if the line held a standalone "&".
	Background bool
	// BackgroundIndex is the position of the first "&" in the token stream,
	// -1 if there was none.
	BackgroundIndex int
}

// Name returns the program name.
func (c *Command) Name() string {
	return c.Args[0]
}

func (c *Command) String() string {
	if c.Background {
		return strings.Join(c.Args, " ") + " " + BackgroundToken
	}
	return strings.Join(c.Args, " ")
}

// Parser turns lines into commands. The zero value splits on whitespace and
// has no limits.
type Parser struct {
	Split SplitFunc
	// MaxLineLength and MaxArgs bound the input, 0 means unlimited.
	MaxLineLength int
	MaxArgs       int
}

var defaultParser = &Parser{}

// Tokenize splits a line with the default parser.
func Tokenize(line string) (*Command, error) {
	return defaultParser.Tokenize(line)
}

// Tokenize splits a normalized line into a Command. The first "&" token is
// removed and marks the command as a background command, any later ones are
// passed through as arguments.
func (p *Parser) Tokenize(line string) (*Command, error) {
	if p.MaxLineLength > 0 && len(line) > p.MaxLineLength {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrLineTooLong, len(line), p.MaxLineLength)
	}

	split := p.Split
	if split == nil {
		split = FieldsSplit
	}

	tokens, err := split(line)
	if err != nil {
		return nil, err
	}

	cmd := &Command{BackgroundIndex: -1}
	for i, tok := range tokens {
		if tok == BackgroundToken && !cmd.Background {
			cmd.Background = true
			cmd.BackgroundIndex = i
			continue
		}
		cmd.Args = append(cmd.Args, tok)
	}

	switch {
	case len(cmd.Args) == 0:
		return nil, ErrEmptyCommand
	case p.MaxArgs > 0 && len(cmd.Args) > p.MaxArgs:
		return nil, fmt.Errorf("%w: %d given, limit is %d", ErrTooManyArgs, len(cmd.Args), p.MaxArgs)
	}

	return cmd, nil
}

// Kind classifies an input line.
type Kind int

const (
	KindEmpty Kind = iota
	KindExit
	KindHistoryList
	KindRepeatLast
	KindRepeatIndexed
	KindMalformedShortcut
	KindFresh
)

var kindNames = map[Kind]string{
	KindEmpty:             "empty",
	KindExit:              "exit",
	KindHistoryList:       "history",
	KindRepeatLast:        "repeat-last",
	KindRepeatIndexed:     "repeat-indexed",
	KindMalformedShortcut: "malformed-shortcut",
	KindFresh:             "fresh",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Resolution is the classification of one line.
type Resolution struct {
	Kind Kind
	// Line is the normalized input.
	Line string
	// Command is the tokenized line, nil for KindEmpty.
	Command *Command
	// Index is the history index named by a KindRepeatIndexed line. It is
	// 0 if the digits don't fit in an int.
	Index int
}

// Resolve classifies a raw line. The checks run in a fixed order: empty,
// exit, history, shortcuts, then everything else is a fresh command.
func (p *Parser) Resolve(raw string) (*Resolution, error) {
	line := Normalize(raw)
	if line == "" {
		return &Resolution{Kind: KindEmpty}, nil
	}

	cmd, err := p.Tokenize(line)
	switch {
	case errors.Is(err, ErrEmptyCommand):
		return &Resolution{Kind: KindEmpty, Line: line}, nil
	case err != nil:
		return nil, err
	}

	res := &Resolution{Kind: KindFresh, Line: line, Command: cmd}
	first := cmd.Name()

	switch {
	case first == "exit":
		res.Kind = KindExit
	case first == "history":
		res.Kind = KindHistoryList
	case first == "!!":
		res.Kind = KindRepeatLast
	case indexedShortcut.MatchString(first):
		res.Kind = KindRepeatIndexed
		// Out of range values are left at 0 which never matches an entry.
		if index, err := strconv.Atoi(first[1:]); err == nil {
			res.Index = index
		}
	case strings.HasPrefix(first, "!"):
		res.Kind = KindMalformedShortcut
	}

	return res, nil
}
