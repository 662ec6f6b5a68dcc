package shell

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"   ":              "",
		"\t\n \r\n":        "",
		"x":                "x",
		"  ls -la  \n":     "ls -la",
		"\techo  hi\t\r\n": "echo  hi",
	}

	for raw, expected := range cases {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			assert.Equal(t, expected, Normalize(raw))
		})
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name       string
		line       string
		args       []string
		background bool
		bgIndex    int
	}{
		{"foreground", "ls -la", []string{"ls", "-la"}, false, -1},
		{"background", "ls -la &", []string{"ls", "-la"}, true, 2},
		{"collapsed-spaces", "a   b", []string{"a", "b"}, false, -1},
		{"tabs", "a\tb", []string{"a", "b"}, false, -1},
		{"interior-ampersand", "sleep & 5", []string{"sleep", "5"}, true, 1},
		{"second-ampersand-literal", "echo & &", []string{"echo", "&"}, true, 1},
		{"attached-ampersand", "echo a&", []string{"echo", "a&"}, false, -1},
		{"single", "pwd", []string{"pwd"}, false, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Tokenize(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.args, cmd.Args)
			assert.Equal(t, tc.background, cmd.Background)
			assert.Equal(t, tc.bgIndex, cmd.BackgroundIndex)
		})
	}
}

func TestTokenize_NormalizedRoundTrip(t *testing.T) {
	cmd, err := Tokenize(Normalize("  a   b  "))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cmd.Args)
	assert.Equal(t, "a b", cmd.String())
}

func TestTokenize_Empty(t *testing.T) {
	for _, line := range []string{"&", "", "   "} {
		t.Run(fmt.Sprintf("%q", line), func(t *testing.T) {
			_, err := Tokenize(line)
			assert.ErrorIs(t, err, ErrEmptyCommand)
		})
	}
}

func TestTokenize_Limits(t *testing.T) {
	parser := &Parser{MaxLineLength: 10, MaxArgs: 3}

	_, err := parser.Tokenize(strings.Repeat("x", 11))
	assert.ErrorIs(t, err, ErrLineTooLong)

	_, err = parser.Tokenize("a b c d")
	assert.ErrorIs(t, err, ErrTooManyArgs)

	cmd, err := parser.Tokenize("a b c &")
	require.NoError(t, err, "the background marker doesn't count as an argument")
	assert.Equal(t, []string{"a", "b", "c"}, cmd.Args)
}

func TestTokenize_Shlex(t *testing.T) {
	parser := &Parser{Split: ShlexSplit}

	cmd, err := parser.Tokenize(`echo "hello   world" it\'s &`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "hello   world", "it's"}, cmd.Args)
	assert.True(t, cmd.Background)

	_, err = parser.Tokenize(`echo "unterminated`)
	assert.Error(t, err)
}

func TestCommand_String(t *testing.T) {
	cmd, err := Tokenize("sleep 10 &")
	require.NoError(t, err)
	assert.Equal(t, "sleep 10 &", cmd.String())
	assert.Equal(t, "sleep", cmd.Name())
}

func TestResolve(t *testing.T) {
	cases := []struct {
		line  string
		kind  Kind
		index int
	}{
		{"", KindEmpty, 0},
		{"  \t ", KindEmpty, 0},
		{"&", KindEmpty, 0},
		{"exit", KindExit, 0},
		{"  exit  ", KindExit, 0},
		{"exit now", KindExit, 0},
		{"Exit", KindFresh, 0},
		{"history", KindHistoryList, 0},
		{"history -n 3", KindHistoryList, 0},
		{"HISTORY", KindFresh, 0},
		{"!!", KindRepeatLast, 0},
		{"!! extra", KindRepeatLast, 0},
		{"!3", KindRepeatIndexed, 3},
		{"!0", KindRepeatIndexed, 0},
		{"!007", KindRepeatIndexed, 7},
		{"!99999999999999999999999", KindRepeatIndexed, 0},
		{"!", KindMalformedShortcut, 0},
		{"!x", KindMalformedShortcut, 0},
		{"!!x", KindMalformedShortcut, 0},
		{"!3a", KindMalformedShortcut, 0},
		{"!-1", KindMalformedShortcut, 0},
		{"ls -la", KindFresh, 0},
		{"echo !!", KindFresh, 0},
		{"exitnow", KindFresh, 0},
	}

	parser := &Parser{}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.line), func(t *testing.T) {
			res, err := parser.Resolve(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, res.Kind, "got %s", res.Kind)
			assert.Equal(t, tc.index, res.Index)
		})
	}
}

func TestResolve_FreshKeepsNormalizedLine(t *testing.T) {
	res, err := (&Parser{}).Resolve("   ls   -la   &  \n")
	require.NoError(t, err)

	assert.Equal(t, KindFresh, res.Kind)
	assert.Equal(t, "ls   -la   &", res.Line, "history stores the normalized, unparsed line")
	assert.Equal(t, []string{"ls", "-la"}, res.Command.Args)
	assert.True(t, res.Command.Background)
}

func TestResolve_SyntaxError(t *testing.T) {
	_, err := (&Parser{MaxArgs: 1}).Resolve("ls -la")
	assert.ErrorIs(t, err, ErrTooManyArgs)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "repeat-indexed", KindRepeatIndexed.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
