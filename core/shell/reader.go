package shell

import (
	"bufio"
	"io"
	"strings"
)

// LineReader reads one line of input per prompt. *readline.Instance
// satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// historySaver is implemented by readers that keep their own recall
// history, like readline's up-arrow list.
type historySaver interface {
	SaveHistory(content string) error
}

// PlainReader reads lines from a non-interactive source such as a pipe. Lines
// have no length limit.
type PlainReader struct {
	r      *bufio.Reader
	out    io.Writer
	prompt string

	// Echo writes every line read to the prompt writer, like sh -v.
	Echo bool
}

var _ LineReader = (*PlainReader)(nil)

// NewPlainReader reads from r. If out is non-nil prompts are written to it.
func NewPlainReader(r io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{r: bufio.NewReader(r), out: out}
}

// SetPrompt implements LineReader.
func (p *PlainReader) SetPrompt(prompt string) {
	p.prompt = prompt
}

// Readline implements LineReader, it returns io.EOF once the input is
// exhausted. A final line without a newline is still returned.
func (p *PlainReader) Readline() (string, error) {
	if p.out != nil {
		io.WriteString(p.out, p.prompt)
	}

	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")

	if p.Echo && p.out != nil {
		io.WriteString(p.out, line+"\n")
	}
	return line, nil
}
