package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/nsh/core/config"
	"github.com/josephlewis42/nsh/core/gateway"
	"github.com/josephlewis42/nsh/core/logger"
	"github.com/josephlewis42/nsh/core/shell"
	"github.com/josephlewis42/nsh/core/vio"
	"github.com/mattn/go-isatty"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runSession runs the shell over the process's own stdio and returns the
// status to exit with.
func runSession(configuration *config.Configuration, singleLine bool) (int, error) {
	streams := vio.NewOSIO()

	events := logger.Nop()
	if configuration.EventLog {
		fd, err := configuration.OpenAppLog()
		if err != nil {
			return 1, fmt.Errorf("opening event log: %w", err)
		}
		defer fd.Close()
		events = logger.NewJSONLinesLogRecorder(fd)
	}

	reader, closeReader, err := newLineReader(configuration, streams, singleLine)
	if err != nil {
		return 1, err
	}
	defer closeReader()

	// The shell survives Ctrl-C, children get the default action after exec.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer func() {
		signal.Stop(interrupts)
		close(interrupts)
	}()
	go func() {
		for range interrupts {
		}
	}()

	sh := shell.New(configuration, streams, reader, gateway.NewOS(streams))
	sh.Events = events.NewSession()
	sh.Colors.Enabled = configuration.Color && !noColor && isTerminal(os.Stdout)

	status := sh.Run()
	if singleLine {
		return sh.ExitStatus(), nil
	}
	return status, nil
}

func newLineReader(configuration *config.Configuration, streams vio.VIO, singleLine bool) (shell.LineReader, func(), error) {
	noop := func() {}

	if singleLine {
		return shell.NewPlainReader(strings.NewReader(runLine), nil), noop, nil
	}

	if !isTerminal(os.Stdin) {
		var out io.Writer
		if verbose {
			out = streams.Stdout()
		}
		reader := shell.NewPlainReader(streams.Stdin(), out)
		reader.Echo = verbose
		return reader, noop, nil
	}

	cfg := &readline.Config{
		Prompt:                 configuration.Prompt,
		HistoryLimit:           configuration.History.Capacity,
		DisableAutoSaveHistory: true,
		Stdin:                  readline.NewCancelableStdin(streams.Stdin()),
		Stdout:                 streams.Stdout(),
		Stderr:                 streams.Stderr(),
	}
	if err := cfg.Init(); err != nil {
		return nil, nil, err
	}

	instance, err := readline.NewEx(cfg)
	if err != nil {
		return nil, nil, err
	}
	return instance, func() { instance.Close() }, nil
}
