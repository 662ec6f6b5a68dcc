package shell

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/nsh/core/config"
	"github.com/josephlewis42/nsh/core/gateway"
	"github.com/josephlewis42/nsh/core/history"
	"github.com/josephlewis42/nsh/core/logger"
	"github.com/josephlewis42/nsh/core/vio"
)

// EventRecorder receives the session's structured events.
type EventRecorder interface {
	Record(event logger.LogType) error
}

// Shell is one interactive session: a reader, a history and a gateway to run
// commands through.
type Shell struct {
	IO      vio.VIO
	Reader  LineReader
	History *history.Store
	Gateway gateway.Executor
	Events  EventRecorder
	Colors  ColorPrinter

	config *config.Configuration
	parser *Parser

	lastRet  int
	commands int

	// Set to true to quit the shell
	Quit bool
}

// New creates a shell from the configuration. Events default to being
// dropped.
func New(cfg *config.Configuration, streams vio.VIO, reader LineReader, gw gateway.Executor) *Shell {
	parser := &Parser{
		Split:         FieldsSplit,
		MaxLineLength: cfg.Limits.MaxLineLength,
		MaxArgs:       cfg.Limits.MaxArgs,
	}
	if cfg.Tokenizer == config.TokenizerShlex {
		parser.Split = ShlexSplit
	}

	return &Shell{
		IO:      streams,
		Reader:  reader,
		History: history.New(cfg.History.Capacity),
		Gateway: gw,
		Events:  logger.Nop().Sessionless(),
		config:  cfg,
		parser:  parser,
	}
}

// ExitStatus returns the status of the last command run.
func (s *Shell) ExitStatus() int {
	return s.lastRet
}

// Run reads and executes lines until exit or the end of input.
func (s *Shell) Run() int {
	reason := "exit"
	for !s.Quit {
		s.reapJobs()

		s.Reader.SetPrompt(s.Colors.Sprintf(ColorBoldGreen, "%s", s.config.Prompt))
		line, err := s.Reader.Readline()

		switch {
		case err == io.EOF:
			reason = "eof"
			s.Quit = true

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			s.record(&logger.SessionEnd{Reason: "error", Commands: s.commands})
			return 1

		default:
			s.RunLine(line)
		}
	}

	s.record(&logger.SessionEnd{Reason: reason, Commands: s.commands})
	return 0
}

// RunLine classifies and executes a single line of input.
func (s *Shell) RunLine(line string) {
	res, err := s.parser.Resolve(line)
	if err != nil {
		s.errorf("syntax error: %v", err)
		s.lastRet = 2
		return
	}

	switch res.Kind {
	case KindEmpty:
		fmt.Fprintln(s.IO.Stdout(), s.config.EmptyLineMessage)

	case KindExit:
		s.lastRet = Exit(s, res.Command.Args)

	case KindHistoryList:
		s.lastRet = History(s, res.Command.Args)

	case KindRepeatLast:
		entry, ok := s.History.Latest()
		if !ok {
			// Nothing to repeat yet.
			return
		}
		s.replay(entry, logger.SourceLast)

	case KindRepeatIndexed:
		entry, err := s.History.Get(res.Index)
		if err != nil {
			s.record(&logger.HistoryMiss{Shortcut: res.Command.Name()})
			if s.config.History.ReportMissing {
				s.errorf("%s: %v", res.Command.Name(), history.ErrNotFound)
				s.lastRet = 1
			}
			return
		}
		s.replay(entry, logger.SourceIndexed)

	case KindMalformedShortcut:
		s.errorf("%s: unrecognized command", res.Command.Name())
		s.lastRet = 127

	case KindFresh:
		index, err := s.History.Append(res.Line)
		switch {
		case errors.Is(err, history.ErrCapacityExceeded):
			s.errorf("history full, %q not recorded (limit is %d)", res.Line, s.History.Cap())
			s.record(&logger.HistoryFull{Line: res.Line, Capacity: s.History.Cap()})
		case err != nil:
			s.errorf("history: %v", err)
		default:
			if saver, ok := s.Reader.(historySaver); ok {
				if err := saver.SaveHistory(res.Line); err != nil {
					log.Printf("Error saving history: %v", err)
				}
			}
		}
		s.dispatch(res.Command, logger.SourceFresh, index)
	}
}

// replay runs a stored line again, it is re-tokenized every time.
func (s *Shell) replay(entry history.Entry, source logger.Source) {
	cmd, err := s.parser.Tokenize(entry.Line)
	if err != nil {
		s.errorf("syntax error: %v", err)
		s.lastRet = 2
		return
	}

	fmt.Fprintln(s.IO.Stdout(), entry.Line)
	s.dispatch(cmd, source, entry.Index)
}

func (s *Shell) dispatch(cmd *Command, source logger.Source, historyIndex int) {
	out, err := s.Gateway.Execute(cmd.Args, cmd.Background)
	if err != nil {
		s.errorf("%v", err)
		s.record(&logger.SpawnFailure{Command: cmd.Args, ErrorMessage: err.Error()})
		s.lastRet = 127
		return
	}
	s.commands++

	s.record(&logger.RunCommand{
		Command:      cmd.Args,
		Background:   cmd.Background,
		Source:       source,
		HistoryIndex: historyIndex,
		Pid:          out.Pid,
		ExitCode:     out.ExitCode,
	})

	if !cmd.Background {
		s.lastRet = out.ExitCode
		if s.lastRet < 0 {
			s.lastRet = 1
		}
		return
	}

	s.lastRet = 0
	fmt.Fprintf(s.IO.Stdout(), "Forked a child with PID: %d\n", out.Pid)
	if out.Exited {
		s.reportJob(out)
	}
}

// reapJobs collects background children so they don't linger as zombies.
func (s *Shell) reapJobs() {
	for _, out := range s.Gateway.Reap() {
		s.reportJob(out)
	}
}

func (s *Shell) reportJob(out gateway.Outcome) {
	fmt.Fprintf(s.IO.Stdout(), "[%d] Done (%s)\n", out.Pid, out.Status())
	s.record(&logger.JobExit{Pid: out.Pid, Status: out.Status()})
}

func (s *Shell) errorf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintln(s.IO.Stderr(), s.Colors.Sprintf(ColorBoldRed, "nsh: %s", msg))
}

func (s *Shell) record(event logger.LogType) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(event); err != nil {
		log.Printf("Error recording event: %v", err)
	}
}
