// Package gatewaytest provides a fake gateway.Executor for shell tests.
package gatewaytest

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/josephlewis42/nsh/core/gateway"
)

// Call is one Execute invocation seen by a Recorder.
type Call struct {
	Argv       []string
	Background bool
}

func (c Call) String() string {
	if c.Background {
		return strings.Join(c.Argv, " ") + " &"
	}
	return strings.Join(c.Argv, " ")
}

// Recorder records calls instead of spawning anything. Pids are handed out
// sequentially starting at FirstPid.
type Recorder struct {
	// Out, if set, receives a line for every executed command so golden
	// transcripts show where commands ran.
	Out io.Writer
	// Missing lists program names that fail as if they weren't on the PATH.
	Missing map[string]bool
	// ExitCodes maps program names to the exit code they report.
	ExitCodes map[string]int
	// FirstPid is the pid of the first child, defaults to 1000.
	FirstPid int

	Calls []Call

	nextPid int
	pending []gateway.Outcome
}

var _ gateway.Executor = (*Recorder)(nil)

// Execute implements gateway.Executor.
func (r *Recorder) Execute(argv []string, background bool) (gateway.Outcome, error) {
	if len(argv) == 0 {
		return gateway.Outcome{}, gateway.ErrNoCommand
	}

	r.Calls = append(r.Calls, Call{Argv: append([]string(nil), argv...), Background: background})

	if r.Missing[argv[0]] {
		return gateway.Outcome{}, &gateway.SpawnError{Name: argv[0], Err: exec.ErrNotFound}
	}

	if r.nextPid == 0 {
		r.nextPid = r.FirstPid
		if r.nextPid == 0 {
			r.nextPid = 1000
		}
	}
	pid := r.nextPid
	r.nextPid++

	if r.Out != nil {
		fmt.Fprintf(r.Out, "[exec %s]\n", strings.Join(argv, " "))
	}

	code := r.ExitCodes[argv[0]]
	if background {
		r.pending = append(r.pending, gateway.Outcome{Pid: pid, Background: true, Exited: true, ExitCode: code})
		return gateway.Outcome{Pid: pid, Background: true}, nil
	}
	return gateway.Outcome{Pid: pid, Exited: true, ExitCode: code}, nil
}

// Reap implements gateway.Executor, every background call finishes by the
// next reap.
func (r *Recorder) Reap() []gateway.Outcome {
	out := r.pending
	r.pending = nil
	return out
}

// Commands returns the recorded calls as command lines.
func (r *Recorder) Commands() []string {
	var out []string
	for _, c := range r.Calls {
		out = append(out, c.String())
	}
	return out
}
