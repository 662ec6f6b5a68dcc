// Package gateway spawns the child processes a shell session dispatches.
package gateway

import (
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"sync"

	"github.com/josephlewis42/nsh/core/vio"
)

// ErrNoCommand is returned when Execute is given an empty argument vector.
var ErrNoCommand = errors.New("no command given")

// Outcome describes a spawned child.
type Outcome struct {
	// Pid of the child.
	Pid int
	// Background is set for children the caller did not wait on.
	Background bool
	// Exited is set once the child terminated, ExitCode is only valid then.
	Exited   bool
	ExitCode int
	// Signal holds the name of the terminating signal, if any.
	Signal string
}

// Status renders the exit state the way the shell reports it.
func (o Outcome) Status() string {
	switch {
	case !o.Exited:
		return "running"
	case o.Signal != "":
		return fmt.Sprintf("signal: %s", o.Signal)
	default:
		return fmt.Sprintf("exit status %d", o.ExitCode)
	}
}

// SpawnError is returned if the child could not be created at all.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	if errors.Is(e.Err, exec.ErrNotFound) {
		return fmt.Sprintf("%s: command not found", e.Name)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Executor is the boundary between the shell and the operating system.
type Executor interface {
	// Execute spawns argv[0] with the remaining arguments. Foreground children
	// are waited on, background children are detached and reported right
	// after they start.
	Execute(argv []string, background bool) (Outcome, error)

	// Reap collects background children that exited since the last call
	// without blocking.
	Reap() []Outcome
}

// OS executes real programs found on the PATH.
type OS struct {
	streams vio.VIO

	mu sync.Mutex
	// jobs holds the background children that haven't been reaped.
	jobs map[int]*job
}

var _ Executor = (*OS)(nil)

// NewOS creates a gateway whose children inherit the given streams.
func NewOS(streams vio.VIO) *OS {
	return &OS{
		streams: streams,
		jobs:    make(map[int]*job),
	}
}

// Execute implements Executor.Execute.
func (g *OS) Execute(argv []string, background bool) (Outcome, error) {
	if len(argv) == 0 {
		return Outcome{}, ErrNoCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = g.streams.Stdout()
	cmd.Stderr = g.streams.Stderr()

	if background {
		// Background children get /dev/null for stdin so they never compete
		// with the prompt for terminal input.
		detach(cmd)
		return g.startBackground(cmd)
	}

	if stdin, ok := vio.File(g.streams.Stdin()); ok {
		cmd.Stdin = stdin
	}

	if err := cmd.Start(); err != nil {
		return Outcome{}, &SpawnError{Name: argv[0], Err: err}
	}

	out := Outcome{Pid: cmd.Process.Pid}
	err := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
	default:
		// The child ran but copying its output failed.
		return out, fmt.Errorf("%s: %w", argv[0], err)
	}

	fillExit(&out, cmd.ProcessState)
	return out, nil
}

func (g *OS) startBackground(cmd *exec.Cmd) (Outcome, error) {
	if err := cmd.Start(); err != nil {
		return Outcome{}, &SpawnError{Name: cmd.Args[0], Err: err}
	}

	j := newJob(cmd)
	out := Outcome{Pid: j.pid, Background: true}

	// A child that failed straight away is reported now instead of at the
	// next prompt.
	if exited, ok := j.poll(); ok {
		return exited, nil
	}

	g.mu.Lock()
	g.jobs[j.pid] = j
	g.mu.Unlock()

	return out, nil
}

// Reap implements Executor.Reap.
func (g *OS) Reap() []Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []Outcome
	for pid, j := range g.jobs {
		if exited, ok := j.poll(); ok {
			delete(g.jobs, pid)
			out = append(out, exited)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Pid < out[j].Pid })
	return out
}

// Running returns the number of background children not reaped yet.
func (g *OS) Running() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.jobs)
}
