//go:build !unix

package gateway

import (
	"os"
	"os/exec"
)

// detach is a no-op, process groups are a unix concept.
func detach(cmd *exec.Cmd) {}

type job struct {
	pid  int
	done chan Outcome
}

func newJob(cmd *exec.Cmd) *job {
	j := &job{pid: cmd.Process.Pid, done: make(chan Outcome, 1)}
	go func() {
		out := Outcome{Pid: j.pid, Background: true}
		if err := cmd.Wait(); err != nil && cmd.ProcessState == nil {
			out.Exited = true
			out.ExitCode = -1
		} else {
			fillExit(&out, cmd.ProcessState)
		}
		j.done <- out
	}()
	return j
}

func (j *job) poll() (Outcome, bool) {
	select {
	case out := <-j.done:
		return out, true
	default:
		return Outcome{}, false
	}
}

func fillExit(out *Outcome, state *os.ProcessState) {
	out.Exited = true
	out.ExitCode = state.ExitCode()
}
