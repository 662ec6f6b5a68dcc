//go:build unix

package gateway

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// detach moves the child into its own process group so terminal signals
// aimed at the shell don't reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

type job struct {
	pid     int
	process *os.Process
}

func newJob(cmd *exec.Cmd) *job {
	return &job{pid: cmd.Process.Pid, process: cmd.Process}
}

// poll checks whether the child exited without blocking. Once it returns
// ok the child has been collected and must not be polled again.
func (j *job) poll() (Outcome, bool) {
	var status unix.WaitStatus
	wpid, err := unix.Wait4(j.pid, &status, unix.WNOHANG, nil)
	switch {
	case err == unix.EINTR:
		return Outcome{}, false
	case err != nil:
		// ECHILD: someone else collected it, the status is lost.
		j.process.Release()
		return Outcome{Pid: j.pid, Background: true, Exited: true, ExitCode: -1}, true
	case wpid != j.pid:
		return Outcome{}, false
	}

	j.process.Release()

	out := Outcome{Pid: j.pid, Background: true, Exited: true, ExitCode: status.ExitStatus()}
	if status.Signaled() {
		out.Signal = status.Signal().String()
	}
	return out, true
}

func fillExit(out *Outcome, state *os.ProcessState) {
	out.Exited = true
	out.ExitCode = state.ExitCode()
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		out.Signal = ws.Signal().String()
	}
}
