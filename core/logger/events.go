package logger

// Source says where a dispatched command line came from.
type Source string

const (
	SourceFresh   Source = "fresh"
	SourceLast    Source = "last"
	SourceIndexed Source = "indexed"
)

// LogEntry is one line of the event log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand   *RunCommand   `json:"run_command,omitempty"`
	SpawnFailure *SpawnFailure `json:"spawn_failure,omitempty"`
	HistoryMiss  *HistoryMiss  `json:"history_miss,omitempty"`
	HistoryFull  *HistoryFull  `json:"history_full,omitempty"`
	JobExit      *JobExit      `json:"job_exit,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
}

// GetLogType returns the event held by the entry, nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.SpawnFailure != nil:
		return le.SpawnFailure
	case le.HistoryMiss != nil:
		return le.HistoryMiss
	case le.HistoryFull != nil:
		return le.HistoryFull
	case le.JobExit != nil:
		return le.JobExit
	case le.SessionEnd != nil:
		return le.SessionEnd
	default:
		return nil
	}
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	attach(le *LogEntry)
}

// RunCommand is logged when a command is handed to the gateway.
type RunCommand struct {
	Command      []string `json:"command"`
	Background   bool     `json:"background,omitempty"`
	Source       Source   `json:"source"`
	HistoryIndex int      `json:"history_index,omitempty"`
	Pid          int      `json:"pid,omitempty"`
	ExitCode     int      `json:"exit_code"`
}

func (e *RunCommand) attach(le *LogEntry) { le.RunCommand = e }

// SpawnFailure is logged when a child couldn't be created.
type SpawnFailure struct {
	Command      []string `json:"command"`
	ErrorMessage string   `json:"error_message"`
}

func (e *SpawnFailure) attach(le *LogEntry) { le.SpawnFailure = e }

// HistoryMiss is logged when a shortcut names an entry that doesn't exist.
type HistoryMiss struct {
	Shortcut string `json:"shortcut"`
}

func (e *HistoryMiss) attach(le *LogEntry) { le.HistoryMiss = e }

// HistoryFull is logged when a line couldn't be recorded.
type HistoryFull struct {
	Line     string `json:"line"`
	Capacity int    `json:"capacity"`
}

func (e *HistoryFull) attach(le *LogEntry) { le.HistoryFull = e }

// JobExit is logged when a background child is reaped.
type JobExit struct {
	Pid    int    `json:"pid"`
	Status string `json:"status"`
}

func (e *JobExit) attach(le *LogEntry) { le.JobExit = e }

// SessionEnd is logged when the input loop stops.
type SessionEnd struct {
	Reason   string `json:"reason"`
	Commands int    `json:"commands"`
}

func (e *SessionEnd) attach(le *LogEntry) { le.SessionEnd = e }
