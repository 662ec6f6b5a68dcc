package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestJSONLinesLogRecorder(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewJSONLinesLogRecorder(buf)
	l.now = fixedClock

	session := l.Sessionless()
	require.NoError(t, session.Record(&RunCommand{
		Command:      []string{"ls", "-la"},
		Source:       SourceIndexed,
		HistoryIndex: 3,
		Pid:          42,
	}))
	require.NoError(t, session.Record(&HistoryMiss{Shortcut: "!9"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{
		"timestamp_micros": 1136171045000000,
		"run_command": {"command": ["ls", "-la"], "source": "indexed", "history_index": 3, "pid": 42, "exit_code": 0}
	}`, lines[0])
	assert.JSONEq(t, `{"timestamp_micros": 1136171045000000, "history_miss": {"shortcut": "!9"}}`, lines[1])
}

func TestNewSession(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewJSONLinesLogRecorder(buf)

	first, second := l.NewSession(), l.NewSession()
	assert.NotEmpty(t, first.SessionID())
	assert.NotEqual(t, first.SessionID(), second.SessionID())

	require.NoError(t, first.Record(&SessionEnd{Reason: "exit", Commands: 2}))

	var le LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &le))
	assert.Equal(t, first.SessionID(), le.SessionID)
	assert.Equal(t, &SessionEnd{Reason: "exit", Commands: 2}, le.GetLogType())
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop().NewSession().Record(&JobExit{Pid: 1, Status: "exit status 0"}))
}

func TestReport(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJSONLinesLogRecorder(buf).NewSession()

	events := []LogType{
		&RunCommand{Command: []string{"echo", "hi"}, Source: SourceFresh},
		&RunCommand{Command: []string{"echo", "hi"}, Source: SourceLast},
		&RunCommand{Command: []string{"sleep", "5"}, Source: SourceFresh, Background: true},
		&RunCommand{Command: []string{"false"}, Source: SourceFresh, ExitCode: 1},
		&SpawnFailure{Command: []string{"nope"}, ErrorMessage: "nope: command not found"},
		&SpawnFailure{Command: []string{"nope"}, ErrorMessage: "nope: command not found"},
		&HistoryMiss{Shortcut: "!7"},
		&HistoryFull{Line: "ls", Capacity: 1},
		&JobExit{Pid: 12, Status: "exit status 0"},
		&SessionEnd{Reason: "exit", Commands: 4},
	}
	for _, event := range events {
		require.NoError(t, session.Record(event))
	}

	report := NewReport()
	require.NoError(t, ReadJSONLinesLog(buf, report.Update))

	assert.Equal(t, len(events), report.LogEntries)
	assert.Equal(t, 1, report.Sessions.Len())
	assert.Equal(t, 2, report.RunCommand.CommandNames.Get("echo"))
	assert.Equal(t, 3, report.RunCommand.Sources.Get("fresh"))
	assert.Equal(t, 1, report.RunCommand.Sources.Get("last"))
	assert.Equal(t, 1, report.RunCommand.Background)
	assert.Equal(t, 1, report.RunCommand.Failed)
	assert.Equal(t, 2, report.SpawnFailures.Get("nope", "nope: command not found"))
	assert.Equal(t, 1, report.HistoryMiss.Get("!7"))
	assert.Equal(t, 1, report.HistoryFull)
	assert.Equal(t, 1, report.JobExit.Get("exit status 0"))
	assert.Equal(t, 4, report.SessionEnd.Commands)
	assert.Equal(t, 0, report.Invalid.Len())

	_, err := json.Marshal(report)
	assert.NoError(t, err)
}

func TestReport_InvalidEntries(t *testing.T) {
	report := NewReport()
	require.NoError(t, ReadJSONLinesLog(strings.NewReader(`{"timestamp_micros": 1}`+"\n"), report.Update))

	assert.Equal(t, 1, report.Invalid.Get("<nil>"))
}

func TestPathCounter_MarshalJSON(t *testing.T) {
	ctr := NewPathCounter("command", "error")
	ctr.Increment("a", "x")
	ctr.Increment("b", "y")
	ctr.Increment("b", "y")

	out, err := json.Marshal(ctr)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"count": 2, "event": {"command": "b", "error": "y"}},
		{"count": 1, "event": {"command": "a", "error": "x"}}
	]`, string(out))
}
