package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report summarizes an event log.
type Report struct {
	LogEntries int        `json:"log_entries"`
	Sessions   StrCounter `json:"sessions"`

	RunCommand    RunCommandReport `json:"run_command"`
	SpawnFailures *PathCounter     `json:"spawn_failures"`
	HistoryMiss   StrCounter       `json:"history_miss"`
	HistoryFull   int              `json:"history_full"`
	JobExit       StrCounter       `json:"job_exit"`
	SessionEnd    SessionEndReport `json:"session_end"`
	Invalid       StrCounter       `json:"invalid_entries"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		SpawnFailures: NewPathCounter("command", "error"),
	}
}

// Update adds the entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *SpawnFailure:
		name := ""
		if len(event.Command) > 0 {
			name = event.Command[0]
		}
		r.SpawnFailures.Increment(name, event.ErrorMessage)
	case *HistoryMiss:
		r.HistoryMiss.Increment(event.Shortcut)
	case *HistoryFull:
		r.HistoryFull++
	case *JobExit:
		r.JobExit.Increment(event.Status)
	case *SessionEnd:
		r.SessionEnd.update(event)
	default:
		r.Invalid.Increment(fmt.Sprintf("%T", event))
	}
}

type RunCommandReport struct {
	// Name of the program run.
	CommandNames StrCounter `json:"command_names"`
	// Where the line came from: fresh, last or indexed.
	Sources    StrCounter `json:"sources"`
	Background int        `json:"background"`
	Failed     int        `json:"failed"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.Sources.Increment(string(rc.Source))
	if rc.Background {
		r.Background++
	}
	if rc.ExitCode != 0 {
		r.Failed++
	}
}

type SessionEndReport struct {
	Reasons  StrCounter `json:"reasons"`
	Commands int        `json:"commands"`
}

func (r *SessionEndReport) update(se *SessionEnd) {
	r.Reasons.Increment(se.Reason)
	r.Commands += se.Commands
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// Len returns the number of distinct keys.
func (s *StrCounter) Len() int {
	return len(s.internal)
}

// MarshalJSON implements json.Marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

// NewPathCounter creates a counter keyed by a tuple of the named columns.
func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given tuple.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements json.Marshaler, tuples are sorted by count.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
