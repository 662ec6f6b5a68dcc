package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/nsh/core/config"
	"github.com/josephlewis42/nsh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgPath = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuiltinsCmd(t *testing.T) {
	out, err := execute(t, "builtins")
	require.NoError(t, err)

	assert.Contains(t, out, "exit")
	assert.Contains(t, out, "history [-n COUNT]")
	assert.Contains(t, out, "!!")
	assert.Contains(t, out, "!N")
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.ConfigurationName))

	_, err = execute(t, "init", dir)
	assert.Error(t, err, "existing configuration isn't overwritten")
}

func TestEventsReportCmd(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "init", dir)
	require.NoError(t, err)

	fd, err := os.Create(filepath.Join(dir, config.AppLogName))
	require.NoError(t, err)
	session := logger.NewJSONLinesLogRecorder(fd).NewSession()
	require.NoError(t, session.Record(&logger.RunCommand{Command: []string{"ls"}, Source: logger.SourceFresh}))
	require.NoError(t, session.Record(&logger.HistoryMiss{Shortcut: "!4"}))
	require.NoError(t, session.Record(&logger.SessionEnd{Reason: "eof", Commands: 1}))
	require.NoError(t, fd.Close())

	out, err := execute(t, "events", "report", "--config", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "log_entries: 3")
	assert.Contains(t, out, "ls: 1")
	assert.Contains(t, out, "!4")
	assert.Contains(t, out, "eof: 1")
}

func TestEventsReportCmd_NoConfig(t *testing.T) {
	_, err := execute(t, "events", "report")
	assert.Error(t, err)
}
