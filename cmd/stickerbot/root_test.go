package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd, err := newRootCmd()
	require.NoError(t, err)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Version:    dev")
}

func TestRunCmd_InvalidToken(t *testing.T) {
	var out bytes.Buffer
	cmd, err := newRootCmd()
	require.NoError(t, err)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"run", "--token", "not-a-token", "--db", t.TempDir() + "/bot.db"})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot token")
}

func TestRunCmd_MissingConfigFile(t *testing.T) {
	cmd, err := newRootCmd()
	require.NoError(t, err)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", t.TempDir() + "/missing.yaml", "version"})

	require.Error(t, cmd.Execute())
}

func TestRunCmd_ScheduleFlags(t *testing.T) {
	tests := []struct {
		flag string
		key  string
	}{
		{flag: "--info-interval", key: "schedule.info_interval"},
		{flag: "--rate-window", key: "schedule.rate_window"},
		{flag: "--poll-interval", key: "schedule.poll_interval"},
		{flag: "--download-interval", key: "schedule.download_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			cmd, err := newRootCmd()
			require.NoError(t, err)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{"run", "--token", "123:abc", tt.flag, "-1s"})

			err = cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key+" must be positive")
		})
	}
}
