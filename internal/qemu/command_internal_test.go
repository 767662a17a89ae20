// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellCommand(script string) *Command {
	return &Command{
		executable: "/bin/sh",
		args:       []string{"-c", script},
	}
}

func TestCommand_Run(t *testing.T) {
	tests := []struct {
		name             string
		script           string
		stdin            string
		expectedStdout   string
		expectedStderr   string
		expectedExitCode int
	}{
		{
			name:   "success",
			script: "exit 0",
		},
		{
			name:             "exit code",
			script:           "exit 3",
			expectedExitCode: 3,
		},
		{
			name:           "streams",
			script:         "read line; echo out $line; echo err >&2",
			stdin:          "in\n",
			expectedStdout: "out in\n",
			expectedStderr: "err\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := shellCommand(tt.script).Run(
				t.Context(),
				strings.NewReader(tt.stdin),
				&stdout,
				&stderr,
			)

			if tt.expectedExitCode == 0 {
				require.NoError(t, err)
			} else {
				var cmdErr *CommandError
				require.ErrorAs(t, err, &cmdErr)
				assert.Equal(t, tt.expectedExitCode, cmdErr.ExitCode)
			}

			assert.Equal(t, tt.expectedStdout, stdout.String())
			assert.Equal(t, tt.expectedStderr, stderr.String())
		})
	}
}

func TestCommand_RunCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := shellCommand("sleep 10").Run(ctx, nil, nil, nil)

	require.ErrorIs(t, err, &CommandError{})
	assert.Less(t, time.Since(start), terminateGracePeriod)
}

func TestCommand_RunMissingExecutable(t *testing.T) {
	cmd := &Command{executable: "/nonexistent/qemu-system-x86_64"}

	err := cmd.Run(t.Context(), nil, nil, nil)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, -1, cmdErr.ExitCode)
}
