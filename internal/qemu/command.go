// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"time"

	"github.com/kballard/go-shellquote"
	"golang.org/x/sys/unix"
)

// terminateGracePeriod is the time QEMU is given to exit after SIGTERM
// before it is killed.
const terminateGracePeriod = 5 * time.Second

// Command is a single QEMU command that can be run.
type Command struct {
	executable string
	args       []string
}

// NewCommand creates a new [Command] from the given [CommandSpec], validated
// and built by the given [Builder].
func NewCommand(builder Builder, spec CommandSpec) (*Command, error) {
	err := builder.Validate(&spec)
	if err != nil {
		return nil, err
	}

	args, err := BuildArgumentStrings(builder.Arguments(&spec))
	if err != nil {
		return nil, fmt.Errorf("build arguments: %w", err)
	}

	return &Command{
		executable: spec.Executable,
		args:       slices.Concat(args, spec.ExtraArgs),
	}, nil
}

// Executable returns the path of the QEMU binary.
func (c *Command) Executable() string {
	return c.executable
}

// Args returns the arguments the QEMU binary is called with.
func (c *Command) Args() []string {
	return slices.Clone(c.args)
}

// String returns the complete command line quoted for POSIX shells.
func (c *Command) String() string {
	return shellquote.Join(append([]string{c.executable}, c.args...)...)
}

// Run runs the QEMU command in the foreground with the given standard streams
// and waits for it to exit.
//
// If the context is done before, QEMU is terminated. It returns a
// [CommandError] with the exit code of QEMU if it did not exit with 0.
func (c *Command) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) error {
	cmd := exec.CommandContext(ctx, c.executable, c.args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(unix.SIGTERM)
	}
	cmd.WaitDelay = terminateGracePeriod

	err := cmd.Run()
	if err == nil {
		return nil
	}

	cmdErr := &CommandError{Err: err, ExitCode: -1}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	return cmdErr
}
