// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/qemuspace/internal/qemu"
	"github.com/aibor/qemuspace/internal/sys"
	"github.com/aibor/qemuspace/internal/workspace"
	"github.com/spf13/cobra"
)

const (
	exitCodeError = 1
	exitCodeUsage = 2
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newRunCommand(global *globalFlags, cfg IO) *cobra.Command {
	flags := newRunFlags()

	cmd := &cobra.Command{
		Use:   "run NAME [flags] [-- QEMU_ARGS...]",
		Short: "Run the VM of a workspace",
		Long: `Run the VM of the workspace NAME of the selected architecture.

The workspace must contain the disk image. Arguments after "--" are passed to
QEMU verbatim. Flags may also be given in the file ` + localConfigFile + `, one
argument per line, and in the environment variable ` + envArgsVar + `.`,
		Example: `  qemuspace run dev
  qemuspace -a aarch64 run dev -K 6.9 -A nokaslr --dry-run
  qemuspace run dev --smp 4 --ram 8 -- -d guest_errors`,
		Args: func(cmd *cobra.Command, args []string) error {
			positional := args
			extra := []string{}

			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				positional, extra = args[:dash], args[dash:]
			}

			if len(positional) != 1 {
				return usageError(cmd, "args", fmt.Errorf(
					"%w: expected workspace name, got %q",
					ErrUnexpectedArgs, positional))
			}

			err := sys.ValidateFileName(positional[0])
			if err != nil {
				return usageError(cmd, "workspace name", err)
			}

			flags.name = positional[0]
			flags.extraArgs = extra

			return nil
		},
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			err := applyConfigSources(cmd.Flags())
			if err != nil {
				return usageError(cmd, "config args", err)
			}

			// Config sources may enable debug logging.
			setupLogging(cfg.Stderr, global.debug)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), global, flags, cfg)
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newQemuCommand(
	builder qemu.Builder,
	ws *workspace.Workspace,
	flags *runFlags,
) (*qemu.Command, error) {
	arch := builder.Arch()

	qemuBin, err := sys.LookupProgram(
		string(flags.qemuPath),
		arch.QemuExecutable(),
		sys.StandardProgramDirs(),
	)
	if err != nil {
		return nil, fmt.Errorf("qemu binary: %w", err)
	}

	slog.Debug("Found QEMU binary", slog.String("path", qemuBin))

	disk, err := ws.Disk(string(flags.diskName))
	if err != nil {
		return nil, err
	}

	kernel, err := ws.Kernel(string(flags.kernel))
	if err != nil {
		return nil, err
	}

	firmware, err := ws.Firmware(string(flags.firmware))
	if err != nil {
		return nil, err
	}

	slog.Debug("Found images",
		slog.String("disk", disk),
		slog.String("kernel", kernel),
		slog.String("firmware", firmware),
	)

	qemuSpec := flags.commandSpec(qemuBin, disk, kernel, firmware)

	qemuSpec.AddDefaults(builder)

	cmd, err := qemu.NewCommand(builder, qemuSpec)
	if err != nil {
		return nil, fmt.Errorf("new qemu command: %w", err)
	}

	return cmd, nil
}

func run(ctx context.Context, global *globalFlags, flags *runFlags, cfg IO) error {
	builder, err := qemu.BuilderFor(global.arch)
	if err != nil {
		return err
	}

	ws, err := workspace.Resolve(global.workspaces, builder.Arch(), flags.name)
	if err != nil {
		return err
	}

	err = ws.Enter()
	if err != nil {
		return err
	}

	slog.Debug("Entered workspace", slog.String("dir", ws.Dir))

	cmd, err := newQemuCommand(builder, ws, flags)
	if err != nil {
		return err
	}

	slog.Debug("QEMU command", slog.String("command", cmd.String()))

	if flags.dryRun {
		_, err := fmt.Fprintln(cfg.Stdout, cmd.String())
		return err //nolint:wrapcheck
	}

	return cmd.Run(ctx, cfg.Stdin, cfg.Stdout, cfg.Stderr)
}

func handleRunError(err error) int {
	if err == nil {
		return 0
	}

	// Usage errors have been printed with the usage already.
	if errors.Is(err, &ParseArgsError{}) {
		return exitCodeUsage
	}

	// QEMU prints its own errors, so just pass on its exit code.
	var qemuErr *qemu.CommandError
	if errors.As(err, &qemuErr) && qemuErr.ExitCode > 0 {
		slog.Debug("QEMU exited with error", slog.Any("error", err))
		return qemuErr.ExitCode
	}

	slog.Error(err.Error())

	return exitCodeError
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	// First element is the program name.
	cliArgs := []string{}
	if len(args) > 1 {
		cliArgs = args[1:]
	}

	root := newRootCommand(cfg)
	root.SetArgs(cliArgs)

	err := root.ExecuteContext(ctx)

	return handleRunError(err)
}
