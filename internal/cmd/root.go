// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const name = "qemuspace"

// Set on build.
var version = "dev"

func newRootCommand(cfg IO) *cobra.Command {
	global := newGlobalFlags()

	root := &cobra.Command{
		Use:     name,
		Short:   "Run QEMU virtual machines from named workspaces",
		Version: buildVersion(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(cmd, "", fmt.Errorf("%w %q", ErrUnknownCommand, args[0]))
			}

			return cmd.Help()
		},
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(cfg.Stderr, global.debug)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, "flag parse", err)
	})

	global.register(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(global, cfg),
		newListCommand(global, cfg),
	)

	return root
}

// applyConfigSources applies the local config file arguments and then the
// environment arguments to the flags not given on the command line. The
// sources hold run flags, so it must only be used for the run command.
func applyConfigSources(flagSet *pflag.FlagSet) error {
	localArgs, err := LocalConfigArgs(os.DirFS("."), localConfigFile)
	if err != nil {
		return fmt.Errorf("%s: %w", localConfigFile, err)
	}

	err = ApplyConfigArgs(flagSet, localArgs)
	if err != nil {
		return fmt.Errorf("%s: %w", localConfigFile, err)
	}

	envArgs, err := EnvArgs()
	if err != nil {
		return err
	}

	err = ApplyConfigArgs(flagSet, envArgs)
	if err != nil {
		return fmt.Errorf("%s: %w", envArgsVar, err)
	}

	return nil
}

// usageError fails like flag does. It prints the error first and then usage.
func usageError(cmd *cobra.Command, msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}

	cmd.PrintErrln("Error:", err.Error())
	cmd.PrintErrln(cmd.UsageString())

	return err
}

func buildVersion() string {
	if version != "dev" {
		return version
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok || buildInfo.Main.Version == "" ||
		buildInfo.Main.Version == "(devel)" {
		return version
	}

	return buildInfo.Main.Version
}
