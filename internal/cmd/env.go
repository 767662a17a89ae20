// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/pflag"
)

const (
	envArgsVar      = "QEMUSPACE_ARGS"
	localConfigFile = ".qemuspace-args"
)

// EnvArgs returns qemuspace arguments from the environment. The value is split
// like a POSIX shell would do.
func EnvArgs() ([]string, error) {
	args, err := shlex.Split(os.Getenv(envArgsVar))
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", envArgsVar, err)
	}

	return args, nil
}

// LocalConfigArgs returns qemuspace arguments from a local config file.
//
// The file's format is one argument per line. Environment variables may be used
// and are expanded with [os.ExpandEnv].
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	expandedConf := os.ExpandEnv(string(conf))
	for line := range strings.SplitSeq(expandedConf, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			args = append(args, line)
		}
	}

	return args, nil
}

// ApplyConfigArgs parses args into the flags of flagSet that have not been set
// yet. Values for flags that have been set already are ignored, so earlier
// sources take precedence. Only flags are allowed in args.
func ApplyConfigArgs(flagSet *pflag.FlagSet, args []string) error {
	if len(args) == 0 {
		return nil
	}

	configFlags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	configFlags.SetOutput(io.Discard)

	flagSet.VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			configFlags.AddFlag(flag)
			return
		}

		configFlags.AddFlag(&pflag.Flag{
			Name:        flag.Name,
			Shorthand:   flag.Shorthand,
			Value:       ignoredValue(flag.Value.Type()),
			NoOptDefVal: flag.NoOptDefVal,
		})
	})

	err := configFlags.Parse(args)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if configFlags.NArg() > 0 {
		return fmt.Errorf("%w: %q", ErrUnexpectedArgs, configFlags.Args())
	}

	return nil
}

// ignoredValue is a [pflag.Value] that discards everything set.
type ignoredValue string

func (ignoredValue) String() string {
	return ""
}

func (ignoredValue) Set(string) error {
	return nil
}

func (v ignoredValue) Type() string {
	return string(v)
}
