// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// StandardProgramDirs are searched by [LookupProgram] if a program is not
// found in PATH.
func StandardProgramDirs() []string {
	return []string{
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
		"/usr/libexec",
		"/opt/homebrew/bin",
		"/opt/local/bin",
	}
}

// LookupProgram returns the absolute path of an executable program.
//
// If explicit is not empty, it is the only candidate and must be an executable
// regular file. Otherwise, name is looked up in PATH first and then in the
// given dirs in order. [ErrProgramNotFound] is returned if no candidate is
// found.
func LookupProgram(explicit, name string, dirs []string) (string, error) {
	if explicit != "" {
		path, err := AbsolutePath(explicit)
		if err != nil {
			return "", err
		}

		err = checkExecutable(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrProgramNotFound, err)
		}

		return path, nil
	}

	path, err := exec.LookPath(name)
	if err == nil {
		return AbsolutePath(path)
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if checkExecutable(path) == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrProgramNotFound, name)
}

func checkExecutable(path string) error {
	err := CheckRegularFile(path)
	if err != nil {
		return err
	}

	err = unix.Access(path, unix.X_OK)
	if err != nil {
		return fmt.Errorf("%s: %w", path, errors.Join(ErrNotExecutable, err))
	}

	return nil
}
