// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import "errors"

var (
	// ErrArchNotSupported is returned if the requested architecture is not
	// supported.
	ErrArchNotSupported = errors.New("unsupported architecture")

	// ErrEmptyPath is returned if an empty path is given.
	ErrEmptyPath = errors.New("path must not be empty")

	// ErrInvalidFileName is returned if a name is not usable as a single file
	// name.
	ErrInvalidFileName = errors.New("invalid file name")

	// ErrInvalidFilePath is returned if a path is not usable as file path.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrNotRegularFile is returned if a path exists but is not a regular
	// file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrNotExecutable is returned if a file is not executable.
	ErrNotExecutable = errors.New("not executable")

	// ErrProgramNotFound is returned if a program can not be found.
	ErrProgramNotFound = errors.New("program not found")
)
