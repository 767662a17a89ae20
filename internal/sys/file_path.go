// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	maxFileNameLen = 255
	maxFilePathLen = 4096
)

// ValidateFileName checks that name can be used as a single file name within
// a directory. It must not be empty, must not refer to the current or parent
// directory, must not contain path separators or control characters and must
// not exceed 255 bytes.
func ValidateFileName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidFileName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidFileName, name)
	case len(name) > maxFileNameLen:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidFileName,
			maxFileNameLen)
	case strings.ContainsRune(name, '/'):
		return fmt.Errorf("%w: %q contains path separator",
			ErrInvalidFileName, name)
	case strings.ContainsFunc(name, isControl):
		return fmt.Errorf("%w: %q contains control characters",
			ErrInvalidFileName, name)
	}

	return nil
}

// ValidateFilePath checks that path can be used as path to a file. It must not
// be empty, must not contain control characters and must not exceed 4096
// bytes. Parent directory elements are allowed.
func ValidateFilePath(path string) error {
	switch {
	case path == "":
		return fmt.Errorf("%w: %w", ErrInvalidFilePath, ErrEmptyPath)
	case len(path) > maxFilePathLen:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidFilePath,
			maxFilePathLen)
	case strings.ContainsFunc(path, isControl):
		return fmt.Errorf("%w: %q contains control characters",
			ErrInvalidFilePath, path)
	}

	for elem := range strings.SplitSeq(path, "/") {
		if len(elem) > maxFileNameLen {
			return fmt.Errorf("%w: element longer than %d bytes",
				ErrInvalidFilePath, maxFileNameLen)
		}
	}

	return nil
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// AbsolutePath returns the absolute path as resolved by [filepath.Abs].
//
// It returns [ErrEmptyPath] if the given path is empty.
func AbsolutePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return path, nil
}

// MustAbsolutePath calls [AbsolutePath] and panics in case of errors.
func MustAbsolutePath(path string) string {
	abs, err := AbsolutePath(path)
	if err != nil {
		panic(err)
	}

	return abs
}

// CheckRegularFile returns an error if path does not exist or is not a
// regular file.
func CheckRegularFile(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	return nil
}

// FileName is a [pflag.Value] for single file names validated with
// [ValidateFileName].
type FileName string

func (f *FileName) String() string {
	return string(*f)
}

func (f *FileName) Set(s string) error {
	err := ValidateFileName(s)
	if err != nil {
		return err
	}

	*f = FileName(s)

	return nil
}

func (*FileName) Type() string {
	return "filename"
}

// FilePath is a [pflag.Value] for file paths validated with
// [ValidateFilePath]. The path is made absolute when set, so it stays valid if
// the working directory changes afterwards.
type FilePath string

func (f *FilePath) String() string {
	return string(*f)
}

func (f *FilePath) Set(s string) error {
	err := ValidateFilePath(s)
	if err != nil {
		return err
	}

	path, err := AbsolutePath(s)
	if err != nil {
		return err
	}

	*f = FilePath(path)

	return nil
}

func (*FilePath) Type() string {
	return "path"
}
