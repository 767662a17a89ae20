// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedArgs is returned if positional arguments are found where
	// only flags are allowed.
	ErrUnexpectedArgs = errors.New("unexpected positional arguments")

	// ErrUnknownCommand is returned for an unknown sub command.
	ErrUnknownCommand = errors.New("unknown command")
)

// ParseArgsError wraps errors that occur during argument parsing. It is a
// usage error.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	if e.msg == "" {
		return e.err.Error()
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
