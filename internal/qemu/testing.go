// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "github.com/stretchr/testify/assert"

// ArgumentValueAssertionFunc returns an [assert.ComparisonAssertionFunc] that
// can be used to assert the value of the Argument with the given name.
func ArgumentValueAssertionFunc(
	name string,
	assertion assert.ComparisonAssertionFunc,
) assert.ComparisonAssertionFunc {
	return func(t assert.TestingT, arg1, arg2 any, arg3 ...any) bool {
		args, ok := arg1.([]Argument)
		if !assert.True(t, ok, "first argument should be []Argument") {
			return false
		}

		for _, arg := range args {
			if name != arg.name {
				continue
			}

			return assertion(t, arg.value, arg2, arg3...)
		}

		return assert.Fail(t, "Argument not found", name)
	}
}

// CountArgument returns how often the argument with the given name and value
// is present in the built argument strings.
func CountArgument(args []string, name, value string) int {
	var count int

	for idx, arg := range args {
		if arg != "-"+name {
			continue
		}

		if value == "" || idx+1 < len(args) && args[idx+1] == value {
			count++
		}
	}

	return count
}
