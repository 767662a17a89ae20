// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"testing"

	"github.com/aibor/qemuspace/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArch(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    sys.Arch
		expectedErr error
	}{
		{
			name:     "x86_64",
			input:    "x86_64",
			expected: sys.X86_64,
		},
		{
			name:     "amd64 alias",
			input:    "amd64",
			expected: sys.X86_64,
		},
		{
			name:     "aarch64",
			input:    "aarch64",
			expected: sys.AArch64,
		},
		{
			name:     "arm64 alias",
			input:    "arm64",
			expected: sys.AArch64,
		},
		{
			name:     "riscv64",
			input:    "riscv64",
			expected: sys.RISCV64,
		},
		{
			name:        "empty",
			expectedErr: sys.ErrArchNotSupported,
		},
		{
			name:        "unknown",
			input:       "sparc64",
			expectedErr: sys.ErrArchNotSupported,
		},
		{
			name:        "lookup injection",
			input:       "aarch64; rm -rf /",
			expectedErr: sys.ErrArchNotSupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arch, err := sys.ParseArch(tt.input)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, arch)
		})
	}
}

func TestArch_Set(t *testing.T) {
	arch := sys.X86_64

	require.NoError(t, arch.Set("arm64"))
	assert.Equal(t, sys.AArch64, arch)

	err := arch.Set("mips")
	require.ErrorIs(t, err, sys.ErrArchNotSupported)
	assert.ErrorContains(t, err, `unsupported architecture: "mips"`)
	assert.Equal(t, sys.AArch64, arch, "value must not change on error")
}

func TestArch_QemuExecutable(t *testing.T) {
	for _, arch := range sys.Archs() {
		assert.Equal(t, "qemu-system-"+arch.String(), arch.QemuExecutable())
	}
}

func TestArch_KVMAvailable(t *testing.T) {
	for _, arch := range sys.Archs() {
		if arch.IsNative() {
			continue
		}

		assert.False(t, arch.KVMAvailable(), arch.String())
	}
}
