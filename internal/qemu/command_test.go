// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"strings"
	"testing"

	"github.com/aibor/qemuspace/internal/qemu"
	"github.com/aibor/qemuspace/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func aarch64Spec() qemu.CommandSpec {
	return qemu.CommandSpec{
		Executable:    "/usr/bin/qemu-system-aarch64",
		Machine:       "virt",
		CPU:           "max",
		SMP:           4,
		MemoryGB:      8,
		Disk:          "disk.img",
		Kernel:        "Image-6.9",
		KernelArgs:    "nokaslr",
		SSHPort:       2222,
		TransportType: qemu.TransportTypeMMIO,
		NoKVM:         true,
		Debug:         true,
		ExtraArgs:     []string{"-d", "guest_errors"},
	}
}

func newBuilder(t *testing.T, arch sys.Arch) qemu.Builder {
	t.Helper()

	builder, err := qemu.BuilderFor(arch)
	require.NoError(t, err)

	return builder
}

func TestNewCommand(t *testing.T) {
	cmd, err := qemu.NewCommand(newBuilder(t, sys.AArch64), aarch64Spec())
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/qemu-system-aarch64", cmd.Executable())
	assert.Equal(t, []string{
		"-machine", "virt",
		"-cpu", "max",
		"-smp", "4",
		"-m", "8G",
		"-nographic",
		"-drive", "if=none,id=disk0,file=disk.img",
		"-device", "virtio-blk-device,drive=disk0",
		"-netdev", "user,id=net0,hostfwd=tcp::2222-:22",
		"-device", "virtio-net-device,netdev=net0",
		"-device", "virtio-rng-device",
		"-kernel", "Image-6.9",
		"-append", "console=ttyAMA0 root=/dev/vda rw nokaslr",
		"-s",
		"-S",
		"-d", "guest_errors",
	}, cmd.Args())
}

func TestNewCommand_OptionsOnce(t *testing.T) {
	cmd, err := qemu.NewCommand(newBuilder(t, sys.AArch64), aarch64Spec())
	require.NoError(t, err)

	args := cmd.Args()

	for _, expected := range []struct{ name, value string }{
		{"smp", "4"},
		{"m", "8G"},
		{"netdev", "user,id=net0,hostfwd=tcp::2222-:22"},
		{"kernel", "Image-6.9"},
		{"drive", "if=none,id=disk0,file=disk.img"},
		{"s", ""},
		{"S", ""},
	} {
		assert.Equal(t, 1, qemu.CountArgument(args, expected.name, expected.value),
			"-%s %s", expected.name, expected.value)
	}
}

func TestNewCommand_Errors(t *testing.T) {
	t.Run("invalid spec", func(t *testing.T) {
		spec := aarch64Spec()
		spec.SMP = 0

		_, err := qemu.NewCommand(newBuilder(t, sys.AArch64), spec)
		require.ErrorIs(t, err, &qemu.ArgumentError{})
	})

	t.Run("aarch64 without kernel and firmware", func(t *testing.T) {
		spec := aarch64Spec()
		spec.Kernel = ""
		spec.KernelArgs = ""

		_, err := qemu.NewCommand(newBuilder(t, sys.AArch64), spec)
		require.ErrorIs(t, err, &qemu.ArgumentError{})
	})
}

func TestNewCommand_AArch64DefaultFirmware(t *testing.T) {
	builder := newBuilder(t, sys.AArch64)

	spec := aarch64Spec()
	spec.Kernel = ""
	spec.KernelArgs = ""
	spec.AddDefaults(builder)

	cmd, err := qemu.NewCommand(builder, spec)
	require.NoError(t, err)

	args := cmd.Args()
	assert.Equal(t, 1, qemu.CountArgument(args, "bios", "edk2-aarch64-code.fd"))
	assert.Zero(t, qemu.CountArgument(args, "kernel", ""))
}

func TestCommand_String(t *testing.T) {
	spec := aarch64Spec()
	spec.Disk = "my disk.img"
	spec.Debug = false
	spec.ExtraArgs = nil

	cmd, err := qemu.NewCommand(newBuilder(t, sys.AArch64), spec)
	require.NoError(t, err)

	actual := cmd.String()
	assert.True(t, strings.HasPrefix(actual, "/usr/bin/qemu-system-aarch64 -machine virt "))
	assert.Contains(t, actual, `'if=none,id=disk0,file=my disk.img'`)
	assert.Contains(t, actual, `-append 'console=ttyAMA0 root=/dev/vda rw nokaslr'`)
	assert.Contains(t, actual, "-m 8G")
}
