// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Arch is a guest architecture. Its value is the QEMU name of the
// architecture as used in "qemu-system-<arch>" and workspace directories.
type Arch string

// Supported guest architectures.
const (
	X86_64  Arch = "x86_64"
	AArch64 Arch = "aarch64"
	RISCV64 Arch = "riscv64"
)

// kvmDevice is checked for read and write access by [Arch.KVMAvailable].
var kvmDevice = "/dev/kvm" //nolint:gochecknoglobals

// Native is the architecture of the host. Using the same architecture for the
// guest allows using KVM, if available. Use [Arch.KVMAvailable] to check.
var Native = goArch(runtime.GOARCH) //nolint:gochecknoglobals

// Archs returns all supported architectures.
func Archs() []Arch {
	return []Arch{X86_64, AArch64, RISCV64}
}

// ParseArch returns the [Arch] for the given name. Go architecture names
// "amd64" and "arm64" are accepted as aliases.
func ParseArch(name string) (Arch, error) {
	arch := goArch(name)

	switch arch {
	case X86_64, AArch64, RISCV64:
		return arch, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrArchNotSupported, name)
	}
}

func goArch(name string) Arch {
	switch name {
	case "amd64":
		return X86_64
	case "arm64":
		return AArch64
	default:
		return Arch(name)
	}
}

// String implements [fmt.Stringer] and [pflag.Value].
func (a *Arch) String() string {
	return string(*a)
}

// Set implements [pflag.Value].
func (a *Arch) Set(s string) error {
	arch, err := ParseArch(s)
	if err != nil {
		return err
	}

	*a = arch

	return nil
}

// Type implements [pflag.Value].
func (*Arch) Type() string {
	return "arch"
}

// IsNative returns true if the architecture matches the host.
func (a *Arch) IsNative() bool {
	return Native == *a
}

// QemuExecutable returns the name of the QEMU system emulator binary for the
// architecture.
func (a *Arch) QemuExecutable() string {
	return "qemu-system-" + string(*a)
}

// KVMAvailable checks if KVM support is available for the architecture.
func (a *Arch) KVMAvailable() bool {
	if !a.IsNative() {
		return false
	}

	return unix.Access(kvmDevice, unix.R_OK|unix.W_OK) == nil
}
