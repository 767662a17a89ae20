// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"math"

	"github.com/aibor/qemuspace/internal/sys"
)

const (
	machineTypePC   = "pc"
	machineTypeQ35  = "q35"
	machineTypeVirt = "virt"
)

// firmwareEDK2AArch64 is the UEFI firmware shipped with QEMU. QEMU looks up
// -bios names without a path in its data directory.
const firmwareEDK2AArch64 = "edk2-aarch64-code.fd"

// Builder builds the QEMU arguments for a single architecture.
type Builder interface {
	// Arch returns the architecture the Builder builds arguments for.
	Arch() sys.Arch

	// Validate checks the command spec for values the architecture can not handle.
	Validate(spec *CommandSpec) error

	// Arguments returns the QEMU arguments for the command spec. It is expected
	// to be valid.
	Arguments(spec *CommandSpec) []Argument

	profile() profile
}

// BuilderFor returns the [Builder] for the given architecture.
func BuilderFor(arch sys.Arch) (Builder, error) {
	switch arch {
	case sys.X86_64:
		return x86Builder{}, nil
	case sys.AArch64:
		return aarch64Builder{}, nil
	case sys.RISCV64:
		return riscv64Builder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", sys.ErrArchNotSupported, arch)
	}
}

// profile holds the conventions of an architecture. Its methods implement
// the parts of [Builder] that are common for all architectures.
type profile struct {
	machine       string
	transportType TransportType
	console       string
	maxSMP        uint64

	// Used if neither kernel nor firmware is given.
	firmware string
}

func (p profile) validate(spec *CommandSpec) error {
	switch {
	case spec.SMP < 1 || spec.SMP > p.maxSMP:
		return &ArgumentError{
			fmt.Sprintf("smp must be between 1 and %d", p.maxSMP),
		}
	case spec.MemoryGB < 1:
		return &ArgumentError{"memory must be at least 1 GB"}
	case spec.SSHPort < 1 || spec.SSHPort > math.MaxUint16:
		return &ArgumentError{"ssh port must be between 1 and 65535"}
	case spec.KernelArgs != "" && spec.Kernel == "":
		return &ArgumentError{"kernel extra bootargs require a kernel"}
	case !spec.TransportType.isKnown():
		return &ArgumentError{
			"unknown transport type: " + spec.TransportType.String(),
		}
	}

	switch spec.Machine {
	case machineTypeVirt:
		if spec.TransportType != TransportTypeMMIO {
			return &ArgumentError{"virt requires virtio-mmio"}
		}
	case machineTypeQ35, machineTypePC:
		if spec.TransportType != TransportTypePCI {
			return &ArgumentError{
				spec.Machine + " does not work with virtio-mmio",
			}
		}
	}

	return nil
}

func (p profile) arguments(spec *CommandSpec) []Argument {
	args := spec.machineArgs()
	args = append(args, spec.deviceArgs()...)
	args = append(args, spec.bootArgs(p.console)...)
	args = append(args, spec.debugArgs()...)

	return args
}

type x86Builder struct{}

func (x86Builder) Arch() sys.Arch {
	return sys.X86_64
}

func (x86Builder) profile() profile {
	return profile{
		machine:       machineTypeQ35,
		transportType: TransportTypePCI,
		console:       "ttyS0",
		maxSMP:        288,
	}
}

func (b x86Builder) Validate(spec *CommandSpec) error {
	return b.profile().validate(spec)
}

func (b x86Builder) Arguments(spec *CommandSpec) []Argument {
	return b.profile().arguments(spec)
}

type aarch64Builder struct{}

func (aarch64Builder) Arch() sys.Arch {
	return sys.AArch64
}

func (aarch64Builder) profile() profile {
	return profile{
		machine:       machineTypeVirt,
		transportType: TransportTypeMMIO,
		console:       "ttyAMA0",
		maxSMP:        512,
		firmware:      firmwareEDK2AArch64,
	}
}

// Validate implements [Builder]. The virt machine has no default firmware, so
// either a kernel or a firmware must be given. [CommandSpec.AddDefaults]
// sets the firmware shipped with QEMU if neither is set.
func (b aarch64Builder) Validate(spec *CommandSpec) error {
	if spec.Kernel == "" && spec.Firmware == "" {
		return &ArgumentError{"aarch64 requires a kernel or a firmware"}
	}

	return b.profile().validate(spec)
}

func (b aarch64Builder) Arguments(spec *CommandSpec) []Argument {
	return b.profile().arguments(spec)
}

type riscv64Builder struct{}

func (riscv64Builder) Arch() sys.Arch {
	return sys.RISCV64
}

func (riscv64Builder) profile() profile {
	return profile{
		machine:       machineTypeVirt,
		transportType: TransportTypeMMIO,
		console:       "ttyS0",
		maxSMP:        512,
	}
}

func (b riscv64Builder) Validate(spec *CommandSpec) error {
	return b.profile().validate(spec)
}

func (b riscv64Builder) Arguments(spec *CommandSpec) []Argument {
	return b.profile().arguments(spec)
}
