// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"strconv"
	"strings"
)

const (
	cpuHost = "host"
	cpuMax  = "max"

	guestSSHPort = 22

	diskID = "disk0"
	netID  = "net0"
)

// CommandSpec defines the parameters for a [Command].
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// QEMU machine type to use. Defaults to the architecture's machine.
	Machine string

	// CPU type to use. Defaults to "host" with KVM and "max" without.
	CPU string

	// Number of CPUs for the guest.
	SMP uint64

	// Memory for the machine in GB.
	MemoryGB uint64

	// Path to the disk image. It is attached as VirtIO block device.
	Disk string

	// Optional path to a kernel image for direct kernel boot.
	Kernel string

	// Additional kernel command line arguments. Requires Kernel.
	KernelArgs string

	// Optional path to a firmware image.
	Firmware string

	// Host port forwarded to the guest's SSH port 22.
	SSHPort uint64

	// Transport type for the VirtIO devices. Defaults to the architecture's
	// transport type.
	TransportType TransportType

	// Disable KVM support.
	NoKVM bool

	// Start the gdb server on tcp::1234 and halt the CPUs on start.
	Debug bool

	// ExtraArgs are passed verbatim to QEMU after all other arguments.
	ExtraArgs []string
}

// AddDefaults adds architecture specific default values of the given
// [Builder] to the spec if the fields are not set yet. KVM is disabled if not
// available for the architecture.
func (s *CommandSpec) AddDefaults(builder Builder) {
	profile := builder.profile()

	if s.Machine == "" {
		s.Machine = profile.machine
	}

	if s.TransportType == "" {
		s.TransportType = profile.transportType
	}

	if s.Kernel == "" && s.Firmware == "" {
		s.Firmware = profile.firmware
	}

	if !s.NoKVM {
		arch := builder.Arch()
		s.NoKVM = !arch.KVMAvailable()
	}

	if s.CPU == "" {
		s.CPU = cpuMax
		if !s.NoKVM {
			s.CPU = cpuHost
		}
	}
}

func (s *CommandSpec) machineArgs() []Argument {
	args := []Argument{
		UniqueArg("machine", s.Machine),
		UniqueArg("cpu", s.CPU),
		UniqueArg("smp", strconv.FormatUint(s.SMP, 10)),
		UniqueArg("m", strconv.FormatUint(s.MemoryGB, 10)+"G"),
	}

	if !s.NoKVM {
		args = append(args, UniqueArg("enable-kvm"))
	}

	return append(args,
		// Serial console and QEMU monitor multiplexed on stdio.
		UniqueArg("nographic"),
	)
}

func (s *CommandSpec) deviceArgs() []Argument {
	hostfwd := "tcp::" + strconv.FormatUint(s.SSHPort, 10) +
		"-:" + strconv.Itoa(guestSSHPort)

	return []Argument{
		RepeatableArg("drive",
			"if=none",
			"id="+diskID,
			Option("file", s.Disk),
		),
		RepeatableArg("device",
			s.TransportType.Device("virtio-blk"),
			"drive="+diskID,
		),
		RepeatableArg("netdev",
			"user",
			"id="+netID,
			"hostfwd="+hostfwd,
		),
		RepeatableArg("device",
			s.TransportType.Device("virtio-net"),
			"netdev="+netID,
		),
		RepeatableArg("device",
			s.TransportType.Device("virtio-rng"),
		),
	}
}

func (s *CommandSpec) bootArgs(console string) []Argument {
	var args []Argument

	if s.Firmware != "" {
		args = append(args, UniqueArg("bios", s.Firmware))
	}

	if s.Kernel != "" {
		args = append(args,
			UniqueArg("kernel", s.Kernel),
			UniqueArg("append", s.kernelCmdline(console)),
		)
	}

	return args
}

// kernelCmdline returns the kernel command line for direct kernel boot.
func (s *CommandSpec) kernelCmdline(console string) string {
	cmdline := []string{
		"console=" + console,
		"root=/dev/vda",
		"rw",
	}

	if extra := strings.TrimSpace(s.KernelArgs); extra != "" {
		cmdline = append(cmdline, extra)
	}

	return strings.Join(cmdline, " ")
}

func (s *CommandSpec) debugArgs() []Argument {
	if !s.Debug {
		return nil
	}

	return []Argument{
		// Shorthand for "-gdb tcp::1234".
		UniqueArg("s"),
		// Do not start the CPUs until the debugger continues.
		UniqueArg("S"),
	}
}
