// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/aibor/qemuspace/internal/qemu"
	"github.com/aibor/qemuspace/internal/sys"
	"github.com/aibor/qemuspace/internal/workspace"
	"github.com/spf13/pflag"
)

const (
	diskNameDefault = "disk.img"

	smpDefault = 2
	smpMin     = 1
	smpMax     = 512

	ramDefault = 4
	ramMin     = 1
	ramMax     = 16384

	sshPortDefault = 8022
	sshPortMin     = 1
	sshPortMax     = 65535
)

// globalFlags are shared by all sub commands.
type globalFlags struct {
	arch       sys.Arch
	workspaces string
	debug      bool
}

func newGlobalFlags() *globalFlags {
	return &globalFlags{
		arch:       sys.Native,
		workspaces: workspace.DefaultRoot(),
	}
}

func (f *globalFlags) register(flagSet *pflag.FlagSet) {
	flagSet.VarP(
		&f.arch,
		"arch",
		"a",
		"guest architecture: x86_64, aarch64, riscv64",
	)

	flagSet.StringVar(
		&f.workspaces,
		"workspaces",
		f.workspaces,
		"directory containing the workspaces (env "+workspace.RootEnvVar+")",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)
}

// runFlags are the flags of the run command.
type runFlags struct {
	name      string
	extraArgs []string

	dryRun     bool
	diskName   sys.FileName
	smp        uint64
	ram        uint64
	sshPort    uint64
	qemuPath   sys.FilePath
	qemuDebug  bool
	kernel     sys.FileName
	kernelArgs string
	firmware   sys.FileName
	machine    string
	cpu        string
	transport  qemu.TransportType
	noKVM      bool
}

func newRunFlags() *runFlags {
	return &runFlags{
		diskName: diskNameDefault,
		smp:      smpDefault,
		ram:      ramDefault,
		sshPort:  sshPortDefault,
	}
}

func (f *runFlags) register(flagSet *pflag.FlagSet) {
	flagSet.BoolVar(
		&f.dryRun,
		"dry-run",
		f.dryRun,
		"print the command instead of running it",
	)

	flagSet.Var(
		&f.diskName,
		"disk-name",
		"name of the disk image",
	)

	flagSet.Var(
		&LimitedUintValue{Value: &f.smp, Lower: smpMin, Upper: smpMax},
		"smp",
		"number of virtual CPUs",
	)

	flagSet.Var(
		&LimitedUintValue{Value: &f.ram, Lower: ramMin, Upper: ramMax},
		"ram",
		"memory (in GB) for the VM",
	)

	flagSet.Var(
		&LimitedUintValue{Value: &f.sshPort, Lower: sshPortMin, Upper: sshPortMax},
		"ssh-port",
		"host port forwarded to the guest's SSH port",
	)

	flagSet.VarP(
		&f.qemuPath,
		"qemu-path",
		"Q",
		"QEMU binary to use (default qemu-system-<arch>)",
	)

	flagSet.BoolVar(
		&f.qemuDebug,
		"qemu-debug",
		f.qemuDebug,
		"start gdb server on tcp::1234 and wait for the debugger",
	)

	flagSet.VarP(
		&f.kernel,
		"kernel",
		"K",
		"name of the kernel image in the workspace, Image-<name> is tried as well",
	)

	flagSet.StringVarP(
		&f.kernelArgs,
		"kernel-extra-bootargs",
		"A",
		f.kernelArgs,
		"extra arguments for the kernel command line",
	)

	flagSet.Var(
		&f.firmware,
		"bios",
		"name of the firmware image in the workspace",
	)

	flagSet.StringVar(
		&f.machine,
		"machine",
		f.machine,
		"QEMU machine type to use (default depends on arch)",
	)

	flagSet.StringVar(
		&f.cpu,
		"cpu",
		f.cpu,
		"QEMU CPU type to use (default host with KVM, max otherwise)",
	)

	flagSet.Var(
		&f.transport,
		"transport",
		"io transport type: pci, mmio (default depends on arch)",
	)

	flagSet.BoolVar(
		&f.noKVM,
		"nokvm",
		f.noKVM,
		"disable hardware support (default is enabled if present and arch "+
			"matches the host)",
	)
}

func (f *runFlags) commandSpec(qemuBin, disk, kernel, firmware string) qemu.CommandSpec {
	return qemu.CommandSpec{
		Executable:    qemuBin,
		Machine:       f.machine,
		CPU:           f.cpu,
		SMP:           f.smp,
		MemoryGB:      f.ram,
		Disk:          disk,
		Kernel:        kernel,
		KernelArgs:    f.kernelArgs,
		Firmware:      firmware,
		SSHPort:       f.sshPort,
		TransportType: f.transport,
		NoKVM:         f.noKVM,
		Debug:         f.qemuDebug,
		ExtraArgs:     f.extraArgs,
	}
}
