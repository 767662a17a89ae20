// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides utilities for composing and running QEMU system
// emulator commands as needed by qemuspace. It expects the required QEMU
// binary to be present on the system.
//
// Each supported architecture has a [Builder] that knows its machine type,
// VirtIO transport and serial console. The guest gets a VirtIO disk, a user
// mode network with the guest's SSH port forwarded to the host and, for
// direct kernel boot, the kernel with its command line. The serial console is
// attached to stdio, so QEMU is supposed to run in the foreground of an
// interactive terminal.
package qemu
