// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package workspace

import "errors"

var (
	// ErrWorkspaceNotFound is returned if the workspace directory does not
	// exist.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrDiskNotFound is returned if the disk image is missing.
	ErrDiskNotFound = errors.New("disk image not found, please run `init` first")

	// ErrKernelNotFound is returned if neither the kernel name nor its
	// "Image-" prefixed variant exists.
	ErrKernelNotFound = errors.New("kernel image not found")

	// ErrFirmwareNotFound is returned if the firmware image is missing.
	ErrFirmwareNotFound = errors.New("firmware image not found")
)
