// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"
)

const (
	// TransportTypePCI is VirtIO PCI transport. Requires a machine with PCI
	// bus and a kernel built with CONFIG_VIRTIO_PCI.
	TransportTypePCI TransportType = "pci"
	// TransportTypeMMIO is Virtio MMIO transport. Requires a kernel built with
	// CONFIG_VIRTIO_MMIO.
	TransportTypeMMIO TransportType = "mmio"
)

// TransportType represents the VirtIO transport used for the guest devices.
type TransportType string

func (t TransportType) isKnown() bool {
	return slices.Contains(
		[]TransportType{TransportTypePCI, TransportTypeMMIO},
		t,
	)
}

// String implements [fmt.Stringer] and [pflag.Value].
func (t *TransportType) String() string {
	return string(*t)
}

// Set implements [pflag.Value].
func (t *TransportType) Set(s string) error {
	tt := TransportType(s)
	if !tt.isKnown() {
		return ErrTransportTypeInvalid
	}

	*t = tt

	return nil
}

// Type implements [pflag.Value].
func (*TransportType) Type() string {
	return "transport"
}

// Device returns the name of the VirtIO device model for the transport type,
// e.g. "virtio-blk-pci" for "virtio-blk".
func (t TransportType) Device(model string) string {
	if t == TransportTypeMMIO {
		return model + "-device"
	}

	return model + "-pci"
}
