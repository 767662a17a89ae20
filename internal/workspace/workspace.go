// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/aibor/qemuspace/internal/sys"
)

const (
	// RootEnvVar overrides the default workspace root directory.
	RootEnvVar = "QEMUSPACE_HOME"

	kernelPrefix = "Image-"
)

// DefaultRoot returns the directory workspaces are stored in if not given
// explicitly. It is $QEMUSPACE_HOME if set, otherwise "qemuspace" in the XDG
// data home.
func DefaultRoot() string {
	if root := os.Getenv(RootEnvVar); root != "" {
		return root
	}

	return filepath.Join(xdg.DataHome, "qemuspace")
}

// Workspace is an existing workspace directory.
type Workspace struct {
	Root string
	Arch sys.Arch
	Name string
	Dir  string
}

// Resolve returns the [Workspace] with the given name for the given
// architecture. The workspace directory must exist.
func Resolve(root string, arch sys.Arch, name string) (*Workspace, error) {
	err := sys.ValidateFileName(name)
	if err != nil {
		return nil, fmt.Errorf("workspace name: %w", err)
	}

	dir := filepath.Join(root, string(arch), name)

	stat, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, dir)
	case err != nil:
		return nil, fmt.Errorf("workspace: %w", err)
	case !stat.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, dir)
	}

	return &Workspace{
		Root: root,
		Arch: arch,
		Name: name,
		Dir:  dir,
	}, nil
}

// Enter changes the working directory of the process into the workspace
// directory. Paths returned by [Workspace.Disk], [Workspace.Kernel] and
// [Workspace.Firmware] are relative to it.
func (w *Workspace) Enter() error {
	err := os.Chdir(w.Dir)
	if err != nil {
		return fmt.Errorf("enter workspace: %w", err)
	}

	return nil
}

// Disk returns the path of the disk image with the given name.
func (w *Workspace) Disk(name string) (string, error) {
	if !w.hasFile(name) {
		return "", fmt.Errorf("%s: %w", name, ErrDiskNotFound)
	}

	return name, nil
}

// Kernel returns the path of the kernel image with the given name. If there is
// no such file, the name prefixed with "Image-" is tried. An empty name is no
// kernel and returns an empty path.
func (w *Workspace) Kernel(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	for _, candidate := range []string{name, kernelPrefix + name} {
		if w.hasFile(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: `%s` (also tried `%s%s`)",
		ErrKernelNotFound, name, kernelPrefix, name)
}

// Firmware returns the path of the firmware image with the given name. An
// empty name is no firmware and returns an empty path.
func (w *Workspace) Firmware(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	if !w.hasFile(name) {
		return "", fmt.Errorf("%s: %w", name, ErrFirmwareNotFound)
	}

	return name, nil
}

func (w *Workspace) hasFile(name string) bool {
	if sys.ValidateFileName(name) != nil {
		return false
	}

	return sys.CheckRegularFile(filepath.Join(w.Dir, name)) == nil
}
