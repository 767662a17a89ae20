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
	"slices"
	"strings"

	"github.com/aibor/qemuspace/internal/sys"
	"github.com/dustin/go-humanize"
)

var (
	diskExtensions = []string{".img", ".qcow2", ".raw", ".vmdk"} //nolint:gochecknoglobals
	kernelPrefixes = []string{kernelPrefix, "vmlinu", "bzImage"} //nolint:gochecknoglobals
	kernelNames    = []string{"Image", "zImage"}                 //nolint:gochecknoglobals
)

// Image is a regular file in a workspace.
type Image struct {
	Name string
	Size uint64
}

// String returns the name with the human readable size.
func (i Image) String() string {
	return fmt.Sprintf("%s (%s)", i.Name, humanize.IBytes(i.Size))
}

// Entry describes a workspace and the images found in it.
type Entry struct {
	Name    string
	Disks   []Image
	Kernels []Image
}

// List returns all workspaces of the given architecture in root, sorted by
// name. A missing architecture directory results in an empty list.
func List(root string, arch sys.Arch) ([]Entry, error) {
	archDir := filepath.Join(root, string(arch))

	dirEntries, err := os.ReadDir(archDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read workspaces: %w", err)
	}

	var entries []Entry

	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}

		entry, err := readEntry(filepath.Join(archDir, dirEntry.Name()))
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func readEntry(dir string) (Entry, error) {
	entry := Entry{Name: filepath.Base(dir)}

	files, err := os.ReadDir(dir)
	if err != nil {
		return entry, fmt.Errorf("read workspace %s: %w", entry.Name, err)
	}

	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}

		info, err := file.Info()
		if err != nil {
			return entry, fmt.Errorf("stat %s: %w", file.Name(), err)
		}

		image := Image{
			Name: file.Name(),
			Size: uint64(info.Size()), //nolint:gosec
		}

		switch {
		case isDisk(image.Name):
			entry.Disks = append(entry.Disks, image)
		case isKernel(image.Name):
			entry.Kernels = append(entry.Kernels, image)
		}
	}

	return entry, nil
}

func isDisk(name string) bool {
	return slices.Contains(diskExtensions, filepath.Ext(name))
}

func isKernel(name string) bool {
	if slices.Contains(kernelNames, name) {
		return true
	}

	return slices.ContainsFunc(kernelPrefixes, func(prefix string) bool {
		return strings.HasPrefix(name, prefix)
	})
}
