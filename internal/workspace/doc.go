// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package workspace resolves workspace directories and the images they hold.
//
// A workspace is the directory <root>/<arch>/<name> that contains at least a
// disk image and optionally kernel and firmware images. Workspaces are created
// elsewhere and only consumed here.
package workspace
