// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for qemuspace. It handles
// flag parsing, configuration sources, error handling, and output handling.
package cmd
