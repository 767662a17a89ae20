// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"
)

func setupLogging(writer io.Writer, debug bool) {
	options := &slog.HandlerOptions{
		Level: slog.LevelWarn,
		// No timestamps unless debugging.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 && attr.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return attr
		},
	}

	if debug {
		options.Level = slog.LevelDebug
		options.ReplaceAttr = nil
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(writer, options)))
}
