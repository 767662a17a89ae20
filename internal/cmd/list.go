// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aibor/qemuspace/internal/workspace"
	"github.com/spf13/cobra"
)

func newListCommand(global *globalFlags, cfg IO) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workspaces of the selected architecture",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(cmd, "args",
					fmt.Errorf("%w: %q", ErrUnexpectedArgs, args))
			}

			return nil
		},
		RunE: func(*cobra.Command, []string) error {
			entries, err := workspace.List(global.workspaces, global.arch)
			if err != nil {
				return err
			}

			return printEntries(cfg.Stdout, entries)
		},
	}
}

func printEntries(w io.Writer, entries []workspace.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	fmt.Fprintln(tw, "NAME\tDISKS\tKERNELS")

	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			entry.Name,
			joinImages(entry.Disks),
			joinImages(entry.Kernels),
		)
	}

	return tw.Flush() //nolint:wrapcheck
}

func joinImages(images []workspace.Image) string {
	if len(images) == 0 {
		return "-"
	}

	names := make([]string, 0, len(images))
	for _, image := range images {
		names = append(names, image.String())
	}

	return strings.Join(names, ", ")
}
