// ABOUTME: The list, check, and version subcommands.
// ABOUTME: list prints one lesson label per line; check reports content problems and fails when any exist.
package main

import (
	"fmt"

	"github.com/2389-research/lessonview/lesson"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the available lessons in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			fsys, err := openContent(cfg.ContentDir)
			if err != nil {
				return err
			}
			ids, err := lesson.ListLessons(fsys)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, label := range lesson.Labels(ids) {
				fmt.Fprintln(out, label)
			}
			return nil
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate lessons, figures tables, and figure images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			fsys, err := openContent(cfg.ContentDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ids, problems := lesson.Check(fsys)
			for _, p := range problems {
				fmt.Fprintln(out, p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) found in %s", len(problems), cfg.ContentDir)
			}
			fmt.Fprintf(out, "ok: %d lessons\n", len(ids))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lessonview %s\n", version)
		},
	}
}
