// ABOUTME: The tui subcommand: browses the content directory in the terminal.
// ABOUTME: Logging is discarded while the alternate screen is active.
package main

import (
	"fmt"

	"github.com/2389-research/lessonview/lesson"
	"github.com/2389-research/lessonview/logging"
	"github.com/2389-research/lessonview/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(root *rootOptions) *cobra.Command {
	var (
		start int
		style string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse lessons in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			fsys, err := openContent(cfg.ContentDir)
			if err != nil {
				return err
			}
			policy, err := lesson.ParseFigurePolicy(cfg.FigurePolicy)
			if err != nil {
				return err
			}

			viewer := lesson.NewViewer(fsys, policy, logging.Nop())
			ids, err := viewer.Lessons()
			if err != nil {
				return err
			}
			return tui.Run(viewer, ids, tui.Options{Lesson: lesson.ID(start), Style: style})
		},
	}
	cmd.Flags().IntVar(&start, "lesson", 0, "Lesson number to open first")
	cmd.Flags().StringVar(&style, "style", "", "glamour style (dark, light, notty, ...); default detects the terminal")
	return cmd
}
