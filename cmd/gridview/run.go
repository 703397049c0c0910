package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid/backend/tui"
)

func newRunCommand(src *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the grid in the terminal",
		Long: `Show the grid full screen in the terminal.

Arrows scroll (Shift for bigger steps), PgUp/PgDn page, Ctrl+Up/Down jump to
the ends. Tab moves the column focus, Enter sorts it, + and - resize it.
r resets widths, R also forgets the saved ones, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(src)
			if err != nil {
				return err
			}
			m, err := tui.New(s.cfg)
			if err != nil {
				return errors.Join(err, s.Close())
			}
			return errors.Join(tui.Run(m), s.Close())
		},
	}
}
