package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/geometry"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file|-]",
		Short: "Display element counts and extents of a drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadDrawing(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			counts := make(map[document.Kind]int)
			for el := range s.All() {
				counts[el.Kind()]++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Drawing Information")
			fmt.Fprintln(out, "===================")
			fmt.Fprintf(out, "File: %s\n", args[0])
			fmt.Fprintf(out, "Elements: %d\n", s.Len())
			if s.Len() == 0 {
				return nil
			}
			fmt.Fprintf(out, "Highest id: %d\n\n", s.MaxID())

			fmt.Fprintln(out, "By kind:")
			for _, k := range document.Kinds {
				if n := counts[k]; n > 0 {
					fmt.Fprintf(out, "  %-10s %d\n", k, n)
				}
			}

			if b, ok := geometry.BoundsAll(s.All()); ok {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Extent:")
				fmt.Fprintf(out, "  Min: (%.1f, %.1f)\n", b.X, b.Y)
				fmt.Fprintf(out, "  Max: (%.1f, %.1f)\n", b.X+b.Width, b.Y+b.Height)
				fmt.Fprintf(out, "  Size: %.1f x %.1f\n", b.Width, b.Height)
			}
			return nil
		},
	}
}
