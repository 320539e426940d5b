package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/sketchboard/internal/export"
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/render"
)

// fitMargin is the padding around the drawing when --fit sizes the canvas.
const fitMargin = 20

func newRenderCmd() *cobra.Command {
	var (
		output string
		opts   export.Options
		fit    bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a drawing to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadDrawing(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			if fit {
				if b, ok := geometry.BoundsAll(s.All()); ok {
					opts.Width = int(math.Ceil(b.X+b.Width)) + fitMargin
					opts.Height = int(math.Ceil(b.Y+b.Height)) + fitMargin
				}
			}

			fonts, err := render.NewFontBook()
			if err != nil {
				return err
			}
			defer fonts.Close()

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := export.Render(f, s, fonts, opts); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}

			w, h := opts.Size()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d elements)\n", output, w, h, s.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "drawing.png", "output PNG file")
	cmd.Flags().IntVar(&opts.Width, "width", 1200, "canvas width")
	cmd.Flags().IntVar(&opts.Height, "height", 800, "canvas height")
	cmd.Flags().IntVar(&opts.Zoom, "zoom", 100, "zoom in percent (50-200)")
	cmd.Flags().StringVar(&opts.Background, "background", export.DefaultBackground, "background colour")
	cmd.Flags().BoolVar(&fit, "fit", false, "size the canvas to the drawing's extent")
	return cmd
}
