package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sketchctl",
		Short: "Inspect, validate and render sketchboard drawings",
		Long: `sketchctl works on drawings in the interchange format: a JSON array of
element records as exported by the editor or the server's elements endpoint.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newValidateCmd(), newInfoCmd(), newSampleCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
