package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"imagepdf/internal/document"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported page formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLABEL\tWIDTH (mm)\tHEIGHT (mm)")
			for _, f := range document.PageFormats() {
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\n", f.Name, f.Label, f.Width, f.Height)
			}
			return w.Flush()
		},
	}
}
