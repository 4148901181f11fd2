package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"imagepdf/internal/common"
	"imagepdf/internal/compression"
	"imagepdf/internal/container"
	"imagepdf/internal/conversion"
)

type convertOptions struct {
	output     string
	pageFormat string
	limitMB    float64
	overheadMB float64
	title      string
}

func newConvertCommand(global *globalOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [images...]",
		Short: "Convert images into one PDF, one page per image in the order given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default images.pdf in the output directory)")
	cmd.Flags().StringVar(&opts.pageFormat, "page-format", "", "page format, see 'imagepdf formats'")
	cmd.Flags().Float64Var(&opts.limitMB, "limit", 0, "total size limit in MB")
	cmd.Flags().Float64Var(&opts.overheadMB, "overhead", -1, "MB reserved for the PDF container")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")

	return cmd
}

func runConvert(cmd *cobra.Command, global *globalOptions, opts *convertOptions, paths []string) error {
	cfg := global.cfg

	if cmd.Flags().Changed("page-format") {
		cfg.PageFormat = opts.pageFormat
	}
	if cmd.Flags().Changed("limit") {
		cfg.SizeLimitMB = opts.limitMB
	}
	if cmd.Flags().Changed("overhead") {
		cfg.OverheadMB = opts.overheadMB
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputs := make([]conversion.Input, len(paths))
	for i, path := range paths {
		inputs[i] = conversion.Input{Name: filepath.Base(path), Path: path}
	}

	output := opts.output
	if output == "" {
		output = common.AvailablePath(cfg.OutputDir, common.DefaultOutputFilename, time.Now())
	} else {
		output = common.EnsurePDFExtension(output)
	}

	c := container.New(cfg, nil)
	result, err := c.GetConverter().Convert(cmd.Context(), conversion.Request{
		Inputs:        inputs,
		PageFormat:    cfg.PageFormat,
		SizeLimitMB:   cfg.SizeLimitMB,
		OverheadBytes: cfg.OverheadBytes(),
		Title:         opts.title,
	}, func(p conversion.Progress) {
		if p.Stage == conversion.StageCompleted {
			cfg.Logger.Info("Converted image", "image", p.Name, "page", p.Index+1, "of", p.Total)
		}
	})
	if err != nil {
		return err
	}

	if err := common.WriteFile(output, result.PDF); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	if err := printResult(cmd.OutOrStdout(), result, output); err != nil {
		return err
	}

	if !result.WithinLimit() {
		cfg.Logger.Warn("Document exceeds size limit",
			"output_bytes", result.Size(),
			"size_limit_bytes", result.SizeLimitBytes)
	}
	return nil
}

func printResult(out io.Writer, result *conversion.Result, output string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tIMAGE\tSOURCE\tENCODED\tQUALITY\tSIZE\tFITS")
	for _, p := range result.Pages {
		fits := "yes"
		if !p.WithinBudget {
			fits = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%dx%d\t%dx%d\t%.2f\t%s\t%s\n",
			p.Index+1, p.Name,
			p.SourceWidth, p.SourceHeight,
			p.EncodedWidth, p.EncodedHeight,
			p.Quality, formatMB(p.EncodedBytes), fits)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\nWrote %s: %d pages, %s of %s limit (budget %s per image)\n",
		output, len(result.Pages),
		formatMB(result.Size()), formatMB(result.SizeLimitBytes), formatMB(result.BudgetBytes))
	return err
}

func formatMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", compression.BytesToMegabytes(bytes))
}
