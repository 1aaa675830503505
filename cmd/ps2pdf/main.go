// Command ps2pdf converts one or more PostScript/EPS files into a
// single PDF document. It is a thin adapter over convert.Process: it
// parses flags into a document.ProcessingOptions, prints progress and a
// page-count summary to stderr unless -q is given, and reports any
// resulting error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"parchment.dev/ps2pdf/convert"
	"parchment.dev/ps2pdf/document"
)

func main() {
	output := flag.String("o", "", "output PDF path (required)")
	device := flag.String("sDEVICE", "pdfwrite", "output device, must be pdfwrite")
	paper := flag.String("paper-size", "A4", "A4, Letter, Legal, A3, A5, Executive, or Custom")
	customW := flag.Float64("custom-width", 0, "page width in points, with -paper-size=Custom")
	customH := flag.Float64("custom-height", 0, "page height in points, with -paper-size=Custom")
	compat := flag.Int("compatibility-level", 7, "PDF minor version, 4-7")
	quiet := flag.Bool("q", false, "suppress progress messages")
	flag.Bool("dBATCH", true, "accepted for compatibility; no effect")
	flag.Bool("dNOPAUSE", true, "accepted for compatibility; no effect")
	flag.Parse()

	if *output == "" {
		fmt.Fprintln(os.Stderr, "ps2pdf: -o output path is required")
		os.Exit(1)
	}

	size, err := document.ParsePaperSize(*paper)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ps2pdf:", err)
		os.Exit(1)
	}

	opts := document.ProcessingOptions{
		InputFiles:         flag.Args(),
		OutputFile:         *output,
		DeviceName:         *device,
		PaperSize:          size,
		CustomWidthPt:      *customW,
		CustomHeightPt:     *customH,
		CompatibilityLevel: *compat,
	}

	logger := log.New(os.Stderr, "", 0)

	var progress convert.ProgressFunc
	if !*quiet {
		progress = func(current, total int, status convert.Status) {
			switch status {
			case convert.StatusFileBegin:
				fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", current+1, total, opts.InputFiles[current])
			case convert.StatusSerializing:
				fmt.Fprintln(os.Stderr, "writing", opts.OutputFile)
			}
		}
	}

	summary, err := convert.Process(context.Background(), opts, logger, progress)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ps2pdf:", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "wrote %d page(s) to %s\n", summary.PagesWritten, opts.OutputFile)
	}
}
