package convert

import (
	"context"
	"io"
	"os"

	"parchment.dev/ps2pdf/document"
	"parchment.dev/ps2pdf/pdferr"
	"parchment.dev/ps2pdf/ps"
)

// Status identifies the phase a ProgressFunc call reports on: once per
// input file begin/end and once at serializer start.
type Status int

const (
	StatusFileBegin Status = iota
	StatusFileEnd
	StatusSerializing
)

// ProgressFunc receives (current, total, status) tuples. The default,
// used when Process is given a nil ProgressFunc or opts.Quiet is set,
// is a no-op.
type ProgressFunc func(current, total int, status Status)

// Summary is the result of a successful Process call.
type Summary struct {
	PagesWritten  int
	ObjectsWritten int
}

// Logger is the diagnostic sink the interpreter logs warnings to, and
// matches ps.Logger so *log.Logger (and any compatible adapter) can be
// passed straight through.
type Logger = ps.Logger

// Process reads each input in opts.InputFiles in order, interprets it,
// concatenates its pages into one document, and serializes that
// document to opts.OutputFile. progress may be nil; it is not called
// when opts.Quiet is set.
//
// Ordering guarantee: pages are concatenated in the order inputs are
// given.
//
// Failure semantics: a parse warning is logged through log and
// processing continues; a fatal error aborts and no output file is
// left behind.
func Process(ctx context.Context, opts document.ProcessingOptions, log Logger, progress ProgressFunc) (Summary, error) {
	if progress == nil || opts.Quiet {
		progress = func(int, int, Status) {}
	}

	if opts.DeviceName != "" && opts.DeviceName != "pdfwrite" {
		return Summary{}, &pdferr.InvalidArgument{Message: "unsupported device " + opts.DeviceName}
	}
	if len(opts.InputFiles) == 0 {
		return Summary{}, &pdferr.InvalidArgument{Message: "no input files"}
	}
	if opts.OutputFile == "" {
		return Summary{}, &pdferr.InvalidArgument{Message: "no output file"}
	}

	paperW, paperH := document.Dimensions(opts.PaperSize, opts.CustomWidthPt, opts.CustomHeightPt)

	var docs []*ps.Document
	total := len(opts.InputFiles)
	for i, path := range opts.InputFiles {
		if err := ctx.Err(); err != nil {
			return Summary{}, &pdferr.Cancelled{}
		}

		progress(i, total, StatusFileBegin)

		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return Summary{}, &pdferr.InputNotFound{Path: path, Err: err}
			}
			return Summary{}, &pdferr.InputUnreadable{Path: path, Err: err}
		}

		ip := ps.NewInterpreter(f, path, paperW, paperH, log)
		doc, err := ip.Run()
		closeErr := f.Close()
		if err != nil {
			return Summary{}, err
		}
		if closeErr != nil {
			return Summary{}, &pdferr.InputUnreadable{Path: path, Err: closeErr}
		}

		docs = append(docs, doc)
		progress(i, total, StatusFileEnd)
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, &pdferr.Cancelled{}
	}
	progress(total, total, StatusSerializing)

	out, err := os.Create(opts.OutputFile)
	if err != nil {
		return Summary{}, &pdferr.OutputUnwritable{Err: err}
	}

	if err := writeAndCount(out, docs, opts.CompatibilityLevel); err != nil {
		out.Close()
		os.Remove(opts.OutputFile)
		return Summary{}, err
	}
	if err := out.Close(); err != nil {
		os.Remove(opts.OutputFile)
		return Summary{}, &pdferr.OutputUnwritable{Err: err}
	}

	pages := 0
	for _, d := range docs {
		pages += len(d.Pages)
	}
	return Summary{PagesWritten: pages, ObjectsWritten: 3 + 2*pages}, nil
}

// writeAndCount is split out from Process so assemble's io.Writer
// requirement and the file-discard-on-error path stay in one place.
func writeAndCount(sink io.Writer, docs []*ps.Document, compatLevel int) error {
	if err := assemble(sink, docs, compatLevel); err != nil {
		return &pdferr.OutputUnwritable{Err: err}
	}
	return nil
}
