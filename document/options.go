package document

// Quality is the informational print-quality hint; it influences no
// bytes in the base emitter.
type Quality int

const (
	QualityDefault Quality = iota
	QualityScreen
	QualityEbook
	QualityPrinter
	QualityPrepress
)

// ProcessingOptions is the value the CLI adapter assembles and hands to
// the Processor façade. DeviceName is accepted for compatibility with
// PostScript-tool conventions; Process rejects any non-empty value
// other than "pdfwrite", and treats an empty DeviceName as "pdfwrite".
type ProcessingOptions struct {
	InputFiles  []string
	OutputFile  string
	DeviceName  string

	PaperSize      PaperSize
	CustomWidthPt  float64
	CustomHeightPt float64

	// CompatibilityLevel is the PDF minor version, 4 through 7.
	CompatibilityLevel int

	Quality Quality
	Quiet   bool

	// BatchMode and NoPause are accepted for compatibility with
	// PostScript-tool conventions; they have no effect here.
	BatchMode bool
	NoPause   bool
}
