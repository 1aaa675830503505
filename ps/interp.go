package ps

import (
	"io"
	"strconv"

	"parchment.dev/ps2pdf/geom2d"
	"parchment.dev/ps2pdf/pdferr"
)

// Logger receives warning-level diagnostics: unknown operators
// (including malformed numbers already degraded to names by the
// tokenizer), operands of the wrong kind, and the operand-stack
// underflow logged just before it is returned as an error. A nil Logger
// discards them.
type Logger interface {
	Printf(format string, args ...any)
}

// Document is the result of interpreting one input: the parsed DSC
// header fields and the finished page list.
type Document struct {
	Title, Creator string
	BBox           BoundingBox
	Pages          []*Page
}

// Interpreter drives the tokenizer and dispatches on operator tokens,
// accumulating a Document.
type Interpreter struct {
	tok    *Tokenizer
	path   string
	log    Logger
	paperW float64
	paperH float64

	state   *StateStack
	acc     *Accumulator
	operand operandStack

	preludeDone bool
	ct          CoordinateTransform
	bbox        BoundingBox
	title       string
	creator     string

	pages   []*Page
	current *Page
}

// NewInterpreter constructs an interpreter reading from r. paperW/paperH
// are the configured paper dimensions (already resolved from
// document.ProcessingOptions); they are the fallback used once the DSC
// prelude is scanned, subject to the degenerate-bbox override.
func NewInterpreter(r io.Reader, path string, paperW, paperH float64, log Logger) *Interpreter {
	ip := &Interpreter{
		tok:    NewTokenizer(r, path),
		path:   path,
		log:    log,
		paperW: paperW,
		paperH: paperH,
		state:  NewStateStack(),
		acc:    NewAccumulator(),
		bbox:   DefaultBoundingBox(),
	}
	ip.current = &Page{}
	return ip
}

func (ip *Interpreter) warnf(format string, args ...any) {
	if ip.log != nil {
		ip.log.Printf(format, args...)
	}
}

// popNumber pops the top operand as a number for the operator op. An
// empty stack is an unrecoverable operand-stack underflow (spec §7):
// there is nothing to default, so it escalates to InterpreterError. A
// non-empty stack whose top is not a number is the warning-level
// recovery case -- logged and defaulted to 0, the same tolerance the
// tokenizer's malformed-number degradation already shows.
func (ip *Interpreter) popNumber(op string, line int) (float64, error) {
	if ip.operand.len() == 0 {
		ip.warnf("%s:%d: operand stack underflow for %q", ip.path, line, op)
		return 0, &pdferr.InterpreterError{
			Path: ip.path, Line: line, Operator: op,
			Message: "operand stack underflow",
		}
	}
	v, _ := ip.operand.pop()
	if v.kind != opNumber {
		ip.warnf("%s:%d: operator %q expected a number operand, defaulting to 0", ip.path, line, op)
		return 0, nil
	}
	return v.number, nil
}

// popString pops the top operand as a string for op, with the same
// underflow-vs-wrong-kind split as popNumber.
func (ip *Interpreter) popString(op string, line int) ([]byte, error) {
	if ip.operand.len() == 0 {
		ip.warnf("%s:%d: operand stack underflow for %q", ip.path, line, op)
		return nil, &pdferr.InterpreterError{
			Path: ip.path, Line: line, Operator: op,
			Message: "operand stack underflow",
		}
	}
	v, _ := ip.operand.pop()
	if v.kind != opString {
		ip.warnf("%s:%d: operator %q expected a string operand, defaulting to empty", ip.path, line, op)
		return nil, nil
	}
	return v.str, nil
}

// popName pops the top operand as a name for op, with the same
// underflow-vs-wrong-kind split as popNumber.
func (ip *Interpreter) popName(op string, line int) (string, error) {
	if ip.operand.len() == 0 {
		ip.warnf("%s:%d: operand stack underflow for %q", ip.path, line, op)
		return "", &pdferr.InterpreterError{
			Path: ip.path, Line: line, Operator: op,
			Message: "operand stack underflow",
		}
	}
	v, _ := ip.operand.pop()
	if v.kind != opName {
		ip.warnf("%s:%d: operator %q expected a name operand, defaulting to empty", ip.path, line, op)
		return "", nil
	}
	return v.name, nil
}

// Run interprets the entire input and returns the finished Document.
func (ip *Interpreter) Run() (*Document, error) {
	for {
		tok, err := ip.tok.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := ip.handle(tok); err != nil {
			return nil, err
		}
	}
	if !ip.preludeDone {
		ip.ensurePrelude()
	}
	if len(ip.pages) == 0 {
		// No showpage was ever observed: the implicit first page is
		// the document, per the idempotence property for empty input.
		ip.flushDanglingPath()
		ip.pages = append(ip.pages, ip.current)
	}
	// Otherwise the dangling page opened after the last showpage
	// never itself received a showpage and is dropped.
	return &Document{
		Title:    ip.title,
		Creator:  ip.creator,
		BBox:     ip.bbox,
		Pages:    ip.pages,
	}, nil
}

func (ip *Interpreter) handle(tok Token) error {
	switch tok.Kind {
	case TokDSCComment:
		if !ip.preludeDone {
			ip.consumePrelude(tok)
		}
		return nil
	case TokLineComment:
		return nil
	case TokNumber:
		ip.ensurePrelude()
		ip.operand.pushNumber(tok.Number)
		return nil
	case TokLiteralString:
		ip.ensurePrelude()
		ip.operand.pushString(tok.Bytes)
		return nil
	case TokName:
		ip.ensurePrelude()
		if !tok.Literal {
			// A bare executable name that the tokenizer did not
			// recognize as an operator: treat it the way an unknown
			// operator is treated, rather than pushing it as an
			// operand.
			ip.warnf("%s:%d: unknown operator %q, ignoring", ip.path, tok.Line, tok.Text)
			return nil
		}
		ip.operand.pushName(tok.Text)
		return nil
	case TokDictOpen:
		ip.ensurePrelude()
		return ip.skipDict()
	case TokDictClose:
		return nil
	case TokOperator:
		ip.ensurePrelude()
		return ip.dispatch(tok)
	}
	return nil
}

// consumePrelude records Title/Creator/BoundingBox fields from a DSC
// comment seen before the first operator.
func (ip *Interpreter) consumePrelude(tok Token) {
	text := tok.Text
	switch {
	case hasPrefix(text, "Title:"):
		ip.title = trimField(text, "Title:")
	case hasPrefix(text, "Creator:"):
		ip.creator = trimField(text, "Creator:")
	case hasPrefix(text, "BoundingBox:"):
		if bb, ok := parseBoundingBox(trimField(text, "BoundingBox:")); ok {
			ip.bbox = bb
		}
	}
	// %%PageSize: and all other %% comments are tokenized but otherwise
	// ignored.
}

// ensurePrelude finalizes the coordinate transform the first time a
// non-comment token is seen.
func (ip *Interpreter) ensurePrelude() {
	if ip.preludeDone {
		return
	}
	ip.preludeDone = true
	ct, pageW, pageH := NewCoordinateTransform(ip.bbox, ip.paperW, ip.paperH)
	ip.ct = ct
	ip.current.WidthPts = pageW
	ip.current.HeightPts = pageH
}

func (ip *Interpreter) skipDict() error {
	depth := 1
	for depth > 0 {
		tok, err := ip.tok.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch tok.Kind {
		case TokDictOpen:
			depth++
		case TokDictClose:
			depth--
		}
	}
	return nil
}

func (ip *Interpreter) dispatch(tok Token) error {
	op := tok.Text
	line := tok.Line
	gs := ip.state.Current()

	switch op {
	case "gsave", "q":
		return ip.state.Push(op)
	case "grestore", "Q":
		ip.state.Pop()
	case "setlinewidth", "w":
		v, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		ip.state.Current().LineWidth = v
	case "setrgbcolor", "rg":
		b, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		g, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		r, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		ip.state.Current().ColorRGB = [3]float64{r, g, b}
	case "setgray":
		g, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		ip.state.Current().ColorRGB = [3]float64{g, g, g}
	case "moveto", "m":
		y, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		x, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		xp, yp := ip.ct.Apply(x, y)
		ip.acc.MoveTo(xp, yp)
		gs.CurrentX, gs.CurrentY = x, y
	case "lineto", "l":
		y, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		x, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		xp, yp := ip.ct.Apply(x, y)
		ip.acc.LineTo(xp, yp)
		gs.CurrentX, gs.CurrentY = x, y
	case "curveto", "c":
		y, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		x, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		y2, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		x2, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		y1, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		x1, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		c1x, c1y := ip.ct.Apply(x1, y1)
		c2x, c2y := ip.ct.Apply(x2, y2)
		xp, yp := ip.ct.Apply(x, y)
		ip.acc.CurveTo(c1x, c1y, c2x, c2y, xp, yp)
		gs.CurrentX, gs.CurrentY = x, y
	case "closepath", "h":
		ip.acc.ClosePath()
	case "newpath":
		ip.acc.Discard()
	case "stroke", "s", "S":
		if elems := ip.acc.Flush(true); elems != nil {
			ip.commitPath(elems, gs)
		}
	case "fill", "f", "F":
		if elems := ip.acc.Flush(false); elems != nil {
			ip.commitPath(elems, gs)
		}
	case "findfont":
		name, err := ip.popName(op, line)
		if err != nil {
			return err
		}
		ip.operand.pushName(name)
	case "scalefont":
		size, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		name, err := ip.popName(op, line)
		if err != nil {
			return err
		}
		ip.state.Current().FontSize = size
		ip.operand.pushName(name)
	case "setfont":
		name, err := ip.popName(op, line)
		if err != nil {
			return err
		}
		if name != "" {
			ip.state.Current().FontName = name
		}
	case "show", "Tj":
		text, err := ip.popString(op, line)
		if err != nil {
			return err
		}
		ip.commitText(text)
	case "translate", "scale", "rotate", "concat":
		return ip.recordCTM(op, line, gs)
	case "showpage":
		ip.finishPage()
	case "setpagedevice":
		ip.operand.clear()
	default:
		ip.warnf("%s:%d: unknown operator %q, ignoring", ip.path, line, op)
	}
	return nil
}

// commitPath appends a completed path batch to the current page,
// carrying the color and line width in effect when the paint operator
// that terminated it ran -- the same way commitText (below) captures
// gs.ColorRGB for a Tj placement.
func (ip *Interpreter) commitPath(elems []PathElement, gs *GraphicsState) {
	ip.current.Items = append(ip.current.Items, Item{PathBatch: &PathBatch{
		Elements:  elems,
		Color:     gs.ColorRGB,
		LineWidth: gs.LineWidth,
	}})
}

func (ip *Interpreter) commitText(text []byte) {
	gs := ip.state.Current()
	xp, yp := ip.ct.Apply(gs.CurrentX, gs.CurrentY)
	ip.current.Items = append(ip.current.Items, Item{Text: &TextElement{
		X: xp, Y: yp,
		Text:     text,
		FontName: gs.FontName,
		FontSize: gs.FontSize,
		Color:    gs.ColorRGB,
	}})
}

// recordCTM folds a CTM-affecting operator into gs.CTM without applying
// it to any coordinate: this subset records the accumulated matrix for
// diagnostics only.
func (ip *Interpreter) recordCTM(op string, line int, gs *GraphicsState) error {
	var m geom2d.Matrix
	switch op {
	case "translate":
		dy, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		dx, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		m = geom2d.Translate(dx, dy)
	case "scale":
		sy, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		sx, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		m = geom2d.Scale(sx, sy)
	case "rotate":
		degrees, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		m = geom2d.Rotate(degrees)
	case "concat":
		f, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		e, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		d, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		c, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		b, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		a, err := ip.popNumber(op, line)
		if err != nil {
			return err
		}
		m = geom2d.Matrix{A: a, B: b, C: c, D: d, E: e, F: f}
	default:
		return nil
	}
	gs.CTM = m.Mul(gs.CTM)
	return nil
}

// finishPage closes the current page on showpage and opens a fresh one
// in its place. A page only enters the document by being closed this
// way; a dangling page left open when the input ends is dropped by Run
// rather than appended here.
func (ip *Interpreter) finishPage() {
	ip.flushDanglingPath()
	ip.pages = append(ip.pages, ip.current)
	ct, pageW, pageH := NewCoordinateTransform(ip.bbox, ip.paperW, ip.paperH)
	ip.ct = ct
	ip.current = &Page{WidthPts: pageW, HeightPts: pageH}
}

// flushDanglingPath discards any path accumulated but never painted by
// stroke or fill when a page boundary is reached.
func (ip *Interpreter) flushDanglingPath() {
	if !ip.preludeDone {
		ip.ensurePrelude()
	}
	ip.acc.Discard()
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func trimField(s, prefix string) string {
	s = s[len(prefix):]
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}

func parseBoundingBox(s string) (BoundingBox, bool) {
	var nums [4]float64
	idx := 0
	i := 0
	for idx < 4 {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		start := i
		for i < len(s) && s[i] != ' ' && s[i] != '\t' {
			i++
		}
		if start == i {
			return BoundingBox{}, false
		}
		v, err := strconv.ParseFloat(s[start:i], 64)
		if err != nil {
			return BoundingBox{}, false
		}
		nums[idx] = v
		idx++
	}
	return BoundingBox{X1: nums[0], Y1: nums[1], X2: nums[2], Y2: nums[3], Valid: true}, true
}
