package ps

import (
	"strings"
	"testing"

	"parchment.dev/ps2pdf/pdferr"
)

type countingLogger struct {
	lines []string
}

func (l *countingLogger) Printf(format string, args ...any) {
	l.lines = append(l.lines, format)
}

func run(t *testing.T, src string) *Document {
	t.Helper()
	ip := NewInterpreter(strings.NewReader(src), "in.ps", 595.276, 841.890, nil)
	doc, err := ip.Run()
	if err != nil {
		t.Fatalf("Run() error: %s", err)
	}
	return doc
}

func TestInterpreterEmptyDocument(t *testing.T) {
	doc := run(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\nshowpage\n")
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}
	if len(doc.Pages[0].Items) != 0 {
		t.Errorf("page has %d items, want 0", len(doc.Pages[0].Items))
	}
	if !doc.BBox.Valid || doc.BBox.X2 != 100 {
		t.Errorf("BBox = %+v", doc.BBox)
	}
}

func TestInterpreterSingleStrokedLine(t *testing.T) {
	doc := run(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"10 10 moveto 90 90 lineto stroke showpage\n")
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}
	items := doc.Pages[0].Items
	if len(items) != 1 || items[0].PathBatch == nil {
		t.Fatalf("got %v, want a single path batch", items)
	}
	batch := items[0].PathBatch
	var moves, lines int
	for _, el := range batch.Elements {
		switch el.Kind {
		case ElemMoveTo:
			moves++
		case ElemLineTo:
			lines++
		}
	}
	if moves != 1 || lines != 1 {
		t.Errorf("got %d moves, %d lines, want 1 and 1", moves, lines)
	}
	if batch.Elements[len(batch.Elements)-1].Kind != ElemPaintStroke {
		t.Errorf("last element = %v, want PaintStroke", batch.Elements[len(batch.Elements)-1])
	}
	if batch.Color != [3]float64{0, 0, 0} || batch.LineWidth != 1 {
		t.Errorf("batch attrs = color %v, width %v, want default black, width 1", batch.Color, batch.LineWidth)
	}
}

func TestInterpreterTwoPagesWithText(t *testing.T) {
	doc := run(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 612 792\n"+
		"/Helvetica findfont 12 scalefont setfont 100 100 moveto (Hello) show showpage "+
		"100 100 moveto (World) show showpage\n")
	if len(doc.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(doc.Pages))
	}
	for i, want := range []string{"Hello", "World"} {
		items := doc.Pages[i].Items
		if len(items) != 1 || items[0].Text == nil {
			t.Fatalf("page %d items = %v, want a single TextElement", i, items)
		}
		if string(items[0].Text.Text) != want {
			t.Errorf("page %d text = %q, want %q", i, items[0].Text.Text, want)
		}
	}
}

func TestInterpreterClosedTriangleFill(t *testing.T) {
	doc := run(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"0 0 moveto 100 0 lineto 50 86 lineto closepath fill showpage\n")
	batch := doc.Pages[0].Items[0].PathBatch
	var kinds []ElementKind
	for _, el := range batch.Elements {
		kinds = append(kinds, el.Kind)
	}
	want := []ElementKind{ElemMoveTo, ElemLineTo, ElemLineTo, ElemClosePath, ElemPaintFill}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestInterpreterGsaveGrestoreIsolation(t *testing.T) {
	doc := run(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"0.5 0.5 0.5 setrgbcolor "+
		"gsave 1 0 0 setrgbcolor 0 0 moveto 10 0 lineto stroke grestore "+
		"0 0 moveto 20 0 lineto stroke showpage\n")
	items := doc.Pages[0].Items
	if len(items) != 2 {
		t.Fatalf("got %d path batches, want 2", len(items))
	}
	if items[0].PathBatch == nil || items[1].PathBatch == nil {
		t.Fatalf("items = %+v, want both to be path batches", items)
	}
	if got := items[0].PathBatch.Color; got != [3]float64{1, 0, 0} {
		t.Errorf("first stroke color = %v, want red (set inside gsave)", got)
	}
	if got := items[1].PathBatch.Color; got != [3]float64{0.5, 0.5, 0.5} {
		t.Errorf("second stroke color = %v, want gray (restored by grestore)", got)
	}
}

func TestInterpreterMalformedOperatorWarnsAndContinues(t *testing.T) {
	log := &countingLogger{}
	ip := NewInterpreter(strings.NewReader(
		"%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
			"10 10 moveto BOGUS 90 90 lineto stroke showpage\n"),
		"in.ps", 595.276, 841.890, log)
	doc, err := ip.Run()
	if err != nil {
		t.Fatalf("Run() error: %s, want success with a warning", err)
	}
	if len(log.lines) == 0 {
		t.Error("expected a warning diagnostic for the unrecognized operator")
	}
	batch := doc.Pages[0].Items[0].PathBatch
	var moves, lines int
	for _, el := range batch.Elements {
		switch el.Kind {
		case ElemMoveTo:
			moves++
		case ElemLineTo:
			lines++
		}
	}
	if moves != 1 || lines != 1 {
		t.Errorf("got %d moves, %d lines, want 1 and 1 despite the bogus operator", moves, lines)
	}
}

func TestInterpreterSetpagedeviceIsIgnored(t *testing.T) {
	doc := run(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"<< /PageSize [612 792] >> setpagedevice showpage\n")
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}
}

func TestInterpreterOperandStackUnderflowEscalates(t *testing.T) {
	log := &countingLogger{}
	ip := NewInterpreter(strings.NewReader(
		"%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\nmoveto\n"),
		"in.ps", 595.276, 841.890, log)
	_, err := ip.Run()
	underflow, ok := err.(*pdferr.InterpreterError)
	if !ok {
		t.Fatalf("err = %v (%T), want *pdferr.InterpreterError", err, err)
	}
	if underflow.Operator != "moveto" {
		t.Errorf("Operator = %q, want %q", underflow.Operator, "moveto")
	}
	if len(log.lines) == 0 {
		t.Error("expected a warning diagnostic logged before the escalation")
	}
}

func TestInterpreterOperandWrongKindDefaultsAndWarns(t *testing.T) {
	log := &countingLogger{}
	doc := func() *Document {
		ip := NewInterpreter(strings.NewReader(
			"%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
				"/notanumber setlinewidth 10 10 moveto 20 20 lineto stroke showpage\n"),
			"in.ps", 595.276, 841.890, log)
		doc, err := ip.Run()
		if err != nil {
			t.Fatalf("Run() error: %s, want success with a warning", err)
		}
		return doc
	}()
	if len(log.lines) == 0 {
		t.Error("expected a warning diagnostic for the wrong-kind operand")
	}
	batch := doc.Pages[0].Items[0].PathBatch
	if batch.LineWidth != 0 {
		t.Errorf("LineWidth = %v, want 0 (defaulted after the wrong-kind operand)", batch.LineWidth)
	}
}

func TestInterpreterDefaultBoundingBoxWhenAbsent(t *testing.T) {
	doc := run(t, "%!PS-Adobe-3.0\nshowpage\n")
	if doc.BBox.Valid {
		t.Errorf("BBox.Valid = true for an input with no %%%%BoundingBox comment")
	}
	if doc.BBox.X2 != 595.276 || doc.BBox.Y2 != 841.890 {
		t.Errorf("default bbox = %+v, want A4", doc.BBox)
	}
}
