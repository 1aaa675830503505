package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"parchment.dev/ps2pdf/document"
)

// runPS writes src to a temp .ps file, converts it with Process, and
// returns the resulting PDF bytes.
func runPS(t *testing.T, src string, log Logger) []byte {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ps")
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.pdf")

	opts := document.ProcessingOptions{
		InputFiles:         []string{in},
		OutputFile:         out,
		DeviceName:         "pdfwrite",
		PaperSize:          document.A4,
		CompatibilityLevel: 7,
	}
	if _, err := Process(context.Background(), opts, log, nil); err != nil {
		t.Fatalf("Process() error: %s", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// objCount reports the number of "<n> 0 obj" headers in a PDF byte
// stream.
func objCount(data []byte) int {
	return len(regexp.MustCompile(`\d+ 0 obj\n`).FindAll(data, -1))
}

func TestProcessEmptyDocumentProducesFiveObjects(t *testing.T) {
	data := runPS(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\nshowpage\n", nil)

	if !bytes.HasPrefix(data, []byte("%PDF-1.7\n")) {
		t.Errorf("header = %q, want prefix %%PDF-1.7", data[:9])
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Errorf("output does not end with %%%%EOF")
	}
	if n := objCount(data); n != 5 {
		t.Errorf("object count = %d, want 5 (Catalog, Pages, Page, Contents, Font)", n)
	}
}

func TestProcessSingleStrokedLineContentStream(t *testing.T) {
	data := runPS(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"10 10 moveto 90 90 lineto stroke showpage\n", nil)

	stream := contentStreamOf(t, data, 0)
	ops := operatorSequence(stream)
	want := []string{"q", "m", "l", "S", "Q"}
	if !equalOpSeq(ops, want) {
		t.Errorf("operator sequence = %v, want %v", ops, want)
	}
	if bytes.Contains(stream.stream, []byte("BT\n")) || bytes.Contains(stream.stream, []byte("ET\n")) {
		t.Error("content stream contains a text block for a stroke-only page")
	}
}

func TestProcessTwoPageDocumentWithText(t *testing.T) {
	data := runPS(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 612 792\n"+
		"/Helvetica findfont 12 scalefont setfont 100 100 moveto (Hello) show showpage "+
		"100 100 moveto (World) show showpage\n", nil)

	if !bytes.Contains(data, []byte("/Count 2")) {
		t.Error("Pages dictionary missing /Count 2")
	}
	kids := regexp.MustCompile(`/Kids \[[^\]]*\]`).Find(data)
	if kids == nil {
		t.Fatal("no /Kids array found")
	}
	if n := bytes.Count(kids, []byte(" R")); n != 2 {
		t.Errorf("/Kids has %d references, want 2: %s", n, kids)
	}

	p0 := contentStreamOf(t, data, 0)
	p1 := contentStreamOf(t, data, 1)
	for _, want := range []struct {
		stream contentStreamResult
		text   string
	}{{p0, "Hello"}, {p1, "World"}} {
		if !bytes.Contains(want.stream.stream, []byte("BT\n")) || !bytes.Contains(want.stream.stream, []byte("ET\n")) {
			t.Errorf("content stream missing BT/ET block: %s", want.stream.stream)
		}
		if !bytes.Contains(want.stream.stream, []byte("("+want.text+") Tj")) {
			t.Errorf("content stream = %s, want it to contain (%s) Tj", want.stream.stream, want.text)
		}
	}
}

func TestProcessClosedTriangleFillOperatorOrder(t *testing.T) {
	data := runPS(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"0 0 moveto 100 0 lineto 50 86 lineto closepath fill showpage\n", nil)

	stream := contentStreamOf(t, data, 0)
	ops := operatorSequence(stream)
	want := []string{"q", "m", "l", "l", "h", "f", "Q"}
	if !equalOpSeq(ops, want) {
		t.Errorf("operator sequence = %v, want %v", ops, want)
	}
}

func TestProcessMalformedOperatorWarnsAndSucceeds(t *testing.T) {
	log := &capturingLogger{}
	data := runPS(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"10 10 moveto BOGUS 90 90 lineto stroke showpage\n", log)

	if len(log.lines) == 0 {
		t.Error("expected a warning diagnostic for the unrecognized operator")
	}
	stream := contentStreamOf(t, data, 0)
	ops := operatorSequence(stream)
	want := []string{"q", "m", "l", "S", "Q"}
	if !equalOpSeq(ops, want) {
		t.Errorf("operator sequence = %v, want %v despite the bogus operator", ops, want)
	}
}

func TestProcessContentStreamLengthIsExact(t *testing.T) {
	data := runPS(t, "%!PS-Adobe-3.0\n%%BoundingBox: 0 0 100 100\n"+
		"10 10 moveto 90 90 lineto stroke showpage\n", nil)

	lengthRe := regexp.MustCompile(`/Length (\d+)\s*>>\nstream\n`)
	loc := lengthRe.FindSubmatchIndex(data)
	if loc == nil {
		t.Fatal("no content-stream /Length entry found")
	}
	wantLen, err := strconv.Atoi(string(data[loc[2]:loc[3]]))
	if err != nil {
		t.Fatal(err)
	}
	streamStart := loc[1]
	end := bytes.Index(data[streamStart:], []byte("\nendstream"))
	if end < 0 {
		t.Fatal("no endstream found")
	}
	if end != wantLen {
		t.Errorf("/Length = %d, actual stream body is %d bytes", wantLen, end)
	}
}

type capturingLogger struct {
	lines []string
}

func (l *capturingLogger) Printf(format string, args ...any) {
	l.lines = append(l.lines, format)
}

type contentStreamResult struct {
	stream []byte
}

// contentStreamOf extracts the nth content stream's body (between
// "stream\n" and "\nendstream") from a serialized PDF, in object order.
func contentStreamOf(t *testing.T, data []byte, n int) contentStreamResult {
	t.Helper()
	streams := regexp.MustCompile(`(?s)\nstream\n(.*?)\nendstream`).FindAllSubmatch(data, -1)
	if n >= len(streams) {
		t.Fatalf("got %d content streams, want at least %d", len(streams), n+1)
	}
	return contentStreamResult{stream: streams[n][1]}
}

// operatorSequence strips everything but the bare operator tokens (q,
// Q, m, l, c, h, f, S) from a content stream, in order, so a test can
// assert their relative order without caring about operand values or
// the color/line-width operators a path batch emits alongside them.
func operatorSequence(c contentStreamResult) []string {
	var out []string
	for _, line := range bytes.Split(c.stream, []byte("\n")) {
		fields := bytes.Fields(line)
		if len(fields) == 0 {
			continue
		}
		last := string(fields[len(fields)-1])
		switch last {
		case "q", "Q", "m", "l", "c", "h", "f", "S":
			out = append(out, last)
		}
	}
	return out
}

func equalOpSeq(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
