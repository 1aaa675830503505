// Package convert assembles a parsed ps.Document into a PDF object
// graph and drives the Processor façade that ties the tokenizer,
// interpreter and serializer together.
package convert

import (
	"bytes"
	"fmt"

	pdf "parchment.dev/ps2pdf"
	"parchment.dev/ps2pdf/font/standard"
	"parchment.dev/ps2pdf/ps"
)

// renderContent composes the per-page content stream for pg: wrapped
// in q...Q, a fixed preamble setting default color/width/caps/joins,
// then one operator sequence per item.
func renderContent(pg *ps.Page) []byte {
	var buf bytes.Buffer
	buf.WriteString("q\n")
	buf.WriteString("1 w 1 J 1 j\n")
	buf.WriteString("0 0 0 RG 0 0 0 rg\n")

	for _, item := range pg.Items {
		switch {
		case item.PathBatch != nil:
			renderPathBatch(&buf, item.PathBatch)
		case item.Text != nil:
			renderText(&buf, item.Text)
		}
	}

	buf.WriteString("Q\n")
	return buf.Bytes()
}

// renderPathBatch emits the batch's color and line-width operators
// before its path ops, mirroring the per-item color renderText already
// emits for a Tj placement, so a batch always paints under the
// graphics state that was in effect when its paint operator ran rather
// than the fixed black/width-1 preamble.
func renderPathBatch(buf *bytes.Buffer, batch *ps.PathBatch) {
	r, g, b := num(batch.Color[0]), num(batch.Color[1]), num(batch.Color[2])
	fmt.Fprintf(buf, "%s %s %s RG %s %s %s rg\n", r, g, b, r, g, b)
	fmt.Fprintf(buf, "%s w\n", num(batch.LineWidth))
	for _, el := range batch.Elements {
		switch el.Kind {
		case ps.ElemMoveTo:
			fmt.Fprintf(buf, "%s %s m\n", num(el.X), num(el.Y))
		case ps.ElemLineTo:
			fmt.Fprintf(buf, "%s %s l\n", num(el.X), num(el.Y))
		case ps.ElemCurveTo:
			fmt.Fprintf(buf, "%s %s %s %s %s %s c\n",
				num(el.C1X), num(el.C1Y), num(el.C2X), num(el.C2Y), num(el.X), num(el.Y))
		case ps.ElemClosePath:
			buf.WriteString("h\n")
		case ps.ElemPaintStroke:
			buf.WriteString("S\n")
		case ps.ElemPaintFill:
			buf.WriteString("f\n")
		}
	}
}

func renderText(buf *bytes.Buffer, t *ps.TextElement) {
	buf.WriteString("BT\n")
	fmt.Fprintf(buf, "/%s %s Tf\n", standard.ResourceName, num(t.FontSize))
	fmt.Fprintf(buf, "%s %s %s rg\n", num(t.Color[0]), num(t.Color[1]), num(t.Color[2]))
	fmt.Fprintf(buf, "1 0 0 1 %s %s Tm\n", num(t.X), num(t.Y))
	fmt.Fprintf(buf, "%s Tj\n", pdf.Format(pdf.String(t.Text)))
	buf.WriteString("ET\n")
}

func num(v float64) string {
	return pdf.Format(pdf.Real(v))
}
