package ps

import (
	"io"
	"strings"
	"testing"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tz := NewTokenizer(strings.NewReader(src), "")
	var toks []Token
	for {
		tok, err := tz.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tokenizer error: %s", err)
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestTokenizeNumbers(t *testing.T) {
	toks := tokenize(t, "1 -3.5 2.5e-3")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	want := []float64{1, -3.5, 2.5e-3}
	for i, tok := range toks {
		if tok.Kind != TokNumber || tok.Number != want[i] {
			t.Errorf("token %d = %v, want Number(%v)", i, tok, want[i])
		}
	}
}

func TestTokenizeOperatorsAndNames(t *testing.T) {
	toks := tokenize(t, "moveto /Helvetica findfont")
	if toks[0].Kind != TokOperator || toks[0].Text != "moveto" {
		t.Errorf("token 0 = %v", toks[0])
	}
	if toks[1].Kind != TokName || toks[1].Text != "Helvetica" || !toks[1].Literal {
		t.Errorf("token 1 = %v", toks[1])
	}
	if toks[2].Kind != TokOperator || toks[2].Text != "findfont" {
		t.Errorf("token 2 = %v", toks[2])
	}
}

func TestTokenizeLiteralString(t *testing.T) {
	toks := tokenize(t, `(Hello \(World\)\n)`)
	if len(toks) != 1 || toks[0].Kind != TokLiteralString {
		t.Fatalf("got %v", toks)
	}
	want := "Hello (World)\n"
	if string(toks[0].Bytes) != want {
		t.Errorf("got %q, want %q", toks[0].Bytes, want)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tz := NewTokenizer(strings.NewReader("(unterminated"), "in.ps")
	_, err := tz.Next()
	if err == nil {
		t.Fatal("expected an error for an unterminated literal string")
	}
}

func TestTokenizeDSCComment(t *testing.T) {
	toks := tokenize(t, "%%BoundingBox: 0 0 100 100\n% a regular comment\nshowpage")
	if toks[0].Kind != TokDSCComment || toks[0].Text != "BoundingBox: 0 0 100 100" {
		t.Errorf("token 0 = %v", toks[0])
	}
	if toks[1].Kind != TokLineComment {
		t.Errorf("token 1 = %v, want LineComment", toks[1])
	}
	if toks[2].Kind != TokOperator || toks[2].Text != "showpage" {
		t.Errorf("token 2 = %v", toks[2])
	}
}

func TestTokenizeRadixNumbers(t *testing.T) {
	toks := tokenize(t, "8#1777 16#FF 2#1010")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	want := []float64{1023, 255, 10}
	for i, tok := range toks {
		if tok.Kind != TokNumber || tok.Number != want[i] {
			t.Errorf("token %d = %v, want Number(%v)", i, tok, want[i])
		}
	}
}

func TestTokenizeMalformedNumberDegradesToName(t *testing.T) {
	toks := tokenize(t, "1.2.3 moveto")
	if toks[0].Kind != TokName {
		t.Errorf("token 0 = %v, want degraded Name", toks[0])
	}
}

func TestTokenizeDictLiteral(t *testing.T) {
	toks := tokenize(t, "<< /PageSize [612 792] >> setpagedevice")
	if toks[0].Kind != TokDictOpen {
		t.Errorf("token 0 = %v, want DictOpen", toks[0])
	}
	if toks[len(toks)-2].Kind != TokDictClose {
		t.Errorf("second-to-last token = %v, want DictClose", toks[len(toks)-2])
	}
}
