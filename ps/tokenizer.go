package ps

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"parchment.dev/ps2pdf/pdferr"
)

// operators is the recognized operator table (both long and PDF-style
// short forms), used by the tokenizer to classify a bare name as
// TokOperator rather than TokName.
var operators = map[string]bool{
	"gsave": true, "q": true,
	"grestore": true, "Q": true,
	"setlinewidth": true, "w": true,
	"setrgbcolor": true, "rg": true,
	"setgray":  true,
	"moveto":   true, "m": true,
	"lineto":   true, "l": true,
	"curveto":  true, "c": true,
	"closepath": true, "h": true,
	"newpath": true,
	"stroke":  true, "s": true, "S": true,
	"fill": true, "f": true, "F": true,
	"findfont":     true,
	"scalefont":    true,
	"setfont":      true,
	"show":         true, "Tj": true,
	"translate": true, "scale": true, "rotate": true, "concat": true,
	"showpage":     true,
	"setpagedevice": true,
}

// IsOperator reports whether name is in the recognized operator table.
func IsOperator(name string) bool { return operators[name] }

// Tokenizer splits a PostScript byte stream into tokens lazily, one
// Next call per token.
type Tokenizer struct {
	r        *bufio.Reader
	path     string
	line     int
	lastByte byte // last byte returned by readByte, for unreadByte's line bookkeeping
}

// NewTokenizer wraps r. path is carried into any TokenizeError raised,
// for the diagnostic line a caller might print.
func NewTokenizer(r io.Reader, path string) *Tokenizer {
	return &Tokenizer{r: bufio.NewReader(r), path: path, line: 1}
}

func (t *Tokenizer) readByte() (byte, error) {
	b, err := t.r.ReadByte()
	if err == nil {
		if b == '\n' {
			t.line++
		}
		t.lastByte = b
	}
	return b, err
}

// unreadByte pushes the last-read byte back, undoing the line-counter
// bump readByte applied if that byte was a newline.
func (t *Tokenizer) unreadByte() {
	if t.lastByte == '\n' {
		t.line--
	}
	_ = t.r.UnreadByte()
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return isWhitespace(b)
}

// Next returns the next token, or io.EOF when the stream is exhausted.
func (t *Tokenizer) Next() (Token, error) {
	for {
		b, err := t.readByte()
		if err != nil {
			return Token{}, err
		}
		if isWhitespace(b) {
			continue
		}
		startLine := t.line

		switch {
		case b == '%':
			return t.readComment(startLine)
		case b == '(':
			return t.readLiteralString(startLine)
		case b == '/':
			return t.readName(startLine, true)
		case b == '<':
			nb, err := t.readByte()
			if err == nil && nb == '<' {
				return Token{Kind: TokDictOpen, Line: startLine}, nil
			}
			if err == nil {
				t.unreadByte()
			}
			return Token{Kind: TokName, Text: "<", Line: startLine}, nil
		case b == '>':
			nb, err := t.readByte()
			if err == nil && nb == '>' {
				return Token{Kind: TokDictClose, Line: startLine}, nil
			}
			if err == nil {
				t.unreadByte()
			}
			return Token{Kind: TokName, Text: ">", Line: startLine}, nil
		case (b >= '0' && b <= '9') || b == '-' || b == '+' || b == '.':
			t.unreadByte()
			return t.readNumberOrName(startLine)
		case b == '[' || b == ']' || b == '{' || b == '}' || b == ')':
			// Array and procedure literals are not part of the
			// recognized operator subset; surface the bracket as an
			// inert single-character name so the interpreter's default
			// "unknown operator" recovery can skip past it.
			return Token{Kind: TokName, Text: string(b), Line: startLine}, nil
		default:
			t.unreadByte()
			return t.readName(startLine, false)
		}
	}
}

func (t *Tokenizer) readComment(startLine int) (Token, error) {
	b, err := t.readByte()
	dsc := false
	if err == nil && b == '%' {
		dsc = true
	} else if err == nil {
		t.unreadByte()
	}

	var buf []byte
	for {
		b, err := t.readByte()
		if err != nil || b == '\n' {
			break
		}
		buf = append(buf, b)
	}
	if dsc {
		return Token{Kind: TokDSCComment, Text: string(buf), Line: startLine}, nil
	}
	return Token{Kind: TokLineComment, Line: startLine}, nil
}

func (t *Tokenizer) readLiteralString(startLine int) (Token, error) {
	var buf []byte
	depth := 1
	for {
		b, err := t.readByte()
		if err != nil {
			return Token{}, &pdferr.TokenizeError{
				Path: t.path, Line: startLine,
				Message: "unterminated literal string",
			}
		}
		switch b {
		case '(':
			depth++
			buf = append(buf, b)
		case ')':
			depth--
			if depth == 0 {
				return Token{Kind: TokLiteralString, Bytes: buf, Line: startLine}, nil
			}
			buf = append(buf, b)
		case '\\':
			esc, err := t.readEscape()
			if err != nil {
				return Token{}, &pdferr.TokenizeError{
					Path: t.path, Line: startLine,
					Message: "malformed escape sequence at end of file",
				}
			}
			if esc != nil {
				buf = append(buf, esc...)
			}
		default:
			buf = append(buf, b)
		}
	}
}

func (t *Tokenizer) readEscape() ([]byte, error) {
	b, err := t.readByte()
	if err != nil {
		return nil, err
	}
	switch b {
	case 'n':
		return []byte{'\n'}, nil
	case 'r':
		return []byte{'\r'}, nil
	case 't':
		return []byte{'\t'}, nil
	case 'b':
		return []byte{'\b'}, nil
	case 'f':
		return []byte{'\f'}, nil
	case '\\':
		return []byte{'\\'}, nil
	case '(':
		return []byte{'('}, nil
	case ')':
		return []byte{')'}, nil
	case '\n':
		return nil, nil // line continuation: escaped newline is dropped
	case '\r':
		return nil, nil
	default:
		if b >= '0' && b <= '7' {
			val := int(b - '0')
			for i := 0; i < 2; i++ {
				nb, err := t.readByte()
				if err != nil || nb < '0' || nb > '7' {
					if err == nil {
						t.unreadByte()
					}
					break
				}
				val = val*8 + int(nb-'0')
			}
			return []byte{byte(val)}, nil
		}
		return []byte{b}, nil
	}
}

func (t *Tokenizer) readName(startLine int, literal bool) (Token, error) {
	var buf []byte
	for {
		b, err := t.readByte()
		if err != nil {
			break
		}
		if isDelimiter(b) {
			t.unreadByte()
			break
		}
		buf = append(buf, b)
	}
	name := string(buf)
	if !literal && IsOperator(name) {
		return Token{Kind: TokOperator, Text: name, Line: startLine}, nil
	}
	return Token{Kind: TokName, Text: name, Literal: literal, Line: startLine}, nil
}

func (t *Tokenizer) readNumberOrName(startLine int) (Token, error) {
	var buf []byte
	for {
		b, err := t.readByte()
		if err != nil {
			break
		}
		if isDelimiter(b) {
			t.unreadByte()
			break
		}
		buf = append(buf, b)
	}
	text := string(buf)
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return Token{Kind: TokNumber, Number: v, Line: startLine}, nil
	}
	if v, ok := parseRadixNumber(text); ok {
		return Token{Kind: TokNumber, Number: v, Line: startLine}, nil
	}
	// Malformed number degrades to a Name token.
	if IsOperator(text) {
		return Token{Kind: TokOperator, Text: text, Line: startLine}, nil
	}
	return Token{Kind: TokName, Text: text, Line: startLine}, nil
}

// parseRadixNumber parses a PostScript radix number of the form
// base#digits (e.g. "8#1777", "16#FF"), base in [2, 36]. Returns
// ok=false for anything else, so the caller's normal fallback chain
// still applies.
func parseRadixNumber(text string) (float64, bool) {
	hash := strings.IndexByte(text, '#')
	if hash <= 0 || hash == len(text)-1 {
		return 0, false
	}
	base, err := strconv.Atoi(text[:hash])
	if err != nil || base < 2 || base > 36 {
		return 0, false
	}
	v, err := strconv.ParseInt(text[hash+1:], base, 64)
	if err != nil {
		return 0, false
	}
	return float64(v), true
}
