package elisp

import (
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokLbr TokenKind = iota // opening bracket
	TokRbr                  // closing bracket
	TokAtm                  // atom: an integer or a symbol
	TokStr                  // string literal
	TokQot                  // quote marker '
)

// Token is a lexical token. Ch is the bracket character of TokLbr and
// TokRbr; Text is the contents of TokAtm and TokStr.
type Token struct {
	Kind TokenKind
	Ch   rune
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case TokLbr, TokRbr:
		return string(t.Ch)
	case TokStr:
		return `"` + t.Text + `"`
	case TokQot:
		return "'"
	}
	return t.Text
}

// Tokenizer splits a source text into tokens lazily.
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer constructs a tokenizer reading src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// tz.Reset() restarts tz from the beginning of its source.
func (tz *Tokenizer) Reset() {
	tz.pos = 0
}

// Next returns the next token.
// It returns io.EOF when the source runs out.
func (tz *Tokenizer) Next() (Token, error) {
	tz.skipBlank()
	if tz.pos >= len(tz.src) {
		return Token{}, io.EOF
	}
	c, size := utf8.DecodeRuneInString(tz.src[tz.pos:])
	switch {
	case c == '(' || c == '[':
		tz.pos += size
		return Token{Kind: TokLbr, Ch: c}, nil
	case c == ')' || c == ']':
		tz.pos += size
		return Token{Kind: TokRbr, Ch: c}, nil
	case c == '\'':
		tz.pos += size
		return Token{Kind: TokQot}, nil
	case c == '"':
		return tz.readString()
	}
	start := tz.pos
	for tz.pos < len(tz.src) {
		c, size = utf8.DecodeRuneInString(tz.src[tz.pos:])
		if isDelimiter(c) {
			break
		}
		tz.pos += size
	}
	return Token{Kind: TokAtm, Text: tz.src[start:tz.pos]}, nil
}

// All returns the remaining tokens.
func (tz *Tokenizer) All() ([]Token, error) {
	var tt []Token
	for {
		t, err := tz.Next()
		if err == io.EOF {
			return tt, nil
		} else if err != nil {
			return nil, err
		}
		tt = append(tt, t)
	}
}

// skipBlank skips white space and comments.
func (tz *Tokenizer) skipBlank() {
	for tz.pos < len(tz.src) {
		c, size := utf8.DecodeRuneInString(tz.src[tz.pos:])
		if c == ';' {
			if i := strings.IndexByte(tz.src[tz.pos:], '\n'); i >= 0 {
				tz.pos += i + 1
			} else {
				tz.pos = len(tz.src)
			}
		} else if unicode.IsSpace(c) {
			tz.pos += size
		} else {
			return
		}
	}
}

func (tz *Tokenizer) readString() (Token, error) {
	start := tz.pos
	i := tz.pos + 1
	for i < len(tz.src) {
		switch tz.src[i] {
		case '\\':
			i += 2
			continue
		case '"':
			s := escapePat.ReplaceAllStringFunc(tz.src[start+1:i],
				func(t string) string {
					r, ok := escapes[t]
					if !ok {
						r = t // Leave any other escape sequence as it is.
					}
					return r
				})
			tz.pos = i + 1
			return Token{Kind: TokStr, Text: s}, nil
		}
		i++
	}
	tz.pos = len(tz.src)
	err := NewSyntaxError("unterminated string: %s", tz.src[start:])
	err.Incomplete = true
	return Token{}, err
}

func isDelimiter(c rune) bool {
	switch c {
	case '(', ')', '[', ']', '\'', '"', ';':
		return true
	}
	return unicode.IsSpace(c)
}

// escapePat is a reg. expression to take an escape sequence out of a string.
var escapePat = regexp.MustCompile(`\\(.)`)

// escapes is a mapping from an escape sequence to its string value.
var escapes = map[string]string{
	`\\`: `\`,
	`\"`: `"`,
	`\n`: "\n", `\r`: "\r", `\f`: "\f", `\b`: "\b", `\t`: "\t", `\v`: "\v",
}
