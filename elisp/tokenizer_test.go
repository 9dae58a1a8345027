package elisp

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

func tokens(t *testing.T, src string) []Token {
	t.Helper()
	tt, err := NewTokenizer(src).All()
	if err != nil {
		t.Fatalf("All(%q): %v", src, err)
	}
	return tt
}

func TestTokenizerKinds(t *testing.T) {
	got := tokens(t, `(foo [1 "a b"] 'x) ; comment (ignored`)
	want := []Token{
		{Kind: TokLbr, Ch: '('},
		{Kind: TokAtm, Text: "foo"},
		{Kind: TokLbr, Ch: '['},
		{Kind: TokAtm, Text: "1"},
		{Kind: TokStr, Text: "a b"},
		{Kind: TokRbr, Ch: ']'},
		{Kind: TokQot},
		{Kind: TokAtm, Text: "x"},
		{Kind: TokRbr, Ch: ')'},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("\nwant: %v\ngot:  %v", want, got)
	}
}

func TestTokenizerAtomBoundaries(t *testing.T) {
	got := tokens(t, "a'b(c)\"d\"e")
	want := []Token{
		{Kind: TokAtm, Text: "a"},
		{Kind: TokQot},
		{Kind: TokAtm, Text: "b"},
		{Kind: TokLbr, Ch: '('},
		{Kind: TokAtm, Text: "c"},
		{Kind: TokRbr, Ch: ')'},
		{Kind: TokStr, Text: "d"},
		{Kind: TokAtm, Text: "e"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("\nwant: %v\ngot:  %v", want, got)
	}
}

func TestTokenizerStringEscapes(t *testing.T) {
	got := tokens(t, `"a\"b\n\\ \C-x"`)
	if len(got) != 1 || got[0].Kind != TokStr {
		t.Fatalf("want one string token, got %v", got)
	}
	if want := "a\"b\n\\ \\C-x"; got[0].Text != want {
		t.Fatalf("want %q, got %q", want, got[0].Text)
	}
}

func TestTokenizerUnterminatedString(t *testing.T) {
	_, err := NewTokenizer(`(print "abc`).All()
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("want syntax error, got %v", err)
	}
}

func TestTokenizerReset(t *testing.T) {
	tz := NewTokenizer("(a)")
	for i := 0; i < 3; i++ {
		if _, err := tz.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if _, err := tz.Next(); err != io.EOF {
		t.Fatalf("want io.EOF, got %v", err)
	}
	tz.Reset()
	tok, err := tz.Next()
	if err != nil || tok.Kind != TokLbr || tok.Ch != '(' {
		t.Fatalf("after Reset want '(', got %v, %v", tok, err)
	}
}

func TestTokenizerBlank(t *testing.T) {
	if got := tokens(t, "  \n\t ; only a comment\n"); len(got) != 0 {
		t.Fatalf("want no tokens, got %v", got)
	}
}
