package elisp

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func read(t *testing.T, src string) *Sexp {
	t.Helper()
	x, err := Read(src)
	if err != nil {
		t.Fatalf("Read(%q): %v", src, err)
	}
	return x
}

func countLeaves(x Any) int {
	j, ok := x.(*Sexp)
	if !ok {
		return 1
	}
	n := 0
	for _, e := range j.List {
		n += countLeaves(e)
	}
	return n
}

func TestReadLeafCount(t *testing.T) {
	for _, src := range []string{
		"",
		"(+ 1 2)",
		`(a (b [c d]) "s")`,
		"1 2 3",
		"((()))",
		"[x (y [z]) w] (v)",
	} {
		tt := tokens(t, src)
		want := 0
		for _, tok := range tt {
			if tok.Kind == TokAtm || tok.Kind == TokStr {
				want++
			}
		}
		if got := countLeaves(read(t, src)); got != want {
			t.Errorf("%q: want %d leaves, got %d", src, want, got)
		}
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		src        string
		msg        string
		incomplete bool
	}{
		{"(+ 1 2", "unmatched '('", true},
		{"(+ 1 [2", "unmatched '['", true},
		{"(+ 1 2))", "there are more ')' than '('", false},
		{"(+ 1 2]", "mismatch '(' with ']'", false},
		{"(a ')", "can't quote closing delimiter ')'", false},
		{"'", "nothing to quote", true},
		{`"abc`, "unterminated string", true},
		{"(a '", "unmatched '('", true},
		{"[a (b ''", "unmatched '('", true},
		{"'[a", "unmatched '['", true},
	}
	for _, tc := range tests {
		_, err := Read(tc.src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: want *SyntaxError, got %v", tc.src, err)
			continue
		}
		if !strings.Contains(se.Message, tc.msg) {
			t.Errorf("%q: want message containing %q, got %q", tc.src, tc.msg, se.Message)
		}
		if se.Incomplete != tc.incomplete {
			t.Errorf("%q: want Incomplete=%v", tc.src, tc.incomplete)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: errors.Is(err, ErrSyntax) is false", tc.src)
		}
	}
}

func TestReadQuoteSugar(t *testing.T) {
	sugar := read(t, "'(1 2 3)")
	plain := read(t, "(quote (1 2 3))")
	if !reflect.DeepEqual(sugar, plain) {
		t.Fatalf("'(1 2 3) read as %v, (quote (1 2 3)) as %v", sugar, plain)
	}
}

func TestReadQuoteWrapsOneForm(t *testing.T) {
	tests := []struct{ src, want string }{
		{"('a b)", "((quote a) b)"},
		{"(f '(x y) z)", "(f (quote (x y)) z)"},
		{"''a", "(quote (quote a))"},
		{"'[1 2] 3", "(quote [1 2])"},
	}
	for _, tc := range tests {
		x := read(t, tc.src)
		if got := Str(x.List[0]); got != tc.want {
			t.Errorf("%q: want %s, got %s", tc.src, tc.want, got)
		}
	}
	if x := read(t, "'[1 2] 3"); x.Len() != 2 || x.List[1] != int32(3) {
		t.Errorf("quote leaked into the next sibling: %v", x)
	}
}

func TestReadAtoms(t *testing.T) {
	x := read(t, `-5 +7 12x 2147483648 "7" foo`)
	want := []Any{int32(-5), int32(7), Sym("12x"), Sym("2147483648"), "7", Sym("foo")}
	if !reflect.DeepEqual(x.List, want) {
		t.Fatalf("want %#v, got %#v", want, x.List)
	}
}

func TestReadDelimiters(t *testing.T) {
	x := read(t, "[1 (2)]")
	if x.Delim != RootDelim {
		t.Fatalf("root delimiter: want %c, got %c", RootDelim, x.Delim)
	}
	outer := x.List[0].(*Sexp)
	if outer.Delim != '[' {
		t.Errorf("want '[', got %c", outer.Delim)
	}
	if inner := outer.List[1].(*Sexp); inner.Delim != '(' {
		t.Errorf("want '(', got %c", inner.Delim)
	}
	if got := Str(outer); got != "[1 (2)]" {
		t.Errorf("want [1 (2)], got %s", got)
	}
}

func TestReaderReusable(t *testing.T) {
	rr := NewReader("(a b)")
	x1, err := rr.Read()
	if err != nil {
		t.Fatal(err)
	}
	x2, err := rr.Read()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(x1, x2) || x1 == x2 {
		t.Fatalf("second Read should rebuild an equal tree")
	}
}
