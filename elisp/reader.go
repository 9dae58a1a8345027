package elisp

import (
	"io"
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
)

type frameKind int

const (
	rootFrame frameKind = iota
	bracketFrame
	quoteFrame // (quote ...) waiting for exactly one form
)

// frame is an open insertion point of the reader.
type frame struct {
	kind frameKind
	sxp  *Sexp
}

// Reader builds expressions from tokens with an explicit stack of
// ancestors instead of recursion, so that ' can wrap the next form
// without consuming a bracket of its own.
type Reader struct {
	tz  *Tokenizer
	anc *arraystack.Stack // of *frame; the top is where forms are appended
}

// NewReader constructs a reader which will read src.
func NewReader(src string) *Reader {
	return &Reader{NewTokenizer(src), arraystack.New()}
}

// Read reads the whole source of rr as one root expression whose
// elements are the top-level forms.
func (rr *Reader) Read() (*Sexp, error) {
	rr.tz.Reset()
	rr.anc.Clear()
	root := &Sexp{Delim: RootDelim}
	rr.anc.Push(&frame{rootFrame, root})
	for {
		t, err := rr.tz.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		cur := rr.top()
		switch t.Kind {
		case TokLbr:
			x := &Sexp{Delim: t.Ch}
			cur.sxp.Push(x)
			rr.anc.Push(&frame{bracketFrame, x})
		case TokRbr:
			switch {
			case cur.kind == quoteFrame:
				return nil, NewSyntaxError("can't quote closing delimiter '%c'", t.Ch)
			case cur.kind == rootFrame:
				return nil, NewSyntaxError("there are more '%c' than '%c'",
					t.Ch, InvBrk(t.Ch))
			case cur.sxp.Delim != InvBrk(t.Ch):
				return nil, NewSyntaxError("mismatch '%c' with '%c'",
					cur.sxp.Delim, t.Ch)
			}
			rr.anc.Pop()
			rr.formDone()
		case TokAtm:
			cur.sxp.Push(parseAtom(t.Text))
			rr.formDone()
		case TokStr:
			cur.sxp.Push(t.Text)
			rr.formDone()
		case TokQot: // 'a => (quote a)
			x := NewSexp(Quote_)
			cur.sxp.Push(x)
			rr.anc.Push(&frame{quoteFrame, x})
		}
	}
	// The innermost open bracket is reported before a quote waiting in it.
	it := rr.anc.Iterator()
	for it.Next() {
		if f := it.Value().(*frame); f.kind == bracketFrame {
			err := NewSyntaxError("unmatched '%c'", f.sxp.Delim)
			err.Incomplete = true
			return nil, err
		}
	}
	if rr.top().kind == quoteFrame {
		err := NewSyntaxError("nothing to quote")
		err.Incomplete = true
		return nil, err
	}
	return root, nil
}

func (rr *Reader) top() *frame {
	f, _ := rr.anc.Peek()
	return f.(*frame)
}

// formDone closes every quote which has just received its form.
func (rr *Reader) formDone() {
	for {
		cur := rr.top()
		if cur.kind != quoteFrame || cur.sxp.Len() < 2 {
			return
		}
		rr.anc.Pop()
	}
}

func parseAtom(s string) Any {
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(i)
	}
	return Sym(s)
}

// InvBrk returns the bracket which pairs with c.
func InvBrk(c rune) rune {
	switch c {
	case '(':
		return ')'
	case ')':
		return '('
	case '[':
		return ']'
	case ']':
		return '['
	}
	return c
}

// Read reads src as a program.
func Read(src string) (*Sexp, error) {
	return NewReader(src).Read()
}
