/*
  A small Emacs-flavoured Lisp in Go.

  The printer and the error type are derived from
  Scheme in Go (https://github.com/nukata/scheme-in-go).
*/
package elisp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const Version = 0.10

type Any = interface{}

// Sentinel errors; every *SyntaxError and *EvalError matches one of them
// with errors.Is.
var (
	ErrSyntax          = errors.New("syntax-error")
	ErrUnboundVariable = errors.New("unbound-variable")
	ErrUnboundFunction = errors.New("unbound-function")
	ErrArity           = errors.New("arity-error")
	ErrType            = errors.New("type-error")
	ErrBuiltin         = errors.New("error")
)

// SyntaxError represents an error in reading.
// Incomplete is set when more input could complete the form.
type SyntaxError struct {
	Message    string
	Incomplete bool
}

// NewSyntaxError constructs a new SyntaxError.
func NewSyntaxError(format string, a ...Any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, a...)}
}

func (err *SyntaxError) Error() string {
	return "syntax error: " + err.Message
}

func (err *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ErrorKind classifies an EvalError.
type ErrorKind int

const (
	BuiltinError ErrorKind = iota
	UnboundVariable
	UnboundFunction
	ArityError
	TypeError
)

var kindErrors = map[ErrorKind]error{
	BuiltinError:    ErrBuiltin,
	UnboundVariable: ErrUnboundVariable,
	UnboundFunction: ErrUnboundFunction,
	ArityError:      ErrArity,
	TypeError:       ErrType,
}

func (k ErrorKind) String() string {
	return kindErrors[k].Error()
}

// EvalError represents an error in evaluation.
type EvalError struct {
	Kind    ErrorKind
	Message string
}

// NewEvalError constructs a new EvalError of kind whose message ends
// with the printed x.
func NewEvalError(kind ErrorKind, msg string, x Any) *EvalError {
	return &EvalError{kind, msg + ": " + Str(x)}
}

// Errorf constructs a BuiltinError.
func Errorf(format string, a ...Any) *EvalError {
	return &EvalError{BuiltinError, fmt.Sprintf(format, a...)}
}

// err.Error() returns a textual representation of err.
func (err *EvalError) Error() string {
	return err.Kind.String() + ": " + err.Message
}

func (err *EvalError) Unwrap() error {
	return kindErrors[err.Kind]
}

//----------------------------------------------------------------------

// Sym represents a symbol.
type Sym string

// Reserved symbols
const (
	T_      Sym = "t"
	Nil_    Sym = "nil"
	Quote_  Sym = "quote"
	Lambda_ Sym = "lambda"
	Progn_  Sym = "progn"
	Exit_   Sym = "exit"
)

// RootDelim is the delimiter of the expression holding a whole program.
const RootDelim = 'R'

// Sexp represents an expression: a list of values read between a pair of
// brackets (or the whole program, whose Delim is RootDelim).
// Dotted, if not nil, is the tail of an improper list built by cons.
type Sexp struct {
	Delim  rune
	List   []Any
	Dotted Any
}

// NewSexp constructs a round-bracket list of elems.
func NewSexp(elems ...Any) *Sexp {
	return &Sexp{Delim: '(', List: elems}
}

// Nil returns a new empty list.
func Nil() *Sexp {
	return &Sexp{Delim: '('}
}

// j.Len() returns the number of proper elements of j.
func (j *Sexp) Len() int {
	return len(j.List)
}

// j.Push(x) appends x to j.
func (j *Sexp) Push(x Any) {
	j.List = append(j.List, x)
}

// j.Car() returns the first element of j, or nil if j is empty.
func (j *Sexp) Car() Any {
	if len(j.List) == 0 {
		return Nil()
	}
	return j.List[0]
}

// j.Cdr() returns the rest of j without modifying j.
// The cdr of (a . b) is b.
func (j *Sexp) Cdr() Any {
	switch len(j.List) {
	case 0:
		return Nil()
	case 1:
		if j.Dotted != nil {
			return j.Dotted
		}
		return Nil()
	}
	rest := make([]Any, len(j.List)-1)
	copy(rest, j.List[1:])
	return &Sexp{Delim: '(', List: rest, Dotted: j.Dotted}
}

// j.String() returns a textual representation of the list j.
func (j *Sexp) String() string {
	return Str(j)
}

// Ref represents a shared mutable cell. Every value holding the same *Ref
// observes assignments made through any of them.
type Ref struct {
	Value Any
}

// NewRef boxes x in a new cell.
func NewRef(x Any) *Ref {
	return &Ref{x}
}

// Deref returns the value inside x if x is a *Ref, or x itself.
func Deref(x Any) Any {
	for {
		r, ok := x.(*Ref)
		if !ok {
			return x
		}
		x = r.Value
	}
}

// IsNil returns true if x is the empty list or the symbol nil.
func IsNil(x Any) bool {
	switch v := Deref(x).(type) {
	case Sym:
		return v == Nil_
	case *Sexp:
		return len(v.List) == 0 && v.Dotted == nil
	}
	return false
}

// Bool returns t or nil.
func Bool(b bool) Any {
	if b {
		return T_
	}
	return Nil()
}

// Copy returns a deep copy of the plain parts of x.
// Cells, closures and extensions are shared.
func Copy(x Any) Any {
	j, ok := x.(*Sexp)
	if !ok {
		return x
	}
	list := make([]Any, len(j.List))
	for i, e := range j.List {
		list[i] = Copy(e)
	}
	return &Sexp{Delim: j.Delim, List: list, Dotted: Copy(j.Dotted)}
}

//----------------------------------------------------------------------

// Str(x) returns a textual representation of Any x.
func Str(x Any) string {
	return Str2(x, true)
}

// Str2(x, quoteString) returns a textual representation of Any x.
// If quoteString is true, a string will be represented with quotes.
func Str2(a Any, quoteString bool) string {
	switch x := a.(type) {
	case nil:
		return "nil"
	case int32:
		return strconv.Itoa(int(x))
	case string:
		if quoteString {
			return strconv.Quote(x)
		}
		return x
	case Sym:
		return string(x)
	case *Sexp:
		return strSexp(x, quoteString)
	case *Ref:
		return Str2(x.Value, quoteString)
	case *Lambda:
		return x.String()
	case Extension:
		return strExtension(x, quoteString)
	}
	return fmt.Sprintf("%v", a)
}

func strSexp(x *Sexp, quoteString bool) string {
	if len(x.List) == 0 && x.Dotted == nil {
		return "nil"
	}
	opener, closer := "(", ")"
	if x.Delim == '[' {
		opener, closer = "[", "]"
	}
	s := make([]string, 0, len(x.List)+2)
	for _, e := range x.List {
		s = append(s, Str2(e, quoteString))
	}
	if x.Dotted != nil {
		s = append(s, ".", Str2(x.Dotted, quoteString))
	}
	return opener + strings.Join(s, " ") + closer
}
