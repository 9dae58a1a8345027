package elisp

import (
	"fmt"
	"strings"
)

// EvalOption tells whether the arguments of a function are evaluated
// before the call or passed as they are written.
type EvalOption int

const (
	Evaluated EvalOption = iota
	Unevaluated
)

// Func represents something which can be called with arguments.
type Func interface {
	EvalArgs() EvalOption
	Name() string
	Call(lsp *Lsp, args []Any) (Any, error)
}

// Subr represents an intrinsic subroutine.
type Subr = func(lsp *Lsp, args []Any) (Any, error)

// Builtin is a named Subr.
type Builtin struct {
	name string
	mode EvalOption
	fn   Subr
}

// NewBuiltin constructs a builtin function.
func NewBuiltin(name string, mode EvalOption, fn Subr) *Builtin {
	return &Builtin{name, mode, fn}
}

func (b *Builtin) EvalArgs() EvalOption { return b.mode }
func (b *Builtin) Name() string         { return b.name }

func (b *Builtin) Call(lsp *Lsp, args []Any) (Any, error) {
	return b.fn(lsp, args)
}

// b.String() returns "#<subr name>".
func (b *Builtin) String() string {
	return "#<subr " + b.name + ">"
}

//----------------------------------------------------------------------

// Lambda represents a user-defined function.
// Body is shared with every other value holding the same cell.
type Lambda struct {
	name   string
	Params []Sym
	Body   *Ref
}

// NewLambda constructs a function from its parameter list and body.
// A body given as a *Ref is shared; any other body is boxed in a new cell.
func NewLambda(params *Sexp, body Any) (*Lambda, error) {
	ps := make([]Sym, 0, params.Len())
	for _, p := range params.List {
		s, ok := p.(Sym)
		if !ok {
			return nil, NewEvalError(BuiltinError,
				"lambda arguments must be symbols", params)
		}
		ps = append(ps, s)
	}
	ref, ok := body.(*Ref)
	if !ok {
		ref = NewRef(body)
	}
	return &Lambda{Params: ps, Body: ref}, nil
}

// LambdaFromList converts (lambda (params...) body...) to a function.
func LambdaFromList(x *Sexp) (*Lambda, error) {
	if x.Len() == 0 || x.List[0] != Lambda_ {
		return nil, NewEvalError(TypeError, "invalid function", x)
	}
	return lambdaForm(x.List[1:])
}

// lambdaForm builds a function from the parts of (lambda (v...) e...)
// which follow the symbol lambda. A nil parameter list takes no arguments
// and several body forms are evaluated as one progn.
func lambdaForm(args []Any) (*Lambda, error) {
	if len(args) < 2 {
		return nil, Errorf("(lambda ([args]) [body])")
	}
	var params *Sexp
	switch p := Deref(args[0]).(type) {
	case *Sexp:
		params = p
	case Sym:
		if p != Nil_ {
			return nil, Errorf("(lambda ([args]) [body])")
		}
		params = Nil()
	default:
		return nil, Errorf("(lambda ([args]) [body])")
	}
	var body Any = args[1]
	if len(args) > 2 {
		body = NewSexp(append([]Any{Progn_}, args[1:]...)...)
	}
	return NewLambda(params, body)
}

// fn.Named(name) returns a copy of fn which reports name.
func (fn *Lambda) Named(name string) *Lambda {
	return &Lambda{name, fn.Params, fn.Body}
}

func (fn *Lambda) EvalArgs() EvalOption { return Evaluated }
func (fn *Lambda) Name() string         { return fn.name }

// Call binds the parameters of fn to args in a new local namespace and
// evaluates the body. Arguments beyond the parameters are ignored.
func (fn *Lambda) Call(lsp *Lsp, args []Any) (Any, error) {
	ns := NewNamespace()
	for i, p := range fn.Params {
		if i >= len(args) {
			return nil, &EvalError{ArityError,
				fmt.Sprintf("'%s' expected '%s' argument", fn.name, p)}
		}
		ns.RegVar(string(p), args[i])
	}
	lsp.pushLocal(ns, fn.name)
	defer lsp.popLocal(fn.name)
	return lsp.EvalRef(fn.Body)
}

// fn.String() returns "(lambda (params...) body)".
func (fn *Lambda) String() string {
	ps := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		ps[i] = string(p)
	}
	return fmt.Sprintf("(lambda (%s) %s)", strings.Join(ps, " "), Str(fn.Body))
}

//----------------------------------------------------------------------

// Eval evaluates the expression x.
// The root expression made by Read evaluates its elements in order and
// returns the last value.
func (lsp *Lsp) Eval(x *Sexp) (Any, error) {
	if x.Delim == RootDelim {
		var result Any = Nil()
		for _, e := range x.List {
			var err error
			if result, err = lsp.EvalValue(e); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
	if x.Len() == 0 {
		return Nil(), nil
	}
	args := x.List[1:]
	switch head := x.List[0].(type) {
	case Sym:
		fn, err := lsp.LookupFn(string(head))
		if err != nil {
			return nil, err
		}
		return lsp.Apply(fn, args)
	case *Sexp:
		f, err := lsp.Eval(head)
		if err != nil {
			return nil, err
		}
		if fn, ok := Deref(f).(*Lambda); ok {
			return lsp.Apply(fn, args)
		}
		return nil, NewEvalError(TypeError, "not applicable", f)
	default:
		return nil, NewEvalError(TypeError, "not applicable", head)
	}
}

// EvalValue evaluates a single value: symbols are looked up, expressions
// are evaluated, cells are evaluated in place and anything else evaluates
// to itself.
func (lsp *Lsp) EvalValue(x Any) (Any, error) {
	switch v := x.(type) {
	case Sym:
		return lsp.LookupVar(string(v))
	case *Sexp:
		return lsp.Eval(v)
	case *Ref:
		return lsp.EvalRef(v)
	}
	return x, nil
}

// EvalRef evaluates the value held by the cell r.
func (lsp *Lsp) EvalRef(r *Ref) (Any, error) {
	return lsp.EvalValue(r.Value)
}

// Apply calls fn with args, evaluating them first if fn asks for it.
func (lsp *Lsp) Apply(fn Func, args []Any) (Any, error) {
	if fn.EvalArgs() == Unevaluated {
		return fn.Call(lsp, args)
	}
	evaluated := make([]Any, len(args))
	for i, arg := range args {
		v, err := lsp.EvalValue(arg)
		if err != nil {
			return nil, err
		}
		evaluated[i] = v
	}
	return fn.Call(lsp, evaluated)
}

// ReadEval reads src and evaluates it as a program.
func (lsp *Lsp) ReadEval(src string) (Any, error) {
	x, err := lsp.Read(src)
	if err != nil {
		return nil, err
	}
	return lsp.Eval(x)
}

// Read reads src as a program.
func (lsp *Lsp) Read(src string) (*Sexp, error) {
	return Read(src)
}
