package elisp

import (
	"fmt"
	"reflect"
)

// Subrs

func intArgs(name string, args []Any) ([]int32, error) {
	nn := make([]int32, len(args))
	for i, a := range args {
		n, ok := Deref(a).(int32)
		if !ok {
			return nil, NewEvalError(TypeError, name+": wrong type argument", a)
		}
		nn[i] = n
	}
	return nn, nil
}

func plus_(lsp *Lsp, args []Any) (Any, error) {
	nn, err := intArgs("+", args)
	if err != nil {
		return nil, err
	}
	var sum int32
	for _, n := range nn {
		sum += n
	}
	return sum, nil
}

func star_(lsp *Lsp, args []Any) (Any, error) {
	nn, err := intArgs("*", args)
	if err != nil {
		return nil, err
	}
	var product int32 = 1
	for _, n := range nn {
		product *= n
	}
	return product, nil
}

func minus_(lsp *Lsp, args []Any) (Any, error) {
	nn, err := intArgs("-", args)
	if err != nil {
		return nil, err
	}
	switch len(nn) {
	case 0:
		return int32(0), nil
	case 1:
		return -nn[0], nil
	}
	d := nn[0]
	for _, n := range nn[1:] {
		d -= n
	}
	return d, nil
}

// compareAll returns fn(a, b) && fn(b, c) && ... for (a b c ...).
func compareAll(name string, args []Any, fn func(a, b int32) bool) (Any, error) {
	nn, err := intArgs(name, args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(nn); i++ {
		if !fn(nn[i-1], nn[i]) {
			return Nil(), nil
		}
	}
	return T_, nil
}

func lessThan_(lsp *Lsp, args []Any) (Any, error) {
	return compareAll("<", args, func(a, b int32) bool { return a < b })
}

func greaterThan_(lsp *Lsp, args []Any) (Any, error) {
	return compareAll(">", args, func(a, b int32) bool { return a > b })
}

// Eq reports whether a and b are the same object: equal integers, strings
// or symbols, two nils, or the same list, cell, closure or extension.
func Eq(a, b Any) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	switch x := a.(type) {
	case int32, string, Sym, *Sexp, *Ref, *Lambda:
		return a == b
	case Extension:
		y, ok := b.(Extension)
		return ok && reflect.TypeOf(x).Comparable() && x == y
	}
	return false
}

func eq_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) != 2 {
		return nil, Errorf("eq requires two arguments")
	}
	return Bool(Eq(args[0], args[1])), nil
}

func cons_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) != 2 {
		return nil, Errorf("cons requires two arguments")
	}
	head, tail := args[0], Deref(args[1])
	if j, ok := tail.(*Sexp); ok {
		list := make([]Any, 0, j.Len()+1)
		list = append(list, head)
		list = append(list, j.List...)
		return &Sexp{Delim: '(', List: list, Dotted: j.Dotted}, nil
	}
	if s, ok := tail.(Sym); ok && s == Nil_ {
		return NewSexp(head), nil
	}
	return &Sexp{Delim: '(', List: []Any{head}, Dotted: tail}, nil
}

func listArg(name string, args []Any) (*Sexp, error) {
	if len(args) != 1 {
		return nil, Errorf("%s requires one argument", name)
	}
	switch x := Deref(args[0]).(type) {
	case *Sexp:
		return x, nil
	case Sym:
		if x == Nil_ {
			return Nil(), nil
		}
	}
	return nil, NewEvalError(TypeError, name+": wrong type argument", args[0])
}

func car_(lsp *Lsp, args []Any) (Any, error) {
	j, err := listArg("car", args)
	if err != nil {
		return nil, err
	}
	return j.Car(), nil
}

func cdr_(lsp *Lsp, args []Any) (Any, error) {
	j, err := listArg("cdr", args)
	if err != nil {
		return nil, err
	}
	return j.Cdr(), nil
}

func listp_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) != 1 {
		return nil, Errorf("listp requires one argument")
	}
	_, ok := Deref(args[0]).(*Sexp)
	return Bool(ok || IsNil(args[0])), nil
}

func null_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) != 1 {
		return nil, Errorf("null requires one argument")
	}
	return Bool(IsNil(args[0])), nil
}

func list_(lsp *Lsp, args []Any) (Any, error) {
	list := make([]Any, len(args))
	copy(list, args)
	return NewSexp(list...), nil
}

func length_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) == 1 {
		if s, ok := Deref(args[0]).(string); ok {
			return int32(len([]rune(s))), nil
		}
	}
	j, err := listArg("length", args)
	if err != nil {
		return nil, err
	}
	if j.Dotted != nil {
		return nil, NewEvalError(TypeError, "length: wrong type argument", j)
	}
	return int32(j.Len()), nil
}

func progn_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) == 0 {
		return Nil(), nil
	}
	return args[len(args)-1], nil
}

func print_(lsp *Lsp, args []Any) (Any, error) {
	var result Any = Nil()
	for _, a := range args {
		fmt.Fprintln(lsp.Out, Str(a))
		result = a
	}
	return result, nil
}

func exit_(lsp *Lsp, args []Any) (Any, error) {
	return Exit_, nil
}

// (fset 'name definition)
func fset_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) != 2 {
		return nil, Errorf("(fset 'name definition)")
	}
	name, ok := Deref(args[0]).(Sym)
	if !ok {
		return nil, NewEvalError(TypeError, "not a function name", args[0])
	}
	return lsp.defineFunction(name, args[1])
}

// defineFunction registers def under name. def may be a closure, a
// (lambda ...) list or the name of another function.
func (lsp *Lsp) defineFunction(name Sym, def Any) (Any, error) {
	fn, err := lsp.toFunc(def)
	if err != nil {
		return nil, err
	}
	if l, ok := fn.(*Lambda); ok {
		l = l.Named(string(name))
		lsp.RegFn(l)
		return l, nil
	}
	lsp.RegFn(&alias{string(name), fn})
	return def, nil
}

func (lsp *Lsp) toFunc(def Any) (Func, error) {
	switch x := Deref(def).(type) {
	case *Lambda:
		return x, nil
	case *Sexp:
		return LambdaFromList(x)
	case Sym:
		return lsp.LookupFn(string(x))
	}
	return nil, NewEvalError(TypeError, "invalid function", def)
}

// alias is another name for a function.
type alias struct {
	name string
	Func
}

func (a *alias) Name() string { return a.name }

// (funcall f args...)
func funcall_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) == 0 {
		return nil, Errorf("funcall requires a function")
	}
	fn, err := lsp.toFunc(args[0])
	if err != nil {
		return nil, err
	}
	if fn.EvalArgs() == Unevaluated {
		return nil, NewEvalError(TypeError, "cannot funcall a special form", args[0])
	}
	return fn.Call(lsp, args[1:])
}

// TypeOf returns the type name of x as a symbol.
func TypeOf(x Any) Sym {
	switch v := Deref(x).(type) {
	case int32:
		return "integer"
	case string:
		return "string"
	case Sym:
		return "symbol"
	case *Sexp:
		if IsNil(v) {
			return "symbol"
		}
		return "cons"
	case *Lambda:
		return "function"
	case Extension:
		return Sym(v.LispName())
	}
	return "unknown"
}

func typeOf_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) != 1 {
		return nil, Errorf("type-of requires one argument")
	}
	return TypeOf(args[0]), nil
}

func builtins() []Func {
	return []Func{
		NewBuiltin("+", Evaluated, plus_),
		NewBuiltin("-", Evaluated, minus_),
		NewBuiltin("*", Evaluated, star_),
		NewBuiltin("<", Evaluated, lessThan_),
		NewBuiltin(">", Evaluated, greaterThan_),
		NewBuiltin("eq", Evaluated, eq_),
		NewBuiltin("cons", Evaluated, cons_),
		NewBuiltin("car", Evaluated, car_),
		NewBuiltin("cdr", Evaluated, cdr_),
		NewBuiltin("listp", Evaluated, listp_),
		NewBuiltin("null", Evaluated, null_),
		NewBuiltin("not", Evaluated, null_),
		NewBuiltin("list", Evaluated, list_),
		NewBuiltin("length", Evaluated, length_),
		NewBuiltin("progn", Evaluated, progn_),
		NewBuiltin("print", Evaluated, print_),
		NewBuiltin("exit", Evaluated, exit_),
		NewBuiltin("fset", Evaluated, fset_),
		NewBuiltin("funcall", Evaluated, funcall_),
		NewBuiltin("type-of", Evaluated, typeOf_),
		NewBuiltin("quote", Unevaluated, quote_),
		NewBuiltin("if", Unevaluated, if_),
		NewBuiltin("lambda", Unevaluated, lambda_),
		NewBuiltin("defalias", Unevaluated, defalias_),
		NewBuiltin("setq", Unevaluated, setq_),
	}
}
