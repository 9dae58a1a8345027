package elisp

import (
	"io"
	"log/slog"
	"os"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Namespace holds the bindings of one scope level.
// Funcs is used only in the global namespace.
type Namespace struct {
	Funcs map[string]Func
	Vars  map[string]Any
}

// NewNamespace constructs an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		Funcs: make(map[string]Func),
		Vars:  make(map[string]Any),
	}
}

// ns.RegVar(name, x) binds name to a copy of x.
func (ns *Namespace) RegVar(name string, x Any) {
	ns.Vars[name] = Copy(x)
}

// Lsp is an interpreter instance: one global namespace and a stack of
// local namespaces, one per active function call.
//
// An Lsp is not safe for concurrent use; hosts driving it from several
// goroutines must serialize the calls.
type Lsp struct {
	Globals *Namespace
	locals  *arraystack.Stack // of *Namespace

	// Out receives the output of print.
	Out io.Writer

	// Logger receives debug records of calls and registrations.
	Logger *slog.Logger
}

// NewLsp constructs an interpreter with the builtins and the constants
// t and nil.
func NewLsp() *Lsp {
	lsp := &Lsp{
		Globals: NewNamespace(),
		locals:  arraystack.New(),
		Out:     os.Stdout,
		Logger:  slog.Default(),
	}
	for _, fn := range builtins() {
		lsp.Globals.Funcs[fn.Name()] = fn
	}
	lsp.Globals.RegVar(string(T_), T_)
	lsp.Globals.RegVar(string(Nil_), Nil())
	return lsp
}

// RegFn registers fn in the global function table.
// An existing function of the same name is replaced.
func (lsp *Lsp) RegFn(fn Func) {
	name := fn.Name()
	if _, ok := lsp.Globals.Funcs[name]; ok {
		lsp.Logger.Debug("replace function", slog.String("name", name))
	}
	lsp.Globals.Funcs[name] = fn
}

// RegVar binds name to a copy of x in the global namespace.
func (lsp *Lsp) RegVar(name string, x Any) {
	lsp.Globals.RegVar(name, x)
}

// Depth returns the number of active local namespaces.
func (lsp *Lsp) Depth() int {
	return lsp.locals.Size()
}

// LookupVar returns the value of the variable name, searching the local
// namespaces from the innermost one and then the global namespace.
func (lsp *Lsp) LookupVar(name string) (Any, error) {
	it := lsp.locals.Iterator()
	for it.Next() {
		if v, ok := it.Value().(*Namespace).Vars[name]; ok {
			return v, nil
		}
	}
	if v, ok := lsp.Globals.Vars[name]; ok {
		return v, nil
	}
	return nil, NewEvalError(UnboundVariable, "no variable named", Sym(name))
}

// SetVar assigns x to the innermost binding of name, or to a new global
// binding if there is none.
func (lsp *Lsp) SetVar(name string, x Any) {
	it := lsp.locals.Iterator()
	for it.Next() {
		ns := it.Value().(*Namespace)
		if _, ok := ns.Vars[name]; ok {
			ns.RegVar(name, x)
			return
		}
	}
	lsp.Globals.RegVar(name, x)
}

// LookupFn returns the global function named name.
func (lsp *Lsp) LookupFn(name string) (Func, error) {
	if fn, ok := lsp.Globals.Funcs[name]; ok {
		return fn, nil
	}
	return nil, NewEvalError(UnboundFunction, "unrecognised function", Sym(name))
}

func (lsp *Lsp) pushLocal(ns *Namespace, name string) {
	lsp.locals.Push(ns)
	lsp.Logger.Debug("push stack frame",
		slog.String("function", name),
		slog.Int("stack-size", lsp.locals.Size()))
}

func (lsp *Lsp) popLocal(name string) {
	lsp.locals.Pop()
	lsp.Logger.Debug("pop stack frame",
		slog.String("function", name),
		slog.Int("stack-size", lsp.locals.Size()))
}
