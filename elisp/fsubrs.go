package elisp

// Special forms: builtins which receive their arguments unevaluated.

// (quote e)
func quote_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) == 0 {
		return nil, Errorf("quote requires one argument")
	}
	return Copy(args[0]), nil
}

// (if cond then else...)
func if_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) < 2 {
		return nil, Errorf("(if cond then else...)")
	}
	c, err := lsp.EvalValue(args[0])
	if err != nil {
		return nil, err
	}
	if !IsNil(c) {
		return lsp.EvalValue(args[1])
	}
	var result Any = Nil()
	for _, e := range args[2:] {
		if result, err = lsp.EvalValue(e); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// (lambda (v...) e...)
func lambda_(lsp *Lsp, args []Any) (Any, error) {
	fn, err := lambdaForm(args)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// (defalias 'name definition)
func defalias_(lsp *Lsp, args []Any) (Any, error) {
	if len(args) < 2 {
		return nil, Errorf("(defalias name definition)")
	}
	name, err := quotedName(args[0])
	if err != nil {
		return nil, err
	}
	def, err := lsp.EvalValue(args[1])
	if err != nil {
		return nil, err
	}
	return lsp.defineFunction(name, def)
}

// quotedName accepts both name and 'name.
func quotedName(x Any) (Sym, error) {
	switch v := x.(type) {
	case Sym:
		return v, nil
	case *Sexp:
		if v.Len() == 2 && v.List[0] == Quote_ {
			if s, ok := v.List[1].(Sym); ok {
				return s, nil
			}
		}
	}
	return "", NewEvalError(TypeError, "not a function name", x)
}

// (setq v1 e1 v2 e2 ...)
func setq_(lsp *Lsp, args []Any) (Any, error) {
	if len(args)%2 != 0 {
		return nil, Errorf("setq requires an even number of arguments")
	}
	var result Any = Nil()
	for i := 0; i < len(args); i += 2 {
		s, ok := args[i].(Sym)
		if !ok || s == T_ || s == Nil_ {
			return nil, NewEvalError(TypeError, "cannot set", args[i])
		}
		v, err := lsp.EvalValue(args[i+1])
		if err != nil {
			return nil, err
		}
		lsp.SetVar(string(s), v)
		result = v
	}
	return result, nil
}
