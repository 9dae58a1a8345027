package keymap

import (
	"github.com/nukata/elisp-in-go/elisp"
)

// Register installs the keymap builtins in lsp.
func Register(lsp *elisp.Lsp) {
	lsp.RegFn(elisp.NewBuiltin("make-sparse-keymap", elisp.Evaluated, makeSparseKeymap_))
	lsp.RegFn(elisp.NewBuiltin("keymapp", elisp.Evaluated, keymapp_))
	lsp.RegFn(elisp.NewBuiltin("define-key", elisp.Evaluated, defineKey_))
	lsp.RegFn(elisp.NewBuiltin("lookup-key", elisp.Evaluated, lookupKey_))
	lsp.RegFn(elisp.NewBuiltin("kbd", elisp.Evaluated, kbd_))
}

func makeSparseKeymap_(lsp *elisp.Lsp, args []elisp.Any) (elisp.Any, error) {
	return New(), nil
}

func keymapp_(lsp *elisp.Lsp, args []elisp.Any) (elisp.Any, error) {
	if len(args) != 1 {
		return nil, elisp.Errorf("keymapp requires one argument")
	}
	return elisp.Bool(IsKeymap(args[0])), nil
}

// toEvent accepts an event or a key description string.
func toEvent(x elisp.Any) (Event, error) {
	if s, ok := elisp.Deref(x).(string); ok {
		return ParseKey(s)
	}
	return elisp.Downcast[Event](x)
}

// (define-key keymap key definition)
// The definition is kept in a cell, which is returned, so that it can be
// updated in place by whoever else holds the cell.
func defineKey_(lsp *elisp.Lsp, args []elisp.Any) (elisp.Any, error) {
	if len(args) != 3 {
		return nil, elisp.Errorf("define-key requires more arguments")
	}
	km, err := elisp.Downcast[*Keymap](args[0])
	if err != nil {
		return nil, err
	}
	ev, err := toEvent(args[1])
	if err != nil {
		return nil, err
	}
	ref, ok := args[2].(*elisp.Ref)
	if !ok {
		ref = elisp.NewRef(args[2])
	}
	km.DefineKey(ev, ref)
	return ref, nil
}

// (lookup-key keymap key)
// The keymap may also be a list (keymap (key . definition)...), as printed
// for a keymap or built with cons.
func lookupKey_(lsp *elisp.Lsp, args []elisp.Any) (elisp.Any, error) {
	if len(args) != 2 {
		return nil, elisp.Errorf("lookup-key requires two arguments")
	}
	if sxp, ok := elisp.Deref(args[0]).(*elisp.Sexp); ok && IsKeymap(sxp) {
		ev, err := toEvent(args[1])
		if err != nil {
			return nil, err
		}
		if def, ok := lookupList(sxp, ev); ok {
			return def, nil
		}
		return elisp.Nil(), nil
	}
	km, err := elisp.Downcast[*Keymap](args[0])
	if err != nil {
		return nil, err
	}
	ev, err := toEvent(args[1])
	if err != nil {
		return nil, err
	}
	if def, ok := km.LookupKey(ev); ok {
		return def, nil
	}
	return elisp.Nil(), nil
}

// lookupList searches the bindings of a keymap written as a list.
// Entries which are not pairs headed by a key are skipped.
func lookupList(sxp *elisp.Sexp, ev Event) (elisp.Any, bool) {
	for _, e := range sxp.List[1:] {
		pair, ok := elisp.Deref(e).(*elisp.Sexp)
		if !ok || pair.Len() == 0 {
			continue
		}
		if k, err := toEvent(pair.List[0]); err != nil || k != ev {
			continue
		}
		// (key . def) typed in source reads as a three-element list.
		if pair.Dotted == nil && pair.Len() == 3 && pair.List[1] == elisp.Sym(".") {
			return pair.List[2], true
		}
		return pair.Cdr(), true
	}
	return nil, false
}

// (kbd "key description")
func kbd_(lsp *elisp.Lsp, args []elisp.Any) (elisp.Any, error) {
	if len(args) != 1 {
		return nil, elisp.Errorf("kbd requires one argument")
	}
	s, ok := elisp.Deref(args[0]).(string)
	if !ok {
		return nil, elisp.NewEvalError(elisp.TypeError, "kbd: wrong type argument", args[0])
	}
	return ParseKey(s)
}
