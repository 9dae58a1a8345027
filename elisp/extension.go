package elisp

import "fmt"

// Extension is a host object carried through the language as an opaque
// value.
type Extension interface {
	// TypeTag identifies the native type, e.g. "keymap.Keymap".
	TypeTag() string
	// LispName is the type name seen by Lisp code, e.g. "keymap".
	LispName() string
}

// ToLisper is an Extension which can render itself as a Lisp value.
type ToLisper interface {
	ToLisp() (Any, error)
}

// Downcast recovers the native object of type T from v, looking through
// cells. It fails with a TypeError if v holds anything else.
//
// The tag of T is taken from its zero value, so TypeTag must not depend
// on the receiver's contents.
func Downcast[T Extension](v Any) (T, error) {
	var zero T
	ext, ok := Deref(v).(Extension)
	if !ok {
		return zero, NewEvalError(TypeError,
			fmt.Sprintf("expected %s", zero.LispName()), v)
	}
	if ext.TypeTag() != zero.TypeTag() {
		return zero, &EvalError{TypeError,
			fmt.Sprintf("expected %s, got %s", zero.TypeTag(), ext.TypeTag())}
	}
	t, ok := ext.(T)
	if !ok {
		return zero, &EvalError{TypeError,
			fmt.Sprintf("%T is tagged %s", ext, ext.TypeTag())}
	}
	return t, nil
}

// IsA reports whether v holds an extension whose LispName is name.
func IsA(v Any, name string) bool {
	ext, ok := Deref(v).(Extension)
	return ok && ext.LispName() == name
}

func strExtension(x Extension, quoteString bool) string {
	if tl, ok := x.(ToLisper); ok {
		if v, err := tl.ToLisp(); err == nil {
			return Str2(v, quoteString)
		}
	}
	if s, ok := x.(fmt.Stringer); ok {
		return s.String()
	}
	return "#<" + x.LispName() + ">"
}
