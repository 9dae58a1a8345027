// Package keymap provides key-binding tables as host extension values of
// the elisp interpreter.
package keymap

import (
	"sort"
	"strings"

	"github.com/nukata/elisp-in-go/elisp"
)

// Modifiers are the modifier keys held with a key.
type Modifiers struct {
	Control bool
	Shift   bool
	Alt     bool
}

// Event is a key press.
type Event struct {
	Char rune
	Mods Modifiers
}

func (ev Event) TypeTag() string  { return "keymap.Event" }
func (ev Event) LispName() string { return "event" }

// ev.String() returns the key description of ev, e.g. `\C-x`.
func (ev Event) String() string {
	var b strings.Builder
	if ev.Mods.Control {
		b.WriteString(`\C-`)
	}
	if ev.Mods.Shift {
		b.WriteString(`\S-`)
	}
	if ev.Mods.Alt {
		b.WriteString(`\M-`)
	}
	if ev.Char == '\\' {
		b.WriteString(`\\`)
	} else {
		b.WriteRune(ev.Char)
	}
	return b.String()
}

// ParseKey parses a key description such as `a`, `\C-x` or `\C-\M-q`.
func ParseKey(key string) (Event, error) {
	var ev Event
	rs := []rune(key)
	i := 0
	for i < len(rs) {
		c := rs[i]
		i++
		if c != '\\' {
			ev.Char = c
			break
		}
		if i >= len(rs) {
			return ev, elisp.NewSyntaxError("unexpected end of string after \\")
		}
		m := rs[i]
		i++
		switch m {
		case 'C':
			ev.Mods.Control = true
		case 'S':
			ev.Mods.Shift = true
		case 'M':
			ev.Mods.Alt = true
		case '\\':
			ev.Char = '\\'
		default:
			return ev, elisp.NewSyntaxError("unrecognised escape character: %c", m)
		}
		if ev.Char != 0 {
			break
		}
		if i >= len(rs) || rs[i] != '-' {
			return ev, elisp.NewSyntaxError("expecting '-' after modifier")
		}
		i++
	}
	if ev.Char == 0 {
		return ev, elisp.NewSyntaxError("key string does not contain a key")
	}
	if i < len(rs) {
		return ev, elisp.NewSyntaxError("unexpected characters at end of key string")
	}
	return ev, nil
}

//----------------------------------------------------------------------

// Keymap maps events to their definitions.
type Keymap struct {
	m map[Event]elisp.Any
}

// New constructs an empty keymap.
func New() *Keymap {
	return &Keymap{make(map[Event]elisp.Any)}
}

func (km *Keymap) TypeTag() string  { return "keymap.Keymap" }
func (km *Keymap) LispName() string { return "keymap" }

// km.DefineKey(ev, def) binds ev to def, replacing any old binding.
func (km *Keymap) DefineKey(ev Event, def elisp.Any) {
	km.m[ev] = def
}

// km.LookupKey(ev) returns the definition bound to ev.
func (km *Keymap) LookupKey(ev Event) (elisp.Any, bool) {
	def, ok := km.m[ev]
	return def, ok
}

// Len returns the number of bindings.
func (km *Keymap) Len() int {
	return len(km.m)
}

// ToLisp returns (keymap (event . definition)...), ordered by key
// description.
func (km *Keymap) ToLisp() (elisp.Any, error) {
	evs := make([]Event, 0, len(km.m))
	for ev := range km.m {
		evs = append(evs, ev)
	}
	sort.Slice(evs, func(i, j int) bool {
		return evs[i].String() < evs[j].String()
	})
	sxp := elisp.NewSexp(elisp.Sym("keymap"))
	for _, ev := range evs {
		sxp.Push(&elisp.Sexp{Delim: '(', List: []elisp.Any{ev}, Dotted: km.m[ev]})
	}
	return sxp, nil
}

// IsKeymap reports whether x is a keymap or a list headed by keymap.
func IsKeymap(x elisp.Any) bool {
	if elisp.IsA(x, "keymap") {
		return true
	}
	if sxp, ok := elisp.Deref(x).(*elisp.Sexp); ok && sxp.Len() > 0 {
		return sxp.List[0] == elisp.Sym("keymap")
	}
	return false
}
