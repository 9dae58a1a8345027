/*
  A small Emacs-flavoured Lisp in Go.
*/
package main

import (
	"os"

	"github.com/nukata/elisp-in-go/elisp"
	"github.com/nukata/elisp-in-go/keymap"
)

func main() {
	os.Exit(elisp.Main(os.Args, keymap.Register))
}
