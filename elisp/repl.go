package elisp

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const banner = "'(elisp repl v%.2f)"

// LineReader reads a line after showing a prompt.
// *liner.State is a LineReader.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// ReadEvalPrint reads src, evaluates it and prints the result or the error
// to out. It returns true if the result is the symbol exit.
func ReadEvalPrint(lsp *Lsp, src string, out io.Writer) bool {
	x, err := lsp.Read(src)
	if err != nil {
		fmt.Fprintln(out, "READ ERROR:", err)
		return false
	}
	result, err := lsp.Eval(x)
	if err != nil {
		fmt.Fprintln(out, "EVAL ERROR:", err)
		return false
	}
	if result == Exit_ {
		return true
	}
	fmt.Fprintln(out, "->", Str(result))
	return false
}

// Read-Eval-Print Loop of the interpreter
func ReadEvalPrintLoop(lsp *Lsp, lr LineReader, cfg *Config, out io.Writer) {
	fmt.Fprintf(out, banner+"\n", Version)
	for {
		src, ok := readForm(lr, cfg)
		if !ok {
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		if h, ok := lr.(interface{ AppendHistory(string) }); ok {
			h.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}
		if ReadEvalPrint(lsp, src, out) {
			break
		}
	}
	fmt.Fprintln(out, "'(Good bye!)")
}

// readForm reads lines until they make a complete program or a real error.
// It returns false at the end of input.
func readForm(lr LineReader, cfg *Config) (string, bool) {
	var b strings.Builder
	for {
		prompt := cfg.Prompt
		if b.Len() > 0 {
			prompt = cfg.ContinuePrompt
		}
		line, err := lr.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true // Ctrl+C discards the input so far.
		} else if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, err = Read(src)
		var se *SyntaxError
		if errors.As(err, &se) && se.Incomplete {
			continue
		}
		return src, true
	}
}

// ExecFile reads the file name and evaluates it as one program.
// Syntax and evaluation errors are reported to out; only a failure to
// read the file is returned.
func ExecFile(lsp *Lsp, name string, out io.Writer) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	x, err := lsp.Read(string(src))
	if err != nil {
		fmt.Fprintln(out, "READ ERROR:", err)
		return nil
	}
	if _, err := lsp.Eval(x); err != nil {
		fmt.Fprintln(out, "EVAL ERROR:", err)
	}
	return nil
}

// Main runs the interpreter as a command: a REPL, or the execution of a
// file given as an argument (or after --exec). Each of extensions is
// applied to the new interpreter before anything is evaluated.
func Main(args []string, extensions ...func(*Lsp)) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	execMode := fs.Bool("exec", false, "execute the file given as argument")
	editorMode := fs.Bool("editor", false, "start the editor")
	configPath := fs.String("config", os.Getenv("ELISP_CONFIG"), "YAML configuration file")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *editorMode {
		fmt.Fprintln(os.Stderr, "editor mode is not available in this build")
		return 2
	}
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	lsp := NewLsp()
	lsp.Logger = slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level}))
	for _, ext := range extensions {
		ext(lsp)
	}
	for _, name := range cfg.Preload {
		if err := ExecFile(lsp, name, os.Stdout); err != nil {
			fmt.Println("FILE ERROR:", err)
			return 1
		}
	}

	if fs.NArg() > 0 {
		if err := ExecFile(lsp, fs.Arg(0), os.Stdout); err != nil {
			fmt.Println("FILE ERROR:", err)
			return 1
		}
		return 0
	} else if *execMode {
		fmt.Println("Argument --exec requires a file path")
		return 2
	}
	return runREPL(lsp, cfg)
}

func runREPL(lsp *Lsp, cfg *Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(cfg.History); err == nil {
		_, _ = ln.ReadHistory(f)
		f.Close()
	}

	ReadEvalPrintLoop(lsp, ln, cfg, os.Stdout)

	if f, err := os.Create(cfg.History); err == nil {
		_, _ = ln.WriteHistory(f)
		f.Close()
	} else {
		lsp.Logger.Warn("cannot save history", slog.String("error", err.Error()))
	}
	return 0
}
