// Package tardi wires together the compiler, VM, and module loader into
// the single object cmd/tardi drives (spec §6's CLI surface), using the
// same functional-options shape gothird's options.go/api.go use to build
// a *VM: a small Option interface applied over defaults, rather than a
// wide constructor or a mutable builder.
package tardi

import (
	"context"
	"fmt"
	"os"

	"github.com/tardi-lang/tardi/internal/builtin"
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/logio"
	"github.com/tardi-lang/tardi/internal/module"
	"github.com/tardi-lang/tardi/internal/value"
	"github.com/tardi-lang/tardi/internal/vm"
)

// Program is a fully bootstrapped Tardi instance: shared compiled code,
// a VM to run it, and a Loader ready to resolve `uses:` (spec §4.7).
type Program struct {
	Env    *compiler.Env
	VM     *vm.VM
	Loader *module.Loader

	dataDir    string
	initScript string
	printStack bool
}

// Option configures a Program before bootstrap runs.
type Option interface{ apply(p *Program) }

type dataDirOption string
type initScriptOption string
type logfOption func(mess string, args ...interface{})
type printStackOption bool

func (o dataDirOption) apply(p *Program)    { p.dataDir = string(o) }
func (o initScriptOption) apply(p *Program) { p.initScript = string(o) }
func (o logfOption) apply(p *Program) {
	trace := logio.NewTrace(o)
	p.VM.Trace = trace
	p.Env.Trace = trace
}
func (o printStackOption) apply(p *Program) { p.printStack = bool(o) }

// WithDataDir overrides the standard library search root (spec §6's
// TARDI_DATA_DIR).
func WithDataDir(dir string) Option { return dataDirOption(dir) }

// WithInitScript overrides bootstrap search with a single script path
// (spec §6's --init-script), loaded in place of the embedded bootstrap
// directory.
func WithInitScript(path string) Option { return initScriptOption(path) }

// WithLogf turns on trace logging of macro expansion and opcode dispatch
// (spec's ambient stack; off by default, matching gothird's WithLogf).
func WithLogf(logfn func(mess string, args ...interface{})) Option { return logfOption(logfn) }

// WithPrintStack turns on --print-stack: after each top-level
// evaluation, dump the data stack bottom-to-top.
func WithPrintStack(on bool) Option { return printStackOption(on) }

// New builds a Program and runs bootstrap (spec §4.7: unconditionally,
// before any user code). Natives are installed first so bootstrap's own
// source can call them.
func New(opts ...Option) (*Program, error) {
	stream := &code.Stream{}
	consts := &code.Constants{}
	ops := &code.OpTable{}
	m := vm.New(stream, consts, ops)

	env := &compiler.Env{Stream: stream, Constants: consts, Ops: ops, VM: m, Names: make(map[string]int)}
	builtin.Install(env)

	p := &Program{Env: env, VM: m}
	for _, o := range opts {
		o.apply(p)
	}

	loader := module.NewLoader(env, p.dataDir)
	p.Loader = loader

	if p.initScript != "" {
		src, err := os.ReadFile(p.initScript)
		if err != nil {
			return nil, err
		}
		c := compiler.New(env, string(src))
		c.Importer = loader
		if err := c.CompileAll(); err != nil {
			return nil, err
		}
	} else if err := loader.LoadBootstrap(); err != nil {
		return nil, err
	}

	return p, nil
}

// RunFile compiles and runs path after bootstrap (spec §6's `tardi FILE
// [args…]`).
func (p *Program) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	start := p.Env.Stream.Len()
	c := compiler.New(p.Env, string(src))
	c.Importer = p.Loader
	if err := c.CompileAll(); err != nil {
		return err
	}
	p.Env.Stream.EmitOp(code.Halt)
	p.VM.SetIP(start)
	if err := p.VM.Run(ctx); err != nil {
		return err
	}
	p.maybePrintStack()
	return nil
}

// Eval compiles and runs one REPL line against the shared Env (spec §6's
// bare `tardi` REPL). Each line is its own top-level compilation unit,
// executed immediately and followed by an implicit Halt so Run returns
// once the line finishes; the data stack is left untouched across lines
// and across errors (spec §7's REPL policy).
func (p *Program) Eval(ctx context.Context, line string) error {
	start := p.Env.Stream.Len()
	c := compiler.New(p.Env, line)
	c.Importer = p.Loader
	if err := c.CompileAll(); err != nil {
		return err
	}
	p.Env.Stream.EmitOp(code.Halt)
	p.VM.SetIP(start)
	if err := p.VM.Run(ctx); err != nil {
		return err
	}
	p.maybePrintStack()
	return nil
}

func (p *Program) maybePrintStack() {
	if !p.printStack {
		return
	}
	items := p.VM.Data.Items()
	fmt.Print("<")
	for i, it := range items {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(value.Inspect(it.Get()))
	}
	fmt.Println(">")
}
