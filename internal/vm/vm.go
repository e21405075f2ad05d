// Package vm implements Tardi's indirect-threaded bytecode interpreter
// (spec §4.5): fetch opcode, dispatch via the operation table, advance
// the instruction pointer. Its dispatch loop is a direct generalization
// of gothird's vm.step/vm.exec (internals.go) from a single primitive
// int-opcode space to spec §3.3's explicit op-table sum type
// (code.OpEntry), and from raw-int stacks to code.Machine's
// *value.Shared stacks.
package vm

import (
	"context"
	"errors"

	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/logio"
	"github.com/tardi-lang/tardi/internal/panicerr"
	"github.com/tardi-lang/tardi/internal/stack"
	"github.com/tardi-lang/tardi/internal/value"
)

// VM holds the interpreter's mutable state: instruction pointer, the two
// stacks, and the shared code (stream, constants, op-table) it executes
// against (spec §4.5).
type VM struct {
	ip Addr

	Data   stack.Stack
	Return stack.Stack

	Stream    *code.Stream
	Constants *code.Constants
	Ops       *code.OpTable

	// ActiveScan is set by the compiler around macro execution (spec
	// §4.6) and nil otherwise; Machine.Scan returns it.
	ActiveScan code.Scanner

	// Trace is the opcode dispatch trace sink (nil by default, zero
	// overhead); tardi.WithLogf builds one over the raw logf it's given.
	Trace *logio.Trace
}

// Addr is spec §3.1's Address, an instruction-stream index.
type Addr = code.Addr

// New builds a VM over the given shared code state.
func New(stream *code.Stream, consts *code.Constants, ops *code.OpTable) *VM {
	return &VM{
		Stream:    stream,
		Constants: consts,
		Ops:       ops,
		Data:      stack.NewData(),
		Return:    stack.NewReturn(),
	}
}

// haltSignal unwinds the dispatch loop via panic/recover, matching
// gothird's vm.halt/vm.haltif (internals.go) -- errHalt vs. an actual
// error are distinguished so Run can report a clean nil for normal
// termination and a wrapped error otherwise.
type haltSignal struct{ err error }

// ErrHalted names a clean Halt. Run does not return it: when the Halt
// opcode runs with no error attached, Run returns nil.
var ErrHalted = errors.New("halted")

// Halt implements code.Machine: it unwinds the Go call stack back to Run
// via panic, carrying err (nil means a clean Halt).
func (vm *VM) Halt(err error) { panic(haltSignal{err}) }

func (vm *VM) Push(s *value.Shared) error      { return vm.Data.Push(s) }
func (vm *VM) Pop() (*value.Shared, error)     { return vm.Data.Pop() }
func (vm *VM) Peek(n int) (*value.Shared, error) { return vm.Data.Peek(n) }
func (vm *VM) PopN(n int) ([]*value.Shared, error) { return vm.Data.PopN(n) }
func (vm *VM) DataLen() int                    { return vm.Data.Len() }
func (vm *VM) ClearData()                      { vm.Data.Clear() }

func (vm *VM) PushReturn(s *value.Shared) error       { return vm.Return.Push(s) }
func (vm *VM) PopReturn() (*value.Shared, error)      { return vm.Return.Pop() }
func (vm *VM) PeekReturn(n int) (*value.Shared, error) { return vm.Return.Peek(n) }

func (vm *VM) IP() Addr           { return vm.ip }
func (vm *VM) SetIP(a Addr)       { vm.ip = a }
func (vm *VM) Scan() code.Scanner       { return vm.ActiveScan }
func (vm *VM) SetScan(s code.Scanner)   { vm.ActiveScan = s }

var _ code.Machine = (*VM)(nil)

// logf traces one dispatch step under mark (the opcode name, so a column
// of steps stays aligned -- see internal/logio.Trace).
func (vm *VM) logf(mark, mess string, args ...interface{}) {
	vm.Trace.Logf(mark, mess, args...)
}

// Run drives the dispatch loop from the current IP until Halt (or a
// context cancellation, checked between opcodes -- spec §5's "a host
// embedding Tardi may watchdog the VM by interrupting the dispatch loop
// between opcodes"). It never panics: runs the loop in its own
// goroutine under panicerr.Recover, the way gothird's api.go isolates
// VM.run, so a bug in a native word (a real panic, not a haltSignal)
// comes back as an error instead of taking the host process down with
// it.
func (vm *VM) Run(ctx context.Context) error {
	return panicerr.Recover("tardi vm", func() error {
		return vm.dispatch(ctx)
	})
}

// dispatch runs the fetch/dispatch loop until a haltSignal unwinds it,
// converting that into a plain error return.
func (vm *VM) dispatch(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			hs, ok := r.(haltSignal)
			if !ok {
				panic(r)
			}
			err = hs.err
		}
	}()

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			vm.Halt(ctxErr)
		}
		vm.step()
	}
}

func (vm *VM) step() {
	at := vm.ip
	opv := vm.Stream.Load(vm.ip)
	vm.ip++
	op := code.Op(opv)

	switch op {
	case code.Halt:
		vm.Halt(nil)
	case code.LitConst:
		k := vm.Stream.Load(vm.ip)
		vm.ip++
		vm.logf("LitConst", "@%d k=%d", at, k)
		if err := vm.Push(vm.Constants.At(k)); err != nil {
			vm.Halt(err)
		}
	case code.Call:
		idx := vm.Stream.Load(vm.ip)
		vm.ip++
		vm.logf("Call", "@%d idx=%d", at, idx)
		vm.call(idx)
	case code.CallStack, code.Apply:
		s, err := vm.Pop()
		if err != nil {
			vm.Halt(err)
		}
		v := s.Get()
		if v.Kind != value.Lambda {
			vm.Halt(value.TypeMismatch{Op: op.String(), Left: v.Kind, Right: value.Lambda})
		}
		vm.enter(v.LambdaData().Addr)
	case code.Return:
		vm.doReturn()
	case code.Jump:
		t := vm.Stream.Load(vm.ip)
		vm.ip = Addr(t)
	case code.JumpStack:
		s, err := vm.PopReturn()
		if err != nil {
			vm.Halt(err)
		}
		v := s.Get()
		if v.Kind != value.Address {
			vm.Halt(value.TypeMismatch{Op: "JumpStack", Left: v.Kind, Right: value.Address})
		}
		vm.ip = v.Address()
	case code.Ip:
		if err := vm.Push(value.NewShared(value.NewAddress(vm.ip))); err != nil {
			vm.Halt(err)
		}
	case code.Break:
		vm.Halt(code.ErrBreak)
	case code.Continue:
		vm.Halt(code.ErrContinue)
	default:
		vm.Halt(code.BadOpcode(opv))
	}
}

func (vm *VM) call(idx int) {
	entry, ok := vm.Ops.Get(idx)
	if !ok {
		vm.Halt(code.BadOpcode(idx))
		return
	}
	if entry.Native != nil {
		if err := entry.Native(vm); err != nil {
			vm.Halt(err)
		}
		return
	}
	vm.enter(entry.Addr)
}

// enter pushes the current ip as the return address and jumps to addr,
// implementing Call/CallStack's user-op behavior (spec §4.5).
func (vm *VM) enter(addr Addr) {
	if err := vm.PushReturn(value.NewShared(value.NewAddress(vm.ip))); err != nil {
		vm.Halt(err)
	}
	vm.ip = addr
}

func (vm *VM) doReturn() {
	s, err := vm.PopReturn()
	if err != nil {
		vm.Halt(err)
	}
	v := s.Get()
	if v.Kind != value.Address {
		vm.Halt(value.TypeMismatch{Op: "Return", Left: v.Kind, Right: value.Address})
	}
	vm.ip = v.Address()
}
