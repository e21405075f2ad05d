package vm

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/value"
)

// ErrBreak and ErrContinue re-export code.ErrBreak/code.ErrContinue for
// callers that only import internal/vm.
var (
	ErrBreak    = code.ErrBreak
	ErrContinue = code.ErrContinue
)

// sentinelReturn is a return address that can never be a legitimate
// instruction-stream address (the stream only ever grows from 0), used
// by Apply to know when a nested call has returned to it rather than to
// its own enclosing frame.
const sentinelReturn Addr = ^Addr(0)

// Apply runs l's code as a nested call and returns once control returns
// to the point Apply was invoked from (spec §4.5's CallStack/Apply
// semantics, reused by native if/when/while to invoke lambdas -- spec
// §4.5 "Conditional and loop words").
func (vm *VM) Apply(l *value.LambdaData) error {
	depth := vm.Return.Len()
	if err := vm.PushReturn(value.NewShared(value.NewAddress(sentinelReturn))); err != nil {
		return err
	}
	saved := vm.ip
	vm.ip = l.Addr
	err := vm.runUntil(sentinelReturn)
	vm.ip = saved
	if err != nil {
		// A halt (break, continue, an error) skipped l's own Returns: drop
		// what l left on the return stack, sentinel included.
		for vm.Return.Len() > depth {
			vm.Return.Pop()
		}
	}
	return err
}

// runUntil steps the dispatch loop until ip reaches sentinel, recovering
// any halt raised along the way into a returned error instead of letting
// it propagate past this nested invocation.
func (vm *VM) runUntil(sentinel Addr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			hs, ok := r.(haltSignal)
			if !ok {
				panic(r)
			}
			err = hs.err
		}
	}()
	for vm.ip != sentinel {
		vm.step()
	}
	return nil
}
