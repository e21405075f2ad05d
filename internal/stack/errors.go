package stack

import "errors"

// Error values matching spec §7's VMError taxonomy for the two stacks.
var (
	ErrDataOverflow    = errors.New("stack overflow")
	ErrDataUnderflow   = errors.New("stack underflow")
	ErrReturnOverflow  = errors.New("return stack overflow")
	ErrReturnUnderflow = errors.New("return stack underflow")
)

// NewData constructs the data stack.
func NewData() Stack { return newStack(ErrDataOverflow, ErrDataUnderflow) }

// NewReturn constructs the return stack.
func NewReturn() Stack { return newStack(ErrReturnOverflow, ErrReturnUnderflow) }
