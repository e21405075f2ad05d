// Package module implements Tardi's module loader (spec §4.7): resolving
// `uses:` names to source files, compiling each exactly once, detecting
// import cycles, and handing back only a module's exported names to the
// compiler that asked for them. It plays the role gothird's third.go
// plays for THIRD's own bootstrap source, generalized to a search path
// and to user-defined modules.
package module

// Module is one compiled source file's bookkeeping: its declared exports
// and the op-table indices they resolved to, cached so a second `uses:`
// of the same name is free.
type Module struct {
	Name    string
	Path    string
	Exports map[string]int
}
