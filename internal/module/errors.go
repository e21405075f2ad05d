package module

import "fmt"

// NotFoundError is LoadError::ModuleNotFound (spec §7): name resolved
// against every entry in the search path (cwd, TARDI_DATA_DIR, the
// embedded std/) without finding a matching source file.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("module not found: %s", e.Name)
}

// CycleError is LoadError::Cycle (spec §4.7): naming the offending chain,
// name closes a loop back to a module still mid-load.
type CycleError struct {
	Chain []string
}

func (e CycleError) Error() string {
	s := "module cycle: "
	for i, n := range e.Chain {
		if i > 0 {
			s += " -> "
		}
		s += n
	}
	return s
}

// ExportMismatchError is LoadError::ExportMismatch (spec §7): an
// `exports:` word list named a word the file never defined.
type ExportMismatchError struct {
	Module string
	Word   string
}

func (e ExportMismatchError) Error() string {
	return fmt.Sprintf("module %s exports undefined word %q", e.Module, e.Word)
}
