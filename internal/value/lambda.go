package value

// LambdaData is the record spec §3.3 calls Lambda: `{ name?, source_words?,
// code_addr }`. A Function is a named Lambda additionally registered in
// the op-table / name map (spec §3.3) -- that registration lives in
// internal/code and internal/module, not here; LambdaData only carries
// the value-level payload.
type LambdaData struct {
	Name string // empty for an anonymous lambda literal
	Doc  string // captured `///` docstring, if any (SPEC_FULL.md supplement)
	Addr uint   // entry point inside the instruction stream
}

// NewLambdaData builds a lambda value pointing at addr.
func NewLambdaData(addr uint) *LambdaData { return &LambdaData{Addr: addr} }
