// Package value implements Tardi's tagged value model (spec §3.1): a
// dynamically tagged sum over primitives and compound types, held through
// a shared, interior-mutable cell so stack copies alias the same storage.
package value

import "fmt"

// Kind tags the variant a Value currently holds.
type Kind uint8

const (
	Int Kind = iota
	Float
	Bool
	Char
	String
	Vector
	Hashmap
	Lambda
	Address
	Writer
	Reader
	Error
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "boolean"
	case Char:
		return "character"
	case String:
		return "string"
	case Vector:
		return "vector"
	case Hashmap:
		return "hashmap"
	case Lambda:
		return "lambda"
	case Address:
		return "address"
	case Writer:
		return "writer"
	case Reader:
		return "reader"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Value is a tagged variant; exactly one field is meaningful, selected by
// Kind. It is normally not passed around bare -- see Shared.
type Value struct {
	Kind Kind

	i int64
	f float64
	b bool
	r rune
	s string

	vec *VectorData
	hm  *HashmapData
	lm  *LambdaData
	wr  *WriterData
	rd  *ReaderData
	err *ErrorData
}

// Int/Float/Bool/Char/String/Address constructors.
func NewInt(i int64) Value       { return Value{Kind: Int, i: i} }
func NewFloat(f float64) Value   { return Value{Kind: Float, f: f} }
func NewBool(b bool) Value       { return Value{Kind: Bool, b: b} }
func NewChar(r rune) Value       { return Value{Kind: Char, r: r} }
func NewString(s string) Value   { return Value{Kind: String, s: s} }
func NewAddress(a uint) Value    { return Value{Kind: Address, i: int64(a)} }
func NewLambda(lm *LambdaData) Value { return Value{Kind: Lambda, lm: lm} }
func NewVector(v *VectorData) Value  { return Value{Kind: Vector, vec: v} }
func NewHashmap(h *HashmapData) Value { return Value{Kind: Hashmap, hm: h} }
func NewWriter(w *WriterData) Value  { return Value{Kind: Writer, wr: w} }
func NewReader(r *ReaderData) Value  { return Value{Kind: Reader, rd: r} }
func NewError(e *ErrorData) Value    { return Value{Kind: Error, err: e} }

func (v Value) Int() int64            { return v.i }
func (v Value) Float() float64        { return v.f }
func (v Value) Bool() bool            { return v.b }
func (v Value) Char() rune            { return v.r }
func (v Value) String() string        { return v.s }
func (v Value) Address() uint         { return uint(v.i) }
func (v Value) VectorData() *VectorData   { return v.vec }
func (v Value) HashmapData() *HashmapData { return v.hm }
func (v Value) LambdaData() *LambdaData   { return v.lm }
func (v Value) WriterData() *WriterData   { return v.wr }
func (v Value) ReaderData() *ReaderData   { return v.rd }
func (v Value) ErrorData() *ErrorData     { return v.err }

// AsFloat returns v as a float64, promoting an Int. Panics on any other
// Kind; callers check Kind first per spec §4.1's numeric promotion rule.
func (v Value) AsFloat() float64 {
	if v.Kind == Int {
		return float64(v.i)
	}
	if v.Kind == Float {
		return v.f
	}
	panic(fmt.Sprintf("AsFloat on %v", v.Kind))
}

// TypeMismatch is VMError::TypeMismatch (spec §7).
type TypeMismatch struct {
	Op          string
	Left, Right Kind
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch in %s: %v vs %v", e.Op, e.Left, e.Right)
}
