package compiler

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/scanner"
	"github.com/tardi-lang/tardi/internal/value"
)

// Compiler drives one source file's worth of scanning against a shared
// Env. It also implements code.Scanner: while a macro is executing, the
// Env's VM.Scan() returns this Compiler, so native scanning-hook words
// (spec §4.6) read further from the same cursor the compiler itself is
// using.
type Compiler struct {
	env  *Env
	scan *scanner.Scanner

	// Importer resolves `uses:` (spec §4.7); nil disables `uses:`.
	Importer Importer
	// Exports collects `exports:`'s word list (spec §4.6, §6), for the
	// caller (internal/module) to read back once compilation finishes.
	Exports []string
}

// New builds a Compiler reading src into env.
func New(env *Env, src string) *Compiler {
	return &Compiler{env: env, scan: scanner.New(src)}
}

var _ code.Scanner = (*Compiler)(nil)

// CompileAll compiles src to completion (spec §4.4's top-level reading
// loop), then checks that every forward reference (point 4: "word that
// fails to resolve") a `:`/`MACRO:` later in this same compile unit
// finalized.
func (c *Compiler) CompileAll() error {
	if err := c.compileBody(""); err != nil {
		return err
	}
	if pending := c.env.PendingWords(); len(pending) > 0 {
		return code.UnknownWord(pending[0])
	}
	return nil
}

// compileBody compiles tokens until it consumes a TokWord equal to
// terminator (or, if terminator is "", until end of input).
func (c *Compiler) compileBody(terminator string) error {
	for {
		if v, ok := c.scan.TakePending(); ok {
			c.compileLiteral(v)
			continue
		}
		if c.scan.AtEnd() {
			if terminator == "" {
				return nil
			}
			return UnterminatedBody(terminator)
		}
		tok, ok, err := c.scan.NextToken()
		if err != nil {
			return err
		}
		if !ok {
			if terminator == "" {
				return nil
			}
			return UnterminatedBody(terminator)
		}

		if tok.Kind == scanner.TokWord {
			if terminator != "" && tok.Text == terminator {
				return nil
			}
			switch tok.Text {
			case ":":
				if err := c.compileDefinition(false); err != nil {
					return err
				}
				continue
			case "MACRO:":
				if err := c.compileDefinition(true); err != nil {
					return err
				}
				continue
			case "[":
				v, err := c.compileQuotationValue()
				if err != nil {
					return err
				}
				c.compileLiteral(v)
				continue
			case "uses:":
				if err := c.compileUses(); err != nil {
					return err
				}
				continue
			case "exports:":
				if err := c.compileExports(); err != nil {
					return err
				}
				continue
			case ";", "]":
				return UnexpectedWord(tok.Text)
			// apply/break/continue/ip/bye compile straight to their VM
			// opcodes (spec §4.5's opcode table) rather than through a
			// Call indirection, matching Jump/JumpStack/Return.
			case "apply":
				c.env.Stream.EmitOp(code.Apply)
				continue
			case "break":
				c.env.Stream.EmitOp(code.Break)
				continue
			case "continue":
				c.env.Stream.EmitOp(code.Continue)
				continue
			case "ip":
				c.env.Stream.EmitOp(code.Ip)
				continue
			case "bye":
				c.env.Stream.EmitOp(code.Halt)
				continue
			}

			idx, entry, found := c.env.Resolve(tok.Text)
			if !found {
				// Not a macro invocation (a macro must already be
				// compiled to run at compile time) -- speculatively
				// predeclare it as an ordinary forward-referenced word,
				// resolved once its own `:`/`MACRO:` finalizes, or
				// reported as UnknownWord if none ever does (spec
				// §4.4 point 4).
				idx = c.env.ForwardRef(tok.Text)
				entry, _ = c.env.Ops.Get(idx)
			}
			if entry.Immediate {
				if c.env.VM == nil {
					return ErrNoVM
				}
				mark := c.env.VM.DataLen()
				if err := c.runImmediate(entry); err != nil {
					return err
				}
				// Values the macro left on the data stack become literals
				// of the code being compiled.
				if n := c.env.VM.DataLen() - mark; n > 0 {
					left, err := c.env.VM.PopN(n)
					if err != nil {
						return err
					}
					for _, s := range left {
						c.compileLiteral(s.Get())
					}
				}
				continue
			}
			c.env.Stream.EmitOp(code.Call)
			c.env.Stream.Emit(idx)
			continue
		}

		v, err := scanner.TokenValue(tok)
		if err != nil {
			return err
		}
		c.compileLiteral(v)
	}
}

// compileDefinition compiles `: NAME ... ;` or, when immediate, `MACRO:
// NAME ... ;` (spec §4.4, §4.6): predeclare the name, emit a jump around
// the body so top-level execution doesn't fall into it, compile the
// body, append Return, backpatch the jump, and finalize the op-table
// slot to the body's start address.
func (c *Compiler) compileDefinition(immediate bool) error {
	name, ok, err := c.scan.NextRawWord()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnexpectedEOF
	}
	doc := c.scan.TakeDoc()

	idx := c.env.Predeclare(name)

	jumpAddr := c.env.Stream.EmitOp(code.Jump)
	c.env.Stream.Emit(0)
	bodyStart := c.env.Stream.Len()

	if err := c.compileBody(";"); err != nil {
		return err
	}
	c.env.Stream.EmitOp(code.Return)

	after := c.env.Stream.Len()
	c.env.Stream.Patch(jumpAddr+1, int(after))
	c.env.Ops.SetUser(idx, bodyStart)
	if immediate {
		c.env.Ops.SetImmediate(idx)
	}
	if doc != "" {
		c.env.Ops.SetDoc(idx, doc)
	}
	return nil
}

// compileUses handles `uses: modname` (spec §4.6, §4.7): resolve modname
// through the Importer and merge its exports into the current
// dictionary, without shadowing names already defined locally.
func (c *Compiler) compileUses() error {
	name, ok, err := c.scan.NextRawWord()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnexpectedEOF
	}
	if c.Importer == nil {
		return ErrNoImporter
	}
	exports, err := c.Importer.Import(name)
	if err != nil {
		return err
	}
	for word, idx := range exports {
		if _, taken := c.env.Names[word]; !taken {
			c.env.Names[word] = idx
		}
	}
	return nil
}

// compileExports handles `exports: w1 w2 ... ;` (spec §4.6, §6):
// collects the word list for the caller (internal/module) to install as
// this file's export set once compilation finishes.
func (c *Compiler) compileExports() error {
	for {
		w, ok, err := c.scan.NextRawWord()
		if err != nil {
			return err
		}
		if !ok {
			return UnterminatedBody(";")
		}
		if w == ";" {
			return nil
		}
		c.Exports = append(c.Exports, w)
	}
}

// compileQuotationValue compiles `[ ... ]` into the shared stream behind
// a jump-around, and returns the resulting Lambda value without emitting
// anything to make it live on the data stack -- the caller (compileBody
// for an inline literal, or ScanValue/ScanObjectList for a macro) decides
// what to do with it.
func (c *Compiler) compileQuotationValue() (value.Value, error) {
	jumpAddr := c.env.Stream.EmitOp(code.Jump)
	c.env.Stream.Emit(0)
	bodyStart := c.env.Stream.Len()

	if err := c.compileBody("]"); err != nil {
		return value.Value{}, err
	}
	c.env.Stream.EmitOp(code.Return)

	after := c.env.Stream.Len()
	c.env.Stream.Patch(jumpAddr+1, int(after))

	return value.NewLambda(value.NewLambdaData(bodyStart)), nil
}

func (c *Compiler) compileLiteral(v value.Value) {
	idx := c.env.Constants.Add(value.NewShared(v))
	c.env.Stream.EmitOp(code.LitConst)
	c.env.Stream.Emit(idx)
}

// runImmediate executes a macro right now (spec §4.6): the compiler
// installs itself as the VM's active scanner for the duration, so
// scan-value/scan-object-list/scan-word/push! read from the same cursor
// mid-compilation. Trace output is indented one level for the macro's
// extent, so a macro that itself triggers a nested macro (via scan-value)
// reads as nested in a trace log, the way gothird's withLogPrefix nests
// around vm.exec.
func (c *Compiler) runImmediate(entry code.OpEntry) error {
	if c.env.VM == nil {
		return ErrNoVM
	}
	c.env.Trace.Logf("Macro", "expand %s", entry.Name)
	defer c.env.Trace.WithPrefix("  ")()

	prev := c.env.VM.Scan()
	c.env.VM.SetScan(c)
	defer c.env.VM.SetScan(prev)

	if entry.Native != nil {
		return entry.Native(c.env.VM)
	}
	return c.env.VM.Apply(&value.LambdaData{Addr: entry.Addr})
}

// ScanValue implements code.Scanner: the next parsed value, running a
// nested macro if the next word is one (spec §4.6).
func (c *Compiler) ScanValue() (value.Value, error) {
	if v, ok := c.scan.TakePending(); ok {
		return v, nil
	}
	tok, ok, err := c.scan.NextToken()
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, ErrUnexpectedEOF
	}
	if tok.Kind == scanner.TokWord {
		if tok.Text == "[" {
			return c.compileQuotationValue()
		}
		_, entry, found := c.env.Resolve(tok.Text)
		if found && entry.Immediate {
			if err := c.runImmediate(entry); err != nil {
				return value.Value{}, err
			}
			s, err := c.env.VM.Pop()
			if err != nil {
				return value.Value{}, err
			}
			return s.Get(), nil
		}
		return value.Value{}, UnexpectedWord(tok.Text)
	}
	return scanner.TokenValue(tok)
}

// ScanObjectList implements code.Scanner: gathers values (spec §4.6's
// build-vector/hashmap-literal path) until a TokWord equal to end.
func (c *Compiler) ScanObjectList(end string) (*value.VectorData, error) {
	vec := value.NewVectorData()
	for {
		if v, ok := c.scan.TakePending(); ok {
			vec.PushBack(value.NewShared(v))
			continue
		}
		if c.scan.AtEnd() {
			return nil, scanner.UnterminatedList{End: end}
		}
		tok, ok, err := c.scan.NextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, scanner.UnterminatedList{End: end}
		}
		if tok.Kind == scanner.TokWord && tok.Text == end {
			return vec, nil
		}
		if tok.Kind == scanner.TokWord && tok.Text == "[" {
			v, err := c.compileQuotationValue()
			if err != nil {
				return nil, err
			}
			vec.PushBack(value.NewShared(v))
			continue
		}
		if tok.Kind == scanner.TokWord {
			_, entry, found := c.env.Resolve(tok.Text)
			if found && entry.Immediate {
				if err := c.runImmediate(entry); err != nil {
					return nil, err
				}
				s, err := c.env.VM.Pop()
				if err != nil {
					return nil, err
				}
				vec.PushBack(s)
				continue
			}
			return nil, UnexpectedWord(tok.Text)
		}
		v, err := scanner.TokenValue(tok)
		if err != nil {
			return nil, err
		}
		vec.PushBack(value.NewShared(v))
	}
}

// ScanWord implements code.Scanner: the next bare word, unparsed (spec
// §4.3's scan-word), used by `:` to capture a name and by macros that
// need a raw identifier rather than a value.
func (c *Compiler) ScanWord() (string, error) {
	w, ok, err := c.scan.NextRawWord()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnexpectedEOF
	}
	return w, nil
}

// PushPending implements code.Scanner (spec §4.3, §4.6).
func (c *Compiler) PushPending(v value.Value) { c.scan.PushPending(v) }

// Describe implements code.Scanner, backing the `see` native word
// (SPEC_FULL.md supplement): the `///` docstring captured for name, if
// any was recorded when it was defined.
func (c *Compiler) Describe(name string) (string, bool) {
	_, entry, found := c.env.Resolve(name)
	if !found {
		return "", false
	}
	return entry.Doc, true
}
