package module

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/std"
)

// bootstrapFiles is the canonical load order (spec §9): lexicographic by
// filename, and the numeric prefixes exist specifically so that
// lexicographic order coincides with the mandated core-macros ->
// stack-ops -> core-ops sequence.
var bootstrapFiles = []string{
	"bootstrap/0-core-macros.tardi",
	"bootstrap/1-stack-ops.tardi",
	"bootstrap/2-core-ops.tardi",
}

// Loader resolves `uses:` module names against a layered search path
// (spec §4.7): the current directory first, then TARDI_DATA_DIR if set,
// then the in-repo std/ sources embedded in the std package. Every
// module compiles into the same shared instruction stream, constant
// pool, and op-table as the Loader's own Env, so an exported word's
// op-table index means the same thing regardless of which module
// resolved it; only each module's private Names dictionary is kept
// separate, which is what keeps non-exported words invisible.
type Loader struct {
	env     *compiler.Env
	dataDir string

	base    map[string]int // every module's starting dictionary: bootstrap's own names
	cache   map[string]Module
	loading map[string]bool
	chain   []string
}

// NewLoader builds a Loader that compiles every module into env.
func NewLoader(env *compiler.Env, dataDir string) *Loader {
	return &Loader{
		env:     env,
		dataDir: dataDir,
		cache:   make(map[string]Module),
		loading: make(map[string]bool),
	}
}

var _ compiler.Importer = (*Loader)(nil)

// LoadBootstrap compiles the reserved bootstrap directory into the
// Loader's own Env, in lexicographic filename order, unconditionally and
// before any user code (spec §4.7). Its definitions become the base
// dictionary every later module inherits.
func (l *Loader) LoadBootstrap() error {
	for _, name := range bootstrapFiles {
		src, err := fs.ReadFile(std.Bootstrap, name)
		if err != nil {
			return err
		}
		c := compiler.New(l.env, string(src))
		c.Importer = l
		if err := c.CompileAll(); err != nil {
			return err
		}
	}
	l.base = make(map[string]int, len(l.env.Names))
	for name, idx := range l.env.Names {
		l.base[name] = idx
	}
	return nil
}

// Import implements compiler.Importer (spec §4.7): compiles name's source
// the first time it is requested, caches the result, and returns its
// exported names to merge into the importing module's dictionary. A
// second `uses:` of the same module is a cache hit; a module still
// mid-load naming itself (directly or transitively) is LoadError::Cycle.
func (l *Loader) Import(name string) (map[string]int, error) {
	if name == "std/kernel" {
		return l.base, nil
	}
	if mod, ok := l.cache[name]; ok {
		return mod.Exports, nil
	}
	if l.loading[name] {
		return nil, CycleError{Chain: append(append([]string{}, l.chain...), name)}
	}

	src, path, err := l.read(name)
	if err != nil {
		return nil, err
	}

	l.loading[name] = true
	l.chain = append(l.chain, name)
	defer func() {
		delete(l.loading, name)
		l.chain = l.chain[:len(l.chain)-1]
	}()

	moduleEnv := &compiler.Env{
		Stream:    l.env.Stream,
		Constants: l.env.Constants,
		Ops:       l.env.Ops,
		VM:        l.env.VM,
		Trace:     l.env.Trace,
		Names:     make(map[string]int, len(l.base)),
	}
	for word, idx := range l.base {
		moduleEnv.Names[word] = idx
	}

	c := compiler.New(moduleEnv, src)
	c.Importer = l
	if err := c.CompileAll(); err != nil {
		return nil, err
	}

	exports := make(map[string]int, len(c.Exports))
	for _, word := range c.Exports {
		idx, ok := moduleEnv.Names[word]
		if !ok {
			return nil, ExportMismatchError{Module: name, Word: word}
		}
		exports[word] = idx
	}

	l.cache[name] = Module{Name: name, Path: path, Exports: exports}
	return exports, nil
}

// read finds name's source: the current directory first, then
// TARDI_DATA_DIR, then the sources embedded in the std package (spec
// §4.7's search path).
func (l *Loader) read(name string) (src string, path string, err error) {
	rel := name + ".tardi"

	if b, readErr := os.ReadFile(rel); readErr == nil {
		return string(b), rel, nil
	}

	if l.dataDir != "" {
		p := filepath.Join(l.dataDir, rel)
		if b, readErr := os.ReadFile(p); readErr == nil {
			return string(b), p, nil
		}
	}

	if base, ok := strings.CutPrefix(name, "std/"); ok {
		embeddedPath := base + ".tardi"
		if b, readErr := fs.ReadFile(std.Lib, embeddedPath); readErr == nil {
			return string(b), "std/" + embeddedPath, nil
		}
	}

	return "", "", NotFoundError{Name: name}
}
