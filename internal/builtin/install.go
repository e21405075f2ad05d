// Package builtin holds Tardi's native words (spec §2 item 8): every
// operation implemented outside Tardi itself rather than in the
// bootstrap library. Every installer takes only a *compiler.Env and a
// code.Machine, never the concrete VM, so this package cannot import
// internal/vm.
package builtin

import "github.com/tardi-lang/tardi/internal/compiler"

// Install registers every native word into env's op-table (spec §9's
// bootstrap sequence runs before any .tardi source is loaded, so these
// names are resolvable from the first line of core-macros).
func Install(env *compiler.Env) {
	installArith(env)
	installStack(env)
	installIO(env)
	installControl(env)
	installContainers(env)
	installScan(env)
	installMacros(env)
	installFS(env)
	installStrings(env)
	installPredicates(env)
}
