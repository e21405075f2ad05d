// Package std embeds Tardi's bootstrap directory and standard library
// sources so cmd/tardi runs without a filesystem dependency (spec §9's
// "in-repo std/ for development" search entry), the same way gothird
// carries THIRD's own bootstrap source as an embedded string constant in
// third.go.
package std

import "embed"

// Bootstrap holds the reserved bootstrap directory (spec §9): loaded
// first, unconditionally, in lexicographic filename order.
//
//go:embed bootstrap/*.tardi
var Bootstrap embed.FS

// Lib holds the standard library modules resolvable via `uses:`.
//
//go:embed *.tardi
var Lib embed.FS
