package value

import (
	"strconv"
	"strings"

	"github.com/tardi-lang/tardi/internal/runeio"
)

// Print renders v the way the `print`/`println` native words do: raw
// content, no quoting (spec §6).
func Print(v Value) string {
	switch v.Kind {
	case String:
		return v.s
	case Char:
		return string(v.r)
	default:
		return Inspect(v)
	}
}

// Inspect renders v the way `.`/`>string` do: a readable, round-trippable
// textual form (spec §6). Every non-Writer, non-Reader value renders to a
// non-empty string (spec §8.1 invariant 2).
func Inspect(v Value) string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return formatFloat(v.f)
	case Bool:
		if v.b {
			return "#t"
		}
		return "#f"
	case Char:
		var sb strings.Builder
		runeio.WriteEscapedChar(&sb, v.r)
		return sb.String()
	case String:
		var sb strings.Builder
		runeio.WriteEscapedString(&sb, v.s)
		return sb.String()
	case Address:
		return "@" + strconv.FormatUint(uint64(v.i), 10)
	case Vector:
		return inspectVector(v.vec)
	case Hashmap:
		return inspectHashmap(v.hm)
	case Lambda:
		return inspectLambda(v.lm)
	case Writer:
		if v.wr != nil {
			return "<writer " + v.wr.Path + ">"
		}
		return "<writer>"
	case Reader:
		if v.rd != nil {
			return "<reader " + v.rd.Path + ">"
		}
		return "<reader>"
	case Error:
		if v.err != nil {
			return "<error " + v.err.Error() + ">"
		}
		return "<error>"
	default:
		return "<?>"
	}
}

// formatFloat always shows a decimal point (spec §3.1, §6): 5 is an
// integer, 5.0 is a float rendered "5.0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func inspectVector(v *VectorData) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	if v != nil {
		for _, s := range v.items {
			sb.WriteString(Inspect(s.Get()))
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func inspectHashmap(h *HashmapData) string {
	var sb strings.Builder
	sb.WriteString("H{ ")
	if h != nil {
		for _, e := range h.m {
			sb.WriteString("{ ")
			sb.WriteString(Inspect(e.key))
			sb.WriteByte(' ')
			sb.WriteString(Inspect(e.value.Get()))
			sb.WriteString(" } ")
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func inspectLambda(l *LambdaData) string {
	if l == nil {
		return "<lambda>"
	}
	if l.Name != "" {
		return "<lambda " + l.Name + "@" + strconv.FormatUint(uint64(l.Addr), 10) + ">"
	}
	return "<lambda@" + strconv.FormatUint(uint64(l.Addr), 10) + ">"
}
