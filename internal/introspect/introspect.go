// Package introspect is the boundary to the signature-introspection
// collaborator. The converter receives rendered call-signature text for a
// symbol and, when annotations are available, a structured Signature; this
// package cleans the rendered text and formats structured signatures into
// display lines. It never inspects anything itself.
package introspect

import (
	"regexp"
	"strings"
)

// Param is one parameter of a structured signature. Type and Default are
// already rendered to text by the collaborator; empty means absent.
type Param struct {
	Name    string
	Type    string
	Default string
}

// Signature is a structured call signature. Return is the rendered return
// annotation, empty when absent.
type Signature struct {
	Params []Param
	Return string
}

var (
	classRE    = regexp.MustCompile(`(.+)<class 'sherpa\..+\.([^.]+)'>(.+)`)
	functionRE = regexp.MustCompile(`(.+)<function ([^ ]+) at 0x[^>]+>(.+)`)

	// Minimum length avoids scrubbing short hex literals in real text.
	hexAddrRE = regexp.MustCompile(`0x[0-9a-f]{8,16}`)
)

// Clean makes a default rendered signature less intimidating: class reprs
// collapse to the bare class name and function reprs to the function name.
// Replacement repeats until no repr remains.
func Clean(sig string) string {
	sig = cleanRE(classRE, sig)
	sig = cleanRE(functionRE, sig)
	return sig
}

func cleanRE(re *regexp.Regexp, txt string) string {
	for {
		m := re.FindStringSubmatch(txt)
		if m == nil {
			return txt
		}
		txt = m[1] + m[2] + m[3]
	}
}

// ScrubAddresses replaces memory addresses (0xHEX) with "0x..." so default
// values render reproducibly.
func ScrubAddresses(s string) string {
	return hexAddrRE.ReplaceAllString(s, "0x...")
}

// FormatLines renders a structured signature as indented display lines, one
// parameter per line, with the return annotation on a trailing line when the
// signature has parameters.
func FormatLines(name string, sig Signature) []string {
	const spacer = "   "
	var out []string

	current := spacer + name + "("
	nameLen := len(name) + len(spacer)
	indent := strings.Repeat(" ", nameLen+1)

	first := true
	for _, p := range sig.Params {
		if first {
			first = false
		} else {
			out = append(out, current+",")
			current = indent
		}
		current += p.Name
		if p.Type != "" {
			current += ": " + p.Type
		}
		if p.Default != "" {
			current += " = " + ScrubAddresses(p.Default)
		}
	}

	if sig.Return == "" {
		out = append(out, current+")")
		return out
	}

	retval := ") -> " + sig.Return
	if first {
		// No parameters; keep the return annotation on the same line.
		return append(out, current+retval)
	}

	out = append(out, current)
	out = append(out, strings.Repeat(" ", nameLen)+retval)
	return out
}
