package convert

import (
	"strings"

	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/util/sets"
)

// refRegistry tracks reference names seen while rendering one document, so
// that target nodes can be checked against them. The check is one-directional:
// references do not need a matching target (external hyperlinks stand alone),
// but every target must have been named by an earlier reference.
//
// Scoped to a single conversion; never reused across documents.
type refRegistry struct {
	names sets.Set[string]
}

func newRefRegistry() *refRegistry {
	return &refRegistry{names: sets.New[string]()}
}

// add records a reference name. Comparison is case-insensitive throughout.
func (r *refRegistry) add(name string) {
	if name != "" {
		r.names.Add(strings.ToLower(name))
	}
}

// check validates a target's names against the recorded references.
func (r *refRegistry) check(names []string) error {
	if len(names) != 1 {
		return errors.Integrityf("target with %d names, expected 1", len(names))
	}
	if !r.names.Has(strings.ToLower(names[0])) {
		return errors.Integrityf("unreferenced target %q", names[0])
	}
	return nil
}
