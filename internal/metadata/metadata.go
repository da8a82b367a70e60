// Package metadata handles the fixed-key entry metadata: merging the
// document-derived values with externally curated ones, grouping see-also
// symbols, and the fallback context classification.
package metadata

import (
	"sort"
	"strings"

	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/util/sets"
)

// Fixed metadata attribute keys.
const (
	KeyPkg                  = "pkg"
	KeyKey                  = "key"
	KeyRefkeywords          = "refkeywords"
	KeySeeAlsoGroups        = "seealsogroups"
	KeyDisplaySeeAlsoGroups = "displayseealsogroups"
	KeyContext              = "context"
)

// ContextUnclassified is the sentinel context assigned when no rule matches,
// chosen to be easy to grep for in generated output.
const ContextUnclassified = "sherpaish"

// Metadata is the fixed-key attribute set of one entry.
type Metadata struct {
	Pkg                  string
	Key                  string
	Refkeywords          string
	SeeAlsoGroups        string
	DisplaySeeAlsoGroups string
	Context              string
}

// multiValueKeys are merged by whitespace-split set union; all other keys are
// replaced outright by the override.
var multiValueKeys = sets.New(KeyRefkeywords, KeySeeAlsoGroups, KeyDisplaySeeAlsoGroups)

// Merge combines base with externally supplied overrides. A nil override map
// returns base unchanged. An override key outside the fixed key set is fatal:
// it means the curated metadata and the schema have drifted.
func Merge(base Metadata, override map[string]string) (Metadata, error) {
	if override == nil {
		return base, nil
	}

	// Stable iteration keeps error reporting deterministic.
	keys := make([]string, 0, len(override))
	for k := range override {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := base
	for _, k := range keys {
		v := override[k]
		field, ok := fieldFor(&out, k)
		if !ok {
			return Metadata{}, errors.Newf(errors.CategoryMetadata, errors.SeverityFatal,
				"unknown metadata key %q", k)
		}
		if multiValueKeys.Has(k) {
			*field = unionValues(*field, v)
		} else {
			*field = v
		}
	}
	return out, nil
}

func fieldFor(m *Metadata, key string) (*string, bool) {
	switch key {
	case KeyPkg:
		return &m.Pkg, true
	case KeyKey:
		return &m.Key, true
	case KeyRefkeywords:
		return &m.Refkeywords, true
	case KeySeeAlsoGroups:
		return &m.SeeAlsoGroups, true
	case KeyDisplaySeeAlsoGroups:
		return &m.DisplaySeeAlsoGroups, true
	case KeyContext:
		return &m.Context, true
	default:
		return nil, false
	}
}

// unionValues merges two space-separated value lists: split, union, sort,
// re-join. Commutative in the union and idempotent.
func unionValues(a, b string) string {
	merged := sets.New(strings.Fields(a)...)
	merged.Union(sets.New(strings.Fields(b)...))
	return strings.Join(sets.SortedStrings(merged), " ")
}

// GroupPairs builds the see-also group tokens: one lower-cased, sorted
// concatenation per (name, related) pair, so the help browser can match the
// two symbols from either side.
func GroupPairs(name string, seealso []string) string {
	if len(seealso) == 0 {
		return ""
	}

	join := func(t1, t2 string) string {
		if t1 < t2 {
			return t1 + t2
		}
		return t2 + t1
	}

	nlower := strings.ToLower(name)
	pairs := make([]string, 0, len(seealso))
	for _, s := range seealso {
		pairs = append(pairs, join(nlower, strings.ToLower(s)))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}
