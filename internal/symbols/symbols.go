// Package symbols describes the symbol being documented: its name, what kind
// of thing it is, and the collaborator-supplied facts (signature, synonyms,
// externally curated metadata) the converter folds into the output.
package symbols

import (
	"github.com/cxcsds/ahelpgen/internal/introspect"
)

// Kind distinguishes plain callables from model components.
type Kind int

const (
	Callable Kind = iota
	ModelComponent
)

// String returns the kind name.
func (k Kind) String() string {
	if k == ModelComponent {
		return "model"
	}
	return "callable"
}

// ModelClass identifies a model component's family. The external (XSPEC)
// classes get extra syntax and see-also treatment.
type ModelClass int

const (
	ClassNative ModelClass = iota
	ClassAdditive
	ClassMultiplicative
	ClassConvolution
)

// Phrase returns the article-bearing description used in syntax notes.
func (c ModelClass) Phrase() string {
	switch c {
	case ClassAdditive:
		return "an additive"
	case ClassMultiplicative:
		return "a multiplicative"
	case ClassConvolution:
		return "a convolution"
	default:
		return ""
	}
}

// External reports whether the class belongs to the external model library.
func (c ModelClass) External() bool {
	return c == ClassAdditive || c == ClassMultiplicative || c == ClassConvolution
}

// ModelInfo carries model-component facts from the introspection collaborator.
type ModelInfo struct {
	Class ModelClass

	// DefaultsText is the printed default-parameter table for a component
	// instance named "mdl". Used to synthesize the leading example.
	DefaultsText string
}

// Symbol is one symbol to document.
type Symbol struct {
	Name string
	Kind Kind

	// Model is set only for ModelComponent symbols.
	Model *ModelInfo

	// Synonyms lists alternate callable names; in practice at most one.
	Synonyms []string

	// SignatureText is the rendered call signature, empty when unavailable.
	SignatureText string

	// Signature is the structured signature when annotations were available.
	Signature *introspect.Signature

	// Metadata holds externally curated attribute overrides keyed by the
	// fixed metadata key names.
	Metadata map[string]string
}

// IsExternalModel reports whether the symbol is an external-library model
// component.
func (s *Symbol) IsExternalModel() bool {
	return s.Model != nil && s.Model.Class.External()
}
