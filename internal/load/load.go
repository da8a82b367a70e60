// Package load reads symbol description files: a YAML document holding the
// symbol descriptor (name, kind, signature, curated metadata) together with
// the parsed docstring tree. The files are produced by the introspection
// side of the toolchain; this package only decodes them into the in-memory
// node types.
package load

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/introspect"
	"github.com/cxcsds/ahelpgen/internal/rst"
	"github.com/cxcsds/ahelpgen/internal/symbols"
)

// File is one decoded symbol description.
type File struct {
	Symbol   *symbols.Symbol
	Document *rst.Document
}

type fileSpec struct {
	Symbol   symbolSpec  `yaml:"symbol"`
	Document []yaml.Node `yaml:"document"`
}

type symbolSpec struct {
	Name      string            `yaml:"name"`
	Kind      string            `yaml:"kind"`
	Model     *modelSpec        `yaml:"model"`
	Synonyms  []string          `yaml:"synonyms"`
	Signature string            `yaml:"signature"`
	Params    []paramSpec       `yaml:"params"`
	Return    string            `yaml:"return"`
	Metadata  map[string]string `yaml:"metadata"`
}

type modelSpec struct {
	Class    string `yaml:"class"`
	Defaults string `yaml:"defaults"`
}

type paramSpec struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default string `yaml:"default"`
}

// ReadFile loads one symbol description from disk.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInput, errors.SeverityFatal,
			fmt.Sprintf("open %s", path))
	}
	defer f.Close()
	return Read(f)
}

// Read decodes one symbol description.
func Read(r io.Reader) (*File, error) {
	var spec fileSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInput, errors.SeverityFatal,
			"decode symbol description")
	}

	sym, err := buildSymbol(&spec.Symbol)
	if err != nil {
		return nil, err
	}

	doc := &rst.Document{}
	for i := range spec.Document {
		b, err := decodeBlock(&spec.Document[i])
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, b)
	}

	return &File{Symbol: sym, Document: doc}, nil
}

func buildSymbol(s *symbolSpec) (*symbols.Symbol, error) {
	if s.Name == "" {
		return nil, errors.New(errors.CategoryInput, errors.SeverityFatal,
			"symbol description has no name")
	}

	sym := &symbols.Symbol{
		Name:          s.Name,
		Synonyms:      s.Synonyms,
		SignatureText: s.Signature,
		Metadata:      s.Metadata,
	}

	switch s.Kind {
	case "", "callable":
		sym.Kind = symbols.Callable
	case "model":
		sym.Kind = symbols.ModelComponent
	default:
		return nil, errors.Newf(errors.CategoryInput, errors.SeverityFatal,
			"unknown symbol kind %q", s.Kind)
	}

	if s.Model != nil {
		mi := &symbols.ModelInfo{DefaultsText: s.Model.Defaults}
		switch s.Model.Class {
		case "", "native":
			mi.Class = symbols.ClassNative
		case "additive":
			mi.Class = symbols.ClassAdditive
		case "multiplicative":
			mi.Class = symbols.ClassMultiplicative
		case "convolution":
			mi.Class = symbols.ClassConvolution
		default:
			return nil, errors.Newf(errors.CategoryInput, errors.SeverityFatal,
				"unknown model class %q", s.Model.Class)
		}
		sym.Model = mi
	}

	if len(s.Params) > 0 || s.Return != "" {
		sig := &introspect.Signature{Return: s.Return}
		for _, p := range s.Params {
			sig.Params = append(sig.Params, introspect.Param{
				Name: p.Name, Type: p.Type, Default: p.Default,
			})
		}
		sym.Signature = sig
	}

	return sym, nil
}
