// Package convert turns one parsed docstring document into one structured
// help document. The pipeline is a recursive tree transducer: a segmenter
// pulls the fixed sections off the top-level node sequence, a per-kind node
// converter renders each block, version annotations are aggregated into a
// consolidated history section, and assembly stitches the pieces together
// with the merged metadata.
//
// Conversion is pure and single-threaded: all per-document state (the
// reference registry, the version store) lives in a converter constructed
// per call, so batches can be fanned out across workers freely.
package convert

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/logfields"
	"github.com/cxcsds/ahelpgen/internal/metadata"
	"github.com/cxcsds/ahelpgen/internal/rst"
	"github.com/cxcsds/ahelpgen/internal/symbols"
)

// Release facts stamped into every output document.
const (
	CIAOVersion  = "CIAO 4.18"
	XSPECVersion = "12.14.0k"
	LastModified = "December 2025"

	bugsURL = "https://cxc.harvard.edu/sherpa/bugs/"
)

// Options configures one conversion.
type Options struct {
	// Root selects the output DTD; the internal structure is the same
	// for both.
	Root ahelp.RootKind

	// LastModified overrides the default last-modified label.
	LastModified string

	// Releases adds internal-to-CIAO release translations on top of the
	// built-in table, for documenting against an unreleased version.
	Releases map[string]string
}

// Convert builds the help document for one symbol. A fatal error aborts
// only this document; the caller records it and moves to the next symbol.
// A non-fatal error comes back alongside a complete document: the output
// stands, but the docstring has a defect worth surfacing.
func Convert(log *slog.Logger, sym *symbols.Symbol, doc *rst.Document, opts Options) (*ahelp.Document, error) {
	c := newConverter(log, sym)

	entry, err := c.run(doc, opts)
	if err != nil {
		if cerr, ok := err.(*errors.ConvertError); ok {
			cerr.WithContext("symbol", sym.Name)
		}
		if errors.IsFatal(err) {
			return nil, err
		}
	}
	return &ahelp.Document{Root: opts.Root, Entry: entry}, err
}

func (c *converter) run(doc *rst.Document, opts Options) (*ahelp.Entry, error) {
	c.versions.releases = opts.Releases
	nodes := doc.Blocks

	syntax, nodes, err := c.findSyntax(nodes)
	if err != nil {
		return nil, err
	}
	synopsis, refkeywords, nodes := c.findSynopsis(nodes)
	desc, nodes, err := c.findDesc(nodes)
	if err != nil {
		return nil, err
	}

	// External models get a note about their family appended to the
	// syntax block.
	if c.sym.IsExternalModel() {
		if syntax == nil {
			return nil, errors.Integrityf("external model %s has no syntax block", c.name)
		}
		syntax.AddLine("")
		syntax.AddLine("The " + c.name + " model is " + c.sym.Model.Class.Phrase() + " model component.")
	}

	fieldlist, nodes, err := c.findFieldList(nodes)
	if err != nil {
		return nil, err
	}
	warnings, nodes, err := c.findWarning(nodes)
	if err != nil {
		return nil, err
	}
	seealso, nodes, err := c.findSeeAlso(nodes)
	if err != nil {
		return nil, err
	}

	// A second field list is a stray raises block; drop it with a
	// diagnostic.
	fieldlist2, nodes, err := c.findFieldList(nodes)
	if err != nil {
		return nil, err
	}
	if fieldlist2 != nil {
		c.log.Warn("ignoring second field list", logfields.Symbol(c.name))
	}

	params, err := c.buildParams(fieldlist)
	if err != nil {
		return nil, err
	}

	// A see-also block after the field lists is misplaced but usable.
	if seealso == nil {
		seealso, nodes, err = c.findSeeAlso(nodes)
		if err != nil {
			return nil, err
		}
		if seealso != nil {
			c.log.Warn("see-also block in wrong place", logfields.Symbol(c.name))
		}
	}

	notes, nodes, err := c.findNotes(nodes)
	if err != nil {
		return nil, err
	}

	// A duplicate Notes section has been seen in the wild; keep it as a
	// diagnostic rather than merging, so the docstring gets fixed. The
	// document still converts, but the defect travels back as a non-fatal
	// error.
	notesDup, nodes, err := c.findNotes(nodes)
	if err != nil {
		return nil, err
	}
	var diag *errors.ConvertError
	if notesDup != nil {
		c.log.Error("multiple Notes sections", logfields.Symbol(c.name))
		diag = errors.New(errors.CategoryStructure, errors.SeverityError,
			"duplicate Notes section")
	}

	refs, nodes, err := c.findReferences(nodes)
	if err != nil {
		return nil, err
	}
	examples, nodes, err := c.findExamples(nodes)
	if err != nil {
		return nil, err
	}
	examples = c.augmentExamples(examples)

	if refs == nil {
		refs, nodes, err = c.findReferences(nodes)
		if err != nil {
			return nil, err
		}
		if refs != nil {
			c.log.Warn("References section after Examples", logfields.Symbol(c.name))
		}
	}

	if len(nodes) != 0 {
		d := rst.Document{Blocks: nodes}
		return nil, errors.Integrityf("unrecognized trailing structure: %s",
			strings.Join(d.Kinds(), ", "))
	}

	versions, err := c.versions.Flush()
	if err != nil {
		return nil, err
	}

	attrs, err := c.buildAttrs(refkeywords, seealso)
	if err != nil {
		return nil, err
	}

	lastmod := opts.LastModified
	if lastmod == "" {
		lastmod = LastModified
	}

	entry := &ahelp.Entry{
		Attrs:        attrs,
		Synopsis:     synopsis,
		Syntax:       syntax,
		Desc:         desc,
		Examples:     examples,
		Params:       params,
		Warnings:     warnings,
		Notes:        notes,
		NotesDup:     notesDup,
		Refs:         refs,
		Versions:     versions,
		Bugs:         bugsTrailer(),
		LastModified: lastmod,
	}

	if strings.Contains(c.name, "xs") {
		entry.ToolVersion = xspecTrailer()
	}

	if diag != nil {
		return entry, diag
	}
	return entry, nil
}

// buildAttrs assembles the entry metadata: the derived values are merged
// with the curated overrides, then the context falls back to the name-based
// classification when nothing supplied one.
func (c *converter) buildAttrs(refkeywords map[string]bool, seealso []string) (ahelp.EntryAttrs, error) {
	if refkeywords == nil {
		refkeywords = make(map[string]bool)
	}

	// A couple of renamed models keep their old names findable.
	if c.name == "xszkerrbb" {
		refkeywords["kerrbb"] = true
		refkeywords["xskerrbb"] = true
	}

	keys := make([]string, 0, len(refkeywords))
	for k := range refkeywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// plot_bkg_ratio also matches "plot", "bkg", and "ratio".
	if strings.Contains(c.name, "_") {
		keys = append(keys, strings.Split(c.name, "_")...)
	}

	displayGroups := ""
	if c.sym.Model != nil {
		if c.sym.Model.Class.External() {
			displayGroups = "xsmodels"
		} else {
			displayGroups = "shmodels"
		}
	} else if len(seealso) == 0 {
		c.log.Debug("no see-also entries", logfields.Symbol(c.name))
	}

	base := metadata.Metadata{
		Pkg:                  "sherpa",
		Key:                  c.name,
		Refkeywords:          strings.Join(keys, " "),
		SeeAlsoGroups:        metadata.GroupPairs(c.name, seealso),
		DisplaySeeAlsoGroups: displayGroups,
	}

	merged, err := metadata.Merge(base, c.sym.Metadata)
	if err != nil {
		return ahelp.EntryAttrs{}, err
	}

	if merged.Context == "" {
		merged.Context = metadata.Classify(c.name, c.sym.Model != nil)
		if merged.Context == metadata.ContextUnclassified {
			c.log.Debug("fallback context", logfields.Symbol(c.name),
				logfields.Context(merged.Context))
		}
	}

	// Synonyms lead the keywords so the alternate name matches first.
	if len(c.sym.Synonyms) > 0 {
		merged.Refkeywords = strings.Join(c.sym.Synonyms, " ") + " " + merged.Refkeywords
	}

	return ahelp.EntryAttrs{
		Pkg:                  merged.Pkg,
		Key:                  merged.Key,
		Refkeywords:          merged.Refkeywords,
		SeeAlsoGroups:        merged.SeeAlsoGroups,
		DisplaySeeAlsoGroups: merged.DisplaySeeAlsoGroups,
		Context:              merged.Context,
	}, nil
}

// xspecTrailer is the standard postamble describing the supported XSPEC
// model-library version.
func xspecTrailer() *ahelp.Adesc {
	out := &ahelp.Adesc{Title: "XSPEC version"}
	out.Append(&ahelp.Para{
		Text: CIAOVersion + " comes with support for version " +
			XSPECVersion + " of the XSPEC models. This can be " +
			"checked with the following:",
	})

	syn := &ahelp.Syntax{}
	syn.AddLine("% python -c 'from sherpa.astro import xspec; " +
		"print(xspec.get_xsversion())'")
	syn.AddLine(XSPECVersion)
	out.Append(syn)
	return out
}

// bugsTrailer is the fixed bug-reporting pointer.
func bugsTrailer() []ahelp.Element {
	return []ahelp.Element{
		&ahelp.Para{
			Text: "See the ",
			Hrefs: []*ahelp.Href{{
				Text: "bugs pages on the Sherpa website",
				Link: bugsURL,
				Tail: " for an up-to-date listing of known bugs.",
			}},
		},
	}
}
