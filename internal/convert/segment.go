package convert

import (
	"strings"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/introspect"
	"github.com/cxcsds/ahelpgen/internal/logfields"
	"github.com/cxcsds/ahelpgen/internal/rst"
)

// The segmenter applies an ordered battery of section extractors to the
// top-level node sequence. Each extractor either inspects the node at the
// head of the remainder or consumes a contiguous run up to the next section
// marker, and returns the remainder untouched when it does not apply.

// splitWhile splits xs at the first element failing pred.
func splitWhile(pred func(rst.Block) bool, xs []rst.Block) ([]rst.Block, []rst.Block) {
	for i, x := range xs {
		if !pred(x) {
			return xs[:i], xs[i:]
		}
	}
	return xs, nil
}

func isRubric(b rst.Block) bool {
	_, ok := b.(*rst.Rubric)
	return ok
}

// findSyntax builds the syntax block from the introspected signature. The
// docstring takes precedence when its first paragraph restates the call
// signature, but no current docstring does; hitting that shape needs review.
func (c *converter) findSyntax(nodes []rst.Block) (*ahelp.Syntax, []rst.Block, error) {
	var syn *ahelp.Syntax
	switch {
	case c.sym.SignatureText != "":
		syn = &ahelp.Syntax{}
		syn.AddLine(introspect.Clean(c.sym.SignatureText))
	case c.sym.Signature != nil:
		// No rendered signature, but the structured one can stand in.
		syn = &ahelp.Syntax{}
		for _, l := range introspect.FormatLines(c.name, *c.sym.Signature) {
			syn.AddLine(l)
		}
	}

	if len(nodes) == 0 {
		return syn, nodes, nil
	}
	p, ok := nodes[0].(*rst.Paragraph)
	if !ok {
		return syn, nodes, nil
	}

	txt, err := c.renderInlines(p.Inlines)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasPrefix(strings.TrimSpace(txt), c.name+"(") {
		return syn, nodes, nil
	}

	return nil, nil, errors.Structuref("docstring starts with a signature line: %q", txt)
}

// synopsisClean strips a single leading and trailing punctuation character
// from a keyword candidate.
func synopsisClean(v string) string {
	for _, ch := range []string{",", ".", ":", `"`, "'"} {
		v = strings.TrimSuffix(v, ch)
		v = strings.TrimPrefix(v, ch)
	}
	return v
}

// findSynopsis takes the first paragraph as the synopsis, when present, and
// derives candidate reference keywords from its words. The synopsis keeps
// the raw inline spelling: fragments concatenate without separators and
// literals stay as written, unlike the rendered body text.
func (c *converter) findSynopsis(nodes []rst.Block) (string, map[string]bool, []rst.Block) {
	if len(nodes) == 0 {
		return "", nil, nodes
	}
	p, ok := nodes[0].(*rst.Paragraph)
	if !ok {
		return "", nil, nodes
	}

	syn := strings.TrimSpace(rawText(p.Inlines))

	keywords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(syn)) {
		keywords[synopsisClean(w)] = true
	}
	return syn, keywords, nodes[1:]
}

// findDesc collects the description: everything up to the first rubric,
// field list, or see-also block. A symbol with synonyms gets a leading
// paragraph naming them even when the description itself is empty.
func (c *converter) findDesc(nodes []rst.Block) ([]ahelp.Element, []rst.Block, error) {
	want := func(b rst.Block) bool {
		switch b.(type) {
		case *rst.Rubric, *rst.FieldList, *rst.SeeAlso:
			return false
		}
		return true
	}
	pnodes, rnodes := splitWhile(want, nodes)
	if len(pnodes) == 0 && len(c.sym.Synonyms) == 0 {
		return nil, nodes, nil
	}

	var out []ahelp.Element
	if len(c.sym.Synonyms) > 0 {
		if len(c.sym.Synonyms) != 1 {
			return nil, nil, errors.Structuref("%d synonyms, expected 1", len(c.sym.Synonyms))
		}
		out = append(out, &ahelp.Para{
			Text: "The function is also called " + c.sym.Synonyms[0] + "().",
		})
	}

	for _, b := range pnodes {
		els, err := c.convertBlock(b)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, els...)
	}

	// A run that converts to nothing (version annotations only, say) still
	// claims the section: the output carries an empty description rather
	// than none.
	if len(out) == 0 {
		c.log.Info("no text in description block",
			logfields.Symbol(c.name), logfields.Section("desc"))
		out = []ahelp.Element{}
	}
	return out, rnodes, nil
}

// fieldParam is one parameter or attribute from a field list. The bodies
// stay unconverted so they can feed the parameter table and, separately, the
// syntax annotations.
type fieldParam struct {
	Name  string
	Param *rst.FieldBody
	Type  *rst.FieldBody
	IVar  *rst.FieldBody
}

type returnField struct {
	Kind string // "returns" or "rtype"
	Body *rst.FieldBody
}

// fieldInfo is the raw parse of one field list.
type fieldInfo struct {
	Params  []*fieldParam
	Returns []returnField
	Raises  int
}

// findFieldList parses the field list at the head of the remainder, keyed by
// the field-name prefixes the docstring style produces: "param x", "type x",
// "ivar x", "returns", "rtype", "raises".
func (c *converter) findFieldList(nodes []rst.Block) (*fieldInfo, []rst.Block, error) {
	if len(nodes) == 0 {
		return nil, nodes, nil
	}
	fl, ok := nodes[0].(*rst.FieldList)
	if !ok {
		return nil, nodes, nil
	}

	out := &fieldInfo{}
	byName := make(map[string]*fieldParam)

	for i := range fl.Fields {
		field := &fl.Fields[i]
		toks := strings.SplitN(field.Name, " ", 2)
		t0 := toks[0]

		switch t0 {
		case "raises":
			out.Raises++
			continue
		case "returns", "rtype":
			if len(toks) != 1 {
				return nil, nil, errors.Structuref("unexpected field name %q", field.Name)
			}
			out.Returns = append(out.Returns, returnField{Kind: t0, Body: &field.Body})
			continue
		case "param", "type", "ivar":
		default:
			return nil, nil, errors.Structuref("unexpected field name %q", field.Name)
		}

		if len(toks) != 2 {
			return nil, nil, errors.Structuref("unexpected field name %q", field.Name)
		}
		pname := toks[1]

		// Attribute docstrings can spread one description over several
		// "ivar a," "ivar b" lines; fold the name into the previous
		// entry when it ended with a comma and had no body.
		if t0 == "ivar" && len(out.Params) > 0 {
			prev := out.Params[len(out.Params)-1]
			if strings.HasSuffix(strings.TrimSpace(prev.Name), ",") &&
				prev.IVar != nil && len(prev.IVar.Blocks) == 0 {
				delete(byName, prev.Name)
				prev.Name = prev.Name + " " + pname
				prev.IVar = &field.Body
				byName[prev.Name] = prev
				continue
			}
		}

		store, ok := byName[pname]
		if !ok {
			store = &fieldParam{Name: pname}
			byName[pname] = store
			out.Params = append(out.Params, store)
		}

		switch t0 {
		case "param":
			store.Param = &field.Body
		case "type":
			store.Type = &field.Body
		case "ivar":
			store.IVar = &field.Body
		}
	}

	return out, nodes[1:], nil
}

// findWarning extracts a top-level warning admonition into its own titled
// section.
func (c *converter) findWarning(nodes []rst.Block) (*ahelp.Adesc, []rst.Block, error) {
	if len(nodes) == 0 {
		return nil, nodes, nil
	}
	w, ok := nodes[0].(*rst.Warning)
	if !ok {
		return nil, nodes, nil
	}
	if len(w.Blocks) != 1 {
		return nil, nil, errors.Structuref("warning with %d blocks", len(w.Blocks))
	}

	txt, err := c.renderBlockText(w.Blocks[0])
	if err != nil {
		return nil, nil, err
	}

	out := &ahelp.Adesc{Title: "Warning"}
	out.Append(&ahelp.Para{Text: txt})
	return out, nodes[1:], nil
}

// findSeeAlso pulls the related-symbol names out of a see-also block. Two
// shapes occur: a definition list (name plus summary) and a bare paragraph
// of names; only the names are kept either way.
func (c *converter) findSeeAlso(nodes []rst.Block) ([]string, []rst.Block, error) {
	if len(nodes) == 0 {
		return nil, nodes, nil
	}
	sa, ok := nodes[0].(*rst.SeeAlso)
	if !ok {
		return nil, nodes, nil
	}
	if len(sa.Blocks) != 1 {
		return nil, nil, errors.Structuref("see-also with %d blocks", len(sa.Blocks))
	}

	var names []string
	switch v := sa.Blocks[0].(type) {
	case *rst.DefinitionList:
		for _, item := range v.Items {
			if len(item.Term) == 0 {
				return nil, nil, errors.Structure("see-also term with no content")
			}
			txt, err := seeAlsoName(item.Term[0])
			if err != nil {
				return nil, nil, err
			}
			names = append(names, txt)
		}
	case *rst.Paragraph:
		for _, n := range v.Inlines {
			txt, err := seeAlsoName(n)
			if err != nil {
				return nil, nil, err
			}
			names = append(names, txt)
		}
	default:
		return nil, nil, errors.Structuref("unexpected %s in see-also block", sa.Blocks[0].Kind())
	}

	// Drop separator fragments, strip module paths, dedupe.
	var out []string
	seen := make(map[string]bool)
	kept := 0
	for _, n := range names {
		if strings.TrimSpace(n) == "," {
			continue
		}
		kept++
		if strings.HasPrefix(n, "sherpa.") {
			toks := strings.Split(n, ".")
			n = toks[len(toks)-1]
		} else if strings.Contains(n, ".") {
			return nil, nil, errors.Integrityf("invalid see-also name %q", n)
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	if kept != len(out) {
		c.log.Debug("see-also contains duplicates",
			logfields.Symbol(c.name), logfields.Section("seealso"))
	}

	return out, nodes[1:], nil
}

func seeAlsoName(n rst.Inline) (string, error) {
	switch v := n.(type) {
	case *rst.Literal:
		return v.Text, nil
	case *rst.Text:
		return v.Text, nil
	default:
		return "", errors.Structuref("unexpected %s in see-also names", n.Kind())
	}
}

// Sentences that only restate an XSPEC availability requirement; the fact is
// carried by the version history instead, so matching notes are dropped.
func xspecOnlySentence(v string) string {
	return "This model is only available when used with XSPEC " + v + " or later."
}

var droppedNoteSentences = []string{
	xspecOnlySentence("12.9.1"),
	xspecOnlySentence("12.10.0"),
	xspecOnlySentence("12.10.1"),
	xspecOnlySentence("12.11.0"),
	xspecOnlySentence("12.12.0"),
	xspecOnlySentence("12.13.0"),
	"This model requires XSPEC 12.14.0 or later.",
}

// unsupportedNoteSentences mark models whose XSPEC version never shipped in
// a CIAO release; such a symbol must not be documented at all.
var unsupportedNoteSentences = []string{
	xspecOnlySentence("12.12.1"),
	xspecOnlySentence("12.15.0"),
}

// findNotes extracts a "Notes" rubric section, running to the next rubric.
// XSPEC-availability sentences are filtered out first; if nothing is left
// the section is absent.
func (c *converter) findNotes(nodes []rst.Block) (*ahelp.Adesc, []rst.Block, error) {
	rest, ok, err := matchRubric(nodes, "Notes")
	if err != nil || !ok {
		return nil, nodes, err
	}

	lnodes, rnodes := splitWhile(func(b rst.Block) bool { return !isRubric(b) }, rest)

	var kept []rst.Block
	for _, b := range lnodes {
		txt, isPara, err := c.paraPlainText(b)
		if err != nil {
			return nil, nil, err
		}
		if isPara {
			if contains(droppedNoteSentences, txt) {
				continue
			}
			if contains(unsupportedNoteSentences, txt) {
				return nil, nil, errors.Integrityf("%s requires an XSPEC version not shipped with CIAO", c.name)
			}
			if strings.Contains(txt, "This model requires XSPEC 12.14.0 or later.") {
				return nil, nil, errors.Structuref("XSPEC requirement embedded in a longer note for %s", c.name)
			}
		}
		kept = append(kept, b)
	}
	if len(kept) == 0 {
		return nil, rnodes, nil
	}

	out := &ahelp.Adesc{Title: "Notes"}
	for _, b := range kept {
		els, err := c.convertBlock(b)
		if err != nil {
			return nil, nil, err
		}
		out.Append(els...)
	}
	if len(out.Elements) == 0 {
		return nil, rnodes, nil
	}
	return out, rnodes, nil
}

// paraPlainText renders a paragraph's text, reporting whether the block was
// a paragraph at all.
func (c *converter) paraPlainText(b rst.Block) (string, bool, error) {
	p, ok := b.(*rst.Paragraph)
	if !ok {
		return "", false, nil
	}
	txt, err := c.renderInlines(p.Inlines)
	if err != nil {
		return "", false, err
	}
	return txt, true, nil
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// matchRubric consumes a leading rubric with the given title. A second
// return of false means the head of nodes was something else.
func matchRubric(nodes []rst.Block, titles ...string) ([]rst.Block, bool, error) {
	if len(nodes) == 0 {
		return nodes, false, nil
	}
	r, ok := nodes[0].(*rst.Rubric)
	if !ok {
		return nodes, false, nil
	}
	txt := strings.TrimSpace(r.Text)
	for _, t := range titles {
		if txt == t {
			return nodes[1:], true, nil
		}
	}
	return nodes, false, nil
}
