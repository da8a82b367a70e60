package convert

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/logfields"
	"github.com/cxcsds/ahelpgen/internal/rst"
)

// Example text rewrites: the docstrings build model instances through the
// class interface, but the help pages document the string-based UI, so the
// class spellings are rewritten line by line.
var (
	modelSettingRE   = regexp.MustCompile(`^>>> (.+) = sherpa\.models\.[^(]+\.([A-Z][a-zA-Z0-9]+)`)
	xsModelSettingRE = regexp.MustCompile(`^>>> (.+) = XS([a-zA-Z0-9]+)`)
	modelCallRE      = regexp.MustCompile(`(.+)sherpa\.models\.[^(]+\.([A-Z][a-zA-Z0-9]+)(.+)`)
)

// rewriteExampleText applies the model-spelling conversions:
//
//	>>> mdl = sherpa.models.basic.Gauss1D() -> >>> gauss1d.mdl
//	>>> mdl = XSapec()                      -> >>> xsapec.mdl
//	sherpa.models.basic.Gauss1D(            -> gauss1d(
func rewriteExampleText(txt string) string {
	lines := strings.Split(txt, "\n")
	for i, line := range lines {
		if m := modelSettingRE.FindStringSubmatch(line); m != nil {
			lines[i] = ">>> " + strings.ToLower(m[2]) + "." + m[1]
			continue
		}
		if m := xsModelSettingRE.FindStringSubmatch(line); m != nil {
			lines[i] = ">>> xs" + strings.ToLower(m[2]) + "." + m[1]
			continue
		}
		for {
			m := modelCallRE.FindStringSubmatch(lines[i])
			if m == nil {
				break
			}
			lines[i] = m[1] + strings.ToLower(m[2]) + m[3]
		}
	}
	return strings.Join(lines, "\n")
}

// findExamples extracts an "Examples" rubric section, running to the next
// rubric, and splits it into individual examples. An example is optional
// text blocks followed by code; a paragraph starting lower-case right after
// code is trailing commentary on the previous example rather than the start
// of a new one.
func (c *converter) findExamples(nodes []rst.Block) (*ahelp.QExampleList, []rst.Block, error) {
	rest, ok, err := matchRubric(nodes, "Examples", "Example")
	if err != nil || !ok {
		return nil, nodes, err
	}

	lnodes, rnodes := splitWhile(func(b rst.Block) bool { return !isRubric(b) }, rest)

	out := &ahelp.QExampleList{}
	var desc *ahelp.QExample

	for _, b := range lnodes {
		switch b.(type) {
		case *rst.Paragraph, *rst.DoctestBlock, *rst.BlockQuote,
			*rst.LiteralBlock, *rst.BulletList:
		default:
			return nil, nil, errors.Structuref("unexpected %s in examples section", b.Kind())
		}

		if desc == nil {
			if p, ok := b.(*rst.Paragraph); ok && len(out.Examples) >= 1 {
				txt, err := c.renderInlines(p.Inlines)
				if err != nil {
					return nil, nil, err
				}
				if startsLower(txt) {
					desc = out.Examples[len(out.Examples)-1]
				}
			}
			if desc == nil {
				desc = &ahelp.QExample{}
				out.Examples = append(out.Examples, desc)
			}
		}

		els, err := c.convertBlock(b)
		if err != nil {
			return nil, nil, err
		}
		for _, el := range els {
			if err := rewriteExampleElement(el); err != nil {
				return nil, nil, err
			}
			desc.Desc = append(desc.Desc, el)
		}

		switch b.(type) {
		case *rst.Paragraph, *rst.BulletList:
		default:
			desc = nil
		}
	}

	return out, rnodes, nil
}

func rewriteExampleElement(el ahelp.Element) error {
	switch v := el.(type) {
	case *ahelp.Para:
		v.Text = rewriteExampleText(v.Text)
	case *ahelp.Verbatim:
		v.Text = rewriteExampleText(v.Text)
	case *ahelp.List:
		for i, item := range v.Items {
			v.Items[i] = rewriteExampleText(item)
		}
	default:
		return errors.Structure("unexpected element kind in example text")
	}
	return nil
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}

// augmentExamples prepends a synthesized create/print example for model
// components, showing the default parameter table.
func (c *converter) augmentExamples(examples *ahelp.QExampleList) *ahelp.QExampleList {
	if c.sym.Model == nil {
		return examples
	}
	if c.sym.Model.DefaultsText == "" {
		c.log.Debug("model has no default-parameter text", logfields.Symbol(c.name))
		return examples
	}
	if examples == nil {
		examples = &ahelp.QExampleList{}
	}

	name := strings.ToLower(c.name)
	syn := &ahelp.Syntax{}
	syn.AddLine(`>>> create_model_component("` + name + `", "mdl")`)
	syn.AddLine(">>> print(mdl)")

	ex := &ahelp.QExample{
		Syntax: syn,
		Desc: []ahelp.Element{
			&ahelp.Para{
				Text: "Create a component of the " + name + " model " +
					"and display its default parameters. The output is:",
			},
			&ahelp.Verbatim{Text: c.sym.Model.DefaultsText},
		},
	}

	examples.Examples = append([]*ahelp.QExample{ex}, examples.Examples...)
	return examples
}
