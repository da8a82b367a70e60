package convert

import (
	"strings"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/rst"
)

// findReferences extracts a "References" rubric section, running to the next
// rubric. Each entry becomes one line of a syntax block, as a hyperlink when
// a URL can be pulled out of the entry. Three shapes occur: a footnote, a
// paragraph holding a named reference plus its target, and an enumerated
// list of references.
func (c *converter) findReferences(nodes []rst.Block) (*ahelp.Adesc, []rst.Block, error) {
	rest, ok, err := matchRubric(nodes, "References")
	if err != nil || !ok {
		return nil, nodes, err
	}

	lnodes, rnodes := splitWhile(func(b rst.Block) bool { return !isRubric(b) }, rest)

	syn := &ahelp.Syntax{}
	for _, b := range lnodes {
		if err := c.referenceLines(syn, b); err != nil {
			return nil, nil, err
		}
	}

	out := &ahelp.Adesc{Title: "References"}
	out.Append(syn)
	return out, rnodes, nil
}

func (c *converter) referenceLines(syn *ahelp.Syntax, b rst.Block) error {
	p, ok := b.(*rst.Paragraph)
	if !ok {
		if el, ok := b.(*rst.EnumeratedList); ok {
			return c.referenceListLines(syn, el)
		}
		return errors.Structuref("unexpected %s in references section", b.Kind())
	}

	// A footnote parses as a paragraph wrapping the footnote node.
	if len(p.Inlines) == 1 {
		if fn, ok := p.Inlines[0].(*rst.Footnote); ok {
			return c.footnoteLine(syn, fn)
		}
	}

	// Named reference followed by its target.
	if len(p.Inlines) == 2 {
		ref, okr := p.Inlines[0].(*rst.Reference)
		tgt, okt := p.Inlines[1].(*rst.Target)
		if okr && okt {
			if !strings.HasPrefix(ref.URI, "http") {
				return errors.Structuref("reference entry without a URL: %q", ref.URI)
			}
			c.refs.add(ref.Name)
			if err := c.refs.check(tgt.Names); err != nil {
				return err
			}
			syn.Lines = append(syn.Lines, ahelp.Line{
				Href: &ahelp.Href{Text: ref.Display, Link: ref.URI},
			})
			return nil
		}
	}

	return errors.Structuref("unexpected reference entry shape in %s", c.name)
}

// footnoteLine turns one footnote into a line, splitting the citation text
// from the link when the body carries a URL.
func (c *converter) footnoteLine(syn *ahelp.Syntax, fn *rst.Footnote) error {
	p, ok := fn.Body.(*rst.Paragraph)
	if !ok {
		return errors.Structuref("footnote body holds %s, expected paragraph", fn.Body.Kind())
	}
	label := "[" + fn.Label + "]"

	switch len(p.Inlines) {
	case 1:
		switch v := p.Inlines[0].(type) {
		case *rst.Text:
			if strings.HasPrefix(v.Text, "http") {
				syn.Lines = append(syn.Lines, ahelp.Line{
					Href: &ahelp.Href{Text: label, Link: v.Text},
				})
				return nil
			}
			syn.Lines = append(syn.Lines, ahelp.Line{Text: label + " " + v.Text})
			return nil
		case *rst.Reference:
			return c.footnoteRefLine(syn, label, v, nil)
		}

	case 2:
		if txt, ok := p.Inlines[0].(*rst.Text); ok {
			ref, okr := p.Inlines[1].(*rst.Reference)
			if okr && strings.HasPrefix(ref.URI, "http") {
				c.refs.add(ref.Name)
				syn.Lines = append(syn.Lines, ahelp.Line{
					Href: &ahelp.Href{Text: label + " " + txt.Text, Link: ref.URI},
				})
				return nil
			}
		}
	}

	// Reference first, with trailing commentary.
	if ref, ok := p.Inlines[0].(*rst.Reference); ok && strings.HasPrefix(ref.URI, "http") {
		return c.footnoteRefLine(syn, label, ref, p.Inlines[1:])
	}

	return errors.Structuref("unexpected footnote shape in %s", c.name)
}

// footnoteRefLine emits a linked line for a footnote whose body leads with a
// reference; any remaining inline content becomes the link tail.
func (c *converter) footnoteRefLine(syn *ahelp.Syntax, label string, ref *rst.Reference, tail []rst.Inline) error {
	c.refs.add(ref.Name)

	text := label
	if ref.Display != ref.URI {
		text = label + " " + ref.Display
	}
	href := &ahelp.Href{Text: text, Link: ref.URI}

	if len(tail) > 0 {
		var parts []string
		for _, n := range tail {
			txt, err := c.renderInline(n)
			if err != nil {
				return err
			}
			parts = append(parts, txt)
		}
		href.Tail = strings.Join(parts, "")
	}

	syn.Lines = append(syn.Lines, ahelp.Line{Href: href})
	return nil
}

func (c *converter) referenceListLines(syn *ahelp.Syntax, el *rst.EnumeratedList) error {
	for _, item := range el.Items {
		if len(item.Blocks) == 0 {
			return errors.Structure("empty reference list item")
		}
		p, ok := item.Blocks[0].(*rst.Paragraph)
		if !ok {
			return errors.Structuref("reference list item holds %s, expected paragraph",
				item.Blocks[0].Kind())
		}
		if len(p.Inlines) == 0 {
			return errors.Structure("empty reference list entry")
		}

		if ref, ok := p.Inlines[0].(*rst.Reference); ok {
			if !strings.HasPrefix(ref.URI, "http") {
				return errors.Structuref("reference entry without a URL: %q", ref.URI)
			}
			c.refs.add(ref.Name)
			for _, n := range p.Inlines[1:] {
				if tgt, ok := n.(*rst.Target); ok {
					if err := c.refs.check(tgt.Names); err != nil {
						return err
					}
				}
			}
			syn.Lines = append(syn.Lines, ahelp.Line{
				Href: &ahelp.Href{Text: ref.Display, Link: ref.URI},
			})
			continue
		}

		if len(p.Inlines) != 1 {
			return errors.Structuref("unexpected reference list entry with %d inlines", len(p.Inlines))
		}
		txt, err := c.renderInlines(p.Inlines)
		if err != nil {
			return err
		}
		syn.Lines = append(syn.Lines, ahelp.Line{Text: txt})
	}
	return nil
}
