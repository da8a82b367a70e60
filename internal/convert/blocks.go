package convert

import (
	"fmt"
	"strings"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/logfields"
	"github.com/cxcsds/ahelpgen/internal/rst"
)

// suppressedNoteTitle marks a note about an XSPEC parameter rename that has
// no matching CIAO release, so the whole note is dropped.
const suppressedNoteTitle = "Parameter renames in XSPEC 12.11.1"

// convertBlock converts one block node into zero or more output elements.
// The dispatch is exhaustive over the node kinds that occur in the corpus;
// anything else fails the document.
func (c *converter) convertBlock(b rst.Block) ([]ahelp.Element, error) {
	switch v := b.(type) {
	case *rst.Paragraph:
		p, err := c.convertPara(v, true)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{p}, nil

	case *rst.DoctestBlock:
		return []ahelp.Element{&ahelp.Verbatim{Text: v.Text}}, nil

	case *rst.LiteralBlock:
		return []ahelp.Element{&ahelp.Verbatim{Text: v.Text}}, nil

	case *rst.BulletList:
		l, err := c.convertList(v.Items)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{l}, nil

	case *rst.EnumeratedList:
		l, err := c.convertList(v.Items)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{l}, nil

	case *rst.BlockQuote:
		el, err := c.convertBlockQuote(v)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{el}, nil

	case *rst.Table:
		t, err := c.convertTable(v)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{t}, nil

	case *rst.DefinitionList:
		t, err := c.convertDefinitionList(v)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{t}, nil

	case *rst.Note:
		return c.convertNote(v)

	case *rst.Warning:
		p, err := c.convertWarning(v)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{p}, nil

	case *rst.VersionNote:
		// Version annotations are pulled out of the running text and
		// consolidated at assembly time.
		if err := c.versions.Record(c, v); err != nil {
			return nil, err
		}
		return nil, nil

	case *rst.Comment:
		// A version directive missing its second colon parses as a
		// comment; recover it by hand.
		if err := c.versions.RecordComment(c, v); err != nil {
			return nil, err
		}
		return nil, nil

	case *rst.FieldBody:
		p, err := c.convertFieldBody(v)
		if err != nil {
			return nil, err
		}
		return []ahelp.Element{p}, nil

	case *rst.SystemMessage:
		c.log.Debug("skipping system message",
			logfields.Symbol(c.name),
			logfields.NodeKind(v.Kind()),
			logfields.Context(v.Text))
		return nil, nil

	default:
		return nil, errors.Structuref("unsupported block kind %q", b.Kind()).
			WithContext("node_kind", b.Kind())
	}
}

// convertPara builds one Para from a paragraph node. The output schema only
// allows a flat run of text and link children, so an embedded reference
// flushes the accumulated text and starts a new run as the link's tail.
// With allowLinks false references are rendered inline as "text [uri]".
func (c *converter) convertPara(p *rst.Paragraph, allowLinks bool) (*ahelp.Para, error) {
	out := &ahelp.Para{}
	var text []string
	var cur *ahelp.Href

	flush := func() {
		joined := strings.Join(text, "\n")
		if cur == nil {
			out.Text = joined
		} else {
			cur.Tail = joined
		}
		text = nil
	}

	for _, n := range p.Inlines {
		switch v := n.(type) {
		case *rst.Target:
			if err := c.refs.check(v.Names); err != nil {
				return nil, err
			}

		case *rst.Reference:
			c.refs.add(v.Name)
			if !allowLinks {
				text = append(text, fmt.Sprintf("%s [%s]", v.Display, v.URI))
				continue
			}
			flush()
			cur = &ahelp.Href{Text: v.Display, Link: v.URI}
			out.Hrefs = append(out.Hrefs, cur)

		default:
			txt, err := c.renderInline(n)
			if err != nil {
				return nil, err
			}
			text = append(text, txt)
		}
	}

	flush()
	return out, nil
}

func (c *converter) convertList(items []rst.ListItem) (*ahelp.List, error) {
	out := &ahelp.List{}
	for _, item := range items {
		txt, err := c.renderItem(item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, txt)
	}
	return out, nil
}

// convertBlockQuote handles the shapes a block quote takes in practice: a
// single nested list, a run of doctest blocks (merged into one verbatim with
// blank lines between), or a single paragraph rendered verbatim.
func (c *converter) convertBlockQuote(bq *rst.BlockQuote) (ahelp.Element, error) {
	if len(bq.Blocks) == 0 {
		return nil, errors.Structure("empty block quote")
	}

	switch first := bq.Blocks[0].(type) {
	case *rst.BulletList:
		if len(bq.Blocks) != 1 {
			return nil, errors.Structuref("block quote with %d children around a list", len(bq.Blocks))
		}
		return c.convertList(first.Items)
	case *rst.EnumeratedList:
		if len(bq.Blocks) != 1 {
			return nil, errors.Structuref("block quote with %d children around a list", len(bq.Blocks))
		}
		return c.convertList(first.Items)
	}

	allDoctest := true
	for _, b := range bq.Blocks {
		if _, ok := b.(*rst.DoctestBlock); !ok {
			allDoctest = false
			break
		}
	}
	if allDoctest {
		parts := make([]string, len(bq.Blocks))
		for i, b := range bq.Blocks {
			parts[i] = b.(*rst.DoctestBlock).Text
		}
		return &ahelp.Verbatim{Text: strings.Join(parts, "\n\n")}, nil
	}

	if p, ok := bq.Blocks[0].(*rst.Paragraph); ok {
		if len(bq.Blocks) != 1 {
			return nil, errors.Structuref("block quote with %d paragraph children", len(bq.Blocks))
		}
		txt, err := c.renderInlines(p.Inlines)
		if err != nil {
			return nil, err
		}
		return &ahelp.Verbatim{Text: txt}, nil
	}

	return nil, errors.Structuref("unexpected %s in block quote", bq.Blocks[0].Kind())
}

func (c *converter) convertTable(tbl *rst.Table) (*ahelp.Table, error) {
	out := &ahelp.Table{}
	add := func(rows []rst.Row) error {
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, entry := range row {
				txt, err := c.tableEntryText(entry)
				if err != nil {
					return err
				}
				cells = append(cells, txt)
			}
			out.Rows = append(out.Rows, cells)
		}
		return nil
	}

	if err := add(tbl.Header); err != nil {
		return nil, err
	}
	if err := add(tbl.Body); err != nil {
		return nil, err
	}
	return out, nil
}

// tableEntryText renders a cell. Cells may be empty; multi-block cells are
// not supported.
func (c *converter) tableEntryText(entry rst.Entry) (string, error) {
	switch len(entry.Blocks) {
	case 0:
		return "", nil
	case 1:
		p, ok := entry.Blocks[0].(*rst.Paragraph)
		if !ok {
			return "", errors.Structuref("table entry holds %s, expected paragraph", entry.Blocks[0].Kind())
		}
		return c.renderInlines(p.Inlines)
	default:
		return "", errors.Structuref("table entry with %d blocks", len(entry.Blocks))
	}
}

// convertDefinitionList renders the list as a two-column table with a
// synthetic header row.
func (c *converter) convertDefinitionList(dl *rst.DefinitionList) (*ahelp.Table, error) {
	out := &ahelp.Table{Rows: [][]string{{"Item", "Definition"}}}
	for _, item := range dl.Items {
		if len(item.Definition) != 1 {
			return nil, errors.Structuref("definition with %d blocks for term %q",
				len(item.Definition), rawText(item.Term))
		}
		p, ok := item.Definition[0].(*rst.Paragraph)
		if !ok {
			return nil, errors.Structuref("definition holds %s, expected paragraph",
				item.Definition[0].Kind())
		}
		def, err := c.renderInlines(p.Inlines)
		if err != nil {
			return nil, err
		}
		out.Rows = append(out.Rows, []string{rawText(item.Term), def})
	}
	return out, nil
}

// convertNote maps a note onto a titled Para. A single paragraph gets the
// default title "Note"; with two paragraphs the first is the title. One
// specific title refers to an XSPEC transition CIAO never shipped and is
// dropped outright.
func (c *converter) convertNote(note *rst.Note) ([]ahelp.Element, error) {
	title, body, err := c.titledParas(note.Blocks, "Note")
	if err != nil {
		return nil, err
	}

	if title == suppressedNoteTitle {
		return nil, nil
	}

	p, err := c.convertPara(body, true)
	if err != nil {
		return nil, err
	}
	p.Title = title
	return []ahelp.Element{p}, nil
}

// convertWarning is the note conversion restricted to the single-paragraph
// form; a titled warning has not been seen in the corpus.
func (c *converter) convertWarning(w *rst.Warning) (*ahelp.Para, error) {
	if len(w.Blocks) != 1 {
		return nil, errors.Structuref("warning with %d blocks", len(w.Blocks))
	}
	p, ok := w.Blocks[0].(*rst.Paragraph)
	if !ok {
		return nil, errors.Structuref("warning holds %s, expected paragraph", w.Blocks[0].Kind())
	}

	out, err := c.convertPara(p, true)
	if err != nil {
		return nil, err
	}
	out.Title = "Warning"
	return out, nil
}

// titledParas validates a one-or-two paragraph admonition body and splits it
// into a title and the body paragraph.
func (c *converter) titledParas(blocks []rst.Block, defaultTitle string) (string, *rst.Paragraph, error) {
	paras := make([]*rst.Paragraph, 0, len(blocks))
	for _, b := range blocks {
		p, ok := b.(*rst.Paragraph)
		if !ok {
			return "", nil, errors.Structuref("admonition holds %s, expected paragraph", b.Kind())
		}
		paras = append(paras, p)
	}

	switch len(paras) {
	case 1:
		return defaultTitle, paras[0], nil
	case 2:
		title, err := c.renderInlines(paras[0].Inlines)
		if err != nil {
			return "", nil, err
		}
		return title, paras[1], nil
	default:
		return "", nil, errors.Structuref("admonition with %d paragraphs", len(paras))
	}
}

// convertFieldBody renders a field body as a plain-text Para. Field bodies
// feed attribute tables, where link markup is not available.
func (c *converter) convertFieldBody(fb *rst.FieldBody) (*ahelp.Para, error) {
	for _, b := range fb.Blocks {
		if _, ok := b.(*rst.Paragraph); !ok {
			return nil, errors.Structuref("field body holds %s, expected paragraph", b.Kind())
		}
	}

	switch len(fb.Blocks) {
	case 0:
		return &ahelp.Para{}, nil
	case 1:
		return c.convertPara(fb.Blocks[0].(*rst.Paragraph), false)
	default:
		return nil, errors.Structuref("field body with %d blocks", len(fb.Blocks))
	}
}
