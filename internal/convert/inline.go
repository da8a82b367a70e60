package convert

import (
	"regexp"
	"strings"

	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/logfields"
	"github.com/cxcsds/ahelpgen/internal/rst"
	"github.com/cxcsds/ahelpgen/internal/util/sets"
)

// Inline rendering. These are not a principled set of conversion rules; they
// cover the node shapes that occur in the documentation corpus and fail hard
// on anything else.

// xsModelRE matches the external-model class naming scheme (XSfoo).
var xsModelRE = regexp.MustCompile(`^XS[a-z0-9]+$`)

// literalVerbatim lists inline-code spellings that must not be lower-cased.
var literalVerbatim = sets.New("True", "False", "StringIO")

// moduleTitleRefs are namespace paths rendered whole; everything else with a
// namespace prefix is stripped to its last component.
var moduleTitleRefs = sets.New(
	"sherpa.sim", "sherpa.utils",
	"sherpa.astro.datastack", "sherpa.ui",
	"sherpa.astro.ui", "sherpa.utils.logging",
)

// titleRefOverrides maps multi-word identifiers to hard-coded spellings.
var titleRefOverrides = sets.New("JDPileup", "PSFModel")

// renderInline converts one inline node to plain text, recording references
// and validating targets along the way.
func (c *converter) renderInline(n rst.Inline) (string, error) {
	switch v := n.(type) {
	case *rst.Text:
		return v.Text, nil

	case *rst.Reference:
		// Hyperlink promotion happens in the paragraph converter; at the
		// inline level a reference is just its display text.
		c.refs.add(v.Name)
		return v.Display, nil

	case *rst.Footnote:
		body, err := c.footnoteBody(v)
		if err != nil {
			return "", err
		}
		return "[" + v.Label + "] " + body, nil

	case *rst.FootnoteReference:
		return "[" + v.Label + "]", nil

	case *rst.CitationReference:
		return "[" + v.Text + "]", nil

	case *rst.Literal:
		return c.renderLiteral(v.Text)

	case *rst.TitleReference:
		return renderTitleRef(v.Text)

	case *rst.Target:
		if err := c.refs.check(v.Names); err != nil {
			return "", err
		}
		return "", nil

	case *rst.Emphasis:
		// Styling is not representable in the target schema.
		return v.Text, nil

	case *rst.Strong:
		return v.Text, nil

	default:
		return "", errors.Structuref("unsupported inline kind %q", n.Kind()).
			WithContext("node_kind", n.Kind())
	}
}

// footnoteBody renders the single child of a footnote; only paragraph and
// enumerated-list bodies occur in practice.
func (c *converter) footnoteBody(fn *rst.Footnote) (string, error) {
	switch fn.Body.(type) {
	case *rst.Paragraph, *rst.EnumeratedList:
		return c.renderBlockText(fn.Body)
	default:
		return "", errors.Structuref("unexpected %s in footnote body", fn.Body.Kind())
	}
}

// renderLiteral lower-cases inline code, with a short allow-list of spellings
// left alone. A token that starts with the external-model marker but does
// not match the model naming scheme signals an unescaped symbol leaking into
// prose, and is fatal.
func (c *converter) renderLiteral(text string) (string, error) {
	if literalVerbatim.Has(text) {
		return text, nil
	}
	if strings.HasPrefix(text, "XS") && !xsModelRE.MatchString(text) {
		return "", errors.Structuref("unexpected literal %q", text)
	}
	return strings.ToLower(text), nil
}

// renderTitleRef strips a recognized namespace prefix down to the last path
// component and wraps the result in inline-code marking.
func renderTitleRef(text string) (string, error) {
	if moduleTitleRefs.Has(text) {
		return "`" + text + "`", nil
	}

	if strings.HasPrefix(text, "sherpa.") || strings.HasPrefix(text, "~") {
		toks := strings.Split(text, ".")
		if len(toks) < 2 {
			return "", errors.Structuref("unexpected title reference %q", text)
		}
		last := toks[len(toks)-1]
		if titleRefOverrides.Has(last) {
			return "`" + strings.ToLower(last) + "`", nil
		}
		return "`" + last + "`", nil
	}

	if strings.HasPrefix(text, "sherpa") {
		return "", errors.Structuref("unstripped namespace in title reference %q", text)
	}

	return "`" + text + "`", nil
}

// renderBlockText flattens a block to plain text, applying the inline rules.
// This deliberately loses formatting fidelity; it backs list items, note
// titles, and other spots where the schema only takes text.
func (c *converter) renderBlockText(b rst.Block) (string, error) {
	switch v := b.(type) {
	case *rst.SystemMessage:
		c.log.Debug("skipping system message",
			logfields.Symbol(c.name), logfields.NodeKind(v.Kind()))
		return "", nil

	case *rst.Paragraph:
		return c.renderInlines(v.Inlines)

	case *rst.BulletList:
		return c.renderItems(v.Items)

	case *rst.EnumeratedList:
		return c.renderItems(v.Items)

	default:
		return "", errors.Structuref("cannot flatten %s to text", b.Kind())
	}
}

// renderInlines renders a run of inline nodes, space-joined.
func (c *converter) renderInlines(inlines []rst.Inline) (string, error) {
	parts := make([]string, 0, len(inlines))
	for _, n := range inlines {
		txt, err := c.renderInline(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, txt)
	}
	return strings.Join(parts, " "), nil
}

func (c *converter) renderItems(items []rst.ListItem) (string, error) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		txt, err := c.renderItem(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, txt)
	}
	return strings.Join(parts, " "), nil
}

func (c *converter) renderItem(item rst.ListItem) (string, error) {
	parts := make([]string, 0, len(item.Blocks))
	for _, b := range item.Blocks {
		txt, err := c.renderBlockText(b)
		if err != nil {
			return "", err
		}
		parts = append(parts, txt)
	}
	return strings.Join(parts, " "), nil
}

// rawText concatenates the literal text content of inline nodes without any
// of the rendering rules. Used for terms and see-also names, where the
// original spelling must survive.
func rawText(inlines []rst.Inline) string {
	var b strings.Builder
	for _, n := range inlines {
		switch v := n.(type) {
		case *rst.Text:
			b.WriteString(v.Text)
		case *rst.Literal:
			b.WriteString(v.Text)
		case *rst.Reference:
			b.WriteString(v.Display)
		case *rst.Emphasis:
			b.WriteString(v.Text)
		case *rst.Strong:
			b.WriteString(v.Text)
		case *rst.TitleReference:
			b.WriteString(v.Text)
		}
	}
	return b.String()
}
