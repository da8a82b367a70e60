package load

import (
	"gopkg.in/yaml.v3"

	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/rst"
)

// Node decoding. Every block and inline node in the file carries a "kind"
// field matching the parser tag names; the rest of the mapping depends on
// the kind. Decoding mirrors the closed node vocabulary, so an unknown kind
// fails the file rather than producing a half-decoded tree.

func badNode(err error, what string) error {
	return errors.Wrap(err, errors.CategoryInput, errors.SeverityFatal, "decode "+what)
}

func nodeKind(n *yaml.Node) (string, error) {
	var peek struct {
		Kind string `yaml:"kind"`
	}
	if err := n.Decode(&peek); err != nil {
		return "", badNode(err, "node")
	}
	if peek.Kind == "" {
		return "", errors.New(errors.CategoryInput, errors.SeverityFatal,
			"node without a kind field")
	}
	return peek.Kind, nil
}

func decodeBlocks(ns []yaml.Node) ([]rst.Block, error) {
	var out []rst.Block
	for i := range ns {
		b, err := decodeBlock(&ns[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeBlock(n *yaml.Node) (rst.Block, error) {
	kind, err := nodeKind(n)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "paragraph":
		var spec struct {
			Inlines []yaml.Node `yaml:"inlines"`
			Text    string      `yaml:"text"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, "paragraph")
		}
		// Plain-text shorthand for the common case.
		if spec.Text != "" && len(spec.Inlines) == 0 {
			return rst.Para(spec.Text), nil
		}
		inlines, err := decodeInlines(spec.Inlines)
		if err != nil {
			return nil, err
		}
		return &rst.Paragraph{Inlines: inlines}, nil

	case "bullet_list", "enumerated_list":
		var spec struct {
			Items []struct {
				Blocks []yaml.Node `yaml:"blocks"`
			} `yaml:"items"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		items := make([]rst.ListItem, 0, len(spec.Items))
		for _, it := range spec.Items {
			blocks, err := decodeBlocks(it.Blocks)
			if err != nil {
				return nil, err
			}
			items = append(items, rst.ListItem{Blocks: blocks})
		}
		if kind == "bullet_list" {
			return &rst.BulletList{Items: items}, nil
		}
		return &rst.EnumeratedList{Items: items}, nil

	case "definition_list":
		var spec struct {
			Items []struct {
				Term       []yaml.Node `yaml:"term"`
				Definition []yaml.Node `yaml:"definition"`
			} `yaml:"items"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		out := &rst.DefinitionList{}
		for _, it := range spec.Items {
			term, err := decodeInlines(it.Term)
			if err != nil {
				return nil, err
			}
			def, err := decodeBlocks(it.Definition)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, rst.DefinitionItem{Term: term, Definition: def})
		}
		return out, nil

	case "table":
		var spec struct {
			Header [][]struct {
				Blocks []yaml.Node `yaml:"blocks"`
			} `yaml:"header"`
			Body [][]struct {
				Blocks []yaml.Node `yaml:"blocks"`
			} `yaml:"body"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		decodeRows := func(rows [][]struct {
			Blocks []yaml.Node `yaml:"blocks"`
		}) ([]rst.Row, error) {
			var out []rst.Row
			for _, row := range rows {
				r := make(rst.Row, 0, len(row))
				for _, cell := range row {
					blocks, err := decodeBlocks(cell.Blocks)
					if err != nil {
						return nil, err
					}
					r = append(r, rst.Entry{Blocks: blocks})
				}
				out = append(out, r)
			}
			return out, nil
		}
		header, err := decodeRows(spec.Header)
		if err != nil {
			return nil, err
		}
		body, err := decodeRows(spec.Body)
		if err != nil {
			return nil, err
		}
		return &rst.Table{Header: header, Body: body}, nil

	case "doctest_block", "literal_block", "comment", "system_message", "rubric":
		var spec struct {
			Text string `yaml:"text"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		switch kind {
		case "doctest_block":
			return &rst.DoctestBlock{Text: spec.Text}, nil
		case "literal_block":
			return &rst.LiteralBlock{Text: spec.Text}, nil
		case "comment":
			return &rst.Comment{Text: spec.Text}, nil
		case "system_message":
			return &rst.SystemMessage{Text: spec.Text}, nil
		default:
			return &rst.Rubric{Text: spec.Text}, nil
		}

	case "block_quote", "note", "warning", "seealso", "field_body":
		var spec struct {
			Blocks []yaml.Node `yaml:"blocks"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		blocks, err := decodeBlocks(spec.Blocks)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "block_quote":
			return &rst.BlockQuote{Blocks: blocks}, nil
		case "note":
			return &rst.Note{Blocks: blocks}, nil
		case "warning":
			return &rst.Warning{Blocks: blocks}, nil
		case "seealso":
			return &rst.SeeAlso{Blocks: blocks}, nil
		default:
			return &rst.FieldBody{Blocks: blocks}, nil
		}

	case "versionadded", "versionchanged":
		var spec struct {
			Blocks []yaml.Node `yaml:"blocks"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		blocks, err := decodeBlocks(spec.Blocks)
		if err != nil {
			return nil, err
		}
		change := rst.VersionAdded
		if kind == "versionchanged" {
			change = rst.VersionChanged
		}
		return &rst.VersionNote{Change: change, Blocks: blocks}, nil

	case "field_list":
		var spec struct {
			Fields []struct {
				Name string      `yaml:"name"`
				Body []yaml.Node `yaml:"body"`
			} `yaml:"fields"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		out := &rst.FieldList{}
		for _, f := range spec.Fields {
			body, err := decodeBlocks(f.Body)
			if err != nil {
				return nil, err
			}
			out.Fields = append(out.Fields, rst.Field{
				Name: f.Name,
				Body: rst.FieldBody{Blocks: body},
			})
		}
		return out, nil

	default:
		return nil, errors.Newf(errors.CategoryInput, errors.SeverityFatal,
			"unknown block kind %q", kind)
	}
}

func decodeInlines(ns []yaml.Node) ([]rst.Inline, error) {
	var out []rst.Inline
	for i := range ns {
		in, err := decodeInline(&ns[i])
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func decodeInline(n *yaml.Node) (rst.Inline, error) {
	// A bare scalar is plain text.
	if n.Kind == yaml.ScalarNode {
		var txt string
		if err := n.Decode(&txt); err != nil {
			return nil, badNode(err, "text")
		}
		return &rst.Text{Text: txt}, nil
	}

	kind, err := nodeKind(n)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "text", "#text", "literal", "emphasis", "strong",
		"title_reference", "citation_reference":
		var spec struct {
			Text string `yaml:"text"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		switch kind {
		case "text", "#text":
			return &rst.Text{Text: spec.Text}, nil
		case "literal":
			return &rst.Literal{Text: spec.Text}, nil
		case "emphasis":
			return &rst.Emphasis{Text: spec.Text}, nil
		case "strong":
			return &rst.Strong{Text: spec.Text}, nil
		case "title_reference":
			return &rst.TitleReference{Text: spec.Text}, nil
		default:
			return &rst.CitationReference{Text: spec.Text}, nil
		}

	case "reference":
		var spec struct {
			Display string `yaml:"display"`
			URI     string `yaml:"uri"`
			Name    string `yaml:"name"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		return &rst.Reference{Display: spec.Display, URI: spec.URI, Name: spec.Name}, nil

	case "target":
		var spec struct {
			Names []string `yaml:"names"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		return &rst.Target{Names: spec.Names}, nil

	case "footnote_reference":
		var spec struct {
			Label string `yaml:"label"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		return &rst.FootnoteReference{Label: spec.Label}, nil

	case "footnote":
		var spec struct {
			Label string    `yaml:"label"`
			Body  yaml.Node `yaml:"body"`
		}
		if err := n.Decode(&spec); err != nil {
			return nil, badNode(err, kind)
		}
		body, err := decodeBlock(&spec.Body)
		if err != nil {
			return nil, err
		}
		return &rst.Footnote{Label: spec.Label, Body: body}, nil

	default:
		return nil, errors.Newf(errors.CategoryInput, errors.SeverityFatal,
			"unknown inline kind %q", kind)
	}
}
