package ahelp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes the document with an XML declaration and the DOCTYPE
// header appropriate for its root kind. Element order inside ENTRY follows
// the schema: synopsis, syntax, description, examples, parameters, warnings,
// notes, duplicate-notes placeholder, references, version history, tool
// version notice, bugs, last-modified.
func Write(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	x := &xmlWriter{w: bw}

	root := doc.Root.Tag()
	x.raw(`<?xml version="1.0" encoding="UTF-8" ?>`)
	x.raw(fmt.Sprintf(`<!DOCTYPE %s SYSTEM "%s">`, root, doc.Root.DTD()))
	x.open(root)

	e := doc.Entry
	x.open("ENTRY",
		attr{"pkg", e.Attrs.Pkg},
		attr{"key", e.Attrs.Key},
		attr{"refkeywords", e.Attrs.Refkeywords},
		attr{"seealsogroups", e.Attrs.SeeAlsoGroups},
		attr{"displayseealsogroups", e.Attrs.DisplaySeeAlsoGroups},
		attr{"context", e.Attrs.Context})

	if e.Synopsis != "" {
		x.leaf("SYNOPSIS", e.Synopsis)
	}
	if e.Syntax != nil {
		writeElement(x, e.Syntax)
	}
	// A non-nil empty Desc means the description existed but rendered to
	// nothing; it still gets its (childless) element.
	if e.Desc != nil {
		x.open("DESC")
		for _, el := range e.Desc {
			writeElement(x, el)
		}
		x.close("DESC")
	}
	if e.Examples != nil {
		writeElement(x, e.Examples)
	}
	for _, adesc := range []*Adesc{e.Params, e.Warnings, e.Notes, e.NotesDup, e.Refs, e.Versions, e.ToolVersion} {
		if adesc != nil {
			writeElement(x, adesc)
		}
	}
	if len(e.Bugs) > 0 {
		x.open("BUGS")
		for _, el := range e.Bugs {
			writeElement(x, el)
		}
		x.close("BUGS")
	}
	if e.LastModified != "" {
		x.leaf("LASTMODIFIED", e.LastModified)
	}

	x.close("ENTRY")
	x.close(root)

	if x.err != nil {
		return x.err
	}
	return bw.Flush()
}

func writeElement(x *xmlWriter, el Element) {
	switch v := el.(type) {
	case *Para:
		var attrs []attr
		if v.Title != "" {
			attrs = append(attrs, attr{"title", v.Title})
		}
		x.open("PARA", attrs...)
		x.text(v.Text)
		for _, h := range v.Hrefs {
			writeHref(x, h)
		}
		x.close("PARA")

	case *Verbatim:
		x.leaf("VERBATIM", v.Text)

	case *List:
		x.open("LIST")
		for _, item := range v.Items {
			x.leaf("ITEM", item)
		}
		x.close("LIST")

	case *Table:
		x.open("TABLE")
		for _, row := range v.Rows {
			x.open("ROW")
			for _, cell := range row {
				x.leaf("DATA", cell)
			}
			x.close("ROW")
		}
		x.close("TABLE")

	case *Syntax:
		x.open("SYNTAX")
		for _, line := range v.Lines {
			x.open("LINE")
			x.text(line.Text)
			if line.Href != nil {
				writeHref(x, line.Href)
			}
			x.close("LINE")
		}
		x.close("SYNTAX")

	case *Adesc:
		var attrs []attr
		if v.Title != "" {
			attrs = append(attrs, attr{"title", v.Title})
		}
		x.open("ADESC", attrs...)
		for _, child := range v.Elements {
			writeElement(x, child)
		}
		x.close("ADESC")

	case *QExampleList:
		x.open("QEXAMPLELIST")
		for _, ex := range v.Examples {
			x.open("QEXAMPLE")
			if ex.Syntax != nil {
				writeElement(x, ex.Syntax)
			}
			x.open("DESC")
			for _, child := range ex.Desc {
				writeElement(x, child)
			}
			x.close("DESC")
			x.close("QEXAMPLE")
		}
		x.close("QEXAMPLELIST")
	}
}

func writeHref(x *xmlWriter, h *Href) {
	x.open("HREF", attr{"link", h.Link})
	x.text(h.Text)
	x.close("HREF")
	x.text(h.Tail)
}

type attr struct {
	name  string
	value string
}

// xmlWriter is a minimal push serializer. The schema never needs namespaces,
// processing instructions, or self-closing subtleties, so encoding/xml's
// marshaling machinery would be more ceremony than help here.
type xmlWriter struct {
	w   *bufio.Writer
	err error
}

func (x *xmlWriter) raw(s string) {
	if x.err != nil {
		return
	}
	_, x.err = x.w.WriteString(s)
}

func (x *xmlWriter) open(tag string, attrs ...attr) {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	x.raw(b.String())
}

func (x *xmlWriter) close(tag string) {
	x.raw("</" + tag + ">")
}

func (x *xmlWriter) text(s string) {
	x.raw(escapeText(s))
}

func (x *xmlWriter) leaf(tag, text string, attrs ...attr) {
	x.open(tag, attrs...)
	x.text(text)
	x.close(tag)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
