// Package ahelp models the structured-help output schema and serializes it.
//
// The model mirrors the target DTD closely enough that serialization is a
// plain walk: an Entry holds the fixed-order section slots, and Element is
// the closed variant of body-level blocks (PARA, VERBATIM, LIST, TABLE,
// SYNTAX, ADESC, QEXAMPLELIST).
package ahelp

// Element is one structural unit of the help-schema body.
type Element interface {
	element()
}

// Href is a hyperlink. Tail is the plain text that follows the link inside
// its parent, matching the tree-with-tails shape of the target schema.
type Href struct {
	Text string
	Link string
	Tail string
}

// Para is a paragraph: an optional title, a leading text run, and a flat
// sequence of Href children each carrying its trailing text run. The schema
// does not allow nested inline markup beyond this.
type Para struct {
	Title string
	Text  string
	Hrefs []*Href
}

// Verbatim is preformatted text, whitespace preserved exactly.
type Verbatim struct {
	Text string
}

// List is a flat item list; item formatting fidelity is deliberately lost.
type List struct {
	Items []string
}

// Table is rows of plain-text cells. Row 0 is the header.
type Table struct {
	Rows [][]string
}

// Line is one line of a Syntax block. A line can hold plain text, a
// hyperlink, or both (text first).
type Line struct {
	Text string
	Href *Href
}

// Syntax is a block of call-signature or reference lines.
type Syntax struct {
	Lines []Line
}

// AddLine appends a plain-text line.
func (s *Syntax) AddLine(text string) {
	s.Lines = append(s.Lines, Line{Text: text})
}

// Adesc is a titled auxiliary section holding body elements.
type Adesc struct {
	Title    string
	Elements []Element
}

// Append adds body elements to the section.
func (a *Adesc) Append(els ...Element) {
	a.Elements = append(a.Elements, els...)
}

// QExample is one worked example: an optional syntax block and a description.
type QExample struct {
	Syntax *Syntax
	Desc   []Element
}

// QExampleList is the examples section.
type QExampleList struct {
	Examples []*QExample
}

func (*Para) element()         {}
func (*Verbatim) element()     {}
func (*List) element()         {}
func (*Table) element()        {}
func (*Syntax) element()       {}
func (*Adesc) element()        {}
func (*QExampleList) element() {}

// EntryAttrs is the fixed metadata attribute set of an ENTRY element.
type EntryAttrs struct {
	Pkg                  string
	Key                  string
	Refkeywords          string
	SeeAlsoGroups        string
	DisplaySeeAlsoGroups string
	Context              string
}

// Entry is the single help entry of an output document. Slots are emitted in
// fixed order; nil or empty slots are skipped.
type Entry struct {
	Attrs EntryAttrs

	Synopsis string // empty means absent
	Syntax   *Syntax
	Desc     []Element
	Examples *QExampleList
	Params   *Adesc
	Warnings *Adesc
	Notes    *Adesc
	// NotesDup is a placeholder for a duplicate trailing Notes section.
	// Normally nil; kept distinct so the duplicate stays auditable.
	NotesDup *Adesc
	Refs     *Adesc
	Versions *Adesc

	// Trailing boilerplate.
	ToolVersion  *Adesc // external-tool-version notice, may be nil
	Bugs         []Element
	LastModified string
}

// RootKind selects the output document root element.
type RootKind int

const (
	// RootHelptopics is the ahelp DTD root.
	RootHelptopics RootKind = iota
	// RootDocPage is the sxml DTD root. The internal structure is identical.
	RootDocPage
)

// Tag returns the root element name.
func (k RootKind) Tag() string {
	if k == RootDocPage {
		return "cxcdocumentationpage"
	}
	return "cxchelptopics"
}

// DTD returns the system identifier written in the DOCTYPE header.
func (k RootKind) DTD() string {
	if k == RootDocPage {
		return "/data/da/Docs/sxml_manuals/dtds/CXCDocPage.dtd"
	}
	return "CXCHelp.dtd"
}

// Suffix returns the conventional file suffix for the root kind.
func (k RootKind) Suffix() string {
	if k == RootDocPage {
		return "sxml"
	}
	return "xml"
}

// Document is one complete output document.
type Document struct {
	Root  RootKind
	Entry *Entry
}
