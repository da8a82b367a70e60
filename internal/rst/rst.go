// Package rst models the parsed docstring document handed to the converter.
//
// The tree mirrors the docutils node vocabulary that occurs in practice: a
// Document is an ordered sequence of Block nodes, and paragraph-level content
// is a sequence of Inline nodes. The vocabulary is closed on purpose — the
// converter fails hard on anything it does not know rather than guessing a
// rendering — so both interfaces carry an unexported marker method.
//
// Producing the tree (parsing raw docstring text) is a collaborator concern;
// this package only defines the shape of the hand-off.
package rst

// Block is one structural unit of a parsed docstring document.
type Block interface {
	// Kind returns the node-kind name, matching the source vocabulary.
	Kind() string
	blockNode()
}

// Inline is one unit of paragraph-level content.
type Inline interface {
	Kind() string
	inlineNode()
}

// Document is an ordered sequence of top-level blocks. The converter consumes
// it front to back and never reorders it.
type Document struct {
	Blocks []Block
}

// Kinds returns the node-kind names of the top-level blocks, in order.
func (d Document) Kinds() []string {
	out := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		out[i] = b.Kind()
	}
	return out
}

// VersionKind distinguishes the two version-annotation directives.
type VersionKind int

const (
	VersionAdded VersionKind = iota
	VersionChanged
)

// String returns the directive name.
func (k VersionKind) String() string {
	if k == VersionChanged {
		return "versionchanged"
	}
	return "versionadded"
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

// ListItem is one entry of a bullet or enumerated list.
type ListItem struct {
	Blocks []Block
}

// BulletList is an unordered list.
type BulletList struct {
	Items []ListItem
}

// EnumeratedList is an ordered list.
type EnumeratedList struct {
	Items []ListItem
}

// DefinitionItem is one term/definition pair.
type DefinitionItem struct {
	Term       []Inline
	Definition []Block
}

// DefinitionList is a sequence of term/definition pairs.
type DefinitionList struct {
	Items []DefinitionItem
}

// Entry is one table cell; at most one paragraph is supported.
type Entry struct {
	Blocks []Block
}

// Row is one table row.
type Row []Entry

// Table holds a header row group and a body row group.
type Table struct {
	Header []Row
	Body   []Row
}

// DoctestBlock is an interactive-session example; whitespace is significant.
type DoctestBlock struct {
	Text string
}

// LiteralBlock is preformatted text; whitespace is significant.
type LiteralBlock struct {
	Text string
}

// BlockQuote is an indented block.
type BlockQuote struct {
	Blocks []Block
}

// Note is an admonition; its children are paragraphs.
type Note struct {
	Blocks []Block
}

// Warning is an admonition; its children are paragraphs.
type Warning struct {
	Blocks []Block
}

// VersionNote is a versionadded/versionchanged directive. The first word of
// the first paragraph is the release token.
type VersionNote struct {
	Change VersionKind
	Blocks []Block
}

// FieldBody is the body of one field-list field.
type FieldBody struct {
	Blocks []Block
}

// Field is one field of a field list, e.g. "param name" or "returns".
type Field struct {
	Name string
	Body FieldBody
}

// FieldList carries parameter/attribute/return/raises information.
type FieldList struct {
	Fields []Field
}

// Rubric is an informal section heading ("Notes", "References", "Examples").
type Rubric struct {
	Text string
}

// SeeAlso holds related-symbol names, as a definition list or a paragraph.
type SeeAlso struct {
	Blocks []Block
}

// Comment is a raw comment block. A version directive missing its second
// colon parses as a comment, which the converter detects and re-parses.
type Comment struct {
	Text string
}

// SystemMessage is a parser diagnostic embedded in the tree.
type SystemMessage struct {
	Text string
}

func (*Paragraph) Kind() string      { return "paragraph" }
func (*BulletList) Kind() string     { return "bullet_list" }
func (*EnumeratedList) Kind() string { return "enumerated_list" }
func (*DefinitionList) Kind() string { return "definition_list" }
func (*Table) Kind() string          { return "table" }
func (*DoctestBlock) Kind() string   { return "doctest_block" }
func (*LiteralBlock) Kind() string   { return "literal_block" }
func (*BlockQuote) Kind() string     { return "block_quote" }
func (*Note) Kind() string           { return "note" }
func (*Warning) Kind() string        { return "warning" }
func (v *VersionNote) Kind() string  { return v.Change.String() }
func (*FieldBody) Kind() string      { return "field_body" }
func (*FieldList) Kind() string      { return "field_list" }
func (*Rubric) Kind() string         { return "rubric" }
func (*SeeAlso) Kind() string        { return "seealso" }
func (*Comment) Kind() string        { return "comment" }
func (*SystemMessage) Kind() string  { return "system_message" }

func (*Paragraph) blockNode()      {}
func (*BulletList) blockNode()     {}
func (*EnumeratedList) blockNode() {}
func (*DefinitionList) blockNode() {}
func (*Table) blockNode()          {}
func (*DoctestBlock) blockNode()   {}
func (*LiteralBlock) blockNode()   {}
func (*BlockQuote) blockNode()     {}
func (*Note) blockNode()           {}
func (*Warning) blockNode()        {}
func (*VersionNote) blockNode()    {}
func (*FieldBody) blockNode()      {}
func (*FieldList) blockNode()      {}
func (*Rubric) blockNode()         {}
func (*SeeAlso) blockNode()        {}
func (*Comment) blockNode()        {}
func (*SystemMessage) blockNode()  {}

// Text is literal inline text.
type Text struct {
	Text string
}

// Reference is a hyperlink-bearing inline node. Name, when set, registers the
// reference as a destination for a later Target.
type Reference struct {
	Display string
	URI     string
	Name    string
}

// Literal is inline code.
type Literal struct {
	Text string
}

// Emphasis is italic text; styling is not representable downstream.
type Emphasis struct {
	Text string
}

// Strong is bold text; styling is not representable downstream.
type Strong struct {
	Text string
}

// TitleReference is a `role-less` interpreted-text reference.
type TitleReference struct {
	Text string
}

// FootnoteReference marks a citation of a footnote by label.
type FootnoteReference struct {
	Label string
}

// Footnote is a labelled footnote; the body is a single Paragraph or
// EnumeratedList.
type Footnote struct {
	Label string
	Body  Block
}

// Target is a named link destination. Every target name must have been seen
// on an earlier Reference.
type Target struct {
	Names []string
}

// CitationReference marks a citation by label.
type CitationReference struct {
	Text string
}

func (*Text) Kind() string              { return "#text" }
func (*Reference) Kind() string         { return "reference" }
func (*Literal) Kind() string           { return "literal" }
func (*Emphasis) Kind() string          { return "emphasis" }
func (*Strong) Kind() string            { return "strong" }
func (*TitleReference) Kind() string    { return "title_reference" }
func (*FootnoteReference) Kind() string { return "footnote_reference" }
func (*Footnote) Kind() string          { return "footnote" }
func (*Target) Kind() string            { return "target" }
func (*CitationReference) Kind() string { return "citation_reference" }

func (*Text) inlineNode()              {}
func (*Reference) inlineNode()         {}
func (*Literal) inlineNode()           {}
func (*Emphasis) inlineNode()          {}
func (*Strong) inlineNode()            {}
func (*TitleReference) inlineNode()    {}
func (*FootnoteReference) inlineNode() {}
func (*Footnote) inlineNode()          {}
func (*Target) inlineNode()            {}
func (*CitationReference) inlineNode() {}

// Para builds a Paragraph holding a single text fragment. Test and fixture
// helper for the common case.
func Para(text string) *Paragraph {
	return &Paragraph{Inlines: []Inline{&Text{Text: text}}}
}
