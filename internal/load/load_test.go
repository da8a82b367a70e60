package load

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/rst"
	"github.com/cxcsds/ahelpgen/internal/symbols"
)

const sampleFile = `
symbol:
  name: calc_stat
  kind: callable
  signature: "calc_stat(id=None, *otherids)"
  synonyms: [calc_statistic]
  metadata:
    context: utilities
document:
  - kind: paragraph
    text: Calculate the fit statistic for a data set.
  - kind: paragraph
    inlines:
      - "See "
      - kind: reference
        display: the manual
        uri: https://example.org/manual
        name: the manual
      - " for details."
  - kind: rubric
    text: Examples
  - kind: doctest_block
    text: ">>> calc_stat()"
  - kind: field_list
    fields:
      - name: param id
        body:
          - kind: paragraph
            text: the dataset identifier
`

func TestReadCallable(t *testing.T) {
	f, err := Read(strings.NewReader(sampleFile))
	require.NoError(t, err)

	sym := f.Symbol
	assert.Equal(t, "calc_stat", sym.Name)
	assert.Equal(t, symbols.Callable, sym.Kind)
	assert.Equal(t, "calc_stat(id=None, *otherids)", sym.SignatureText)
	assert.Equal(t, []string{"calc_statistic"}, sym.Synonyms)
	assert.Equal(t, "utilities", sym.Metadata["context"])
	assert.Nil(t, sym.Model)

	doc := f.Document
	require.Len(t, doc.Blocks, 5)

	p0 := doc.Blocks[0].(*rst.Paragraph)
	require.Len(t, p0.Inlines, 1)
	assert.Equal(t, "Calculate the fit statistic for a data set.",
		p0.Inlines[0].(*rst.Text).Text)

	p1 := doc.Blocks[1].(*rst.Paragraph)
	require.Len(t, p1.Inlines, 3)
	ref := p1.Inlines[1].(*rst.Reference)
	assert.Equal(t, "the manual", ref.Display)
	assert.Equal(t, "https://example.org/manual", ref.URI)

	assert.Equal(t, "Examples", doc.Blocks[2].(*rst.Rubric).Text)
	assert.Equal(t, ">>> calc_stat()", doc.Blocks[3].(*rst.DoctestBlock).Text)

	fl := doc.Blocks[4].(*rst.FieldList)
	require.Len(t, fl.Fields, 1)
	assert.Equal(t, "param id", fl.Fields[0].Name)
	require.Len(t, fl.Fields[0].Body.Blocks, 1)
}

const modelFile = `
symbol:
  name: xsapec
  kind: model
  model:
    class: additive
    defaults: |-
      xsapec.kT  1.0
document:
  - kind: paragraph
    text: The APEC emission model.
  - kind: versionadded
    blocks:
      - kind: paragraph
        text: 4.12.0 New model.
`

func TestReadModel(t *testing.T) {
	f, err := Read(strings.NewReader(modelFile))
	require.NoError(t, err)

	sym := f.Symbol
	assert.Equal(t, symbols.ModelComponent, sym.Kind)
	require.NotNil(t, sym.Model)
	assert.Equal(t, symbols.ClassAdditive, sym.Model.Class)
	assert.Equal(t, "xsapec.kT  1.0", sym.Model.DefaultsText)

	vn := f.Document.Blocks[1].(*rst.VersionNote)
	assert.Equal(t, rst.VersionAdded, vn.Change)
	require.Len(t, vn.Blocks, 1)
}

func TestReadStructuredSignature(t *testing.T) {
	in := `
symbol:
  name: get_stat
  params:
    - name: id
      type: int
      default: "1"
  return: float
document: []
`
	f, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.NotNil(t, f.Symbol.Signature)
	require.Len(t, f.Symbol.Signature.Params, 1)
	assert.Equal(t, "id", f.Symbol.Signature.Params[0].Name)
	assert.Equal(t, "float", f.Symbol.Signature.Return)
}

func TestReadRejectsMissingName(t *testing.T) {
	_, err := Read(strings.NewReader("symbol: {}\ndocument: []\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryInput))
}

func TestReadRejectsUnknownBlockKind(t *testing.T) {
	in := `
symbol:
  name: tst
document:
  - kind: sidebar
    text: nope
`
	_, err := Read(strings.NewReader(in))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryInput))
}

func TestReadRejectsUnknownTopLevelField(t *testing.T) {
	_, err := Read(strings.NewReader("symbol:\n  name: tst\nextra: true\n"))
	require.Error(t, err)
}

func TestReadRejectsUnknownSymbolKind(t *testing.T) {
	_, err := Read(strings.NewReader("symbol:\n  name: tst\n  kind: macro\ndocument: []\n"))
	require.Error(t, err)
}
