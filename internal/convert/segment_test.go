package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/rst"
)

func TestFindSyntaxFromSignatureText(t *testing.T) {
	c := testConverter("calc_stat")
	c.sym.SignatureText = "calc_stat(id=None, *otherids)"

	syn, rest, err := c.findSyntax([]rst.Block{rst.Para("Calculate the statistic.")})
	require.NoError(t, err)
	require.NotNil(t, syn)
	require.Len(t, syn.Lines, 1)
	assert.Equal(t, "calc_stat(id=None, *otherids)", syn.Lines[0].Text)
	require.Len(t, rest, 1)
}

func TestFindSyntaxRejectsSignatureParagraph(t *testing.T) {
	c := testConverter("calc_stat")
	_, _, err := c.findSyntax([]rst.Block{rst.Para("calc_stat(id)")})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryStructure))
}

func TestFindSyntaxNoSignature(t *testing.T) {
	c := testConverter("gauss1d")
	syn, _, err := c.findSyntax([]rst.Block{rst.Para("A gaussian model.")})
	require.NoError(t, err)
	assert.Nil(t, syn)
}

func TestSynopsisClean(t *testing.T) {
	for in, want := range map[string]string{
		"fit,":     "fit",
		"(data).":  "(data)",
		`"quoted"`: "quoted",
		"plain":    "plain",
	} {
		assert.Equal(t, want, synopsisClean(in), in)
	}
}

func TestFindSynopsisKeywords(t *testing.T) {
	c := testConverter("calc_stat")
	syn, kw, rest := c.findSynopsis([]rst.Block{
		rst.Para("Calculate the fit statistic."),
		rst.Para("More detail."),
	})
	assert.Equal(t, "Calculate the fit statistic.", syn)
	assert.True(t, kw["calculate"])
	assert.True(t, kw["statistic"])
	assert.False(t, kw["statistic."])
	require.Len(t, rest, 1)
}

func TestFindSynopsisKeepsLiteralSpelling(t *testing.T) {
	c := testConverter("xsapec")
	syn, kw, _ := c.findSynopsis([]rst.Block{
		&rst.Paragraph{Inlines: []rst.Inline{
			&rst.Text{Text: "Set the "},
			&rst.Literal{Text: "XSapec"},
			&rst.Text{Text: " norm."},
		}},
	})
	assert.Equal(t, "Set the XSapec norm.", syn)
	assert.True(t, kw["xsapec"])
}

func TestFindDescStopsAtRubric(t *testing.T) {
	c := testConverter("tst")
	desc, rest, err := c.findDesc([]rst.Block{
		rst.Para("First."),
		rst.Para("Second."),
		&rst.Rubric{Text: "Examples"},
	})
	require.NoError(t, err)
	require.Len(t, desc, 2)
	require.Len(t, rest, 1)
}

func TestFindDescVersionOnlyRunStaysPresent(t *testing.T) {
	c := testConverter("xsfoo")
	desc, rest, err := c.findDesc([]rst.Block{
		&rst.VersionNote{Change: rst.VersionAdded, Blocks: []rst.Block{rst.Para("4.12.2")}},
		&rst.Rubric{Text: "Notes"},
	})
	require.NoError(t, err)
	require.NotNil(t, desc)
	assert.Empty(t, desc)
	require.Len(t, rest, 1)
}

func TestFindDescSynonymLeads(t *testing.T) {
	c := testConverter("covar")
	c.sym.Synonyms = []string{"covariance"}

	desc, _, err := c.findDesc([]rst.Block{rst.Para("Estimate errors.")})
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "The function is also called covariance().", desc[0].(*ahelp.Para).Text)
}

func fieldListOf(fields ...rst.Field) []rst.Block {
	return []rst.Block{&rst.FieldList{Fields: fields}}
}

func TestFindFieldListParams(t *testing.T) {
	c := testConverter("tst")
	fi, rest, err := c.findFieldList(fieldListOf(
		rst.Field{Name: "param id", Body: rst.FieldBody{Blocks: []rst.Block{rst.Para("the dataset")}}},
		rst.Field{Name: "type id", Body: rst.FieldBody{Blocks: []rst.Block{rst.Para("int or str")}}},
		rst.Field{Name: "returns", Body: rst.FieldBody{Blocks: []rst.Block{rst.Para("the statistic")}}},
		rst.Field{Name: "raises sherpa.utils.err.FitErr"},
	))
	require.NoError(t, err)
	assert.Empty(t, rest)
	require.Len(t, fi.Params, 1)
	assert.Equal(t, "id", fi.Params[0].Name)
	assert.NotNil(t, fi.Params[0].Param)
	assert.NotNil(t, fi.Params[0].Type)
	require.Len(t, fi.Returns, 1)
	assert.Equal(t, "returns", fi.Returns[0].Kind)
	assert.Equal(t, 1, fi.Raises)
}

func TestFindFieldListMergesCommaIVars(t *testing.T) {
	c := testConverter("tst")
	fi, _, err := c.findFieldList(fieldListOf(
		rst.Field{Name: "ivar fwhm,"},
		rst.Field{Name: "ivar pos", Body: rst.FieldBody{Blocks: []rst.Block{rst.Para("shared description")}}},
	))
	require.NoError(t, err)
	require.Len(t, fi.Params, 1)
	assert.Equal(t, "fwhm, pos", fi.Params[0].Name)
	require.NotNil(t, fi.Params[0].IVar)
	assert.Len(t, fi.Params[0].IVar.Blocks, 1)
}

func TestFindFieldListRejectsUnknownField(t *testing.T) {
	c := testConverter("tst")
	_, _, err := c.findFieldList(fieldListOf(rst.Field{Name: "yields x"}))
	require.Error(t, err)
}

func TestFindSeeAlsoDefinitionList(t *testing.T) {
	c := testConverter("tst")
	nodes := []rst.Block{&rst.SeeAlso{Blocks: []rst.Block{
		&rst.DefinitionList{Items: []rst.DefinitionItem{
			{Term: []rst.Inline{&rst.Text{Text: "conf"}},
				Definition: []rst.Block{rst.Para("Confidence intervals.")}},
			{Term: []rst.Inline{&rst.Text{Text: "sherpa.astro.ui.covar"}},
				Definition: []rst.Block{rst.Para("Covariance errors.")}},
			{Term: []rst.Inline{&rst.Text{Text: "conf"}},
				Definition: []rst.Block{rst.Para("repeated")}},
		}},
	}}}

	names, rest, err := c.findSeeAlso(nodes)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, []string{"conf", "covar"}, names)
}

func TestFindSeeAlsoRejectsDottedName(t *testing.T) {
	c := testConverter("tst")
	nodes := []rst.Block{&rst.SeeAlso{Blocks: []rst.Block{
		&rst.Paragraph{Inlines: []rst.Inline{&rst.Text{Text: "numpy.fit"}}},
	}}}

	_, _, err := c.findSeeAlso(nodes)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryIntegrity))
}

func notesSection(blocks ...rst.Block) []rst.Block {
	return append([]rst.Block{&rst.Rubric{Text: "Notes"}}, blocks...)
}

func TestFindNotesDropsAvailabilitySentence(t *testing.T) {
	c := testConverter("xsfoo")
	out, rest, err := c.findNotes(notesSection(
		rst.Para("This model is only available when used with XSPEC 12.10.1 or later."),
		rst.Para("The abundances are set by set_xsabund."),
	))
	require.NoError(t, err)
	assert.Empty(t, rest)
	require.NotNil(t, out)
	require.Len(t, out.Elements, 1)
	assert.Contains(t, out.Elements[0].(*ahelp.Para).Text, "abundances")
}

func TestFindNotesAllFilteredMeansAbsent(t *testing.T) {
	c := testConverter("xsfoo")
	out, _, err := c.findNotes(notesSection(
		rst.Para("This model requires XSPEC 12.14.0 or later."),
	))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestFindNotesUnsupportedVersionFatal(t *testing.T) {
	c := testConverter("xsfoo")
	_, _, err := c.findNotes(notesSection(
		rst.Para("This model is only available when used with XSPEC 12.15.0 or later."),
	))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryIntegrity))
}

func TestFindNotesEmbeddedRequirementFatal(t *testing.T) {
	c := testConverter("xsfoo")
	_, _, err := c.findNotes(notesSection(
		rst.Para("This model requires XSPEC 12.14.0 or later. It also does other things."),
	))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryStructure))
}

func TestMatchRubric(t *testing.T) {
	nodes := []rst.Block{&rst.Rubric{Text: " Examples "}, rst.Para("x")}

	rest, ok, err := matchRubric(nodes, "Examples", "Example")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, rest, 1)

	_, ok, err = matchRubric(nodes, "Notes")
	require.NoError(t, err)
	assert.False(t, ok)
}
