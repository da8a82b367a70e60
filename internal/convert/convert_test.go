package convert

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/rst"
	"github.com/cxcsds/ahelpgen/internal/symbols"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSymbol(name string) *symbols.Symbol {
	return &symbols.Symbol{Name: name}
}

func testConverter(name string) *converter {
	return newConverter(testLogger(), testSymbol(name))
}

func TestConvertSynopsisAndParams(t *testing.T) {
	doc := &rst.Document{Blocks: []rst.Block{
		rst.Para("Perform a fit."),
		&rst.FieldList{Fields: []rst.Field{
			{
				Name: "param id",
				Body: rst.FieldBody{Blocks: []rst.Block{rst.Para("dataset identifier")}},
			},
		}},
	}}

	out, err := Convert(testLogger(), testSymbol("fit"), doc, Options{})
	require.NoError(t, err)

	entry := out.Entry
	assert.Equal(t, "Perform a fit.", entry.Synopsis)

	require.NotNil(t, entry.Params)
	assert.Equal(t, "PARAMETERS", entry.Params.Title)
	require.Len(t, entry.Params.Elements, 2)

	intro, ok := entry.Params.Elements[0].(*ahelp.Para)
	require.True(t, ok)
	assert.Equal(t, "The parameter for this function is:", intro.Text)

	tbl, ok := entry.Params.Elements[1].(*ahelp.Table)
	require.True(t, ok)
	assert.Equal(t, [][]string{
		{"Parameter", "Definition"},
		{"id", "dataset identifier"},
	}, tbl.Rows)
}

func TestConvertEntryTrailers(t *testing.T) {
	doc := &rst.Document{Blocks: []rst.Block{rst.Para("Short summary.")}}

	out, err := Convert(testLogger(), testSymbol("calc_stat"), doc, Options{})
	require.NoError(t, err)

	entry := out.Entry
	assert.Equal(t, "December 2025", entry.LastModified)
	require.Len(t, entry.Bugs, 1)
	bugs := entry.Bugs[0].(*ahelp.Para)
	require.Len(t, bugs.Hrefs, 1)
	assert.Equal(t, "https://cxc.harvard.edu/sherpa/bugs/", bugs.Hrefs[0].Link)

	// Name has no external-tool marker, so no tool-version section.
	assert.Nil(t, entry.ToolVersion)
}

func TestConvertXSPECTrailer(t *testing.T) {
	doc := &rst.Document{Blocks: []rst.Block{rst.Para("The XSPEC abundance.")}}

	out, err := Convert(testLogger(), testSymbol("get_xsabund"), doc, Options{})
	require.NoError(t, err)

	tv := out.Entry.ToolVersion
	require.NotNil(t, tv)
	assert.Equal(t, "XSPEC version", tv.Title)

	// The section body is a deliberately flat pair: the explanatory
	// paragraph, then the check command as a sibling syntax block.
	require.Len(t, tv.Elements, 2)
	_, ok := tv.Elements[0].(*ahelp.Para)
	assert.True(t, ok)
	syn, ok := tv.Elements[1].(*ahelp.Syntax)
	require.True(t, ok)
	require.Len(t, syn.Lines, 2)
	assert.Equal(t, "12.14.0k", syn.Lines[1].Text)
}

func TestConvertMetadataAttrs(t *testing.T) {
	sym := testSymbol("plot_fit")
	sym.Metadata = map[string]string{"refkeywords": "extra"}

	doc := &rst.Document{Blocks: []rst.Block{rst.Para("Plot the fit.")}}

	out, err := Convert(testLogger(), sym, doc, Options{})
	require.NoError(t, err)

	attrs := out.Entry.Attrs
	assert.Equal(t, "sherpa", attrs.Pkg)
	assert.Equal(t, "plot_fit", attrs.Key)
	assert.Equal(t, "plotting", attrs.Context)
	// Synopsis words plus the underscore split plus the override.
	assert.Contains(t, attrs.Refkeywords, "extra")
	assert.Contains(t, attrs.Refkeywords, "plot")
}

func TestConvertSynonymLeadsKeywordsAndDesc(t *testing.T) {
	sym := testSymbol("covar")
	sym.Synonyms = []string{"covariance"}

	doc := &rst.Document{Blocks: []rst.Block{rst.Para("Estimate errors.")}}

	out, err := Convert(testLogger(), sym, doc, Options{})
	require.NoError(t, err)

	assert.True(t, len(out.Entry.Attrs.Refkeywords) > 0)
	assert.Equal(t, "covariance", out.Entry.Attrs.Refkeywords[:len("covariance")])

	require.NotEmpty(t, out.Entry.Desc)
	p := out.Entry.Desc[0].(*ahelp.Para)
	assert.Equal(t, "The function is also called covariance().", p.Text)
}

func TestConvertTrailingStructureIsFatal(t *testing.T) {
	doc := &rst.Document{Blocks: []rst.Block{
		rst.Para("Summary."),
		&rst.Rubric{Text: "Mystery section"},
		rst.Para("unreachable"),
	}}

	_, err := Convert(testLogger(), testSymbol("fit"), doc, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryIntegrity))

	cerr, ok := err.(*errors.ConvertError)
	require.True(t, ok)
	assert.Equal(t, "fit", cerr.Context["symbol"])
}

func TestConvertDuplicateNotesKeptAsDiagnostic(t *testing.T) {
	doc := &rst.Document{Blocks: []rst.Block{
		rst.Para("Summary."),
		&rst.Rubric{Text: "Notes"},
		rst.Para("First note."),
		&rst.Rubric{Text: "Notes"},
		rst.Para("Second note."),
	}}

	out, err := Convert(testLogger(), testSymbol("fit"), doc, Options{})
	require.Error(t, err)
	assert.False(t, errors.IsFatal(err))
	assert.True(t, errors.IsCategory(err, errors.CategoryStructure))

	// The document still converts; the duplicate rides along untouched.
	require.NotNil(t, out)
	require.NotNil(t, out.Entry.Notes)
	require.NotNil(t, out.Entry.NotesDup)
}

func TestConvertVersionNotes(t *testing.T) {
	doc := &rst.Document{Blocks: []rst.Block{
		rst.Para("Summary."),
		&rst.VersionNote{Change: rst.VersionAdded, Blocks: []rst.Block{
			rst.Para("4.12.0 Some text."),
		}},
		&rst.VersionNote{Change: rst.VersionAdded, Blocks: []rst.Block{
			rst.Para("4.12.0 More text."),
		}},
	}}

	out, err := Convert(testLogger(), testSymbol("fit"), doc, Options{})
	require.NoError(t, err)

	versions := out.Entry.Versions
	require.NotNil(t, versions)
	assert.Equal(t, "Changes in CIAO", versions.Title)
	require.Len(t, versions.Elements, 2)

	first := versions.Elements[0].(*ahelp.Para)
	assert.Equal(t, "Added in CIAO 4.12", first.Title)
	assert.Equal(t, "Some text.", first.Text)

	second := versions.Elements[1].(*ahelp.Para)
	assert.Equal(t, "", second.Title)
	assert.Equal(t, "More text.", second.Text)
}

func TestConvertExternalModelSyntaxNote(t *testing.T) {
	sym := &symbols.Symbol{
		Name:          "xsapec",
		Kind:          symbols.ModelComponent,
		Model:         &symbols.ModelInfo{Class: symbols.ClassAdditive},
		SignatureText: "xsapec(name='apec')",
	}

	doc := &rst.Document{Blocks: []rst.Block{rst.Para("The APEC model.")}}

	out, err := Convert(testLogger(), sym, doc, Options{})
	require.NoError(t, err)

	syn := out.Entry.Syntax
	require.NotNil(t, syn)
	require.Len(t, syn.Lines, 3)
	assert.Equal(t, "The xsapec model is an additive model component.", syn.Lines[2].Text)
	assert.Equal(t, "xsmodels", out.Entry.Attrs.DisplaySeeAlsoGroups)
}

func TestConvertModelExampleAugmented(t *testing.T) {
	sym := &symbols.Symbol{
		Name: "gauss1d",
		Kind: symbols.ModelComponent,
		Model: &symbols.ModelInfo{
			Class:        symbols.ClassNative,
			DefaultsText: "gauss1d.mdl\n   fwhm = 10",
		},
	}

	doc := &rst.Document{Blocks: []rst.Block{rst.Para("One-dimensional gaussian.")}}

	out, err := Convert(testLogger(), sym, doc, Options{})
	require.NoError(t, err)

	ex := out.Entry.Examples
	require.NotNil(t, ex)
	require.Len(t, ex.Examples, 1)
	require.NotNil(t, ex.Examples[0].Syntax)
	assert.Equal(t, `>>> create_model_component("gauss1d", "mdl")`,
		ex.Examples[0].Syntax.Lines[0].Text)
	assert.Equal(t, "shmodels", out.Entry.Attrs.DisplaySeeAlsoGroups)
}

func TestConvertSeeAlsoGroups(t *testing.T) {
	doc := &rst.Document{Blocks: []rst.Block{
		rst.Para("Fit the data."),
		&rst.SeeAlso{Blocks: []rst.Block{
			&rst.Paragraph{Inlines: []rst.Inline{
				&rst.Literal{Text: "conf"},
				&rst.Text{Text: ","},
				&rst.Literal{Text: "sherpa.astro.ui.covar"},
			}},
		}},
	}}

	out, err := Convert(testLogger(), testSymbol("fit"), doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, "conffit covarfit", out.Entry.Attrs.SeeAlsoGroups)
}
