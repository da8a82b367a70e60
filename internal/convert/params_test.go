package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/rst"
)

func body(texts ...string) *rst.FieldBody {
	fb := &rst.FieldBody{}
	for _, txt := range texts {
		fb.Blocks = append(fb.Blocks, rst.Para(txt))
	}
	return fb
}

func TestBuildParamsFunctionTable(t *testing.T) {
	c := testConverter("calc_stat")
	fi := &fieldInfo{
		Params: []*fieldParam{
			{Name: "id", Param: body("the dataset identifier"), Type: body("int or str")},
			{Name: "bkg_id", Param: body("the background identifier")},
		},
	}

	out, err := c.buildParams(fi)
	require.NoError(t, err)
	assert.Equal(t, "PARAMETERS", out.Title)
	require.Len(t, out.Elements, 2)
	assert.Equal(t, "The parameters for this function are:",
		out.Elements[0].(*ahelp.Para).Text)

	tbl := out.Elements[1].(*ahelp.Table)
	assert.Equal(t, [][]string{
		{"Parameter", "Type information", "Definition"},
		{"id", "int or str", "the dataset identifier"},
		{"bkg_id", "", "the background identifier"},
	}, tbl.Rows)
}

func TestBuildParamsAttributes(t *testing.T) {
	c := testConverter("data1d")
	fi := &fieldInfo{
		Params: []*fieldParam{
			{Name: "x", IVar: body("the independent axis")},
		},
	}

	out, err := c.buildParams(fi)
	require.NoError(t, err)
	assert.Equal(t, "ATTRIBUTES", out.Title)
	assert.Equal(t, "The attribute for this object is:",
		out.Elements[0].(*ahelp.Para).Text)
	tbl := out.Elements[1].(*ahelp.Table)
	assert.Equal(t, []string{"Attribute", "Definition"}, tbl.Rows[0])
}

func TestBuildParamsReturnValue(t *testing.T) {
	c := testConverter("calc_stat")
	fi := &fieldInfo{
		Returns: []returnField{
			{Kind: "returns", Body: body("The statistic value for the fit.")},
		},
	}

	out, err := c.buildParams(fi)
	require.NoError(t, err)
	require.Len(t, out.Elements, 3)
	assert.Equal(t, "This function has no parameters",
		out.Elements[0].(*ahelp.Para).Text)
	assert.Equal(t, "Return value", out.Elements[1].(*ahelp.Para).Title)
	assert.Equal(t, "The statistic value for the fit.",
		out.Elements[2].(*ahelp.Para).Text)
}

func TestBuildParamsSingleWordReturnDropped(t *testing.T) {
	c := testConverter("calc_stat")
	fi := &fieldInfo{
		Returns: []returnField{{Kind: "returns", Body: body("stat")}},
	}

	out, err := c.buildParams(fi)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestBuildParamsRaisesOnly(t *testing.T) {
	c := testConverter("tst")

	out, err := c.buildParams(&fieldInfo{Raises: 2})
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = c.buildParams(&fieldInfo{})
	require.Error(t, err)
}

func TestBuildParamsNilPassthrough(t *testing.T) {
	c := testConverter("tst")
	out, err := c.buildParams(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
