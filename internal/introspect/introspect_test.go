package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanClassRepr(t *testing.T) {
	in := "calc_kcorr(id=<class 'sherpa.data.Data1D'>, z=0)"
	assert.Equal(t, "calc_kcorr(id=Data1D, z=0)", Clean(in))
}

func TestCleanFunctionRepr(t *testing.T) {
	in := "set_method(meth=<function levmar at 0x7f3a2c0d1b80>)"
	assert.Equal(t, "set_method(meth=levmar)", Clean(in))
}

func TestCleanRepeated(t *testing.T) {
	in := "f(a=<class 'sherpa.models.Gauss1D'>, b=<class 'sherpa.models.Const1D'>)"
	assert.Equal(t, "f(a=Gauss1D, b=Const1D)", Clean(in))
}

func TestCleanNoRepr(t *testing.T) {
	in := "fit(id=None, *otherids)"
	assert.Equal(t, in, Clean(in))
}

func TestScrubAddresses(t *testing.T) {
	assert.Equal(t, "<built-in at 0x...>", ScrubAddresses("<built-in at 0x7f3a2c0d1b80>"))
	// Short hex literals are real values, not addresses.
	assert.Equal(t, "mask=0xff", ScrubAddresses("mask=0xff"))
}

func TestFormatLinesSingleParam(t *testing.T) {
	sig := Signature{Params: []Param{{Name: "id", Type: "int", Default: "1"}}}
	assert.Equal(t, []string{"   fit(id: int = 1)"}, FormatLines("fit", sig))
}

func TestFormatLinesMultipleParams(t *testing.T) {
	sig := Signature{Params: []Param{
		{Name: "id", Default: "None"},
		{Name: "bkg_id", Default: "None"},
	}}
	assert.Equal(t, []string{
		"   calc_stat(id = None,",
		"             bkg_id = None)",
	}, FormatLines("calc_stat", sig))
}

func TestFormatLinesReturnAnnotation(t *testing.T) {
	sig := Signature{
		Params: []Param{{Name: "id"}},
		Return: "float",
	}
	assert.Equal(t, []string{
		"   calc_stat(id",
		"            ) -> float",
	}, FormatLines("calc_stat", sig))
}

func TestFormatLinesNoParamsWithReturn(t *testing.T) {
	sig := Signature{Return: "str"}
	assert.Equal(t, []string{"   get_default_id() -> str"}, FormatLines("get_default_id", sig))
}
