package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CategoryStructure, SeverityFatal, "unexpected node")
	assert.Equal(t, "structure (fatal): unexpected node", err.Error())

	wrapped := Wrap(fmt.Errorf("eof"), CategoryInput, SeverityFatal, "decode file")
	assert.Equal(t, "input (fatal): decode file: eof", wrapped.Error())
	require.NotNil(t, wrapped.Unwrap())
}

func TestCategoryHelpers(t *testing.T) {
	err := Structuref("bad %s", "shape")
	assert.True(t, IsCategory(err, CategoryStructure))
	assert.False(t, IsCategory(err, CategoryIntegrity))
	assert.Equal(t, CategoryStructure, GetCategory(err))

	assert.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(Integrity("inconsistent")))
	assert.False(t, IsFatal(New(CategoryStructure, SeverityError, "duplicate section")))
	assert.True(t, IsFatal(fmt.Errorf("plain")))
	assert.False(t, IsFatal(nil))
}

func TestWithContext(t *testing.T) {
	err := Structure("bad node").WithContext("symbol", "calc_stat")
	assert.Equal(t, "calc_stat", err.Context["symbol"])
}
