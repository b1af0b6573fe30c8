package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	t.Run("read full wins over page", func(t *testing.T) {
		sel, err := ParseSelector("3", true)
		require.NoError(t, err)
		assert.True(t, sel.IsFullDocument())
		_, ok := sel.Page()
		assert.False(t, ok)
	})

	t.Run("single page", func(t *testing.T) {
		sel, err := ParseSelector(" 2 ", false)
		require.NoError(t, err)
		page, ok := sel.Page()
		require.True(t, ok)
		assert.Equal(t, 2, page)
		assert.Equal(t, "page:2", sel.String())
	})

	t.Run("missing page", func(t *testing.T) {
		sel, err := ParseSelector("", false)
		assert.ErrorIs(t, err, ErrPageRequired)
		assert.False(t, sel.IsSet())
	})

	t.Run("non numeric page", func(t *testing.T) {
		_, err := ParseSelector("two", false)
		assert.ErrorIs(t, err, ErrPageRequired)
	})

	t.Run("zero page is out of range", func(t *testing.T) {
		_, err := ParseSelector("0", false)
		var rangeErr *PageRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, 0, rangeErr.Page)
		assert.Equal(t, "page 0 is out of range", rangeErr.Error())
	})
}

func TestPageSelector_CheckRange(t *testing.T) {
	assert.NoError(t, SinglePage(1).CheckRange(3))
	assert.NoError(t, SinglePage(3).CheckRange(3))
	assert.NoError(t, FullDocument().CheckRange(0))

	err := SinglePage(5).CheckRange(3)
	var rangeErr *PageRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 5, rangeErr.Page)
	assert.Equal(t, 3, rangeErr.PageCount)
	assert.Contains(t, err.Error(), "document has 3 pages")
}

func TestPageSelector_ZeroValue(t *testing.T) {
	var sel PageSelector
	assert.False(t, sel.IsSet())
	assert.False(t, sel.IsFullDocument())
	assert.Equal(t, "unset", sel.String())
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "on", "1", "yes"} {
		assert.True(t, ParseBool(v), v)
	}
	for _, v := range []string{"", "false", "0", "off", "nope"} {
		assert.False(t, ParseBool(v), v)
	}
}

func TestParseEmptyPagePolicy(t *testing.T) {
	assert.Equal(t, EmptyPagePolicyWarn, ParseEmptyPagePolicy("warn"))
	assert.Equal(t, EmptyPagePolicyIgnore, ParseEmptyPagePolicy("ignore"))
	assert.Equal(t, EmptyPagePolicyIgnore, ParseEmptyPagePolicy(""))
}
