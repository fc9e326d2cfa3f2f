package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGrid_QuotedNewlines(t *testing.T) {
	rows := splitGrid("a,\"line1\nline2\",c\n")

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "line1\nline2", "c"}, rows[0])
}

func TestSplitGrid_DoubledQuoteEscape(t *testing.T) {
	rows := splitGrid("\"say \"\"hi\"\"\",b\n")

	require.Len(t, rows, 1)
	assert.Equal(t, `say "hi"`, rows[0][0])
}

func TestSplitGrid_QuotedComma(t *testing.T) {
	rows := splitGrid("\"a,b\",c\n")

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a,b", "c"}, rows[0])
}

func TestSplitGrid_DropsAllBlankRows(t *testing.T) {
	rows := splitGrid("a,b\n,,\n  , \nc,d\n")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestSplitGrid_IgnoresCarriageReturns(t *testing.T) {
	rows := splitGrid("a,b\r\nc,d\r\n")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestSplitGrid_FinalRowWithoutNewline(t *testing.T) {
	rows := splitGrid("a,b")

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}
