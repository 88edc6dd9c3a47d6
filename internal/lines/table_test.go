package lines

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var tab Table

	_, ok := tab.Seek(0)
	assert.False(t, ok, "empty table has no lines")
	assert.True(t, errors.Is(tab.Append("x"), ErrNoPrior))

	require.NoError(t, tab.Add(10, `PRINT "A"`))
	require.NoError(t, tab.Add(20, `GOTO 10`))
	require.NoError(t, tab.Append(`:PRINT "B"`))
	require.NoError(t, tab.Add(100, `END`))

	assert.True(t, errors.Is(tab.Add(100, "dup"), ErrOrder), "duplicate line")
	assert.True(t, errors.Is(tab.Add(50, "back"), ErrOrder), "out of order line")
	assert.True(t, errors.Is(tab.Add(End, "end"), ErrEnd), "end sentinel line")

	assert.Equal(t, 3, tab.Len())
	assert.True(t, tab.Has(20))
	assert.False(t, tab.Has(21))

	text, ok := tab.Get(20)
	assert.True(t, ok)
	assert.Equal(t, `GOTO 10:PRINT "B"`, text)

	for _, tc := range []struct {
		from Number
		want Number
		ok   bool
	}{
		{0, 10, true},
		{10, 10, true},
		{11, 20, true},
		{21, 100, true},
		{101, 0, false},
		{End, 0, false},
	} {
		line, ok := tab.Seek(tc.from)
		assert.Equal(t, tc.ok, ok, "seek %v", tc.from)
		if tc.ok {
			assert.Equal(t, tc.want, line.Num, "seek %v", tc.from)
		}
	}

	var nums []Number
	tab.Each(func(l Line) bool {
		nums = append(nums, l.Num)
		return true
	})
	assert.Equal(t, []Number{10, 20, 100}, nums)

	tab.Reset()
	assert.Equal(t, 0, tab.Len())
	require.NoError(t, tab.Add(5, "REM again"))
}
