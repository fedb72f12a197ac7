package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("ten")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringOrdering(t *testing.T) {
	ts := TimeString("10:00")
	next := TimeString("11:00")

	assert.True(t, ts.IsBefore(next))
	assert.False(t, next.IsBefore(ts))
	assert.False(t, ts.IsBefore(ts))

	mins, err := next.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 660, mins)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("14:00:00")))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan("15:30"))
	assert.Equal(t, TimeString("15:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
