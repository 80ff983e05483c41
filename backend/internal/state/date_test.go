package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2024, 6, 1, 2, 0, 0, 0, zone) // still May 31 in UTC

	assert.Equal(t, NewDate(2024, time.June, 1), DateOf(instant))
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("1895-12-27")
	b := MustParseDate("1895-12-28")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, b.Before(b))
	assert.False(t, a.After(b))
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2000-02-29"`), &d))
	assert.Equal(t, "2000-02-29", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2000-02-29"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.Error(t, json.Unmarshal([]byte(`"2001-02-29"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20010101`), &d))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("yesterday")
	assert.Error(t, err)
	assert.Panics(t, func() { MustParseDate("") })
}
