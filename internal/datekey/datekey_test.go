package datekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripTenYears(t *testing.T) {
	d := time.Date(2018, time.January, 1, 0, 0, 0, 0, time.Local)
	end := d.AddDate(10, 0, 0)

	for ; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := ToKey(d)

		parsed, err := Parse(key)
		require.NoError(t, err, "key %s", key)
		assert.True(t, parsed.Equal(d), "parse(toKey(%s)) = %s", d, parsed)
		assert.Equal(t, key, ToKey(parsed))
	}
}

func TestParseReconstructsComponents(t *testing.T) {
	parsed, err := Parse("2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 10, parsed.Day())
	assert.Equal(t, 0, parsed.Hour())
	assert.Equal(t, time.Local, parsed.Location())
}

func TestParseRejectsBadKeys(t *testing.T) {
	for _, key := range []string{"", "2024-3-10", "10-03-2024", "2024/03/10", "2024-13-01", "yesterday"} {
		_, err := Parse(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestTodayIsMidnight(t *testing.T) {
	today := Today()

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())
	assert.Equal(t, ToKey(today), TodayKey())
}
