package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", d.String())

	for _, bad := range []string{"2025-13-01", "06/01/2025", "yesterday", ""} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", bad)
	}
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2025-01-06")
	require.NoError(t, err)

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-06"`, string(b))

	var back Date
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, d, back)

	assert.Error(t, back.UnmarshalJSON([]byte(`"not-a-date"`)))
	assert.Error(t, back.UnmarshalJSON([]byte(`42`)))
}
