package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		limit, offset string
		wantLimit     int
		wantOffset    int
		wantErr       bool
	}{
		{"", "", DefaultLimit, 0, false},
		{"10", "20", 10, 20, false},
		{"0", "0", 0, 0, false},
		{"1000", "", MaxLimit, 0, false},
		{"abc", "", 0, 0, true},
		{"", "x", 0, 0, true},
		{"-1", "", 0, 0, true},
		{"", "-5", 0, 0, true},
		{"1.5", "", 0, 0, true},
	}
	for _, tc := range cases {
		limit, offset, err := ParsePage(tc.limit, tc.offset)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrBadPage, "limit=%q offset=%q", tc.limit, tc.offset)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.wantLimit, limit)
		assert.Equal(t, tc.wantOffset, offset)
	}
}

func TestParseOptionalBool(t *testing.T) {
	v, err := ParseOptionalBool("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseOptionalBool("true")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	_, err = ParseOptionalBool("maybe")
	assert.Error(t, err)
}
