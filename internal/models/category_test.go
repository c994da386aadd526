package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in    string
		ok    bool
		table string
		key   string
	}{
		{in: "artist", ok: true, table: "artists", key: "artist_id"},
		{in: "album", ok: true, table: "albums", key: "album_id"},
		{in: "track", ok: true, table: "tracks", key: "track_id"},
		{in: "Artist", ok: false},
		{in: "playlist", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		c, ok := ParseCategory(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.ok, c.Valid(), tt.in)
		if ok {
			assert.Equal(t, tt.in, c.String())
			assert.Equal(t, tt.table, c.Table())
			assert.Equal(t, tt.key, c.KeyColumn())
		}
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEditor.Valid())
	assert.True(t, RoleViewer.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
