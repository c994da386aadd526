package models

// Category is the closed set of things a favourite can point at. The zero
// value is not a valid category; values come from the three variables below
// or from ParseCategory.
type Category struct {
	name  string
	table string
	key   string
}

var (
	CategoryArtist = Category{name: "artist", table: "artists", key: "artist_id"}
	CategoryAlbum  = Category{name: "album", table: "albums", key: "album_id"}
	CategoryTrack  = Category{name: "track", table: "tracks", key: "track_id"}
)

func ParseCategory(s string) (Category, bool) {
	switch s {
	case CategoryArtist.name:
		return CategoryArtist, true
	case CategoryAlbum.name:
		return CategoryAlbum, true
	case CategoryTrack.name:
		return CategoryTrack, true
	}
	return Category{}, false
}

func (c Category) String() string { return c.name }

// Table is the table holding the favourited items.
func (c Category) Table() string { return c.table }

// KeyColumn is the public id column of Table that item_id refers to.
func (c Category) KeyColumn() string { return c.key }

func (c Category) Valid() bool { return c.name != "" }
